package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Migrator applies versioned SQL files and records them in the
// schema_migrations table so each version runs at most once.
type Migrator struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger,
	}
}

// MigrateFromDirectory applies every pending .sql file under dirPath in
// lexical order.
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dirPath string) error {
	files, err := sqlFilesInOrder(dirPath)
	if err != nil {
		return err
	}

	if err := m.ensureVersionTable(ctx); err != nil {
		return err
	}

	for _, name := range files {
		if err := m.apply(ctx, filepath.Join(dirPath, name)); err != nil {
			return err
		}
	}

	return nil
}

// apply runs one migration file inside a transaction and records its
// version, skipping versions that were already applied.
func (m *Migrator) apply(ctx context.Context, path string) error {
	name := filepath.Base(path)
	version := versionFromFilename(name)

	applied, err := m.isApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug().Str("file", name).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", name, err)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start migration transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("migration %s failed: %w", name, err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
		version, time.Now()); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", name, err)
	}

	m.logger.Info().Str("file", name).Str("version", version).Msg("Migration applied")
	return nil
}

// ensureVersionTable creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isApplied checks if a specific migration version has already been applied
func (m *Migrator) isApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := m.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// sqlFilesInOrder lists the .sql file names under dirPath sorted by name, so
// numeric version prefixes determine execution order.
func sqlFilesInOrder(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}

// versionFromFilename extracts the version prefix from a migration file
// name, e.g. "001_init.sql" => "001".
func versionFromFilename(name string) string {
	return strings.SplitN(name, "_", 2)[0]
}
