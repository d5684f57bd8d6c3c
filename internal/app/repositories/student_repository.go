package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/dberrors"
)

const studentColumns = `
	id, institution_id, class_id, batch_id, course_id, roll_no, admission_no,
	name, gender, dob, email, phone, address, city, state, pincode, parent,
	fee_total, fee_paid, fee_currency, password_hash, admission_date, status,
	created_at, updated_at`

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	var parent []byte

	err := row.Scan(
		&s.ID,
		&s.InstitutionID,
		&s.ClassID,
		&s.BatchID,
		&s.CourseID,
		&s.RollNo,
		&s.AdmissionNo,
		&s.Name,
		&s.Gender,
		&s.DOB,
		&s.Email,
		&s.Phone,
		&s.Address,
		&s.City,
		&s.State,
		&s.Pincode,
		&parent,
		&s.Fee.Total,
		&s.Fee.Paid,
		&s.Fee.Currency,
		&s.PasswordHash,
		&s.AdmissionDate,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(parent) > 0 {
		if err := json.Unmarshal(parent, &s.Parent); err != nil {
			return nil, fmt.Errorf("error decoding parent info: %w", err)
		}
	}

	return &s, nil
}

// InsertBatch persists all students in one batched round trip. The batch
// executes as a single implicit transaction: either every record lands or
// none do, so roll numbers are never partially committed. Sequence numbers
// reserved for a failed batch stay consumed; gaps are harmless.
func (r *StudentRepository) InsertBatch(ctx context.Context, students []*models.Student) error {
	if len(students) == 0 {
		return nil
	}

	query := `
		INSERT INTO students (
			institution_id, class_id, batch_id, course_id, roll_no, admission_no,
			name, gender, dob, email, phone, address, city, state, pincode,
			parent, fee_total, fee_paid, fee_currency, admission_date, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21)
		RETURNING id, created_at, updated_at
	`

	batch := &pgx.Batch{}
	for _, s := range students {
		parent, err := json.Marshal(s.Parent)
		if err != nil {
			return fmt.Errorf("error encoding parent info: %w", err)
		}
		batch.Queue(query,
			s.InstitutionID, s.ClassID, s.BatchID, s.CourseID, s.RollNo,
			s.AdmissionNo, s.Name, s.Gender, s.DOB, s.Email, s.Phone,
			s.Address, s.City, s.State, s.Pincode, parent, s.Fee.Total,
			s.Fee.Paid, s.Fee.Currency, s.AdmissionDate, s.Status,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for _, s := range students {
		if err := results.QueryRow().Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "students_roll_no_key") {
				return apperrors.ErrRollNoExists
			}
			return fmt.Errorf("error inserting students: %w", err)
		}
	}

	return nil
}

// CountByInstitution returns the number of persisted students for an
// institution, used by the capacity check.
func (r *StudentRepository) CountByInstitution(ctx context.Context, institutionID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM students WHERE institution_id = $1`, institutionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}

	return count, nil
}

// MaxRollSuffix returns the highest 4-digit sequence suffix among persisted
// roll numbers with the given prefix, or 0 when none exist.
func (r *StudentRepository) MaxRollSuffix(ctx context.Context, institutionID int64, prefix string) (int, error) {
	var top string
	err := r.db.QueryRow(ctx, `
		SELECT roll_no FROM students
		WHERE institution_id = $1 AND roll_no LIKE $2 || '%'
		ORDER BY roll_no DESC
		LIMIT 1`,
		institutionID, prefix).Scan(&top)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("error reading max roll suffix: %w", err)
	}

	if len(top) < 4 {
		return 0, nil
	}

	suffix, err := strconv.Atoi(top[len(top)-4:])
	if err != nil {
		return 0, nil
	}

	return suffix, nil
}

// HasRollWithPrefix reports whether any persisted student carries a roll
// number with the given prefix.
func (r *StudentRepository) HasRollWithPrefix(ctx context.Context, institutionID int64, prefix string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM students
			WHERE institution_id = $1 AND roll_no LIKE $2 || '%'
		)`,
		institutionID, prefix).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking roll prefix: %w", err)
	}

	return exists, nil
}

// ListByScope retrieves all students under one scope entity.
func (r *StudentRepository) ListByScope(ctx context.Context, scopeType models.ScopeType, scopeID int64) ([]*models.Student, error) {
	var column string
	switch scopeType {
	case models.ScopeTypeClass:
		column = "class_id"
	case models.ScopeTypeBatch:
		column = "batch_id"
	case models.ScopeTypeCourse:
		column = "course_id"
	default:
		return nil, fmt.Errorf("%w: unknown scope type %q", apperrors.ErrValidationFailed, scopeType)
	}

	query := `SELECT ` + studentColumns + ` FROM students WHERE ` + column + ` = $1 ORDER BY roll_no`

	rows, err := r.db.Query(ctx, query, scopeID)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	s, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return s, nil
}

// GetByRollNo retrieves a student by roll number, for portal login.
func (r *StudentRepository) GetByRollNo(ctx context.Context, rollNo string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE roll_no = $1`

	s, err := scanStudent(r.db.QueryRow(ctx, query, rollNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student by roll number: %w", err)
	}

	return s, nil
}

// SetPasswordHash stores the portal password hash for a student.
func (r *StudentRepository) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET password_hash = $1, updated_at = NOW() WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("error setting student password: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// SearchByInstitutions retrieves a page of students across institutions,
// optionally filtered by a free-text query over name, email, phone,
// admission number and roll number. Returns the page plus the total match
// count.
func (r *StudentRepository) SearchByInstitutions(ctx context.Context, institutionIDs []int64, q string, offset uint64, limit int) ([]*models.Student, int64, error) {
	if len(institutionIDs) == 0 {
		return nil, 0, nil
	}

	where := ` WHERE institution_id = ANY($1)`
	args := []interface{}{institutionIDs}
	if q != "" {
		where += ` AND (name ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2 OR admission_no ILIKE $2 OR roll_no ILIKE $2)`
		args = append(args, "%"+q+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	query := `SELECT ` + studentColumns + ` FROM students` + where +
		fmt.Sprintf(` ORDER BY created_at DESC OFFSET $%d LIMIT $%d`, len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error searching students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// Update persists the editable fields of a student. Roll number is immutable
// once assigned and is deliberately absent from this statement.
func (r *StudentRepository) Update(ctx context.Context, s *models.Student) error {
	parent, err := json.Marshal(s.Parent)
	if err != nil {
		return fmt.Errorf("error encoding parent info: %w", err)
	}

	query := `
		UPDATE students
		SET admission_no = $1, name = $2, gender = $3, dob = $4, email = $5,
			phone = $6, address = $7, city = $8, state = $9, pincode = $10,
			parent = $11, fee_total = $12, fee_paid = $13, fee_currency = $14,
			admission_date = $15, status = $16, updated_at = NOW()
		WHERE id = $17
		RETURNING updated_at
	`

	err = r.db.QueryRow(ctx, query,
		s.AdmissionNo, s.Name, s.Gender, s.DOB, s.Email, s.Phone, s.Address,
		s.City, s.State, s.Pincode, parent, s.Fee.Total, s.Fee.Paid,
		s.Fee.Currency, s.AdmissionDate, s.Status, s.ID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	return nil
}
