package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

// CounterStore is the durable named-counter primitive the allocator draws
// sequence numbers from. IncrementAndGet must be atomic at the storage
// layer; all serialization between concurrent enrollments rests on it.
type CounterStore interface {
	IncrementAndGet(ctx context.Context, key string, delta int64) (int64, error)
	Get(ctx context.Context, key string) (int64, error)
	Set(ctx context.Context, key string, value int64) error
}

// StudentStore is the slice of student persistence the allocator needs.
type StudentStore interface {
	MaxRollSuffix(ctx context.Context, institutionID int64, prefix string) (int, error)
	HasRollWithPrefix(ctx context.Context, institutionID int64, prefix string) (bool, error)
	CountByInstitution(ctx context.Context, institutionID int64) (int64, error)
	InsertBatch(ctx context.Context, students []*models.Student) error
}

// InstitutionStore resolves institutions and retains their lazily assigned
// codes.
type InstitutionStore interface {
	GetByIDForOwner(ctx context.Context, id int64, ownerUserID string) (*models.Institution, error)
	AssignCodeIfAbsent(ctx context.Context, id int64, code int) (int, error)
}

// ScopeStore resolves scope entities of any variant.
type ScopeStore interface {
	GetScope(ctx context.Context, scopeType models.ScopeType, id int64) (*models.Scope, error)
}

// CapacitySource resolves the plan-derived student limit of an institution.
type CapacitySource interface {
	MaxStudentsForTier(ctx context.Context, tierID int64) (*int64, error)
}

// EnrollmentService allocates roll numbers and persists students. The
// single-add, JSON bulk and file import flows all run through Allocate so
// the sequence counter sees one code path.
type EnrollmentService struct {
	counters     CounterStore
	students     StudentStore
	institutions InstitutionStore
	scopes       ScopeStore
	plans        CapacitySource
	logger       zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	counters CounterStore,
	students StudentStore,
	institutions InstitutionStore,
	scopes ScopeStore,
	plans CapacitySource,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		counters:     counters,
		students:     students,
		institutions: institutions,
		scopes:       scopes,
		plans:        plans,
		logger:       logger,
	}
}

// ResolveScope loads a scope and its institution, verifying ownership and
// that the scope variant matches the institution type.
func (s *EnrollmentService) ResolveScope(ctx context.Context, ownerUserID string, scopeType models.ScopeType, scopeID int64) (*models.Institution, *models.Scope, error) {
	if !scopeType.IsValid() {
		return nil, nil, fmt.Errorf("%w: unknown scope type %q", apperrors.ErrValidationFailed, scopeType)
	}

	scope, err := s.scopes.GetScope(ctx, scopeType, scopeID)
	if err != nil {
		return nil, nil, err
	}

	inst, err := s.institutions.GetByIDForOwner(ctx, scope.InstitutionID, ownerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInstitutionNotFound) {
			// Scope exists but is not reachable for this caller.
			return nil, nil, apperrors.ErrScopeNotFound
		}
		return nil, nil, err
	}

	if models.ScopeTypeFor(inst.Type) != scopeType {
		return nil, nil, apperrors.ErrScopeTypeMismatch
	}

	return inst, scope, nil
}

// Enroll resolves the scope, checks capacity and allocates roll numbers for
// the whole batch. It is the entry point shared by single-add, JSON bulk
// import and confirmed file imports; a single add is a batch of one.
func (s *EnrollmentService) Enroll(ctx context.Context, ownerUserID string, scopeType models.ScopeType, scopeID int64, inputs []models.StudentInput) ([]*models.Student, error) {
	if len(inputs) == 0 {
		return nil, apperrors.ErrEmptyBatch
	}

	inst, scope, err := s.ResolveScope(ctx, ownerUserID, scopeType, scopeID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCapacity(ctx, inst, len(inputs)); err != nil {
		return nil, err
	}

	return s.Allocate(ctx, inst, scope, inputs)
}

// Allocate assigns one roll number per candidate and persists the batch.
//
// Candidates are stable-sorted by name before numbers are handed out, so
// roll numbers land alphabetically regardless of upload order. The whole
// batch reserves one contiguous block from the per-institution-per-year
// counter in a single atomic increment; any failure aborts the entire batch
// before persistence, leaving at worst a gap in the sequence.
func (s *EnrollmentService) Allocate(ctx context.Context, inst *models.Institution, scope *models.Scope, inputs []models.StudentInput) ([]*models.Student, error) {
	if len(inputs) == 0 {
		return nil, apperrors.ErrEmptyBatch
	}

	sorted := make([]models.StudentInput, len(inputs))
	copy(sorted, inputs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	code, err := s.getOrAssignCode(ctx, inst)
	if err != nil {
		return nil, err
	}

	yearYY := time.Now().Format("06")
	if err := s.reconcile(ctx, inst, code, yearYY); err != nil {
		return nil, err
	}

	key := models.StudentSeqCounterKey(inst.ID, yearYY)
	end, err := s.counters.IncrementAndGet(ctx, key, int64(len(sorted)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
	}
	start := end - int64(len(sorted)) + 1

	students := make([]*models.Student, len(sorted))
	for i, in := range sorted {
		student := studentFromInput(inst, scope, in)
		rollNo := SynthesizeRollNo(code, inst.Name, yearYY, int(start)+i)
		student.RollNo = &rollNo
		students[i] = student
	}

	if err := s.students.InsertBatch(ctx, students); err != nil {
		if errors.Is(err, apperrors.ErrRollNoExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
	}

	s.logger.Info().
		Int64("institutionId", inst.ID).
		Str("scope", string(scope.Type)).
		Int("count", len(students)).
		Int64("seqStart", start).
		Int64("seqEnd", end).
		Msg("Allocated roll numbers")

	return students, nil
}

// Preview projects the roll numbers an upload would receive without
// reserving anything from the counter. The projection can go stale if a
// concurrent enrollment lands first; the confirm step re-runs the full
// allocation and is the only source of truth.
func (s *EnrollmentService) Preview(ctx context.Context, inst *models.Institution, inputs []models.StudentInput) ([]models.StudentInput, error) {
	sorted := make([]models.StudentInput, len(inputs))
	copy(sorted, inputs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	code, err := s.getOrAssignCode(ctx, inst)
	if err != nil {
		return nil, err
	}

	yearYY := time.Now().Format("06")
	if err := s.reconcile(ctx, inst, code, yearYY); err != nil {
		return nil, err
	}

	current, err := s.counters.Get(ctx, models.StudentSeqCounterKey(inst.ID, yearYY))
	if err != nil && !errors.Is(err, apperrors.ErrCounterNotFound) {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
	}

	seq := int(current) + 1
	for i := range sorted {
		sorted[i].RollNo = SynthesizeRollNo(code, inst.Name, yearYY, seq)
		seq++
	}

	return sorted, nil
}

// Summary returns the current student count of an institution together with
// its plan-derived capacity limit (nil when unlimited).
func (s *EnrollmentService) Summary(ctx context.Context, inst *models.Institution) (int64, *int64, error) {
	count, err := s.students.CountByInstitution(ctx, inst.ID)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
	}

	limit, err := s.capacityLimit(ctx, inst)
	if err != nil {
		return 0, nil, err
	}

	return count, limit, nil
}

// ensureCapacity rejects the whole batch when admitting additional students
// would exceed the plan limit. The check is not transactional with the
// allocation that follows; two racing batches can both pass and overshoot
// slightly, which is accepted as a soft limit.
func (s *EnrollmentService) ensureCapacity(ctx context.Context, inst *models.Institution, additional int) error {
	limit, err := s.capacityLimit(ctx, inst)
	if err != nil {
		return err
	}
	if limit == nil {
		return nil
	}

	count, err := s.students.CountByInstitution(ctx, inst.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
	}

	if count+int64(additional) > *limit {
		return apperrors.ErrCapacityExceeded
	}

	return nil
}

func (s *EnrollmentService) capacityLimit(ctx context.Context, inst *models.Institution) (*int64, error) {
	if inst.SourcePlanID == nil {
		return nil, nil
	}

	limit, err := s.plans.MaxStudentsForTier(ctx, *inst.SourcePlanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPlanTierNotFound) {
			// Orphaned plan reference; treat as unlimited rather than
			// blocking enrollment.
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
	}

	return limit, nil
}

// getOrAssignCode returns the institution's numeric code, drawing one from
// the global counter on first use. The conditional update in the store
// keeps the first durably written code even when two first-time callers
// race; the extra draw is discarded.
func (s *EnrollmentService) getOrAssignCode(ctx context.Context, inst *models.Institution) (int, error) {
	if inst.InstCode != nil && *inst.InstCode >= 0 {
		return *inst.InstCode, nil
	}

	drawn, err := s.counters.IncrementAndGet(ctx, models.InstitutionCodeCounterKey, 1)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
	}

	code, err := s.institutions.AssignCodeIfAbsent(ctx, inst.ID, int(drawn))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
	}

	inst.InstCode = &code
	return code, nil
}

// reconcile re-synchronizes the per-institution-per-year counter with the
// persisted roll numbers before any reservation.
//
// Counters and rows can diverge through manual edits, deleted test data or
// batches that reserved a range and then failed to persist. Healing is
// deliberately asymmetric: the counter may only be raised to match existing
// data or reset to zero when no matching rows remain. A counter that is too
// high merely wastes numbers; one that is too low would mint duplicates.
func (s *EnrollmentService) reconcile(ctx context.Context, inst *models.Institution, code int, yearYY string) error {
	prefix := RollNoPrefix(code, inst.Name, yearYY)
	key := models.StudentSeqCounterKey(inst.ID, yearYY)

	current, err := s.counters.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCounterNotFound) {
			return fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
		}

		max, err := s.students.MaxRollSuffix(ctx, inst.ID, prefix)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
		}
		if err := s.counters.Set(ctx, key, int64(max)); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
		}
		return nil
	}

	if current > 0 {
		hasAny, err := s.students.HasRollWithPrefix(ctx, inst.ID, prefix)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
		}
		if !hasAny {
			s.logger.Warn().
				Int64("institutionId", inst.ID).
				Str("key", key).
				Int64("counter", current).
				Msg("Counter ahead of empty roster, resetting to zero")
			if err := s.counters.Set(ctx, key, 0); err != nil {
				return fmt.Errorf("%w: %v", apperrors.ErrStorageFailure, err)
			}
		}
	}

	return nil
}

// studentFromInput maps a candidate record onto a Student row, wiring the
// scope foreign key matching the scope variant. Any roll number supplied in
// the input is discarded; the allocator owns that field.
func studentFromInput(inst *models.Institution, scope *models.Scope, in models.StudentInput) *models.Student {
	student := &models.Student{
		InstitutionID: inst.ID,
		AdmissionNo:   in.AdmissionNo,
		Name:          in.Name,
		Gender:        normalizeGender(in.Gender),
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		Pincode:       in.Pincode,
		Parent:        in.Parent,
		Fee:           in.Fee,
		AdmissionDate: time.Now(),
		Status:        models.StudentStatusActive,
	}

	if student.Fee.Currency == "" {
		student.Fee.Currency = "INR"
	}
	if in.Status == string(models.StudentStatusInactive) {
		student.Status = models.StudentStatusInactive
	}
	if in.DOB != "" {
		if dob, err := time.Parse("2006-01-02", in.DOB); err == nil {
			student.DOB = &dob
		}
	}

	switch scope.Type {
	case models.ScopeTypeClass:
		student.ClassID = &scope.ID
	case models.ScopeTypeBatch:
		student.BatchID = &scope.ID
	case models.ScopeTypeCourse:
		student.CourseID = &scope.ID
	}

	return student
}

func normalizeGender(g string) string {
	switch g {
	case "male", "female", "other":
		return g
	case "":
		return "other"
	default:
		return "other"
	}
}
