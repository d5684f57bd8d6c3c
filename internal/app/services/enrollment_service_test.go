package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyalayahq/vidyalaya/internal/app/models"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

// fakeCounters is an in-memory CounterStore safe for concurrent use. A
// non-nil failIncrement makes every IncrementAndGet fail.
type fakeCounters struct {
	mu            sync.Mutex
	values        map[string]int64
	failIncrement error
}

func newFakeCounters() *fakeCounters {
	return &fakeCounters{values: map[string]int64{}}
}

func (f *fakeCounters) IncrementAndGet(_ context.Context, key string, delta int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIncrement != nil {
		return 0, f.failIncrement
	}
	f.values[key] += delta
	return f.values[key], nil
}

func (f *fakeCounters) Get(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return 0, apperrors.ErrCounterNotFound
	}
	return v, nil
}

func (f *fakeCounters) Set(_ context.Context, key string, value int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

// fakeStudents is an in-memory StudentStore. A non-nil failInsert makes
// every InsertBatch fail before writing anything.
type fakeStudents struct {
	mu         sync.Mutex
	rows       []*models.Student
	nextID     int64
	failInsert error
}

func (f *fakeStudents) MaxRollSuffix(_ context.Context, institutionID int64, prefix string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	max := 0
	for _, s := range f.rows {
		if s.InstitutionID != institutionID || s.RollNo == nil {
			continue
		}
		roll := *s.RollNo
		if !strings.HasPrefix(roll, prefix) || len(roll) < 4 {
			continue
		}
		if suffix, err := strconv.Atoi(roll[len(roll)-4:]); err == nil && suffix > max {
			max = suffix
		}
	}
	return max, nil
}

func (f *fakeStudents) HasRollWithPrefix(_ context.Context, institutionID int64, prefix string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.rows {
		if s.InstitutionID == institutionID && s.RollNo != nil && strings.HasPrefix(*s.RollNo, prefix) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudents) CountByInstitution(_ context.Context, institutionID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, s := range f.rows {
		if s.InstitutionID == institutionID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStudents) InsertBatch(_ context.Context, students []*models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert != nil {
		return f.failInsert
	}
	seen := map[string]bool{}
	for _, s := range f.rows {
		if s.RollNo != nil {
			seen[*s.RollNo] = true
		}
	}
	for _, s := range students {
		if s.RollNo != nil && seen[*s.RollNo] {
			return apperrors.ErrRollNoExists
		}
	}
	for _, s := range students {
		f.nextID++
		s.ID = f.nextID
		s.CreatedAt = time.Now()
		s.UpdatedAt = s.CreatedAt
		f.rows = append(f.rows, s)
	}
	return nil
}

// fakeInstitutions serves a single institution.
type fakeInstitutions struct {
	mu   sync.Mutex
	inst *models.Institution
}

func (f *fakeInstitutions) GetByIDForOwner(_ context.Context, id int64, ownerUserID string) (*models.Institution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inst.ID != id || f.inst.OwnerUserID != ownerUserID {
		return nil, apperrors.ErrInstitutionNotFound
	}
	return f.inst, nil
}

func (f *fakeInstitutions) AssignCodeIfAbsent(_ context.Context, id int64, code int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inst.ID != id {
		return 0, apperrors.ErrInstitutionNotFound
	}
	if f.inst.InstCode == nil {
		f.inst.InstCode = &code
	}
	return *f.inst.InstCode, nil
}

// fakeScopes serves a single scope entity.
type fakeScopes struct {
	scope *models.Scope
}

func (f *fakeScopes) GetScope(_ context.Context, scopeType models.ScopeType, id int64) (*models.Scope, error) {
	if f.scope.Type != scopeType || f.scope.ID != id {
		return nil, apperrors.ErrScopeNotFound
	}
	return f.scope, nil
}

// fakePlans maps tier ids to limits.
type fakePlans struct {
	limits map[int64]*int64
}

func (f *fakePlans) MaxStudentsForTier(_ context.Context, tierID int64) (*int64, error) {
	limit, ok := f.limits[tierID]
	if !ok {
		return nil, apperrors.ErrPlanTierNotFound
	}
	return limit, nil
}

type enrollmentFixture struct {
	svc      *EnrollmentService
	counters *fakeCounters
	students *fakeStudents
	inst     *models.Institution
	scope    *models.Scope
}

func newEnrollmentFixture(t *testing.T, limits map[int64]*int64) *enrollmentFixture {
	t.Helper()

	code := 7
	inst := &models.Institution{
		ID:          1,
		Name:        "St. Mary's School",
		Type:        models.InstitutionTypeSchool,
		InstCode:    &code,
		OwnerUserID: "owner-1",
	}
	scope := &models.Scope{
		Type:          models.ScopeTypeClass,
		ID:            10,
		InstitutionID: 1,
		Name:          "Class 5",
	}

	counters := newFakeCounters()
	students := &fakeStudents{}

	svc := NewEnrollmentService(
		counters,
		students,
		&fakeInstitutions{inst: inst},
		&fakeScopes{scope: scope},
		&fakePlans{limits: limits},
		zerolog.Nop(),
	)

	return &enrollmentFixture{
		svc:      svc,
		counters: counters,
		students: students,
		inst:     inst,
		scope:    scope,
	}
}

func currentYearYY() string {
	return time.Now().Format("06")
}

func rollSuffix(t *testing.T, s *models.Student) int {
	t.Helper()
	require.NotNil(t, s.RollNo)
	roll := *s.RollNo
	require.GreaterOrEqual(t, len(roll), 4)
	suffix, err := strconv.Atoi(roll[len(roll)-4:])
	require.NoError(t, err)
	return suffix
}

func TestAllocateSortsByNameBeforeAssigning(t *testing.T) {
	f := newEnrollmentFixture(t, nil)

	students, err := f.svc.Enroll(context.Background(), "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{
		{Name: "Zara"},
		{Name: "Amir"},
	})
	require.NoError(t, err)
	require.Len(t, students, 2)

	yy := currentYearYY()
	assert.Equal(t, "Amir", students[0].Name)
	assert.Equal(t, "0007ST"+yy+"0001", *students[0].RollNo)
	assert.Equal(t, "Zara", students[1].Name)
	assert.Equal(t, "0007ST"+yy+"0002", *students[1].RollNo)
}

func TestEnrollSingleAddContinuesSequence(t *testing.T) {
	f := newEnrollmentFixture(t, nil)
	ctx := context.Background()

	first, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{{Name: "Asha"}})
	require.NoError(t, err)
	assert.Equal(t, 1, rollSuffix(t, first[0]))

	// A bulk batch after a single add continues where the counter left off.
	second, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{
		{Name: "Bela"},
		{Name: "Chand"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rollSuffix(t, second[0]))
	assert.Equal(t, 3, rollSuffix(t, second[1]))
}

func TestEnrollEmptyBatch(t *testing.T) {
	f := newEnrollmentFixture(t, nil)

	_, err := f.svc.Enroll(context.Background(), "owner-1", models.ScopeTypeClass, 10, nil)
	assert.ErrorIs(t, err, apperrors.ErrEmptyBatch)
}

func TestEnrollCounterFailureLeavesNothingPersisted(t *testing.T) {
	f := newEnrollmentFixture(t, nil)
	f.counters.failIncrement = errors.New("connection reset by peer")
	ctx := context.Background()

	_, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{
		{Name: "Asha"},
		{Name: "Bela"},
	})
	assert.ErrorIs(t, err, apperrors.ErrStorageFailure)

	count, err := f.students.CountByInstitution(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestEnrollInsertFailureLeavesNothingPersisted(t *testing.T) {
	f := newEnrollmentFixture(t, nil)
	f.students.failInsert = errors.New("deadlock detected")
	ctx := context.Background()

	_, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{
		{Name: "Asha"},
		{Name: "Bela"},
	})
	assert.ErrorIs(t, err, apperrors.ErrStorageFailure)

	// The reserved block is abandoned as a gap; nothing was written.
	f.students.failInsert = nil
	count, err := f.students.CountByInstitution(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// A duplicate roll number is a conflict for the caller, not a storage
	// failure.
	yy := currentYearYY()
	taken := "0007ST" + yy + "0003"
	require.NoError(t, f.students.InsertBatch(ctx, []*models.Student{
		{InstitutionID: 1, Name: "Existing", RollNo: &taken},
	}))
	require.NoError(t, f.counters.Set(ctx, models.StudentSeqCounterKey(1, yy), 2))

	_, err = f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{{Name: "Clash"}})
	assert.ErrorIs(t, err, apperrors.ErrRollNoExists)
	assert.NotErrorIs(t, err, apperrors.ErrStorageFailure)
}

func TestReconcileInitializesCounterFromRoster(t *testing.T) {
	f := newEnrollmentFixture(t, nil)
	ctx := context.Background()

	// A persisted student exists but the counter row is gone.
	yy := currentYearYY()
	existing := "0007ST" + yy + "0007"
	require.NoError(t, f.students.InsertBatch(ctx, []*models.Student{
		{InstitutionID: 1, Name: "Existing", RollNo: &existing},
	}))

	students, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{{Name: "New"}})
	require.NoError(t, err)
	assert.Equal(t, 8, rollSuffix(t, students[0]))
}

func TestReconcileResetsCounterForEmptyRoster(t *testing.T) {
	f := newEnrollmentFixture(t, nil)
	ctx := context.Background()

	// Counter claims 50 numbers were handed out but no matching students
	// survive, e.g. after test data was wiped.
	key := models.StudentSeqCounterKey(1, currentYearYY())
	require.NoError(t, f.counters.Set(ctx, key, 50))

	students, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{{Name: "Fresh"}})
	require.NoError(t, err)
	assert.Equal(t, 1, rollSuffix(t, students[0]))
}

func TestReconcileKeepsCounterWhenRosterMatches(t *testing.T) {
	f := newEnrollmentFixture(t, nil)
	ctx := context.Background()

	first, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{{Name: "Asha"}})
	require.NoError(t, err)
	assert.Equal(t, 1, rollSuffix(t, first[0]))

	second, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{{Name: "Bela"}})
	require.NoError(t, err)
	assert.Equal(t, 2, rollSuffix(t, second[0]))
}

func TestCapacityRejectsWholeBatch(t *testing.T) {
	limit := int64(10)
	f := newEnrollmentFixture(t, map[int64]*int64{5: &limit})
	tierID := int64(5)
	f.inst.SourcePlanID = &tierID
	ctx := context.Background()

	var seeded []models.StudentInput
	for i := 0; i < 9; i++ {
		seeded = append(seeded, models.StudentInput{Name: fmt.Sprintf("Student %02d", i)})
	}
	_, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, seeded)
	require.NoError(t, err)

	// One slot left: a batch of two is rejected wholesale, not split.
	_, err = f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{
		{Name: "Tenth"},
		{Name: "Eleventh"},
	})
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	count, err := f.students.CountByInstitution(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(9), count)

	// A batch of one still fits.
	_, err = f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{{Name: "Tenth"}})
	assert.NoError(t, err)
}

func TestCapacityUnlimitedWhenNoPlan(t *testing.T) {
	f := newEnrollmentFixture(t, nil)

	var inputs []models.StudentInput
	for i := 0; i < 30; i++ {
		inputs = append(inputs, models.StudentInput{Name: fmt.Sprintf("Student %02d", i)})
	}
	students, err := f.svc.Enroll(context.Background(), "owner-1", models.ScopeTypeClass, 10, inputs)
	require.NoError(t, err)
	assert.Len(t, students, 30)
}

func TestCapacityOrphanedPlanTreatedAsUnlimited(t *testing.T) {
	f := newEnrollmentFixture(t, map[int64]*int64{})
	tierID := int64(99)
	f.inst.SourcePlanID = &tierID

	students, err := f.svc.Enroll(context.Background(), "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{{Name: "Asha"}})
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestConcurrentBatchesGetDisjointContiguousBlocks(t *testing.T) {
	f := newEnrollmentFixture(t, nil)
	ctx := context.Background()

	// Warm up the counter so the concurrent batches skip the first-use
	// reconcile path.
	_, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{{Name: "Seed"}})
	require.NoError(t, err)

	sizes := []int{3, 5}
	results := make([][]*models.Student, len(sizes))
	errs := make([]error, len(sizes))

	var wg sync.WaitGroup
	for i, size := range sizes {
		wg.Add(1)
		go func(i, size int) {
			defer wg.Done()
			var inputs []models.StudentInput
			for j := 0; j < size; j++ {
				inputs = append(inputs, models.StudentInput{Name: fmt.Sprintf("Batch %d student %d", i, j)})
			}
			results[i], errs[i] = f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, inputs)
		}(i, size)
	}
	wg.Wait()

	allSuffixes := map[int]bool{1: true} // the seed student
	for i := range sizes {
		require.NoError(t, errs[i])
		require.Len(t, results[i], sizes[i])

		// Each batch owns one contiguous block.
		suffixes := make([]int, len(results[i]))
		for j, s := range results[i] {
			suffixes[j] = rollSuffix(t, s)
		}
		min, max := suffixes[0], suffixes[0]
		for _, v := range suffixes {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			assert.False(t, allSuffixes[v], "suffix %d handed out twice", v)
			allSuffixes[v] = true
		}
		assert.Equal(t, len(suffixes)-1, max-min, "batch block not contiguous: %v", suffixes)
	}

	// Nothing skipped overall: 1 seed + 3 + 5 students cover 1..9.
	assert.Len(t, allSuffixes, 9)
	for i := 1; i <= 9; i++ {
		assert.True(t, allSuffixes[i], "suffix %d missing", i)
	}
}

func TestPreviewDoesNotReserve(t *testing.T) {
	f := newEnrollmentFixture(t, nil)
	ctx := context.Background()

	preview, err := f.svc.Preview(ctx, f.inst, []models.StudentInput{
		{Name: "Zara"},
		{Name: "Amir"},
	})
	require.NoError(t, err)
	require.Len(t, preview, 2)

	yy := currentYearYY()
	assert.Equal(t, "Amir", preview[0].Name)
	assert.Equal(t, "0007ST"+yy+"0001", preview[0].RollNo)
	assert.Equal(t, "0007ST"+yy+"0002", preview[1].RollNo)

	// The projection reserved nothing: a real enrollment starts at 1.
	students, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{{Name: "Amir"}})
	require.NoError(t, err)
	assert.Equal(t, 1, rollSuffix(t, students[0]))
}

func TestGetOrAssignCodeDrawsOnce(t *testing.T) {
	f := newEnrollmentFixture(t, nil)
	f.inst.InstCode = nil
	ctx := context.Background()

	first, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{{Name: "Asha"}})
	require.NoError(t, err)
	second, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{{Name: "Bela"}})
	require.NoError(t, err)

	// Both enrollments carry the same code and the global counter moved once.
	assert.Equal(t, (*first[0].RollNo)[:4], (*second[0].RollNo)[:4])
	drawn, err := f.counters.Get(ctx, models.InstitutionCodeCounterKey)
	require.NoError(t, err)
	assert.Equal(t, int64(1), drawn)
}

func TestResolveScopeOwnershipAndVariant(t *testing.T) {
	f := newEnrollmentFixture(t, nil)
	ctx := context.Background()

	// Foreign owner sees not-found, not forbidden.
	_, _, err := f.svc.ResolveScope(ctx, "someone-else", models.ScopeTypeClass, 10)
	assert.ErrorIs(t, err, apperrors.ErrScopeNotFound)

	// A class scope under a coaching institution is a variant mismatch.
	f.inst.Type = models.InstitutionTypeCoaching
	_, _, err = f.svc.ResolveScope(ctx, "owner-1", models.ScopeTypeClass, 10)
	assert.ErrorIs(t, err, apperrors.ErrScopeTypeMismatch)

	// Unknown variant fails validation before any lookup.
	_, _, err = f.svc.ResolveScope(ctx, "owner-1", models.ScopeType("grade"), 10)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSummaryReportsCountAndLimit(t *testing.T) {
	limit := int64(100)
	f := newEnrollmentFixture(t, map[int64]*int64{5: &limit})
	tierID := int64(5)
	f.inst.SourcePlanID = &tierID
	ctx := context.Background()

	_, err := f.svc.Enroll(ctx, "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{
		{Name: "Asha"}, {Name: "Bela"},
	})
	require.NoError(t, err)

	count, gotLimit, err := f.svc.Summary(ctx, f.inst)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.NotNil(t, gotLimit)
	assert.Equal(t, int64(100), *gotLimit)
}

func TestStudentFromInputIgnoresSuppliedRollNo(t *testing.T) {
	f := newEnrollmentFixture(t, nil)

	students, err := f.svc.Enroll(context.Background(), "owner-1", models.ScopeTypeClass, 10, []models.StudentInput{
		{Name: "Asha", RollNo: "CUSTOM-42"},
	})
	require.NoError(t, err)

	yy := currentYearYY()
	assert.Equal(t, "0007ST"+yy+"0001", *students[0].RollNo)
	require.NotNil(t, students[0].ClassID)
	assert.Equal(t, int64(10), *students[0].ClassID)
	assert.Equal(t, "INR", students[0].Fee.Currency)
	assert.Equal(t, models.StudentStatusActive, students[0].Status)
}
