package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	CounterRepository     *CounterRepository
	InstitutionRepository *InstitutionRepository
	ScopeRepository       *ScopeRepository
	StudentRepository     *StudentRepository
	PlanRepository        *PlanRepository
	FeatureRepository     *FeatureRepository
	CouponRepository      *CouponRepository
	PaymentRepository     *PaymentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CounterRepository:     NewCounterRepository(db),
		InstitutionRepository: NewInstitutionRepository(db),
		ScopeRepository:       NewScopeRepository(db),
		StudentRepository:     NewStudentRepository(db),
		PlanRepository:        NewPlanRepository(db),
		FeatureRepository:     NewFeatureRepository(db),
		CouponRepository:      NewCouponRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
	}
}
