package counter

import (
	"context"
	"time"

	"go-hrms/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const EmployeeCode = "employee_code"

// OrganizationCounter backs per-organization sequences such as employee codes.
type OrganizationCounter struct {
	OrganizationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CounterType    string    `gorm:"type:varchar(50);primaryKey"`
	LastValue      int64     `gorm:"not null;default:0"`
	UpdatedAt      time.Time
}

func (OrganizationCounter) TableName() string {
	return "organization_counters"
}

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetNextValue(ctx context.Context, scope tenant.Scope, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetNextValue(ctx context.Context, scope tenant.Scope, counterType string) (int64, error) {
	if err := scope.Validate(); err != nil {
		return 0, err
	}

	var nextValue int64

	// Atomic upsert so concurrent creates in one organization never share a value.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO organization_counters (organization_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (organization_id, counter_type) DO UPDATE
		SET last_value = organization_counters.last_value + 1, updated_at = CURRENT_TIMESTAMP
		RETURNING last_value
	`, scope.OrganizationID(), counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
