package organization

import (
	"context"

	"go-hrms/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=organization_repo.go -destination=mock/organization_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByScope(ctx context.Context, scope tenant.Scope) (*Organization, error)
	Update(ctx context.Context, org *Organization) error
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

// FindByScope loads the organization the scope was built for. The organization
// row is the tenant root, so its own id is the filter.
func (r *repository) FindByScope(ctx context.Context, scope tenant.Scope) (*Organization, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	var org Organization
	err := r.db.WithContext(ctx).First(&org, "id = ?", scope.OrganizationID()).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *repository) Update(ctx context.Context, org *Organization) error {
	return r.db.WithContext(ctx).
		Model(org).
		Select("name", "logo_url", "updated_at").
		Updates(org).Error
}
