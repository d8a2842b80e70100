package tenant

import (
	"errors"
	"net/http"

	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContextKey is where the auth middleware stores the caller's organization id.
const ContextKey = "organization_id"

var (
	ErrMissingOrganization = apperror.New(
		apperror.CodeUnauthorized,
		"organization context is missing or invalid",
		http.StatusUnauthorized,
	)
	// ErrUnscopedQuery is attached to any gorm statement built from a zero Scope.
	ErrUnscopedQuery = errors.New("tenant: query without organization scope")
)

// Scope is the capability every tenant-owned query needs. It can only be obtained
// from a valid organization id, and its zero value refuses to build queries.
type Scope struct {
	orgID uuid.UUID
}

func New(orgID string) (Scope, error) {
	id, err := uuid.Parse(orgID)
	if err != nil || id == uuid.Nil {
		return Scope{}, ErrMissingOrganization
	}
	return Scope{orgID: id}, nil
}

// FromGin builds the scope from the authenticated context, never from the request body.
func FromGin(c *gin.Context) (Scope, error) {
	return New(c.GetString(ContextKey))
}

func (s Scope) OrganizationID() uuid.UUID {
	return s.orgID
}

func (s Scope) String() string {
	return s.orgID.String()
}

func (s Scope) IsZero() bool {
	return s.orgID == uuid.Nil
}

func (s Scope) Validate() error {
	if s.IsZero() {
		return ErrUnscopedQuery
	}
	return nil
}

// Owns reports whether a record stamped with orgID belongs to this scope.
func (s Scope) Owns(orgID uuid.UUID) bool {
	return !s.IsZero() && s.orgID == orgID
}

// Apply filters on the organization_id column of the statement's own table.
func (s Scope) Apply(db *gorm.DB) *gorm.DB {
	if s.IsZero() {
		_ = db.AddError(ErrUnscopedQuery)
		return db
	}
	return db.Where("organization_id = ?", s.orgID)
}

// On filters on a qualified organization_id column, for queries that reach the
// tenant through a joined table.
func (s Scope) On(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.IsZero() {
			_ = db.AddError(ErrUnscopedQuery)
			return db
		}
		return db.Where(table+".organization_id = ?", s.orgID)
	}
}
