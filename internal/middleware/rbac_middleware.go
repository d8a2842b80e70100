package middleware

import (
	"context"
	"net/http"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"
	"go-hrms/internal/tenant"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authorizer is satisfied by the rbac service. Declared here so route packages
// can depend on the middleware without importing rbac.
type Authorizer interface {
	Can(ctx context.Context, scope tenant.Scope, employeeID, resource, action string) (bool, error)
}

func RBACAuthorize(authz Authorizer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, err := tenant.FromGin(c)
		employeeID := c.GetString(ContextEmployeeID)
		if err != nil || employeeID == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := authz.Can(c.Request.Context(), scope, employeeID, resource, action)
		if err != nil {
			zap.L().Named("middleware.rbac").Error("rbac enforce failed",
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			abortWith(c, apperror.ErrInternal)
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, apperror.ErrForbidden.Message, gin.H{
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
