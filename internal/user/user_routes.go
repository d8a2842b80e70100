package user

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts account management under the employee it belongs to.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	account := r.Group("/employees/:id/account")
	{
		account.GET("",
			middleware.RBACAuthorize(authz, "employee", "read"),
			handler.Get,
		)
		account.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(authz, "employee", "manage_account"),
			handler.Provision,
		)
		account.PATCH("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "employee", "manage_account"),
			handler.SetActive,
		)
	}
}
