package organization

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer) {
	org := r.Group("/organization")
	{
		org.GET("", handler.Get)
		// Rarely changed; one write per ten seconds per user.
		org.PUT("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(authz, "organization", "update"),
			handler.Update,
		)
		org.GET("/dashboard",
			middleware.RBACAuthorize(authz, "organization", "read"),
			handler.GetDashboardStats,
		)
	}
}
