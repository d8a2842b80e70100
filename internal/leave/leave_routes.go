package leave

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	{
		leaves.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, "leave", "read"),
			handler.GetAll,
		)

		// Every authenticated employee may file and follow their own requests.
		leaves.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.GET("/me", middleware.RateLimitByUser(3, 10), handler.GetMine)
		leaves.POST("/:id/cancel", middleware.RateLimitByUser(0.5, 2), handler.Cancel)

		leaves.GET("/pending",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, "leave", "manage"),
			handler.GetPending,
		)

		leaves.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, "leave", "read"),
			handler.GetByID,
		)

		leaves.PATCH("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "leave", "approve"),
			handler.UpdateStatus,
		)
	}

	types := r.Group("/leave-types")
	{
		types.GET("", middleware.RateLimitByUser(3, 10), handler.GetLeaveTypes)
		types.POST("",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(authz, "leave_type", "create"),
			handler.CreateLeaveType,
		)
	}

	onBehalf := r.Group("/employees/:id/leaves")
	{
		onBehalf.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(authz, "leave", "read"),
			handler.GetForEmployee,
		)
		onBehalf.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(authz, "leave", "create"),
			handler.CreateForEmployee,
		)
	}
}
