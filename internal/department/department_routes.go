package department

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authz middleware.Authorizer) {
	departments := r.Group("/departments")
	{
		departments.GET("", middleware.RBACAuthorize(authz, "department", "read"), h.GetAll)
		departments.POST("", middleware.RBACAuthorize(authz, "department", "create"), h.Create)
		departments.GET("/:id", middleware.RBACAuthorize(authz, "department", "read"), h.GetByID)
		departments.PUT("/:id", middleware.RBACAuthorize(authz, "department", "update"), h.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(authz, "department", "delete"), h.Delete)
	}
}
