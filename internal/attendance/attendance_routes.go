package attendance

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendances := r.Group("/attendances")
	{
		attendances.GET("", middleware.RateLimitByUser(3, 10), h.GetAll)
		attendances.POST("/clock-in", middleware.RateLimitByUser(0.2, 2), h.ClockIn)
		attendances.POST("/clock-out", middleware.RateLimitByUser(0.2, 2), h.ClockOut)
	}
}
