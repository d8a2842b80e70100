package attendance

import (
	"net/http"

	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/pagination"
	"go-hrms/internal/shared/response"
	"go-hrms/internal/tenant"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	authz   middleware.Authorizer
	logger  *zap.Logger
}

func NewHandler(service Service, authz middleware.Authorizer, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, authz: authz, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ClockIn(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), scope, c.GetString(middleware.ContextEmployeeID), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), scope, c.GetString(middleware.ContextEmployeeID), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	ctx := c.Request.Context()
	actorID := c.GetString(middleware.ContextEmployeeID)

	canReadAll, err := h.authz.Can(ctx, scope, actorID, "attendance", "read_all")
	if err != nil {
		h.logger.Warn("attendance read_all check failed", zap.String("employee_id", actorID), zap.Error(err))
		canReadAll = false
	}

	resp, err := h.service.GetAll(ctx, scope, actorID, canReadAll)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := pagination.Slice(resp, pagination.FromQuery(c))
	response.Success(c, http.StatusOK, page, &meta)
}
