package leave

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
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func actorID(c *gin.Context) string {
	return c.GetString(middleware.ContextEmployeeID)
}

func (h *Handler) CreateLeaveType(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req CreateLeaveTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave type validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.CreateLeaveType(c.Request.Context(), scope, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetLeaveTypes(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetLeaveTypes(c.Request.Context(), scope)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Create files a request for the authenticated employee.
func (h *Handler) Create(c *gin.Context) {
	h.create(c, actorID(c))
}

// CreateForEmployee files a request on behalf of the employee in the path.
func (h *Handler) CreateForEmployee(c *gin.Context) {
	h.create(c, c.Param("id"))
}

func (h *Handler) create(c *gin.Context, employeeID string) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http create leave request",
		zap.String("organization_id", scope.String()),
		zap.String("employee_id", employeeID),
	)

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave request validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.CreateRequest(c.Request.Context(), scope, employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var status *string
	if v, ok := c.GetQuery("status"); ok && v != "" {
		status = &v
	}

	resp, err := h.service.GetAll(c.Request.Context(), scope, status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := pagination.Slice(resp, pagination.FromQuery(c))
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) GetPending(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetPendingRequests(c.Request.Context(), scope)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMine(c *gin.Context) {
	h.listForEmployee(c, actorID(c))
}

func (h *Handler) GetForEmployee(c *gin.Context) {
	h.listForEmployee(c, c.Param("id"))
}

func (h *Handler) listForEmployee(c *gin.Context, employeeID string) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByEmployee(c.Request.Context(), scope, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req UpdateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update leave status validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), scope, c.Param("id"), actorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.CancelRequest(c.Request.Context(), scope, c.Param("id"), actorID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
