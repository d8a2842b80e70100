package employee

import (
	"net/http"
	"sort"
	"strings"

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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http create employee", zap.String("organization_id", scope.String()))

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll supports ?q= (name, email or code), ?status=, ?sort_by=name|code|joining_date,
// ?sort_dir= and page/page_size.
func (h *Handler) GetAll(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), scope)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	q := strings.TrimSpace(strings.ToLower(c.Query("q")))
	status := strings.TrimSpace(strings.ToUpper(c.Query("status")))
	if q != "" || status != "" {
		filtered := make([]EmployeeResponse, 0, len(resp))
		for _, e := range resp {
			if status != "" && e.Status != status {
				continue
			}
			if q != "" &&
				!strings.Contains(strings.ToLower(e.FullName), q) &&
				!strings.Contains(strings.ToLower(e.Email), q) &&
				!strings.Contains(strings.ToLower(e.EmployeeCode), q) {
				continue
			}
			filtered = append(filtered, e)
		}
		resp = filtered
	}

	sortBy := strings.ToLower(strings.TrimSpace(c.DefaultQuery("sort_by", "name")))
	desc := strings.ToLower(strings.TrimSpace(c.Query("sort_dir"))) == "desc"
	sort.SliceStable(resp, func(i, j int) bool {
		a, b := resp[i], resp[j]
		if desc {
			a, b = b, a
		}
		switch sortBy {
		case "code":
			return a.EmployeeCode < b.EmployeeCode
		case "joining_date":
			return a.JoiningDate < b.JoiningDate
		default:
			return strings.ToLower(a.FullName) < strings.ToLower(b.FullName)
		}
	})

	page, meta := pagination.Slice(resp, pagination.FromQuery(c))
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetOptions(c.Request.Context(), scope)
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
	id := c.Param("id")
	h.logger.Debug("http get employee by id",
		zap.String("organization_id", scope.String()),
		zap.String("employee_id", id),
	)

	resp, err := h.service.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var patch EmployeePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("http update employee validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), scope, c.Param("id"), patch)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	scope, err := tenant.FromGin(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), scope, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
