package dashboard

import (
	"net/http"
	"strings"

	dashboarderrors "go-ems/internal/dashboard/errors"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("dashboard.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("dashboard request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func isPrivilegedRole(role string) bool {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case rbac.RoleAdmin, rbac.RoleHR, rbac.RoleManager:
		return true
	default:
		return false
	}
}

func (h *Handler) CompanySummary(c *gin.Context) {
	resp, err := h.service.CompanySummary(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// EmployeeMonthly answers "me" for the caller's own employee id.
func (h *Handler) EmployeeMonthly(c *gin.Context) {
	var req MonthlyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", err.Error())
		return
	}

	employeeID := c.Param("id")
	if employeeID == "me" {
		employeeID = c.GetString("employee_id")
	}
	if !isPrivilegedRole(c.GetString("role")) && employeeID != c.GetString("employee_id") {
		h.writeServiceError(c, dashboarderrors.ErrEmployeeNotFound)
		return
	}

	resp, err := h.service.EmployeeMonthly(c.Request.Context(), c.GetString("company_id"), employeeID, req.Period)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
