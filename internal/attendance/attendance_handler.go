package attendance

import (
	"net/http"
	"strings"
	"time"

	attendanceerrors "go-ems/internal/attendance/errors"
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
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Employees without a privileged role only ever see their own rows.
func isPrivilegedRole(role string) bool {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case rbac.RoleAdmin, rbac.RoleHR, rbac.RoleManager:
		return true
	default:
		return false
	}
}

func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.CheckOut(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	resp, err := h.service.Approve(c.Request.Context(), c.GetString("company_id"), c.GetString("employee_id"), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var filter GetAttendanceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", err.Error())
		return
	}
	if !isPrivilegedRole(c.GetString("role")) {
		filter.EmployeeID = c.GetString("employee_id")
	}

	resp, err := h.service.GetAll(c.Request.Context(), c.GetString("company_id"), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Paginate(c, http.StatusOK, resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !isPrivilegedRole(c.GetString("role")) && resp.EmployeeID != c.GetString("employee_id") {
		writeServiceError(c, attendanceerrors.ErrAttendanceNotFound)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", err.Error())
		return
	}
	if req.EmployeeID == "" || !isPrivilegedRole(c.GetString("role")) {
		req.EmployeeID = c.GetString("employee_id")
	}

	from, err := time.Parse(dateLayout, req.From)
	if err != nil {
		writeServiceError(c, attendanceerrors.ErrInvalidDate)
		return
	}
	to, err := time.Parse(dateLayout, req.To)
	if err != nil {
		writeServiceError(c, attendanceerrors.ErrInvalidDate)
		return
	}

	sum, err := h.service.Summary(c.Request.Context(), c.GetString("company_id"), req.EmployeeID, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, SummaryResponse{
		EmployeeID:    req.EmployeeID,
		From:          req.From,
		To:            req.To,
		WorkingDays:   sum.WorkingDays,
		OvertimeHours: sum.OvertimeHours.StringFixed(2),
	}, nil)
}
