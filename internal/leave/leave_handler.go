package leave

import (
	"net/http"
	"strings"

	leaveerrors "go-ems/internal/leave/errors"
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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id")
	}
	return actorID
}

func isPrivilegedRole(role string) bool {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case rbac.RoleAdmin, rbac.RoleHR, rbac.RoleManager:
		return true
	default:
		return false
	}
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

// ensureOwner hides other employees' applications from non-privileged callers.
func (h *Handler) ensureOwner(c *gin.Context, id string) bool {
	if isPrivilegedRole(c.GetString("role")) {
		return true
	}
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("company_id"), id)
	if err != nil {
		h.writeServiceError(c, err)
		return false
	}
	if resp.EmployeeID != c.GetString("employee_id") {
		h.writeServiceError(c, leaveerrors.ErrLeaveNotFound)
		return false
	}
	return true
}

func (h *Handler) Apply(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)
	h.logger.Debug("http apply leave", zap.String("company_id", companyID), zap.String("actor_id", actorID))

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}
	if !isPrivilegedRole(c.GetString("role")) {
		req.EmployeeID = c.GetString("employee_id")
	}

	resp, err := h.service.Apply(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var filter GetLeavesFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", err.Error())
		return
	}
	if !isPrivilegedRole(c.GetString("role")) {
		filter.EmployeeID = c.GetString("employee_id")
	}

	resp, err := h.service.GetAll(c.Request.Context(), c.GetString("company_id"), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Paginate(c, http.StatusOK, resp)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !isPrivilegedRole(c.GetString("role")) && resp.EmployeeID != c.GetString("employee_id") {
		h.writeServiceError(c, leaveerrors.ErrLeaveNotFound)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}
	id := c.Param("id")
	if !h.ensureOwner(c, id) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.GetString("company_id"), getActorID(c), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	resp, err := h.service.Approve(c.Request.Context(), c.GetString("company_id"), getActorID(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), c.GetString("company_id"), getActorID(c), c.Param("id"), req.RejectionReason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if !h.ensureOwner(c, id) {
		return
	}

	resp, err := h.service.Cancel(c.Request.Context(), c.GetString("company_id"), getActorID(c), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !h.ensureOwner(c, id) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetString("company_id"), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id}, nil)
}

func (h *Handler) Balances(c *gin.Context) {
	employeeID := c.Query("employee_id")
	if employeeID == "" || !isPrivilegedRole(c.GetString("role")) {
		employeeID = c.GetString("employee_id")
	}

	resp, err := h.service.Balances(c.Request.Context(), c.GetString("company_id"), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
