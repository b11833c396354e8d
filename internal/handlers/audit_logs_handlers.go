package handlers

import (
	"net/http"
	"strconv"

	"tableside/internal/models"
	"tableside/internal/services"

	"github.com/labstack/echo/v4"
)

// AuditLogsHandlers serves the admin action trail.
type AuditLogsHandlers struct {
	auditLogsService services.AuditLogsService
}

// NewAuditLogsHandlers creates a new audit logs handlers instance
func NewAuditLogsHandlers(auditLogsService services.AuditLogsService) *AuditLogsHandlers {
	return &AuditLogsHandlers{
		auditLogsService: auditLogsService,
	}
}

// ListAuditLogs handles GET /admin/audit-logs. Out-of-range limit and offset
// values are clamped, not rejected.
func (h *AuditLogsHandlers) ListAuditLogs(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	logs, err := h.auditLogsService.List(ctx, limit, offset)
	if err != nil {
		return respondError(c, "Audit logs", "Failed to list audit logs", err)
	}

	if logs == nil {
		logs = []*models.AuditLog{}
	}
	return c.JSON(http.StatusOK, logs)
}
