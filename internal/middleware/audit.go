package middleware

import (
	"net/http"
	"strings"

	"tableside/internal/models"
	"tableside/internal/services"

	"github.com/labstack/echo/v4"
)

// entityTypes maps admin route segments to the entity names stored in the
// audit trail. Segments outside this map are not audited.
var entityTypes = map[string]string{
	"categories": "category",
	"menu-items": "menu_item",
	"tables":     "table",
	"orders":     "order",
	"settings":   "settings",
	"seed":       "database",
}

var methodActions = map[string]string{
	http.MethodPost:   models.AuditActionCreate,
	http.MethodPut:    models.AuditActionUpdate,
	http.MethodPatch:  models.AuditActionStatusChange,
	http.MethodDelete: models.AuditActionDelete,
}

// AuditMiddleware records successful admin mutations after the handler ran.
// Reads and failed requests pass through unrecorded.
func AuditMiddleware(audit services.AuditLogsService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				return err
			}

			action, ok := methodActions[c.Request().Method]
			if !ok {
				return nil
			}
			if c.Response().Status >= http.StatusBadRequest {
				return nil
			}

			entityType := entityTypeFromPath(c.Path())
			if entityType == "" {
				return nil
			}
			if entityType == "database" {
				action = models.AuditActionSeed
			}

			detail := map[string]any{
				"method": c.Request().Method,
				"path":   c.Request().URL.Path,
				"status": c.Response().Status,
			}
			audit.Record(c.Request().Context(), action, entityType, c.Param("id"), detail)

			return nil
		}
	}
}

// entityTypeFromPath extracts the route segment after /admin/ and resolves
// it to an entity name.
func entityTypeFromPath(routePath string) string {
	segments := strings.Split(strings.Trim(routePath, "/"), "/")
	for i, segment := range segments {
		if segment == "admin" && i+1 < len(segments) {
			return entityTypes[segments[i+1]]
		}
	}
	return ""
}
