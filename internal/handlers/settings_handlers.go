package handlers

import (
	"net/http"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/services"

	"github.com/labstack/echo/v4"
)

// SettingsHandlers serves restaurant-wide settings. The public read falls
// back to defaults when nothing has been stored yet.
type SettingsHandlers struct {
	settingsService services.SettingsService
}

func NewSettingsHandlers(settingsService services.SettingsService) *SettingsHandlers {
	return &SettingsHandlers{
		settingsService: settingsService,
	}
}

// GetSettings handles GET /settings
func (h *SettingsHandlers) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.Get(c.Request().Context())
	if err != nil {
		return respondError(c, "Settings", "Failed to load settings", err)
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /admin/settings
func (h *SettingsHandlers) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()

	var update models.SettingsUpdate
	if err := c.Bind(&update); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	settings, err := h.settingsService.Update(ctx, &update)
	if err != nil {
		return respondError(c, "Settings", "Failed to update settings", err)
	}

	return c.JSON(http.StatusOK, settings)
}
