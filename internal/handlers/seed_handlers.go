package handlers

import (
	"net/http"

	"tableside/internal/services"

	"github.com/labstack/echo/v4"
)

// SeedHandlers resets the catalog to the built-in demo dataset.
type SeedHandlers struct {
	seedService services.SeedService
}

func NewSeedHandlers(seedService services.SeedService) *SeedHandlers {
	return &SeedHandlers{
		seedService: seedService,
	}
}

// Seed handles POST /admin/seed
func (h *SeedHandlers) Seed(c echo.Context) error {
	result, err := h.seedService.Seed(c.Request().Context())
	if err != nil {
		return respondError(c, "Seed", "Failed to seed database", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":    "Database seeded successfully",
		"tables":     result.Tables,
		"categories": result.Categories,
		"menuItems":  result.MenuItems,
	})
}
