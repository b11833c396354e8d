package handlers

import (
	"net/http"

	"tableside/internal/services"

	"github.com/labstack/echo/v4"
)

// MenuHandlers serves the public menu snapshot.
type MenuHandlers struct {
	menuService services.MenuService
}

func NewMenuHandlers(menuService services.MenuService) *MenuHandlers {
	return &MenuHandlers{
		menuService: menuService,
	}
}

// GetMenu handles GET /menu
func (h *MenuHandlers) GetMenu(c echo.Context) error {
	menu, err := h.menuService.GetMenu(c.Request().Context(), false)
	if err != nil {
		return respondError(c, "Menu", "Failed to load menu", err)
	}
	return c.JSON(http.StatusOK, menu)
}

// GetFullMenu handles GET /menu/all, including currently unavailable items.
func (h *MenuHandlers) GetFullMenu(c echo.Context) error {
	menu, err := h.menuService.GetMenu(c.Request().Context(), true)
	if err != nil {
		return respondError(c, "Menu", "Failed to load menu", err)
	}
	return c.JSON(http.StatusOK, menu)
}
