package handlers

import (
	"net/http"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles admin category management. Reads go through the
// public menu endpoints; this surface only mutates.
type CategoryHandlers struct {
	menuService services.MenuService
}

func NewCategoryHandlers(menuService services.MenuService) *CategoryHandlers {
	return &CategoryHandlers{
		menuService: menuService,
	}
}

// CreateCategory handles POST /admin/categories
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var category models.Category
	if err := c.Bind(&category); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.menuService.CreateCategory(ctx, &category); err != nil {
		return respondError(c, "Category", "Failed to create category", err)
	}

	return c.JSON(http.StatusCreated, &category)
}

// UpdateCategory handles PUT /admin/categories/:id
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "category id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var category models.Category
	if err := c.Bind(&category); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	category.ID = id

	if err := h.menuService.UpdateCategory(ctx, &category); err != nil {
		return respondError(c, "Category", "Failed to update category", err)
	}

	return c.JSON(http.StatusOK, &category)
}

// DeleteCategory handles DELETE /admin/categories/:id
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "category id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.menuService.DeleteCategory(ctx, id); err != nil {
		return respondError(c, "Category", "Failed to delete category", err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Category deleted",
	})
}
