package handlers

import (
	"net/http"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/services"

	"github.com/labstack/echo/v4"
)

// maxImageSize caps menu item image uploads at 5MB.
const maxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// MenuItemHandlers handles admin menu item management, including image
// uploads to object storage.
type MenuItemHandlers struct {
	menuService services.MenuService
}

func NewMenuItemHandlers(menuService services.MenuService) *MenuItemHandlers {
	return &MenuItemHandlers{
		menuService: menuService,
	}
}

// CreateMenuItem handles POST /admin/menu-items
func (h *MenuItemHandlers) CreateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	var item models.MenuItem
	if err := c.Bind(&item); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.menuService.CreateMenuItem(ctx, &item); err != nil {
		return respondError(c, "Menu item", "Failed to create menu item", err)
	}

	return c.JSON(http.StatusCreated, &item)
}

// UpdateMenuItem handles PUT /admin/menu-items/:id
func (h *MenuItemHandlers) UpdateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "menu item id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var item models.MenuItem
	if err := c.Bind(&item); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	item.ID = id

	if err := h.menuService.UpdateMenuItem(ctx, &item); err != nil {
		return respondError(c, "Menu item", "Failed to update menu item", err)
	}

	return c.JSON(http.StatusOK, &item)
}

// DeleteMenuItem handles DELETE /admin/menu-items/:id
func (h *MenuItemHandlers) DeleteMenuItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "menu item id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.menuService.DeleteMenuItem(ctx, id); err != nil {
		return respondError(c, "Menu item", "Failed to delete menu item", err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Menu item deleted",
	})
}

// UploadMenuItemImage handles POST /admin/menu-items/:id/image
func (h *MenuItemHandlers) UploadMenuItemImage(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "menu item id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.SendClientError(c, "Image file is required")
	}
	if file.Size > maxImageSize {
		return common.SendClientError(c, "File size exceeds maximum limit of 5MB")
	}

	src, err := file.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to open image file")
	}
	defer src.Close()

	// Sniff the real content type instead of trusting the upload headers.
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && n == 0 {
		return common.SendClientError(c, "Failed to read file content")
	}
	contentType := http.DetectContentType(buffer[:n])
	if !allowedImageTypes[contentType] {
		return common.SendClientError(c, "Invalid file type. Only JPEG, PNG, GIF, and WebP images are allowed")
	}

	if _, err := src.Seek(0, 0); err != nil {
		return common.SendServerError(c, "Failed to read file content")
	}

	item, err := h.menuService.UploadItemImage(ctx, id, file.Filename, src, file.Size, contentType)
	if err != nil {
		return respondError(c, "Menu item", "Failed to upload image", err)
	}

	return c.JSON(http.StatusOK, item)
}
