package handlers

import (
	"net/http"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
	"tableside/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles admin authentication.
type AuthHandlers struct {
	authService services.AuthService
	adminRepo   repositories.AdminUserRepository
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService, adminRepo repositories.AdminUserRepository) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		adminRepo:   adminRepo,
	}
}

// Register handles POST /admin/register
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var creds models.AuthCredentials
	if err := c.Bind(&creds); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	resp, err := h.authService.Register(ctx, creds.Email, creds.Password)
	if err != nil {
		return respondError(c, "Admin", "Failed to register", err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Login handles POST /admin/login
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var creds models.AuthCredentials
	if err := c.Bind(&creds); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	resp, err := h.authService.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return respondError(c, "Admin", "Failed to log in", err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Me handles GET /admin/me. The JWT middleware has already verified the
// token and loaded the admin; re-read so the response reflects current data.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	adminID, ok := common.GetAdminIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	admin, err := h.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return respondError(c, "Admin", "Failed to load admin", err)
	}

	return c.JSON(http.StatusOK, admin)
}
