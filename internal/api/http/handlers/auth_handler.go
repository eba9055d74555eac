package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobify-service/internal/api/dto"
	"github.com/spec-kit/jobify-service/internal/domain"
	"github.com/spec-kit/jobify-service/internal/service"
)

// AuthHandler exposes token issuance and role queries.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// IssueToken handles POST /jwt.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	token, exp, err := h.auth.IssueToken(req.Email)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{Token: token, ExpiresAt: exp})
}

// CheckSuperAdmin handles GET /superAdmin/:email.
func (h *AuthHandler) CheckSuperAdmin(c *fiber.Ctx) error {
	return h.checkRole(c, domain.RoleSuperAdmin)
}

// CheckAdmin handles GET /admin/:email.
func (h *AuthHandler) CheckAdmin(c *fiber.Ctx) error {
	return h.checkRole(c, domain.RoleAdmin)
}

// checkRole answers with the role name when it matches, false otherwise.
func (h *AuthHandler) checkRole(c *fiber.Ctx, role domain.Role) error {
	got, ok, err := h.auth.CheckRole(c.UserContext(), pathEmail(c), role)
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(false)
	}
	return c.JSON(string(got))
}
