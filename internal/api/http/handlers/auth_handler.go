package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shelfcam/shelfcam-api/internal/api/dto"
	"github.com/shelfcam/shelfcam-api/internal/auth"
	"github.com/shelfcam/shelfcam-api/internal/domain"
	"github.com/shelfcam/shelfcam-api/internal/service"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

// AuthHandler exposes signup, login and logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	account, err := h.auth.Signup(c.UserContext(), req.Username, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewAccountResponse(account))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	account, token, expiresAt, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Username:    account.Username,
		Role:        string(account.Role),
		ExpiresAt:   expiresAt,
	})
}

// Logout handles POST /auth/logout on a protected route.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing or invalid credentials")
	}

	if err := h.auth.Logout(c.UserContext(), principal.Claims); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}
