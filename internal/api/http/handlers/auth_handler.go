package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-records/internal/api/dto"
	"github.com/spec-kit/student-records/internal/auth"
	"github.com/spec-kit/student-records/internal/service"
	apperrors "github.com/spec-kit/student-records/pkg/util"
)

// AuthHandler exposes registration, login and logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /university/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Field == "" {
		return apperrors.NewValidationError("username, email, password, field required", nil)
	}

	student, err := h.auth.Register(c.UserContext(), req.Username, req.Email, req.Password, req.Field)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"student": dto.StudentSummary{
				ID:         student.ID,
				Username:   student.Username,
				Email:      student.Email,
				RollNumber: student.RollNumber,
				Field:      student.Field,
			},
		},
	})
}

// Login handles POST /university/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	resp := dto.AuthResponse{
		Token:  result.Token,
		Role:   string(result.Role),
		UserID: result.StudentID,
	}
	if !result.ExpiresAt.IsZero() {
		exp := result.ExpiresAt
		resp.ExpiresAt = &exp
	}

	return c.JSON(fiber.Map{"data": resp})
}

// Logout handles GET /university/logout. The route is public: the token is
// revoked as presented, without being verified first, so even an expired
// token can be blacklisted.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := auth.ExtractToken(c)
	if token == "" {
		return apperrors.NewValidationError("token is not provided", nil)
	}

	if err := h.auth.Logout(c.UserContext(), token); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}
