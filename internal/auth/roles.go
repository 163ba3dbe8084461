package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-records/internal/domain"
	apperrors "github.com/spec-kit/student-records/pkg/util"
)

// RequireAdmin rejects authenticated callers without the admin role. The 403
// is produced here, downstream of the gate; the gate itself only ever emits
// 401s.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("insufficient privileges")
		}
		return c.Next()
	}
}

// RequireStudent ensures an authenticated student with an identity.
func RequireStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Role != domain.RoleStudent || principal.StudentID == "" {
			return apperrors.NewForbidden("student account required")
		}
		return c.Next()
	}
}
