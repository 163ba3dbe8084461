package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-records/internal/domain"
	"github.com/spec-kit/student-records/internal/repository"
	apperrors "github.com/spec-kit/student-records/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Admin principals carry no
// identity; student principals carry the decoded student id and username.
type Principal struct {
	Role      domain.Role
	StudentID string
	Username  string
}

// Middleware is the auth gate. Every protected request runs the same ordered
// checks: header extraction, revocation lookup, token verification, role
// derivation. A failure at any step short-circuits with a 401; the registry
// and token service stay decoupled from each other.
type Middleware struct {
	tokens   *TokenManager
	registry repository.RevocationRegistry
}

// NewMiddleware constructs the gate with its injected collaborators.
func NewMiddleware(tokens *TokenManager, registry repository.RevocationRegistry) *Middleware {
	return &Middleware{tokens: tokens, registry: registry}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := ExtractToken(c)
	if token == "" {
		return apperrors.NewUnauthenticated(apperrors.CodeNoToken, "no token")
	}

	// Revocation dominates signature validity: a blacklisted token is
	// rejected even if Verify would accept it.
	revoked, err := m.registry.Contains(c.UserContext(), token)
	if err != nil {
		return apperrors.NewStorageError(err)
	}
	if revoked {
		return apperrors.NewUnauthenticated(apperrors.CodeTokenRevoked, "revoked")
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrTokenMalformed) {
			return apperrors.NewUnauthenticated(apperrors.CodeTokenInvalid, "invalid")
		}
		return apperrors.MapError(err)
	}

	principal := &Principal{Role: domain.RoleStudent}
	if claims.Role == domain.RoleAdmin {
		principal.Role = domain.RoleAdmin
	} else {
		principal.StudentID = claims.UserID
		principal.Username = claims.Username
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// ExtractToken reads the bearer token from the Authorization header. The
// raw header value is accepted as-is; an optional "Bearer " prefix is
// stripped so the string revoked at logout always equals the string the
// gate checks.
func ExtractToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// PrincipalFromContext retrieves the authenticated entity. The second result
// is false for public routes where the gate never ran.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
