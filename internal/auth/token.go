package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/student-records/internal/domain"
)

// Verification failures. Exactly one of these is returned for a bad token:
// expiry is checked as expiry, never misreported as a structural problem.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
)

// TokenManager issues and verifies signed bearer tokens. It is a pure
// function of token and secret; revocation is the gate's concern, not this
// package's.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a manager around the process-wide signing secret.
// Rotating the secret invalidates every outstanding token.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Claims describes the token payload. Role is always present; identity
// fields and expiry are set for student tokens only. Admin tokens are
// anonymous and unbounded in time, so callers must not assume every token
// carries an expiry.
type Claims struct {
	Role     domain.Role `json:"role"`
	UserID   string      `json:"userId,omitempty"`
	Username string      `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Issue signs a token for the subject. A zero ttl produces a token with no
// expiry; the returned time is zero in that case.
func (tm *TokenManager) Issue(userID, username string, role domain.Role, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	claims := &Claims{
		Role:     role,
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	var expiresAt time.Time
	if ttl != 0 {
		expiresAt = now.Add(ttl)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature and, when present, expiry. It returns the decoded
// claims or ErrTokenExpired / ErrTokenMalformed.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
