package middleware

import (
	"errors"
	"strings"

	"jobboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxRolesKey  = "roles"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware rejects requests without a valid access token.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "User is not logged in", nil, nil)
		}

		claims, err := m.validate(token)
		if err != nil {
			return err
		}

		setIdentity(c, claims)
		return c.Next()
	}
}

// Optional attaches the caller identity when a token is present. Requests
// without an Authorization header pass through as guests; a bad token is
// still rejected.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		if strings.TrimSpace(c.Get("Authorization")) == "" {
			return c.Next()
		}

		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}

		claims, err := m.validate(token)
		if err != nil {
			return err
		}

		setIdentity(c, claims)
		return c.Next()
	}
}

func (m *AuthMiddleware) validate(token string) (jwt.Claims, error) {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
		}
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
	}

	if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
		return jwt.Claims{}, NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
	}
	return claims, nil
}

func setIdentity(c fiber.Ctx, claims jwt.Claims) {
	c.Locals(CtxUserIDKey, claims.UserID)
	c.Locals(CtxEmailKey, claims.Email)
	c.Locals(CtxRolesKey, claims.Roles)
}

// Identity returns the caller set by the auth middleware. A guest yields
// uuid.Nil and no roles.
func Identity(c fiber.Ctx) (uuid.UUID, []string) {
	id, _ := c.Locals(CtxUserIDKey).(uuid.UUID)
	roles, _ := c.Locals(CtxRolesKey).([]string)
	return id, roles
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
