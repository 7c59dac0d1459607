package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shelfcam/shelfcam-api/internal/domain"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Username string
	Role     domain.Role
	TokenID  string
	Claims   *Claims
}

// Middleware validates bearer tokens and loads principals. Every validation
// failure maps to the same generic 401; the specific reason is only logged
// so the response cannot be used as an oracle.
type Middleware struct {
	tokens   *TokenManager
	denylist TokenDenylist
	logger   *zap.Logger
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, denylist TokenDenylist, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, denylist: denylist, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing or invalid credentials")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("missing or invalid credentials")
	}

	return m.authenticate(c, parts[1])
}

// HandleQueryToken authenticates via a token query parameter. Browsers
// cannot set headers on websocket upgrades, so the dashboard stream uses
// this variant.
func (m *Middleware) HandleQueryToken(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return apperrors.NewUnauthorized("missing or invalid credentials")
	}
	return m.authenticate(c, token)
}

func (m *Middleware) authenticate(c *fiber.Ctx, token string) error {
	claims, err := m.tokens.Validate(token)
	if err != nil {
		m.logger.Debug("token rejected", zap.Error(err))
		return apperrors.NewUnauthorized("missing or invalid credentials")
	}

	if m.denylist != nil && m.denylist.Revoked(c.UserContext(), claims.ID) {
		m.logger.Debug("token revoked", zap.String("jti", claims.ID))
		return apperrors.NewUnauthorized("missing or invalid credentials")
	}

	c.Locals(principalKey, &Principal{
		Username: claims.Subject,
		Role:     claims.Role,
		TokenID:  claims.ID,
		Claims:   claims,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
