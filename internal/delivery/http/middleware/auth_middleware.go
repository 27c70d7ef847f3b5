package middleware

import (
	"strings"

	"courtside/internal/delivery/http/response"
	"courtside/internal/domain/entity"
	"courtside/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// identityKey is where Authenticate stores the resolved caller on the echo
// context.
const identityKey = "identity"

// AuthMiddleware authenticates bearer tokens through the resolver chain.
type AuthMiddleware struct {
	authenticator usecase.BearerAuthenticator
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authenticator usecase.BearerAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// BearerToken extracts the raw token from the Authorization header. Returns
// an empty string when the header is absent or not in Bearer form.
func BearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return ""
	}

	return tokenString
}

// Authenticate validates the bearer token and stores the resolved identity
// on the context. All failures surface as the domain's unauthorized error
// through the central error handler.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := BearerToken(c)
		if token == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Missing or malformed bearer token")
		}

		identity, err := m.authenticator.Authenticate(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(identityKey, identity)

		return next(c)
	}
}

// RequireKind restricts a route to one actor kind. Must be used AFTER the
// Authenticate middleware.
func (m *AuthMiddleware) RequireKind(kind entity.ActorKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := GetIdentity(c)
			if identity == nil {
				return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
			}
			if identity.Kind != kind {
				return response.Forbidden(c, "FORBIDDEN", "Requires '"+kind.String()+"' access")
			}

			return next(c)
		}
	}
}

// GetIdentity returns the identity stored by Authenticate, or nil.
func GetIdentity(c echo.Context) *entity.Identity {
	identity, ok := c.Get(identityKey).(*entity.Identity)
	if !ok {
		return nil
	}

	return identity
}
