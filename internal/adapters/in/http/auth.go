package http

import (
	"net/http"
	"strings"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// actorContextKey is the echo context key under which the authenticated
// Actor is stored.
const actorContextKey = "ordertrack.actor"

// AuthMiddleware resolves the bearer token of each request to an Actor and
// stores it on the request context. Requests without a valid credential are
// rejected with 401 before reaching a handler.
func AuthMiddleware(verifier ports.CredentialVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing bearer token",
				})
			}

			act, err := verifier.Verify(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid credentials",
				})
			}

			c.Set(actorContextKey, act)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

// actorFromContext returns the Actor stored by AuthMiddleware. The boolean
// is false when the middleware did not run for this route.
func actorFromContext(c echo.Context) (actor.Actor, bool) {
	act, ok := c.Get(actorContextKey).(actor.Actor)
	return act, ok
}
