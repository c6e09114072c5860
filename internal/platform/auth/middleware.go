package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayush-fhir/api/internal/platform/fhir"
)

// ContextKeyClaims is the echo context key holding verified token claims.
const ContextKeyClaims = "auth_claims"

// RequireAuth rejects requests without a valid bearer token. Verified claims
// are stored on the context for downstream handlers.
func RequireAuth(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, fhir.SecurityOutcome("missing bearer token"))
			}
			claims, err := issuer.Verify(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, fhir.SecurityOutcome("invalid or expired token"))
			}
			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the verified claims attached by RequireAuth, if any.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*Claims)
	return claims, ok
}
