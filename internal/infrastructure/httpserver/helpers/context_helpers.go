package helpers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cartline/storefront/go/internal/core/domain/auth"
)

const claimsContextKey = "auth_claims"

// SetClaims stores validated JWT claims on the echo context.
func SetClaims(c echo.Context, claims *auth.Claims) {
	c.Set(claimsContextKey, claims)
}

// GetClaims returns the claims stored by the JWT middleware.
func GetClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(claimsContextKey).(*auth.Claims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return claims, nil
}

// GetUserID returns the authenticated user's ID.
func GetUserID(c echo.Context) (uuid.UUID, error) {
	claims, err := GetClaims(c)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID, nil
}
