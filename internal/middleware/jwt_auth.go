package middleware

import (
	"net/http"
	"strings"

	"github.com/graceworks/grace-backend/internal/auth"
	"github.com/labstack/echo/v4"
)

// ContextUserID is the echo context key holding the authenticated user ID.
const ContextUserID = "userID"

// JWTAuth checks for a valid bearer token and stores the user claims in the
// request context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set("claims", claims)

			return next(c)
		}
	}
}
