package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"myLocalMarket/pkg/logger"
	jsonres "myLocalMarket/pkg/response"
	"myLocalMarket/pkg/utils"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// TokenParser validates a bearer token and returns its claims.
type TokenParser interface {
	ParseJWT(token string) (*utils.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			userID, role, ok := authenticate(parser, authHeader)
			if !ok {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			c.Set(ContextUserID, userID)
			c.Set(ContextRole, role)

			return next(c)
		}
	}
}

// OptionalAuth sets the user on the context when a valid token is present and
// lets anonymous requests through. A bad token is treated as anonymous.
func OptionalAuth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			if userID, role, ok := authenticate(parser, authHeader); ok {
				c.Set(ContextUserID, userID)
				c.Set(ContextRole, role)
			}

			return next(c)
		}
	}
}

func CustomerOnly() echo.MiddlewareFunc {
	return requireRole(utils.RoleCustomer, "Customer access required")
}

func SellerOnly() echo.MiddlewareFunc {
	return requireRole(utils.RoleSeller, "Seller access required")
}

func requireRole(want, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextRole).(string)
			if !ok || role != want {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", message, nil,
				))
			}

			return next(c)
		}
	}
}

func authenticate(parser TokenParser, authHeader string) (uint, string, bool) {
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return 0, "", false
	}

	claims, err := parser.ParseJWT(tokenParts[1])
	if err != nil {
		logger.Debug("Rejected bearer token", err)
		return 0, "", false
	}

	userID, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil {
		logger.Error("Invalid user ID in token", err)
		return 0, "", false
	}

	return uint(userID), claims.Role, true
}

// UserID returns the authenticated user id set by AuthMiddleware or OptionalAuth.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(ContextUserID).(uint)
	return id, ok
}

// Role returns the role claim of the authenticated user, if any.
func Role(c echo.Context) string {
	role, _ := c.Get(ContextRole).(string)
	return role
}
