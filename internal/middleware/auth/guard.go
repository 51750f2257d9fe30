// Package auth gates protected routes: it extracts the bearer token,
// verifies it, optionally enforces role membership, and attaches the
// decoded identity to the request context. Authentication failures are
// 401s with a reason-specific message; a valid token with the wrong role
// is a 403 and must never be reported as an authentication failure.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"photofolio/internal/service/token"
)

// Context keys under which the guard stores the decoded identity.
const (
	CtxUserID   = "userID"
	CtxRole     = "role"
	CtxUsername = "username"
	CtxEmail    = "email"
)

// Require builds a middleware that admits only verified tokens. With no
// roles it admits any authenticated caller; with roles the decoded role
// must be a member.
func Require(ts *token.Service, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := ts.Verify(extractToken(c))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, denialMessage(err))
			}

			if len(roles) > 0 && !contains(roles, claims.Role) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}

			setUserContext(c, claims)
			return next(c)
		}
	}
}

// extractToken reads the Authorization header, accepting either a bare
// token or the "Bearer <token>" form.
func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return strings.TrimSpace(header)
}

func denialMessage(err error) string {
	switch {
	case errors.Is(err, token.ErrTokenMissing):
		return "access denied: no token provided"
	case errors.Is(err, token.ErrTokenExpired):
		return "access denied: token expired"
	default:
		return "access denied: invalid token"
	}
}

func setUserContext(c echo.Context, claims *token.Claims) {
	c.Set(CtxUserID, claims.Subject)
	c.Set(CtxRole, claims.Role)
	c.Set(CtxUsername, claims.Username)
	c.Set(CtxEmail, claims.Email)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// UserID returns the authenticated caller's identity reference. It is only
// meaningful behind Require.
func UserID(c echo.Context) string {
	id, _ := c.Get(CtxUserID).(string)
	return id
}

// Role returns the authenticated caller's role.
func Role(c echo.Context) string {
	role, _ := c.Get(CtxRole).(string)
	return role
}

// IsAdmin reports whether the authenticated caller carries the admin role.
func IsAdmin(c echo.Context) bool {
	return Role(c) == "admin"
}
