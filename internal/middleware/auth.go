package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/koolee1372/bpr-cms/internal/tokens"
)

const (
	CtxAdminID = "admin_id"
	CtxRole    = "role"
)

// RequireAuth verifies the bearer access token and attaches the
// identity to the request. Nothing downstream re-verifies. The token's
// tenant claim must match the tenant resolved from the host.
func RequireAuth(issuer *tokens.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			claims, err := issuer.VerifyAccess(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
			}
			if tid := TenantID(c); tid != "" && claims.TenantID != tid {
				return echo.NewHTTPError(http.StatusUnauthorized, "token issued for another tenant")
			}

			c.Set(CtxAdminID, claims.Subject)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

func RequireRole(required ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing role")
			}
			if !slices.Contains(required, role) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient rights")
			}
			return next(c)
		}
	}
}

func AdminID(c echo.Context) string {
	id, _ := c.Get(CtxAdminID).(string)
	return id
}

func Role(c echo.Context) string {
	role, _ := c.Get(CtxRole).(string)
	return role
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return h[len(prefix):]
	}
	return ""
}
