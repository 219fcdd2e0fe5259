package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/koolee1372/bpr-cms/internal/tenantdir"
)

const (
	CtxTenantID = "tenant_id"

	// set by the edge proxy when the original host is rewritten
	HeaderForwardedHost = "X-Forwarded-Host"
)

// ResolveTenant runs first for every request. No mapping means no
// tenant, and no tenant means nothing downstream runs.
func ResolveTenant(dir *tenantdir.Directory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			hostname := requestHostname(c)
			if hostname == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "Host header is required")
			}

			tenantID, err := dir.Resolve(c.Request().Context(), hostname)
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, "tenant not found for host "+hostname)
			}

			c.Set(CtxTenantID, tenantID)
			return next(c)
		}
	}
}

// TenantID reads the resolved tenant from the echo context.
func TenantID(c echo.Context) string {
	id, _ := c.Get(CtxTenantID).(string)
	return id
}

func requestHostname(c echo.Context) string {
	host := c.Request().Header.Get(HeaderForwardedHost)
	if host == "" {
		host = c.Request().Host
	}
	// strip any port before the directory lookup; bracketed IPv6
	// hosts keep everything up to the closing bracket
	if j := strings.LastIndex(host, "]"); j >= 0 {
		if i := strings.LastIndex(host[j:], ":"); i > 0 {
			host = host[:j+i]
		}
		return host
	}
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return host
}
