package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koolee1372/bpr-cms/internal/middleware"
	"github.com/koolee1372/bpr-cms/internal/service"
	"github.com/koolee1372/bpr-cms/internal/transport"
	"github.com/koolee1372/bpr-cms/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, middleware.TenantID(c), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		Admin: transport.AdminProfile{
			ID:    res.Admin.ID,
			Email: res.Admin.Email,
			Role:  res.Admin.Role,
		},
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("refresh_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Refresh(ctx, middleware.TenantID(c), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "refreshToken is required")
		}
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			return echo.NewHTTPError(http.StatusUnauthorized, service.ErrInvalidRefreshToken.Error())
		}
		l.Error("refresh_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, transport.RefreshResponse{AccessToken: res.AccessToken})
}

// Me echoes the identity attached by the auth middleware.
func (h *AuthHTTP) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"id":        middleware.AdminID(c),
		"tenant_id": middleware.TenantID(c),
		"role":      middleware.Role(c),
	})
}
