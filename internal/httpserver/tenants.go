package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koolee1372/bpr-cms/internal/middleware"
	"github.com/koolee1372/bpr-cms/internal/repo"
	"github.com/koolee1372/bpr-cms/internal/service"
	"github.com/koolee1372/bpr-cms/pkg/logging"
)

type TenantHTTP struct {
	Svc *service.TenantService
}

func (h *TenantHTTP) Get(c echo.Context) error {
	tenant, err := h.Svc.Get(c.Request().Context(), middleware.TenantID(c))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "tenant not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, tenant)
}

func (h *TenantHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tenant_update")

	var req service.TenantUpdate
	if err := c.Bind(&req); err != nil {
		l.Warn("tenant_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	tenant, err := h.Svc.Update(ctx, middleware.TenantID(c), req)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "tenant not found")
		}
		l.Error("tenant_update_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, tenant)
}

func (h *TenantHTTP) GetSettings(c echo.Context) error {
	config, err := h.Svc.Settings(c.Request().Context(), middleware.TenantID(c))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "tenant not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSONBlob(http.StatusOK, config)
}

func (h *TenantHTTP) PutSettings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tenant_put_settings")

	var config json.RawMessage
	if err := c.Bind(&config); err != nil {
		l.Warn("settings_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	updated, err := h.Svc.UpdateSettings(ctx, middleware.TenantID(c), config)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "tenant not found")
		}
		l.Error("settings_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSONBlob(http.StatusOK, updated)
}
