package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koolee1372/bpr-cms/internal/config"
	"github.com/koolee1372/bpr-cms/internal/middleware"
	"github.com/koolee1372/bpr-cms/internal/repo"
	"github.com/koolee1372/bpr-cms/internal/service"
	"github.com/koolee1372/bpr-cms/internal/transport"
	"github.com/koolee1372/bpr-cms/pkg/logging"
)

type MetaHTTP struct {
	Repo      *repo.GormRepo
	Bootstrap *service.BootstrapService
	Seed      config.BootstrapConfig
}

func (h *MetaHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	tenantID := middleware.TenantID(c)

	articles, err := h.Repo.CountArticles(ctx, tenantID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	categories, err := h.Repo.CountCategories(ctx, tenantID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	admins, err := h.Repo.CountAdmins(ctx, tenantID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, transport.StatsResponse{
		Articles:   articles,
		Categories: categories,
		Admins:     admins,
	})
}

// RunBootstrap seeds the first tenant and its domain mappings. It is
// mounted outside tenant resolution: there is nothing to resolve yet.
func (h *MetaHTTP) RunBootstrap(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bootstrap")

	if h.Seed.AdminEmail == "" {
		return echo.NewHTTPError(http.StatusNotFound, "bootstrap is not configured")
	}

	res, err := h.Bootstrap.Run(ctx, service.BootstrapParams{
		TenantID:      h.Seed.TenantID,
		TenantName:    h.Seed.TenantName,
		TenantSlug:    h.Seed.TenantSlug,
		Domains:       h.Seed.Domains,
		AdminEmail:    h.Seed.AdminEmail,
		AdminPassword: h.Seed.AdminPassword,
	})
	if err != nil {
		l.Error("bootstrap_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "bootstrap failed")
	}
	return c.JSON(http.StatusOK, res)
}
