package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koolee1372/bpr-cms/internal/middleware"
	"github.com/koolee1372/bpr-cms/internal/models"
	"github.com/koolee1372/bpr-cms/internal/tenantdir"
	"github.com/koolee1372/bpr-cms/internal/tokens"
)

type Deps struct {
	Auth       *AuthHTTP
	Tenants    *TenantHTTP
	Admins     *AdminHTTP
	Articles   *ArticleHTTP
	Categories *CategoryHTTP
	Public     *PublicHTTP
	Meta       *MetaHTTP

	Directory *tenantdir.Directory
	Issuer    *tokens.Issuer

	// Ready reports whether the external stores answer; nil means
	// always ready.
	Ready func() error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	// first-time seed; runs before any domain mapping exists
	e.GET("/bootstrap", d.Meta.RunBootstrap)

	// everything else is tenant-scoped
	t := e.Group("", middleware.ResolveTenant(d.Directory))

	t.POST("/auth/login", d.Auth.Login)
	t.POST("/auth/refresh", d.Auth.Refresh)

	public := t.Group("/public")
	public.GET("/articles", d.Public.Articles)
	public.GET("/articles/:slug", d.Public.ArticleBySlug)

	api := t.Group("/api", middleware.RequireAuth(d.Issuer))

	api.GET("/me", d.Auth.Me)
	api.GET("/stats", d.Meta.Stats)

	api.GET("/articles", d.Articles.List)
	api.GET("/articles/search", d.Articles.Search)
	api.GET("/articles/:id", d.Articles.Get)
	api.POST("/articles", d.Articles.Create)
	api.PUT("/articles/:id", d.Articles.Update)
	api.DELETE("/articles/:id", d.Articles.Delete)

	api.GET("/categories", d.Categories.List)
	api.POST("/categories", d.Categories.Create)
	api.DELETE("/categories/:id", d.Categories.Delete)

	api.GET("/settings", d.Tenants.GetSettings)

	// tenant and admin management need the admin role
	owner := api.Group("", middleware.RequireRole(models.RoleAdmin))

	owner.GET("/tenants/current", d.Tenants.Get)
	owner.PUT("/tenants/current", d.Tenants.Update)
	owner.PUT("/settings", d.Tenants.PutSettings)

	owner.GET("/admins", d.Admins.List)
	owner.POST("/admins", d.Admins.Create)
	owner.PUT("/admins/:id", d.Admins.Update)
	owner.DELETE("/admins/:id", d.Admins.Delete)
}
