package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koolee1372/bpr-cms/internal/middleware"
	"github.com/koolee1372/bpr-cms/internal/repo"
)

// PublicHTTP serves the published-article feed consumed by the
// renderer. Responses carry edge-cache headers; invalidation is the
// cache's problem, not ours.
type PublicHTTP struct {
	Repo *repo.GormRepo
}

const (
	listCacheControl   = "max-age=600, s-maxage=600"
	detailCacheControl = "max-age=3600, s-maxage=3600"
)

func (h *PublicHTTP) Articles(c echo.Context) error {
	items, err := h.Repo.PublicArticles(c.Request().Context(), middleware.TenantID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	c.Response().Header().Set("Cache-Control", listCacheControl)
	return c.JSON(http.StatusOK, items)
}

func (h *PublicHTTP) ArticleBySlug(c echo.Context) error {
	article, err := h.Repo.PublicArticleBySlug(c.Request().Context(), middleware.TenantID(c), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "article not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	c.Response().Header().Set("Cache-Control", detailCacheControl)
	return c.JSON(http.StatusOK, article)
}
