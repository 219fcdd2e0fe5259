package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/koolee1372/bpr-cms/internal/middleware"
	"github.com/koolee1372/bpr-cms/internal/models"
	"github.com/koolee1372/bpr-cms/internal/repo"
	"github.com/koolee1372/bpr-cms/internal/service"
	"github.com/koolee1372/bpr-cms/internal/transport"
	"github.com/koolee1372/bpr-cms/pkg/logging"
)

type ArticleHTTP struct {
	Svc  *service.ContentService
	Repo *repo.GormRepo
}

func articleID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid article id")
	}
	return uint(id), nil
}

func pagination(c echo.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}

func (h *ArticleHTTP) List(c echo.Context) error {
	offset, limit := pagination(c)
	total, items, err := h.Repo.Articles(c.Request().Context(), middleware.TenantID(c), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "items": items})
}

func (h *ArticleHTTP) Get(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	article, err := h.Repo.ArticleByID(c.Request().Context(), middleware.TenantID(c), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "article not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, article)
}

func (h *ArticleHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "article_create")

	var req transport.ArticleRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("article_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Title == "" || req.Slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and slug are required")
	}

	article := &models.Article{
		TenantID:     middleware.TenantID(c),
		AuthorID:     middleware.AdminID(c),
		PostType:     req.PostType,
		Title:        req.Title,
		Slug:         req.Slug,
		Content:      req.Content,
		ThumbnailURL: req.ThumbnailURL,
		SEOMeta:      req.SEOMeta,
		IsPublic:     req.IsPublic,
	}
	if article.PostType == "" {
		article.PostType = "BLOG"
	}

	if err := h.Svc.CreateArticle(ctx, article); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "slug already in use")
		}
		l.Error("article_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusCreated, article)
}

func (h *ArticleHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "article_update")

	id, err := articleID(c)
	if err != nil {
		return err
	}

	var req transport.ArticleRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("article_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	article, err := h.Repo.ArticleByID(ctx, middleware.TenantID(c), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "article not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if req.Title != "" {
		article.Title = req.Title
	}
	if req.Slug != "" {
		article.Slug = req.Slug
	}
	if req.PostType != "" {
		article.PostType = req.PostType
	}
	article.Content = req.Content
	article.ThumbnailURL = req.ThumbnailURL
	if req.SEOMeta != nil {
		article.SEOMeta = req.SEOMeta
	}
	article.IsPublic = req.IsPublic

	if err := h.Svc.UpdateArticle(ctx, article); err != nil {
		l.Error("article_update_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, article)
}

func (h *ArticleHTTP) Delete(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteArticle(c.Request().Context(), middleware.TenantID(c), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "article not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ArticleHTTP) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	offset, limit := pagination(c)

	total, docs, err := h.Svc.SearchArticles(c.Request().Context(), middleware.TenantID(c), query, offset, limit)
	if err != nil {
		if errors.Is(err, service.ErrSearchUnavailable) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "search unavailable")
		}
		logging.FromContext(c.Request().Context()).Error("article_search_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "items": docs})
}
