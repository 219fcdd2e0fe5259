package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/koolee1372/bpr-cms/internal/middleware"
	"github.com/koolee1372/bpr-cms/internal/models"
	"github.com/koolee1372/bpr-cms/internal/repo"
	"github.com/koolee1372/bpr-cms/internal/transport"
	"github.com/koolee1372/bpr-cms/pkg/logging"
)

type CategoryHTTP struct {
	Repo *repo.GormRepo
}

func (h *CategoryHTTP) List(c echo.Context) error {
	items, err := h.Repo.Categories(c.Request().Context(), middleware.TenantID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category_create")

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("category_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and slug are required")
	}

	category := &models.Category{
		TenantID: middleware.TenantID(c),
		Name:     req.Name,
		Slug:     req.Slug,
	}
	if err := h.Repo.CreateCategory(ctx, category); err != nil {
		l.Error("category_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	if err := h.Repo.DeleteCategory(c.Request().Context(), middleware.TenantID(c), uint(id)); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.NoContent(http.StatusNoContent)
}
