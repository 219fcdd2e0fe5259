package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/koolee1372/bpr-cms/internal/middleware"
	"github.com/koolee1372/bpr-cms/internal/models"
	"github.com/koolee1372/bpr-cms/internal/repo"
	"github.com/koolee1372/bpr-cms/internal/service"
	"github.com/koolee1372/bpr-cms/internal/transport"
	"github.com/koolee1372/bpr-cms/pkg/logging"
)

type AdminHTTP struct {
	Svc  *service.AuthService
	Repo *repo.GormRepo
}

func profile(a models.Admin) transport.AdminProfile {
	return transport.AdminProfile{ID: a.ID, Email: a.Email, Role: a.Role}
}

func (h *AdminHTTP) List(c echo.Context) error {
	admins, err := h.Repo.Admins(c.Request().Context(), middleware.TenantID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	out := make([]transport.AdminProfile, len(admins))
	for i, a := range admins {
		out[i] = profile(a)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_create")

	var req transport.CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("admin_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	admin, err := h.Svc.RegisterAdmin(ctx, middleware.TenantID(c), req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "email, password and a valid role are required")
		}
		if errors.Is(err, repo.ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "admin already exists")
		}
		l.Error("admin_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusCreated, profile(*admin))
}

func (h *AdminHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_update")

	var req transport.UpdateAdminRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("admin_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	admin, err := h.Repo.AdminByID(ctx, middleware.TenantID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "admin not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid role")
		}
		admin.Role = *req.Role
	}
	if req.Password != nil {
		if *req.Password == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "password cannot be empty")
		}
		admin.PasswordHash = h.Svc.Hasher.Hash(*req.Password)
	}

	if err := h.Repo.UpdateAdmin(ctx, admin); err != nil {
		l.Error("admin_update_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, profile(*admin))
}

// Delete removes the admin row. Any live session entry is left to age
// out with its TTL; the deleted admin's refresh token stops working at
// the next refresh because the row lookup fails.
func (h *AdminHTTP) Delete(c echo.Context) error {
	if c.Param("id") == middleware.AdminID(c) {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot delete yourself")
	}

	err := h.Repo.DeleteAdmin(c.Request().Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "admin not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.NoContent(http.StatusNoContent)
}
