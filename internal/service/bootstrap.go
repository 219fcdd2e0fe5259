package service

import (
	"context"
	"errors"

	"github.com/koolee1372/bpr-cms/internal/models"
	"github.com/koolee1372/bpr-cms/internal/repo"
	"github.com/koolee1372/bpr-cms/internal/tenantdir"
	"github.com/koolee1372/bpr-cms/pkg/logging"
)

// BootstrapService seeds the first tenant, binds its domains in the
// directory and creates the owning admin. Safe to call repeatedly:
// existing rows are kept.
type BootstrapService struct {
	Repo      *repo.GormRepo
	Auth      *AuthService
	Directory *tenantdir.Directory
}

type BootstrapParams struct {
	TenantID      string
	TenantName    string
	TenantSlug    string
	Domains       []string
	AdminEmail    string
	AdminPassword string
}

type BootstrapResult struct {
	TenantID      string   `json:"tenant_id"`
	MappedDomains []string `json:"mapped_domains"`
	AdminCreated  bool     `json:"admin_created"`
}

func (s *BootstrapService) Run(ctx context.Context, p BootstrapParams) (*BootstrapResult, error) {
	l := logging.FromContext(ctx).With("svc", "bootstrap")

	if len(p.Domains) == 0 || p.AdminEmail == "" || p.AdminPassword == "" {
		return nil, ErrValidation
	}

	tenant := &models.Tenant{
		ID:           p.TenantID,
		Name:         p.TenantName,
		Slug:         p.TenantSlug,
		CustomDomain: p.Domains[0],
	}
	if _, err := s.Repo.TenantByID(ctx, p.TenantID); errors.Is(err, repo.ErrNotFound) {
		if err := s.Repo.CreateTenant(ctx, tenant); err != nil {
			return nil, err
		}
		l.Info("tenant_created", "tenant_id", p.TenantID)
	} else if err != nil {
		return nil, err
	}

	for _, domain := range p.Domains {
		if err := s.Directory.Bind(ctx, domain, p.TenantID); err != nil {
			return nil, err
		}
	}

	adminCreated := false
	if _, err := s.Auth.RegisterAdmin(ctx, p.TenantID, p.AdminEmail, p.AdminPassword, models.RoleAdmin); err == nil {
		adminCreated = true
		l.Info("admin_seeded", "tenant_id", p.TenantID)
	} else if !errors.Is(err, repo.ErrConflict) {
		return nil, err
	}

	return &BootstrapResult{
		TenantID:      p.TenantID,
		MappedDomains: p.Domains,
		AdminCreated:  adminCreated,
	}, nil
}
