package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/koolee1372/bpr-cms/internal/kv"
	"github.com/koolee1372/bpr-cms/internal/models"
	"github.com/koolee1372/bpr-cms/internal/repo"
	"github.com/koolee1372/bpr-cms/internal/tenantdir"
	"github.com/koolee1372/bpr-cms/pkg/logging"
)

// TenantService keeps the tenant row and the domain directory in step:
// every custom-domain change goes through Directory.Rebind so the old
// hostname stops routing to the tenant.
type TenantService struct {
	Repo      *repo.GormRepo
	Directory *tenantdir.Directory
}

type TenantUpdate struct {
	Name         *string          `json:"name"`
	CustomDomain *string          `json:"custom_domain"`
	Config       *json.RawMessage `json:"config"`
}

func (s *TenantService) Get(ctx context.Context, tenantID string) (*models.Tenant, error) {
	return s.Repo.TenantByID(ctx, tenantID)
}

func (s *TenantService) Update(ctx context.Context, tenantID string, upd TenantUpdate) (*models.Tenant, error) {
	l := logging.FromContext(ctx).With("svc", "tenant.update", "tenant_id", tenantID)

	tenant, err := s.Repo.TenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	oldDomain := tenant.CustomDomain
	if upd.Name != nil {
		tenant.Name = *upd.Name
	}
	if upd.CustomDomain != nil {
		tenant.CustomDomain = *upd.CustomDomain
	}
	if upd.Config != nil {
		tenant.Config = *upd.Config
	}

	if err := s.Repo.UpdateTenant(ctx, tenant); err != nil {
		return nil, err
	}

	if upd.CustomDomain != nil && *upd.CustomDomain != oldDomain {
		if err := s.Directory.Rebind(ctx, oldDomain, tenant.CustomDomain, tenant.ID); err != nil {
			return nil, err
		}
		l.Info("domain_rebound", "old", oldDomain, "new", tenant.CustomDomain)
	}

	if upd.Config != nil {
		if err := s.Directory.InvalidateConfig(ctx, tenantID); err != nil {
			l.Warn("config_cache_invalidate_failed", "error", err)
		}
	}

	return tenant, nil
}

// Settings returns the tenant display config, served from the directory
// cache when warm.
func (s *TenantService) Settings(ctx context.Context, tenantID string) (json.RawMessage, error) {
	if cached, err := s.Directory.CachedConfig(ctx, tenantID); err == nil {
		return cached, nil
	} else if !errors.Is(err, kv.ErrNotFound) {
		logging.FromContext(ctx).Warn("config_cache_read_failed", "tenant_id", tenantID, "error", err)
	}

	tenant, err := s.Repo.TenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	config := tenant.Config
	if len(config) == 0 {
		config = json.RawMessage("{}")
	}

	if err := s.Directory.CacheConfig(ctx, tenantID, config); err != nil {
		logging.FromContext(ctx).Warn("config_cache_write_failed", "tenant_id", tenantID, "error", err)
	}
	return config, nil
}

func (s *TenantService) UpdateSettings(ctx context.Context, tenantID string, config json.RawMessage) (json.RawMessage, error) {
	raw := config
	upd := TenantUpdate{Config: &raw}
	tenant, err := s.Update(ctx, tenantID, upd)
	if err != nil {
		return nil, err
	}
	return tenant.Config, nil
}
