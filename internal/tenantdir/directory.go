package tenantdir

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/koolee1372/bpr-cms/internal/kv"
)

// ErrTenantNotFound is a hard failure: there is no default tenant to
// fall back to when a hostname has no mapping.
var ErrTenantNotFound = errors.New("tenant not found")

const (
	domainPrefix = "domain:"
	configPrefix = "tenantcfg:"

	// display-config cache entries go stale on their own
	configTTL = 5 * time.Minute
)

// Directory maps inbound hostnames to tenant IDs and caches per-tenant
// display configuration. Domain mappings never expire; they are removed
// explicitly on rebind.
type Directory struct {
	Store kv.Store
}

func New(store kv.Store) *Directory {
	return &Directory{Store: store}
}

func (d *Directory) Resolve(ctx context.Context, hostname string) (string, error) {
	tenantID, err := d.Store.Get(ctx, domainPrefix+hostname)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrTenantNotFound, hostname)
		}
		return "", err
	}
	return tenantID, nil
}

func (d *Directory) Bind(ctx context.Context, domain, tenantID string) error {
	return d.Store.Set(ctx, domainPrefix+domain, tenantID, 0)
}

func (d *Directory) Unbind(ctx context.Context, domain string) error {
	return d.Store.Del(ctx, domainPrefix+domain)
}

// Rebind removes the old mapping and installs the new one. The two
// writes are sequential, not atomic: a concurrent reader can observe
// the window where neither domain resolves.
func (d *Directory) Rebind(ctx context.Context, oldDomain, newDomain, tenantID string) error {
	if oldDomain != "" && oldDomain != newDomain {
		if err := d.Unbind(ctx, oldDomain); err != nil {
			return err
		}
	}
	return d.Bind(ctx, newDomain, tenantID)
}

func (d *Directory) CacheConfig(ctx context.Context, tenantID string, config []byte) error {
	return d.Store.Set(ctx, configPrefix+tenantID, string(config), configTTL)
}

func (d *Directory) CachedConfig(ctx context.Context, tenantID string) ([]byte, error) {
	v, err := d.Store.Get(ctx, configPrefix+tenantID)
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

func (d *Directory) InvalidateConfig(ctx context.Context, tenantID string) error {
	return d.Store.Del(ctx, configPrefix+tenantID)
}
