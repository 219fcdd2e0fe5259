package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/koolee1372/bpr-cms/internal/kv"
	"github.com/koolee1372/bpr-cms/internal/models"
	"github.com/koolee1372/bpr-cms/internal/repo"
	"github.com/koolee1372/bpr-cms/internal/tenantdir"
)

func newTenantEnv(t *testing.T) (*TenantService, *tenantdir.Directory) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Tenant{}))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	directory := tenantdir.New(kv.NewRedisStore(client))
	svc := &TenantService{Repo: repo.New(db), Directory: directory}

	ctx := context.Background()
	require.NoError(t, svc.Repo.CreateTenant(ctx, &models.Tenant{
		ID:           "tenant-1",
		Name:         "Site One",
		Slug:         "site-one",
		CustomDomain: "one.example.com",
		Config:       json.RawMessage(`{"themeColor":"#000000"}`),
	}))
	require.NoError(t, directory.Bind(ctx, "one.example.com", "tenant-1"))

	return svc, directory
}

func TestTenantService_Update_RebindsDomain(t *testing.T) {
	t.Parallel()

	svc, directory := newTenantEnv(t)
	ctx := context.Background()

	newDomain := "fresh.example.com"
	tenant, err := svc.Update(ctx, "tenant-1", TenantUpdate{CustomDomain: &newDomain})
	require.NoError(t, err)
	assert.Equal(t, newDomain, tenant.CustomDomain)

	_, err = directory.Resolve(ctx, "one.example.com")
	assert.ErrorIs(t, err, tenantdir.ErrTenantNotFound)

	tenantID, err := directory.Resolve(ctx, newDomain)
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", tenantID)
}

func TestTenantService_Update_NameOnly_KeepsDomainBinding(t *testing.T) {
	t.Parallel()

	svc, directory := newTenantEnv(t)
	ctx := context.Background()

	name := "Renamed Site"
	_, err := svc.Update(ctx, "tenant-1", TenantUpdate{Name: &name})
	require.NoError(t, err)

	tenantID, err := directory.Resolve(ctx, "one.example.com")
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", tenantID)
}

func TestTenantService_Update_UnknownTenant(t *testing.T) {
	t.Parallel()

	svc, _ := newTenantEnv(t)

	name := "x"
	_, err := svc.Update(context.Background(), "no-such-tenant", TenantUpdate{Name: &name})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestTenantService_Settings_ServedFromCacheOnceWarm(t *testing.T) {
	t.Parallel()

	svc, directory := newTenantEnv(t)
	ctx := context.Background()

	cfg, err := svc.Settings(ctx, "tenant-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"themeColor":"#000000"}`, string(cfg))

	cached, err := directory.CachedConfig(ctx, "tenant-1")
	require.NoError(t, err)
	assert.JSONEq(t, string(cfg), string(cached))
}

func TestTenantService_UpdateSettings_InvalidatesCache(t *testing.T) {
	t.Parallel()

	svc, _ := newTenantEnv(t)
	ctx := context.Background()

	// warm the cache with the old value
	_, err := svc.Settings(ctx, "tenant-1")
	require.NoError(t, err)

	updated, err := svc.UpdateSettings(ctx, "tenant-1", json.RawMessage(`{"themeColor":"#ffffff"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"themeColor":"#ffffff"}`, string(updated))

	cfg, err := svc.Settings(ctx, "tenant-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"themeColor":"#ffffff"}`, string(cfg))
}

func TestTenantService_Settings_EmptyConfigDefaultsToObject(t *testing.T) {
	t.Parallel()

	svc, _ := newTenantEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.Repo.CreateTenant(ctx, &models.Tenant{
		ID: "tenant-2", Name: "Two", Slug: "two", CustomDomain: "two.example.com",
	}))

	cfg, err := svc.Settings(ctx, "tenant-2")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(cfg))
}
