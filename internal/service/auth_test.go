package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/koolee1372/bpr-cms/internal/hash"
	"github.com/koolee1372/bpr-cms/internal/kv"
	"github.com/koolee1372/bpr-cms/internal/models"
	"github.com/koolee1372/bpr-cms/internal/repo"
	"github.com/koolee1372/bpr-cms/internal/session"
	"github.com/koolee1372/bpr-cms/internal/tokens"
)

type authEnv struct {
	svc      *AuthService
	repo     *repo.GormRepo
	sessions *session.Store
	issuer   *tokens.Issuer
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Tenant{}, &models.Admin{}))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	gormRepo := repo.New(db)
	sessions := session.New(kv.NewRedisStore(client))
	issuer := tokens.NewIssuer([]byte("test-signing-secret"), 15*time.Minute, 7*24*time.Hour)

	return &authEnv{
		svc: &AuthService{
			Repo:     gormRepo,
			Hasher:   hash.NewHasher("test-salt"),
			Issuer:   issuer,
			Sessions: sessions,
		},
		repo:     gormRepo,
		sessions: sessions,
		issuer:   issuer,
	}
}

func (e *authEnv) seedAdmin(t *testing.T, tenantID, email, password string) *models.Admin {
	t.Helper()

	admin, err := e.svc.RegisterAdmin(context.Background(), tenantID, email, password, models.RoleAdmin)
	require.NoError(t, err)
	return admin
}

func TestAuthService_Login_Validation(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "secret"},
		{name: "empty password", email: "a@x.com", password: ""},
		{name: "both empty", email: "", password: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := env.svc.Login(ctx, "tenant-1", tt.email, tt.password)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Login_UniformCredentialError(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)
	ctx := context.Background()
	env.seedAdmin(t, "tenant-1", "a@x.com", "correct")

	_, unknownErr := env.svc.Login(ctx, "tenant-1", "нет@x.com", "whatever")
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)

	_, wrongErr := env.svc.Login(ctx, "tenant-1", "a@x.com", "wrong")
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)

	// byte-identical messages: no account enumeration
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_Login_IsTenantScoped(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)
	ctx := context.Background()
	env.seedAdmin(t, "tenant-1", "a@x.com", "correct")

	// same email, other tenant: no such admin there
	_, err := env.svc.Login(ctx, "tenant-2", "a@x.com", "correct")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_IssuesTokensAndPersistsSession(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)
	ctx := context.Background()
	admin := env.seedAdmin(t, "tenant-1", "a@x.com", "correct")

	res, err := env.svc.Login(ctx, "tenant-1", "a@x.com", "correct")
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)

	accessClaims, err := env.issuer.VerifyAccess(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, accessClaims.Subject)
	assert.Equal(t, "tenant-1", accessClaims.TenantID)
	assert.Equal(t, models.RoleAdmin, accessClaims.Role)

	refreshClaims, err := env.issuer.VerifyRefresh(res.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, refreshClaims.Subject)
	assert.Equal(t, "tenant-1", refreshClaims.TenantID)

	// the refresh token is on record verbatim
	stored, err := env.sessions.Get(ctx, "tenant-1", admin.ID)
	require.NoError(t, err)
	assert.Equal(t, res.RefreshToken, stored)

	assert.Equal(t, admin.Email, res.Admin.Email)
	assert.Equal(t, admin.ID, res.Admin.ID)
}

func TestAuthService_SecondLogin_SupersedesFirstRefreshToken(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)
	ctx := context.Background()
	env.seedAdmin(t, "tenant-1", "a@x.com", "correct")

	first, err := env.svc.Login(ctx, "tenant-1", "a@x.com", "correct")
	require.NoError(t, err)

	second, err := env.svc.Login(ctx, "tenant-1", "a@x.com", "correct")
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// the first device's refresh token is dead
	_, err = env.svc.Refresh(ctx, "tenant-1", first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// the second device's works
	res, err := env.svc.Refresh(ctx, "tenant-1", second.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)

	// the first device's access token is stateless and still verifies
	_, err = env.issuer.VerifyAccess(first.AccessToken)
	assert.NoError(t, err)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)
	ctx := context.Background()
	admin := env.seedAdmin(t, "tenant-1", "a@x.com", "correct")

	login, err := env.svc.Login(ctx, "tenant-1", "a@x.com", "correct")
	require.NoError(t, err)

	res, err := env.svc.Refresh(ctx, "tenant-1", login.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)

	claims, err := env.issuer.VerifyAccess(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, admin.ID, claims.Subject)
}

func TestAuthService_Refresh_PicksUpRoleChange(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)
	ctx := context.Background()
	admin := env.seedAdmin(t, "tenant-1", "a@x.com", "correct")

	login, err := env.svc.Login(ctx, "tenant-1", "a@x.com", "correct")
	require.NoError(t, err)

	admin.Role = models.RoleEditor
	require.NoError(t, env.repo.UpdateAdmin(ctx, admin))

	res, err := env.svc.Refresh(ctx, "tenant-1", login.RefreshToken)
	require.NoError(t, err)

	claims, err := env.issuer.VerifyAccess(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, claims.Role)
}

func TestAuthService_Refresh_Validation(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)

	res, err := env.svc.Refresh(context.Background(), "tenant-1", "")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_Refresh_RejectsGarbageToken(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)

	res, err := env.svc.Refresh(context.Background(), "tenant-1", "not-a-valid-jwt")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_Refresh_RejectsTamperedToken(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)
	ctx := context.Background()
	env.seedAdmin(t, "tenant-1", "a@x.com", "correct")

	login, err := env.svc.Login(ctx, "tenant-1", "a@x.com", "correct")
	require.NoError(t, err)

	tampered := []byte(login.RefreshToken)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = env.svc.Refresh(ctx, "tenant-1", string(tampered))
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_Refresh_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)
	ctx := context.Background()
	admin := env.seedAdmin(t, "tenant-1", "a@x.com", "correct")

	expired, _, err := env.issuer.IssueRefresh(admin.ID, "tenant-1", time.Now().UTC().Add(-8*24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, env.sessions.Put(ctx, "tenant-1", admin.ID, expired, time.Hour))

	_, err = env.svc.Refresh(ctx, "tenant-1", expired)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_Refresh_RejectsTenantMismatch(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)
	ctx := context.Background()
	env.seedAdmin(t, "tenant-1", "a@x.com", "correct")

	login, err := env.svc.Login(ctx, "tenant-1", "a@x.com", "correct")
	require.NoError(t, err)

	_, err = env.svc.Refresh(ctx, "tenant-2", login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_Refresh_RejectsDeletedAdmin(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)
	ctx := context.Background()
	admin := env.seedAdmin(t, "tenant-1", "a@x.com", "correct")

	login, err := env.svc.Login(ctx, "tenant-1", "a@x.com", "correct")
	require.NoError(t, err)

	require.NoError(t, env.repo.DeleteAdmin(ctx, "tenant-1", admin.ID))

	_, err = env.svc.Refresh(ctx, "tenant-1", login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_RegisterAdmin_EmailUniquePerTenant(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)
	ctx := context.Background()

	_, err := env.svc.RegisterAdmin(ctx, "tenant-1", "a@x.com", "secret", models.RoleAdmin)
	require.NoError(t, err)

	// same tenant, same email: conflict
	_, err = env.svc.RegisterAdmin(ctx, "tenant-1", "a@x.com", "secret", models.RoleAdmin)
	assert.ErrorIs(t, err, repo.ErrConflict)

	// other tenant, same email: fine
	_, err = env.svc.RegisterAdmin(ctx, "tenant-2", "a@x.com", "secret", models.RoleEditor)
	assert.NoError(t, err)
}

func TestAuthService_RegisterAdmin_RejectsUnknownRole(t *testing.T) {
	t.Parallel()

	env := newAuthEnv(t)

	_, err := env.svc.RegisterAdmin(context.Background(), "tenant-1", "a@x.com", "secret", "superuser")
	assert.ErrorIs(t, err, ErrValidation)
}
