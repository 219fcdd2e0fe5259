package service

import (
	"context"
	"errors"
	"time"

	"github.com/koolee1372/bpr-cms/internal/hash"
	"github.com/koolee1372/bpr-cms/internal/models"
	"github.com/koolee1372/bpr-cms/internal/repo"
	"github.com/koolee1372/bpr-cms/internal/session"
	"github.com/koolee1372/bpr-cms/internal/tokens"
	"github.com/koolee1372/bpr-cms/pkg/logging"
)

var (
	ErrValidation = errors.New("missing required field")

	// One message for unknown email and wrong password, so callers
	// cannot probe which addresses exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// AuthService is the only place tokens are minted. Login overwrites the
// session entry, refresh reads it; nothing else touches the session
// store.
type AuthService struct {
	Repo     *repo.GormRepo
	Hasher   *hash.Hasher
	Issuer   *tokens.Issuer
	Sessions *session.Store
}

type AdminProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	Admin        AdminProfile
}

type RefreshResult struct {
	AccessToken string
	AccessExp   time.Time
}

func (s *AuthService) Login(ctx context.Context, tenantID, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "tenant_id", tenantID)

	if email == "" || password == "" {
		return nil, ErrValidation
	}

	admin, err := s.Repo.AdminByEmail(ctx, tenantID, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.Hasher.Check(admin.PasswordHash, password) {
		l.Warn("login_failed", "reason", "password mismatch", "admin_id", admin.ID)
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	accessToken, accessExp, err := s.Issuer.IssueAccess(admin.ID, tenantID, admin.Role, now)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExp, err := s.Issuer.IssueRefresh(admin.ID, tenantID, now)
	if err != nil {
		return nil, err
	}

	// Last writer wins: a concurrent login from another device simply
	// becomes the active session.
	if err := s.Sessions.Put(ctx, tenantID, admin.ID, refreshToken, s.Issuer.RefreshTTL); err != nil {
		return nil, err
	}

	l.Info("login_successful", "admin_id", admin.ID, "role", admin.Role)

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		Admin: AdminProfile{
			ID:    admin.ID,
			Email: admin.Email,
			Role:  admin.Role,
		},
	}, nil
}

// Refresh issues a new access token only. The refresh token itself is
// not rotated; it stays valid until it expires or a newer login
// replaces the session entry.
func (s *AuthService) Refresh(ctx context.Context, tenantID, refreshToken string) (*RefreshResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh", "tenant_id", tenantID)

	if refreshToken == "" {
		return nil, ErrValidation
	}

	claims, err := s.Issuer.VerifyRefresh(refreshToken)
	if err != nil {
		l.Warn("refresh_failed", "reason", "bad signature or expired")
		return nil, ErrInvalidRefreshToken
	}
	if claims.TenantID != tenantID {
		l.Warn("refresh_failed", "reason", "tenant mismatch")
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.Sessions.Get(ctx, claims.TenantID, claims.Subject)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			l.Warn("refresh_failed", "reason", "no session", "admin_id", claims.Subject)
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if stored != refreshToken {
		// superseded by a newer login
		l.Warn("refresh_failed", "reason", "superseded", "admin_id", claims.Subject)
		return nil, ErrInvalidRefreshToken
	}

	admin, err := s.Repo.AdminByID(ctx, claims.TenantID, claims.Subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("refresh_failed", "reason", "admin gone", "admin_id", claims.Subject)
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	accessToken, accessExp, err := s.Issuer.IssueAccess(admin.ID, claims.TenantID, admin.Role, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	l.Info("refresh_successful", "admin_id", admin.ID)

	return &RefreshResult{AccessToken: accessToken, AccessExp: accessExp}, nil
}

// RegisterAdmin hashes the password and stores a new admin for the
// tenant. Used by the admins API and the bootstrap seed.
func (s *AuthService) RegisterAdmin(ctx context.Context, tenantID, email, password, role string) (*models.Admin, error) {
	if email == "" || password == "" {
		return nil, ErrValidation
	}
	if !models.ValidRole(role) {
		return nil, ErrValidation
	}

	admin := &models.Admin{
		ID:           newID(),
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: s.Hasher.Hash(password),
		Role:         role,
	}
	if err := s.Repo.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
