package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, badly signed and expired tokens
// alike; callers never learn which it was.
var ErrInvalidToken = errors.New("invalid or expired token")

// Issuer mints and verifies HS256 tokens with a single process-wide
// secret injected at construction. Access and refresh lifetimes are
// independent; refresh is expected to outlive access but that is a
// contract with the configuration, not checked here.
type Issuer struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewIssuer(secret []byte, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{Secret: secret, AccessTTL: accessTTL, RefreshTTL: refreshTTL}
}

func (i *Issuer) IssueAccess(adminID, tenantID, role string, now time.Time) (string, time.Time, error) {
	exp := now.Add(i.AccessTTL)
	claims := AccessClaims{
		TokenType: TypeAccess,
		TenantID:  tenantID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (i *Issuer) IssueRefresh(adminID, tenantID string, now time.Time) (string, time.Time, error) {
	exp := now.Add(i.RefreshTTL)
	claims := RefreshClaims{
		TokenType: TypeRefresh,
		TenantID:  tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (i *Issuer) VerifyAccess(tokenStr string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := i.parse(tokenStr, &claims); err != nil {
		return nil, err
	}
	if claims.TokenType != TypeAccess {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func (i *Issuer) VerifyRefresh(tokenStr string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := i.parse(tokenStr, &claims); err != nil {
		return nil, err
	}
	if claims.TokenType != TypeRefresh {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func (i *Issuer) parse(tokenStr string, claims jwt.Claims) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return i.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return ErrInvalidToken
	}
	return nil
}
