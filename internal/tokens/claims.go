package tokens

import "github.com/golang-jwt/jwt/v5"

// Token type discriminator carried in the "typ" claim. Both token kinds
// are signed with the same secret, so verification must reject a token
// of the other kind or a refresh token would double as a long-lived
// access credential.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// AccessClaims are carried by short-lived access tokens. Validity is a
// pure signature+expiry check; nothing is persisted.
type AccessClaims struct {
	TokenType string `json:"typ"`
	TenantID  string `json:"tid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims are carried by refresh tokens. A refresh token is only
// usable while it matches the session store entry for (tenant, subject).
type RefreshClaims struct {
	TokenType string `json:"typ"`
	TenantID  string `json:"tid"`
	jwt.RegisteredClaims
}
