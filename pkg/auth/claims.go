// Package auth provides JWT-based tenant authentication for occupancy-engine.
// Tokens are HMAC-signed (HS256) with a server-held secret and carry the
// tenant identity every downstream store query is scoped to.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// ClaimsKey is the context key for storing JWT claims.
	ClaimsKey contextKey = "claims"
	// TenantKey is the context key for storing the resolved tenant.
	TenantKey contextKey = "tenant"
)

// Claims represents the JWT claims structure for tenant tokens.
// It embeds RegisteredClaims for standard JWT fields (iat, exp)
// and adds the tenant identifier claim.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tenantId"`
}
