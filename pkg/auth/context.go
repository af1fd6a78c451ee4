package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/spacewise-io/occupancy-engine/pkg/models"
)

// GetClaims retrieves JWT claims from the request context.
// Returns nil and false if claims are not present.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*Claims)
	return claims, ok
}

// GetTenant retrieves the resolved tenant from the request context.
// Returns nil and false if not present.
func GetTenant(ctx context.Context) (*models.Tenant, bool) {
	tenant, ok := ctx.Value(TenantKey).(*models.Tenant)
	return tenant, ok
}

// GetTenantIDFromContext extracts the resolved tenant's ID from the context.
// Returns uuid.Nil if not authenticated.
func GetTenantIDFromContext(ctx context.Context) uuid.UUID {
	tenant, ok := GetTenant(ctx)
	if !ok || tenant == nil {
		return uuid.Nil
	}
	return tenant.ID
}

// SetTenant stores the resolved tenant in the context.
func SetTenant(ctx context.Context, tenant *models.Tenant) context.Context {
	return context.WithValue(ctx, TenantKey, tenant)
}

// SetClaims stores validated JWT claims in the context.
func SetClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}
