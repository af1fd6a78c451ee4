package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spacewise-io/occupancy-engine/pkg/apperrors"
	"github.com/spacewise-io/occupancy-engine/pkg/database"
	"github.com/spacewise-io/occupancy-engine/pkg/models"
)

// TenantRepository provides data access for tenant records.
type TenantRepository interface {
	// ResolveActiveTenant loads a tenant by id, requiring active = true.
	// Returns apperrors.ErrNotFound for absent or inactive tenants.
	ResolveActiveTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
}

// tenantRepository runs against the pool directly: it executes during
// authentication, before any tenant scope exists, and the tenants table
// carries no row filter.
type tenantRepository struct {
	db *database.DB
}

// NewTenantRepository creates a new TenantRepository.
func NewTenantRepository(db *database.DB) TenantRepository {
	return &tenantRepository{db: db}
}

var _ TenantRepository = (*tenantRepository)(nil)

func (r *tenantRepository) ResolveActiveTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	query := `
		SELECT id, name, slug, COALESCE(description, ''), settings, active,
		       created_at, updated_at
		FROM tenants
		WHERE id = $1 AND active = true`

	tenant := &models.Tenant{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Slug,
		&tenant.Description,
		&tenant.Settings,
		&tenant.Active,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}

	return tenant, nil
}
