package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spacewise-io/occupancy-engine/pkg/apperrors"
	"github.com/spacewise-io/occupancy-engine/pkg/models"
)

// TenantResolver loads an active tenant by id. Implemented by the tenant
// repository; abstracted here so the middleware is testable without a store.
type TenantResolver interface {
	ResolveActiveTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
}

// Middleware provides HTTP authentication middleware.
// It is thin and delegates token verification to TokenService and tenant
// lookup to TenantResolver.
type Middleware struct {
	tokens  TokenService
	tenants TenantResolver
	logger  *zap.Logger
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(tokens TokenService, tenants TenantResolver, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens:  tokens,
		tenants: tenants,
		logger:  logger,
	}
}

// RequireTenant validates the bearer token, loads the active tenant it
// names, and stores both claims and tenant in the request context.
func (m *Middleware) RequireTenant(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, claims, ok := m.authenticate(w, r)
		if !ok {
			return
		}

		next(w, r.WithContext(m.contextWith(r.Context(), tenant, claims)))
	}
}

// RequireTenantWithPathValidation validates the bearer token and matches a
// tenant id in the URL path against the authenticated tenant. Use for
// routes like /api/utilization/{tenant_id}/{room_id} where the URL carries
// tenant scope. A valid credential for tenant A must never read data
// scoped to tenant B, even if A guesses B's identifiers.
func (m *Middleware) RequireTenantWithPathValidation(pathParamName string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tenant, claims, ok := m.authenticate(w, r)
			if !ok {
				return
			}

			urlTenantID := r.PathValue(pathParamName)
			if urlTenantID != "" && urlTenantID != tenant.ID.String() {
				m.logger.Warn("Tenant ID mismatch",
					zap.String("authenticated", tenant.ID.String()),
					zap.String("requested", urlTenantID),
					zap.String("path", r.URL.Path))
				m.forbidden(w, "Tenant access violation")
				return
			}

			next(w, r.WithContext(m.contextWith(r.Context(), tenant, claims)))
		}
	}
}

// authenticate verifies the token and resolves the active tenant, writing
// the error response itself on failure.
func (m *Middleware) authenticate(w http.ResponseWriter, r *http.Request) (*models.Tenant, *Claims, bool) {
	claims, err := m.tokens.ValidateRequest(r)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingAuthorization):
			m.unauthorized(w, "Access token is required")
		case errors.Is(err, ErrSecretNotConfigured):
			// Fail closed: a misconfigured server never authenticates.
			m.serverError(w, "Server configuration error")
		default:
			m.forbidden(w, "Invalid token")
		}
		return nil, nil, false
	}

	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		m.logger.Debug("Malformed tenant id in token claims",
			zap.String("tenant_id", claims.TenantID))
		m.forbidden(w, "Invalid token")
		return nil, nil, false
	}

	tenant, err := m.tenants.ResolveActiveTenant(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			m.forbidden(w, "Invalid or inactive tenant")
			return nil, nil, false
		}
		m.logger.Error("Failed to resolve tenant",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		m.serverError(w, "Internal server error")
		return nil, nil, false
	}

	m.logger.Info("Request authenticated",
		zap.String("tenant", tenant.Slug),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method))

	return tenant, claims, true
}

func (m *Middleware) contextWith(ctx context.Context, tenant *models.Tenant, claims *Claims) context.Context {
	ctx = SetClaims(ctx, claims)
	return SetTenant(ctx, tenant)
}

// unauthorized returns a 401 response with JSON error envelope.
func (m *Middleware) unauthorized(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusUnauthorized, message)
}

// forbidden returns a 403 response with JSON error envelope.
func (m *Middleware) forbidden(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusForbidden, message)
}

// serverError returns a 500 response with JSON error envelope.
func (m *Middleware) serverError(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusInternalServerError, message)
}

func writeEnvelope(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
