package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spacewise-io/occupancy-engine/pkg/apperrors"
	"github.com/spacewise-io/occupancy-engine/pkg/models"
)

// ============================================================================
// Mocks
// ============================================================================

type mockTokenService struct {
	claims *Claims
	err    error
}

func (m *mockTokenService) ValidateRequest(r *http.Request) (*Claims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

type mockTenantResolver struct {
	tenant *models.Tenant
	err    error
}

func (m *mockTenantResolver) ResolveActiveTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tenant, nil
}

func activeTenant() *models.Tenant {
	return &models.Tenant{
		ID:     uuid.New(),
		Slug:   "bank123",
		Active: true,
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	msg, _ := body["error"].(string)
	return msg
}

// ============================================================================
// RequireTenant
// ============================================================================

func TestMiddleware_RequireTenant(t *testing.T) {
	tenant := activeTenant()
	m := NewMiddleware(
		&mockTokenService{claims: &Claims{TenantID: tenant.ID.String()}},
		&mockTenantResolver{tenant: tenant},
		zap.NewNop(),
	)

	var gotTenant *models.Tenant
	var gotClaims *Claims
	handler := m.RequireTenant(func(w http.ResponseWriter, r *http.Request) {
		gotTenant, _ = GetTenant(r.Context())
		gotClaims, _ = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotTenant)
	assert.Equal(t, tenant.ID, gotTenant.ID)
	require.NotNil(t, gotClaims)
	assert.Equal(t, tenant.ID.String(), gotClaims.TenantID)
}

func TestMiddleware_RequireTenant_MissingToken(t *testing.T) {
	m := NewMiddleware(
		&mockTokenService{err: ErrMissingAuthorization},
		&mockTenantResolver{},
		zap.NewNop(),
	)

	handler := m.RequireTenant(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access token is required", decodeError(t, w))
}

func TestMiddleware_RequireTenant_InvalidToken(t *testing.T) {
	m := NewMiddleware(
		&mockTokenService{err: ErrInvalidToken},
		&mockTenantResolver{},
		zap.NewNop(),
	)

	handler := m.RequireTenant(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid token", decodeError(t, w))
}

func TestMiddleware_RequireTenant_SecretNotConfigured(t *testing.T) {
	m := NewMiddleware(
		&mockTokenService{err: ErrSecretNotConfigured},
		&mockTenantResolver{},
		zap.NewNop(),
	)

	handler := m.RequireTenant(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server configuration error", decodeError(t, w))
}

func TestMiddleware_RequireTenant_MalformedTenantClaim(t *testing.T) {
	m := NewMiddleware(
		&mockTokenService{claims: &Claims{TenantID: "not-a-uuid"}},
		&mockTenantResolver{},
		zap.NewNop(),
	)

	handler := m.RequireTenant(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid token", decodeError(t, w))
}

func TestMiddleware_RequireTenant_InactiveTenant(t *testing.T) {
	m := NewMiddleware(
		&mockTokenService{claims: &Claims{TenantID: uuid.New().String()}},
		&mockTenantResolver{err: apperrors.ErrNotFound},
		zap.NewNop(),
	)

	handler := m.RequireTenant(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid or inactive tenant", decodeError(t, w))
}

func TestMiddleware_RequireTenant_ResolverFailure(t *testing.T) {
	m := NewMiddleware(
		&mockTokenService{claims: &Claims{TenantID: uuid.New().String()}},
		&mockTenantResolver{err: errors.New("connection refused")},
		zap.NewNop(),
	)

	handler := m.RequireTenant(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeError(t, w))
}

// ============================================================================
// RequireTenantWithPathValidation
// ============================================================================

func TestMiddleware_PathValidation_Match(t *testing.T) {
	tenant := activeTenant()
	m := NewMiddleware(
		&mockTokenService{claims: &Claims{TenantID: tenant.ID.String()}},
		&mockTenantResolver{tenant: tenant},
		zap.NewNop(),
	)

	handler := m.RequireTenantWithPathValidation("tenant_id")(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/utilization/"+tenant.ID.String()+"/confA", nil)
	r.SetPathValue("tenant_id", tenant.ID.String())
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_PathValidation_Mismatch(t *testing.T) {
	tenant := activeTenant()
	m := NewMiddleware(
		&mockTokenService{claims: &Claims{TenantID: tenant.ID.String()}},
		&mockTenantResolver{tenant: tenant},
		zap.NewNop(),
	)

	handler := m.RequireTenantWithPathValidation("tenant_id")(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	other := uuid.New().String()
	r := httptest.NewRequest(http.MethodGet, "/api/utilization/"+other+"/confA", nil)
	r.SetPathValue("tenant_id", other)
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Tenant access violation", decodeError(t, w))
}
