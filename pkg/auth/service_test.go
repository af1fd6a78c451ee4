package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-for-token-service"

func signToken(t *testing.T, secret string, tenantID string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TenantID: tenantID,
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func requestWithToken(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestTokenService_ValidateRequest(t *testing.T) {
	tenantID := uuid.New().String()
	svc := NewTokenService(testSecret, zap.NewNop())

	claims, err := svc.ValidateRequest(requestWithToken(signToken(t, testSecret, tenantID, time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, tenantID, claims.TenantID)
}

func TestTokenService_ValidateRequest_MissingHeader(t *testing.T) {
	svc := NewTokenService(testSecret, zap.NewNop())

	_, err := svc.ValidateRequest(requestWithToken(""))
	assert.ErrorIs(t, err, ErrMissingAuthorization)
}

func TestTokenService_ValidateRequest_WrongScheme(t *testing.T) {
	svc := NewTokenService(testSecret, zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	_, err := svc.ValidateRequest(r)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ValidateRequest_EmptySecretFailsClosed(t *testing.T) {
	tenantID := uuid.New().String()
	svc := NewTokenService("", zap.NewNop())

	_, err := svc.ValidateRequest(requestWithToken(signToken(t, testSecret, tenantID, time.Hour)))
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}

func TestTokenService_ValidateRequest_WrongSecret(t *testing.T) {
	tenantID := uuid.New().String()
	svc := NewTokenService(testSecret, zap.NewNop())

	_, err := svc.ValidateRequest(requestWithToken(signToken(t, "some-other-secret", tenantID, time.Hour)))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ValidateRequest_ExpiredToken(t *testing.T) {
	tenantID := uuid.New().String()
	svc := NewTokenService(testSecret, zap.NewNop())

	_, err := svc.ValidateRequest(requestWithToken(signToken(t, testSecret, tenantID, -time.Minute)))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ValidateRequest_MissingTenantClaim(t *testing.T) {
	svc := NewTokenService(testSecret, zap.NewNop())

	_, err := svc.ValidateRequest(requestWithToken(signToken(t, testSecret, "", time.Hour)))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ValidateRequest_RejectsUnsignedAlg(t *testing.T) {
	svc := NewTokenService(testSecret, zap.NewNop())

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{TenantID: uuid.New().String()})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateRequest(requestWithToken(unsigned))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
