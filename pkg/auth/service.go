package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Common authentication errors.
var (
	ErrMissingAuthorization = errors.New("missing authorization")
	ErrInvalidToken         = errors.New("invalid token")
	ErrSecretNotConfigured  = errors.New("JWT secret not configured")
)

// TokenService defines the interface for bearer token verification.
// This abstraction enables clean separation between HTTP handling
// and token logic, making both easier to test.
type TokenService interface {
	// ValidateRequest extracts and validates a JWT from the request's
	// Authorization header ("Bearer" scheme). Returns the validated
	// claims or an error.
	ValidateRequest(r *http.Request) (*Claims, error)
}

// tokenService implements TokenService with an HMAC server secret.
type tokenService struct {
	secret []byte
	logger *zap.Logger
}

// NewTokenService creates a TokenService verifying HS256 signatures with
// the given secret. An empty secret is tolerated at construction but fails
// closed on every validation attempt.
func NewTokenService(secret string, logger *zap.Logger) TokenService {
	return &tokenService{
		secret: []byte(secret),
		logger: logger,
	}
}

// ValidateRequest extracts and validates a JWT from the request.
func (s *tokenService) ValidateRequest(r *http.Request) (*Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		s.logger.Debug("No bearer token in request",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method))
		return nil, ErrMissingAuthorization
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		s.logger.Debug("Invalid Authorization header format",
			zap.String("path", r.URL.Path))
		return nil, ErrInvalidToken
	}

	if len(s.secret) == 0 {
		s.logger.Error("JWT_SECRET not configured")
		return nil, ErrSecretNotConfigured
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(parts[1], claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		s.logger.Debug("JWT validation failed",
			zap.Error(err),
			zap.String("path", r.URL.Path))
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.TenantID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Ensure tokenService implements TokenService at compile time.
var _ TokenService = (*tokenService)(nil)
