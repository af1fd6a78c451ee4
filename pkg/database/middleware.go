package database

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/spacewise-io/occupancy-engine/pkg/auth"
)

// WithTenantContext creates middleware that sets up a tenant-scoped DB connection.
// It runs AFTER auth middleware and uses the tenant resolved from the bearer token.
// The connection is automatically cleaned up after the handler returns.
func WithTenantContext(db *DB, logger *zap.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tenant, ok := auth.GetTenant(r.Context())
			if !ok {
				logger.Error("Missing tenant context on scoped route",
					zap.String("path", r.URL.Path))
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			scope, err := db.WithTenant(r.Context(), tenant.ID)
			if err != nil {
				logger.Error("Failed to acquire tenant connection",
					zap.String("tenant_id", tenant.ID.String()),
					zap.Error(err))
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			defer scope.Close()

			ctx := SetTenantScope(r.Context(), scope)
			next(w, r.WithContext(ctx))
		}
	}
}

// writeError writes a JSON error envelope.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
