// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
)

type ctxKey string

const masterPasswordKey ctxKey = "master-password"

// MasterPasswordHeader is the request header carrying the master password on
// authenticated endpoints.
const MasterPasswordHeader = "master-password"

// WithMasterPassword extracts the master-password header and stores it in
// the request context for downstream handlers. The middleware does not
// verify anything: verification happens inside the vault service on every
// operation, so an absent header simply fails authentication there.
func WithMasterPassword(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), masterPasswordKey, r.Header.Get(MasterPasswordHeader))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetMasterPasswordFromContext returns the master password stored by
// WithMasterPassword, or an empty string if not present.
func GetMasterPasswordFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(masterPasswordKey).(string); ok {
		return s
	}
	return ""
}
