// Package http provides HTTP routing and middleware configuration for the
// vault service.
package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mconti/passvault/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the vault API.
//
// Routes:
//
//	GET    /status/            → vaultHandler.Status (no auth)
//	POST   /initialize/        → vaultHandler.Initialize
//	POST   /verify/            → vaultHandler.Verify
//	GET    /apps/              → vaultHandler.Apps
//	POST   /credentials/       → vaultHandler.Create
//	GET    /credentials/       → vaultHandler.List
//	PUT    /credentials/{id}   → vaultHandler.Update
//	DELETE /credentials/{id}   → vaultHandler.Delete
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)           — logs incoming requests
//  3. WithMasterPassword                   — header into request context
func NewRouter(vaultHandler *VaultHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Make the master-password header available to handlers
	r.Use(middleware.WithMasterPassword)

	r.Get("/status/", vaultHandler.Status)
	r.Post("/initialize/", vaultHandler.Initialize)
	r.Post("/verify/", vaultHandler.Verify)
	r.Get("/apps/", vaultHandler.Apps)

	r.Route("/credentials", func(r chi.Router) {
		r.Post("/", vaultHandler.Create)
		r.Get("/", vaultHandler.List)
		r.Put("/{id}", vaultHandler.Update)
		r.Delete("/{id}", vaultHandler.Delete)
	})

	return r
}
