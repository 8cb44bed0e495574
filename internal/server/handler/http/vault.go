// Package http provides HTTP handlers exposing the vault service's
// operations. Handlers only marshal requests and responses; all
// cryptographic and policy logic lives in the service.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mconti/passvault/internal/middleware"
	"github.com/mconti/passvault/internal/models"
	"github.com/mconti/passvault/internal/service"
)

// VaultService defines the vault operations required by the HTTP handlers.
type VaultService interface {
	// Status reports whether the master password has been enrolled.
	Status(ctx context.Context) (bool, error)
	// Initialize enrolls the master password.
	Initialize(ctx context.Context, masterPassword string) error
	// Verify checks the master password.
	Verify(ctx context.Context, masterPassword string) error
	// ListApps returns the sorted distinct app names.
	ListApps(ctx context.Context, masterPassword string) ([]string, error)
	// CreateCredential stores a new credential or reports the duplicate
	// blocking it.
	CreateCredential(ctx context.Context, masterPassword, appName, username, createdBy, password string) (*service.CreateResult, error)
	// UpdateCredential replaces a credential's password in place.
	UpdateCredential(ctx context.Context, masterPassword, id, password string) (*service.UpdateResult, error)
	// ListCredentials returns credentials with decrypted passwords,
	// optionally filtered by app name.
	ListCredentials(ctx context.Context, masterPassword, appName string) ([]models.DecryptedCredential, error)
	// DeleteCredential removes a credential.
	DeleteCredential(ctx context.Context, masterPassword, id string) error
}

// VaultHandler handles HTTP requests for all vault endpoints.
type VaultHandler struct {
	// VaultService performs the underlying vault operations.
	VaultService VaultService
}

// writeError maps service errors to status codes. Messages stay generic:
// authentication and decryption failures never reveal which check failed,
// and no internal error detail reaches the caller.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAuthentication):
		http.Error(w, "wrong master password", http.StatusUnauthorized)
	case errors.Is(err, service.ErrDecryption):
		http.Error(w, "decryption error", http.StatusUnauthorized)
	case errors.Is(err, service.ErrNotInitialized):
		http.Error(w, "vault not initialized", http.StatusNotFound)
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, "credential not found", http.StatusNotFound)
	case errors.Is(err, service.ErrAlreadyInitialized):
		http.Error(w, "master password already configured", http.StatusBadRequest)
	case errors.Is(err, service.ErrWeakPassword):
		http.Error(w, "password does not meet strength requirements", http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// MasterPasswordRequest is the JSON payload carrying a master password.
type MasterPasswordRequest struct {
	MasterPassword string `json:"master_password"`
}

// CredentialRequest is the JSON payload for credential creation.
type CredentialRequest struct {
	AppName   string `json:"app_name"`
	Username  string `json:"username"`
	CreatedBy string `json:"created_by"`
	Password  string `json:"password"`
}

// CredentialUpdateRequest is the JSON payload for a password replacement.
type CredentialUpdateRequest struct {
	Password string `json:"password"`
}

// Status handles GET /status/. No authentication required.
func (h *VaultHandler) Status(w http.ResponseWriter, r *http.Request) {
	initialized, err := h.VaultService.Status(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"is_initialized": initialized})
}

// Initialize handles POST /initialize/.
func (h *VaultHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	var req MasterPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MasterPassword == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.VaultService.Initialize(r.Context(), req.MasterPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

// Verify handles POST /verify/.
func (h *VaultHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req MasterPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.VaultService.Verify(r.Context(), req.MasterPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

// Apps handles GET /apps/.
func (h *VaultHandler) Apps(w http.ResponseWriter, r *http.Request) {
	masterPassword := middleware.GetMasterPasswordFromContext(r.Context())

	apps, err := h.VaultService.ListApps(r.Context(), masterPassword)
	if err != nil {
		writeError(w, err)
		return
	}
	if apps == nil {
		apps = []string{}
	}
	writeJSON(w, map[string][]string{"apps": apps})
}

// Create handles POST /credentials/. A taken (app, username) pair yields an
// "exists" response describing the blocking record instead of a write.
func (h *VaultHandler) Create(w http.ResponseWriter, r *http.Request) {
	masterPassword := middleware.GetMasterPasswordFromContext(r.Context())

	var req CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.AppName == "" || req.Username == "" || req.CreatedBy == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.VaultService.CreateCredential(
		r.Context(), masterPassword,
		req.AppName, req.Username, req.CreatedBy, req.Password,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	if result.Existing != nil {
		writeJSON(w, map[string]string{
			"message":     "exists",
			"existing_id": result.Existing.ID,
			"app_name":    result.Existing.AppName,
			"username":    result.Existing.Username,
			"created_by":  result.Existing.CreatedBy,
		})
		return
	}

	resp := map[string]string{
		"message": "created",
		"id":      result.ID,
	}
	if result.GeneratedPassword != "" {
		resp["generated_password"] = result.GeneratedPassword
	}
	writeJSON(w, resp)
}

// Update handles PUT /credentials/{id}.
func (h *VaultHandler) Update(w http.ResponseWriter, r *http.Request) {
	masterPassword := middleware.GetMasterPasswordFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req CredentialUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.VaultService.UpdateCredential(r.Context(), masterPassword, id, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]string{
		"message": "updated",
		"id":      result.ID,
	}
	if result.GeneratedPassword != "" {
		resp["generated_password"] = result.GeneratedPassword
	}
	writeJSON(w, resp)
}

// List handles GET /credentials/?app_name=.
func (h *VaultHandler) List(w http.ResponseWriter, r *http.Request) {
	masterPassword := middleware.GetMasterPasswordFromContext(r.Context())
	appName := r.URL.Query().Get("app_name")

	creds, err := h.VaultService.ListCredentials(r.Context(), masterPassword, appName)
	if err != nil {
		writeError(w, err)
		return
	}
	if creds == nil {
		creds = []models.DecryptedCredential{}
	}
	writeJSON(w, creds)
}

// Delete handles DELETE /credentials/{id}.
func (h *VaultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	masterPassword := middleware.GetMasterPasswordFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.VaultService.DeleteCredential(r.Context(), masterPassword, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"message": "credential deleted"})
}
