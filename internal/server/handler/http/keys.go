// Package http provides the HTTP handlers for the vault daemon's
// command API: storing, recovering, and deleting sealed wallet keys.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keywarden/keywarden/internal/models"
	"github.com/keywarden/keywarden/internal/service"
	"github.com/keywarden/keywarden/internal/vault"
)

// KeeperService defines the key operations required by the HTTP
// handlers.
type KeeperService interface {
	// StoreKey seals privateKey under password and persists the envelope.
	StoreKey(ctx context.Context, username, keyType, privateKey, password string) error
	// RetrieveKey recovers the plaintext key stored for username/keyType.
	RetrieveKey(ctx context.Context, username, keyType, password string) (string, error)
	// DeleteKey removes the stored envelope for username/keyType.
	DeleteKey(ctx context.Context, username, keyType string) error
	// Clear wipes every stored envelope.
	Clear(ctx context.Context) error
}

// KeysHandler handles HTTP requests for storing, recovering, and
// deleting sealed wallet keys.
type KeysHandler struct {
	// KeeperService performs the underlying key operations.
	KeeperService KeeperService
}

// Store handles POST /api/keys requests.
// It expects a JSON StoreKeyRequest, checks the password policy and the
// private key's format, seals the key, and persists the envelope. The
// plaintext key and password are never echoed back.
func (h *KeysHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req models.StoreKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if !service.ValidatePassword(req.Password) {
		http.Error(w, "password does not meet the policy", http.StatusBadRequest)
		return
	}
	if !service.ValidateKeyFormat(req.PrivateKey) {
		http.Error(w, "private key format is invalid", http.StatusBadRequest)
		return
	}

	if err := h.KeeperService.StoreKey(r.Context(), req.Username, req.KeyType, req.PrivateKey, req.Password); err != nil {
		writeKeeperError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.StatusResponse{Message: "key stored"})
}

// Retrieve handles POST /api/keys/retrieve requests.
// It expects a JSON RetrieveKeyRequest and answers with the recovered
// plaintext key on success. A wrong password is 401; a key that was
// never stored is 404.
func (h *KeysHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	var req models.RetrieveKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	privateKey, err := h.KeeperService.RetrieveKey(r.Context(), req.Username, req.KeyType, req.Password)
	if err != nil {
		writeKeeperError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.RetrieveKeyResponse{PrivateKey: privateKey})
}

// Delete handles DELETE /api/keys/{username}/{keyType} requests.
// Deleting a key that was never stored still answers 200; the outcome
// is the same either way.
func (h *KeysHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	keyType := chi.URLParam(r, "keyType")

	if err := h.KeeperService.DeleteKey(r.Context(), username, keyType); err != nil {
		writeKeeperError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.StatusResponse{Message: "key deleted"})
}

// Clear handles DELETE /api/keys requests, wiping every stored envelope.
func (h *KeysHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.KeeperService.Clear(r.Context()); err != nil {
		writeKeeperError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.StatusResponse{Message: "store cleared"})
}

// writeKeeperError maps service and vault errors onto HTTP statuses.
// Validation problems are 400, a wrong password is 401, a missing key
// is 404, and a corrupted stored envelope is 500. Error messages never
// include passwords or key material.
func writeKeeperError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrUnknownKeyType),
		errors.Is(err, vault.ErrEmptySecret),
		errors.Is(err, vault.ErrEmptyPassword):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, vault.ErrAuthenticationFailed):
		http.Error(w, "authentication failed", http.StatusUnauthorized)
	case errors.Is(err, service.ErrKeyNotFound):
		http.Error(w, "key not found", http.StatusNotFound)
	case errors.Is(err, vault.ErrMalformedEnvelope),
		errors.Is(err, vault.ErrMalformedSalt),
		errors.Is(err, vault.ErrInvalidParameters),
		errors.Is(err, vault.ErrInvalidUTF8):
		http.Error(w, "stored envelope is corrupted", http.StatusInternalServerError)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
