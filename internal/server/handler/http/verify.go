package http

import (
	"encoding/json"
	"net/http"

	"github.com/keywarden/keywarden/internal/models"
	"github.com/keywarden/keywarden/internal/service"
)

// VerifyHandler handles the validation endpoints. Both checks are pure
// functions of their input; nothing is stored or derived.
type VerifyHandler struct{}

// Password handles POST /api/verify/password requests, checking the
// candidate password against the vault's policy.
func (h *VerifyHandler) Password(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.VerifyResponse{Valid: service.ValidatePassword(req.Password)})
}

// KeyFormat handles POST /api/verify/key-format requests, checking
// whether the candidate private key looks like a WIF-encoded wallet key.
func (h *VerifyHandler) KeyFormat(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.VerifyResponse{Valid: service.ValidateKeyFormat(req.PrivateKey)})
}
