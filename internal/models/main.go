// Package models defines the request and response shapes shared by the
// vault daemon and its clients, plus the wallet key roles a vault manages.
package models

// KeyType defines the set of wallet key roles a vault stores.
type KeyType string

const (
	// OwnerKey controls account recovery and key rotation.
	OwnerKey KeyType = "owner"
	// ActiveKey signs transfers and account operations.
	ActiveKey KeyType = "active"
	// PostingKey signs content and social operations.
	PostingKey KeyType = "posting"
	// MemoKey encrypts and decrypts private memos.
	MemoKey KeyType = "memo"
)

// ValidKeyType reports whether t names one of the wallet key roles.
func ValidKeyType(t string) bool {
	switch KeyType(t) {
	case OwnerKey, ActiveKey, PostingKey, MemoKey:
		return true
	}
	return false
}

// StoreKeyRequest is the payload for sealing and storing a private key.
type StoreKeyRequest struct {
	// Username is the wallet account the key belongs to.
	Username string `json:"username"`
	// KeyType is the wallet role of the key ("owner", "active", "posting", "memo").
	KeyType string `json:"key_type"`
	// PrivateKey is the plaintext key to seal. It is never persisted as-is.
	PrivateKey string `json:"private_key"`
	// Password protects the key and is required again to recover it.
	Password string `json:"password"`
}

// RetrieveKeyRequest is the payload for recovering a stored private key.
type RetrieveKeyRequest struct {
	// Username is the wallet account the key belongs to.
	Username string `json:"username"`
	// KeyType is the wallet role of the key.
	KeyType string `json:"key_type"`
	// Password must match the one the key was stored with.
	Password string `json:"password"`
}

// RetrieveKeyResponse carries a recovered private key back to the caller.
type RetrieveKeyResponse struct {
	// PrivateKey is the recovered plaintext key.
	PrivateKey string `json:"private_key"`
}

// VerifyPasswordRequest is the payload for checking a password against
// the vault's policy.
type VerifyPasswordRequest struct {
	// Password is the candidate password. It is checked, not stored.
	Password string `json:"password"`
}

// VerifyKeyRequest is the payload for checking a private key's shape.
type VerifyKeyRequest struct {
	// PrivateKey is the candidate key. It is checked, not stored.
	PrivateKey string `json:"private_key"`
}

// VerifyResponse reports the outcome of a validation check.
type VerifyResponse struct {
	// Valid is true when the checked value passes.
	Valid bool `json:"valid"`
}

// StatusResponse acknowledges a completed mutation.
type StatusResponse struct {
	// Message describes what happened.
	Message string `json:"message"`
}
