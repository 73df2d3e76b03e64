// Package service provides the vault's business logic: sealing wallet
// keys into envelopes, persisting them, and recovering them on demand.
// Persistence is delegated to a KeyStore.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/keywarden/keywarden/internal/models"
	"github.com/keywarden/keywarden/internal/vault"
)

// Command-layer failures. Vault errors (wrong password, malformed
// envelope) pass through unwrapped so callers can match them directly.
var (
	// ErrKeyNotFound means no key is stored under the requested name.
	ErrKeyNotFound = errors.New("service: key not found")
	// ErrUnknownKeyType means the key type is not one of the wallet roles.
	ErrUnknownKeyType = errors.New("service: unknown key type")
	// ErrUsernameRequired means the request carried no username.
	ErrUsernameRequired = errors.New("service: username required")
)

// KeyStore defines the persistence operations required by the keeper
// service. Values are envelope wire strings; the store treats them as
// opaque JSON.
type KeyStore interface {
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error
	// Get returns the value under key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Delete removes the value under key. Absent keys are not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every value in the store.
	Clear(ctx context.Context) error
}

// KeeperService seals, stores, and recovers wallet private keys by
// delegating persistence to a KeyStore.
type KeeperService struct {
	// store persists envelope wire strings.
	store KeyStore
}

// NewKeeperService constructs a new KeeperService using the provided store.
// store must implement KeyStore.
func NewKeeperService(store KeyStore) *KeeperService {
	return &KeeperService{store: store}
}

// storageKey names the store slot for a user's key of the given type.
func storageKey(username, keyType string) string {
	return fmt.Sprintf("%s:encrypted_%s_key", username, keyType)
}

// StoreKey seals privateKey under password and persists the envelope
// for username. Neither the plaintext key nor the password is stored;
// recovering the key requires the same password again.
//
//	ctx:        context for cancellation and deadlines
//	username:   wallet account the key belongs to
//	keyType:    wallet role ("owner", "active", "posting", "memo")
//	privateKey: plaintext key to seal
//	password:   password protecting the key
func (s *KeeperService) StoreKey(ctx context.Context, username, keyType, privateKey, password string) error {
	if err := validateTarget(username, keyType); err != nil {
		return err
	}

	envelope, err := vault.Seal(privateKey, password)
	if err != nil {
		return err
	}
	wire, err := envelope.Wire()
	if err != nil {
		return err
	}

	if err := s.store.Put(ctx, storageKey(username, keyType), wire); err != nil {
		return fmt.Errorf("store envelope: %w", err)
	}
	return nil
}

// RetrieveKey recovers the private key stored for username under
// keyType. Returns ErrKeyNotFound when nothing is stored there, and
// vault.ErrAuthenticationFailed when the password is wrong.
func (s *KeeperService) RetrieveKey(ctx context.Context, username, keyType, password string) (string, error) {
	if err := validateTarget(username, keyType); err != nil {
		return "", err
	}

	wire, ok, err := s.store.Get(ctx, storageKey(username, keyType))
	if err != nil {
		return "", fmt.Errorf("load envelope: %w", err)
	}
	if !ok {
		return "", ErrKeyNotFound
	}

	envelope, err := vault.ParseEnvelope(wire)
	if err != nil {
		return "", err
	}
	return vault.Open(envelope, password)
}

// DeleteKey removes the stored envelope for username's keyType.
// Deleting a key that was never stored is not an error.
func (s *KeeperService) DeleteKey(ctx context.Context, username, keyType string) error {
	if err := validateTarget(username, keyType); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, storageKey(username, keyType)); err != nil {
		return fmt.Errorf("delete envelope: %w", err)
	}
	return nil
}

// Clear wipes every stored envelope.
func (s *KeeperService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

// validateTarget checks the store-naming inputs shared by all key
// operations.
func validateTarget(username, keyType string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if !models.ValidKeyType(keyType) {
		return fmt.Errorf("%w: %q", ErrUnknownKeyType, keyType)
	}
	return nil
}
