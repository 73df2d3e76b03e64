package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/keywarden/keywarden/internal/vault"
)

const (
	testKey      = "5JdeC19p7v5sGdkYjezapQTMQ7aXF2sDM6F1V5Q5ZH2mUZpWkCJ"
	testPassword = "my-secure-password"
)

type mockKeyStore struct {
	put   func(ctx context.Context, key, value string) error
	get   func(ctx context.Context, key string) (string, bool, error)
	del   func(ctx context.Context, key string) error
	clear func(ctx context.Context) error
}

func (m *mockKeyStore) Put(ctx context.Context, key, value string) error {
	return m.put(ctx, key, value)
}

func (m *mockKeyStore) Get(ctx context.Context, key string) (string, bool, error) {
	return m.get(ctx, key)
}

func (m *mockKeyStore) Delete(ctx context.Context, key string) error {
	return m.del(ctx, key)
}

func (m *mockKeyStore) Clear(ctx context.Context) error {
	return m.clear(ctx)
}

func TestStoreKey_SealsEnvelope(t *testing.T) {
	var gotKey, gotValue string
	store := &mockKeyStore{
		put: func(_ context.Context, key, value string) error {
			gotKey, gotValue = key, value
			return nil
		},
	}
	svc := NewKeeperService(store)

	err := svc.StoreKey(context.Background(), "maria", "owner", testKey, testPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != "maria:encrypted_owner_key" {
		t.Errorf("store key = %q, want %q", gotKey, "maria:encrypted_owner_key")
	}
	if strings.Contains(gotValue, testKey) {
		t.Fatal("stored value contains the plaintext key")
	}

	envelope, err := vault.ParseEnvelope(gotValue)
	if err != nil {
		t.Fatalf("stored value is not an envelope: %v", err)
	}
	recovered, err := vault.Open(envelope, testPassword)
	if err != nil {
		t.Fatalf("cannot open stored envelope: %v", err)
	}
	if recovered != testKey {
		t.Errorf("recovered key = %q, want original", recovered)
	}
}

func TestStoreKey_ValidatesTarget(t *testing.T) {
	store := &mockKeyStore{
		put: func(_ context.Context, _, _ string) error { return nil },
	}
	svc := NewKeeperService(store)

	cases := []struct {
		name       string
		username   string
		keyType    string
		privateKey string
		password   string
		wantErr    error
	}{
		{"empty username", "", "owner", testKey, testPassword, ErrUsernameRequired},
		{"unknown key type", "maria", "master", testKey, testPassword, ErrUnknownKeyType},
		{"empty private key", "maria", "owner", "", testPassword, vault.ErrEmptySecret},
		{"empty password", "maria", "owner", testKey, "", vault.ErrEmptyPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.StoreKey(context.Background(), tc.username, tc.keyType, tc.privateKey, tc.password)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("StoreKey() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestStoreKey_StoreError(t *testing.T) {
	store := &mockKeyStore{
		put: func(_ context.Context, _, _ string) error { return errors.New("disk full") },
	}
	svc := NewKeeperService(store)

	err := svc.StoreKey(context.Background(), "maria", "owner", testKey, testPassword)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "store envelope") {
		t.Errorf("error = %q, want it to mention storing the envelope", err)
	}
}

func TestRetrieveKey_RoundTrip(t *testing.T) {
	stored := make(map[string]string)
	store := &mockKeyStore{
		put: func(_ context.Context, key, value string) error {
			stored[key] = value
			return nil
		},
		get: func(_ context.Context, key string) (string, bool, error) {
			value, ok := stored[key]
			return value, ok, nil
		},
	}
	svc := NewKeeperService(store)
	ctx := context.Background()

	if err := svc.StoreKey(ctx, "maria", "active", testKey, testPassword); err != nil {
		t.Fatalf("StoreKey() returned error: %v", err)
	}

	recovered, err := svc.RetrieveKey(ctx, "maria", "active", testPassword)
	if err != nil {
		t.Fatalf("RetrieveKey() returned error: %v", err)
	}
	if recovered != testKey {
		t.Errorf("recovered key = %q, want original", recovered)
	}
}

func TestRetrieveKey_NotFound(t *testing.T) {
	store := &mockKeyStore{
		get: func(_ context.Context, _ string) (string, bool, error) {
			return "", false, nil
		},
	}
	svc := NewKeeperService(store)

	_, err := svc.RetrieveKey(context.Background(), "maria", "owner", testPassword)
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("RetrieveKey() error = %v, want ErrKeyNotFound", err)
	}
}

func TestRetrieveKey_WrongPassword(t *testing.T) {
	envelope, err := vault.Seal(testKey, testPassword)
	if err != nil {
		t.Fatalf("Seal() returned error: %v", err)
	}
	wire, err := envelope.Wire()
	if err != nil {
		t.Fatalf("Wire() returned error: %v", err)
	}

	store := &mockKeyStore{
		get: func(_ context.Context, _ string) (string, bool, error) {
			return wire, true, nil
		},
	}
	svc := NewKeeperService(store)

	_, err = svc.RetrieveKey(context.Background(), "maria", "owner", "wrong-password")
	if !errors.Is(err, vault.ErrAuthenticationFailed) {
		t.Errorf("RetrieveKey() error = %v, want ErrAuthenticationFailed", err)
	}
}

func TestRetrieveKey_CorruptEnvelope(t *testing.T) {
	store := &mockKeyStore{
		get: func(_ context.Context, _ string) (string, bool, error) {
			return "{not an envelope", true, nil
		},
	}
	svc := NewKeeperService(store)

	_, err := svc.RetrieveKey(context.Background(), "maria", "owner", testPassword)
	if !errors.Is(err, vault.ErrMalformedEnvelope) {
		t.Errorf("RetrieveKey() error = %v, want ErrMalformedEnvelope", err)
	}
}

func TestRetrieveKey_StoreError(t *testing.T) {
	store := &mockKeyStore{
		get: func(_ context.Context, _ string) (string, bool, error) {
			return "", false, errors.New("connection lost")
		},
	}
	svc := NewKeeperService(store)

	_, err := svc.RetrieveKey(context.Background(), "maria", "owner", testPassword)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "load envelope") {
		t.Errorf("error = %q, want it to mention loading the envelope", err)
	}
}

func TestDeleteKey(t *testing.T) {
	var gotKey string
	store := &mockKeyStore{
		del: func(_ context.Context, key string) error {
			gotKey = key
			return nil
		},
	}
	svc := NewKeeperService(store)

	if err := svc.DeleteKey(context.Background(), "maria", "posting"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "maria:encrypted_posting_key" {
		t.Errorf("deleted key = %q, want %q", gotKey, "maria:encrypted_posting_key")
	}
}

func TestDeleteKey_ValidatesTarget(t *testing.T) {
	svc := NewKeeperService(&mockKeyStore{})

	if err := svc.DeleteKey(context.Background(), "", "owner"); !errors.Is(err, ErrUsernameRequired) {
		t.Errorf("DeleteKey() error = %v, want ErrUsernameRequired", err)
	}
	if err := svc.DeleteKey(context.Background(), "maria", "root"); !errors.Is(err, ErrUnknownKeyType) {
		t.Errorf("DeleteKey() error = %v, want ErrUnknownKeyType", err)
	}
}

func TestClear(t *testing.T) {
	cleared := false
	store := &mockKeyStore{
		clear: func(_ context.Context) error {
			cleared = true
			return nil
		},
	}
	svc := NewKeeperService(store)

	if err := svc.Clear(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cleared {
		t.Error("Clear() did not reach the store")
	}
}

func TestClear_StoreError(t *testing.T) {
	store := &mockKeyStore{
		clear: func(_ context.Context) error { return errors.New("locked") },
	}
	svc := NewKeeperService(store)

	err := svc.Clear(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "clear store") {
		t.Errorf("error = %q, want it to mention clearing the store", err)
	}
}
