// Package storage provides the file-backed entry store the vault daemon
// uses when no database is configured.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrNotJSON is returned by Put when the value is not valid JSON.
var ErrNotJSON = errors.New("storage: value is not valid JSON")

// FileStore keeps string-keyed JSON values in memory and mirrors them to
// a single JSON file. Every mutation rewrites the file before returning,
// so a crash never loses an acknowledged write. Safe for concurrent use.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

// NewFileStore opens the store backed by the file at path. A missing
// file yields an empty store; an unreadable or unparseable one is an
// error rather than silent data loss.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	return s, nil
}

// Put stores value under key and flushes to disk. value must be valid
// JSON; it is kept in compact form.
func (s *FileStore) Put(_ context.Context, key, value string) error {
	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(value)); err != nil {
		return ErrNotJSON
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = json.RawMessage(compact.Bytes())
	return s.save()
}

// Get returns the JSON value stored under key and whether it was present.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	if !ok {
		return "", false, nil
	}
	return string(value), true, nil
}

// Delete removes key and flushes. Deleting an absent key is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.save()
}

// Clear drops every entry and flushes.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]json.RawMessage)
	return s.save()
}

// save writes the whole map to the backing file. Callers hold s.mu.
// The file is created with 0600 since it holds sealed key material.
func (s *FileStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	return nil
}
