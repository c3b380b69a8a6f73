// Package filestore persists the bearer token in a small JSON document on disk,
// keyed the same way the browser client keys its local storage.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"hotelhub/internal/adapters/observability"
)

// TokenKey is the fixed storage key of the bearer token.
const TokenKey = "token"

type TokenStore struct {
	path string
	mu   sync.Mutex
}

// New returns a store backed by path. The parent directory is created on first write.
func New(path string) *TokenStore { return &TokenStore{path: path} }

// DefaultPath is ~/.hotelhub/storage.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hotelhub", "storage.json"), nil
}

func (s *TokenStore) Get(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.read()
	if err != nil {
		return "", err
	}
	tok := kv[TokenKey]
	if tok == "" {
		observability.ObserveTokenStore("file", "miss")
	} else {
		observability.ObserveTokenStore("file", "hit")
	}
	return tok, nil
}

func (s *TokenStore) Set(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.read()
	if err != nil {
		return err
	}
	kv[TokenKey] = token
	observability.ObserveTokenStore("file", "set")
	return s.write(kv)
}

func (s *TokenStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.read()
	if err != nil {
		return err
	}
	delete(kv, TokenKey)
	observability.ObserveTokenStore("file", "del")
	return s.write(kv)
}

func (s *TokenStore) read() (map[string]string, error) {
	kv := map[string]string{}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return kv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(b) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(b, &kv); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return kv, nil
}

// write replaces the file atomically with 0600 permissions.
func (s *TokenStore) write(kv map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Memory is a process-local store. Nothing survives a restart.
type Memory struct {
	mu    sync.Mutex
	token string
}

func NewMemory(token string) *Memory { return &Memory{token: token} }

func (m *Memory) Get(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *Memory) Set(ctx context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}
