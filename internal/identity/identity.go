// Package identity mints and persists the anonymous token that stands in for
// an account on every CalmZone request.
package identity

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// StorageKey is the single key the token lives under.
const StorageKey = "calmzone_user_hash"

// ErrNotFound is returned by a Store when the key has no value.
var ErrNotFound = errors.New("identity: key not found")

type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Provider hands out one stable token per store. It is safe for concurrent use.
type Provider struct {
	mu    sync.Mutex
	store Store
	mint  func() string
}

func NewProvider(store Store) *Provider {
	return &Provider{store: store, mint: uuid.NewString}
}

// GetOrCreate returns the persisted token, minting one on first use.
// It returns "" when the store is unusable.
func (p *Provider) GetOrCreate() string {
	if p == nil || p.store == nil {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	v, err := p.store.Get(StorageKey)
	if err == nil && strings.TrimSpace(v) != "" {
		return v
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return ""
	}

	token := p.mint()
	if err := p.store.Set(StorageKey, token); err != nil {
		return ""
	}
	return token
}

// Clear forgets the token; the next GetOrCreate mints a new one.
func (p *Provider) Clear() error {
	if p == nil || p.store == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.store.Delete(StorageKey)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

type MemoryStore struct {
	mu   sync.RWMutex
	vals map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{vals: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vals[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vals, key)
	return nil
}
