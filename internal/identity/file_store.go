package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// FileStore keeps values in a small JSON object on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns the per-OS location of the identity file.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "calmzone-identity.json"
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", "calmzone", "identity.json")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "calmzone", "identity.json")
	default:
		return filepath.Join(homeDir, ".local", "share", "calmzone", "identity.json")
	}
}

// NewFileStore resolves path (empty means DefaultPath, "~/" is expanded) and
// makes sure its directory exists.
func NewFileStore(path string) (*FileStore, error) {
	target := strings.TrimSpace(path)
	if target == "" {
		target = DefaultPath()
	}
	if strings.HasPrefix(target, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", target, err)
		}
		target = filepath.Join(homeDir, target[2:])
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("absolute path for %q: %w", target, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o700); err != nil {
		return nil, fmt.Errorf("create identity dir: %w", err)
	}
	return &FileStore{path: abs}, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vals, err := s.read()
	if err != nil {
		return "", err
	}
	v, ok := vals[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vals, err := s.read()
	if err != nil {
		return err
	}
	vals[key] = value
	return s.write(vals)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vals, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := vals[key]; !ok {
		return nil
	}
	delete(vals, key)
	return s.write(vals)
}

func (s *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read identity file: %w", err)
	}
	vals := map[string]string{}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return vals, nil
	}
	if err := json.Unmarshal(raw, &vals); err != nil {
		return nil, fmt.Errorf("decode identity file: %w", err)
	}
	return vals, nil
}

// write replaces the file atomically.
func (s *FileStore) write(vals map[string]string) error {
	raw, err := json.MarshalIndent(vals, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".identity-*.json")
	if err != nil {
		return fmt.Errorf("write identity file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write identity file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write identity file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
