package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore is a filesystem-backed Store rooted at a single directory.
// Objects are served publicly by the HTTP layer under baseURL.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates the root directory if needed and returns a LocalStore.
// baseURL is the public URL prefix the root is mounted at, e.g. "/files".
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Upload implements Store.
func (s *LocalStore) Upload(objectPath string, data []byte, contentType string) (string, error) {
	clean, err := s.cleanPath(objectPath)
	if err != nil {
		return "", err
	}

	full := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return s.baseURL + "/" + clean, nil
}

// List implements Store.
func (s *LocalStore) List(prefix string) ([]Entry, error) {
	clean, err := s.cleanPath(prefix)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.root, filepath.FromSlash(clean))
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:      d.Name(),
			PublicURL: s.baseURL + "/" + clean + "/" + d.Name(),
			Size:      info.Size(),
		})
	}

	return entries, nil
}

// cleanPath normalizes an object path and rejects escapes above the root.
func (s *LocalStore) cleanPath(p string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid object path: %s", p)
	}
	return strings.TrimPrefix(clean, "/"), nil
}
