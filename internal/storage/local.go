// Package storage persists uploaded pickup photos and hands back the
// URLs under which they are served. The store is treated as a black box
// by the rest of the application.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"trashapp/internal/uuid"
)

// Store saves an uploaded file and returns its public URL.
type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// LocalStore writes files beneath a directory served at baseURL/uploads.
type LocalStore struct {
	Dir     string
	BaseURL string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{Dir: dir, BaseURL: baseURL}, nil
}

// Save writes the file under a UUID-based name, keeping the original
// extension, and returns the URL it will be served from.
func (s *LocalStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.New() + filepath.Ext(filename)
	path := filepath.Join(s.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.BaseURL + "/uploads/" + name, nil
}
