// Package storage keeps uploaded photos on the local disk, served back by the
// API under a public URL prefix.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore writes files into a single directory.
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore creates dir if needed. urlPrefix is the path the directory is
// served under, e.g. "/uploads".
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix}, nil
}

// Dir is the directory files are written to.
func (s *LocalStore) Dir() string { return s.dir }

// Save writes data under a fresh random name with the given extension and
// returns the public URL of the file.
func (s *LocalStore) Save(ctx context.Context, data []byte, ext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	return s.urlPrefix + "/" + name, nil
}
