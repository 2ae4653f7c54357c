// Package storage persists uploaded images on local disk or S3-compatible object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// ErrExists is returned when a write would overwrite an earlier upload.
var ErrExists = errors.New("file already exists")

// Local writes files under a directory that is served at a public mount.
type Local struct {
	dir       string
	publicURL string
}

// NewLocal creates dir if needed. publicURL is the static mount, e.g. "/uploads".
func NewLocal(dir, publicURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Local{dir: dir, publicURL: publicURL}, nil
}

func (l *Local) Dir() string {
	return l.dir
}

// Save writes data as name and returns its public path. Existing files are never replaced.
func (l *Local) Save(_ context.Context, name string, data []byte) (string, error) {
	fullPath := filepath.Join(l.dir, filepath.Base(name))

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ErrExists
		}
		return "", fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file %s: %w", fullPath, err)
	}

	return path.Join(l.publicURL, filepath.Base(name)), nil
}
