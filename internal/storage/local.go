package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore keeps assets in a directory served statically under URLPrefix.
type LocalStore struct {
	dir    string
	prefix string
}

// NewLocalStore creates dir if needed. References look like "<prefix>/<name>".
func NewLocalStore(dir, prefix string) (*LocalStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if prefix == "" {
		prefix = "/uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create upload dir: %w", ErrStorage, err)
	}
	return &LocalStore{dir: dir, prefix: "/" + strings.Trim(prefix, "/")}, nil
}

// Dir is the directory assets are written to.
func (s *LocalStore) Dir() string { return s.dir }

// Prefix is the URL path assets are served under.
func (s *LocalStore) Prefix() string { return s.prefix }

// Store writes data to a temporary file and renames it into place so a
// partially written asset is never visible under its final name.
func (s *LocalStore) Store(ctx context.Context, data []byte, suggestedName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}
	name := NewName(suggestedName)
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp: %w", ErrStorage, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", fmt.Errorf("%w: write: %w", ErrStorage, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", fmt.Errorf("%w: sync: %w", ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("%w: close: %w", ErrStorage, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return "", fmt.Errorf("%w: chmod: %w", ErrStorage, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		cleanup()
		return "", fmt.Errorf("%w: rename: %w", ErrStorage, err)
	}
	return path.Join(s.prefix, name), nil
}

// Delete removes the file behind ref. References outside the prefix are
// ignored.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	name, ok := strings.CutPrefix(ref, s.prefix+"/")
	if !ok || name == "" {
		return nil
	}
	name = filepath.Base(name)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove: %w", ErrStorage, err)
	}
	return nil
}
