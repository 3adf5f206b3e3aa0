package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// ImageNamespace is the directory uploaded inventaris images are kept under.
const ImageNamespace = "images"

// BlobStore persists uploaded files and hands back their relative path.
type BlobStore interface {
	Store(ctx context.Context, namespace, ext string, r io.Reader) (string, error)
	Delete(ctx context.Context, p string) error
}

// ErrInvalidPath is returned for paths that escape the store root.
var ErrInvalidPath = errors.New("invalid blob path")

// LocalStore keeps blobs on a filesystem below a root directory, which is
// served publicly.
type LocalStore struct {
	fs afero.Fs
}

// NewLocalStore roots a store at dir on the OS filesystem.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root %s: %w", dir, err)
	}
	return NewStore(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// NewStore wraps an arbitrary afero filesystem.
func NewStore(fs afero.Fs) *LocalStore {
	return &LocalStore{fs: fs}
}

// FS exposes the underlying filesystem, for serving blobs.
func (s *LocalStore) FS() afero.Fs { return s.fs }

// Store writes r under namespace with a random name and returns
// "namespace/<uuid><ext>".
func (s *LocalStore) Store(ctx context.Context, namespace, ext string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(namespace, 0o755); err != nil {
		return "", fmt.Errorf("creating namespace %s: %w", namespace, err)
	}

	name := path.Join(namespace, uuid.NewString()+ext)
	f, err := s.fs.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating blob %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		s.fs.Remove(name)
		return "", fmt.Errorf("writing blob %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		s.fs.Remove(name)
		return "", fmt.Errorf("closing blob %s: %w", name, err)
	}
	return name, nil
}

// Delete removes a blob. A blob that is already gone is not an error.
func (s *LocalStore) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := cleanPath(p)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(clean); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting blob %s: %w", clean, err)
	}
	return nil
}


func cleanPath(p string) (string, error) {
	clean := path.Clean("/" + p)[1:]
	if clean == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return clean, nil
}
