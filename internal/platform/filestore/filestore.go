// Package filestore keeps uploaded files on local disk under one root directory.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"hradmin/internal/domain/crud"
	"hradmin/internal/platform/apperr"
)

// Stored describes a saved file. Name is relative to the store root and is what rows keep.
type Stored struct {
	Name     string
	MIME     string
	Size     int64
	Original string
}

type Store struct {
	root     string
	maxBytes int64
}

func New(root string, maxBytes int64) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Store{root: root, maxBytes: maxBytes}, nil
}

// Save writes r under dir with a generated name. The content type is sniffed from the bytes
// and must be one of allowed when allowed is not empty.
func (s *Store) Save(ctx context.Context, dir, original string, r io.Reader, allowed ...string) (Stored, error) {
	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}
	reader := r
	if s.maxBytes > 0 {
		reader = io.LimitReader(r, s.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return Stored{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Stored{}, apperr.Invalid("file", "is empty")
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return Stored{}, apperr.Invalid("file", fmt.Sprintf("exceeds %d bytes", s.maxBytes))
	}

	mime := mimetype.Detect(data)
	if len(allowed) > 0 && !slices.ContainsFunc(allowed, mime.Is) {
		return Stored{}, apperr.Invalid("file", "type "+mime.String()+" is not accepted")
	}

	name := path.Join(cleanDir(dir), crud.NewID()+mime.Extension())
	full := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Stored{}, fmt.Errorf("create upload dir: %w", err)
	}
	if err := writeAtomic(full, data); err != nil {
		return Stored{}, fmt.Errorf("write upload: %w", err)
	}
	return Stored{Name: name, MIME: mime.String(), Size: int64(len(data)), Original: filepath.Base(original)}, nil
}

// writeAtomic writes data to a temp file beside full and renames it into place, so readers
// never see a partial upload.
func writeAtomic(full string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), full)
}

// Remove deletes a stored file. A missing file is not an error.
func (s *Store) Remove(_ context.Context, name string) error {
	full, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// Path resolves a stored name to its location on disk, refusing names that escape the root.
func (s *Store) Path(name string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(name, `\`, "/"))
	if clean == "/" || clean != "/"+strings.TrimPrefix(name, "/") {
		return "", apperr.Invalid("file", "has an invalid name")
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func cleanDir(dir string) string {
	clean := strings.TrimPrefix(path.Clean("/"+dir), "/")
	if clean == "" {
		return "."
	}
	return clean
}
