// Package artifacts writes published artifacts under a per-version
// directory of an afero filesystem: <root>/v<version>/<name>.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Store is an afero-backed artifact store.
type Store struct {
	fs   afero.Fs
	root string
}

// NewStore creates a store rooted at root.
func NewStore(fsys afero.Fs, root string) *Store {
	if root == "" {
		root = domain.DefaultOutputDir
	}
	return &Store{fs: fsys, root: root}
}

// Location returns the directory holding a version's artifacts.
func (s *Store) Location(version string) string {
	return filepath.Join(s.root, "v"+version)
}

// Read returns a published artifact, or ErrNotFound.
func (s *Store) Read(ctx context.Context, version, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, filepath.Join(s.Location(version), name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// Write replaces an artifact, creating the version directory as needed.
// Content is written to a temporary file and renamed into place.
func (s *Store) Write(ctx context.Context, version, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := s.Location(version)
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	target := filepath.Join(dir, name)
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
