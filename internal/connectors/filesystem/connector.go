// Package filesystem implements a connector that reads FRMR documents from
// local files and directories.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/custodia-labs/frmr-oscal/internal/core/domain"
	"github.com/custodia-labs/frmr-oscal/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// ErrNoPaths indicates no file or directory was configured.
var ErrNoPaths = errors.New("filesystem: at least one path is required")

// Config holds the parsed configuration for a filesystem source.
type Config struct {
	// Paths are files or directories. Files are always listed.
	Paths []string

	// Patterns are doublestar globs matched inside each directory.
	Patterns []string
}

// ParseConfig builds a Config from source settings.
func ParseConfig(settings domain.SourceSettings) (*Config, error) {
	if len(settings.Filesystem.Paths) == 0 {
		return nil, ErrNoPaths
	}
	patterns := settings.Filesystem.Patterns
	if len(patterns) == 0 {
		patterns = []string{domain.DefaultLegacyPattern}
	}
	return &Config{Paths: settings.Filesystem.Paths, Patterns: patterns}, nil
}

// Connector reads documents through an afero filesystem.
type Connector struct {
	fs     afero.Fs
	config *Config
}

// New creates a new filesystem connector.
func New(fsys afero.Fs, cfg *Config) *Connector {
	return &Connector{fs: fsys, config: cfg}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return string(domain.SourceFilesystem)
}

// List expands the configured paths. A directory holding the consolidated
// document contributes only that document; otherwise it contributes every
// file matching the patterns, sorted. Duplicates are dropped.
func (c *Connector) List(ctx context.Context) ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, path := range c.config.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := c.fs.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		matches, err := c.expand(path)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			add(m)
		}
	}
	return names, nil
}

func (c *Connector) expand(dir string) ([]string, error) {
	consolidated := filepath.Join(dir, domain.DefaultConsolidatedFile)
	if ok, _ := afero.Exists(c.fs, consolidated); ok {
		return []string{consolidated}, nil
	}

	fsys := afero.NewIOFS(afero.NewBasePathFs(c.fs, dir))
	var matches []string
	for _, pattern := range c.config.Patterns {
		found, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %s in %s: %w", pattern, dir, err)
		}
		for _, rel := range found {
			matches = append(matches, filepath.Join(dir, filepath.FromSlash(rel)))
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// Fetch reads one document. Failures are classified rather than returned.
func (c *Connector) Fetch(ctx context.Context, name string) domain.FetchResult {
	if err := ctx.Err(); err != nil {
		return domain.FetchFailed(domain.FailurePermanent, name, err)
	}

	content, err := afero.ReadFile(c.fs, name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return domain.FetchFailed(domain.FailureNotFound, name, err)
	case err != nil:
		return domain.FetchFailed(domain.FailurePermanent, name, err)
	}

	uri := name
	if abs, err := filepath.Abs(name); err == nil {
		uri = abs
	}
	return domain.Fetched(domain.RawDocument{
		Name:    name,
		URI:     "file://" + filepath.ToSlash(uri),
		Content: content,
	})
}

// Close releases resources.
func (c *Connector) Close() error {
	return nil
}
