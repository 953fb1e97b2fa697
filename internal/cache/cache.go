// Package cache persists the last-computed sanitized export as a single
// named file and reports its age so callers can decide freshness. There is
// deliberately no locking: regenerations are rare relative to the freshness
// window and a last-writer-wins race is acceptable.
package cache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// appName is the subdirectory used under the per-user cache directory.
const appName = "edt-proxy"

// DefaultTTL is the freshness window applied when none is configured.
const DefaultTTL = 1800 * time.Second

// ErrMiss is returned by Get when no cache entry exists.
var ErrMiss = errors.New("cache: entry not found")

// Store is a file-backed cache holding at most one entry. The filesystem is
// abstracted behind afero so tests can run against an in-memory backend.
type Store struct {
	fs   afero.Fs
	dir  string
	name string
	ttl  time.Duration
}

// New creates a Store rooted at dir. An empty dir selects DefaultDir; a zero
// ttl selects DefaultTTL.
func New(fs afero.Fs, dir, name string, ttl time.Duration) (*Store, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if name == "" {
		return nil, errors.New("cache: entry name is required")
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "cache: create directory")
	}
	return &Store{fs: fs, dir: dir, name: name, ttl: ttl}, nil
}

// Get returns the cached text and its age, measured from the entry file's
// last-modified timestamp. A missing entry returns ErrMiss.
func (s *Store) Get() (string, time.Duration, error) {
	path := s.Path()

	info, err := s.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", 0, ErrMiss
		}
		return "", 0, errors.Wrap(err, "cache: stat entry")
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", 0, errors.Wrap(err, "cache: read entry")
	}

	return string(data), time.Since(info.ModTime()), nil
}

// Put overwrites or creates the single cache entry.
func (s *Store) Put(text string) error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrap(err, "cache: create directory")
	}
	if err := afero.WriteFile(s.fs, s.Path(), []byte(text), 0o644); err != nil {
		return errors.Wrap(err, "cache: write entry")
	}
	return nil
}

// Fresh reports whether an entry of the given age is still within the
// freshness window.
func (s *Store) Fresh(age time.Duration) bool {
	return age < s.ttl
}

// TTL returns the freshness window.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Path returns the full path of the cache entry.
func (s *Store) Path() string {
	return filepath.Join(s.dir, s.name)
}

// DefaultDir returns the per-user cache directory for this application.
func DefaultDir() string {
	return filepath.Join(xdg.CacheHome, appName)
}
