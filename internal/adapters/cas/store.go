// Package cas implements the on-disk artifact store. Artifacts are addressed
// by their input names and modification times, never by mutable paths.
package cas

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*Store)(nil)

// Store implements ports.ArtifactStore on the local filesystem.
type Store struct {
	logger ports.Logger
	mu     sync.Mutex
}

// NewStore creates a new Store that reports non-fatal failures to logger.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Exists reports whether the artifact is already on disk.
func (s *Store) Exists(root, name string) (bool, error) {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(name)))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(err, "failed to stat artifact"), "name", name)
}

// Write stores content under name. The file is written to a temporary
// sibling and renamed so readers never observe a partial artifact.
func (s *Store) Write(root, name, content string) error {
	path := filepath.Join(root, filepath.FromSlash(name))
	dir := filepath.Dir(path)

	if err := s.ensureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArtifactWriteFailed, err.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrArtifactWriteFailed, err.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArtifactWriteFailed, err.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArtifactWriteFailed, err.Error()), "path", path)
	}

	if err := os.Chmod(path, domain.ArtifactPerm); err != nil {
		s.logger.Warn(fmt.Sprintf("could not set permissions on %s: %v", path, err))
	}
	return nil
}

// Clean removes every artifact whose file name starts with prefix.
// The match is a literal prefix: "abc" removes "abc_1.css" and "abcd.css".
func (s *Store) Clean(root, prefix string) {
	dir := filepath.Join(root, domain.AggregateDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn(fmt.Sprintf("could not list %s: %v", dir, err))
		}
		return
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			s.logger.Warn(fmt.Sprintf("could not remove stale artifact %s: %v", e.Name(), err))
		}
	}
}

// Empty removes every artifact from the aggregate directory, keeping
// dot-files such as .gitignore.
func (s *Store) Empty(root string) error {
	dir := filepath.Join(root, domain.AggregateDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to list aggregate directory"), "dir", dir)
	}

	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove artifact"), "name", e.Name())
		}
	}
	return nil
}

// ensureDir creates the aggregate directory on first use.
func (s *Store) ensureDir(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArtifactDirFailed, err.Error()), "dir", dir)
	}
	if err := os.Chmod(dir, domain.DirPerm); err != nil {
		s.logger.Warn(fmt.Sprintf("could not set permissions on %s: %v", dir, err))
	}
	return nil
}
