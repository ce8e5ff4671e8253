// Package fs provides file system adapters for resolving, hashing and
// discovering asset sources.
package fs

import (
	"os"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
	"go.trai.ch/zerr"
)

// LayoutPattern matches layout templates inside the layouts directory.
const LayoutPattern = "*.ctp"

var _ ports.LayoutLister = (*LayoutLister)(nil)

// LayoutLister discovers layout names from template files.
type LayoutLister struct{}

// NewLayoutLister creates a new LayoutLister.
func NewLayoutLister() *LayoutLister {
	return &LayoutLister{}
}

// Layouts returns the sorted layout names found directly inside dir,
// with the template extension removed. Hidden files are skipped.
func (l *LayoutLister) Layouts(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), LayoutPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLayoutDiscoveryFailed, err.Error()), "dir", dir)
	}

	layouts := make([]string, 0, len(matches))
	for _, m := range matches {
		name := path.Base(m)
		if strings.HasPrefix(name, ".") {
			continue
		}
		layouts = append(layouts, strings.TrimSuffix(name, path.Ext(name)))
	}
	slices.Sort(layouts)
	return layouts, nil
}
