package fs

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-openapi/inflect"
	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
)

var _ ports.PathResolver = (*Resolver)(nil)

var passArgPattern = regexp.MustCompile(`^\w+$`)

var placeholders = []string{":path:", ":layout:", ":controller:", ":action:", ":pass:"}

// Resolver implements ports.PathResolver against the local filesystem.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve filters pkg by the page's controller and action, resolves local
// includes and appends the auto-included files of the page.
func (r *Resolver) Resolve(
	pkg domain.Package,
	s domain.Settings,
	t domain.AssetType,
	page domain.PageContext,
) domain.ResolvedFiles {
	ts := s.For(t)
	controller := inflect.Camelize(page.Controller)

	var res domain.ResolvedFiles
	seen := make(map[string]bool)
	addLocal := func(path string) {
		if seen[path] || !isFile(path) {
			return
		}
		seen[path] = true
		res.Locals = append(res.Locals, path)
	}

	for _, entry := range pkg {
		if !domain.IsAllowed(controller, page.Action, entry.Rules, false) {
			continue
		}
		if domain.IsExternal(entry.Include) {
			res.Externals = append(res.Externals, entry.Include)
			continue
		}
		addLocal(r.localPath(entry.Include, s, ts, t))
	}

	for _, path := range r.autoIncludes(s, ts, t, page) {
		addLocal(path)
	}

	return res
}

// localPath maps a declared include to a filesystem path.
func (r *Resolver) localPath(include string, s domain.Settings, ts domain.TypeSettings, t domain.AssetType) string {
	if rest, ok := strings.CutPrefix(include, domain.PluginMarker); ok {
		plugin, file, _ := strings.Cut(rest, "/")
		return filepath.Join(pluginRoot(s, plugin, t), filepath.FromSlash(file))
	}
	if filepath.IsAbs(include) {
		return filepath.Clean(include)
	}
	return filepath.Join(ts.Root, filepath.FromSlash(include))
}

// autoIncludes expands the configured templates for every layout of the page.
func (r *Resolver) autoIncludes(s domain.Settings, ts domain.TypeSettings, t domain.AssetType, page domain.PageContext) []string {
	base := ts.Root
	if page.Plugin != "" {
		base = pluginRoot(s, page.Plugin, t)
	}
	base = strings.TrimSuffix(base, string(filepath.Separator)) + string(filepath.Separator)

	pass := ""
	if len(page.Pass) > 0 && passArgPattern.MatchString(page.Pass[0]) {
		pass = page.Pass[0]
	}
	ext := "." + ts.SourceExtension()

	var out []string
	for _, tmpl := range s.AutoIncludePaths {
		for _, layout := range page.Layouts {
			p := strings.ReplaceAll(tmpl, ":path:", base)
			p = strings.ReplaceAll(p, ":layout:", layout)
			if page.Controller != "" {
				p = strings.ReplaceAll(p, ":controller:", page.Controller)
			}
			if page.Action != "" {
				p = strings.ReplaceAll(p, ":action:", page.Action)
			}
			if pass != "" {
				p = strings.ReplaceAll(p, ":pass:", pass)
			}
			if hasPlaceholder(p) {
				continue
			}
			if !strings.HasSuffix(p, ext) {
				p += ext
			}
			out = append(out, filepath.Clean(p))
		}
	}
	return out
}

func pluginRoot(s domain.Settings, plugin string, t domain.AssetType) string {
	return filepath.Join(s.PluginsRoot, plugin, t.String())
}

func hasPlaceholder(p string) bool {
	for _, ph := range placeholders {
		if strings.Contains(p, ph) {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
