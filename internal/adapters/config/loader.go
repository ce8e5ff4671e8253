// Package config provides the configuration loader for the asset pipeline.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	logger ports.Logger
}

// NewLoader creates a new FileConfigLoader.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{logger: logger}
}

// Load reads the configuration file at path. A directory is searched for
// domain.ConfigFileName.
func (l *FileConfigLoader) Load(path string) (*domain.Project, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, domain.ConfigFileName)
	}
	return l.load(path)
}

// load reads a configuration file and returns the project it describes.
// Relative directories are resolved against the directory of the file.
func (l *FileConfigLoader) load(path string) (*domain.Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	data, err := os.ReadFile(abs) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", abs)
	}

	var file Assetfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", abs)
	}

	css, err := decodeIncludes(&file.CSS, domain.AssetTypeCSS)
	if err != nil {
		return nil, err
	}
	js, err := decodeIncludes(&file.JS, domain.AssetTypeJS)
	if err != nil {
		return nil, err
	}

	for _, pkg := range []domain.Package{css, js} {
		for _, e := range pkg {
			if e.Rules == "" {
				l.logger.Warn(fmt.Sprintf("%s has no inclusion rules and is never included", e.Include))
			}
		}
	}

	dir := filepath.Dir(abs)
	return &domain.Project{
		Dir:             dir,
		Overrides:       file.Settings,
		CSS:             css,
		JS:              js,
		Locales:         file.Locales,
		LayoutsDir:      resolveDir(dir, file.LayoutsDir, defaultLayoutsDir),
		TranslationsDir: resolveDir(dir, file.TranslationsDir, defaultTranslationsDir),
		Tools:           file.Tools,
	}, nil
}

// decodeIncludes turns a YAML mapping of include to rules into a package,
// keeping document order.
func decodeIncludes(node *yaml.Node, t domain.AssetType) (domain.Package, error) {
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidIncludeTable, "expected a mapping"),
			"type", t.String()), "line", node.Line)
	}

	pkg := make(domain.Package, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidIncludeTable, "expected include: rules"),
				"type", t.String()), "line", key.Line)
		}
		rules := value.Value
		if value.Tag == "!!null" {
			rules = ""
		}
		pkg = append(pkg, domain.Entry{Include: key.Value, Rules: rules})
	}
	return pkg, nil
}

func resolveDir(base, dir, def string) string {
	if dir == "" {
		dir = def
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}
