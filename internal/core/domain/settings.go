package domain

import (
	"path/filepath"

	"dario.cat/mergo"
	"go.trai.ch/zerr"
)

// PreprocessorSettings configures the language conversion step of an asset type.
type PreprocessorSettings struct {
	Method          string `json:"method"`
	SourceExtension string `json:"source_extension"`
	// PreIncludeFile is the basename of a package file whose content is
	// prepended to every file before per-file conversion (shared mixins/variables).
	PreIncludeFile string `json:"pre_include_file"`
	PerFile        bool   `json:"per_file"`
}

// MinifierSettings configures the minification step of an asset type.
type MinifierSettings struct {
	Method  string `json:"method"`
	PerFile bool   `json:"per_file"`
}

// TypeSettings configures one asset type.
type TypeSettings struct {
	Root         string               `json:"root"`
	Extension    string               `json:"extension"`
	Delimiter    string               `json:"delimiter"`
	Preprocessor PreprocessorSettings `json:"preprocessor"`
	Minifier     MinifierSettings     `json:"minifier"`
	Locale       string               `json:"locale"`
	I18nMarker   string               `json:"i18n_marker"`
}

// SourceExtension returns the extension source files of this type are expected to carry.
func (t TypeSettings) SourceExtension() string {
	if t.Preprocessor.Method != "" && t.Preprocessor.SourceExtension != "" {
		return t.Preprocessor.SourceExtension
	}
	return t.Extension
}

// Settings is the immutable configuration of one build call.
type Settings struct {
	Host             string       `json:"host"`
	CleanStale       bool         `json:"clean_stale"`
	Minify           bool         `json:"minify"`
	Packaging        bool         `json:"packaging"`
	PluginsRoot      string       `json:"plugins_root"`
	AutoIncludePaths []string     `json:"auto_include_paths"`
	CSS              TypeSettings `json:"css"`
	JS               TypeSettings `json:"js"`
}

// For returns the settings of the given asset type.
func (s Settings) For(t AssetType) TypeSettings {
	if t == AssetTypeJS {
		return s.JS
	}
	return s.CSS
}

// Rooted returns a copy of s whose relative directories are resolved against dir.
func (s Settings) Rooted(dir string) Settings {
	s.CSS.Root = rooted(dir, s.CSS.Root)
	s.JS.Root = rooted(dir, s.JS.Root)
	s.PluginsRoot = rooted(dir, s.PluginsRoot)
	return s
}

func rooted(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// CacheIdentity returns a copy of s without the fields that do not influence
// the produced artifact.
func (s Settings) CacheIdentity() Settings {
	s.CleanStale = false
	return s
}

// Validate checks that every transform runs in exactly one stage and that the
// asset types are usable.
func (s Settings) Validate() error {
	for _, t := range []AssetType{AssetTypeCSS, AssetTypeJS} {
		ts := s.For(t)
		if ts.Root == "" {
			return zerr.With(zerr.Wrap(ErrMissingRoot, "invalid settings"), "type", t.String())
		}
		if ts.Preprocessor.Method != "" && ts.Preprocessor.SourceExtension == "" {
			return zerr.With(zerr.Wrap(ErrMissingSourceExtension, "invalid settings"), "type", t.String())
		}
		if s.Minify && ts.Minifier.Method != "" && ts.Minifier.PerFile &&
			ts.Preprocessor.Method != "" && !ts.Preprocessor.PerFile {
			return zerr.With(zerr.Wrap(ErrContradictoryStages, "invalid settings"), "type", t.String())
		}
	}
	return nil
}

// PreprocessorOverrides is the layered form of PreprocessorSettings.
type PreprocessorOverrides struct {
	Method          *string `yaml:"method"`
	SourceExtension *string `yaml:"source_extension"`
	PreIncludeFile  *string `yaml:"pre_include_file"`
	PerFile         *bool   `yaml:"per_file"`
}

// MinifierOverrides is the layered form of MinifierSettings.
type MinifierOverrides struct {
	Method  *string `yaml:"method"`
	PerFile *bool   `yaml:"per_file"`
}

// TypeOverrides is the layered form of TypeSettings.
type TypeOverrides struct {
	Root         *string               `yaml:"root"`
	Extension    *string               `yaml:"ext"`
	Delimiter    *string               `yaml:"delimiter"`
	Preprocessor PreprocessorOverrides `yaml:"preprocessor"`
	Minifier     MinifierOverrides     `yaml:"minifier"`
	Locale       *string               `yaml:"locale"`
	I18nMarker   *string               `yaml:"i18n_marker"`
}

// Overrides is a partial Settings value. Nil fields leave the lower layer untouched.
type Overrides struct {
	Host             *string       `yaml:"host"`
	CleanStale       *bool         `yaml:"clean_stale"`
	Minify           *bool         `yaml:"minify"`
	Packaging        *bool         `yaml:"packaging"`
	PluginsRoot      *string       `yaml:"plugins_root"`
	AutoIncludePaths []string      `yaml:"auto_include_paths"`
	CSS              TypeOverrides `yaml:"css"`
	JS               TypeOverrides `yaml:"js"`
}

// DefaultOverrides returns the built-in bottom layer.
func DefaultOverrides() Overrides {
	return Overrides{
		Host:        Ptr(""),
		CleanStale:  Ptr(true),
		Minify:      Ptr(true),
		Packaging:   Ptr(true),
		PluginsRoot: Ptr("plugins"),
		AutoIncludePaths: []string{
			":path:views/layouts/:layout:",
			":path:views/:controller:/:action:",
			":path:views/:controller:/:action:_:pass:",
		},
		CSS: TypeOverrides{
			Root:      Ptr("webroot/css"),
			Extension: Ptr("css"),
			Delimiter: Ptr("\n\n"),
			Preprocessor: PreprocessorOverrides{
				Method:          Ptr("less"),
				SourceExtension: Ptr("less"),
				PreIncludeFile:  Ptr(""),
				PerFile:         Ptr(false),
			},
			Minifier: MinifierOverrides{
				Method:  Ptr("cssmin"),
				PerFile: Ptr(false),
			},
			Locale:     Ptr(""),
			I18nMarker: Ptr(""),
		},
		JS: TypeOverrides{
			Root:      Ptr("webroot/js"),
			Extension: Ptr("js"),
			Delimiter: Ptr(";\n\n"),
			Preprocessor: PreprocessorOverrides{
				Method:          Ptr(""),
				SourceExtension: Ptr("coffee"),
				PreIncludeFile:  Ptr(""),
				PerFile:         Ptr(false),
			},
			Minifier: MinifierOverrides{
				Method:  Ptr("jsmin"),
				PerFile: Ptr(true),
			},
			Locale:     Ptr(""),
			I18nMarker: Ptr("__("),
		},
	}
}

// Merge layers the given overrides on top of o and returns the result.
// o and the layers are left untouched.
func (o Overrides) Merge(layers ...Overrides) (Overrides, error) {
	merged := o
	merged.AutoIncludePaths = append([]string(nil), o.AutoIncludePaths...)
	for _, layer := range layers {
		if err := mergo.Merge(&merged, layer, mergo.WithOverride, mergo.WithoutDereference); err != nil {
			return Overrides{}, zerr.Wrap(ErrMergeFailed, err.Error())
		}
	}
	return merged, nil
}

// Resolve turns the layered form into plain Settings.
func (o Overrides) Resolve() Settings {
	return Settings{
		Host:             deref(o.Host),
		CleanStale:       deref(o.CleanStale),
		Minify:           deref(o.Minify),
		Packaging:        deref(o.Packaging),
		PluginsRoot:      deref(o.PluginsRoot),
		AutoIncludePaths: append([]string(nil), o.AutoIncludePaths...),
		CSS:              o.CSS.resolve(),
		JS:               o.JS.resolve(),
	}
}

func (t TypeOverrides) resolve() TypeSettings {
	return TypeSettings{
		Root:      deref(t.Root),
		Extension: deref(t.Extension),
		Delimiter: deref(t.Delimiter),
		Preprocessor: PreprocessorSettings{
			Method:          deref(t.Preprocessor.Method),
			SourceExtension: deref(t.Preprocessor.SourceExtension),
			PreIncludeFile:  deref(t.Preprocessor.PreIncludeFile),
			PerFile:         deref(t.Preprocessor.PerFile),
		},
		Minifier: MinifierSettings{
			Method:  deref(t.Minifier.Method),
			PerFile: deref(t.Minifier.PerFile),
		},
		Locale:     deref(t.Locale),
		I18nMarker: deref(t.I18nMarker),
	}
}

// Ptr returns a pointer to v. It is used to build Overrides literals.
func Ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
