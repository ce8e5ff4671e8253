// Package domain contains the core domain models for the asset aggregation pipeline.
package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// AssetType identifies the kind of asset a package aggregates.
type AssetType string

const (
	// AssetTypeCSS aggregates stylesheets.
	AssetTypeCSS AssetType = "css"
	// AssetTypeJS aggregates scripts.
	AssetTypeJS AssetType = "js"
)

// ParseAssetType converts a string to an AssetType.
func ParseAssetType(s string) (AssetType, error) {
	switch AssetType(strings.ToLower(s)) {
	case AssetTypeCSS:
		return AssetTypeCSS, nil
	case AssetTypeJS:
		return AssetTypeJS, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownAssetType, "failed to parse asset type"), "type", s)
	}
}

// String returns the string form of the asset type.
func (t AssetType) String() string {
	return string(t)
}

// Entry is a single declared include of a package together with its inclusion rules.
type Entry struct {
	// Include is a path relative to the type root, an absolute path,
	// a plugin-qualified path or an external URL.
	Include string
	// Rules is the raw inclusion rule string, e.g. "!*:*, Auth:login".
	Rules string
}

// Package is the ordered set of includes requested for one build.
// Order defines the concatenation order of the artifact.
type Package []Entry

// Includes returns the include strings in declaration order.
func (p Package) Includes() []string {
	out := make([]string, len(p))
	for i, e := range p {
		out[i] = e.Include
	}
	return out
}

// PageContext describes the page an asset package is built for.
// It is supplied once per build call and never mutated by the pipeline.
type PageContext struct {
	Controller string
	Action     string
	Plugin     string
	Pass       []string
	Layouts    []string
}

// ResolvedFiles is the output of selection and resolution.
type ResolvedFiles struct {
	// Locals are absolute paths of existing files in concatenation order.
	Locals []string
	// Externals are URLs that are emitted verbatim.
	Externals []string
}

// IsExternal reports whether an include refers to a remote resource.
func IsExternal(include string) bool {
	return strings.Contains(include, "://") || strings.HasPrefix(include, "//")
}
