package domain

import (
	"path"
	"strings"
)

// ArtifactKey identifies a packaged artifact by its inputs.
// Identical file lists with identical modification times yield identical keys.
type ArtifactKey struct {
	// NameDigest is derived from the ordered list of source paths.
	NameDigest string
	// MtimeDigest is derived from the source modification times.
	MtimeDigest string
}

// ArtifactName returns the artifact path relative to the type root:
// aggregate/<name>_<mtime>[_<locale>][.min].<ext>.
// The locale segment is only used for scripts.
func ArtifactName(key ArtifactKey, t AssetType, ts TypeSettings, minify bool) string {
	var b strings.Builder
	b.WriteString(key.NameDigest)
	b.WriteByte('_')
	b.WriteString(key.MtimeDigest)
	if t == AssetTypeJS && ts.Locale != "" {
		b.WriteByte('_')
		b.WriteString(ts.Locale)
	}
	if minify {
		b.WriteString(".min")
	}
	b.WriteByte('.')
	b.WriteString(ts.Extension)
	return path.Join(AggregateDirName, b.String())
}

// WarningKind classifies non-fatal build problems.
type WarningKind string

const (
	// WarningConfiguration marks an unknown preprocessor or minifier method.
	WarningConfiguration WarningKind = "configuration"
	// WarningTool marks diagnostics written by an external tool.
	WarningTool WarningKind = "tool"
)

// Warning is a non-fatal problem attached to a build result.
type Warning struct {
	Kind    WarningKind
	Method  string
	Message string
}

// BuildResult is the outcome of one include call.
type BuildResult struct {
	Type AssetType
	// Artifact is the packaged artifact relative to the type root. Empty in non-packaged mode.
	Artifact string
	// Files are the per-file artifacts relative to the type root in non-packaged mode.
	Files     []string
	Externals []string
	Host      string
	Warnings  []Warning
	// Reused reports that the packaged artifact already existed on disk.
	Reused bool
	// Cached reports that the result came from the in-process result cache.
	Cached bool
}

// References returns every local artifact reference of the result.
func (r *BuildResult) References() []string {
	if r.Artifact != "" {
		return []string{r.Artifact}
	}
	return r.Files
}

// URL returns the address an emitter should embed for ref, served below prefix
// (for example "/css"). A configured host yields a protocol-relative URL.
func (r *BuildResult) URL(prefix, ref string) string {
	p := path.Join("/", prefix, ref)
	if r.Host == "" {
		return p
	}
	return "//" + strings.TrimSuffix(r.Host, "/") + p
}
