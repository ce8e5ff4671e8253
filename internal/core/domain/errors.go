package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownAssetType is returned when an asset type other than css or js is requested.
	ErrUnknownAssetType = zerr.New("unknown asset type")

	// ErrUnknownMethod is reported when a preprocessor or minifier name has no registered transform.
	ErrUnknownMethod = zerr.New("unknown transform method")

	// ErrMissingSourceExtension is returned when a preprocessor is configured without a source extension.
	ErrMissingSourceExtension = zerr.New("preprocessor requires a source extension")

	// ErrContradictoryStages is returned when the configured stages would minify unconverted source.
	ErrContradictoryStages = zerr.New("minifier runs per file but preprocessor runs on the whole package")

	// ErrMissingRoot is returned when an asset type has no root directory.
	ErrMissingRoot = zerr.New("asset root is not configured")

	// ErrMergeFailed is returned when settings overrides cannot be merged.
	ErrMergeFailed = zerr.New("failed to merge settings")

	// ErrSourceReadFailed is returned when a resolved source file cannot be read.
	ErrSourceReadFailed = zerr.New("failed to read source file")

	// ErrHashFailed is returned when the artifact key cannot be derived.
	ErrHashFailed = zerr.New("failed to compute artifact key")

	// ErrArtifactDirFailed is returned when the aggregate directory cannot be created.
	ErrArtifactDirFailed = zerr.New("failed to create aggregate directory")

	// ErrArtifactWriteFailed is returned when an artifact cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write artifact")

	// ErrToolFailed is returned when an external transform tool cannot be run.
	ErrToolFailed = zerr.New("transform tool failed")

	// ErrTempFileFailed is returned when the interchange file for a tool cannot be written.
	ErrTempFileFailed = zerr.New("failed to write tool input file")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidIncludeTable is returned when an include table is not a mapping of include to rules.
	ErrInvalidIncludeTable = zerr.New("include table must map includes to rule strings")

	// ErrCatalogReadFailed is returned when a translation catalog cannot be loaded.
	ErrCatalogReadFailed = zerr.New("failed to read translation catalog")

	// ErrPrebuildFailed marks a prebuild that stopped at a failing page. The
	// failure has already been reported by telemetry.
	ErrPrebuildFailed = zerr.New("prebuild failed")

	// ErrLayoutDiscoveryFailed is returned when the layouts directory cannot be listed.
	ErrLayoutDiscoveryFailed = zerr.New("failed to discover layouts")
)
