package domain

const (
	// AggregateDirName is the directory below each type root that holds built artifacts.
	AggregateDirName = "aggregate"

	// ConfigFileName is the default name of the project configuration file.
	ConfigFileName = "assets.yaml"

	// PluginMarker prefixes includes that live in a plugin's asset root,
	// e.g. "plugin:Billing/forms.css".
	PluginMarker = "plugin:"

	// DirPerm is the permission used for the aggregate directory (rwxrwxr-x).
	DirPerm = 0o775

	// ArtifactPerm is the permission applied to written artifacts (rw-rw-r--).
	ArtifactPerm = 0o664

	// TempFilePerm is the permission of tool interchange files (rw-------).
	TempFilePerm = 0o600
)
