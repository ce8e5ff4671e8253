package domain

// Project is the loaded configuration of an application's assets.
type Project struct {
	// Dir is the directory relative roots are resolved against.
	Dir string
	// Overrides is the configuration file layer of the settings.
	Overrides Overrides
	// CSS and JS are the global include tables.
	CSS Package
	JS  Package
	// Locales are the script locales the prebuild produces artifacts for.
	Locales []string
	// LayoutsDir holds the application's layout templates.
	LayoutsDir string
	// TranslationsDir holds one catalog per locale.
	TranslationsDir string
	// Tools configures the external binaries per transform method.
	Tools map[string]ToolSpec
}

// Package returns the include table of the given asset type.
func (p *Project) Package(t AssetType) Package {
	if t == AssetTypeJS {
		return p.JS
	}
	return p.CSS
}
