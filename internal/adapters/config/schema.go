package config

import (
	"go.trai.ch/assets/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// Assetfile represents the structure of the assets.yaml configuration file.
type Assetfile struct {
	Settings        domain.Overrides           `yaml:"settings"`
	Tools           map[string]domain.ToolSpec `yaml:"tools"`
	Locales         []string                   `yaml:"locales"`
	LayoutsDir      string                     `yaml:"layouts_dir"`
	TranslationsDir string                     `yaml:"translations_dir"`
	// CSS and JS are mappings of include to rule string. They are kept as
	// nodes so the declaration order survives decoding.
	CSS yaml.Node `yaml:"css"`
	JS  yaml.Node `yaml:"js"`
}

const (
	defaultLayoutsDir      = "views/layouts"
	defaultTranslationsDir = "locale"
)
