// Package i18n serves translations from per-locale YAML catalogs.
//
// A catalog is either <dir>/<locale>.yaml or any number of YAML files below
// <dir>/<locale>/. Each file maps message keys to translations:
//
//	"Save": "Speichern"
//	"Delete %s?": "%s löschen?"
package i18n

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.Translator = (*Catalog)(nil)

var localePattern = regexp.MustCompile(`^\w+$`)

// Catalog implements ports.Translator. Locales are loaded on first use.
type Catalog struct {
	dir    string
	logger ports.Logger

	mu       sync.RWMutex
	messages map[string]map[string]string
}

// NewCatalog creates a Catalog reading from dir.
func NewCatalog(dir string, logger ports.Logger) *Catalog {
	return &Catalog{
		dir:      dir,
		logger:   logger,
		messages: make(map[string]map[string]string),
	}
}

// Translate returns the translation of key for locale, or key itself.
func (c *Catalog) Translate(key, locale string) string {
	msgs := c.locale(locale)
	if v, ok := msgs[key]; ok && v != "" {
		return v
	}
	return key
}

func (c *Catalog) locale(locale string) map[string]string {
	c.mu.RLock()
	msgs, ok := c.messages[locale]
	c.mu.RUnlock()
	if ok {
		return msgs
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if msgs, ok := c.messages[locale]; ok {
		return msgs
	}

	msgs, err := c.load(locale)
	if err != nil {
		c.logger.Error(err)
	}
	c.messages[locale] = msgs
	return msgs
}

// load merges every catalog file of locale. Later files win on duplicate keys.
func (c *Catalog) load(locale string) (map[string]string, error) {
	msgs := make(map[string]string)
	if c.dir == "" || !localePattern.MatchString(locale) {
		return msgs, nil
	}

	var files []string
	for _, pattern := range []string{locale + ".{yaml,yml}", locale + "/**/*.{yaml,yml}"} {
		matches, err := doublestar.Glob(os.DirFS(c.dir), pattern, doublestar.WithFilesOnly())
		if err != nil {
			return msgs, zerr.With(zerr.Wrap(domain.ErrCatalogReadFailed, err.Error()), "locale", locale)
		}
		slices.Sort(matches)
		files = append(files, matches...)
	}

	for _, f := range files {
		path := filepath.Join(c.dir, filepath.FromSlash(f))
		//nolint:gosec // path comes from globbing the configured catalog directory
		data, err := os.ReadFile(path)
		if err != nil {
			return msgs, zerr.With(zerr.Wrap(domain.ErrCatalogReadFailed, err.Error()), "path", path)
		}
		var entries map[string]string
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return msgs, zerr.With(zerr.Wrap(domain.ErrCatalogReadFailed, err.Error()), "path", path)
		}
		for k, v := range entries {
			msgs[k] = v
		}
	}
	return msgs, nil
}

// Reset drops every loaded locale.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = make(map[string]map[string]string)
}
