// Package pipeline resolves, transforms, concatenates and caches asset packages.
package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Request is one include call.
type Request struct {
	Type domain.AssetType
	Page domain.PageContext
	// Overrides is the per-call settings layer, e.g. a locale or CleanStale.
	Overrides domain.Overrides
}

// Config is the static configuration of a Pipeline.
type Config struct {
	// Base is the settings layer below every request, usually defaults
	// merged with the project configuration.
	Base domain.Overrides
	// Dir resolves relative roots.
	Dir string
}

// Pipeline builds asset packages. It owns its caches; call Reset between
// logically independent builds.
type Pipeline struct {
	resolver   ports.PathResolver
	hasher     ports.Hasher
	store      ports.ArtifactStore
	transforms ports.TransformRegistry
	translator ports.Translator
	logger     ports.Logger
	cfg        Config

	group singleflight.Group
	mu    sync.Mutex
	cache caches
}

// New creates a new Pipeline.
func New(
	resolver ports.PathResolver,
	hasher ports.Hasher,
	store ports.ArtifactStore,
	transforms ports.TransformRegistry,
	translator ports.Translator,
	logger ports.Logger,
	cfg Config,
) *Pipeline {
	return &Pipeline{
		resolver:   resolver,
		hasher:     hasher,
		store:      store,
		transforms: transforms,
		translator: translator,
		logger:     logger,
		cfg:        cfg,
		cache:      newCaches(),
	}
}

// build carries the immutable inputs and the collected warnings of one call.
type build struct {
	t        domain.AssetType
	s        domain.Settings
	ts       domain.TypeSettings
	chain    chain
	stages   string
	warnings []domain.Warning
}

func (b *build) warn(logger ports.Logger, w domain.Warning) {
	logger.Warn(w.Message)
	b.warnings = append(b.warnings, w)
}

// locale is the locale content of this build is localized for.
func (b *build) locale() string {
	if b.t == domain.AssetTypeJS {
		return b.ts.Locale
	}
	return ""
}

// Settings returns the validated settings of a request.
func (p *Pipeline) Settings(req Request) (domain.Settings, error) {
	merged, err := domain.DefaultOverrides().Merge(p.cfg.Base, req.Overrides)
	if err != nil {
		return domain.Settings{}, err
	}
	s := merged.Resolve().Rooted(p.cfg.Dir)
	if err := s.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}

// IncludeFiles resolves pkg for the requested page and returns the artifact
// reference, building it when neither cache has it.
func (p *Pipeline) IncludeFiles(ctx context.Context, pkg domain.Package, req Request) (*domain.BuildResult, error) {
	s, err := p.Settings(req)
	if err != nil {
		return nil, err
	}

	files := p.resolver.Resolve(pkg, s, req.Type, req.Page)
	key, err := p.resultKey(req.Type, s, files.Locals)
	if err != nil {
		return nil, err
	}

	res, cached := p.cachedResult(key)
	if !cached {
		v, err, _ := p.group.Do(key, func() (any, error) {
			if r, ok := p.cachedResult(key); ok {
				return r, nil
			}
			r, err := p.build(ctx, req.Type, s, files.Locals)
			if err != nil {
				return nil, err
			}
			p.mu.Lock()
			p.cache.results[key] = r
			p.mu.Unlock()
			return r, nil
		})
		if err != nil {
			return nil, err
		}
		res = v.(*domain.BuildResult)
	}

	out := *res
	out.Cached = cached
	out.Externals = files.Externals
	out.Host = s.Host
	return &out, nil
}

// Reset clears the content cache, the result cache and the loaded
// pre-include files.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = newCaches()
}

func (p *Pipeline) cachedResult(key string) (*domain.BuildResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.cache.results[key]
	return r, ok
}

// resultKey combines the settings that shape the artifact with the resolved files.
func (p *Pipeline) resultKey(t domain.AssetType, s domain.Settings, locals []string) (string, error) {
	identity, err := json.Marshal(s.CacheIdentity())
	if err != nil {
		return "", zerr.Wrap(err, "failed to encode settings")
	}
	return p.hasher.Digest(t.String(), string(identity)) + p.hasher.Digest(locals...), nil
}

func (p *Pipeline) newBuild(t domain.AssetType, s domain.Settings) *build {
	b := &build{t: t, s: s, ts: s.For(t)}
	b.chain = p.newChain(b)
	b.stages = p.hasher.Digest(
		b.ts.Preprocessor.Method,
		strconv.FormatBool(b.ts.Preprocessor.PerFile),
		b.ts.Preprocessor.SourceExtension,
		b.ts.Minifier.Method,
		strconv.FormatBool(s.Minify && b.ts.Minifier.PerFile),
		b.ts.I18nMarker,
	)
	return b
}

func (p *Pipeline) build(ctx context.Context, t domain.AssetType, s domain.Settings, locals []string) (*domain.BuildResult, error) {
	b := p.newBuild(t, s)
	res := &domain.BuildResult{Type: t}

	if len(locals) > 0 {
		var err error
		if s.Packaging {
			res.Artifact, res.Reused, err = p.buildPackage(ctx, b, locals)
		} else {
			res.Files, err = p.buildFiles(ctx, b, locals)
		}
		if err != nil {
			return nil, err
		}
	}

	res.Warnings = b.warnings
	return res, nil
}

// FetchContent concatenates the transformed content of locals, separated by
// the delimiter of the type.
func (p *Pipeline) FetchContent(ctx context.Context, locals []string, t domain.AssetType, s domain.Settings) (string, []domain.Warning, error) {
	b := p.newBuild(t, s)
	content, err := p.fetchContent(ctx, b, locals)
	return content, b.warnings, err
}

func (p *Pipeline) fetchContent(ctx context.Context, b *build, locals []string) (string, error) {
	if len(locals) == 0 {
		return "", nil
	}
	delim := b.ts.Delimiter

	var sb strings.Builder
	for _, f := range locals {
		content, err := p.fileContent(ctx, b, f, locals)
		if err != nil {
			return "", err
		}
		sb.WriteString(content)
		sb.WriteString(delim)
	}

	result := sb.String()
	return result[:len(result)-len(delim)], nil
}

// fileContent returns the content of one file after localization and the
// per-file stages.
func (p *Pipeline) fileContent(ctx context.Context, b *build, file string, locals []string) (string, error) {
	key := contentKey{path: file, locale: b.locale(), stages: b.stages}

	p.mu.Lock()
	content, ok := p.cache.contents[key]
	p.mu.Unlock()
	if ok {
		return content, nil
	}

	content, err := readSource(file)
	if err != nil {
		return "", err
	}
	content = p.localize(b, content)

	if b.ts.Preprocessor.PerFile && b.chain.pre != nil && matchesSource(b.ts, file) {
		pre, err := p.preInclude(b, locals)
		if err != nil {
			return "", err
		}
		if content, err = b.apply(ctx, b.chain.pre, withPreInclude(pre, content)); err != nil {
			return "", err
		}
	}
	if b.ts.Minifier.PerFile {
		if content, err = b.apply(ctx, b.chain.min, content); err != nil {
			return "", err
		}
	}

	p.mu.Lock()
	p.cache.contents[key] = content
	p.mu.Unlock()
	return content, nil
}

// buildPackage returns the single artifact of locals, building it unless it
// already exists on disk.
func (p *Pipeline) buildPackage(ctx context.Context, b *build, locals []string) (string, bool, error) {
	key, err := p.hasher.ArtifactKey(locals)
	if err != nil {
		return "", false, err
	}
	name := domain.ArtifactName(key, b.t, b.ts, b.s.Minify)

	exists, err := p.store.Exists(b.ts.Root, name)
	if err != nil {
		return "", false, err
	}
	if exists {
		return name, true, nil
	}

	if b.s.CleanStale {
		p.store.Clean(b.ts.Root, key.NameDigest)
	}

	content, err := p.fetchContent(ctx, b, locals)
	if err != nil {
		return "", false, err
	}
	if b.t == domain.AssetTypeCSS {
		content = RewriteCSSPaths(content)
	}
	if !b.ts.Preprocessor.PerFile {
		if content, err = b.apply(ctx, b.chain.pre, content); err != nil {
			return "", false, err
		}
	}
	if !b.ts.Minifier.PerFile {
		if content, err = b.apply(ctx, b.chain.min, content); err != nil {
			return "", false, err
		}
	}

	if err := p.store.Write(b.ts.Root, name, content); err != nil {
		return "", false, err
	}
	return name, false, nil
}

// buildFiles writes one artifact per source file and returns their names.
func (p *Pipeline) buildFiles(ctx context.Context, b *build, locals []string) ([]string, error) {
	pre, err := p.preInclude(b, locals)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(locals))
	for _, f := range locals {
		content, err := readSource(f)
		if err != nil {
			return nil, err
		}
		content = p.localize(b, content)
		convert := b.chain.pre != nil && matchesSource(b.ts, f)
		if convert {
			content = withPreInclude(pre, content)
		}
		if b.t == domain.AssetTypeCSS {
			content = RewriteCSSPaths(content)
		}
		if convert {
			if content, err = b.apply(ctx, b.chain.pre, content); err != nil {
				return nil, err
			}
		}
		if content, err = b.apply(ctx, b.chain.min, content); err != nil {
			return nil, err
		}

		name := perFileName(f, b)
		if err := p.store.Write(b.ts.Root, name, content); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (p *Pipeline) localize(b *build, content string) string {
	if b.locale() == "" {
		return content
	}
	return Localize(content, b.ts.I18nMarker, b.locale(), p.translator)
}

// preInclude returns the content of the configured pre-include file of the
// type. The first file in locals with that basename is loaded once until Reset.
func (p *Pipeline) preInclude(b *build, locals []string) (string, error) {
	name := b.ts.Preprocessor.PreIncludeFile
	if name == "" {
		return "", nil
	}

	p.mu.Lock()
	content, ok := p.cache.preIncludes[b.t]
	p.mu.Unlock()
	if ok {
		return content, nil
	}

	for _, f := range locals {
		if filepath.Base(f) != name {
			continue
		}
		content, err := readSource(f)
		if err != nil {
			return "", err
		}
		p.mu.Lock()
		p.cache.preIncludes[b.t] = content
		p.mu.Unlock()
		return content, nil
	}
	return "", nil
}

func withPreInclude(pre, content string) string {
	if pre == "" {
		return content
	}
	return pre + "\n\n" + content
}

// matchesSource reports whether file is written in the preprocessor's language.
func matchesSource(ts domain.TypeSettings, file string) bool {
	return strings.TrimPrefix(filepath.Ext(file), ".") == ts.Preprocessor.SourceExtension
}

// perFileName names the artifact of a single source file:
// aggregate/<base>[_<locale>][.min].<ext>, where base is the file name with
// the source and target extensions removed.
func perFileName(file string, b *build) string {
	base := filepath.Base(file)
	if ext := b.ts.Preprocessor.SourceExtension; ext != "" {
		base = strings.ReplaceAll(base, "."+ext, "")
	}
	base = strings.ReplaceAll(base, "."+b.ts.Extension, "")
	if locale := b.locale(); locale != "" {
		base += "_" + locale
	}
	if b.s.Minify {
		base += ".min"
	}
	return path.Join(domain.AggregateDirName, base+"."+b.ts.Extension)
}

func readSource(file string) (string, error) {
	data, err := os.ReadFile(file) //nolint:gosec // path comes from the resolver
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrSourceReadFailed, err.Error()), "path", file)
	}
	return string(data), nil
}
