// Package app implements the application layer for assets.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.trai.ch/assets/internal/adapters/i18n"
	"go.trai.ch/assets/internal/adapters/transform"
	"go.trai.ch/assets/internal/adapters/watcher"
	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
	"go.trai.ch/assets/internal/engine/pipeline"
	"go.trai.ch/assets/internal/engine/prebuild"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     ports.PathResolver
	hasher       ports.Hasher
	store        ports.ArtifactStore
	runner       ports.ToolRunner
	layouts      ports.LayoutLister
	telemetry    ports.Telemetry
	watcher      ports.Watcher
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolver ports.PathResolver,
	hasher ports.Hasher,
	store ports.ArtifactStore,
	runner ports.ToolRunner,
	layouts ports.LayoutLister,
	telemetry ports.Telemetry,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		resolver:     resolver,
		hasher:       hasher,
		store:        store,
		runner:       runner,
		layouts:      layouts,
		telemetry:    telemetry,
		watcher:      w,
		logger:       log,
	}
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// Config is the configuration file or the directory holding it.
	Config string
	Type   domain.AssetType
	Page   domain.PageContext
	// Locale localizes scripts. Empty keeps the configured locale.
	Locale string
}

// Build builds the package of one page and returns the artifact reference.
func (a *App) Build(ctx context.Context, opts BuildOptions) (*domain.BuildResult, error) {
	project, err := a.load(opts.Config)
	if err != nil {
		return nil, err
	}

	req := pipeline.Request{Type: opts.Type, Page: opts.Page}
	if opts.Locale != "" {
		req.Overrides.JS.Locale = domain.Ptr(opts.Locale)
	}

	res, err := a.pipeline(project).IncludeFiles(ctx, project.Package(opts.Type), req)
	if err != nil {
		return nil, zerr.Wrap(err, "build failed")
	}
	return res, nil
}

// PrebuildOptions configuration for the Prebuild method.
type PrebuildOptions struct {
	Config  string
	Types   []domain.AssetType
	Locales []string
}

// Prebuild builds the artifacts of every page named by the include rules.
func (a *App) Prebuild(ctx context.Context, opts PrebuildOptions) (prebuild.Summary, error) {
	project, err := a.load(opts.Config)
	if err != nil {
		return prebuild.Summary{}, err
	}

	summary, err := a.prebuild(ctx, project, opts)
	if closeErr := a.telemetry.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	if err != nil {
		return summary, errors.Join(domain.ErrPrebuildFailed, err)
	}

	a.logSummary(summary)
	return summary, nil
}

func (a *App) prebuild(ctx context.Context, project *domain.Project, opts PrebuildOptions) (prebuild.Summary, error) {
	p := prebuild.New(a.pipeline(project), a.store, a.layouts, a.telemetry, a.logger)
	return p.Run(ctx, project, prebuild.Options{Types: opts.Types, Locales: opts.Locales})
}

func (a *App) logSummary(summary prebuild.Summary) {
	a.logger.Info(fmt.Sprintf("prebuild finished: %d built, %d reused, %d artifacts",
		summary.Built, summary.Reused, len(summary.Artifacts)))
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Config  string
	Types   []domain.AssetType
	Locales []string
	// Debounce is the quiet period after the last change before rebuilding.
	Debounce time.Duration
}

// Watch prebuilds once and again after every batch of source changes until
// ctx is done. The configuration is reloaded for every rebuild. A failed
// rebuild is logged and watching continues.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	project, err := a.load(opts.Config)
	if err != nil {
		return err
	}

	roots, err := a.watchRoots(project, opts.Types)
	if err != nil {
		return err
	}
	if err := a.watcher.Start(ctx, roots...); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Warn(fmt.Sprintf("failed to stop watcher: %v", err))
		}
	}()

	window := opts.Debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}

	changes := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(window, func(paths []string) {
		select {
		case changes <- paths:
		default:
			// The queued rebuild picks these changes up as well.
		}
	})
	defer debouncer.Stop()

	g, gctx := errgroup.WithContext(ctx)

	// Event Routine
	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})

	// Rebuild Routine
	g.Go(func() error {
		a.rebuild(gctx, opts, nil)
		a.logger.Info(fmt.Sprintf("watching %d directories for changes", len(roots)))
		for {
			select {
			case <-gctx.Done():
				return nil
			case paths := <-changes:
				a.rebuild(gctx, opts, paths)
			}
		}
	})

	err = g.Wait()
	if closeErr := a.telemetry.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	return err
}

func (a *App) rebuild(ctx context.Context, opts WatchOptions, changed []string) {
	if len(changed) > 0 {
		a.logger.Info(fmt.Sprintf("%d file(s) changed, rebuilding", len(changed)))
	}

	project, err := a.load(opts.Config)
	if err == nil {
		var summary prebuild.Summary
		summary, err = a.prebuild(ctx, project, PrebuildOptions{Types: opts.Types, Locales: opts.Locales})
		if err == nil {
			a.logSummary(summary)
			return
		}
	}
	if ctx.Err() == nil {
		a.logger.Error(err)
	}
}

// watchRoots lists the directories whose changes affect the artifacts of types.
func (a *App) watchRoots(project *domain.Project, types []domain.AssetType) ([]string, error) {
	if len(types) == 0 {
		types = []domain.AssetType{domain.AssetTypeCSS, domain.AssetTypeJS}
	}

	p := a.pipeline(project)
	roots := make([]string, 0, len(types)+2)
	for _, t := range types {
		s, err := p.Settings(pipeline.Request{Type: t})
		if err != nil {
			return nil, err
		}
		roots = append(roots, s.For(t).Root)
		if t == domain.AssetTypeJS && project.TranslationsDir != "" {
			roots = append(roots, project.TranslationsDir)
		}
	}
	if project.LayoutsDir != "" {
		roots = append(roots, project.LayoutsDir)
	}
	return roots, nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Config string
	// Types defaults to css and js.
	Types []domain.AssetType
}

// Clean removes the built artifacts of the selected types. Dot-files in the
// aggregate directories are kept.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	project, err := a.load(opts.Config)
	if err != nil {
		return err
	}

	types := opts.Types
	if len(types) == 0 {
		types = []domain.AssetType{domain.AssetTypeCSS, domain.AssetTypeJS}
	}

	p := a.pipeline(project)
	var errs error
	for _, t := range types {
		s, err := p.Settings(pipeline.Request{Type: t})
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		dir := filepath.Join(s.For(t).Root, domain.AggregateDirName)
		a.logger.Info(fmt.Sprintf("removing %s artifacts in %s...", t, dir))
		if err := a.store.Empty(s.For(t).Root); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

func (a *App) load(path string) (*domain.Project, error) {
	if path == "" {
		path = "."
	}
	project, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return project, nil
}

// pipeline assembles the pipeline of a project. Translations and tool
// settings are project specific, so a pipeline never outlives its project.
func (a *App) pipeline(project *domain.Project) *pipeline.Pipeline {
	return pipeline.New(
		a.resolver,
		a.hasher,
		a.store,
		transform.NewRegistry(a.runner, a.logger, project.Dir, project.Tools),
		i18n.NewCatalog(project.TranslationsDir, a.logger),
		a.logger,
		pipeline.Config{Base: project.Overrides, Dir: project.Dir},
	)
}
