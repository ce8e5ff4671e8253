// Package prebuild builds the artifacts of every page an application can
// render, ahead of the first request.
package prebuild

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-openapi/inflect"
	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
	"go.trai.ch/assets/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// Builder builds one package for one page.
type Builder interface {
	Settings(req pipeline.Request) (domain.Settings, error)
	IncludeFiles(ctx context.Context, pkg domain.Package, req pipeline.Request) (*domain.BuildResult, error)
}

// Options selects what a prebuild produces.
type Options struct {
	// Types defaults to css and js.
	Types []domain.AssetType
	// Locales overrides the locales of the project for scripts.
	Locales []string
}

// Summary counts the builds of one run.
type Summary struct {
	Built  int
	Reused int
	// Artifacts are the paths of all referenced artifacts, without duplicates.
	Artifacts []string
}

// Prebuilder enumerates pages and builds their packages.
type Prebuilder struct {
	builder   Builder
	store     ports.ArtifactStore
	layouts   ports.LayoutLister
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new Prebuilder.
func New(
	builder Builder,
	store ports.ArtifactStore,
	layouts ports.LayoutLister,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Prebuilder {
	return &Prebuilder{
		builder:   builder,
		store:     store,
		layouts:   layouts,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Run empties the aggregate directory of each type and builds the package of
// every controller and action pair named by the include rules, for every
// layout and, for scripts, every locale.
func (p *Prebuilder) Run(ctx context.Context, project *domain.Project, opts Options) (Summary, error) {
	layouts, err := p.layouts.Layouts(project.LayoutsDir)
	if err != nil {
		return Summary{}, err
	}
	if len(layouts) == 0 {
		p.logger.Warn(fmt.Sprintf("no layouts found in %s, pages are built without layout includes", project.LayoutsDir))
		layouts = []string{""}
	}

	types := opts.Types
	if len(types) == 0 {
		types = []domain.AssetType{domain.AssetTypeCSS, domain.AssetTypeJS}
	}

	r := &run{
		Prebuilder: p,
		pkgs:       project,
		layouts:    layouts,
		seen:       make(map[string]bool),
	}
	for _, t := range types {
		locales := []string{""}
		if t == domain.AssetTypeJS {
			locales = scriptLocales(project, opts)
		}

		start := time.Now()
		if err := r.prebuildType(ctx, t, locales); err != nil {
			return r.summary, err
		}
		p.logger.Info(fmt.Sprintf("prebuilt %s in %s", t, time.Since(start).Round(time.Millisecond)))
	}
	return r.summary, nil
}

func scriptLocales(project *domain.Project, opts Options) []string {
	if len(opts.Locales) > 0 {
		return opts.Locales
	}
	if len(project.Locales) > 0 {
		return project.Locales
	}
	return []string{""}
}

type run struct {
	*Prebuilder
	pkgs    *domain.Project
	layouts []string
	seen    map[string]bool
	summary Summary
}

func (r *run) prebuildType(ctx context.Context, t domain.AssetType, locales []string) error {
	s, err := r.builder.Settings(pipeline.Request{Type: t})
	if err != nil {
		return err
	}
	root := s.For(t).Root
	if err := r.store.Empty(root); err != nil {
		return err
	}

	pkg := r.pkgs.Package(t)
	for _, pair := range Pairs(pkg) {
		for _, locale := range locales {
			for _, layout := range r.layouts {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := r.prebuildPage(ctx, t, root, pkg, request(t, pair, layout, locale)); err != nil {
					return zerr.With(err, "page", pair.String())
				}
			}
		}
	}
	return nil
}

func (r *run) prebuildPage(ctx context.Context, t domain.AssetType, root string, pkg domain.Package, req pipeline.Request) error {
	ctx, v := r.telemetry.Record(ctx, vertexName(req))
	res, err := r.builder.IncludeFiles(ctx, pkg, req)
	if err != nil {
		v.Complete(err)
		return err
	}

	for _, w := range res.Warnings {
		v.Log(domain.LogLevelWarn, w.Message)
	}
	if res.Reused || res.Cached {
		v.Cached()
		r.summary.Reused++
	} else {
		r.summary.Built++
	}
	v.Complete(nil)

	for _, ref := range res.References() {
		path := filepath.Join(root, filepath.FromSlash(ref))
		if !r.seen[path] {
			r.seen[path] = true
			r.summary.Artifacts = append(r.summary.Artifacts, path)
		}
	}
	return nil
}

// request describes the page of a pair. Stale artifacts are never cleaned
// during a prebuild: the aggregate directory starts empty and every artifact
// written is still wanted.
func request(t domain.AssetType, pair Pair, layout, locale string) pipeline.Request {
	req := pipeline.Request{
		Type: t,
		Page: domain.PageContext{
			Controller: inflect.Underscore(pair.Controller),
			Action:     pair.Action,
		},
		Overrides: domain.Overrides{CleanStale: domain.Ptr(false)},
	}
	if layout != "" {
		req.Page.Layouts = []string{layout}
	}
	if t == domain.AssetTypeJS {
		req.Overrides.JS.Locale = domain.Ptr(locale)
	}
	return req
}

func vertexName(req pipeline.Request) string {
	name := fmt.Sprintf("%s %s:%s", req.Type, req.Page.Controller, req.Page.Action)
	if len(req.Page.Layouts) > 0 {
		name += " layout=" + req.Page.Layouts[0]
	}
	if l := req.Overrides.JS.Locale; l != nil && *l != "" {
		name += " locale=" + *l
	}
	return name
}
