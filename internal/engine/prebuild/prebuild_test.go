package prebuild_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assets/internal/adapters/cas"
	"go.trai.ch/assets/internal/adapters/fs"
	"go.trai.ch/assets/internal/adapters/telemetry"
	"go.trai.ch/assets/internal/adapters/transform"
	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports/mocks"
	"go.trai.ch/assets/internal/engine/pipeline"
	"go.trai.ch/assets/internal/engine/prebuild"
	"go.uber.org/mock/gomock"
)

type fakeBuilder struct {
	mu       sync.Mutex
	requests []pipeline.Request
	result   func(req pipeline.Request) (*domain.BuildResult, error)
}

func (f *fakeBuilder) Settings(pipeline.Request) (domain.Settings, error) {
	s := domain.DefaultOverrides().Resolve()
	s.CSS.Root = "/srv/css"
	s.JS.Root = "/srv/js"
	return s, nil
}

func (f *fakeBuilder) IncludeFiles(_ context.Context, _ domain.Package, req pipeline.Request) (*domain.BuildResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.result != nil {
		return f.result(req)
	}
	return &domain.BuildResult{Type: req.Type, Artifact: "aggregate/" + req.Page.Controller + ".css"}, nil
}

type prebuildMocks struct {
	store     *mocks.MockArtifactStore
	layouts   *mocks.MockLayoutLister
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex
	logger    *mocks.MockLogger
}

func newMocks(t *testing.T) *prebuildMocks {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &prebuildMocks{
		store:     mocks.NewMockArtifactStore(ctrl),
		layouts:   mocks.NewMockLayoutLister(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return m
}

func (m *prebuildMocks) prebuilder(b prebuild.Builder) *prebuild.Prebuilder {
	return prebuild.New(b, m.store, m.layouts, m.telemetry, m.logger)
}

func TestPrebuilder_Run_EnumeratesPages(t *testing.T) {
	m := newMocks(t)
	b := &fakeBuilder{}

	project := &domain.Project{
		LayoutsDir: "/srv/views/layouts",
		CSS:        domain.Package{{Include: "users.css", Rules: "!*:*, Users:index, AdminUsers:edit"}},
		JS:         domain.Package{{Include: "app.js", Rules: "Users:index"}},
		Locales:    []string{"eng", "deu"},
	}

	m.layouts.EXPECT().Layouts("/srv/views/layouts").Return([]string{"admin", "default"}, nil)
	m.store.EXPECT().Empty("/srv/css").Return(nil)
	m.store.EXPECT().Empty("/srv/js").Return(nil)
	m.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).
		Return(context.Background(), m.vertex).Times(8)
	m.vertex.EXPECT().Complete(nil).Times(8)

	summary, err := m.prebuilder(b).Run(context.Background(), project, prebuild.Options{})
	require.NoError(t, err)

	// css: 2 pairs x 2 layouts, js: 1 pair x 2 locales x 2 layouts.
	require.Len(t, b.requests, 8)
	assert.Equal(t, 8, summary.Built)
	assert.Zero(t, summary.Reused)

	first := b.requests[0]
	assert.Equal(t, domain.AssetTypeCSS, first.Type)
	assert.Equal(t, "users", first.Page.Controller)
	assert.Equal(t, "index", first.Page.Action)
	assert.Equal(t, []string{"admin"}, first.Page.Layouts)
	assert.False(t, *first.Overrides.CleanStale)
	assert.Nil(t, first.Overrides.JS.Locale, "stylesheets are not localized")

	assert.Equal(t, "admin_users", b.requests[2].Page.Controller)

	js := b.requests[4]
	assert.Equal(t, domain.AssetTypeJS, js.Type)
	assert.Equal(t, "eng", *js.Overrides.JS.Locale)
	assert.Equal(t, "deu", *b.requests[6].Overrides.JS.Locale)

	assert.Equal(t, []string{
		filepath.Join("/srv/css", "aggregate", "users.css"),
		filepath.Join("/srv/css", "aggregate", "admin_users.css"),
		filepath.Join("/srv/js", "aggregate", "users.css"),
	}, summary.Artifacts)
}

func TestPrebuilder_Run_OptionsSelectTypesAndLocales(t *testing.T) {
	m := newMocks(t)
	b := &fakeBuilder{}

	project := &domain.Project{
		CSS:     domain.Package{{Include: "users.css", Rules: "Users:index"}},
		JS:      domain.Package{{Include: "app.js", Rules: "Users:index"}},
		Locales: []string{"eng", "deu"},
	}

	m.layouts.EXPECT().Layouts(gomock.Any()).Return([]string{"default"}, nil)
	m.store.EXPECT().Empty("/srv/js").Return(nil)
	m.telemetry.EXPECT().Record(gomock.Any(), "js users:index layout=default locale=fra").
		Return(context.Background(), m.vertex)
	m.vertex.EXPECT().Complete(nil)

	_, err := m.prebuilder(b).Run(context.Background(), project, prebuild.Options{
		Types:   []domain.AssetType{domain.AssetTypeJS},
		Locales: []string{"fra"},
	})
	require.NoError(t, err)
	require.Len(t, b.requests, 1)
}

func TestPrebuilder_Run_WithoutLayouts(t *testing.T) {
	m := newMocks(t)
	b := &fakeBuilder{}
	project := &domain.Project{
		LayoutsDir: "/srv/views/layouts",
		CSS:        domain.Package{{Include: "users.css", Rules: "Users:index"}},
	}

	m.layouts.EXPECT().Layouts("/srv/views/layouts").Return(nil, nil)
	m.logger.EXPECT().Warn(gomock.Any())
	m.store.EXPECT().Empty("/srv/css").Return(nil)
	m.telemetry.EXPECT().Record(gomock.Any(), "css users:index").Return(context.Background(), m.vertex)
	m.vertex.EXPECT().Complete(nil)

	_, err := m.prebuilder(b).Run(context.Background(), project, prebuild.Options{
		Types: []domain.AssetType{domain.AssetTypeCSS},
	})
	require.NoError(t, err)

	require.Len(t, b.requests, 1)
	assert.Nil(t, b.requests[0].Page.Layouts)
}

func TestPrebuilder_Run_ReportsReuseAndWarnings(t *testing.T) {
	m := newMocks(t)
	b := &fakeBuilder{result: func(req pipeline.Request) (*domain.BuildResult, error) {
		return &domain.BuildResult{
			Type:     req.Type,
			Artifact: "aggregate/a.css",
			Reused:   true,
			Warnings: []domain.Warning{{Kind: domain.WarningTool, Method: "less", Message: "deprecated"}},
		}, nil
	}}
	project := &domain.Project{CSS: domain.Package{{Include: "a.css", Rules: "Users:index"}}}

	m.layouts.EXPECT().Layouts(gomock.Any()).Return([]string{"default"}, nil)
	m.store.EXPECT().Empty(gomock.Any()).Return(nil)
	m.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).Return(context.Background(), m.vertex)
	gomock.InOrder(
		m.vertex.EXPECT().Log(domain.LogLevelWarn, "deprecated"),
		m.vertex.EXPECT().Cached(),
		m.vertex.EXPECT().Complete(nil),
	)

	summary, err := m.prebuilder(b).Run(context.Background(), project, prebuild.Options{
		Types: []domain.AssetType{domain.AssetTypeCSS},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Reused)
	assert.Zero(t, summary.Built)
}

func TestPrebuilder_Run_StopsOnBuildError(t *testing.T) {
	m := newMocks(t)
	buildErr := errors.New("disk full")
	b := &fakeBuilder{result: func(pipeline.Request) (*domain.BuildResult, error) {
		return nil, buildErr
	}}
	project := &domain.Project{CSS: domain.Package{{Include: "a.css", Rules: "Users:index, Pages:view"}}}

	m.layouts.EXPECT().Layouts(gomock.Any()).Return([]string{"default"}, nil)
	m.store.EXPECT().Empty(gomock.Any()).Return(nil)
	m.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).Return(context.Background(), m.vertex)
	m.vertex.EXPECT().Complete(buildErr)

	_, err := m.prebuilder(b).Run(context.Background(), project, prebuild.Options{})
	require.ErrorIs(t, err, buildErr)
	assert.Len(t, b.requests, 1)
}

func TestPrebuilder_Run_EmptyFailure(t *testing.T) {
	m := newMocks(t)
	emptyErr := errors.New("permission denied")

	m.layouts.EXPECT().Layouts(gomock.Any()).Return([]string{"default"}, nil)
	m.store.EXPECT().Empty("/srv/css").Return(emptyErr)

	_, err := m.prebuilder(&fakeBuilder{}).Run(context.Background(), &domain.Project{}, prebuild.Options{})
	assert.ErrorIs(t, err, emptyErr)
}

func TestPrebuilder_Run_LayoutDiscoveryFailure(t *testing.T) {
	m := newMocks(t)
	m.layouts.EXPECT().Layouts(gomock.Any()).Return(nil, domain.ErrLayoutDiscoveryFailed)

	_, err := m.prebuilder(&fakeBuilder{}).Run(context.Background(), &domain.Project{}, prebuild.Options{})
	assert.ErrorIs(t, err, domain.ErrLayoutDiscoveryFailed)
}

func TestPrebuilder_Run_WritesArtifacts(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	write := func(name, content string) {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	write("webroot/css/base.css", "body{}")
	write("webroot/css/users.css", ".users{}")
	write("webroot/css/aggregate/.gitignore", "*")
	write("webroot/css/aggregate/old.css", "stale")
	write("views/layouts/default.ctp", "")

	store := cas.NewStore(log)
	p := pipeline.New(
		fs.NewResolver(),
		fs.NewHasher(),
		store,
		transform.NewRegistry(mocks.NewMockToolRunner(ctrl), log, dir, nil),
		mocks.NewMockTranslator(ctrl),
		log,
		pipeline.Config{
			Base: domain.Overrides{
				Minify: domain.Ptr(false),
				CSS:    domain.TypeOverrides{Preprocessor: domain.PreprocessorOverrides{Method: domain.Ptr("")}},
			},
			Dir: dir,
		},
	)
	project := &domain.Project{
		Dir:        dir,
		LayoutsDir: filepath.Join(dir, "views", "layouts"),
		CSS: domain.Package{
			{Include: "base.css", Rules: "*:*"},
			{Include: "users.css", Rules: "Users:*"},
		},
	}

	summary, err := prebuild.New(p, store, fs.NewLayoutLister(), telemetry.NewNoOp(), log).
		Run(context.Background(), project, prebuild.Options{Types: []domain.AssetType{domain.AssetTypeCSS}})
	require.NoError(t, err)

	// "*:*" and "Users:*" select different file lists.
	require.Len(t, summary.Artifacts, 2)
	for _, a := range summary.Artifacts {
		assert.FileExists(t, a)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "webroot", "css", "aggregate"))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, ".gitignore")
	assert.NotContains(t, names, "old.css")
	assert.Len(t, names, 3)
}
