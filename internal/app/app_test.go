package app_test

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assets/internal/adapters/cas"
	"go.trai.ch/assets/internal/adapters/fs"
	"go.trai.ch/assets/internal/adapters/telemetry"
	"go.trai.ch/assets/internal/app"
	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
	"go.trai.ch/assets/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type appMocks struct {
	loader    *mocks.MockConfigLoader
	runner    *mocks.MockToolRunner
	layouts   *mocks.MockLayoutLister
	telemetry *mocks.MockTelemetry
	watcher   *mocks.MockWatcher
	logger    *mocks.MockLogger
}

func newApp(t *testing.T) (*app.App, *appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &appMocks{
		loader:    mocks.NewMockConfigLoader(ctrl),
		runner:    mocks.NewMockToolRunner(ctrl),
		layouts:   mocks.NewMockLayoutLister(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		watcher:   mocks.NewMockWatcher(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	a := app.New(m.loader, fs.NewResolver(), fs.NewHasher(), cas.NewStore(m.logger), m.runner, m.layouts, m.telemetry, m.watcher, m.logger)
	return a, m
}

// newProject writes a project with plain stylesheets and scripts that need
// no external tool.
func newProject(t *testing.T) *domain.Project {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"webroot/css/base.css":            "body { background: url(img/bg.png); }",
		"webroot/js/app.js":               "alert(__('Hello'))",
		"webroot/css/aggregate/.gitkeep":  "",
		"webroot/css/aggregate/stale.css": "old",
		"webroot/js/aggregate/stale.js":   "old",
		"locale/deu.yaml":                 "Hello: Hallo\n",
	} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	return &domain.Project{
		Dir: dir,
		Overrides: domain.Overrides{
			Minify: domain.Ptr(false),
			CSS: domain.TypeOverrides{
				Preprocessor: domain.PreprocessorOverrides{Method: domain.Ptr("")},
			},
		},
		CSS:             domain.Package{{Include: "base.css", Rules: "*:*"}},
		JS:              domain.Package{{Include: "app.js", Rules: "Users:*"}},
		LayoutsDir:      filepath.Join(dir, "views", "layouts"),
		TranslationsDir: filepath.Join(dir, "locale"),
	}
}

func TestApp_Build(t *testing.T) {
	a, m := newApp(t)
	project := newProject(t)
	m.loader.EXPECT().Load(".").Return(project, nil)

	res, err := a.Build(context.Background(), app.BuildOptions{
		Type: domain.AssetTypeCSS,
		Page: domain.PageContext{Controller: "users", Action: "index"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(project.Dir, "webroot", "css", filepath.FromSlash(res.Artifact)))
	require.NoError(t, err)
	assert.Equal(t, "body { background: url(../img/bg.png); }", string(data))
}

func TestApp_Build_Locale(t *testing.T) {
	a, m := newApp(t)
	project := newProject(t)
	m.loader.EXPECT().Load("assets.yaml").Return(project, nil)

	res, err := a.Build(context.Background(), app.BuildOptions{
		Config: "assets.yaml",
		Type:   domain.AssetTypeJS,
		Page:   domain.PageContext{Controller: "users", Action: "index"},
		Locale: "deu",
	})
	require.NoError(t, err)

	assert.Regexp(t, `_deu\.js$`, res.Artifact)
	data, err := os.ReadFile(filepath.Join(project.Dir, "webroot", "js", filepath.FromSlash(res.Artifact)))
	require.NoError(t, err)
	assert.Equal(t, "alert('Hallo')", string(data))
}

func TestApp_Build_ConfigLoaderError(t *testing.T) {
	a, m := newApp(t)
	m.loader.EXPECT().Load(".").Return(nil, domain.ErrConfigReadFailed)

	_, err := a.Build(context.Background(), app.BuildOptions{Type: domain.AssetTypeCSS})
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Prebuild(t *testing.T) {
	a, m := newApp(t)
	project := newProject(t)
	m.loader.EXPECT().Load(".").Return(project, nil)
	m.layouts.EXPECT().Layouts(project.LayoutsDir).Return([]string{"default"}, nil)

	vertex := mocks.NewMockVertex(gomock.NewController(t))
	vertex.EXPECT().Complete(nil).Times(2)
	m.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).Return(context.Background(), vertex).Times(2)
	m.telemetry.EXPECT().Close().Return(nil)

	summary, err := a.Prebuild(context.Background(), app.PrebuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Built)
	require.Len(t, summary.Artifacts, 2)
	assert.NoFileExists(t, filepath.Join(project.Dir, "webroot", "css", "aggregate", "stale.css"))
	assert.NoFileExists(t, filepath.Join(project.Dir, "webroot", "js", "aggregate", "stale.js"))
}

func TestApp_Prebuild_Failure(t *testing.T) {
	a, m := newApp(t)
	project := newProject(t)
	layoutErr := errors.New("boom")
	m.loader.EXPECT().Load(".").Return(project, nil)
	m.layouts.EXPECT().Layouts(gomock.Any()).Return(nil, layoutErr)
	m.telemetry.EXPECT().Close().Return(nil)

	_, err := a.Prebuild(context.Background(), app.PrebuildOptions{})
	require.ErrorIs(t, err, domain.ErrPrebuildFailed)
	assert.ErrorIs(t, err, layoutErr)
}

func TestApp_Clean(t *testing.T) {
	a, m := newApp(t)
	project := newProject(t)
	m.loader.EXPECT().Load(".").Return(project, nil)

	require.NoError(t, a.Clean(context.Background(), app.CleanOptions{Types: []domain.AssetType{domain.AssetTypeCSS}}))

	assert.NoFileExists(t, filepath.Join(project.Dir, "webroot", "css", "aggregate", "stale.css"))
	assert.FileExists(t, filepath.Join(project.Dir, "webroot", "css", "aggregate", ".gitkeep"))
	assert.FileExists(t, filepath.Join(project.Dir, "webroot", "js", "aggregate", "stale.js"), "unselected types are kept")
}

// channelEvents adapts a channel to the watcher event sequence.
func channelEvents(ch <-chan ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for e := range ch {
			if !yield(e) {
				return
			}
		}
	}
}

func TestApp_Watch(t *testing.T) {
	ctrl := gomock.NewController(t)
	project := newProject(t)
	log := mocks.NewMockLogger(ctrl)
	w := mocks.NewMockWatcher(ctrl)
	loader := mocks.NewMockConfigLoader(ctrl)
	layouts := mocks.NewMockLayoutLister(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan ports.WatchEvent)
	finished := make(chan string, 4)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		if strings.HasPrefix(msg, "prebuild finished") {
			finished <- msg
		}
	}).AnyTimes()

	loader.EXPECT().Load(".").Return(project, nil).MinTimes(3)
	layouts.EXPECT().Layouts(project.LayoutsDir).Return([]string{"default"}, nil).MinTimes(2)
	w.EXPECT().Start(gomock.Any(),
		filepath.Join(project.Dir, "webroot", "css"),
		filepath.Join(project.Dir, "webroot", "js"),
		project.TranslationsDir,
		project.LayoutsDir,
	).Return(nil)
	w.EXPECT().Events().Return(channelEvents(events))
	w.EXPECT().Stop().Return(nil)

	a := app.New(loader, fs.NewResolver(), fs.NewHasher(), cas.NewStore(log), mocks.NewMockToolRunner(ctrl),
		layouts, telemetry.NewNoOp(), w, log)

	done := make(chan error, 1)
	go func() {
		done <- a.Watch(ctx, app.WatchOptions{Debounce: 10 * time.Millisecond})
	}()

	waitFor := func() {
		t.Helper()
		select {
		case <-finished:
		case <-time.After(5 * time.Second):
			require.FailNow(t, "no prebuild")
		}
	}

	// Initial build.
	waitFor()
	assert.NoFileExists(t, filepath.Join(project.Dir, "webroot", "css", "aggregate", "stale.css"))

	// A change triggers a rebuild.
	source := filepath.Join(project.Dir, "webroot", "css", "base.css")
	require.NoError(t, os.WriteFile(source, []byte("body { color: red; }"), 0o600))
	events <- ports.WatchEvent{Path: source, Operation: ports.OpWrite}
	waitFor()

	matches, err := filepath.Glob(filepath.Join(project.Dir, "webroot", "css", "aggregate", "*.css"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, "body { color: red; }", string(data))

	cancel()
	close(events)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "watch did not stop")
	}
}

func TestApp_Watch_LogsFailedRebuilds(t *testing.T) {
	a, m := newApp(t)
	project := newProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	layoutErr := errors.New("permission denied")
	failed := make(chan error, 1)
	m.loader.EXPECT().Load(".").Return(project, nil).Times(2)
	m.layouts.EXPECT().Layouts(gomock.Any()).Return(nil, layoutErr)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) { failed <- err })
	m.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	events := make(chan ports.WatchEvent)
	m.watcher.EXPECT().Events().Return(channelEvents(events))
	m.watcher.EXPECT().Stop().Return(nil)
	m.telemetry.EXPECT().Close().Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- a.Watch(ctx, app.WatchOptions{Types: []domain.AssetType{domain.AssetTypeCSS}})
	}()

	select {
	case err := <-failed:
		assert.ErrorIs(t, err, layoutErr)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "no error logged")
	}

	cancel()
	close(events)
	require.NoError(t, <-done)
}

func TestApp_Watch_StartError(t *testing.T) {
	a, m := newApp(t)
	project := newProject(t)
	m.loader.EXPECT().Load(".").Return(project, nil)
	m.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(errors.New("too many open files"))

	err := a.Watch(context.Background(), app.WatchOptions{Types: []domain.AssetType{domain.AssetTypeCSS}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start watcher")
}
