package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assets/internal/app"
	"go.trai.ch/assets/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func graftProvider(ctx context.Context) (*app.Components, func(), error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	return c, func() {}, err
}

func TestRun_Build(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"assets.yaml": `settings:
  minify: false
  css:
    preprocessor:
      method: ""
css:
  base.css: "*:*"
`,
		"webroot/css/base.css": "body {}",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(),
		[]string{"build", "-c", dir, "--controller", "users", "--action", "index"},
		&stdout, &stderr, graftProvider)

	assert.Equal(t, 0, code, stderr.String())
	assert.Regexp(t, `^/css/aggregate/[0-9a-f]{16}_[0-9a-f]{16}\.css\n$`, stdout.String())
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"version"}, &stdout, &stderr, graftProvider)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "assets version")
}

func TestRun_ProviderError(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"version"}, new(bytes.Buffer), &stderr,
		func(context.Context) (*app.Components, func(), error) {
			return nil, nil, errors.New("wiring failed")
		})

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error: wiring failed")
}

func TestRun_CommandErrorIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any())

	provider := func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: &app.App{}, Logger: log}, func() {}, nil
	}

	code := run(context.Background(), []string{"build", "--type", "svg"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, code)
}
