package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assets/internal/adapters/cas"
	"go.trai.ch/assets/internal/adapters/fs"
	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports/mocks"
	"go.trai.ch/assets/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

// newRegistryPipeline builds a pipeline whose transforms come from a
// registry mock.
func newRegistryPipeline(t *testing.T, base domain.Overrides) (*pipeline.Pipeline, *mocks.MockTransformRegistry, string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	registry := mocks.NewMockTransformRegistry(ctrl)

	dir := t.TempDir()
	roots := domain.Overrides{CSS: domain.TypeOverrides{Root: domain.Ptr("css")}}
	merged, err := roots.Merge(base)
	require.NoError(t, err)

	p := pipeline.New(fs.NewResolver(), fs.NewHasher(), cas.NewStore(log), registry,
		mocks.NewMockTranslator(ctrl), log, pipeline.Config{Base: merged, Dir: dir})
	return p, registry, dir
}

func transformer(t *testing.T, method string, fn func(string) (string, []domain.Warning, error)) *mocks.MockTransformer {
	t.Helper()
	m := mocks.NewMockTransformer(gomock.NewController(t))
	m.EXPECT().Method().Return(method).AnyTimes()
	m.EXPECT().Transform(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, content string) (string, []domain.Warning, error) {
			return fn(content)
		}).AnyTimes()
	return m
}

func TestChain_PreprocessorRunsBeforeMinifier(t *testing.T) {
	p, registry, dir := newRegistryPipeline(t, domain.Overrides{})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "a.css"), []byte("a { color: red; }"), 0o600))

	registry.EXPECT().Preprocessor("less").Return(transformer(t, "less",
		func(s string) (string, []domain.Warning, error) {
			return s + " /* less */", []domain.Warning{{Kind: domain.WarningTool, Method: "less", Message: "deprecated"}}, nil
		}), nil)
	registry.EXPECT().Minifier("cssmin").Return(transformer(t, "cssmin",
		func(s string) (string, []domain.Warning, error) {
			return strings.ToUpper(s), nil, nil
		}), nil)

	res, err := p.IncludeFiles(context.Background(),
		domain.Package{{Include: "a.css", Rules: "*:*"}},
		pipeline.Request{Type: domain.AssetTypeCSS, Page: page})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "css", filepath.FromSlash(res.Artifact)))
	require.NoError(t, err)
	assert.Equal(t, "A { COLOR: RED; } /* LESS */", string(data))
	assert.Equal(t, []domain.Warning{{Kind: domain.WarningTool, Method: "less", Message: "deprecated"}}, res.Warnings)
}

func TestChain_TransformErrorFailsBuild(t *testing.T) {
	p, registry, dir := newRegistryPipeline(t, domain.Overrides{Minify: domain.Ptr(false)})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "a.css"), []byte("a {}"), 0o600))

	toolErr := errors.New("lessc: executable file not found")
	registry.EXPECT().Preprocessor("less").Return(transformer(t, "less",
		func(string) (string, []domain.Warning, error) {
			return "", nil, toolErr
		}), nil)

	_, err := p.IncludeFiles(context.Background(),
		domain.Package{{Include: "a.css", Rules: "*:*"}},
		pipeline.Request{Type: domain.AssetTypeCSS, Page: page})
	require.ErrorIs(t, err, toolErr)

	entries, err := os.ReadDir(filepath.Join(dir, "css", domain.AggregateDirName))
	if err == nil {
		assert.Empty(t, entries, "nothing is written for a failed build")
	}
}
