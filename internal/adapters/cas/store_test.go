package cas_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/assets/internal/adapters/cas"
	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newStore(t *testing.T) *cas.Store {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return cas.NewStore(log)
}

func seed(t *testing.T, root string, names ...string) {
	t.Helper()
	dir := filepath.Join(root, domain.AggregateDirName)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0o600))
	}
}

func listAggregate(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(root, domain.AggregateDirName))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestStore_WriteAndExists(t *testing.T) {
	root := t.TempDir()
	store := newStore(t)

	exists, err := store.Exists(root, "aggregate/a_b.min.css")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Write(root, "aggregate/a_b.min.css", "a{}"))

	exists, err = store.Exists(root, "aggregate/a_b.min.css")
	require.NoError(t, err)
	assert.True(t, exists)

	path := filepath.Join(root, "aggregate", "a_b.min.css")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a{}", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.ArtifactPerm), info.Mode().Perm())

	assert.Equal(t, []string{"a_b.min.css"}, listAggregate(t, root), "no temporary files are left behind")
}

func TestStore_WriteOverwrites(t *testing.T) {
	root := t.TempDir()
	store := newStore(t)

	require.NoError(t, store.Write(root, "aggregate/a.js", "one"))
	require.NoError(t, store.Write(root, "aggregate/a.js", "two"))

	data, err := os.ReadFile(filepath.Join(root, "aggregate", "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestStore_WriteFailsWhenDirCannotBeCreated(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "aggregate"), []byte("not a dir"), 0o600))

	err := newStore(t).Write(root, "aggregate/a.css", "a{}")
	assert.ErrorIs(t, err, domain.ErrArtifactDirFailed)
}

func TestStore_CleanUsesLiteralPrefix(t *testing.T) {
	root := t.TempDir()
	seed(t, root, "abc_1.css", "abcd.css", "xabc.css")

	newStore(t).Clean(root, "abc")

	assert.Equal(t, []string{"xabc.css"}, listAggregate(t, root))
}

func TestStore_CleanMissingDir(t *testing.T) {
	assert.NotPanics(t, func() {
		newStore(t).Clean(t.TempDir(), "abc")
	})
}

func TestStore_EmptyKeepsDotFiles(t *testing.T) {
	root := t.TempDir()
	seed(t, root, ".gitignore", "a.css", "b.min.css")

	require.NoError(t, newStore(t).Empty(root))

	assert.Equal(t, []string{".gitignore"}, listAggregate(t, root))
}

func TestStore_EmptyMissingDir(t *testing.T) {
	assert.NoError(t, newStore(t).Empty(t.TempDir()))
}
