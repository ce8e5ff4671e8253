package ports

// ArtifactStore persists built artifacts below a type root.
// Names are relative to root, e.g. "aggregate/<name>_<mtime>.min.css".
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Exists reports whether the artifact is already on disk.
	Exists(root, name string) (bool, error)

	// Write stores content atomically under name.
	Write(root, name, content string) error

	// Clean removes every artifact in the aggregate directory whose file
	// name starts with prefix. Failures are logged, not returned.
	Clean(root, prefix string)

	// Empty removes every artifact in the aggregate directory except dot-files.
	Empty(root string) error
}
