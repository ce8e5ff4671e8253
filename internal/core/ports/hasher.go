package ports

import "go.trai.ch/assets/internal/core/domain"

// Hasher derives cache identities.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ArtifactKey derives the key of a package from its ordered file list and
	// the files' modification times.
	ArtifactKey(paths []string) (domain.ArtifactKey, error)

	// Digest hashes the given parts into a short hex string.
	Digest(parts ...string) string
}
