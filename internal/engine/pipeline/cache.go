package pipeline

import "go.trai.ch/assets/internal/core/domain"

// contentKey identifies the transformed content of one source file.
// stages fingerprints the transform configuration the content went through.
type contentKey struct {
	path   string
	locale string
	stages string
}

// caches holds the in-process state of a Pipeline. None of the maps are
// bounded; they live until Reset.
type caches struct {
	contents    map[contentKey]string
	results     map[string]*domain.BuildResult
	preIncludes map[domain.AssetType]string
}

func newCaches() caches {
	return caches{
		contents:    make(map[contentKey]string),
		results:     make(map[string]*domain.BuildResult),
		preIncludes: make(map[domain.AssetType]string),
	}
}
