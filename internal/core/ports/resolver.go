package ports

import "go.trai.ch/assets/internal/core/domain"

// PathResolver turns a package into the list of files that apply to a page.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type PathResolver interface {
	// Resolve filters the package by its rules, resolves local includes to
	// absolute paths of existing files and appends auto-discovered files.
	Resolve(pkg domain.Package, s domain.Settings, t domain.AssetType, page domain.PageContext) domain.ResolvedFiles
}

// LayoutLister enumerates the layouts of an application.
type LayoutLister interface {
	// Layouts returns the layout names found in dir, without extension.
	Layouts(dir string) ([]string, error)
}
