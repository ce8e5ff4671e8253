package ports

import (
	"context"

	"go.trai.ch/assets/internal/core/domain"
)

// Transformer is one preprocessing or minification method.
type Transformer interface {
	// Method returns the configured method name.
	Method() string
	// Transform converts content. Tool diagnostics are returned as warnings.
	Transform(ctx context.Context, content string) (string, []domain.Warning, error)
}

// TransformRegistry maps method names to transformers.
//
//go:generate go run go.uber.org/mock/mockgen -source=transformer.go -destination=mocks/mock_transformer.go -package=mocks
type TransformRegistry interface {
	// Preprocessor returns the language conversion for method.
	// Unknown methods return domain.ErrUnknownMethod.
	Preprocessor(method string) (Transformer, error)
	// Minifier returns the minifier for method.
	// Unknown methods return domain.ErrUnknownMethod.
	Minifier(method string) (Transformer, error)
}
