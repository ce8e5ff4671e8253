// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/assets/internal/core/domain"
)

// ToolRunner runs external text transforms.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type ToolRunner interface {
	// Run writes the invocation input to a temporary file, runs the tool on it
	// and returns its output. The temporary file and any sibling output file
	// are removed before Run returns.
	//
	// A tool exiting non-zero is not an error: its output is returned and the
	// caller decides how to surface stderr. Errors are reserved for tools that
	// could not be started or for interchange file failures.
	Run(ctx context.Context, inv domain.ToolInvocation) (domain.ToolOutput, error)
}
