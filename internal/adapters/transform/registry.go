// Package transform provides the preprocessor and minifier methods of the
// asset pipeline. Every method shells out to a configurable tool.
package transform

import (
	"fmt"
	"time"

	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TransformRegistry = (*Registry)(nil)

// Registry maps method names to tool-backed transformers.
type Registry struct {
	runner  ports.ToolRunner
	logger  ports.Logger
	methods map[string]Method
	tools   map[string]domain.ToolSpec
	dir     string
}

// NewRegistry creates a Registry with the built-in methods. Tools run in dir;
// tools overrides the command, environment and timeout per method name.
func NewRegistry(runner ports.ToolRunner, logger ports.Logger, dir string, tools map[string]domain.ToolSpec) *Registry {
	r := &Registry{
		runner:  runner,
		logger:  logger,
		methods: make(map[string]Method),
		tools:   tools,
		dir:     dir,
	}
	for _, m := range Builtins() {
		r.Register(m)
	}
	return r
}

// Register adds or replaces a method.
func (r *Registry) Register(m Method) {
	r.methods[m.Name] = m
}

// Preprocessor returns the language conversion for method.
func (r *Registry) Preprocessor(method string) (ports.Transformer, error) {
	return r.lookup(method, KindPreprocessor)
}

// Minifier returns the minifier for method.
func (r *Registry) Minifier(method string) (ports.Transformer, error) {
	return r.lookup(method, KindMinifier)
}

func (r *Registry) lookup(method string, kind Kind) (ports.Transformer, error) {
	m, ok := r.methods[method]
	if !ok || m.Kind != kind {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownMethod, "no such transform"), "method", method)
	}
	return &toolTransformer{
		method: m,
		inv:    r.invocation(m),
		runner: r.runner,
		logger: r.logger,
	}, nil
}

// invocation applies the configured tool spec to the method defaults.
func (r *Registry) invocation(m Method) domain.ToolInvocation {
	inv := domain.ToolInvocation{
		Command:   m.Command,
		InputExt:  m.InputExt,
		OutputExt: m.OutputExt,
		Dir:       r.dir,
	}
	spec, ok := r.tools[m.Name]
	if !ok {
		return inv
	}
	if len(spec.Command) > 0 {
		inv.Command = spec.Command
	}
	inv.Env = spec.Env
	if spec.Timeout != "" {
		d, err := time.ParseDuration(spec.Timeout)
		if err != nil {
			r.logger.Warn(fmt.Sprintf("ignoring invalid timeout %q for %s: %v", spec.Timeout, m.Name, err))
		} else {
			inv.Timeout = d
		}
	}
	return inv
}
