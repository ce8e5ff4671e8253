package transform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
)

var alertEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", "")

type toolTransformer struct {
	method Method
	inv    domain.ToolInvocation
	runner ports.ToolRunner
	logger ports.Logger
}

func (t *toolTransformer) Method() string {
	return t.method.Name
}

// Transform runs the tool on content. A tool that cannot be started leaves
// content unchanged and reports a warning.
func (t *toolTransformer) Transform(ctx context.Context, content string) (string, []domain.Warning, error) {
	inv := t.inv
	inv.Input = content

	out, err := t.runner.Run(ctx, inv)
	if err != nil {
		if errors.Is(err, domain.ErrTempFileFailed) {
			return "", nil, err
		}
		t.logger.Warn(fmt.Sprintf("%s: %v", t.method.Name, err))
		return content, []domain.Warning{{Kind: domain.WarningTool, Method: t.method.Name, Message: err.Error()}}, nil
	}

	result := strings.TrimSuffix(out.Stdout, "\n")
	if t.method.OutputExt != "" {
		result = out.File
	}

	stderr := strings.TrimSpace(out.Stderr)
	if stderr == "" {
		return result, nil, nil
	}

	t.logger.Warn(fmt.Sprintf("%s: %s", t.method.Name, stderr))
	if t.method.AlertOnStderr {
		result += `alert("` + alertEscaper.Replace(stderr) + `");`
	}
	return result, []domain.Warning{{Kind: domain.WarningTool, Method: t.method.Name, Message: stderr}}, nil
}
