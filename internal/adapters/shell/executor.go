// Package shell runs external transform tools such as lessc or coffee.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/assets/internal/core/domain"
	"go.trai.ch/assets/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolRunner = (*Runner)(nil)

// waitDelay bounds how long output pipes are drained after a tool is killed.
const waitDelay = time.Second

// Runner implements ports.ToolRunner using os/exec and interchange files.
type Runner struct {
	logger ports.Logger
	tmpDir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRunner creates a Runner that places interchange files in tmpDir.
// An empty tmpDir uses the system temporary directory.
func NewRunner(logger ports.Logger, tmpDir string) *Runner {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Runner{
		logger: logger,
		tmpDir: tmpDir,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Run writes the input to <tmpDir>/<hash>.<ext>, runs the tool with the file
// path as its last argument and collects its output.
func (r *Runner) Run(ctx context.Context, inv domain.ToolInvocation) (domain.ToolOutput, error) {
	if len(inv.Command) == 0 {
		return domain.ToolOutput{}, zerr.Wrap(domain.ErrToolFailed, "empty tool command")
	}

	input := r.inputPath(inv)
	unlock := r.lock(input)
	defer unlock()

	if err := os.WriteFile(input, []byte(inv.Input), domain.TempFilePerm); err != nil {
		return domain.ToolOutput{}, zerr.With(zerr.Wrap(domain.ErrTempFileFailed, err.Error()), "path", input)
	}
	defer r.remove(input)

	var output string
	if inv.OutputExt != "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + inv.OutputExt
		defer r.remove(output)
	}

	timeout := inv.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultToolTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name := inv.Command[0]
	args := append(append([]string{}, inv.Command[1:]...), input)
	env := resolveEnvironment(os.Environ(), inv.Env)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // tool command comes from project config
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Env = env
	cmd.Dir = inv.Dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || ctx.Err() != nil {
			return domain.ToolOutput{Stdout: stdout.String(), Stderr: stderr.String()},
				zerr.With(zerr.With(zerr.Wrap(domain.ErrToolFailed, err.Error()), "tool", name), "timeout", timeout.String())
		}
	}

	out := domain.ToolOutput{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if output != "" {
		//nolint:gosec // path is derived from the interchange file
		if data, err := os.ReadFile(output); err == nil {
			out.File = string(data)
		}
	}
	return out, nil
}

// inputPath names the interchange file by the hash of its content.
func (r *Runner) inputPath(inv domain.ToolInvocation) string {
	name := fmt.Sprintf("%016x", xxhash.Sum64String(inv.Input))
	if inv.InputExt != "" {
		name += "." + inv.InputExt
	}
	return filepath.Join(r.tmpDir, name)
}

// lock serializes runs that share an interchange file.
func (r *Runner) lock(path string) func() {
	r.mu.Lock()
	m, ok := r.locks[path]
	if !ok {
		m = &sync.Mutex{}
		r.locks[path] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (r *Runner) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.logger.Warn(fmt.Sprintf("could not remove %s: %v", path, err))
	}
}

// resolveEnvironment merges the tool environment over the system environment.
// PATH entries of the tool are prepended to the system PATH.
func resolveEnvironment(sysEnv, toolEnv []string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for _, entry := range toolEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
