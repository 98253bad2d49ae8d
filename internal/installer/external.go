package installer

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/Team997Coders/frcInstallTool/internal/logger"
)

// Outcome is the result of shelling out to git or pip.
type Outcome int

const (
	Succeeded Outcome = iota
	ToolMissing
	OperationFailed
	// Cancelled means the run's context ended while the tool was running.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case ToolMissing:
		return "tool missing"
	case OperationFailed:
		return "operation failed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Runner executes a command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))
	return cmd.CombinedOutput()
}

// ToolInvoker performs the git and pip acquisitions.
type ToolInvoker interface {
	MirrorClone(ctx context.Context, url, dir string) Outcome
	InstallPackage(ctx context.Context, identifier string) Outcome
}

// Tools invokes git and the package manager through a Runner.
// - Git: git executable.
// - Pip: package manager command prefix, e.g. [python3, -m, pip].
type Tools struct {
	Runner Runner
	Git    string
	Pip    []string
}

// MirrorClone runs `git clone --mirror -q url [dir]`. An empty dir lets git
// pick the repository's default name in the working directory.
func (t *Tools) MirrorClone(ctx context.Context, url, dir string) Outcome {
	args := []string{"clone", "--mirror", "-q", url}
	if dir != "" {
		args = append(args, dir)
	}
	return t.invoke(ctx, t.Git, args, []string{"--version"})
}

// InstallPackage runs `<pip> install -q identifier`. An empty Pip command
// counts as a missing tool.
func (t *Tools) InstallPackage(ctx context.Context, identifier string) Outcome {
	if len(t.Pip) == 0 {
		return ToolMissing
	}
	name, prefix := t.Pip[0], t.Pip[1:]
	args := append(append([]string{}, prefix...), "install", "-q", identifier)
	check := append(append([]string{}, prefix...), "--version")
	return t.invoke(ctx, name, args, check)
}

// invoke runs name with args. On failure it runs name with checkArgs to tell a
// missing tool apart from a failed operation, unless ctx has already ended.
func (t *Tools) invoke(ctx context.Context, name string, args, checkArgs []string) Outcome {
	output, err := t.Runner.Run(ctx, name, args...)
	if err == nil {
		return Succeeded
	}
	logger.Debug("[DEBUG] %s %s failed: %v\nOutput: %s\n", name, strings.Join(args, " "), err, output)

	if ctx.Err() != nil {
		return Cancelled
	}
	if errors.Is(err, exec.ErrNotFound) {
		return ToolMissing
	}
	if _, cerr := t.Runner.Run(ctx, name, checkArgs...); cerr != nil {
		logger.Debug("[DEBUG] %s --version failed: %v\n", name, cerr)
		return ToolMissing
	}
	return OperationFailed
}
