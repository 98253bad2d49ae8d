package installer

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"
)

// fakeRunner records invocations and fails those whose joined command line
// appears in failures.
type fakeRunner struct {
	calls    []string
	failures map[string]error
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, line)
	if err, ok := r.failures[line]; ok {
		return []byte("fatal: something went wrong"), err
	}
	return nil, nil
}

func TestToolsMirrorClone(t *testing.T) {
	t.Parallel()

	failed := errors.New("exit status 128")
	tests := []struct {
		name      string
		dir       string
		failures  map[string]error
		want      Outcome
		wantCalls []string
	}{
		{
			name:      "default name in working directory",
			want:      Succeeded,
			wantCalls: []string{"git clone --mirror -q https://git.example.com/a.git"},
		},
		{
			name:      "explicit directory",
			dir:       "/out/repos/Repo A",
			want:      Succeeded,
			wantCalls: []string{"git clone --mirror -q https://git.example.com/a.git /out/repos/Repo A"},
		},
		{
			name:     "clone fails, git present",
			failures: map[string]error{"git clone --mirror -q https://git.example.com/a.git": failed},
			want:     OperationFailed,
			wantCalls: []string{
				"git clone --mirror -q https://git.example.com/a.git",
				"git --version",
			},
		},
		{
			name: "clone fails, git --version fails",
			failures: map[string]error{
				"git clone --mirror -q https://git.example.com/a.git": failed,
				"git --version": failed,
			},
			want: ToolMissing,
			wantCalls: []string{
				"git clone --mirror -q https://git.example.com/a.git",
				"git --version",
			},
		},
		{
			name: "executable not found skips version check",
			failures: map[string]error{
				"git clone --mirror -q https://git.example.com/a.git": &exec.Error{Name: "git", Err: exec.ErrNotFound},
			},
			want:      ToolMissing,
			wantCalls: []string{"git clone --mirror -q https://git.example.com/a.git"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{failures: tt.failures}
			tools := &Tools{Runner: runner, Git: "git", Pip: []string{"python3", "-m", "pip"}}
			if got := tools.MirrorClone(context.Background(), "https://git.example.com/a.git", tt.dir); got != tt.want {
				t.Fatalf("outcome mismatch: got=%v want=%v", got, tt.want)
			}
			if !reflect.DeepEqual(runner.calls, tt.wantCalls) {
				t.Fatalf("calls mismatch:\ngot=%q\nwant=%q", runner.calls, tt.wantCalls)
			}
		})
	}
}

func TestToolsInstallPackage(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	tools := &Tools{Runner: runner, Git: "git", Pip: []string{"python3", "-m", "pip"}}
	if got := tools.InstallPackage(context.Background(), "somepkg"); got != Succeeded {
		t.Fatalf("outcome mismatch: got=%v", got)
	}
	if want := []string{"python3 -m pip install -q somepkg"}; !reflect.DeepEqual(runner.calls, want) {
		t.Fatalf("calls mismatch: got=%q want=%q", runner.calls, want)
	}

	runner = &fakeRunner{failures: map[string]error{
		"python3 -m pip install -q somepkg": errors.New("exit status 1"),
	}}
	tools.Runner = runner
	if got := tools.InstallPackage(context.Background(), "somepkg"); got != OperationFailed {
		t.Fatalf("outcome mismatch: got=%v", got)
	}
	if runner.calls[1] != "python3 -m pip --version" {
		t.Fatalf("expected pip --version check, got %q", runner.calls)
	}

	// The configured prefix must not be modified by appending arguments.
	if !reflect.DeepEqual(tools.Pip, []string{"python3", "-m", "pip"}) {
		t.Fatalf("pip prefix mutated: %q", tools.Pip)
	}
}

func TestToolsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{failures: map[string]error{
		"git clone --mirror -q https://git.example.com/a.git": context.Canceled,
		"python3 -m pip install -q somepkg":                   errors.New("signal: killed"),
	}}
	tools := &Tools{Runner: runner, Git: "git", Pip: []string{"python3", "-m", "pip"}}

	if got := tools.MirrorClone(ctx, "https://git.example.com/a.git", ""); got != Cancelled {
		t.Fatalf("clone outcome mismatch: got=%v want=%v", got, Cancelled)
	}
	if got := tools.InstallPackage(ctx, "somepkg"); got != Cancelled {
		t.Fatalf("install outcome mismatch: got=%v want=%v", got, Cancelled)
	}
	want := []string{
		"git clone --mirror -q https://git.example.com/a.git",
		"python3 -m pip install -q somepkg",
	}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Fatalf("an interrupted run must not check tool presence:\ngot=%q\nwant=%q", runner.calls, want)
	}
}

func TestToolsEmptyPipCommand(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	tools := &Tools{Runner: runner, Git: "git"}
	if got := tools.InstallPackage(context.Background(), "somepkg"); got != ToolMissing {
		t.Fatalf("outcome mismatch: got=%v want=%v", got, ToolMissing)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("nothing should run without a pip command, got %q", runner.calls)
	}
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	if Succeeded.String() != "succeeded" || ToolMissing.String() != "tool missing" ||
		OperationFailed.String() != "operation failed" || Cancelled.String() != "cancelled" {
		t.Fatalf("unexpected outcome names")
	}
}
