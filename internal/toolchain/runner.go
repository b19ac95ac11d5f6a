// Package toolchain runs the external package tooling (npm, yarn, pnpm) that
// owns the site generator's start, build, serve, install and deploy scripts.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

var (
	// ErrToolNotFound indicates the package manager executable was not detected on PATH.
	ErrToolNotFound = errors.New("tool not found on PATH")
)

// Invocation describes one external command.
type Invocation struct {
	Name string
	Args []string
	Dir  string
	Env  map[string]string
}

// String renders the invocation the way a user would type it.
func (inv Invocation) String() string {
	return strings.TrimSpace(inv.Name + " " + strings.Join(inv.Args, " "))
}

// ExitError reports a tool that ran and exited with a non-zero status.
type ExitError struct {
	Tool string
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Runner abstracts how external commands are executed so dispatch can be
// tested without the real tooling.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// ExecRunner runs commands as child processes attached to the terminal.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// GracePeriod is how long a cancelled child gets after SIGINT before it
	// is killed.
	GracePeriod time.Duration
}

// NewExecRunner returns an ExecRunner wired to the process's stdio.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		GracePeriod: 10 * time.Second,
	}
}

// Run executes inv and waits for it. Output is streamed, not captured: dev
// servers run until interrupted.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) error {
	path, err := exec.LookPath(inv.Name)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrToolNotFound, inv.Name, err)
	}

	cmd := exec.CommandContext(ctx, path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Env = mergeEnv(os.Environ(), inv.Env)
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = r.GracePeriod

	slog.Debug("Invoking external tool", logfields.Tool(inv.Name), slog.String("args", strings.Join(inv.Args, " ")), logfields.Path(inv.Dir))
	start := time.Now()
	err = cmd.Run()
	elapsed := float64(time.Since(start).Milliseconds())

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitCode(exitErr)
			slog.Debug("External tool failed", logfields.Tool(inv.Name), logfields.ExitCode(code), logfields.DurationMS(elapsed))
			return &ExitError{Tool: inv.Name, Code: code, Err: err}
		}
		return fmt.Errorf("run %s: %w", inv.Name, err)
	}
	slog.Debug("External tool finished", logfields.Tool(inv.Name), logfields.DurationMS(elapsed))
	return nil
}

// exitCode reports the status a POSIX shell would: the exit status, or
// 128+signal for a child terminated by a signal.
func exitCode(e *exec.ExitError) int {
	if ws, ok := e.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return e.ExitCode()
}

// mergeEnv appends extra variables in a stable order; later entries win
// for duplicate keys in os/exec.
func mergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := append([]string(nil), base...)
	for _, k := range keys {
		out = append(out, k+"="+extra[k])
	}
	return out
}

// RecordingRunner records invocations instead of running them. Errors maps
// a tool argument string (Invocation.String) to the error to return.
type RecordingRunner struct {
	mu     sync.Mutex
	Calls  []Invocation
	Errors map[string]error
}

func (r *RecordingRunner) Run(_ context.Context, inv Invocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, inv)
	slog.Debug("RecordingRunner skipping execution", slog.String("invocation", inv.String()))
	return r.Errors[inv.String()]
}
