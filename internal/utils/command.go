package utils

import (
	"bytes"
	"context"
	"os"
	"os/exec"
)

// CommandRunner executes external commands. Every call to an external
// program (the vault binary, the editor) goes through this interface so
// the reconciliation logic stays testable without any tools installed.
type CommandRunner interface {
	// Run executes a command and returns stdout. Stderr is returned
	// separately so callers can classify store failures from it.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

	// RunInput executes a command with the given bytes on stdin.
	RunInput(ctx context.Context, input []byte, name string, args ...string) (stdout, stderr []byte, err error)

	// RunInteractive executes a command connected to the caller's
	// stdin/stdout/stderr, for programs that take over the terminal.
	RunInteractive(ctx context.Context, name string, args ...string) error

	// LookPath reports whether the named program resolves on PATH.
	LookPath(name string) error
}

// ExecRunner implements CommandRunner with os/exec.
type ExecRunner struct{}

// NewRunner returns a CommandRunner backed by os/exec.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return r.RunInput(ctx, nil, name, args...)
}

func (r *ExecRunner) RunInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if input != nil {
		cmd.Stdin = bytes.NewReader(input)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

func (r *ExecRunner) RunInteractive(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (r *ExecRunner) LookPath(name string) error {
	_, err := exec.LookPath(name)
	return err
}
