package utils

import (
	"context"
	"fmt"
	"strings"
)

// MockCommandRunner implements CommandRunner for testing.
// Records all command invocations and returns pre-configured results.
type MockCommandRunner struct {
	// commands maps "name arg1 arg2 ..." to MockResult.
	commands map[string]MockResult

	// missing holds program names LookPath should fail for.
	missing map[string]bool

	// defaultError is returned for unexpected commands.
	defaultError error

	// Calls records all command invocations in order.
	Calls []CommandCall
}

// MockResult holds the pre-configured output and error for a command.
type MockResult struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// CommandCall records a single command invocation.
type CommandCall struct {
	Name  string
	Args  []string
	Input []byte
	Key   string // "name arg1 arg2 ..."
}

// NewMockCommandRunner creates a mock that fails on unexpected commands.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		commands:     make(map[string]MockResult),
		missing:      make(map[string]bool),
		defaultError: fmt.Errorf("unexpected command"),
	}
}

// Expect registers a command and its expected result.
// cmd format: "name arg1 arg2 ..." (space-separated).
func (m *MockCommandRunner) Expect(cmd string, stdout, stderr []byte, err error) *MockCommandRunner {
	m.commands[cmd] = MockResult{Stdout: stdout, Stderr: stderr, Err: err}
	return m
}

// ExpectSuccess is shorthand for Expect(cmd, stdout, nil, nil).
func (m *MockCommandRunner) ExpectSuccess(cmd string, stdout []byte) *MockCommandRunner {
	return m.Expect(cmd, stdout, nil, nil)
}

// ExpectFailure is shorthand for Expect(cmd, nil, stderr, err).
func (m *MockCommandRunner) ExpectFailure(cmd string, stderr []byte, err error) *MockCommandRunner {
	return m.Expect(cmd, nil, stderr, err)
}

// AllowUnexpected makes unregistered commands succeed with empty output
// instead of failing, for tests that exercise code above the runner.
func (m *MockCommandRunner) AllowUnexpected() *MockCommandRunner {
	m.defaultError = nil
	return m
}

// MarkMissing makes LookPath fail for the named program.
func (m *MockCommandRunner) MarkMissing(name string) *MockCommandRunner {
	m.missing[name] = true
	return m
}

func (m *MockCommandRunner) record(name string, args []string, input []byte) string {
	key := name
	if len(args) > 0 {
		key = name + " " + strings.Join(args, " ")
	}
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args, Input: input, Key: key})
	return key
}

// Run implements CommandRunner.
func (m *MockCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return m.RunInput(ctx, nil, name, args...)
}

// RunInput implements CommandRunner.
func (m *MockCommandRunner) RunInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, []byte, error) {
	key := m.record(name, args, input)
	if result, ok := m.commands[key]; ok {
		return result.Stdout, result.Stderr, result.Err
	}
	if m.defaultError != nil {
		return nil, nil, fmt.Errorf("%w: %s", m.defaultError, key)
	}
	return nil, nil, nil
}

// RunInteractive implements CommandRunner.
func (m *MockCommandRunner) RunInteractive(ctx context.Context, name string, args ...string) error {
	key := m.record(name, args, nil)
	if result, ok := m.commands[key]; ok {
		return result.Err
	}
	if m.defaultError != nil {
		return fmt.Errorf("%w: %s", m.defaultError, key)
	}
	return nil
}

// LookPath implements CommandRunner.
func (m *MockCommandRunner) LookPath(name string) error {
	if m.missing[name] {
		return fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return nil
}
