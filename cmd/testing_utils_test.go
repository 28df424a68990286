package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/spf13/afero"

	"github.com/tidegate/vaultmirror/internal/config"
	"github.com/tidegate/vaultmirror/internal/localtree"
	"github.com/tidegate/vaultmirror/internal/store"
	"github.com/tidegate/vaultmirror/internal/utils"
)

// setupTestEnvironment swaps the runner, filesystem, and store factory
// for fakes and restores everything when the test finishes.
func setupTestEnvironment(t *testing.T) (*store.Memory, afero.Fs, *utils.MockCommandRunner) {
	t.Helper()

	os.Setenv("NO_COLOR", "1")
	t.Cleanup(func() { os.Unsetenv("NO_COLOR") })

	originalRunner := runner
	originalFs := baseFs
	originalFactory := newStore
	t.Cleanup(func() {
		runner = originalRunner
		baseFs = originalFs
		newStore = originalFactory
		ResetGlobalState()
	})

	mem := store.NewMemory()
	fs := afero.NewMemMapFs()
	mock := utils.NewMockCommandRunner().AllowUnexpected()

	SetRunner(mock)
	SetFs(fs)
	SetStoreFactory(func(config.Config) store.Store { return mem })
	ResetGlobalState()

	return mem, fs, mock
}

// seedWorkTree writes documents into a tree on the test filesystem.
func seedWorkTree(t *testing.T, fs afero.Fs, root string, docs map[store.Path]string) {
	t.Helper()
	tree := localtree.New(fs, root)
	for p, doc := range docs {
		if err := tree.WriteDoc(p, []byte(doc)); err != nil {
			t.Fatalf("Failed to seed work tree at %s: %v", p, err)
		}
	}
}

// seedRemote writes documents into the fake store.
func seedRemote(t *testing.T, mem *store.Memory, docs map[store.Path]string) {
	t.Helper()
	for p, doc := range docs {
		if err := mem.Write(context.Background(), p, []byte(doc)); err != nil {
			t.Fatalf("Failed to seed store at %s: %v", p, err)
		}
	}
}

// runCommand executes the root command with args, capturing stdout and
// stderr combined.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	originalStdout := os.Stdout
	originalStderr := os.Stderr
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, stdoutReader) //nolint:errcheck
		outputChan <- buf.String()
	}()
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, stderrReader) //nolint:errcheck
		outputChan <- buf.String()
	}()

	RootCmd.SetArgs(args)
	err := RootCmd.Execute()

	stdoutWriter.Close()
	stderrWriter.Close()
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-outputChan + <-outputChan, err
}
