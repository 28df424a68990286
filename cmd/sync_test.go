package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/tidegate/vaultmirror/internal/store"
)

func TestSyncCommandDryRun(t *testing.T) {
	mem, fs, _ := setupTestEnvironment(t)
	seedRemote(t, mem, map[store.Path]string{
		"secret/a":   `{"x":1}`,
		"secret/b/c": `{"y":2}`,
	})
	seedWorkTree(t, fs, "/src", map[store.Path]string{
		"secret/a": `{"x":1}`,
		"secret/d": `{"z":3}`,
	})

	output, err := runCommand(t, "sync", "secret/", "--dry-run", "-w", "/src")
	if err != nil {
		t.Fatalf("Sync dry-run failed: %v\noutput: %s", err, output)
	}

	if !strings.Contains(output, "would delete secret/b/c") {
		t.Errorf("Expected a delete report, got: %s", output)
	}
	if !strings.Contains(output, "would write secret/d") {
		t.Errorf("Expected a write report, got: %s", output)
	}
	if !strings.Contains(output, "No changes made.") {
		t.Errorf("Expected the no-changes notice, got: %s", output)
	}

	// The store is untouched.
	if got := mem.Paths(); len(got) != 2 {
		t.Errorf("Dry-run must not mutate the store, got: %v", got)
	}
}

func TestSyncCommandApplies(t *testing.T) {
	mem, fs, _ := setupTestEnvironment(t)
	seedRemote(t, mem, map[store.Path]string{
		"secret/a":   `{"x":1}`,
		"secret/b/c": `{"y":2}`,
	})
	seedWorkTree(t, fs, "/src", map[store.Path]string{
		"secret/a": `{"x":1}`,
		"secret/d": `{"z":3}`,
	})

	// --yes skips the deletion prompt.
	output, err := runCommand(t, "sync", "secret/", "-w", "/src", "--yes")
	if err != nil {
		t.Fatalf("Sync failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "Deleted 1 secret(s), wrote 1 secret(s).") {
		t.Errorf("Expected the apply summary, got: %s", output)
	}

	paths := mem.Paths()
	if len(paths) != 2 || paths[0] != "secret/a" || paths[1] != "secret/d" {
		t.Errorf("Store should hold secret/a and secret/d, got: %v", paths)
	}
}

func TestSyncCommandNothingToDo(t *testing.T) {
	mem, fs, _ := setupTestEnvironment(t)
	seedRemote(t, mem, map[store.Path]string{"secret/a": `{"x":1}`})
	seedWorkTree(t, fs, "/src", map[store.Path]string{"secret/a": `{"x":1}`})

	output, err := runCommand(t, "sync", "secret/", "-w", "/src")
	if err != nil {
		t.Fatalf("Sync failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "Nothing to sync.") {
		t.Errorf("Expected the nothing-to-sync notice, got: %s", output)
	}
}

func TestSyncCommandIgnoresNonRecursiveFlag(t *testing.T) {
	// Sync must recurse even when --recursive is absent, so the
	// deletion set covers the whole subtree.
	mem, fs, _ := setupTestEnvironment(t)
	seedRemote(t, mem, map[store.Path]string{"secret/deep/nested/leaf": `{"y":2}`})
	seedWorkTree(t, fs, "/src", map[store.Path]string{"secret/a": `{"x":1}`})

	_, err := runCommand(t, "sync", "secret/", "-w", "/src", "--yes")
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if _, err := mem.Read(context.Background(), "secret/deep/nested/leaf"); err == nil {
		t.Error("Nested leaf should have been deleted despite no --recursive flag")
	}
}
