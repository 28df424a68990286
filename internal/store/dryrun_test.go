package store

import (
	"context"
	"fmt"
	"testing"
)

func TestDryRunInterceptsMutations(t *testing.T) {
	ctx := context.Background()
	inner := seedMemory(t, map[Path]string{"secret/a": `{"x":1}`})

	var lines []string
	d := NewDryRun(inner, func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})

	if err := d.Write(ctx, "secret/new", []byte(`{"z":3}`)); err != nil {
		t.Fatalf("Dry-run write should never fail, got: %v", err)
	}
	if err := d.Delete(ctx, "secret/a"); err != nil {
		t.Fatalf("Dry-run delete should never fail, got: %v", err)
	}

	// The inner store is untouched.
	if got := inner.Paths(); len(got) != 1 || got[0] != "secret/a" {
		t.Errorf("Inner store was mutated: %v", got)
	}

	if len(lines) != 2 {
		t.Fatalf("Expected 2 report lines, got: %v", lines)
	}
	if lines[0] != "would write secret/new (9 bytes)" {
		t.Errorf("Unexpected write report: %s", lines[0])
	}
	if lines[1] != "would delete secret/a" {
		t.Errorf("Unexpected delete report: %s", lines[1])
	}
}

func TestDryRunReadsPassThrough(t *testing.T) {
	ctx := context.Background()
	inner := seedMemory(t, map[Path]string{"secret/a": `{"x":1}`})
	d := NewDryRun(inner, func(string, ...any) {})

	doc, err := d.Read(ctx, "secret/a")
	if err != nil {
		t.Fatalf("Read should pass through, got: %v", err)
	}
	if string(doc) != `{"x":1}` {
		t.Errorf("Unexpected document: %s", doc)
	}

	children, err := d.List(ctx, "secret/")
	if err != nil {
		t.Fatalf("List should pass through, got: %v", err)
	}
	if len(children) != 1 || children[0] != "a" {
		t.Errorf("Unexpected children: %v", children)
	}
}
