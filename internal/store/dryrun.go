package store

import (
	"context"
	"encoding/json"
)

// ReportFunc receives one line describing a would-be mutation.
type ReportFunc func(format string, args ...any)

// DryRun decorates a Store so mutating calls report instead of
// executing. Reads and listings pass through unchanged, which is what
// lets a dry-run still materialize a full mirror for diffing.
type DryRun struct {
	inner  Store
	report ReportFunc
}

// NewDryRun wraps store; every intercepted Write and Delete is handed
// to report as a single descriptive line.
func NewDryRun(store Store, report ReportFunc) *DryRun {
	return &DryRun{inner: store, report: report}
}

// List implements Store.
func (d *DryRun) List(ctx context.Context, path Path) ([]string, error) {
	return d.inner.List(ctx, path)
}

// Read implements Store.
func (d *DryRun) Read(ctx context.Context, path Path) (json.RawMessage, error) {
	return d.inner.Read(ctx, path)
}

// Write implements Store. The write is reported, never performed, so a
// dry run cannot fail for store-authorization reasons.
func (d *DryRun) Write(ctx context.Context, path Path, doc json.RawMessage) error {
	d.report("would write %s (%d bytes)", path, len(doc))
	return nil
}

// Delete implements Store. The deletion is reported, never performed.
func (d *DryRun) Delete(ctx context.Context, path Path) error {
	d.report("would delete %s", path)
	return nil
}
