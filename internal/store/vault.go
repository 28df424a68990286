package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	kerrors "github.com/tidegate/vaultmirror/internal/errors"
	"github.com/tidegate/vaultmirror/internal/utils"
)

// VaultCLI implements Store by driving the vault binary through a
// CommandRunner. Every call is one blocking round trip; there is no
// caching between calls.
type VaultCLI struct {
	runner utils.CommandRunner
	binary string
	kv     int
}

// NewVaultCLI returns a Store backed by the named vault binary.
// kvVersion pins the KV engine version of the read envelope: 1 or 2
// skips autodetection, 0 detects per read from the envelope's
// version-metadata shape.
func NewVaultCLI(runner utils.CommandRunner, binary string, kvVersion int) *VaultCLI {
	return &VaultCLI{runner: runner, binary: binary, kv: kvVersion}
}

// readEnvelope is the -format=json response of vault kv get. KV v2
// nests the payload and version metadata one level deeper than v1.
type readEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type kvV2Data struct {
	Data     json.RawMessage `json:"data"`
	Metadata json.RawMessage `json:"metadata"`
}

// List implements Store.
func (v *VaultCLI) List(ctx context.Context, path Path) ([]string, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	stdout, stderr, err := v.runner.Run(ctx, v.binary, "kv", "list", "-format=json", path.Dir().String())
	if err != nil {
		return nil, classify(err, stderr, path)
	}

	var children []string
	if err := json.Unmarshal(stdout, &children); err != nil {
		return nil, fmt.Errorf("parsing list output for %s: %w", path, err)
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: %s has no children", kerrors.ErrNotFound, path)
	}
	return children, nil
}

// Read implements Store. Only the data payload of the read envelope is
// returned; version metadata and provenance fields are discarded.
func (v *VaultCLI) Read(ctx context.Context, path Path) (json.RawMessage, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	if path.IsDir() {
		return nil, fmt.Errorf("%w: cannot read directory node %s", kerrors.ErrInvalidPath, path)
	}
	stdout, stderr, err := v.runner.Run(ctx, v.binary, "kv", "get", "-format=json", path.String())
	if err != nil {
		return nil, classify(err, stderr, path)
	}

	var envelope readEnvelope
	if err := json.Unmarshal(stdout, &envelope); err != nil {
		return nil, fmt.Errorf("parsing read envelope for %s: %w", path, err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNotFound, path)
	}

	switch v.kv {
	case 1:
		return envelope.Data, nil
	case 2:
		var nested kvV2Data
		if err := json.Unmarshal(envelope.Data, &nested); err != nil {
			return nil, fmt.Errorf("parsing kv v2 payload for %s: %w", path, err)
		}
		if nested.Data == nil {
			return nil, fmt.Errorf("kv v2 envelope for %s has no data payload", path)
		}
		return nested.Data, nil
	default:
		// KV v2 wraps the payload in data.data next to data.metadata.
		// Unwrap only when the metadata block carries the engine's
		// version fields, so a v1 payload that happens to hold "data"
		// and "metadata" keys is returned whole.
		var nested kvV2Data
		if err := json.Unmarshal(envelope.Data, &nested); err == nil && nested.Data != nil && isV2Metadata(nested.Metadata) {
			return nested.Data, nil
		}
		return envelope.Data, nil
	}
}

// isV2Metadata reports whether raw is shaped like the KV v2 version
// metadata block rather than an arbitrary user object.
func isV2Metadata(raw json.RawMessage) bool {
	var md struct {
		Version     int    `json:"version"`
		CreatedTime string `json:"created_time"`
	}
	if err := json.Unmarshal(raw, &md); err != nil {
		return false
	}
	return md.Version > 0 && md.CreatedTime != ""
}

// Write implements Store. The document is piped to the CLI on stdin so
// secret values never appear in the process argument list.
func (v *VaultCLI) Write(ctx context.Context, path Path, doc json.RawMessage) error {
	if err := path.Validate(); err != nil {
		return err
	}
	if path.IsDir() {
		return fmt.Errorf("%w: cannot write directory node %s", kerrors.ErrInvalidPath, path)
	}
	_, stderr, err := v.runner.RunInput(ctx, doc, v.binary, "kv", "put", path.String(), "-")
	if err != nil {
		return classifyWrite(err, stderr, path)
	}
	return nil
}

// Delete implements Store. The vault CLI already treats deleting an
// absent path as success, which matches the idempotency contract.
func (v *VaultCLI) Delete(ctx context.Context, path Path) error {
	if err := path.Validate(); err != nil {
		return err
	}
	_, stderr, err := v.runner.Run(ctx, v.binary, "kv", "delete", path.Leaf().String())
	if err != nil {
		classified := classify(err, stderr, path)
		// Absent paths are not an error for delete.
		if strings.Contains(strings.ToLower(string(stderr)), "no value found") {
			return nil
		}
		return classified
	}
	return nil
}

// classify maps a CLI failure onto the store error kinds using the
// stderr text the vault binary emits.
func classify(err error, stderr []byte, path Path) error {
	msg := strings.ToLower(string(stderr))
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "dial tcp"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "missing client token"):
		return fmt.Errorf("%w: %s", kerrors.ErrStoreUnavailable, firstLine(stderr))
	case strings.Contains(msg, "no value found"),
		strings.Contains(msg, "no entries found"),
		strings.Contains(msg, "status code: 404"):
		return fmt.Errorf("%w: %s", kerrors.ErrNotFound, path)
	default:
		return fmt.Errorf("vault command failed for %s: %w: %s", path, err, firstLine(stderr))
	}
}

// classifyWrite additionally maps authorization and validation refusals
// onto ErrWriteRejected.
func classifyWrite(err error, stderr []byte, path Path) error {
	msg := strings.ToLower(string(stderr))
	if strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "status code: 403") ||
		strings.Contains(msg, "invalid") {
		return fmt.Errorf("%w: %s: %s", kerrors.ErrWriteRejected, path, firstLine(stderr))
	}
	return classify(err, stderr, path)
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
