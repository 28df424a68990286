// Package config builds the immutable run configuration for vaultmirror.
//
// A Config is constructed exactly once at command startup, from CLI flags
// layered over an optional TOML defaults file, and passed by value into
// every workflow. Core algorithms never read environment variables or
// other ambient process state.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultVaultBinary is the store CLI invoked when no override is configured.
const DefaultVaultBinary = "vault"

// DefaultEditor is used when neither the defaults file nor $EDITOR is set.
const DefaultEditor = "vi"

// Config holds one invocation's settings. It is immutable after New.
type Config struct {
	// WorkDir is the root of the local working tree.
	WorkDir string

	// Recursive controls whether dump and import descend into
	// directory nodes. Sync ignores it and always recurses.
	Recursive bool

	// DryRun reports mutating operations instead of performing them.
	DryRun bool

	// Verbose and Quiet control logging and spinner behavior.
	Verbose bool
	Quiet   bool

	// VaultBinary is the name or path of the store CLI.
	VaultBinary string

	// KVVersion pins the KV engine version of the store's read
	// envelope: 1 or 2 skips autodetection, 0 detects per read.
	KVVersion int

	// Editor is the interactive editor for the edit command.
	Editor string
}

// FileDefaults is the TOML shape of the optional defaults file at
// ~/.config/vaultmirror/config.toml.
type FileDefaults struct {
	WorkDir     string `toml:"work_dir"`
	VaultBinary string `toml:"vault_binary"`
	KVVersion   int    `toml:"kv_version"`
	Editor      string `toml:"editor"`
}

// Flags carries the raw flag values from the CLI layer.
type Flags struct {
	WorkDir   string
	Recursive bool
	DryRun    bool
	Verbose   bool
	Quiet     bool
}

// DefaultsPath returns the location of the defaults file, or empty when
// the user's config directory cannot be determined.
func DefaultsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vaultmirror", "config.toml")
}

// LoadDefaults reads the TOML defaults file at path. A missing file is
// not an error; it yields zero defaults.
func LoadDefaults(path string) (FileDefaults, error) {
	var defaults FileDefaults
	if path == "" {
		return defaults, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return defaults, nil
	}
	if _, err := toml.DecodeFile(path, &defaults); err != nil {
		return FileDefaults{}, err
	}
	return defaults, nil
}

// SaveDefaults writes the defaults file, creating parent directories.
func SaveDefaults(path string, defaults FileDefaults) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(defaults)
}

// New resolves flags over file defaults over built-ins into a Config.
// Flag values win when set; the editor additionally falls back to
// $EDITOR before the built-in default, matching common CLI convention.
func New(flags Flags, defaults FileDefaults, editorEnv string) Config {
	cfg := Config{
		WorkDir:     flags.WorkDir,
		Recursive:   flags.Recursive,
		DryRun:      flags.DryRun,
		Verbose:     flags.Verbose,
		Quiet:       flags.Quiet,
		VaultBinary: defaults.VaultBinary,
		KVVersion:   defaults.KVVersion,
		Editor:      defaults.Editor,
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = defaults.WorkDir
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.VaultBinary == "" {
		cfg.VaultBinary = DefaultVaultBinary
	}
	if cfg.Editor == "" {
		cfg.Editor = editorEnv
	}
	if cfg.Editor == "" {
		cfg.Editor = DefaultEditor
	}
	return cfg
}
