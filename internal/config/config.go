// Package config loads the optional TOML defaults file. Flags always win
// over file values; the file only exists so a workstation that provisions
// drives regularly does not repeat the same flags every run.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// Defaults mirrors the TOML defaults file. Zero values mean "not set";
// the caller falls back to its built-in defaults for those.
type Defaults struct {
	MountBase  string `toml:"mount-base"`
	BootSizeMB int    `toml:"boot-size-mb"`
	PayloadFS  string `toml:"payload-fs"`
	Owner      string `toml:"owner"`
	AllowFetch *bool  `toml:"allow-fetch"`
	WimbootURL string `toml:"wimboot-url"`
	ISODir     string `toml:"iso-dir"`
}

// DefaultPath returns the conventional defaults file location.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "multistick", "config.toml"), nil
}

// Load reads and parses the defaults file at path. A missing file yields
// empty defaults, not an error; the file is optional.
func Load(path string) (Defaults, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Defaults{}, fmt.Errorf("expand %s: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if os.IsNotExist(err) {
		return Defaults{}, nil
	}
	if err != nil {
		return Defaults{}, fmt.Errorf("read defaults file %s: %w", expanded, err)
	}
	return Parse(data, expanded)
}

// Parse decodes TOML defaults, rejecting unknown keys so typos surface
// instead of silently applying built-ins.
func Parse(data []byte, source string) (Defaults, error) {
	var d Defaults
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return Defaults{}, fmt.Errorf("parse defaults file %s: %w", source, err)
	}
	if d.PayloadFS != "" && d.PayloadFS != "ext4" && d.PayloadFS != "exfat" {
		return Defaults{}, fmt.Errorf("defaults file %s: payload-fs must be ext4 or exfat, got %q", source, d.PayloadFS)
	}
	if d.BootSizeMB < 0 {
		return Defaults{}, fmt.Errorf("defaults file %s: boot-size-mb must be positive", source)
	}
	return d, nil
}
