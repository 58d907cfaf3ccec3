// Package config resolves wovend's TOML configuration file path, playing
// the same role the teacher's xdg dependency played for its own config
// file: find (or create) a per-user config file and hand its path to
// cli-altsrc's TOML source. The teacher's xdg module is specific to its
// own project, so this package reimplements just the "resolve, create if
// absent" pattern against the standard library instead.
package config

import (
	"os"
	"path/filepath"
)

const (
	dirName  = "wovend"
	fileName = "config.toml"
)

// FilePath returns the path to wovend's configuration file under the
// user's config directory, creating an empty file (and its parent
// directory) if none exists yet.
func FilePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(base, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return "", err
	}
	_ = f.Close()

	return path, nil
}
