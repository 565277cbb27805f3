// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for the panel defaults file.

package config

import (
	"os"
	"path/filepath"
)

const configName = "cuipanel.json"

// pathOverride redirects the defaults file, mainly for tests. The
// CUIPANEL_CONFIG environment variable does the same for users.
var pathOverride string

func configPath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	if env := os.Getenv("CUIPANEL_CONFIG"); env != "" {
		return env, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "cuipanel", configName), nil
}
