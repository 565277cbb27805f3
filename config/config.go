// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: On-disk defaults for panel construction options.

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/FrostbiteXSW/CUIPanel/panel"
)

// File is the JSON shape of the defaults file. Absent fields keep the
// library defaults.
type File struct {
	UpdateRateMS  int    `json:"update_rate_ms"`
	PassiveUpdate bool   `json:"passive_update"`
	CursorVisible bool   `json:"cursor_visible"`
	StartPaused   bool   `json:"start_paused"`
	Title         string `json:"title"`
}

var (
	mu      sync.RWMutex
	once    sync.Once
	loaded  File
	loadErr error
)

// Err returns the most recent load error, if any. A missing file is not an
// error; the built-in defaults apply.
func Err() error {
	once.Do(load)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// Options merges the defaults file over the provided options. Zero-valued
// fields of opts are filled from the file; explicit values win.
func Options(opts panel.Options) panel.Options {
	once.Do(load)
	mu.RLock()
	defer mu.RUnlock()

	if opts.UpdateRate == 0 && loaded.UpdateRateMS > 0 {
		opts.UpdateRate = time.Duration(loaded.UpdateRateMS) * time.Millisecond
	}
	if !opts.PassiveUpdate {
		opts.PassiveUpdate = loaded.PassiveUpdate
	}
	if !opts.CursorVisible {
		opts.CursorVisible = loaded.CursorVisible
	}
	if !opts.StartPaused {
		opts.StartPaused = loaded.StartPaused
	}
	if opts.Title == "" {
		opts.Title = loaded.Title
	}
	return opts
}

// Reload discards the cached file and reads it again on next use.
func Reload() {
	mu.Lock()
	loaded = File{}
	loadErr = nil
	once = sync.Once{}
	mu.Unlock()
}

func load() {
	mu.Lock()
	defer mu.Unlock()

	path, err := configPath()
	if err != nil {
		log.Printf("config: failed to resolve config path: %v", err)
		loadErr = err
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("config: failed to read %s: %v", path, err)
			loadErr = err
		}
		return
	}
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Printf("config: failed to parse %s: %v", path, err)
		loaded = File{}
		loadErr = err
	}
}
