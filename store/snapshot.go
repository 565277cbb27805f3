// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/snapshot.go
// Summary: Persists panel snapshots to disk with a content hash for integrity checks.

package store

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/FrostbiteXSW/CUIPanel/panel"
)

var ErrCorrupt = errors.New("store: snapshot hash mismatch")

// Snapshot is a serialisable copy of the panel contents: the character
// layer row by row plus both color layers.
type Snapshot struct {
	Timestamp  time.Time   `json:"timestamp"`
	Hash       string      `json:"hash"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Rows       []string    `json:"rows"`
	Foreground [][]uint8   `json:"foreground"`
	Background [][]uint8   `json:"background"`
}

// SnapshotStore reads and writes snapshots at a fixed path.
type SnapshotStore struct {
	path string
	mu   sync.Mutex
}

func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Capture copies the current panel contents into a Snapshot.
func Capture(p *panel.Panel) (*Snapshot, error) {
	chars, err := p.CharBuffer()
	if err != nil {
		return nil, err
	}
	fg, bg, err := p.ColorBuffers()
	if err != nil {
		return nil, err
	}
	cols, rows := p.Size()

	s := &Snapshot{
		Timestamp:  time.Now().UTC(),
		Width:      cols,
		Height:     rows,
		Rows:       make([]string, len(chars)),
		Foreground: make([][]uint8, len(fg)),
		Background: make([][]uint8, len(bg)),
	}
	for r, line := range chars {
		s.Rows[r] = string(line)
	}
	for r := range fg {
		s.Foreground[r] = colorsToBytes(fg[r])
		s.Background[r] = colorsToBytes(bg[r])
	}
	s.Hash = s.contentHash()
	return s, nil
}

// Restore blits the snapshot back onto the panel at the origin. Content
// beyond the current panel bounds is clipped, matching blit semantics.
func (s *Snapshot) Restore(p *panel.Panel) error {
	chars := make([][]rune, len(s.Rows))
	for r, row := range s.Rows {
		chars[r] = []rune(row)
	}
	fg := make([][]panel.Color, len(s.Foreground))
	bg := make([][]panel.Color, len(s.Background))
	for r := range s.Foreground {
		fg[r] = bytesToColors(s.Foreground[r])
		bg[r] = bytesToColors(s.Background[r])
	}
	return p.BlitCells(0, 0, chars, fg, bg)
}

// Save writes the snapshot atomically: temp file, then rename.
func (st *SnapshotStore) Save(s *Snapshot) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return os.Rename(tmp, st.path)
}

// Load reads and verifies the stored snapshot.
func (st *SnapshotStore) Load() (*Snapshot, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := os.ReadFile(st.path)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Hash != s.contentHash() {
		return nil, ErrCorrupt
	}
	return &s, nil
}

func (s *Snapshot) contentHash() string {
	hasher := sha1.New()
	fmt.Fprintf(hasher, "%dx%d\n", s.Width, s.Height)
	for _, row := range s.Rows {
		hasher.Write([]byte(row))
		hasher.Write([]byte{'\n'})
	}
	for _, row := range s.Foreground {
		hasher.Write(row)
	}
	for _, row := range s.Background {
		hasher.Write(row)
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

func colorsToBytes(colors []panel.Color) []uint8 {
	out := make([]uint8, len(colors))
	for i, c := range colors {
		out[i] = uint8(c)
	}
	return out
}

func bytesToColors(bytes []uint8) []panel.Color {
	out := make([]panel.Color, len(bytes))
	for i, b := range bytes {
		out[i] = panel.Color(b)
	}
	return out
}
