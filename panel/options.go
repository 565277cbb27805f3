// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/options.go
// Summary: Construction options and their defaults.

package panel

import "time"

// Update rate bounds. Rates outside this window are rejected with
// ErrUpdateRate.
const (
	MinUpdateRate = 10 * time.Millisecond
	MaxUpdateRate = 10 * time.Second

	// DefaultUpdateRate is used when Options.UpdateRate is zero.
	DefaultUpdateRate = 100 * time.Millisecond
)

// resizeSettleInterval is the minimum poll interval while waiting for the
// terminal size to stop changing during an interactive drag-resize.
const resizeSettleInterval = 100 * time.Millisecond

// Options configures a panel at construction. The zero value is usable:
// default update rate, active repaint, hidden cursor, running.
type Options struct {
	// UpdateRate is the cycle interval of both background workers.
	// Bounded by MinUpdateRate and MaxUpdateRate.
	UpdateRate time.Duration

	// PassiveUpdate selects the dirty-flag-gated repaint strategy instead
	// of repainting every cycle.
	PassiveUpdate bool

	// CursorVisible leaves the terminal cursor visible between repaints.
	CursorVisible bool

	// StartPaused keeps the panel paused after construction.
	StartPaused bool

	// Title is pushed to the terminal at construction when non-empty.
	Title string

	// LockTimeout overrides the lock acquisition bound. When zero the
	// bound is max(30s, 30×UpdateRate), keeping the historical coupling
	// between update rate and deadlock sensitivity.
	LockTimeout time.Duration

	// OnFatal replaces the default fatal-fault handler, which clears the
	// screen, reports the fault, waits for a key press and exits the
	// process with a non-zero status. Tests inject their own.
	OnFatal func(error)
}

func (o Options) updateRate() (time.Duration, error) {
	if o.UpdateRate == 0 {
		return DefaultUpdateRate, nil
	}
	if o.UpdateRate < MinUpdateRate || o.UpdateRate > MaxUpdateRate {
		return 0, ErrUpdateRate
	}
	return o.UpdateRate, nil
}
