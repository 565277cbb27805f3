// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/lock.go
// Summary: Bounded-wait mutex guarding the grid and the callback registries.

package panel

import "time"

// timedMutex is a mutual-exclusion lock whose acquisition waits are bounded.
// A bounded wait turns a deadlock into a loud ErrLockTimeout instead of a
// silent hang, which is the failure mode we want for a library that owns
// the terminal.
type timedMutex struct {
	ch chan struct{}
}

func newTimedMutex() *timedMutex {
	return &timedMutex{ch: make(chan struct{}, 1)}
}

// lock acquires the mutex, giving up after timeout.
func (m *timedMutex) lock(timeout time.Duration) error {
	select {
	case m.ch <- struct{}{}:
		return nil
	default:
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case m.ch <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrLockTimeout
	}
}

func (m *timedMutex) unlock() {
	select {
	case <-m.ch:
	default:
		panic("panel: unlock of unlocked timedMutex")
	}
}
