// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/paneldemo/main.go
// Summary: Demo launcher for the panel library.
// Usage: Run `paneldemo -app wave|grid|text|code` and quit with Ctrl+Q.

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/FrostbiteXSW/CUIPanel/apps/codeview"
	"github.com/FrostbiteXSW/CUIPanel/apps/colorwave"
	"github.com/FrostbiteXSW/CUIPanel/apps/gridselect"
	"github.com/FrostbiteXSW/CUIPanel/apps/textbox"
	"github.com/FrostbiteXSW/CUIPanel/config"
	"github.com/FrostbiteXSW/CUIPanel/panel"
	"github.com/FrostbiteXSW/CUIPanel/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("paneldemo", flag.ContinueOnError)
	app := fs.String("app", "wave", "Demo to run: wave, grid, text, code")
	file := fs.String("file", "", "Source file for the code demo")
	rate := fs.Duration("rate", 0, "Update rate (default from config, else 100ms)")
	passive := fs.Bool("passive", false, "Use the dirty-flag repaint strategy")
	ansi := fs.Bool("ansi", false, "Use the raw escape-code backend instead of tcell")
	snapshot := fs.String("snapshot", "", "Save the final panel contents to this path on exit")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	var driver panel.Driver
	if *ansi {
		driver = panel.NewAnsiDriver()
	} else {
		d, err := panel.NewTcellDriver()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		driver = d
	}

	opts := config.Options(panel.Options{
		UpdateRate:    *rate,
		PassiveUpdate: *passive,
		Title:         "paneldemo",
	})
	p, err := panel.New(driver, opts)
	if err != nil {
		return err
	}
	defer p.Exit()

	switch *app {
	case "wave":
		err = colorwave.Attach(p)
	case "grid":
		err = gridselect.Attach(p)
	case "text":
		err = textbox.Attach(p)
	case "code":
		name := *file
		if name == "" {
			name = os.Args[0]
		}
		var source []byte
		source, err = os.ReadFile(name)
		if err != nil {
			return err
		}
		err = codeview.Attach(p, name, source)
	default:
		return fmt.Errorf("unknown app %q", *app)
	}
	if err != nil {
		return err
	}

	if _, err := p.OnKeyPressed(func(f *panel.Frame, ev *tcell.EventKey) {
		if ev.Key() == tcell.KeyCtrlQ {
			f.Exit()
		}
	}); err != nil {
		return err
	}

	<-p.Done()

	if *snapshot != "" {
		// Give the workers a moment to finish the cycle in flight, then
		// capture before Exit clears the grid.
		time.Sleep(50 * time.Millisecond)
		snap, err := store.Capture(p)
		if err != nil {
			return err
		}
		if err := store.NewSnapshotStore(*snapshot).Save(snap); err != nil {
			return err
		}
	}
	return nil
}
