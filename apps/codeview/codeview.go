// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/codeview/codeview.go
// Summary: Syntax-highlighted read-only source viewer on top of the panel.

// Package codeview renders a source file onto the panel with chroma
// highlighting, picking the lexer from enry's language detection. Up/down
// and page keys move through the file.
package codeview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"

	"github.com/FrostbiteXSW/CUIPanel/panel"
)

type span struct {
	text string
	fg   panel.Color
}

type viewer struct {
	name   string
	lines  [][]span
	offset int
}

// Attach tokenizes the source and registers the viewer on the panel.
func Attach(p *panel.Panel, filename string, source []byte) error {
	v := &viewer{name: filename}
	v.tokenize(filename, source)
	if _, err := p.OnBeforeUpdate(v.draw); err != nil {
		return err
	}
	_, err := p.OnKeyPressed(v.handleKey)
	return err
}

// tokenize runs the whole file through one lexer pass so multi-line
// constructs highlight correctly, then splits the token stream back into
// lines of colored spans.
func (v *viewer) tokenize(filename string, source []byte) {
	lang := enry.GetLanguage(filename, source)
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Match(filename)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iter, err := lexer.Tokenise(nil, string(source))
	if err != nil {
		v.lines = plainLines(source)
		return
	}

	current := []span{}
	for _, tok := range iter.Tokens() {
		fg := tokenColor(tok.Type)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				v.lines = append(v.lines, current)
				current = []span{}
			}
			if part != "" {
				current = append(current, span{text: strings.ReplaceAll(part, "\t", "    "), fg: fg})
			}
		}
	}
	v.lines = append(v.lines, current)
}

// tokenColor maps chroma token categories onto the fixed 16-color palette.
func tokenColor(t chroma.TokenType) panel.Color {
	switch {
	case t.InCategory(chroma.Keyword):
		return panel.ColorBrightMagenta
	case t.InCategory(chroma.Name) && t.InSubCategory(chroma.NameFunction):
		return panel.ColorBrightBlue
	case t.InCategory(chroma.LiteralString):
		return panel.ColorBrightGreen
	case t.InCategory(chroma.LiteralNumber):
		return panel.ColorBrightCyan
	case t.InCategory(chroma.Comment):
		return panel.ColorBrightBlack
	case t.InCategory(chroma.Operator), t.InCategory(chroma.Punctuation):
		return panel.ColorYellow
	default:
		return panel.ColorWhite
	}
}

func plainLines(source []byte) [][]span {
	raw := strings.Split(string(source), "\n")
	lines := make([][]span, len(raw))
	for i, l := range raw {
		lines[i] = []span{{text: strings.ReplaceAll(l, "\t", "    "), fg: panel.ColorWhite}}
	}
	return lines
}

func (v *viewer) draw(f *panel.Frame) {
	cols, rows := f.Size()
	f.FillRectCell(0, 0, rows-1, cols-1, ' ', panel.ColorWhite, panel.ColorBlack)
	f.WriteTextColor(0, 0, " "+v.name+" ", panel.ColorBlack, panel.ColorBrightWhite)

	v.clampOffset(rows)
	row := 1
	for _, line := range v.lines[v.offset:] {
		if row >= rows {
			break
		}
		col := 0
		for _, s := range line {
			if col >= cols {
				break
			}
			f.WriteTextColor(row, col, s.text, s.fg, panel.ColorBlack)
			col += len([]rune(s.text))
		}
		row++
	}
}

func (v *viewer) handleKey(f *panel.Frame, ev *tcell.EventKey) {
	_, rows := f.Size()
	switch ev.Key() {
	case tcell.KeyUp:
		v.offset--
	case tcell.KeyDown:
		v.offset++
	case tcell.KeyPgUp:
		v.offset -= rows - 1
	case tcell.KeyPgDn:
		v.offset += rows - 1
	case tcell.KeyHome:
		v.offset = 0
	case tcell.KeyEnd:
		v.offset = len(v.lines)
	}
	v.clampOffset(rows)
}

func (v *viewer) clampOffset(rows int) {
	maxOffset := len(v.lines) - (rows - 1)
	if v.offset > maxOffset {
		v.offset = maxOffset
	}
	if v.offset < 0 {
		v.offset = 0
	}
}
