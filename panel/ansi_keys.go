// Copyright © 2026 CUIPanel contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: panel/ansi_keys.go
// Summary: Minimal key decoder for the raw escape-code driver.

package panel

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// keyDecoder turns the raw input byte stream into tcell key events, so the
// two drivers hand identical events to key-pressed callbacks. It covers
// printable runes, control characters, arrows, home/end, page up/down,
// delete, insert and F1-F12; anything else is dropped.
type keyDecoder struct {
	r *bufio.Reader
}

func newKeyDecoder(r io.Reader) *keyDecoder {
	return &keyDecoder{r: bufio.NewReader(r)}
}

func (d *keyDecoder) next() (*tcell.EventKey, error) {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}
		switch {
		case b == 0x1b:
			ev, err := d.escape()
			if err != nil {
				return nil, err
			}
			if ev != nil {
				return ev, nil
			}
		case b == '\r' || b == '\n':
			return tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), nil
		case b == '\t':
			return tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), nil
		case b == 0x7f || b == 0x08:
			return tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), nil
		case b < 0x20:
			// Ctrl+A .. Ctrl+Z and friends share the tcell.Key space with
			// their control codes.
			return tcell.NewEventKey(tcell.Key(b), 0, tcell.ModCtrl), nil
		case b < utf8.RuneSelf:
			return tcell.NewEventKey(tcell.KeyRune, rune(b), tcell.ModNone), nil
		default:
			r, err := d.multibyte(b)
			if err != nil {
				return nil, err
			}
			return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone), nil
		}
	}
}

// escape decodes the sequence following an ESC byte. A bare ESC (nothing
// buffered behind it) is reported as the escape key.
func (d *keyDecoder) escape() (*tcell.EventKey, error) {
	if d.r.Buffered() == 0 {
		return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), nil
	}
	b, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch b {
	case '[':
		return d.csi()
	case 'O':
		f, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}
		switch f {
		case 'P':
			return tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), nil
		case 'Q':
			return tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone), nil
		case 'R':
			return tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone), nil
		case 'S':
			return tcell.NewEventKey(tcell.KeyF4, 0, tcell.ModNone), nil
		case 'H':
			return tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), nil
		case 'F':
			return tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone), nil
		}
		return nil, nil
	default:
		// Alt+key arrives as ESC then the key.
		if b >= 0x20 && b < utf8.RuneSelf {
			return tcell.NewEventKey(tcell.KeyRune, rune(b), tcell.ModAlt), nil
		}
		return nil, nil
	}
}

// csi decodes CSI sequences: parameter bytes then a final byte.
func (d *keyDecoder) csi() (*tcell.EventKey, error) {
	param := 0
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}
		if b >= '0' && b <= '9' {
			param = param*10 + int(b-'0')
			continue
		}
		switch b {
		case 'A':
			return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), nil
		case 'B':
			return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), nil
		case 'C':
			return tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), nil
		case 'D':
			return tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), nil
		case 'H':
			return tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), nil
		case 'F':
			return tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone), nil
		case '~':
			return tildeKey(param), nil
		case ';':
			// Modifier parameters are not tracked; skip to the final byte.
			param = 0
			continue
		default:
			return nil, nil
		}
	}
}

func tildeKey(param int) *tcell.EventKey {
	var key tcell.Key
	switch param {
	case 1, 7:
		key = tcell.KeyHome
	case 2:
		key = tcell.KeyInsert
	case 3:
		key = tcell.KeyDelete
	case 4, 8:
		key = tcell.KeyEnd
	case 5:
		key = tcell.KeyPgUp
	case 6:
		key = tcell.KeyPgDn
	case 11, 12, 13, 14, 15:
		key = tcell.KeyF1 + tcell.Key(param-11)
	case 17, 18, 19, 20, 21:
		key = tcell.KeyF6 + tcell.Key(param-17)
	case 23, 24:
		key = tcell.KeyF11 + tcell.Key(param-23)
	default:
		return nil
	}
	return tcell.NewEventKey(key, 0, tcell.ModNone)
}

func (d *keyDecoder) multibyte(first byte) (rune, error) {
	buf := []byte{first}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, err
		}
		buf = append(buf, b)
	}
	r, _ := utf8.DecodeRune(buf)
	return r, nil
}
