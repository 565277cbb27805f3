// Package colorwave animates a diagonal wave of background colors across
// the whole panel. Pure client code: it only registers callbacks and draws
// through the public API.
package colorwave

import (
	"github.com/FrostbiteXSW/CUIPanel/panel"
)

var palette = []panel.Color{
	panel.ColorBlue, panel.ColorBrightBlue, panel.ColorCyan,
	panel.ColorBrightCyan, panel.ColorBrightWhite, panel.ColorBrightCyan,
	panel.ColorCyan, panel.ColorBrightBlue,
}

type wave struct {
	phase int
}

// Attach registers the animation on the panel. It advances one step per
// update cycle, so the update rate is the animation speed.
func Attach(p *panel.Panel) error {
	w := &wave{}
	_, err := p.OnBeforeUpdate(w.step)
	return err
}

func (w *wave) step(f *panel.Frame) {
	cols, rows := f.Size()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			color := palette[(r+c+w.phase)%len(palette)]
			f.FillRectColor(r, c, r, c, color, color)
		}
	}
	w.phase++
}
