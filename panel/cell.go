package panel

// Cell is a single grid position: a character plus its color pair. A zero
// Ch marks the continuation column of a wide rune placed in the cell to
// its left; the renderer emits nothing for it.
type Cell struct {
	Ch rune
	Fg Color
	Bg Color
}

// defaultCell is what cleared and newly exposed cells hold.
var defaultCell = Cell{Ch: ' ', Fg: DefaultForeground, Bg: DefaultBackground}
