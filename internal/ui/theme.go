package ui

import "image/color"

var (
	colBackground = color.RGBA{0, 0, 0, 255}
	colLit        = color.RGBA{0, 255, 0, 255}
	// non-lit segments are still stroked, fully transparent, so the strip
	// stays one connected path
	colBlank    = color.RGBA{0, 0, 0, 0}
	colHUDPanel = color.RGBA{20, 20, 30, 200}
	colHUDEdge  = color.RGBA{80, 80, 80, 255}
)
