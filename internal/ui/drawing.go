package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// The draw primitives are variables so tests can capture calls without a
// graphics context.

var fillScreen = func(dst *ebiten.Image, c color.Color) {
	dst.Fill(c)
}

var strokeLine = func(dst *ebiten.Image, x0, y0, x1, y1, width float32, c color.Color) {
	vector.StrokeLine(dst, x0, y0, x1, y1, width, c, true)
}

// drawPanel renders a filled rectangle with a border; used behind the HUD.
var drawPanel = func(dst *ebiten.Image, r image.Rectangle, fill, border color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, false)
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, border, false)
}

var debugPrintAt = ebitenutil.DebugPrintAt
