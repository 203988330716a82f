package ui

import "github.com/hajimehoshi/ebiten/v2"

// Viewport maps normalized device coordinates onto the window: (-1,1) is the
// top-left corner, (1,-1) the bottom-right.
type Viewport struct {
	W, H int
}

func NewViewport(w, h int) *Viewport {
	v := &Viewport{}
	v.Resize(w, h)
	return v
}

func (v *Viewport) Resize(w, h int) {
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	v.W, v.H = w, h
}

// GeoM returns the NDC to screen transform.
func (v *Viewport) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(float64(v.W)/2, -float64(v.H)/2)
	m.Translate(float64(v.W)/2, float64(v.H)/2)
	return m
}

// ScreenPos converts an NDC position to screen pixels.
func (v *Viewport) ScreenPos(x, y float32) (sx, sy float32) {
	m := v.GeoM()
	fx, fy := m.Apply(float64(x), float64(y))
	return float32(fx), float32(fy)
}
