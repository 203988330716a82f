// Package laser turns the sketch's point list into a galvo sample stream.
//
// A Frame is an ordered line strip: every vertex is joined to the previous
// one and its colour is the colour of the line drawn to it. Black vertices
// are blanked moves. The Renderer expands a frame into samples (interpolated
// moves plus dwell repeats at the ends and corners of lit runs), the Scanner
// loops the latest rendered frame as a beep.Streamer, and Output plays that
// stream on the audio device where a DAC picks up X on the left channel and
// Y on the right.
package laser

import "github.com/chewxy/math32"

type Color struct {
	R, G, B float32
}

var (
	Black = Color{}
	Green = Color{G: 1}
	White = Color{R: 1, G: 1, B: 1}
)

// Lit reports whether any channel is on.
func (c Color) Lit() bool { return c.R > 0 || c.G > 0 || c.B > 0 }

// Intensity is the brightest channel; used for grayscale output.
func (c Color) Intensity() float32 {
	return math32.Max(c.R, math32.Max(c.G, c.B))
}

type Vertex struct {
	X, Y float32
	C    Color
}

func (v Vertex) finite() bool {
	return !math32.IsNaN(v.X) && !math32.IsNaN(v.Y) &&
		!math32.IsInf(v.X, 0) && !math32.IsInf(v.Y, 0)
}

func (v Vertex) dist(w Vertex) float32 { return math32.Hypot(w.X-v.X, w.Y-v.Y) }

type Frame []Vertex

// Sample is one output position. I is the beam intensity in [0,1].
type Sample struct {
	X, Y float32
	C    Color
	I    float32
}

// Projector receives one frame per redraw.
type Projector interface {
	RenderFrame(Frame) error
	Close() error
}

// Null is the projector used when laser output is disabled.
type Null struct{}

func (Null) RenderFrame(Frame) error { return nil }
func (Null) Close() error            { return nil }
