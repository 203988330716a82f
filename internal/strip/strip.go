// Package strip walks the point buffer once per frame and turns it into a
// coloured line strip.
package strip

import (
	"github.com/ingyamilmolinar/linefitti/internal/laser"
	"github.com/ingyamilmolinar/linefitti/internal/points"
)

// Class is the colour class of a vertex, and of the segment drawn to it.
type Class int

const (
	Lit Class = iota
	Blank
	// Boundary marks the cursor slot and the slot right before it, which
	// keeps the strip from closing into a loop across the write position.
	Boundary
)

func (c Class) String() string {
	switch c {
	case Lit:
		return "lit"
	case Blank:
		return "blank"
	case Boundary:
		return "boundary"
	default:
		return "unknown"
	}
}

type Vertex struct {
	X, Y  float32
	Slot  int
	Class Class
}

type Segment struct {
	From, To Vertex
	Class    Class
}

func (s Segment) Visible() bool { return s.Class == Lit }

// Build emits one vertex per logical point, oldest first.
func Build(buf *points.Buffer) []Vertex {
	n := buf.Len()
	if n == 0 {
		return nil
	}
	cursor := buf.Cursor()
	prev := (cursor - 1 + buf.Cap()) % buf.Cap()
	verts := make([]Vertex, 0, n)
	for i := 0; i < n; i++ {
		slot, _ := buf.SlotOf(i)
		p := buf.Slot(slot)
		v := Vertex{X: p.X, Y: p.Y, Slot: slot}
		switch {
		case slot == cursor || slot == prev:
			v.Class = Boundary
		case !p.Active:
			v.Class = Blank
		default:
			v.Class = Lit
		}
		verts = append(verts, v)
	}
	return verts
}

// Segments joins consecutive vertices; each segment takes the class of the
// vertex it ends on.
func Segments(verts []Vertex) []Segment {
	if len(verts) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(verts)-1)
	for k := 1; k < len(verts); k++ {
		segs = append(segs, Segment{From: verts[k-1], To: verts[k], Class: verts[k].Class})
	}
	return segs
}

// Visible is Segments filtered down to the lit ones.
func Visible(verts []Vertex) []Segment {
	var out []Segment
	for _, s := range Segments(verts) {
		if s.Visible() {
			out = append(out, s)
		}
	}
	return out
}

// Frame is the projector view of the strip: lit vertices green, the rest
// black.
func Frame(verts []Vertex) laser.Frame {
	if len(verts) == 0 {
		return nil
	}
	f := make(laser.Frame, len(verts))
	for i, v := range verts {
		c := laser.Black
		if v.Class == Lit {
			c = laser.Green
		}
		f[i] = laser.Vertex{X: v.X, Y: v.Y, C: c}
	}
	return f
}
