package laser

import "github.com/chewxy/math32"

type Renderer struct {
	p   RenderParams
	out []Sample
}

func NewRenderer(p RenderParams) *Renderer { return &Renderer{p: p} }

func (r *Renderer) Params() RenderParams { return r.p }

// Render expands f into samples. The returned slice is freshly allocated and
// safe to hand to another goroutine. An empty (or fully degenerate) frame
// yields nil.
func (r *Renderer) Render(f Frame) []Sample {
	verts := r.clean(f)
	if len(verts) == 0 {
		return nil
	}
	r.out = make([]Sample, 0, min(r.p.minSamples(), r.limit()))

	lit := false
	for k := 1; k < len(verts); k++ {
		from, to := verts[k-1], verts[k]
		if !to.C.Lit() {
			if lit {
				r.repeat(from, from.C, r.p.EndDwell)
				r.repeat(from, Black, r.p.EndWait)
				lit = false
			}
			r.line(from, to, r.p.OffSpeed, Black)
			continue
		}
		if !lit {
			r.repeat(from, Black, r.p.StartWait)
			r.repeat(from, to.C, r.p.StartDwell)
			lit = true
		}
		r.line(from, to, r.p.OnSpeed, to.C)
		if k+1 < len(verts) && verts[k+1].C.Lit() {
			r.repeat(to, to.C, r.cornerDwell(from, to, verts[k+1]))
		}
	}
	last := verts[len(verts)-1]
	if lit {
		r.repeat(last, last.C, r.p.EndDwell)
		r.repeat(last, Black, r.p.EndWait)
	}
	if len(r.out) == 0 {
		// a single vertex still parks the beam there
		r.emit(last.X, last.Y, Black)
	}
	for len(r.out) < r.p.minSamples() && !r.full() {
		r.emit(last.X, last.Y, Black)
	}
	out := r.out
	r.out = nil
	return out
}

// clean drops non-finite vertices and those within Snap of the previous one.
// A dropped vertex passes its colour on when it would have been lit, so a
// stroke never loses its last lit segment to snapping.
func (r *Renderer) clean(f Frame) []Vertex {
	verts := make([]Vertex, 0, len(f))
	for _, v := range f {
		if !v.finite() {
			continue
		}
		if n := len(verts); n > 0 && verts[n-1].dist(v) < r.p.Snap {
			if v.C.Lit() {
				verts[n-1].C = v.C
			}
			continue
		}
		verts = append(verts, v)
	}
	return verts
}

func (r *Renderer) cornerDwell(a, b, c Vertex) int {
	ux, uy := b.X-a.X, b.Y-a.Y
	vx, vy := c.X-b.X, c.Y-b.Y
	lu, lv := math32.Hypot(ux, uy), math32.Hypot(vx, vy)
	if lu == 0 || lv == 0 {
		return r.p.CurveDwell
	}
	if (ux*vx+uy*vy)/(lu*lv) < r.p.curveCos() {
		return r.p.CornerDwell
	}
	return r.p.CurveDwell
}

func (r *Renderer) line(from, to Vertex, speed float32, c Color) {
	steps := 1
	if speed > 0 {
		n := math32.Ceil(from.dist(to) / speed)
		if lim := float32(r.limit()); n > lim {
			n = lim
		}
		if n > 1 {
			steps = int(n)
		}
	}
	for i := 1; i <= steps && !r.full(); i++ {
		t := float32(i) / float32(steps)
		r.emit(from.X+(to.X-from.X)*t, from.Y+(to.Y-from.Y)*t, c)
	}
}

func (r *Renderer) repeat(v Vertex, c Color, n int) {
	for i := 0; i < n && !r.full(); i++ {
		r.emit(v.X, v.Y, c)
	}
}

const hardLimit = 1 << 20

func (r *Renderer) limit() int {
	if r.p.MaxPoints > 0 && r.p.MaxPoints < hardLimit {
		return r.p.MaxPoints
	}
	return hardLimit
}

func (r *Renderer) full() bool { return len(r.out) >= r.limit() }

func (r *Renderer) emit(x, y float32, c Color) {
	s := Sample{X: clamp(x), Y: clamp(y), C: c, I: c.Intensity()}
	if r.p.Grayscale {
		s.C = Color{R: s.I, G: s.I, B: s.I}
	}
	r.out = append(r.out, s)
}

func clamp(v float32) float32 {
	switch {
	case v < -1:
		return -1
	case v > 1:
		return 1
	}
	return v
}
