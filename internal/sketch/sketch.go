// Package sketch owns the drawing state shared by the front-ends: the point
// buffer, the window geometry and the projector. Every method must be
// called from the front-end's event loop.
package sketch

import (
	"github.com/ingyamilmolinar/linefitti/internal/laser"
	game_log "github.com/ingyamilmolinar/linefitti/internal/log"
	"github.com/ingyamilmolinar/linefitti/internal/points"
	"github.com/ingyamilmolinar/linefitti/internal/strip"
)

// Command is a discrete keyboard action.
type Command int

const (
	None Command = iota
	Clear
	RemoveFirst
	RemoveLast
	Quit
)

func (c Command) String() string {
	switch c {
	case Clear:
		return "clear"
	case RemoveFirst:
		return "remove-first"
	case RemoveLast:
		return "remove-last"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// CommandForRune maps the sketch's key bindings: space clears, d drops the
// first point, f drops the last one. Escape is handled by each front-end.
func CommandForRune(r rune) Command {
	switch r {
	case ' ':
		return Clear
	case 'd', 'D':
		return RemoveFirst
	case 'f', 'F':
		return RemoveLast
	case 0x1b:
		return Quit
	}
	return None
}

type Options struct {
	Capacity     int
	Overflow     points.Policy
	ResolutionPx float32 // minimum drag step in window pixels
}

type Sketch struct {
	buf          *points.Buffer
	proj         laser.Projector
	logger       *game_log.Logger
	resolutionPx float32
	resolution   float32 // ResolutionPx in NDC units
	winW, winH   int
	frames       int64
	dirty        bool
}

func New(opts Options, proj laser.Projector, logger *game_log.Logger) *Sketch {
	if proj == nil {
		proj = laser.Null{}
	}
	s := &Sketch{
		buf:          points.New(opts.Capacity, opts.Overflow),
		proj:         proj,
		logger:       logger.With("SKETCH"),
		resolutionPx: opts.ResolutionPx,
		dirty:        true,
	}
	s.Resize(2, 2)
	return s
}

func (s *Sketch) Buffer() *points.Buffer { return s.buf }

func (s *Sketch) Size() (int, int) { return s.winW, s.winH }

// Resolution is the drag threshold in NDC units for the current window.
func (s *Sketch) Resolution() float32 { return s.resolution }

// Dirty reports whether anything changed since the last Frame.
func (s *Sketch) Dirty() bool { return s.dirty }

// Resize records the window size; both sides are kept at 2px or more so the
// NDC mapping never divides by zero.
func (s *Sketch) Resize(w, h int) {
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	if w == s.winW && h == s.winH {
		return
	}
	s.winW, s.winH = w, h
	s.resolution = s.resolutionPx / (float32(h) / 2)
	s.dirty = true
	s.logger.Debugf("resize %dx%d, normalized resolution %f", w, h, s.resolution)
}

// ToNDC maps window pixels (origin top-left, y down) to normalized device
// coordinates (origin centre, y up).
func (s *Sketch) ToNDC(px, py float32) (x, y float32) {
	hw, hh := float32(s.winW)/2, float32(s.winH)/2
	return (px - hw) / hw, 1 - py/hh
}

// FromNDC is the inverse of ToNDC.
func (s *Sketch) FromNDC(x, y float32) (px, py float32) {
	hw, hh := float32(s.winW)/2, float32(s.winH)/2
	return x*hw + hw, (1 - y) * hh
}

func (s *Sketch) PointerDown(px, py float32) { s.click(px, py, "down") }

func (s *Sketch) PointerUp(px, py float32) { s.click(px, py, "up") }

func (s *Sketch) click(px, py float32, what string) {
	x, y := s.ToNDC(px, py)
	s.buf.Append(x, y, false)
	s.dirty = true
	s.logger.Debugf("pointer %s: #%d (%f, %f) inactive", what, s.buf.Len(), x, y)
}

// PointerDrag adds an active point unless it is within the resolution of the
// newest one. It reports whether the point was kept.
func (s *Sketch) PointerDrag(px, py float32) bool {
	x, y := s.ToNDC(px, py)
	if !s.buf.AppendDrag(x, y, s.resolution) {
		return false
	}
	s.dirty = true
	s.logger.Debugf("pointer drag: #%d (%f, %f) active", s.buf.Len(), x, y)
	return true
}

// Key applies c and reports whether the sketch should quit.
func (s *Sketch) Key(c Command) (quit bool) {
	switch c {
	case Clear:
		s.buf.Clear()
	case RemoveFirst:
		s.buf.RemoveFirst()
	case RemoveLast:
		s.buf.RemoveLast()
	case Quit:
		s.logger.Infof("quit requested")
		return true
	default:
		return false
	}
	s.dirty = true
	s.logger.Debugf("command %s: %d points, cursor %d", c, s.buf.Len(), s.buf.Cursor())
	return false
}

// Frame builds this frame's strip and hands it to the projector once.
// Projector failures are logged and never stop the frame.
func (s *Sketch) Frame() []strip.Vertex {
	verts := strip.Build(s.buf)
	s.frames++
	s.dirty = false
	if err := s.proj.RenderFrame(strip.Frame(verts)); err != nil {
		s.logger.Warnf("frame %d: projector: %v", s.frames, err)
	}
	return verts
}

func (s *Sketch) Frames() int64 { return s.frames }

// Close releases the projector.
func (s *Sketch) Close() error {
	return s.proj.Close()
}
