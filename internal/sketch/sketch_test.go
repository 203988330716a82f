package sketch

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingyamilmolinar/linefitti/internal/laser"
	game_log "github.com/ingyamilmolinar/linefitti/internal/log"
	"github.com/ingyamilmolinar/linefitti/internal/points"
	"github.com/ingyamilmolinar/linefitti/internal/strip"
)

type recorder struct {
	frames []laser.Frame
	err    error
	closed bool
}

func (r *recorder) RenderFrame(f laser.Frame) error {
	r.frames = append(r.frames, f)
	return r.err
}

func (r *recorder) Close() error { r.closed = true; return nil }

func newSketch(t *testing.T, capacity int, proj laser.Projector) *Sketch {
	t.Helper()
	s := New(Options{Capacity: capacity, Overflow: points.Wrap, ResolutionPx: 3}, proj, game_log.Discard())
	s.Resize(640, 640)
	return s
}

func TestResizeComputesResolution(t *testing.T) {
	s := newSketch(t, 300, nil)
	assert.InDelta(t, 3.0/320.0, s.Resolution(), 1e-7)

	s.Resize(0, -5)
	w, h := s.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
	assert.InDelta(t, 3.0, s.Resolution(), 1e-7)
}

func TestToNDC(t *testing.T) {
	s := newSketch(t, 300, nil)
	x, y := s.ToNDC(320, 320)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)

	x, y = s.ToNDC(0, 0)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)

	x, y = s.ToNDC(640, 640)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(-1), y)

	px, py := s.FromNDC(0.5, -0.5)
	assert.Equal(t, float32(480), px)
	assert.Equal(t, float32(480), py)
}

func TestClicksAreInactiveDragsActive(t *testing.T) {
	s := newSketch(t, 300, nil)
	s.PointerDown(100, 100)
	assert.True(t, s.PointerDrag(200, 100))
	s.PointerUp(200, 100)

	pts := s.Buffer().Points()
	require.Len(t, pts, 3)
	assert.False(t, pts[0].Active)
	assert.True(t, pts[1].Active)
	assert.False(t, pts[2].Active)
}

func TestDragBelowResolutionIsDropped(t *testing.T) {
	s := newSketch(t, 300, nil)
	s.PointerDown(320, 320)
	assert.False(t, s.PointerDrag(321, 321), "~1.4px is under the 3px resolution")
	assert.Equal(t, 1, s.Buffer().Len())
	assert.True(t, s.PointerDrag(323, 320), "3px is kept")
	assert.Equal(t, 2, s.Buffer().Len())
}

func TestKeys(t *testing.T) {
	s := newSketch(t, 300, nil)
	for i := 0; i < 4; i++ {
		s.PointerDown(float32(i*10), 0)
	}
	assert.False(t, s.Key(RemoveFirst))
	assert.Equal(t, 3, s.Buffer().Len())
	assert.False(t, s.Key(RemoveLast))
	assert.Equal(t, 2, s.Buffer().Len())
	assert.False(t, s.Key(None))
	assert.False(t, s.Key(Clear))
	assert.Equal(t, 0, s.Buffer().Len())
	assert.True(t, s.Key(Quit))
}

func TestCommandForRune(t *testing.T) {
	assert.Equal(t, Clear, CommandForRune(' '))
	assert.Equal(t, RemoveFirst, CommandForRune('d'))
	assert.Equal(t, RemoveLast, CommandForRune('F'))
	assert.Equal(t, Quit, CommandForRune(0x1b))
	assert.Equal(t, None, CommandForRune('x'))
}

func TestFrameForwardsOncePerFrame(t *testing.T) {
	rec := &recorder{}
	s := newSketch(t, 300, rec)
	s.PointerDown(0, 0)
	s.PointerDrag(320, 320)
	s.PointerUp(640, 0)
	assert.True(t, s.Dirty())

	verts := s.Frame()
	require.Len(t, rec.frames, 1)
	require.Len(t, rec.frames[0], len(verts))
	assert.False(t, s.Dirty())
	assert.Equal(t, int64(1), s.Frames())

	s.Frame()
	assert.Len(t, rec.frames, 2)

	require.NoError(t, s.Close())
	assert.True(t, rec.closed)
}

func TestProjectorErrorIsLoggedNotFatal(t *testing.T) {
	var out bytes.Buffer
	rec := &recorder{err: errors.New("dac unplugged")}
	s := New(Options{Capacity: 8, ResolutionPx: 3}, rec, game_log.New(&out, game_log.LevelWarn))
	s.PointerDown(1, 1)

	verts := s.Frame()
	assert.Len(t, verts, 1)
	assert.Contains(t, out.String(), "dac unplugged")
}

func TestClearThenFrameHasNoVisibleSegments(t *testing.T) {
	s := newSketch(t, 16, nil)
	s.PointerDown(0, 0)
	for x := 10; x < 200; x += 10 {
		s.PointerDrag(float32(x), float32(x))
	}
	require.NotEmpty(t, strip.Visible(s.Frame()))
	s.Key(Clear)
	assert.Empty(t, strip.Visible(s.Frame()))
}
