package term

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	game_log "github.com/ingyamilmolinar/linefitti/internal/log"
	"github.com/ingyamilmolinar/linefitti/internal/points"
	"github.com/ingyamilmolinar/linefitti/internal/sketch"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func newTerminal(t *testing.T, w, h int, hud bool) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	s := newScreen(t, w, h)
	logger := game_log.New(io.Discard, game_log.LevelError)
	sk := sketch.New(sketch.Options{Capacity: 64, Overflow: points.Wrap, ResolutionPx: 1}, nil, logger)
	sk.Resize(w, h)
	return New(s, sk, Options{FrameRate: 30, HUD: hud}, logger), s
}

func mouse(x, y int, b tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, b, tcell.ModNone)
}

func runeAt(s tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := s.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func TestMouseStroke(t *testing.T) {
	term, _ := newTerminal(t, 40, 20, false)
	assert.False(t, term.Handle(mouse(2, 2, tcell.Button1)))
	term.Handle(mouse(2, 2, tcell.Button1)) // no movement
	term.Handle(mouse(10, 2, tcell.Button1))
	term.Handle(mouse(10, 8, tcell.Button1))
	term.Handle(mouse(10, 8, tcell.ButtonNone))
	term.Handle(mouse(12, 8, tcell.ButtonNone)) // hover

	pts := term.sk.Buffer().Points()
	require.Len(t, pts, 4)
	assert.Equal(t, []bool{false, true, true, false},
		[]bool{pts[0].Active, pts[1].Active, pts[2].Active, pts[3].Active})
}

func TestDrawRasterisesLitSegments(t *testing.T) {
	term, s := newTerminal(t, 40, 20, false)
	term.Handle(mouse(2, 2, tcell.Button1))
	term.Handle(mouse(10, 2, tcell.Button1))
	term.Handle(mouse(20, 2, tcell.Button1))
	term.Handle(mouse(20, 2, tcell.ButtonNone))
	term.Draw()

	// press -> (10,2) is lit, (10,2) -> (20,2) is lit, release is boundary
	assert.Equal(t, pointRune, runeAt(s, 2, 2))
	assert.Equal(t, lineRune, runeAt(s, 5, 2))
	assert.Equal(t, pointRune, runeAt(s, 10, 2))
	assert.Equal(t, lineRune, runeAt(s, 15, 2))
	assert.Equal(t, pointRune, runeAt(s, 20, 2))
	assert.Equal(t, ' ', runeAt(s, 25, 2))
	assert.Len(t, term.Vertices(), 4)
}

func TestKeysAndClear(t *testing.T) {
	term, s := newTerminal(t, 40, 20, false)
	for x := 1; x < 30; x += 3 {
		term.Handle(mouse(x, 5, tcell.Button1))
	}
	term.Draw()
	assert.Equal(t, pointRune, runeAt(s, 4, 5))

	n := term.sk.Buffer().Len()
	term.Handle(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))
	assert.Equal(t, n-1, term.sk.Buffer().Len())
	term.Handle(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	assert.Equal(t, n-2, term.sk.Buffer().Len())

	assert.False(t, term.Handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.Equal(t, 0, term.sk.Buffer().Len())
	term.Draw()
	for x := 0; x < 40; x++ {
		assert.Equal(t, ' ', runeAt(s, x, 5))
	}

	assert.True(t, term.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestResize(t *testing.T) {
	term, _ := newTerminal(t, 40, 20, false)
	term.Handle(tcell.NewEventResize(100, 50))
	w, h := term.sk.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)
}

func TestHUD(t *testing.T) {
	term, s := newTerminal(t, 80, 10, true)
	term.Handle(mouse(1, 1, tcell.Button1))
	term.Draw()
	cells, w, _ := s.GetContents()
	var line []rune
	for x := 0; x < w; x++ {
		if r := cells[9*w+x].Runes; len(r) > 0 {
			line = append(line, r[0])
		}
	}
	assert.Contains(t, string(line), "points 1/64")
}

func TestRunQuitsOnEscape(t *testing.T) {
	term, s := newTerminal(t, 40, 20, false)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- term.Run(context.Background()) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after escape")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	term, _ := newTerminal(t, 40, 20, false)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- term.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
