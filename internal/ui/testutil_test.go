package ui

import (
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	game_log "github.com/ingyamilmolinar/linefitti/internal/log"
	"github.com/ingyamilmolinar/linefitti/internal/points"
	"github.com/ingyamilmolinar/linefitti/internal/sketch"
)

var testLogger = game_log.New(io.Discard, game_log.LevelError)

// fakeInput drives the swappable input functions from plain fields.
type fakeInput struct {
	x, y int
	left bool
	keys map[ebiten.Key]bool
}

func (f *fakeInput) install(t *testing.T) {
	t.Helper()
	restore := SetInputForTest(
		func() (int, int) { return f.x, f.y },
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && f.left },
		func(k ebiten.Key) bool { return f.keys[k] },
	)
	t.Cleanup(restore)
}

// press sets k as just pressed for one Update.
func (f *fakeInput) press(g *Game, k ebiten.Key) error {
	f.keys = map[ebiten.Key]bool{k: true}
	err := g.Update()
	f.keys = nil
	return err
}

type strokeCall struct {
	x0, y0, x1, y1 float32
	c              color.Color
}

type drawLog struct {
	fills   int
	strokes []strokeCall
	panels  int
	text    []string
}

func captureDraw(t *testing.T) *drawLog {
	t.Helper()
	dl := &drawLog{}
	oldFill, oldStroke, oldPanel, oldPrint := fillScreen, strokeLine, drawPanel, debugPrintAt
	fillScreen = func(*ebiten.Image, color.Color) { dl.fills++ }
	strokeLine = func(_ *ebiten.Image, x0, y0, x1, y1, _ float32, c color.Color) {
		dl.strokes = append(dl.strokes, strokeCall{x0, y0, x1, y1, c})
	}
	drawPanel = func(*ebiten.Image, image.Rectangle, color.Color, color.Color) { dl.panels++ }
	debugPrintAt = func(_ *ebiten.Image, s string, _, _ int) { dl.text = append(dl.text, s) }
	t.Cleanup(func() {
		fillScreen, strokeLine, drawPanel, debugPrintAt = oldFill, oldStroke, oldPanel, oldPrint
	})
	return dl
}

func newTestGame(t *testing.T, capacity int, hud bool) (*Game, *fakeInput) {
	t.Helper()
	sk := sketch.New(sketch.Options{Capacity: capacity, Overflow: points.Wrap, ResolutionPx: 3}, nil, testLogger)
	g := New(sk, hud, testLogger)
	g.Layout(640, 640)
	in := &fakeInput{}
	in.install(t)
	return g, in
}
