// Package term is the terminal front-end. Each cell is treated as one pixel
// of the sketch window.
package term

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	game_log "github.com/ingyamilmolinar/linefitti/internal/log"
	"github.com/ingyamilmolinar/linefitti/internal/sketch"
	"github.com/ingyamilmolinar/linefitti/internal/strip"
	"github.com/ingyamilmolinar/linefitti/internal/utils"
)

const (
	lineRune  = '·'
	pointRune = '•'
)

var (
	styleLine  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack)
	stylePoint = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 255, 0)).Background(tcell.ColorBlack).Bold(true)
	styleHUD   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack).Reverse(true)
	styleBg    = tcell.StyleDefault.Background(tcell.ColorBlack)
)

type Options struct {
	FrameRate int
	HUD       bool
}

type Terminal struct {
	screen tcell.Screen
	sk     *sketch.Sketch
	logger *game_log.Logger
	opts   Options

	leftPrev     bool
	lastX, lastY int
	verts        []strip.Vertex
}

// New wraps an initialised screen. The caller owns the screen and calls
// Fini on it.
func New(screen tcell.Screen, sk *sketch.Sketch, opts Options, logger *game_log.Logger) *Terminal {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 30
	}
	return &Terminal{screen: screen, sk: sk, logger: logger.With("TERM"), opts: opts}
}

// Run is New(...).Run(ctx).
func Run(ctx context.Context, screen tcell.Screen, sk *sketch.Sketch, opts Options, logger *game_log.Logger) error {
	return New(screen, sk, opts, logger).Run(ctx)
}

// Run processes input and redraws until quit, ctx cancellation, or the
// screen stops delivering events.
func (t *Terminal) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.screen.EnableMouse()
	t.screen.HideCursor()
	t.screen.SetStyle(styleBg)
	t.sk.Resize(t.screen.Size())

	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(t.opts.FrameRate))
	defer ticker.Stop()

	t.logger.Infof("terminal front-end at %d fps", t.opts.FrameRate)
	t.Draw()
	for {
		select {
		case <-ctx.Done():
			t.logger.Debugf("context done: %v", ctx.Err())
			return nil
		case ev, ok := <-events:
			if !ok {
				t.logger.Debugf("event source closed")
				return nil
			}
			if t.Handle(ev) {
				return nil
			}
			t.Draw()
		case <-ticker.C:
			t.Draw()
		}
	}
}

// Handle applies one event and reports whether the terminal should quit.
func (t *Terminal) Handle(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return t.sk.Key(sketch.Quit)
		case tcell.KeyRune:
			return t.sk.Key(sketch.CommandForRune(ev.Rune()))
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		left := ev.Buttons()&tcell.Button1 != 0
		px, py := float32(x)+0.5, float32(y)+0.5
		switch {
		case left && !t.leftPrev:
			t.sk.PointerDown(px, py)
		case left && (x != t.lastX || y != t.lastY):
			t.sk.PointerDrag(px, py)
		case !left && t.leftPrev:
			t.sk.PointerUp(px, py)
		}
		t.leftPrev = left
		t.lastX, t.lastY = x, y
	case *tcell.EventResize:
		w, h := ev.Size()
		t.sk.Resize(w, h)
		t.screen.Sync()
	}
	return false
}

// Draw rasterises the lit segments and the points they join.
func (t *Terminal) Draw() {
	t.screen.Clear()
	w, h := t.screen.Size()
	t.verts = t.sk.Frame()
	for _, s := range strip.Visible(t.verts) {
		p0, p1 := t.cell(s.From, w, h), t.cell(s.To, w, h)
		for _, p := range utils.Line(p0, p1) {
			t.screen.SetContent(p.X, p.Y, lineRune, nil, styleLine)
		}
		t.screen.SetContent(p0.X, p0.Y, pointRune, nil, stylePoint)
		t.screen.SetContent(p1.X, p1.Y, pointRune, nil, stylePoint)
	}
	if t.opts.HUD {
		t.drawHUD(w, h)
	}
	t.screen.Show()
}

func (t *Terminal) drawHUD(w, h int) {
	buf := t.sk.Buffer()
	line := fmt.Sprintf(" points %d/%d cursor %d %s | space clear, d first, f last, esc quit ",
		buf.Len(), buf.Cap(), buf.Cursor(), buf.Policy())
	for i, r := range []rune(line) {
		if i >= w {
			break
		}
		t.screen.SetContent(i, h-1, r, nil, styleHUD)
	}
}

func (t *Terminal) cell(v strip.Vertex, w, h int) image.Point {
	px, py := t.sk.FromNDC(v.X, v.Y)
	return image.Pt(utils.Clamp(int(px), 0, w-1), utils.Clamp(int(py), 0, h-1))
}

// Vertices returns the strip drawn by the last Draw.
func (t *Terminal) Vertices() []strip.Vertex { return t.verts }
