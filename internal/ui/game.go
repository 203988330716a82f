package ui

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	game_log "github.com/ingyamilmolinar/linefitti/internal/log"
	"github.com/ingyamilmolinar/linefitti/internal/sketch"
	"github.com/ingyamilmolinar/linefitti/internal/strip"
)

const lineWidth = 1

var keyBindings = []struct {
	key ebiten.Key
	cmd sketch.Command
}{
	{ebiten.KeySpace, sketch.Clear},
	{ebiten.KeyD, sketch.RemoveFirst},
	{ebiten.KeyF, sketch.RemoveLast},
	{ebiten.KeyEscape, sketch.Quit},
}

// Game is the ebiten front-end: it feeds the left mouse button and the
// command keys into the sketch and strokes the strip every frame.
type Game struct {
	sk     *sketch.Sketch
	view   *Viewport
	logger *game_log.Logger
	hud    bool

	leftPrev     bool
	lastX, lastY int
	frame        int64
	verts        []strip.Vertex
}

func New(sk *sketch.Sketch, hud bool, logger *game_log.Logger) *Game {
	w, h := sk.Size()
	return &Game{
		sk:     sk,
		view:   NewViewport(w, h),
		logger: logger.With("UI"),
		hud:    hud,
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sk.Resize(outsideWidth, outsideHeight)
	w, h := g.sk.Size()
	if w != g.view.W || h != g.view.H {
		g.view.Resize(w, h)
		g.logger.Debugf("layout %dx%d", w, h)
	}
	return w, h
}

func (g *Game) Update() error {
	g.frame++
	x, y := cursorPosition()
	left := isMouseButtonPressed(ebiten.MouseButtonLeft)
	px, py := float32(x), float32(y)

	switch {
	case left && !g.leftPrev:
		g.sk.PointerDown(px, py)
	case left && (x != g.lastX || y != g.lastY):
		g.sk.PointerDrag(px, py)
	case !left && g.leftPrev:
		g.sk.PointerUp(px, py)
	}
	g.leftPrev = left
	g.lastX, g.lastY = x, y

	for _, b := range keyBindings {
		if !isKeyJustPressed(b.key) {
			continue
		}
		if g.sk.Key(b.cmd) {
			return ebiten.Termination
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	fillScreen(screen, colBackground)
	g.verts = g.sk.Frame()
	for _, s := range strip.Segments(g.verts) {
		c := colBlank
		if s.Visible() {
			c = colLit
		}
		x0, y0 := g.view.ScreenPos(s.From.X, s.From.Y)
		x1, y1 := g.view.ScreenPos(s.To.X, s.To.Y)
		strokeLine(screen, x0, y0, x1, y1, lineWidth, c)
	}
	if g.hud {
		g.drawHUD(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	buf := g.sk.Buffer()
	text := fmt.Sprintf("points %d/%d cursor %d %s\n[space] clear [d] first [f] last [esc] quit",
		buf.Len(), buf.Cap(), buf.Cursor(), buf.Policy())
	drawPanel(screen, image.Rect(4, 4, 300, 42), colHUDPanel, colHUDEdge)
	debugPrintAt(screen, text, 8, 8)
}

// Vertices returns the strip drawn by the last Draw.
func (g *Game) Vertices() []strip.Vertex { return g.verts }
