package ui

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/linefitti/internal/config"
)

var runGame = ebiten.RunGame

// Run opens the window described by cfg and blocks until the game quits or
// the window is closed.
func Run(cfg config.Window, g *Game) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	g.logger.Infof("window %dx%d %q at %d TPS", cfg.Width, cfg.Height, cfg.Title, cfg.TPS)
	if err := runGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
