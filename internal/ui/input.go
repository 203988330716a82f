package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyJustPressed     = inpututil.IsKeyJustPressed
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(
	cursor func() (int, int),
	mouse func(ebiten.MouseButton) bool,
	keyJust func(ebiten.Key) bool,
) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldKey := isKeyJustPressed
	cursorPosition = cursor
	isMouseButtonPressed = mouse
	isKeyJustPressed = keyJust
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyJustPressed = oldKey
	}
}
