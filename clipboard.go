package mapnav

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Clipboard access, replaceable in tests.
var (
	writeClipboard = clipboard.WriteAll
	readClipboard  = clipboard.ReadAll
)

// CopyState puts the engine's serialized view state on the system
// clipboard, so a view can be shared as text.
func (v *View) CopyState() error {
	if err := writeClipboard(v.SaveState()); err != nil {
		return fmt.Errorf("copy state: %w", err)
	}
	return nil
}

// PasteState restores a view state from the system clipboard.
func (v *View) PasteState() error {
	text, err := readClipboard()
	if err != nil {
		return fmt.Errorf("paste state: %w", err)
	}
	if err := v.RestoreState(strings.TrimSpace(text)); err != nil {
		return fmt.Errorf("paste state: %w", err)
	}
	return nil
}

// processClipboardKeys handles Ctrl+C and Ctrl+V. Errors only reach the
// debug log.
func (v *View) processClipboardKeys() {
	if !ebiten.IsKeyPressed(ebiten.KeyControl) && !ebiten.IsKeyPressed(ebiten.KeyMeta) {
		return
	}
	var err error
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		err = v.CopyState()
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		err = v.PasteState()
	}
	if err != nil {
		v.coord.log.printf("%v", err)
	}
}
