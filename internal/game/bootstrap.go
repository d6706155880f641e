//go:build !android

package game

import "github.com/hajimehoshi/ebiten/v2"

func init() {
	ebiten.SetWindowSize(ScreenW, ScreenH)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(overlayMinW, overlayMinH, -1, -1)
	// the feed keeps arriving while another window has focus
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowClosingHandled(true)
}
