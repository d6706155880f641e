package game

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/j3kstrum/runelite-bingo/internal/overlay"
)

type input struct {
	last  image.Point
	keys  []ebiten.Key
	runes []rune
}

var mouseButtons = map[ebiten.MouseButton]overlay.MouseButton{
	ebiten.MouseButtonLeft:   overlay.ButtonLeft,
	ebiten.MouseButtonRight:  overlay.ButtonRight,
	ebiten.MouseButtonMiddle: overlay.ButtonMiddle,
}

func anyButtonDown() bool {
	for b := range mouseButtons {
		if ebiten.IsMouseButtonPressed(b) {
			return true
		}
	}
	return false
}

// pollMouse turns ebiten's polled state into overlay events. A click is
// delivered on release.
func (g *Game) pollMouse() {
	mx, my := ebiten.CursorPosition()
	p := image.Pt(mx, my)
	if p != g.in.last {
		g.in.last = p
		ev := &overlay.MouseEvent{Point: p}
		if anyButtonDown() {
			g.ov.MouseDragged(ev)
		} else {
			g.ov.MouseMoved(ev)
		}
	}

	for eb, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(eb) {
			g.ov.MousePressed(&overlay.MouseEvent{Point: p, Button: b})
		}
		if inpututil.IsMouseButtonJustReleased(eb) {
			g.ov.MouseClicked(&overlay.MouseEvent{Point: p, Button: b})
		}
	}

	// ebiten reports positive dy when scrolling away from the user
	if _, dy := ebiten.Wheel(); dy != 0 {
		ev := &overlay.WheelEvent{MouseEvent: overlay.MouseEvent{Point: p}, Delta: 1}
		if dy > 0 {
			ev.Delta = -1
		}
		g.ov.MouseWheelMoved(ev)
	}
}

func overlayKey(k ebiten.Key) (overlay.Key, bool) {
	switch k {
	case ebiten.KeyArrowLeft:
		return overlay.KeyLeft, true
	case ebiten.KeyArrowRight:
		return overlay.KeyRight, true
	case ebiten.KeyShiftLeft, ebiten.KeyShiftRight:
		return overlay.KeyShift, true
	case ebiten.KeyEscape:
		return overlay.KeyEscape, true
	}
	return overlay.KeyOther, false
}

func ctrlDown() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
}

func (g *Game) pollKeys() {
	g.in.keys = inpututil.AppendJustPressedKeys(g.in.keys[:0])
	for _, k := range g.in.keys {
		key, mapped := overlayKey(k)
		if !mapped {
			continue
		}
		g.ov.KeyPressed(&overlay.KeyEvent{Key: key})
		if key == overlay.KeyLeft || key == overlay.KeyRight {
			g.ov.KeyTyped(&overlay.KeyEvent{Key: key})
		}
	}
	g.in.keys = inpututil.AppendJustReleasedKeys(g.in.keys[:0])
	for _, k := range g.in.keys {
		if key, mapped := overlayKey(k); mapped {
			g.ov.KeyReleased(&overlay.KeyEvent{Key: key})
		}
	}

	if ctrlDown() {
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.export()
		}
		return
	}

	g.in.runes = ebiten.AppendInputChars(g.in.runes[:0])
	for _, r := range g.in.runes {
		ev := &overlay.KeyEvent{Key: overlay.KeyOther, Rune: r}
		g.ov.KeyTyped(ev)
		if !ev.Consumed() && (r == 'b' || r == 'B') {
			g.ov.Toggle()
		}
	}
}
