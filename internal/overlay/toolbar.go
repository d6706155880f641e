package overlay

import (
	"image"
	"log"
	"sync/atomic"
)

// Toolbar is the strip of square tiles above the content pane. Tile slots
// are fixed: left arrow, the visible board window, right arrow, add,
// settings and close.
type Toolbar struct {
	c *Container

	left, right, add, settings, close *Handler

	// hovered tile, -1 when none
	hovered int
	// add button acts as delete while shift is held. Icons read these
	// while a frame is composed, so they sit outside the container lock.
	deleting     atomic.Bool
	closeHovered atomic.Bool
}

func newToolbar(c *Container) *Toolbar {
	t := &Toolbar{c: c, hovered: -1}

	t.left = &Handler{
		Name: "left",
		Icon: func() image.Image { return c.sprite(SpriteLeftArrow) },
		Clicked: func(ev *MouseEvent, _ image.Point) {
			c.Rotate(-1)
			ev.Consume()
		},
		KeyTyped: func(ev *KeyEvent) {
			if ev.Key == KeyLeft {
				c.Rotate(-1)
				ev.Consume()
			}
		},
	}
	t.right = &Handler{
		Name: "right",
		Icon: func() image.Image { return c.sprite(SpriteRightArrow) },
		Clicked: func(ev *MouseEvent, _ image.Point) {
			c.Rotate(1)
			ev.Consume()
		},
		KeyTyped: func(ev *KeyEvent) {
			if ev.Key == KeyRight {
				c.Rotate(1)
				ev.Consume()
			}
		},
	}
	t.add = &Handler{
		Name: "add",
		Icon: func() image.Image {
			if t.isDeleting() {
				return c.sprite(SpriteDelete)
			}
			return c.sprite(SpriteAdd)
		},
		Clicked: func(ev *MouseEvent, _ image.Point) {
			if t.isDeleting() {
				if i, ok := c.Active(); ok {
					c.RemoveBoard(i)
				}
			} else if err := c.AddNew(); err != nil {
				log.Printf("overlay: add board: %v", err)
			}
			ev.Consume()
		},
		KeyPressed: func(ev *KeyEvent) {
			if ev.Key == KeyShift {
				t.setDeleting(true)
			}
		},
		KeyReleased: func(ev *KeyEvent) {
			if ev.Key == KeyShift {
				t.setDeleting(false)
			}
		},
	}
	t.settings = &Handler{
		Name: "settings",
		Icon: func() image.Image { return c.sprite(SpriteSettings) },
		Clicked: func(ev *MouseEvent, _ image.Point) {
			if c.opts.OnSettings != nil {
				c.opts.OnSettings()
				ev.Consume()
			}
		},
	}
	t.close = &Handler{
		Name: "close",
		Icon: func() image.Image {
			if t.isCloseHovered() {
				return c.sprite(SpriteCloseHovered)
			}
			return c.sprite(SpriteClose)
		},
		Moved: func(_ *MouseEvent, at image.Point) {
			t.setCloseHovered(inCloseArea(at))
		},
		Clicked: func(ev *MouseEvent, at image.Point) {
			if inCloseArea(at) {
				c.Hide()
				ev.Consume()
			}
		},
		KeyPressed: func(ev *KeyEvent) {
			if ev.Key == KeyEscape {
				c.Hide()
				ev.Consume()
			}
		},
	}
	return t
}

// inCloseArea reports whether a tile-relative point is on the close glyph
// rather than its border.
func inCloseArea(at image.Point) bool {
	return at.In(image.Rect(0, 0, TileSize, ToolbarHeight).Inset(ToolbarHeight / 8))
}

// resolve maps a toolbar-relative point to the tile under it. Board tiles
// map through the rotation window onto loaded boards.
func (t *Toolbar) resolve(p image.Point, panels []*Panel, first int) Lookup {
	if !p.In(toolbarRect()) {
		return miss
	}
	slot := p.X / TileSize
	at := image.Point{X: p.X % TileSize, Y: p.Y}
	switch slot {
	case tileLeft:
		return Lookup{Handler: t.left, Offset: at, Tile: slot, Board: -1}
	case tileRight:
		return Lookup{Handler: t.right, Offset: at, Tile: slot, Board: -1}
	case tileAdd:
		return Lookup{Handler: t.add, Offset: at, Tile: slot, Board: -1}
	case tileSettings:
		return Lookup{Handler: t.settings, Offset: at, Tile: slot, Board: -1}
	case tileClose:
		return Lookup{Handler: t.close, Offset: at, Tile: slot, Board: -1}
	}
	idx, ok := boardAt(slot, first, len(panels))
	if !ok {
		return Lookup{Offset: at, Tile: slot, Board: -1}
	}
	return Lookup{Handler: panels[idx].tile, Offset: at, Tile: slot, Board: idx}
}

// boardAt maps a board tile slot to a loaded board index.
func boardAt(slot, first, n int) (int, bool) {
	pos := slot - 1
	if pos < 0 || pos >= BoardTiles || pos >= n {
		return 0, false
	}
	return (pos + first) % n, true
}

// hover records the tile under p, returning whether it changed.
func (t *Toolbar) hover(p image.Point) bool {
	h := -1
	if p.In(toolbarRect()) {
		h = p.X / TileSize
	}
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if h == t.hovered {
		return false
	}
	t.hovered = h
	return true
}

func (t *Toolbar) isDeleting() bool { return t.deleting.Load() }

func (t *Toolbar) setDeleting(v bool) {
	if t.deleting.Swap(v) != v {
		t.c.RequestRedraw()
	}
}

func (t *Toolbar) isCloseHovered() bool { return t.closeHovered.Load() }

func (t *Toolbar) setCloseHovered(v bool) {
	if t.closeHovered.Swap(v) != v {
		t.c.RequestRedraw()
	}
}
