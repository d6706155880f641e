package overlay

import (
	"image"

	"github.com/j3kstrum/runelite-bingo/internal/bingo"
)

const (
	cellWidth  = Width / bingo.Size
	cellHeight = ContentHeight / bingo.Size
)

// Panel pairs a board with the two handlers that front it: its toolbar tile
// and the content pane shown while it is active.
type Panel struct {
	board   *bingo.Board
	tile    *Handler
	content *Handler

	// hovered cell in grid coordinates, Away when none
	cell image.Point
	// set once the completion of this board has been reported
	announced bool
}

func newPanel(c *Container, b *bingo.Board) *Panel {
	p := &Panel{board: b, cell: Away, announced: b.Complete()}
	p.tile = &Handler{
		Name: "board-tile",
		Icon: func() image.Image { return c.sprite(SpriteBoard) },
		Clicked: func(ev *MouseEvent, _ image.Point) {
			if c.activate(p) {
				ev.Consume()
			}
		},
		Wheel: func(ev *WheelEvent, _ image.Point) {
			switch {
			case ev.Delta < 0:
				c.Rotate(-1)
			case ev.Delta > 0:
				c.Rotate(1)
			default:
				return
			}
			ev.Consume()
		},
	}
	p.content = &Handler{
		Name: "board-content",
		Moved: func(_ *MouseEvent, at image.Point) {
			c.hoverCell(p, cellAt(at))
		},
		Clicked: func(ev *MouseEvent, at image.Point) {
			if cellAt(at) != Away {
				ev.Consume()
			}
		},
	}
	return p
}

// Board returns the board this panel shows.
func (p *Panel) Board() *bingo.Board { return p.board }

// cellAt maps a content-relative point to a grid cell, Away outside the grid.
func cellAt(at image.Point) image.Point {
	if at.X < 0 || at.Y < 0 {
		return Away
	}
	col, row := at.X/cellWidth, at.Y/cellHeight
	if col >= bingo.Size || row >= bingo.Size {
		return Away
	}
	return image.Point{X: col, Y: row}
}

func cellRect(r, c int) image.Rectangle {
	return image.Rect(c*cellWidth, r*cellHeight, (c+1)*cellWidth, (r+1)*cellHeight)
}
