// Package overlay composes the bingo overlay: a toolbar of square tiles above
// a content pane showing the active board. It routes pointer and key events
// through nested relative frames to exactly one leaf handler and caches the
// composited frame until something invalidates it.
package overlay

import "image"

const (
	ToolbarHeight = 40
	// TileSize equals the toolbar height so tiles are square.
	TileSize   = ToolbarHeight
	TotalTiles = 12
	// BoardTiles is what is left after left, right, add, settings and close.
	BoardTiles    = TotalTiles - 5
	ContentHeight = 360
	Width         = TileSize * TotalTiles
	Height        = ToolbarHeight + ContentHeight
)

// Fixed tile slots.
const (
	tileLeft     = 0
	tileRight    = TotalTiles - 4
	tileAdd      = TotalTiles - 3
	tileSettings = TotalTiles - 2
	tileClose    = TotalTiles - 1
)

// Away is the offset handed to a handler the pointer just left.
var Away = image.Point{X: -1, Y: -1}

// Lookup is the result of resolving an overlay-relative point.
type Lookup struct {
	Handler *Handler
	// Offset is relative to the handler's own origin.
	Offset image.Point
	// Tile is the toolbar slot, -1 outside the toolbar.
	Tile int
	// Board indexes the loaded boards for board tiles and the content
	// pane, -1 otherwise.
	Board int
}

var miss = Lookup{Offset: Away, Tile: -1, Board: -1}

// Valid reports whether the lookup names a handler at a non-negative offset.
func (l Lookup) Valid() bool {
	return l.Handler != nil && l.Offset.X >= 0 && l.Offset.Y >= 0
}

func toolbarRect() image.Rectangle { return image.Rect(0, 0, Width, ToolbarHeight) }

func contentRect() image.Rectangle { return image.Rect(0, ToolbarHeight, Width, Height) }

func tileRect(i int) image.Rectangle {
	return image.Rect(i*TileSize, 0, (i+1)*TileSize, ToolbarHeight)
}
