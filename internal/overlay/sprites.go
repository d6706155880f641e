package overlay

import "image"

// Sprites resolves sprite ids to images. A nil result means the sprite is
// unavailable and the slot is drawn without it.
type Sprites interface {
	Sprite(id string) image.Image
}

const (
	SpriteLeftArrow    = "ui/left_arrow"
	SpriteRightArrow   = "ui/right_arrow"
	SpriteAdd          = "ui/add"
	SpriteDelete       = "ui/delete"
	SpriteSettings     = "ui/settings"
	SpriteClose        = "ui/close"
	SpriteCloseHovered = "ui/close_hovered"
	SpriteTabEmpty     = "ui/tab"
	SpriteTabSelected  = "ui/tab_selected"
	SpriteTabHovered   = "ui/tab_hovered"
	SpriteBoard        = "ui/bingo"
	SpriteCheckmark    = "ui/checkmark"
)

// UISprites lists every toolbar sprite id, for providers that preload.
var UISprites = []string{
	SpriteLeftArrow, SpriteRightArrow, SpriteAdd, SpriteDelete,
	SpriteSettings, SpriteClose, SpriteCloseHovered,
	SpriteTabEmpty, SpriteTabSelected, SpriteTabHovered,
	SpriteBoard, SpriteCheckmark,
}

type noSprites struct{}

func (noSprites) Sprite(string) image.Image { return nil }
