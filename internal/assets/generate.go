package assets

import (
	"hash/fnv"
	"image"
	"image/color"
	"math"
	"path"
	"strings"

	"github.com/j3kstrum/runelite-bingo/internal/overlay"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// IconSize is the edge length of generated icons.
const IconSize = 32

var (
	colFrame    = color.NRGBA{120, 100, 70, 255}
	colGold     = color.NRGBA{240, 196, 25, 255}
	colLight    = color.NRGBA{220, 210, 190, 255}
	colArrow    = color.NRGBA{230, 220, 200, 255}
	colAdd      = color.NRGBA{90, 200, 90, 255}
	colDelete   = color.NRGBA{210, 60, 50, 255}
	colClose    = color.NRGBA{180, 40, 30, 255}
	colCloseHot = color.NRGBA{255, 80, 60, 255}
	colGear     = color.NRGBA{160, 160, 170, 255}
	colCheck    = color.NRGBA{60, 220, 60, 255}
)

// generate draws a stand-in icon for id.
func generate(id string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, IconSize, IconSize))
	switch id {
	case overlay.SpriteLeftArrow:
		arrow(img, true)
	case overlay.SpriteRightArrow:
		arrow(img, false)
	case overlay.SpriteAdd:
		fillRect(img, image.Rect(14, 6, 18, 26), colAdd)
		fillRect(img, image.Rect(6, 14, 26, 18), colAdd)
	case overlay.SpriteDelete:
		fillRect(img, image.Rect(6, 14, 26, 18), colDelete)
	case overlay.SpriteSettings:
		gear(img)
	case overlay.SpriteClose:
		cross(img, colClose)
	case overlay.SpriteCloseHovered:
		cross(img, colCloseHot)
	case overlay.SpriteTabEmpty:
		frame(img, colFrame)
	case overlay.SpriteTabSelected:
		frame(img, colGold)
	case overlay.SpriteTabHovered:
		frame(img, colLight)
	case overlay.SpriteBoard:
		grid(img)
	case overlay.SpriteCheckmark:
		line(img, 6, 17, 13, 24, 2.5, colCheck)
		line(img, 13, 24, 26, 8, 2.5, colCheck)
	default:
		if strings.HasPrefix(id, "npc/") {
			badge(img, id)
		} else {
			missing(img)
		}
	}
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

func arrow(img *image.RGBA, left bool) {
	for i := 0; i <= 14; i++ {
		h := i * 9 / 14
		x := 9 + i
		if !left {
			x = IconSize - 1 - x
		}
		fillRect(img, image.Rect(x, 16-h, x+1, 16+h+1), colArrow)
	}
}

func cross(img *image.RGBA, col color.Color) {
	line(img, 8, 8, 24, 24, 2, col)
	line(img, 24, 8, 8, 24, 2, col)
}

func frame(img *image.RGBA, col color.Color) {
	b := img.Bounds()
	fillRect(img, b, color.NRGBA{50, 42, 32, 200})
	fillRect(img, image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+2), col)
	fillRect(img, image.Rect(b.Min.X, b.Max.Y-2, b.Max.X, b.Max.Y), col)
	fillRect(img, image.Rect(b.Min.X, b.Min.Y, b.Min.X+2, b.Max.Y), col)
	fillRect(img, image.Rect(b.Max.X-2, b.Min.Y, b.Max.X, b.Max.Y), col)
}

func gear(img *image.RGBA) {
	for k := 0; k < 8; k++ {
		a := float64(k) * math.Pi / 4
		x := 16 + int(math.Round(11*math.Cos(a)))
		y := 16 + int(math.Round(11*math.Sin(a)))
		fillRect(img, image.Rect(x-2, y-2, x+2, y+2), colGear)
	}
	disc(img, 16, 16, 9, colGear)
	disc(img, 16, 16, 4, color.Transparent)
}

func grid(img *image.RGBA) {
	const cell = 5
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			col := colLight
			if (r+c)%2 == 0 {
				col = colGold
			}
			x, y := 4+c*cell, 4+r*cell
			fillRect(img, image.Rect(x, y, x+cell-1, y+cell-1), col)
		}
	}
}

// badge is a disc tinted per id carrying the target's initial.
func badge(img *image.RGBA, id string) {
	h := fnv.New32a()
	h.Write([]byte(id))
	sum := h.Sum32()
	col := color.NRGBA{uint8(80 + sum%150), uint8(80 + (sum>>8)%150), uint8(80 + (sum>>16)%150), 255}
	disc(img, 16, 16, 14, col)

	name := strings.TrimSpace(path.Base(id))
	if name == "" {
		return
	}
	initial := strings.ToUpper(name[:1])
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{20, 20, 20, 255}),
		Face: basicfont.Face7x13,
	}
	w := d.MeasureString(initial).Ceil()
	d.Dot = fixed.P((IconSize-w)/2, 16+13/2-2)
	d.DrawString(initial)
}

func missing(img *image.RGBA) {
	for y := 0; y < IconSize; y += 8 {
		for x := 0; x < IconSize; x += 8 {
			if (x/8+y/8)%2 == 0 {
				fillRect(img, image.Rect(x, y, x+8, y+8), color.NRGBA{255, 0, 255, 255})
			}
		}
	}
}

// disc paints a filled circle, replacing what was there.
func disc(img *image.RGBA, cx, cy, r int, col color.Color) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, col)
			}
		}
	}
}

// line paints a thick segment.
func line(img *image.RGBA, x0, y0, x1, y1 int, width float64, col color.Color) {
	steps := max(abs(x1-x0), abs(y1-y0), 1) * 2
	half := width / 2
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := float64(x0) + t*float64(x1-x0)
		y := float64(y0) + t*float64(y1-y0)
		fillRect(img, image.Rect(int(x-half), int(y-half), int(math.Ceil(x+half)), int(math.Ceil(y+half))), col)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
