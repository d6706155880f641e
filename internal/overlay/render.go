package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/j3kstrum/runelite-bingo/internal/bingo"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	colBackground = color.NRGBA{70, 61, 50, 156}
	colCell       = color.NRGBA{40, 36, 30, 200}
	colCellHover  = color.NRGBA{80, 72, 60, 220}
	colCellDone   = color.NRGBA{40, 90, 40, 200}
	colWinLine    = color.NRGBA{220, 190, 60, 90}
	colGrid       = color.NRGBA{20, 18, 15, 255}
	colTabHover   = color.NRGBA{255, 255, 255, 40}
	colTabActive  = color.NRGBA{255, 200, 0, 70}
	colText       = color.NRGBA{255, 255, 0, 255}
	colCancelled  = color.NRGBA{30, 30, 30, 170}
)

// frameView is what a single composition reads, copied under the lock.
type frameView struct {
	panels  []*Panel
	active  int
	first   int
	hovered int
	cell    image.Point
}

// Render returns the composited overlay, nil while hidden. The previous frame
// is reused until something requested a redraw.
func (c *Container) Render() *image.RGBA {
	if !c.Visible() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if dirty := c.redraw.Swap(false); dirty || c.frame == nil {
		c.frame = c.compose(c.view())
	}
	return c.frame
}

// view must be called with c.mu held.
func (c *Container) view() frameView {
	v := frameView{
		panels:  append([]*Panel(nil), c.panels...),
		active:  c.active,
		first:   c.first,
		hovered: c.toolbar.hovered,
		cell:    Away,
	}
	if len(v.panels) > 0 {
		v.cell = v.panels[v.active].cell
	}
	return v
}

func (c *Container) compose(v frameView) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, Width, Height))
	if len(v.panels) == 0 {
		// nothing loaded: blank content, toolbar still drawn
		c.drawToolbar(dst, v)
		drawCentered(dst, contentRect(), "No boards. Click + to add one.", colText)
		return dst
	}
	fill(dst, dst.Bounds(), colBackground)
	c.drawToolbar(dst, v)
	c.drawBoard(dst, v.panels[v.active].board, v.cell)
	return dst
}

func (c *Container) drawToolbar(dst *image.RGBA, v frameView) {
	icons := map[int]image.Image{
		tileLeft:     c.toolbar.left.icon(),
		tileRight:    c.toolbar.right.icon(),
		tileAdd:      c.toolbar.add.icon(),
		tileSettings: c.toolbar.settings.icon(),
		tileClose:    c.toolbar.close.icon(),
	}
	for slot := 0; slot < TotalTiles; slot++ {
		r := tileRect(slot)
		idx, isBoard := boardAt(slot, v.first, len(v.panels))
		switch {
		case isBoard && idx == v.active:
			drawSprite(dst, r, c.sprite(SpriteTabSelected))
			fill(dst, r, colTabActive)
		case slot == v.hovered:
			drawSprite(dst, r, c.sprite(SpriteTabHovered))
			fill(dst, r, colTabHover)
		default:
			drawSprite(dst, r, c.sprite(SpriteTabEmpty))
		}

		if isBoard {
			p := v.panels[idx]
			drawSprite(dst, iconRect(r), p.tile.icon())
			if p.board.Complete() {
				drawSprite(dst, badgeRect(r), c.sprite(SpriteCheckmark))
			}
			continue
		}
		icon, ok := icons[slot]
		if !ok {
			continue
		}
		if slot == tileSettings && c.opts.OnSettings == nil {
			drawFaded(dst, iconRect(r), icon, 51)
			continue
		}
		drawSprite(dst, iconRect(r), icon)
	}
}

func (c *Container) drawBoard(dst *image.RGBA, b *bingo.Board, hovered image.Point) {
	origin := contentRect().Min
	win := map[[2]int]bool{}
	if line, ok := b.WinningLine(); ok {
		for _, rc := range line.Cells() {
			win[rc] = true
		}
	}
	for r := 0; r < bingo.Size; r++ {
		for col := 0; col < bingo.Size; col++ {
			t := b.Task(r, col)
			cr := cellRect(r, col).Add(origin)
			bg := colCell
			switch {
			case t.Complete():
				bg = colCellDone
			case hovered == image.Pt(col, r):
				bg = colCellHover
			}
			fill(dst, cr, colGrid)
			inner := cr.Inset(1)
			fill(dst, inner, bg)
			if win[[2]int{r, col}] {
				fill(dst, inner, colWinLine)
			}

			drawSprite(dst, iconRect(inner), c.sprite(t.Icon()))
			cur, req := t.Progress()
			if t.Complete() {
				drawSprite(dst, badgeRect(inner), c.sprite(SpriteCheckmark))
			} else {
				label := fmt.Sprintf("%d", req-cur)
				drawText(dst, label, inner.Max.X-textWidth(label)-3, inner.Max.Y-3, colText)
			}
		}
	}
	if b.Cancelled() {
		fill(dst, contentRect(), colCancelled)
		drawCentered(dst, contentRect(), "Abandoned", colText)
	}
	if hovered != Away {
		t := b.Task(hovered.Y, hovered.X)
		strip := image.Rect(0, Height-18, Width, Height)
		fill(dst, strip, color.NRGBA{0, 0, 0, 180})
		drawCentered(dst, strip, t.Description(), color.White)
	}
}

// iconRect is the centered three-quarter square inside r.
func iconRect(r image.Rectangle) image.Rectangle {
	s := min(r.Dx(), r.Dy()) * 3 / 4
	x := r.Min.X + (r.Dx()-s)/2
	y := r.Min.Y + (r.Dy()-s)/2
	return image.Rect(x, y, x+s, y+s)
}

// badgeRect is the small square in the bottom-right corner of r.
func badgeRect(r image.Rectangle) image.Rectangle {
	s := min(r.Dx(), r.Dy()) / 3
	return image.Rect(r.Max.X-s-2, r.Max.Y-s-2, r.Max.X-2, r.Max.Y-2)
}

func fill(dst draw.Image, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Over)
}

func drawSprite(dst draw.Image, r image.Rectangle, src image.Image) {
	if src == nil || r.Empty() {
		return
	}
	draw.ApproxBiLinear.Scale(dst, r, src, src.Bounds(), draw.Over, nil)
}

// drawFaded draws src scaled into r at the given alpha.
func drawFaded(dst draw.Image, r image.Rectangle, src image.Image, alpha uint8) {
	if src == nil || r.Empty() {
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.ApproxBiLinear.Scale(tmp, tmp.Bounds(), src, src.Bounds(), draw.Src, nil)
	draw.DrawMask(dst, r, tmp, image.Point{}, image.NewUniform(color.Alpha{A: alpha}), image.Point{}, draw.Over)
}

func drawText(dst draw.Image, s string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

func drawCentered(dst draw.Image, r image.Rectangle, s string, col color.Color) {
	x := r.Min.X + (r.Dx()-textWidth(s))/2
	y := r.Min.Y + (r.Dy()+13)/2 - 2
	drawText(dst, s, x, y, col)
}
