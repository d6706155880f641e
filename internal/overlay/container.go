package overlay

import (
	"image"
	"log"
	"sync"
	"sync/atomic"

	"github.com/j3kstrum/runelite-bingo/internal/bingo"
)

// Options wires a Container to its host.
type Options struct {
	Sprites Sprites
	// Origin is the screen position of the overlay's top-left corner.
	Origin image.Point
	// NewBoard backs the add button.
	NewBoard func() (*bingo.Board, error)
	// OnSettings backs the settings button; nil dims it.
	OnSettings func()
	// OnAdd and OnRemove observe board list changes.
	OnAdd    func(b *bingo.Board)
	OnRemove func(b *bingo.Board)
}

// Container is the routing root and composition owner. Event entry points
// are called from the input goroutine; RequestRedraw and Render may be
// called from anywhere.
type Container struct {
	opts    Options
	toolbar *Toolbar

	visible atomic.Bool
	redraw  atomic.Bool

	mu     sync.Mutex
	origin image.Point
	panels []*Panel
	active int
	first  int
	// last overlay-relative pointer position, updated on every move
	prev  image.Point
	frame *image.RGBA
}

func New(opts Options) *Container {
	if opts.Sprites == nil {
		opts.Sprites = noSprites{}
	}
	c := &Container{opts: opts, origin: opts.Origin, prev: Away}
	c.toolbar = newToolbar(c)
	c.redraw.Store(true)
	return c
}

func (c *Container) sprite(id string) image.Image { return c.opts.Sprites.Sprite(id) }

// RequestRedraw marks the cached frame stale.
func (c *Container) RequestRedraw() { c.redraw.Store(true) }

func (c *Container) Visible() bool { return c.visible.Load() }

func (c *Container) Show() {
	if !c.visible.Swap(true) {
		c.RequestRedraw()
	}
}

// Hide closes the overlay and drops any hover or modifier state.
func (c *Container) Hide() {
	if !c.visible.Swap(false) {
		return
	}
	c.mu.Lock()
	prev := c.prev
	c.mu.Unlock()
	if at := c.resolve(prev); at.Handler != nil {
		at.Handler.moved(&MouseEvent{Point: Away}, Away)
	}
	c.toolbar.hover(Away)
	c.toolbar.setDeleting(false)
	c.RequestRedraw()
}

func (c *Container) Toggle() {
	if c.Visible() {
		c.Hide()
	} else {
		c.Show()
	}
}

func (c *Container) SetOrigin(p image.Point) {
	c.mu.Lock()
	c.origin = p
	c.mu.Unlock()
}

// Bounds is the overlay rectangle in screen coordinates.
func (c *Container) Bounds() image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return image.Rect(0, 0, Width, Height).Add(c.origin)
}

// Boards returns the loaded boards in order.
func (c *Container) Boards() []*bingo.Board {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*bingo.Board, len(c.panels))
	for i, p := range c.panels {
		out[i] = p.board
	}
	return out
}

// Active returns the active board index, false when no board is loaded.
func (c *Container) Active() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, len(c.panels) > 0
}

// First returns the index of the board shown in the first board tile.
func (c *Container) First() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.first
}

// Hovered returns the hovered toolbar tile, -1 when none.
func (c *Container) Hovered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toolbar.hovered
}

// SetActive makes board i active. It reports whether anything changed.
func (c *Container) SetActive(i int) bool {
	c.mu.Lock()
	if i < 0 || i >= len(c.panels) || i == c.active {
		c.mu.Unlock()
		return false
	}
	c.active = i
	c.mu.Unlock()
	c.RequestRedraw()
	return true
}

func (c *Container) activate(p *Panel) bool {
	c.mu.Lock()
	idx := -1
	for i, q := range c.panels {
		if q == p {
			idx = i
			break
		}
	}
	c.mu.Unlock()
	return c.SetActive(idx)
}

// Rotate shifts the board tile window by dir, wrapping at both ends. With
// no boards loaded the window resets to 0.
func (c *Container) Rotate(dir int) {
	c.mu.Lock()
	if n := len(c.panels); n == 0 {
		c.first = 0
	} else {
		c.first = ((c.first+dir)%n + n) % n
	}
	c.mu.Unlock()
	c.RequestRedraw()
}

// AddBoard appends b. The first board loaded becomes active.
func (c *Container) AddBoard(b *bingo.Board) {
	c.mu.Lock()
	c.panels = append(c.panels, newPanel(c, b))
	n := len(c.panels)
	c.mu.Unlock()
	log.Printf("overlay: added board %s (%d loaded)", b.ID(), n)
	c.RequestRedraw()
	if c.opts.OnAdd != nil {
		c.opts.OnAdd(b)
	}
}

// AddNew asks the host for a fresh board and appends it.
func (c *Container) AddNew() error {
	if c.opts.NewBoard == nil {
		return nil
	}
	b, err := c.opts.NewBoard()
	if err != nil {
		return err
	}
	c.AddBoard(b)
	return nil
}

// RemoveBoard cancels and drops board i. The active board stays selected
// when possible, and both indices are clamped to the remaining boards.
func (c *Container) RemoveBoard(i int) {
	c.mu.Lock()
	if i < 0 || i >= len(c.panels) {
		c.mu.Unlock()
		return
	}
	p := c.panels[i]
	c.panels = append(c.panels[:i:i], c.panels[i+1:]...)
	n := len(c.panels)
	if i < c.active {
		c.active--
	}
	c.active = clamp(c.active, n)
	c.first = clamp(c.first, n)
	c.mu.Unlock()

	p.board.Cancel()
	log.Printf("overlay: removed board %s (%d loaded)", p.board.ID(), n)
	c.RequestRedraw()
	if c.opts.OnRemove != nil {
		c.opts.OnRemove(p.board)
	}
}

// Clear drops every board without cancelling them.
func (c *Container) Clear() {
	c.mu.Lock()
	for _, p := range c.panels {
		p.board.Detach()
	}
	c.panels = nil
	c.active, c.first = 0, 0
	c.mu.Unlock()
	c.RequestRedraw()
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// NewlyCompleted returns boards that reached a winning line since the last
// call. Each board is reported once.
func (c *Container) NewlyCompleted() []*bingo.Board {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*bingo.Board
	for _, p := range c.panels {
		if !p.announced && p.board.Complete() {
			p.announced = true
			out = append(out, p.board)
		}
	}
	return out
}

func (c *Container) hoverCell(p *Panel, cell image.Point) {
	c.mu.Lock()
	changed := p.cell != cell
	p.cell = cell
	c.mu.Unlock()
	if changed {
		c.RequestRedraw()
	}
}

// Resolve maps an overlay-relative point to the leaf handler under it.
func (c *Container) Resolve(p image.Point) Lookup { return c.resolve(p) }

func (c *Container) resolve(p image.Point) Lookup {
	c.mu.Lock()
	panels, first, active := c.panels, c.first, c.active
	c.mu.Unlock()

	if p.In(toolbarRect()) {
		return c.toolbar.resolve(p, panels, first)
	}
	if !p.In(contentRect()) {
		return miss
	}
	at := p.Sub(contentRect().Min)
	if len(panels) == 0 {
		return Lookup{Offset: at, Tile: -1, Board: -1}
	}
	return Lookup{Handler: panels[active].content, Offset: at, Tile: -1, Board: active}
}

func (c *Container) local(abs image.Point) image.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return abs.Sub(c.origin)
}

func (c *Container) MouseClicked(ev *MouseEvent) {
	if !c.Visible() {
		return
	}
	if at := c.resolve(c.local(ev.Point)); at.Valid() {
		at.Handler.clicked(ev, at.Offset)
	}
}

func (c *Container) MousePressed(ev *MouseEvent) {
	if !c.Visible() {
		return
	}
	if at := c.resolve(c.local(ev.Point)); at.Valid() {
		at.Handler.pressed(ev, at.Offset)
	}
}

// MouseMoved delivers hover transitions. When the pointer crosses from one
// handler to another the old one gets Away and the new one its offset; the
// same handler only gets its new offset.
func (c *Container) MouseMoved(ev *MouseEvent) {
	p := c.local(ev.Point)
	c.mu.Lock()
	prev := c.prev
	c.prev = p
	c.mu.Unlock()
	if !c.Visible() {
		return
	}
	if c.toolbar.hover(p) {
		c.RequestRedraw()
	}

	cur, old := c.resolve(p), c.resolve(prev)
	if cur.Handler == old.Handler {
		if cur.Valid() {
			cur.Handler.moved(ev, cur.Offset)
		}
		return
	}
	if old.Handler != nil {
		old.Handler.moved(ev, Away)
	}
	if cur.Valid() {
		cur.Handler.moved(ev, cur.Offset)
	}
}

func (c *Container) MouseDragged(ev *MouseEvent) { c.MouseMoved(ev) }

func (c *Container) MouseWheelMoved(ev *WheelEvent) {
	if !c.Visible() {
		return
	}
	if at := c.resolve(c.local(ev.Point)); at.Valid() {
		at.Handler.wheel(ev, at.Offset)
	}
}

// keyTarget routes keys: arrows go to their buttons, shift to add, escape
// to close and everything else to the active board.
func (c *Container) keyTarget(k Key) *Handler {
	switch k {
	case KeyLeft:
		return c.toolbar.left
	case KeyRight:
		return c.toolbar.right
	case KeyShift:
		return c.toolbar.add
	case KeyEscape:
		return c.toolbar.close
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.panels) == 0 {
		return nil
	}
	return c.panels[c.active].content
}

func (c *Container) KeyTyped(ev *KeyEvent) {
	if c.Visible() {
		c.keyTarget(ev.Key).keyTyped(ev)
	}
}

func (c *Container) KeyPressed(ev *KeyEvent) {
	if c.Visible() {
		c.keyTarget(ev.Key).keyPressed(ev)
	}
}

// KeyReleased is delivered while hidden too so modifier state never sticks.
func (c *Container) KeyReleased(ev *KeyEvent) {
	c.keyTarget(ev.Key).keyReleased(ev)
}
