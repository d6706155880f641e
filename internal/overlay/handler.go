package overlay

import "image"

// Handler is a leaf of the routing tree: an icon plus event callbacks. Nil
// callbacks ignore the event. Mouse callbacks receive the point relative to
// the handler's origin, or Away when the pointer just left it.
type Handler struct {
	Name string
	Icon func() image.Image

	KeyTyped    func(ev *KeyEvent)
	KeyPressed  func(ev *KeyEvent)
	KeyReleased func(ev *KeyEvent)

	Clicked func(ev *MouseEvent, at image.Point)
	Pressed func(ev *MouseEvent, at image.Point)
	Moved   func(ev *MouseEvent, at image.Point)
	Wheel   func(ev *WheelEvent, at image.Point)
}

func (h *Handler) String() string {
	if h == nil {
		return "<none>"
	}
	return h.Name
}

func (h *Handler) icon() image.Image {
	if h == nil || h.Icon == nil {
		return nil
	}
	return h.Icon()
}

func (h *Handler) keyTyped(ev *KeyEvent) {
	if h != nil && h.KeyTyped != nil {
		h.KeyTyped(ev)
	}
}

func (h *Handler) keyPressed(ev *KeyEvent) {
	if h != nil && h.KeyPressed != nil {
		h.KeyPressed(ev)
	}
}

func (h *Handler) keyReleased(ev *KeyEvent) {
	if h != nil && h.KeyReleased != nil {
		h.KeyReleased(ev)
	}
}

func (h *Handler) clicked(ev *MouseEvent, at image.Point) {
	if h != nil && h.Clicked != nil {
		h.Clicked(ev, at)
	}
}

func (h *Handler) pressed(ev *MouseEvent, at image.Point) {
	if h != nil && h.Pressed != nil {
		h.Pressed(ev, at)
	}
}

func (h *Handler) moved(ev *MouseEvent, at image.Point) {
	if h != nil && h.Moved != nil {
		h.Moved(ev, at)
	}
}

func (h *Handler) wheel(ev *WheelEvent, at image.Point) {
	if h != nil && h.Wheel != nil {
		h.Wheel(ev, at)
	}
}
