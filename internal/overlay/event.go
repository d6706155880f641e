package overlay

import "image"

type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// Key is the small set of keys the overlay reacts to. Anything else arrives
// as KeyOther with the typed rune, if any.
type Key int

const (
	KeyOther Key = iota
	KeyLeft
	KeyRight
	KeyShift
	KeyEscape
)

// MouseEvent carries an absolute screen position. Handlers mark the event
// consumed once they acted on it.
type MouseEvent struct {
	Point    image.Point
	Button   MouseButton
	consumed bool
}

func (e *MouseEvent) Consume() { e.consumed = true }

func (e *MouseEvent) Consumed() bool { return e.consumed }

// WheelEvent is a wheel rotation; positive Delta scrolls toward the user.
type WheelEvent struct {
	MouseEvent
	Delta int
}

type KeyEvent struct {
	Key      Key
	Rune     rune
	consumed bool
}

func (e *KeyEvent) Consume() { e.consumed = true }

func (e *KeyEvent) Consumed() bool { return e.consumed }
