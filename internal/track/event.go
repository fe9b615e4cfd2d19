package track

import (
	"image"

	"github.com/atomicstack/menukit/internal/menu"
)

// EventKind distinguishes input delivered to a session.
type EventKind int

const (
	PointerMoved EventKind = iota
	PointerDown
	PointerUp
	KeyDown
	Wheel
	Tick
	Quit
)

// Key bytes for non-printing keys.
const (
	KeyHome       byte = 0x01
	KeyEnd        byte = 0x04
	KeyBackspace  byte = 0x08
	KeyTab        byte = 0x09
	KeyEnter      byte = 0x0a
	KeyPageUp     byte = 0x0b
	KeyPageDown   byte = 0x0c
	KeyEscape     byte = 0x1b
	KeyArrowLeft  byte = 0x1c
	KeyArrowRight byte = 0x1d
	KeyArrowUp    byte = 0x1e
	KeyArrowDown  byte = 0x1f
	KeySpace      byte = 0x20
)

// PrimaryButton is the button mask of the main pointer button.
const PrimaryButton uint32 = 1

// Event is one unit of input. Points are in screen cells.
type Event struct {
	Kind      EventKind
	Point     image.Point
	Buttons   uint32
	Modifiers menu.Modifiers
	// Key holds the raw key byte; printable input also sets Text.
	Key  byte
	Text string
	// Delta is the wheel movement in rows, positive downwards.
	Delta int
}
