package abi

import "fmt"

// InputEventType tags the raw input-event union the windowing subsystem
// produces.
type InputEventType uint32

const (
	InputUnknown InputEventType = iota
	InputWindow
	InputKeyDown
	InputKeyUp
	InputMouseMotion
	InputMouseButtonDown
	InputMouseButtonUp
	InputMouseWheel
)

// WindowEventID discriminates window sub-events.
type WindowEventID uint8

const (
	WindowNone WindowEventID = iota
	WindowShown
	WindowHidden
	WindowMoved
	WindowResized
	WindowSizeChanged
	WindowFocusGained
	WindowFocusLost
)

// Mouse button indices.
const (
	ButtonLeft uint8 = 1 + iota
	ButtonMiddle
	ButtonRight
	ButtonX1
	ButtonX2
)

// ButtonMask calculates the button bitmask from a button index.
// It panics when button is out of range for mask calculation.
func ButtonMask(button uint8) uint32 {
	if button == 0 || button > 32 {
		panic(fmt.Sprintf("abi: button index %d out of range", button))
	}
	return 1 << (button - 1)
}

// WindowEvent is the payload of InputWindow.
type WindowEvent struct {
	Event WindowEventID
	// Data1 and Data2 carry the new dimensions for size events.
	Data1 int32
	Data2 int32
}

// KeyEvent is the payload of InputKeyDown and InputKeyUp.
type KeyEvent struct {
	Keycode int32
	Repeat  bool
}

// MouseMotionEvent is the payload of InputMouseMotion. Coordinates are
// window-relative until the bridge translates them into the frontend's
// local space.
type MouseMotionEvent struct {
	X, Y       int32
	XRel, YRel int32
	State      uint32
}

// MouseButtonEvent is the payload of the mouse button events.
type MouseButtonEvent struct {
	X, Y   int32
	Button uint8
	Clicks uint8
}

// MouseWheelEvent is the payload of InputMouseWheel. X and Y are the
// pointer location, ScrollX and ScrollY the scroll amounts.
type MouseWheelEvent struct {
	X, Y             int32
	ScrollX, ScrollY int32
}

// InputEvent is the union of raw input events, discriminated by Type.
// Only the payload field matching Type is meaningful.
type InputEvent struct {
	Type   InputEventType
	Window WindowEvent
	Key    KeyEvent
	Motion MouseMotionEvent
	Button MouseButtonEvent
	Wheel  MouseWheelEvent
}
