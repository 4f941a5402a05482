// Package input turns SDL2 events into per-frame input state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event is one processed SDL event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	RelX   int
	RelY   int
	Wheel  float32
	Button uint8
}

// Input collects the events of one frame plus the accumulated mouse motion.
type Input struct {
	events []Event
	keys   []uint8
	held   map[sdl.Scancode]bool

	relX, relY int
	wheel      float32
	buttons    uint32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events for this frame. It returns true when the window was
// asked to close.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.relX, i.relY = 0, 0
	i.wheel = 0
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := convert(event)
		if !ok {
			continue
		}
		i.apply(e)
		if e.Type == EventQuit {
			quit = true
		}
	}

	i.keys = sdl.GetKeyboardState()
	_, _, i.buttons = sdl.GetMouseState()
	return quit
}

// apply folds one event into the frame state.
func (i *Input) apply(e Event) {
	i.events = append(i.events, e)
	switch e.Type {
	case EventKeyDown:
		i.held[e.Key] = true
	case EventKeyUp:
		delete(i.held, e.Key)
	case EventMouseMove:
		i.relX += e.RelX
		i.relY += e.RelY
	case EventMouseWheel:
		i.wheel += e.Wheel
	}
}

func convert(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return Event{}, false
		}
		if e.Type == sdl.KEYDOWN {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		}
		return Event{Type: EventKeyUp, Key: e.Keysym.Scancode}, true

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			RelX:   int(e.XRel),
			RelY:   int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		t := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		return Event{Type: t, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}, true

	case *sdl.MouseWheelEvent:
		dy := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		return Event{Type: EventMouseWheel, Wheel: dy}, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports whether scancode went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyDown reports whether scancode is currently held.
func (i *Input) IsKeyDown(scancode sdl.Scancode) bool {
	if int(scancode) < len(i.keys) {
		return i.keys[scancode] != 0
	}
	return i.held[scancode]
}

// IsButtonDown reports whether a mouse button (sdl.BUTTON_LEFT, ...) is held.
func (i *Input) IsButtonDown(button uint32) bool {
	return i.buttons&sdl.Button(button) != 0
}

// MouseDelta returns the relative mouse motion accumulated this frame.
func (i *Input) MouseDelta() (int, int) {
	return i.relX, i.relY
}

// Wheel returns the vertical scroll accumulated this frame.
func (i *Input) Wheel() float32 {
	return i.wheel
}

// SetRelativeMouse captures the mouse and reports only relative motion.
func SetRelativeMouse(enabled bool) {
	sdl.SetRelativeMouseMode(enabled)
}
