package display

import (
	"sync"

	"github.com/frippertronics/record-roll/internal/model"
	"github.com/google/uuid"
)

// State is the lifecycle state of the display.
type State int

const (
	// StateIdle is before the first record is shown.
	StateIdle State = iota
	// StateShowing means an image is on screen.
	StateShowing
	// StateTerminated means the window was closed. Nothing more happens.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateShowing:
		return "showing"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota + 1
	ButtonMiddle
	ButtonRight
)

// Event is an input event delivered to the Controller.
type Event interface {
	window() uuid.UUID
}

// MousePress is a button press inside a window.
type MousePress struct {
	Window uuid.UUID
	Button Button
}

func (e MousePress) window() uuid.UUID { return e.Window }

// CloseRequested asks for a window to be closed.
type CloseRequested struct {
	Window uuid.UUID
}

func (e CloseRequested) window() uuid.UUID { return e.Window }

// Action tells the caller what to do after an event.
type Action int

const (
	ActionNone Action = iota
	// ActionRoll means pick, fetch and show a new record.
	ActionRoll
	// ActionQuit means shut the application down.
	ActionQuit
)

// Controller tracks which record is on screen and turns input events into
// actions.
//
// At most one roll is in flight: a left press while rolling is ignored.
// Events addressed to other windows are ignored. Controller is safe for
// concurrent use.
type Controller struct {
	id uuid.UUID

	mu      sync.Mutex
	state   State
	current model.Record
	rolling bool
}

// NewController creates a Controller for a new window.
func NewController() *Controller {
	return &Controller{id: uuid.New()}
}

// ID returns the window id events must carry.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the record on screen and whether there is one.
func (c *Controller) Current() (model.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.state == StateShowing
}

// Caption returns the window title: the current record's caption, or
// empty before anything is shown.
func (c *Controller) Caption() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateShowing {
		return ""
	}
	return c.current.Caption()
}

// Rolling reports whether a roll is in flight.
func (c *Controller) Rolling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rolling
}

// Start requests the initial roll. It returns ActionNone unless the
// Controller is idle and not already rolling.
func (c *Controller) Start() Action {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle || c.rolling {
		return ActionNone
	}
	c.rolling = true
	return ActionRoll
}

// Handle applies one input event.
func (c *Controller) Handle(ev Event) Action {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateTerminated || ev == nil || ev.window() != c.id {
		return ActionNone
	}

	switch ev := ev.(type) {
	case CloseRequested:
		c.state = StateTerminated
		c.rolling = false
		return ActionQuit
	case MousePress:
		if ev.Button != ButtonLeft || c.rolling {
			return ActionNone
		}
		c.rolling = true
		return ActionRoll
	}
	return ActionNone
}

// Show records that rec is now on screen and ends the in-flight roll.
// It is a no-op once terminated.
func (c *Controller) Show(rec model.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateTerminated {
		return
	}
	c.current = rec
	c.state = StateShowing
	c.rolling = false
}

// Fail ends the in-flight roll without changing what is on screen.
func (c *Controller) Fail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rolling = false
}
