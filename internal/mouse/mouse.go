// Package mouse routes terminal mouse events to one of the four focus
// quadrants and a button/wheel action, per the routing rules of
// internal/session's event dispatcher.
package mouse

import tea "github.com/charmbracelet/bubbletea"

// Rect is a rectangular screen region in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Quadrant identifies one of the four panes a mouse event can land on.
type Quadrant int

const (
	NoQuadrant Quadrant = iota
	LeftFile
	LeftMenu
	RightFile
	RightMenu
)

// HitMap is the current frame's quadrant layout, rebuilt by the renderer
// every time it lays out the screen.
type HitMap struct {
	regions map[Quadrant]Rect
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{regions: make(map[Quadrant]Rect, 4)}
}

// Set records the rectangle a quadrant currently occupies. A pane with no
// menu open has no LeftMenu/RightMenu rectangle.
func (h *HitMap) Set(q Quadrant, r Rect) {
	h.regions[q] = r
}

// Clear drops every recorded rectangle, called at the start of each layout
// pass before Set is called again.
func (h *HitMap) Clear() {
	h.regions = make(map[Quadrant]Rect, 4)
}

// Test returns the quadrant whose rectangle contains (x, y), or
// NoQuadrant if none does.
func (h *HitMap) Test(x, y int) Quadrant {
	for q, r := range h.regions {
		if r.Contains(x, y) {
			return q
		}
	}
	return NoQuadrant
}

// Kind is the button/wheel action a mouse event represents.
type Kind int

const (
	Click Kind = iota
	RightClick
	MiddleClick
	WheelUp
	WheelDown
)

// Event is a mouse event already resolved to a quadrant, row and column
// local to that quadrant.
type Event struct {
	Quadrant Quadrant
	Kind     Kind
	Row      int // row within the quadrant, 0-based
	Col      int
}

// Route resolves a tea.MouseMsg against hitmap into an Event. ok is false
// for button/action combinations the dispatcher doesn't handle (press
// events other than the three buttons, or a click outside every
// quadrant).
func Route(msg tea.MouseMsg, hitmap *HitMap) (Event, bool) {
	q := hitmap.Test(msg.X, msg.Y)
	if q == NoQuadrant {
		return Event{}, false
	}
	rect := hitmap.regions[q]
	ev := Event{Quadrant: q, Row: msg.Y - rect.Y, Col: msg.X - rect.X}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		ev.Kind = WheelUp
		return ev, true
	case tea.MouseButtonWheelDown:
		ev.Kind = WheelDown
		return ev, true
	}

	if msg.Action != tea.MouseActionPress {
		return Event{}, false
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		ev.Kind = Click
	case tea.MouseButtonRight:
		ev.Kind = RightClick
	case tea.MouseButtonMiddle:
		ev.Kind = MiddleClick
	default:
		return Event{}, false
	}
	return ev, true
}

// FilePane reports whether q is one of the two file panes (as opposed to
// a menu pane), used when a wheel event should scroll the file listing
// even while a menu is open over it.
func (q Quadrant) FilePane() bool { return q == LeftFile || q == RightFile }

// MenuPane reports whether q is one of the two menu overlay panes.
func (q Quadrant) MenuPane() bool { return q == LeftMenu || q == RightMenu }

// TabIndex returns which tab (0=left, 1=right) a quadrant belongs to.
func (q Quadrant) TabIndex() int {
	if q == RightFile || q == RightMenu {
		return 1
	}
	return 0
}
