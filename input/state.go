package input

// A State is a snapshot of the keyboard, mouse buttons and cursor for a
// single frame. The frame loop captures one State per frame and hands it to
// every entity that moves in response to input.
type State struct {
	Keys    map[Key]bool
	Buttons map[MouseButton]bool

	CursorX float64
	CursorY float64
}

// Create an empty state with no keys or buttons pressed.
func NewState() State {
	return State{
		Keys:    make(map[Key]bool),
		Buttons: make(map[MouseButton]bool),
	}
}

// Returns true if k is held down.
func (s State) Pressed(k Key) bool {
	return s.Keys[k]
}

// Returns true if b is held down.
func (s State) ButtonPressed(b MouseButton) bool {
	return s.Buttons[b]
}

// Record a key transition.
func (s *State) SetKey(k Key, down bool) {
	if s.Keys == nil {
		s.Keys = make(map[Key]bool)
	}
	if down {
		s.Keys[k] = true
	} else {
		delete(s.Keys, k)
	}
}

// Record a mouse button transition.
func (s *State) SetButton(b MouseButton, down bool) {
	if s.Buttons == nil {
		s.Buttons = make(map[MouseButton]bool)
	}
	if down {
		s.Buttons[b] = true
	} else {
		delete(s.Buttons, b)
	}
}

// Record the cursor position.
func (s *State) SetCursor(x, y float64) {
	s.CursorX, s.CursorY = x, y
}

// Get a deep copy of the state. The copy can be handed to the frame step
// while the window callbacks keep mutating the original.
func (s State) Clone() State {
	out := State{
		Keys:    make(map[Key]bool, len(s.Keys)),
		Buttons: make(map[MouseButton]bool, len(s.Buttons)),
		CursorX: s.CursorX,
		CursorY: s.CursorY,
	}
	for k, v := range s.Keys {
		out.Keys[k] = v
	}
	for b, v := range s.Buttons {
		out.Buttons[b] = v
	}
	return out
}
