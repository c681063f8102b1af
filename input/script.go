package input

import (
	"fmt"
	"strconv"
	"strings"
)

// A Script is a recorded sequence of per-frame input states used to drive
// headless simulations.
type Script struct {
	frames []State
}

// Create an empty script.
func NewScript() *Script {
	return &Script{
		frames: make([]State, 0),
	}
}

// Append frameCount frames in which the given keys are held down. The
// cursor stays where the previous frame left it.
func (s *Script) Hold(frameCount int, keys ...Key) *Script {
	x, y := s.lastCursor()
	for i := 0; i < frameCount; i++ {
		st := NewState()
		st.SetCursor(x, y)
		for _, k := range keys {
			st.SetKey(k, true)
		}
		s.frames = append(s.frames, st)
	}
	return s
}

// Append frameCount frames in which the cursor moves by (dx, dy) per frame
// with no keys held.
func (s *Script) Look(frameCount int, dx, dy float64) *Script {
	x, y := s.lastCursor()
	for i := 0; i < frameCount; i++ {
		x += dx
		y += dy
		st := NewState()
		st.SetCursor(x, y)
		s.frames = append(s.frames, st)
	}
	return s
}

// Get the number of recorded frames.
func (s *Script) Len() int {
	return len(s.frames)
}

// Get the input state for a frame. Frames past the end of the script
// report no keys held and keep the last cursor position.
func (s *Script) Frame(index int) State {
	if index >= 0 && index < len(s.frames) {
		return s.frames[index].Clone()
	}
	st := NewState()
	st.SetCursor(s.lastCursor())
	return st
}

func (s *Script) lastCursor() (float64, float64) {
	if len(s.frames) == 0 {
		return 0, 0
	}
	last := s.frames[len(s.frames)-1]
	return last.CursorX, last.CursorY
}

// Parse a script definition made up of comma separated steps. Each step
// has the form "keys:frames" where keys is a '+' separated key list or
// "idle" for no keys, e.g. "w:30,w+r:10,idle:5,left:20".
func ParseScript(def string) (*Script, error) {
	s := NewScript()
	if strings.TrimSpace(def) == "" {
		return s, nil
	}

	for _, step := range strings.Split(def, ",") {
		tokens := strings.Split(strings.TrimSpace(step), ":")
		if len(tokens) != 2 {
			return nil, fmt.Errorf("input: invalid script step %q; expected keys:frames", step)
		}

		frameCount, err := strconv.Atoi(tokens[1])
		if err != nil || frameCount < 0 {
			return nil, fmt.Errorf("input: invalid frame count in script step %q", step)
		}

		var keys []Key
		if tokens[0] != "idle" {
			for _, name := range strings.Split(tokens[0], "+") {
				k, err := ParseKey(name)
				if err != nil {
					return nil, err
				}
				keys = append(keys, k)
			}
		}
		s.Hold(frameCount, keys...)
	}
	return s, nil
}
