package input

import (
	"fmt"
	"strings"
)

// Key codes follow the GLFW numbering so window callbacks can store them
// without translation.
type Key int

const (
	KeySpace     Key = 32
	KeyA         Key = 65
	KeyD         Key = 68
	KeyR         Key = 82
	KeyS         Key = 83
	KeyW         Key = 87
	KeyEscape    Key = 256
	KeyRight     Key = 262
	KeyLeft      Key = 263
	KeyDown      Key = 264
	KeyUp        Key = 265
	KeyLeftShift Key = 340
)

type MouseButton int

const (
	MouseLeft   MouseButton = 0
	MouseRight  MouseButton = 1
	MouseMiddle MouseButton = 2
)

var keyNames = map[string]Key{
	"space":  KeySpace,
	"a":      KeyA,
	"d":      KeyD,
	"r":      KeyR,
	"s":      KeyS,
	"w":      KeyW,
	"escape": KeyEscape,
	"esc":    KeyEscape,
	"right":  KeyRight,
	"left":   KeyLeft,
	"down":   KeyDown,
	"up":     KeyUp,
	"lshift": KeyLeftShift,
	"shift":  KeyLeftShift,
}

// Parse a key name such as "w", "space" or "up".
func ParseKey(name string) (Key, error) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("input: unknown key %q", name)
	}
	return k, nil
}

func (k Key) String() string {
	switch k {
	case KeySpace:
		return "space"
	case KeyEscape:
		return "escape"
	case KeyLeftShift:
		return "lshift"
	case KeyRight:
		return "right"
	case KeyLeft:
		return "left"
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	}
	if k >= KeyA && k <= KeyW {
		return string(rune('a' + int(k-KeyA)))
	}
	return fmt.Sprintf("Key(%d)", int(k))
}
