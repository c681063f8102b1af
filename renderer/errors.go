package renderer

import "errors"

var (
	ErrNoWorld     = errors.New("renderer: no world defined")
	ErrNoCamera    = errors.New("renderer: no camera defined")
	ErrInterrupted = errors.New("renderer: interrupted while rendering")
)
