package mesh

import "errors"

var (
	ErrUnsupportedFormat = errors.New("mesh: unsupported file format")
)
