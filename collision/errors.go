package collision

import "errors"

var (
	ErrUnknownVolumeType = errors.New("collision: unknown volume type")
)
