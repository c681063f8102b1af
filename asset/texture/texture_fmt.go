package texture

type Format uint32

const (
	Luminance8 Format = iota
	Rgba8
)

// Get the number of bytes per pixel.
func (f Format) BytesPerPixel() int {
	if f == Luminance8 {
		return 1
	}
	return 4
}

func (f Format) String() string {
	switch f {
	case Luminance8:
		return "luminance8"
	case Rgba8:
		return "rgba8"
	}
	return "unknown"
}
