package scene

import "github.com/achilleasa/lumen/asset/texture"

// Default surface parameters for objects that do not override them.
const (
	DefaultKd        float32 = 0.8
	DefaultKs        float32 = 0.5
	DefaultShininess int32   = 32
)

// Defines the surface parameters of an object.
type Material struct {
	// Diffuse and specular coefficients.
	Kd float32
	Ks float32

	Shininess int32

	// Optional diffuse texture.
	TexturePath string
	Texture     *texture.Texture
}

// Create a material with the default coefficients.
func DefaultMaterial() Material {
	return Material{
		Kd:        DefaultKd,
		Ks:        DefaultKs,
		Shininess: DefaultShininess,
	}
}
