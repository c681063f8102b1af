package config

import (
	"fmt"
	"strings"

	"github.com/achilleasa/lumen/asset"
	"github.com/achilleasa/lumen/collision"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/scene"
	"github.com/achilleasa/lumen/types"
	"gopkg.in/yaml.v3"
)

// Camera types.
const (
	CameraFirstPerson = "fps"
	CameraFixed       = "fixed"
)

// Light types.
const (
	LightPoint       = "point"
	LightDirectional = "directional"
	LightOrbital     = "orbital"
)

// A scene description.
type Config struct {
	Window  Window   `yaml:"window"`
	Camera  Camera   `yaml:"camera"`
	Lights  []Light  `yaml:"lights"`
	Objects []Object `yaml:"objects"`

	// Log level name; empty keeps the current level.
	LogLevel string `yaml:"logLevel"`

	// The resource the config was loaded from. Relative asset paths are
	// resolved against it.
	source *asset.Resource
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Camera struct {
	Type     string    `yaml:"type"`
	Position []float32 `yaml:"position"`
	LookAt   []float32 `yaml:"lookAt"`
	Up       []float32 `yaml:"up"`
	FOV      float32   `yaml:"fov"`
	Near     float32   `yaml:"near"`
	Far      float32   `yaml:"far"`

	// One of sphere, box or none.
	Collider string `yaml:"collider"`
}

type Light struct {
	Type      string    `yaml:"type"`
	Position  []float32 `yaml:"position"`
	Direction []float32 `yaml:"direction"`
	Color     []float32 `yaml:"color"`
	Intensity *float32  `yaml:"intensity"`

	// Orbital light parameters.
	Center []float32 `yaml:"center"`
	Radius float32   `yaml:"radius"`
	Speed  float32   `yaml:"speed"`
	Axis   []float32 `yaml:"axis"`
}

type Object struct {
	Mesh     string    `yaml:"mesh"`
	Position []float32 `yaml:"position"`
	Scale    []float32 `yaml:"scale"`
	Rotation []float32 `yaml:"rotation"`
	Spin     []float32 `yaml:"spin"`
	Collider string    `yaml:"collider"`

	// Material overrides.
	Texture   string   `yaml:"texture"`
	Kd        *float32 `yaml:"kd"`
	Ks        *float32 `yaml:"ks"`
	Shininess *int32   `yaml:"shininess"`
}

// Load and validate a scene description from a local file or URL.
func Load(pathToConfig string) (*Config, error) {
	res, err := asset.NewResource(pathToConfig, nil)
	if err != nil {
		return nil, fmt.Errorf("config: %s", err)
	}

	data, err := res.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("config: %s", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.source = res
	return cfg, nil
}

// Parse and validate a scene description. Relative asset paths are
// resolved against the working directory.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Window.Width <= 0 {
		c.Window.Width = 1920
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 1080
	}
	if c.Window.Title == "" {
		c.Window.Title = "lumen"
	}

	if c.Camera.Type == "" {
		c.Camera.Type = CameraFirstPerson
	}
	if c.Camera.FOV <= 0 {
		c.Camera.FOV = 90
	}
	if c.Camera.Near <= 0 {
		c.Camera.Near = 0.01
	}
	if c.Camera.Far <= 0 {
		c.Camera.Far = 100
	}

	for i := range c.Lights {
		if c.Lights[i].Type == "" {
			c.Lights[i].Type = LightPoint
		}
	}
}

func (c *Config) validate() error {
	c.Camera.Type = strings.ToLower(c.Camera.Type)
	switch c.Camera.Type {
	case CameraFirstPerson, CameraFixed:
	default:
		return fmt.Errorf("config: camera: unsupported type %q", c.Camera.Type)
	}
	if c.Camera.Near >= c.Camera.Far {
		return fmt.Errorf("config: camera: near plane (%f) must be closer than far plane (%f)", c.Camera.Near, c.Camera.Far)
	}
	if _, _, err := cameraColliderType(c.Camera.Collider); err != nil {
		return fmt.Errorf("config: camera: %s", err)
	}
	for _, field := range []struct {
		name string
		v    []float32
	}{
		{"position", c.Camera.Position},
		{"lookAt", c.Camera.LookAt},
		{"up", c.Camera.Up},
	} {
		if _, err := vec3(field.v, types.Vec3{}); err != nil {
			return fmt.Errorf("config: camera: %s: %s", field.name, err)
		}
	}

	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config: %s", err)
		}
	}

	for index := range c.Lights {
		if _, err := c.Lights[index].build(); err != nil {
			return fmt.Errorf("config: light %d: %s", index, err)
		}
	}

	for index, obj := range c.Objects {
		if obj.Mesh == "" {
			return fmt.Errorf("config: object %d: missing mesh", index)
		}
		if _, err := collision.ParseVolumeType(obj.Collider); err != nil {
			return fmt.Errorf("config: object %d: %s", index, err)
		}
		for _, field := range []struct {
			name string
			v    []float32
		}{
			{"position", obj.Position},
			{"scale", obj.Scale},
			{"rotation", obj.Rotation},
			{"spin", obj.Spin},
		} {
			if _, err := vec3(field.v, types.Vec3{}); err != nil {
				return fmt.Errorf("config: object %d: %s: %s", index, field.name, err)
			}
		}
	}
	return nil
}

// Get the window aspect ratio.
func (c *Config) Aspect() float32 {
	return float32(c.Window.Width) / float32(c.Window.Height)
}

// Resolve an asset path relative to the config location.
func (c *Config) ResolvePath(pathToAsset string) (string, error) {
	return asset.ResolvePath(pathToAsset, c.source)
}

// Get the resolved paths of all meshes and texture overrides referenced by
// the config. Unresolvable paths are omitted.
func (c *Config) AssetPaths() []string {
	paths := make([]string, 0, len(c.Objects))
	for _, obj := range c.Objects {
		for _, p := range []string{obj.Mesh, obj.Texture} {
			if p == "" {
				continue
			}
			if resolved, err := c.ResolvePath(p); err == nil {
				paths = append(paths, resolved)
			}
		}
	}
	return paths
}

func (l *Light) build() (scene.LightSource, error) {
	color, err := vec4(l.Color, types.Vec4{1, 1, 1, 1})
	if err != nil {
		return nil, fmt.Errorf("color: %s", err)
	}
	intensity := float32(1)
	if l.Intensity != nil {
		intensity = *l.Intensity
	}

	switch strings.ToLower(l.Type) {
	case LightPoint, LightDirectional:
		pos, err := vec3(l.Position, types.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("position: %s", err)
		}
		dir, err := vec3(l.Direction, types.Vec3{0, -1, 0})
		if err != nil {
			return nil, fmt.Errorf("direction: %s", err)
		}
		kind := scene.PointLight
		if strings.ToLower(l.Type) == LightDirectional {
			kind = scene.DirectionalLight
		}
		light := scene.NewLight(kind, pos, color, intensity)
		light.Direction = dir.Normalize()
		return light, nil
	case LightOrbital:
		center, err := vec3(l.Center, types.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("center: %s", err)
		}
		axis, err := vec3(l.Axis, types.Vec3{0, 1, 0})
		if err != nil {
			return nil, fmt.Errorf("axis: %s", err)
		}
		if l.Radius < 0 {
			return nil, fmt.Errorf("negative orbit radius %f", l.Radius)
		}
		return scene.NewOrbitalLight(center, l.Radius, l.Speed, color, intensity, axis), nil
	}
	return nil, fmt.Errorf("unsupported type %q", l.Type)
}

// Parse a camera collider name. The second return value is false if the
// camera should move without a collider.
func cameraColliderType(name string) (scene.CameraColliderType, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sphere":
		return scene.CameraColliderSphere, true, nil
	case "box", "aabb":
		return scene.CameraColliderBox, true, nil
	case "none":
		return scene.CameraColliderSphere, false, nil
	}
	return scene.CameraColliderSphere, false, fmt.Errorf("unsupported collider %q", name)
}

// Convert a yaml float list to a vector. Empty lists yield def.
func vec3(v []float32, def types.Vec3) (types.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return types.Vec3{v[0], v[1], v[2]}, nil
	}
	return def, fmt.Errorf("expected 3 components; got %d", len(v))
}

// Convert a yaml float list to a rgba color. If alpha is omitted it
// defaults to 1.
func vec4(v []float32, def types.Vec4) (types.Vec4, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return types.Vec4{v[0], v[1], v[2], 1}, nil
	case 4:
		return types.Vec4{v[0], v[1], v[2], v[3]}, nil
	}
	return def, fmt.Errorf("expected 3 or 4 components; got %d", len(v))
}
