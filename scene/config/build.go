package config

import (
	"fmt"

	"github.com/achilleasa/lumen/asset/mesh"
	"github.com/achilleasa/lumen/asset/texture"
	"github.com/achilleasa/lumen/collision"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/scene"
	"github.com/achilleasa/lumen/types"
)

// An AssetLoader loads the meshes and textures referenced by a scene.
type AssetLoader interface {
	LoadMesh(path string) (*mesh.Mesh, error)
	LoadTexture(path string) (*texture.Texture, error)
}

// FileLoader loads assets from local files or URLs.
type FileLoader struct{}

// LoadMesh implements AssetLoader.
func (FileLoader) LoadMesh(path string) (*mesh.Mesh, error) {
	return mesh.ReadMesh(path)
}

// LoadTexture implements AssetLoader.
func (FileLoader) LoadTexture(path string) (*texture.Texture, error) {
	return texture.Load(path)
}

// Build a world from the scene description. Objects whose mesh cannot be
// loaded are logged and skipped; textures that fail to load leave the
// object untextured. Object ids are assigned in declaration order. If
// loader is nil, assets are loaded with a FileLoader.
func (c *Config) Build(loader AssetLoader) (*scene.World, error) {
	logger := log.New("scene config")
	if loader == nil {
		loader = FileLoader{}
	}

	if c.LogLevel != "" {
		level, err := log.ParseLevel(c.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("config: %s", err)
		}
		log.SetLevel(level)
	}

	world := scene.NewWorld()

	camera, err := c.buildCamera()
	if err != nil {
		return nil, err
	}
	world.Camera = camera

	for index := range c.Lights {
		light, err := c.Lights[index].build()
		if err != nil {
			return nil, fmt.Errorf("config: light %d: %s", index, err)
		}
		world.AddLight(light)
	}

	var ids scene.IDAllocator
	for index, spec := range c.Objects {
		obj, err := c.buildObject(ids.Next(), spec, loader, logger)
		if err != nil {
			logger.Warningf("skipping object %d: %s", index, err)
			continue
		}
		world.Objects.Put(obj)
	}

	logger.Noticef(
		"built scene with %d objects (%d skipped) and %d lights",
		world.Objects.Len(), len(c.Objects)-world.Objects.Len(), len(world.Lights),
	)
	return world, nil
}

func (c *Config) buildCamera() (scene.MovableCamera, error) {
	pos, _ := vec3(c.Camera.Position, types.Vec3{0, 1.8, 5})
	up, _ := vec3(c.Camera.Up, types.Vec3{0, 1, 0})
	colliderType, hasCollider, err := cameraColliderType(c.Camera.Collider)
	if err != nil {
		return nil, fmt.Errorf("config: camera: %s", err)
	}

	var camera scene.MovableCamera
	switch c.Camera.Type {
	case CameraFirstPerson:
		fps := scene.NewFirstPersonCamera(pos, up, c.Camera.FOV, c.Aspect(), c.Camera.Near, c.Camera.Far)
		if len(c.Camera.LookAt) != 0 {
			lookAt, _ := vec3(c.Camera.LookAt, types.Vec3{})
			fps.Face(lookAt)
		}
		camera = fps
	default:
		lookAt, _ := vec3(c.Camera.LookAt, pos.Add(types.Vec3{0, 0, -1}))
		camera = scene.NewCamera(pos, lookAt, up, c.Camera.FOV, c.Aspect(), c.Camera.Near, c.Camera.Far)
	}

	if hasCollider {
		camera.View().SetColliderType(colliderType)
	} else {
		camera.View().DisableCollider()
	}
	return camera, nil
}

func (c *Config) buildObject(id int, spec Object, loader AssetLoader, logger log.Logger) (*scene.Object, error) {
	meshPath, err := c.ResolvePath(spec.Mesh)
	if err != nil {
		return nil, err
	}
	m, err := loader.LoadMesh(meshPath)
	if err != nil {
		return nil, err
	}

	colliderType, _ := collision.ParseVolumeType(spec.Collider)
	obj := scene.NewObjectFromMesh(id, m, colliderType)
	obj.Position, _ = vec3(spec.Position, types.Vec3{})
	obj.Scale, _ = vec3(spec.Scale, types.Vec3{1, 1, 1})
	obj.Rotation, _ = vec3(spec.Rotation, types.Vec3{})
	obj.Spin, _ = vec3(spec.Spin, types.Vec3{})

	if spec.Kd != nil {
		obj.Material.Kd = *spec.Kd
	}
	if spec.Ks != nil {
		obj.Material.Ks = *spec.Ks
	}
	if spec.Shininess != nil {
		obj.Material.Shininess = *spec.Shininess
	}
	if spec.Texture != "" {
		if obj.Material.TexturePath, err = c.ResolvePath(spec.Texture); err != nil {
			logger.Warningf("object %d: %s", id, err)
			obj.Material.TexturePath = ""
		}
	}

	if obj.Material.TexturePath != "" {
		tex, err := loader.LoadTexture(obj.Material.TexturePath)
		if err != nil {
			logger.Warningf("object %d: could not load texture; rendering untextured: %s", id, err)
		} else {
			obj.Material.Texture = tex
		}
	}

	obj.UpdateCollider()
	logger.Debugf(
		"object %d: mesh %q with %d vertices at %v; collider: %s",
		id, m.Name, len(m.Vertices), obj.Position, obj.Collider(),
	)
	return obj, nil
}
