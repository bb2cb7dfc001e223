package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/emomaxd/rt/pkg/core"
	"github.com/emomaxd/rt/pkg/geometry"
	"github.com/emomaxd/rt/pkg/material"
)

// ErrUnknownScene is returned by New for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// Scene bundles a world with the camera and sampling settings it is meant to be rendered with
type Scene struct {
	Name           string
	World          *World
	CameraConfig   geometry.CameraConfig
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxBounces      int // Maximum number of surface interactions per path
}

// DefaultSamplingConfig returns the full-quality settings
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           1280,
		Height:          720,
		SamplesPerPixel: 256,
		MaxBounces:      8,
	}
}

var builders = map[string]func() (*Scene, error){
	"default": NewDefaultScene,
	"mirror":  NewMirrorScene,
	"ground":  NewGroundScene,
	"sky":     NewSkyScene,
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the registered scene with the given name
func New(name string) (*Scene, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return build()
}

func newScene(name string, materials []material.Material, planes []geometry.Plane, spheres []geometry.Sphere) (*Scene, error) {
	world, err := NewWorld(materials, planes, spheres)
	if err != nil {
		return nil, fmt.Errorf("build %s scene: %w", name, err)
	}
	return &Scene{
		Name:           name,
		World:          world,
		CameraConfig:   geometry.DefaultCameraConfig(),
		SamplingConfig: DefaultSamplingConfig(),
	}, nil
}

// NewDefaultScene creates a diffuse ground plane with a red light sphere,
// a clay sphere and two glossy spheres under a blue-gray sky
func NewDefaultScene() (*Scene, error) {
	materials := []material.Material{
		material.NewSky(core.NewVec3(0.3, 0.4, 0.5)),
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
		material.NewLambertian(core.NewVec3(0.7, 0.5, 0.3)),
		material.NewEmissive(core.NewVec3(4.0, 0.0, 0.0)),
		material.NewMetal(core.NewVec3(0.2, 0.8, 0.2), 0.7),
		material.NewMetal(core.NewVec3(0.4, 0.8, 0.9), 0.85),
		material.NewMetal(core.NewVec3(0.95, 0.95, 0.95), 1.0),
	}

	planes := []geometry.Plane{
		geometry.NewPlane(core.NewVec3(0, 0, 1), 0, 1),
	}

	spheres := []geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0, 2),
		geometry.NewSphere(core.NewVec3(3, -2, 0), 1.0, 3),
		geometry.NewSphere(core.NewVec3(-2, -1, 2), 1.0, 4),
		geometry.NewSphere(core.NewVec3(1, -1, 3), 1.0, 5),
		geometry.NewSphere(core.NewVec3(-2, 3, 0), 2.0, 6),
	}

	return newScene("default", materials, planes, spheres)
}

// NewMirrorScene creates a row of mirror spheres lit by a warm emissive sphere
func NewMirrorScene() (*Scene, error) {
	materials := []material.Material{
		material.NewSky(core.NewVec3(0.1, 0.1, 0.15)),
		material.NewLambertian(core.NewVec3(0.6, 0.6, 0.6)),
		material.NewMetal(core.NewVec3(0.95, 0.95, 0.95), 1.0),
		material.NewMetal(core.NewVec3(0.9, 0.6, 0.3), 0.95),
		material.NewEmissive(core.NewVec3(6.0, 5.0, 3.5)),
	}

	planes := []geometry.Plane{
		geometry.NewPlane(core.NewVec3(0, 0, 1), 0, 1),
		geometry.NewPlaneThroughPoint(core.NewVec3(0, 6, 0), core.NewVec3(0, -1, 0), 1),
	}

	spheres := []geometry.Sphere{
		geometry.NewSphere(core.NewVec3(-2.5, 0, 1), 1.0, 2),
		geometry.NewSphere(core.NewVec3(0, 0, 1), 1.0, 3),
		geometry.NewSphere(core.NewVec3(2.5, 0, 1), 1.0, 2),
		geometry.NewSphere(core.NewVec3(0, 2, 5), 1.5, 4),
	}

	sc, err := newScene("mirror", materials, planes, spheres)
	if err != nil {
		return nil, err
	}
	// Raise the eye so the spheres reflect the ground and back wall
	sc.CameraConfig = geometry.MergeCameraConfig(sc.CameraConfig, geometry.CameraConfig{
		Center: core.NewVec3(0, -9, 3),
		LookAt: core.NewVec3(0, 0, 1),
	})
	return sc, nil
}

// NewGroundScene creates a single diffuse gray plane under an emissive sky
func NewGroundScene() (*Scene, error) {
	materials := []material.Material{
		material.NewSky(core.NewVec3(0.8, 0.9, 1.0)),
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
	}
	planes := []geometry.Plane{
		geometry.NewPlane(core.NewVec3(0, 0, 1), 0, 1),
	}
	return newScene("ground", materials, planes, nil)
}

// NewSkyScene contains no primitives, every ray sees the background
func NewSkyScene() (*Scene, error) {
	materials := []material.Material{
		material.NewSky(core.NewVec3(0.25, 0.5, 1.0)),
	}
	return newScene("sky", materials, nil, nil)
}
