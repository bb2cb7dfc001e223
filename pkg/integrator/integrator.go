package integrator

import (
	"github.com/emomaxd/rt/pkg/core"
	"github.com/emomaxd/rt/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray.
	// Returns (radiance, number of surface hits along the path)
	RayColor(ray core.Ray, world *scene.World, sampler core.Sampler) (core.Vec3, int)
}
