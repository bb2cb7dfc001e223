package integrator

import (
	"github.com/emomaxd/rt/pkg/core"
	"github.com/emomaxd/rt/pkg/scene"
)

// PathTracingIntegrator implements a fixed-length random walk: every hit adds
// its emission weighted by the reflectance gathered so far, and the walk ends
// at the sky or after MaxBounces surface interactions.
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world *scene.World, sampler core.Sampler) (core.Vec3, int) {
	result := core.Vec3{}
	attenuation := core.NewVec3(1, 1, 1)

	for bounce := 0; bounce < pt.config.MaxBounces; bounce++ {
		hit, isHit := world.Intersect(ray)
		if !isHit {
			// Path escaped to the sky
			sky := world.Background()
			result = result.Add(attenuation.MultiplyVec(sky.EmitColor))
			return result, bounce
		}

		mat := world.Material(hit.MatIndex)
		result = result.Add(attenuation.MultiplyVec(mat.EmitColor))
		attenuation = attenuation.MultiplyVec(mat.RefColor)

		origin := ray.At(hit.T)
		direction := mat.Bounce(ray.Direction, hit.Normal, sampler)
		ray = core.NewRay(origin, direction)
	}

	return result, pt.config.MaxBounces
}
