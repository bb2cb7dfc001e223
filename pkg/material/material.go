package material

import (
	"github.com/emomaxd/rt/pkg/core"
)

// Material describes how a surface emits and reflects light
type Material struct {
	Scatter   float64   // 0.0 = pure diffuse, 1.0 = perfect mirror
	EmitColor core.Vec3 // Radiance emitted regardless of incoming light
	RefColor  core.Vec3 // Fraction of incoming light reflected per channel
}

// NewMaterial creates a material, clamping scatter to [0, 1]
func NewMaterial(scatter float64, emit, ref core.Vec3) Material {
	return Material{
		Scatter:   max(0.0, min(1.0, scatter)),
		EmitColor: emit,
		RefColor:  ref,
	}
}

// NewSky creates a background material that only emits
func NewSky(emit core.Vec3) Material {
	return Material{EmitColor: emit}
}

// NewLambertian creates a purely diffuse reflector
func NewLambertian(albedo core.Vec3) Material {
	return Material{RefColor: albedo}
}

// NewMetal creates a reflector that blends toward a mirror by scatter
func NewMetal(albedo core.Vec3, scatter float64) Material {
	return NewMaterial(scatter, core.Vec3{}, albedo)
}

// NewEmissive creates a light-emitting material that reflects nothing
func NewEmissive(emission core.Vec3) Material {
	return Material{EmitColor: emission}
}

// IsEmissive reports whether the material emits any light
func (m Material) IsEmissive() bool {
	return m.EmitColor != (core.Vec3{})
}

// Bounce returns the next unit ray direction after hitting a surface with
// this material. The diffuse lobe is the normal offset by a random vector in
// [-1,1)³; Scatter blends it toward the mirror reflection of incoming.
func (m Material) Bounce(incoming, normal core.Vec3, sampler core.Sampler) core.Vec3 {
	pureBounce := incoming.Reflect(normal)
	randomBounce := normal.Add(sampler.Bilateral3()).Normalize()
	return randomBounce.Lerp(pureBounce, m.Scatter).Normalize()
}
