package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/emomaxd/rt/pkg/core"
	"github.com/emomaxd/rt/pkg/geometry"
	"github.com/emomaxd/rt/pkg/material"
)

// BackgroundMaterial is the index of the material seen by rays that escape the scene
const BackgroundMaterial = 0

// ErrInvalidWorld is returned when a world fails validation
var ErrInvalidWorld = errors.New("invalid world")

// World is the read-only collection of materials and primitives traced by
// the renderer. Materials[BackgroundMaterial] is the sky; only its EmitColor
// is used.
type World struct {
	materials []material.Material
	planes    []geometry.Plane
	spheres   []geometry.Sphere
}

// NewWorld validates and copies the given scene contents
func NewWorld(materials []material.Material, planes []geometry.Plane, spheres []geometry.Sphere) (*World, error) {
	if len(materials) == 0 {
		return nil, fmt.Errorf("%w: at least one (background) material is required", ErrInvalidWorld)
	}

	for i, p := range planes {
		if p.MatIndex < 0 || p.MatIndex >= len(materials) {
			return nil, fmt.Errorf("%w: plane %d references material %d of %d", ErrInvalidWorld, i, p.MatIndex, len(materials))
		}
	}
	for i, s := range spheres {
		if s.MatIndex < 0 || s.MatIndex >= len(materials) {
			return nil, fmt.Errorf("%w: sphere %d references material %d of %d", ErrInvalidWorld, i, s.MatIndex, len(materials))
		}
	}

	return &World{
		materials: append([]material.Material(nil), materials...),
		planes:    append([]geometry.Plane(nil), planes...),
		spheres:   append([]geometry.Sphere(nil), spheres...),
	}, nil
}

// Materials returns the world's materials. Callers must not modify the slice.
func (w *World) Materials() []material.Material { return w.materials }

// Planes returns the world's planes. Callers must not modify the slice.
func (w *World) Planes() []geometry.Plane { return w.planes }

// Spheres returns the world's spheres. Callers must not modify the slice.
func (w *World) Spheres() []geometry.Sphere { return w.spheres }

// Material returns the material at index i
func (w *World) Material(i int) material.Material { return w.materials[i] }

// Background returns the material seen by rays that hit nothing
func (w *World) Background() material.Material { return w.materials[BackgroundMaterial] }

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (w *World) GetPrimitiveCount() int {
	return len(w.planes) + len(w.spheres)
}

// Intersect tests the ray against every plane and sphere and returns the closest hit
func (w *World) Intersect(ray core.Ray) (geometry.HitRecord, bool) {
	var closestHit geometry.HitRecord
	closestSoFar := math.MaxFloat64
	hitAnything := false

	for _, plane := range w.planes {
		if hit, isHit := plane.Hit(ray, geometry.MinHitDistance, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	for _, sphere := range w.spheres {
		if hit, isHit := sphere.Hit(ray, geometry.MinHitDistance, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}
