package geometry

import (
	"math"

	"github.com/emomaxd/rt/pkg/core"
)

// Plane represents an infinite plane with implicit surface dot(Normal, P) + D = 0
type Plane struct {
	Normal   core.Vec3 // Unit normal
	D        float64   // Offset along the normal
	MatIndex int
}

// NewPlane creates a new plane, normalizing the normal
func NewPlane(normal core.Vec3, d float64, matIndex int) Plane {
	return Plane{
		Normal:   normal.Normalize(),
		D:        d,
		MatIndex: matIndex,
	}
}

// NewPlaneThroughPoint creates a plane with the given normal passing through point
func NewPlaneThroughPoint(point, normal core.Vec3, matIndex int) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, D: -n.Dot(point), MatIndex: matIndex}
}

// Hit tests if a ray intersects with the plane strictly inside (tMin, tMax)
func (p Plane) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	denominator := p.Normal.Dot(ray.Direction)

	// Ray is parallel to the plane
	if math.Abs(denominator) <= Tolerance {
		return HitRecord{}, false
	}

	t := (-p.D - p.Normal.Dot(ray.Origin)) / denominator
	if t <= tMin || t >= tMax {
		return HitRecord{}, false
	}

	return HitRecord{
		T:        t,
		MatIndex: p.MatIndex,
		Normal:   p.Normal,
	}, true
}
