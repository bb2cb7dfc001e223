package geometry

import (
	"math"

	"github.com/emomaxd/rt/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	MatIndex int
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, matIndex int) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		MatIndex: matIndex,
	}
}

// Hit tests if a ray intersects with the sphere strictly inside (tMin, tMax)
func (s Sphere) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	// Ray origin in the sphere's local frame
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4.0*a*c
	if discriminant <= Tolerance {
		return HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	near := (-b - sqrtD) / (2.0 * a)
	far := (-b + sqrtD) / (2.0 * a)

	// Prefer the near root, fall back to the far one when the origin is inside
	root := near
	if root <= tMin {
		root = far
	}
	if root <= tMin || root >= tMax {
		return HitRecord{}, false
	}

	hitPoint := ray.At(root)
	return HitRecord{
		T:        root,
		MatIndex: s.MatIndex,
		Normal:   hitPoint.Subtract(s.Center).Normalize(),
	}, true
}
