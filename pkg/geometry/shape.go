package geometry

import "github.com/emomaxd/rt/pkg/core"

const (
	// Tolerance is the magnitude below which a denominator or discriminant is treated as zero
	Tolerance = 1e-4
	// MinHitDistance keeps a bounced ray from re-hitting the surface it just left
	MinHitDistance = 1e-3
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64   // Parameter t along the ray
	MatIndex int       // Material index of the surface that was hit
	Normal   core.Vec3 // Unit surface normal at the hit point
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool)
}
