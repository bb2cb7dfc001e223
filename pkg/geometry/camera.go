package geometry

import (
	"github.com/emomaxd/rt/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center       core.Vec3 // Eye position
	LookAt       core.Vec3 // Point the camera is looking at
	Up           core.Vec3 // World up direction
	FilmDistance float64   // Distance from the eye to the film plane
	FilmWidth    float64   // Film extent before aspect correction
	FilmHeight   float64
}

// DefaultCameraConfig returns a camera ten units back from the origin, looking at it with +Z up
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:       core.NewVec3(0, -10, 1),
		LookAt:       core.NewVec3(0, 0, 0),
		Up:           core.NewVec3(0, 0, 1),
		FilmDistance: 1.0,
		FilmWidth:    1.0,
		FilmHeight:   1.0,
	}
}

// MergeCameraConfig fills zero-valued fields of override from base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.FilmDistance != 0 {
		result.FilmDistance = override.FilmDistance
	}
	if override.FilmWidth != 0 {
		result.FilmWidth = override.FilmWidth
	}
	if override.FilmHeight != 0 {
		result.FilmHeight = override.FilmHeight
	}
	return result
}

// Camera generates primary rays through a pinhole film plane
type Camera struct {
	config     CameraConfig
	width      int
	height     int
	origin     core.Vec3
	forward    core.Vec3 // points from the scene back toward the eye
	right      core.Vec3
	up         core.Vec3
	filmCenter core.Vec3
	halfFilmW  float64
	halfFilmH  float64
	halfPixW   float64 // half a pixel in [-1, 1] film coordinates
	halfPixH   float64
}

// NewCamera creates a camera for an image of width x height pixels
func NewCamera(config CameraConfig, width, height int) *Camera {
	forward := config.Center.Subtract(config.LookAt).Normalize()
	right := config.Up.Cross(forward).Normalize()
	up := forward.Cross(right).Normalize()

	// Shrink the film along the smaller image dimension
	filmW := config.FilmWidth
	filmH := config.FilmHeight
	if width > height {
		filmH = filmW * float64(height) / float64(width)
	} else if height > width {
		filmW = filmH * float64(width) / float64(height)
	}

	return &Camera{
		config:     config,
		width:      width,
		height:     height,
		origin:     config.Center,
		forward:    forward,
		right:      right,
		up:         up,
		filmCenter: config.Center.Subtract(forward.Multiply(config.FilmDistance)),
		halfFilmW:  0.5 * filmW,
		halfFilmH:  0.5 * filmH,
		halfPixW:   1.0 / float64(width),
		halfPixH:   1.0 / float64(height),
	}
}

// Basis returns the camera's right, up and backward unit vectors
func (c *Camera) Basis() (right, up, forward core.Vec3) {
	return c.right, c.up, c.forward
}

// FilmCoordinates maps the center of pixel (i, j) to [-1, 1] film space.
// Row 0 is the top of the image.
func (c *Camera) FilmCoordinates(i, j int) core.Vec2 {
	x := -1.0 + 2.0*(float64(i)+0.5)/float64(c.width)
	y := 1.0 - 2.0*(float64(j)+0.5)/float64(c.height)
	return core.NewVec2(x, y)
}

// RayThrough returns the ray from the eye through film coordinates in [-1, 1]²
func (c *Camera) RayThrough(film core.Vec2) core.Ray {
	filmP := c.filmCenter.
		Add(c.right.Multiply(film.X * c.halfFilmW)).
		Add(c.up.Multiply(film.Y * c.halfFilmH))
	return core.NewRay(c.origin, filmP.Subtract(c.origin).Normalize())
}

// GetRay generates a jittered ray for pixel (i, j)
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	film := c.FilmCoordinates(i, j)
	jitter := core.NewVec2(sampler.Bilateral()*c.halfPixW, sampler.Bilateral()*c.halfPixH)
	return c.RayThrough(film.Add(jitter))
}
