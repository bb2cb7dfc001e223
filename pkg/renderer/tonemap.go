package renderer

import (
	"fmt"
	"math"

	"github.com/emomaxd/rt/pkg/core"
)

// ToneMapper converts linear radiance to display values in [0, 1]
type ToneMapper interface {
	Map(linear core.Vec3) core.Vec3
}

// SRGBToneMapper applies the standard linear to sRGB transfer curve
type SRGBToneMapper struct{}

// Map implements ToneMapper
func (SRGBToneMapper) Map(linear core.Vec3) core.Vec3 {
	return core.NewVec3(LinearToSRGB(linear.X), LinearToSRGB(linear.Y), LinearToSRGB(linear.Z))
}

// GammaToneMapper applies a plain power-law gamma curve
type GammaToneMapper struct {
	Gamma float64
}

// Map implements ToneMapper
func (g GammaToneMapper) Map(linear core.Vec3) core.Vec3 {
	invGamma := 1.0 / g.Gamma
	c := linear.Clamp(0.0, 1.0)
	return core.NewVec3(math.Pow(c.X, invGamma), math.Pow(c.Y, invGamma), math.Pow(c.Z, invGamma))
}

// NewToneMapper returns the tone mapper registered under name ("srgb" or "gamma")
func NewToneMapper(name string) (ToneMapper, error) {
	switch name {
	case "", "srgb":
		return SRGBToneMapper{}, nil
	case "gamma":
		return GammaToneMapper{Gamma: 2.0}, nil
	default:
		return nil, fmt.Errorf("unknown tone mapper %q", name)
	}
}

// LinearToSRGB encodes a single linear channel with the sRGB transfer curve
func LinearToSRGB(l float64) float64 {
	l = max(0.0, min(1.0, l))
	if l <= 0.0031308 {
		return 12.92 * l
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// PackColor packs a display color in [0, 1] into 0xAARRGGBB with opaque alpha.
// Channels are rounded to the nearest 8-bit value so 1.0 - 1ulp still maps to 255.
func PackColor(display core.Vec3) uint32 {
	c := display.Clamp(0.0, 1.0)
	r := uint32(toByte(c.X))
	g := uint32(toByte(c.Y))
	b := uint32(toByte(c.Z))
	return 0xFF<<24 | r<<16 | g<<8 | b
}

func toByte(v float64) uint8 {
	return uint8(255*v + 0.5)
}

// UnpackColor splits a packed 0xAARRGGBB pixel into its channels
func UnpackColor(pixel uint32) (a, r, g, b uint8) {
	return uint8(pixel >> 24), uint8(pixel >> 16), uint8(pixel >> 8), uint8(pixel)
}
