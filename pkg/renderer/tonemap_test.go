package renderer

import (
	"math"
	"testing"

	"github.com/emomaxd/rt/pkg/core"
)

func TestLinearToSRGB(t *testing.T) {
	tests := []struct {
		name     string
		linear   float64
		expected float64
	}{
		{"Black", 0.0, 0.0},
		{"White", 1.0, 1.0},
		{"Linear segment", 0.002, 12.92 * 0.002},
		{"Mid gray", 0.5, 1.055*math.Pow(0.5, 1.0/2.4) - 0.055},
		{"Negative clamps to zero", -3.0, 0.0},
		{"Overexposed clamps to one", 42.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearToSRGB(tt.linear)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("LinearToSRGB(%v) = %v, expected %v", tt.linear, got, tt.expected)
			}
		})
	}
}

func TestLinearToSRGB_Monotonic(t *testing.T) {
	prev := LinearToSRGB(0)
	for i := 1; i <= 1000; i++ {
		curr := LinearToSRGB(float64(i) / 1000)
		if curr < prev {
			t.Fatalf("sRGB curve decreased at %v: %v < %v", float64(i)/1000, curr, prev)
		}
		prev = curr
	}
}

func TestPackColor(t *testing.T) {
	tests := []struct {
		name     string
		display  core.Vec3
		expected uint32
	}{
		{"Black is opaque", core.NewVec3(0, 0, 0), 0xFF000000},
		{"White", core.NewVec3(1, 1, 1), 0xFFFFFFFF},
		{"Red in bits 16-23", core.NewVec3(1, 0, 0), 0xFFFF0000},
		{"Green in bits 8-15", core.NewVec3(0, 1, 0), 0xFF00FF00},
		{"Blue in bits 0-7", core.NewVec3(0, 0, 1), 0xFF0000FF},
		{"Out of range is clamped", core.NewVec3(-1, 2, 0.5), 0xFF00FF80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PackColor(tt.display)
			if got != tt.expected {
				t.Errorf("PackColor(%v) = %#08x, expected %#08x", tt.display, got, tt.expected)
			}
		})
	}
}

func TestPackColor_SRGBWhite(t *testing.T) {
	// The sRGB curve lands one ulp short of 1.0 for white
	got := PackColor(SRGBToneMapper{}.Map(core.NewVec3(1, 1, 1)))
	if got != 0xFFFFFFFF {
		t.Errorf("Expected white to pack to 0xFFFFFFFF, got %#08x", got)
	}
}

func TestUnpackColor(t *testing.T) {
	a, r, g, b := UnpackColor(0x80112233)
	if a != 0x80 || r != 0x11 || g != 0x22 || b != 0x33 {
		t.Errorf("Unexpected channels a=%#x r=%#x g=%#x b=%#x", a, r, g, b)
	}
}

func TestGammaToneMapper(t *testing.T) {
	mapper := GammaToneMapper{Gamma: 2.0}
	got := mapper.Map(core.NewVec3(0.25, 1.0, 4.0))

	expected := core.NewVec3(0.5, 1.0, 1.0)
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestNewToneMapper(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{"srgb", false},
		{"gamma", false},
		{"aces", true},
	}

	for _, tt := range tests {
		t.Run("name="+tt.name, func(t *testing.T) {
			mapper, err := NewToneMapper(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if mapper == nil {
				t.Error("Expected non-nil tone mapper")
			}
		})
	}
}
