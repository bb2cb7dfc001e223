package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
	"testing"

	"github.com/emomaxd/rt/pkg/core"
	"github.com/emomaxd/rt/pkg/scene"
)

// captureLogger records every formatted log line
type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *captureLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func newTestRaytracer(t *testing.T, name string, sampling scene.SamplingConfig, config RenderConfig) (*Raytracer, *captureLogger) {
	t.Helper()
	sc, err := scene.New(name)
	if err != nil {
		t.Fatalf("scene.New(%q) failed: %v", name, err)
	}
	logger := &captureLogger{}
	rt := NewRaytracer(sc, config, logger)
	rt.SetSamplingConfig(sampling)
	return rt, logger
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(10, 7, 4, 100)

	if len(tiles) != 6 {
		t.Fatalf("Expected 3x2 tiles, got %d", len(tiles))
	}

	covered := make(map[image.Point]int)
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Tile %d has ID %d", i, tile.ID)
		}
		if tile.Seed != 100+int64(i) {
			t.Errorf("Tile %d has seed %d", i, tile.Seed)
		}
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[image.Pt(x, y)]++
			}
		}
	}

	if len(covered) != 70 {
		t.Errorf("Expected 70 covered pixels, got %d", len(covered))
	}
	for p, n := range covered {
		if n != 1 {
			t.Errorf("Pixel %v covered %d times", p, n)
		}
	}

	last := tiles[len(tiles)-1].Bounds
	if last != image.Rect(8, 4, 10, 7) {
		t.Errorf("Expected edge tile clipped to image, got %v", last)
	}
}

func TestRaytracer_SkyIndependentOfSampleCount(t *testing.T) {
	expected := PackColor(SRGBToneMapper{}.Map(core.NewVec3(0.25, 0.5, 1.0)))

	for _, spp := range []int{1, 4, 16} {
		t.Run(fmt.Sprintf("spp=%d", spp), func(t *testing.T) {
			sampling := scene.SamplingConfig{Width: 12, Height: 9, SamplesPerPixel: spp, MaxBounces: 8}
			rt, _ := newTestRaytracer(t, "sky", sampling, DefaultRenderConfig())

			img, stats, err := rt.Render(context.Background())
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			for i, pixel := range img.Pixels {
				if pixel != expected {
					t.Fatalf("Pixel %d: expected %#08x, got %#08x", i, expected, pixel)
				}
			}
			if stats.TotalSamples != 12*9*spp {
				t.Errorf("Expected %d samples, got %d", 12*9*spp, stats.TotalSamples)
			}
			if stats.TotalBounces != 0 {
				t.Errorf("Expected no surface hits in an empty world, got %d", stats.TotalBounces)
			}
		})
	}
}

func TestRaytracer_DeterministicAcrossWorkerCounts(t *testing.T) {
	sampling := scene.SamplingConfig{Width: 24, Height: 16, SamplesPerPixel: 4, MaxBounces: 8}

	var reference []uint32
	for _, workers := range []int{1, 3, 8} {
		config := DefaultRenderConfig()
		config.TileSize = 8
		config.NumWorkers = workers
		rt, _ := newTestRaytracer(t, "default", sampling, config)

		img, _, err := rt.Render(context.Background())
		if err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		if reference == nil {
			reference = img.Pixels
			continue
		}
		for i := range reference {
			if img.Pixels[i] != reference[i] {
				t.Fatalf("Pixel %d differs with %d workers: %#08x vs %#08x", i, workers, img.Pixels[i], reference[i])
			}
		}
	}
}

func TestRaytracer_EveryPixelOpaque(t *testing.T) {
	sampling := scene.SamplingConfig{Width: 16, Height: 9, SamplesPerPixel: 2, MaxBounces: 4}
	rt, _ := newTestRaytracer(t, "default", sampling, DefaultRenderConfig())

	img, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i, pixel := range img.Pixels {
		if a, _, _, _ := UnpackColor(pixel); a != 0xFF {
			t.Fatalf("Pixel %d has alpha %#x", i, a)
		}
	}
	if stats.TotalPixels != 16*9 {
		t.Errorf("Expected %d pixels, got %d", 16*9, stats.TotalPixels)
	}
	if stats.MaxBouncesUsed > 4 {
		t.Errorf("Path exceeded bounce limit: %d", stats.MaxBouncesUsed)
	}
}

func TestRaytracer_GroundSceneSplitsAtHorizon(t *testing.T) {
	// A tall film spans roughly 26 degrees above and below the view axis, so the
	// top row sees only sky and the bottom row only ground
	sampling := scene.SamplingConfig{Width: 8, Height: 32, SamplesPerPixel: 8, MaxBounces: 8}
	rt, _ := newTestRaytracer(t, "ground", sampling, DefaultRenderConfig())

	img, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Averaging 0.8 repeatedly is not exact, so allow one step per channel
	sky := PackColor(SRGBToneMapper{}.Map(core.NewVec3(0.8, 0.9, 1.0)))
	if got := img.At(4, 0); !packedNear(got, sky, 1) {
		t.Errorf("Expected sky color %#08x at top row, got %#08x", sky, got)
	}

	// Ground is a 0.5 gray diffuser lit only by the sky, so it is darker than the sky
	_, skyR, _, _ := UnpackColor(sky)
	_, groundR, _, _ := UnpackColor(img.At(4, 31))
	if groundR >= skyR {
		t.Errorf("Expected ground darker than sky, got ground=%d sky=%d", groundR, skyR)
	}
}

func TestRaytracer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sampling := scene.SamplingConfig{Width: 16, Height: 16, SamplesPerPixel: 1, MaxBounces: 1}
	rt, logger := newTestRaytracer(t, "default", sampling, DefaultRenderConfig())

	img, _, err := rt.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image from a cancelled render")
	}
	if !logger.contains("cancelled") {
		t.Error("Expected cancellation to be logged")
	}
}

func TestRaytracer_InvalidConfig(t *testing.T) {
	tests := []struct {
		name     string
		sampling scene.SamplingConfig
		tileSize int
	}{
		{"Zero samples", scene.SamplingConfig{Width: 4, Height: 4, SamplesPerPixel: 0, MaxBounces: 1}, 32},
		{"Negative bounces", scene.SamplingConfig{Width: 4, Height: 4, SamplesPerPixel: 1, MaxBounces: -1}, 32},
		{"Zero tile size", scene.SamplingConfig{Width: 4, Height: 4, SamplesPerPixel: 1, MaxBounces: 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultRenderConfig()
			config.TileSize = tt.tileSize
			rt, _ := newTestRaytracer(t, "sky", tt.sampling, config)

			if _, _, err := rt.Render(context.Background()); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRaytracer_InvalidDimensions(t *testing.T) {
	sampling := scene.SamplingConfig{Width: 0, Height: 4, SamplesPerPixel: 1, MaxBounces: 1}
	rt, _ := newTestRaytracer(t, "sky", sampling, DefaultRenderConfig())

	if _, _, err := rt.Render(context.Background()); err == nil {
		t.Error("Expected error for zero width")
	}
}

func TestRaytracer_MergeSamplingConfig(t *testing.T) {
	rt, _ := newTestRaytracer(t, "sky", scene.DefaultSamplingConfig(), DefaultRenderConfig())
	rt.MergeSamplingConfig(scene.SamplingConfig{Width: 64, SamplesPerPixel: 2})

	got := rt.SamplingConfig()
	expected := scene.SamplingConfig{Width: 64, Height: 720, SamplesPerPixel: 2, MaxBounces: 8}
	if got != expected {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}
}

func TestRaytracer_LogsProgress(t *testing.T) {
	sampling := scene.SamplingConfig{Width: 8, Height: 8, SamplesPerPixel: 1, MaxBounces: 1}
	config := DefaultRenderConfig()
	config.TileSize = 2
	rt, logger := newTestRaytracer(t, "sky", sampling, config)

	if _, _, err := rt.Render(context.Background()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !logger.contains("100%") {
		t.Error("Expected final progress line")
	}
	if !logger.contains("Render completed") {
		t.Error("Expected completion line")
	}
}

func packedNear(a, b uint32, tolerance int) bool {
	for shift := 0; shift < 32; shift += 8 {
		diff := int(uint8(a>>shift)) - int(uint8(b>>shift))
		if diff < -tolerance || diff > tolerance {
			return false
		}
	}
	return true
}
