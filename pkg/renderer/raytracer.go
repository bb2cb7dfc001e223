package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/emomaxd/rt/pkg/bitmap"
	"github.com/emomaxd/rt/pkg/core"
	"github.com/emomaxd/rt/pkg/geometry"
	"github.com/emomaxd/rt/pkg/integrator"
	"github.com/emomaxd/rt/pkg/scene"
)

// ErrInvalidConfig is returned when the sampling or render configuration cannot be rendered
var ErrInvalidConfig = errors.New("invalid render configuration")

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig controls how the image is split up and post-processed
type RenderConfig struct {
	TileSize   int        // Size of each square tile in pixels
	NumWorkers int        // Number of parallel workers (0 = use CPU count)
	Seed       int64      // Base seed; each tile derives its own stream from it
	ToneMapper ToneMapper // Linear radiance to display conversion (nil = sRGB)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   32,
		NumWorkers: 0,
		Seed:       42,
		ToneMapper: SRGBToneMapper{},
	}
}

// Tile is a rectangular block of pixels rendered by a single worker
type Tile struct {
	ID     int
	Bounds image.Rectangle
	Seed   int64 // Seed for this tile's private random stream
}

// NewTileGrid splits a width x height image into tiles in row-major order
func NewTileGrid(width, height, tileSize int, baseSeed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     tileID,
				Bounds: image.Rect(x0, y0, x1, y1),
				Seed:   baseSeed + int64(tileID),
			})
			tileID++
		}
	}

	return tiles
}

// Raytracer drives the per-pixel sampling loop over a scene
type Raytracer struct {
	scene    *scene.Scene
	sampling scene.SamplingConfig
	config   RenderConfig
	logger   core.Logger
}

// NewRaytracer creates a new raytracer using the scene's recommended sampling settings
func NewRaytracer(sc *scene.Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if config.ToneMapper == nil {
		config.ToneMapper = SRGBToneMapper{}
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:    sc,
		sampling: sc.SamplingConfig,
		config:   config,
		logger:   logger,
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config scene.SamplingConfig) {
	rt.sampling = config
}

// MergeSamplingConfig updates only the non-zero fields of the sampling configuration
func (rt *Raytracer) MergeSamplingConfig(updates scene.SamplingConfig) {
	if updates.Width != 0 {
		rt.sampling.Width = updates.Width
	}
	if updates.Height != 0 {
		rt.sampling.Height = updates.Height
	}
	if updates.SamplesPerPixel != 0 {
		rt.sampling.SamplesPerPixel = updates.SamplesPerPixel
	}
	if updates.MaxBounces != 0 {
		rt.sampling.MaxBounces = updates.MaxBounces
	}
}

// SamplingConfig returns the active sampling configuration
func (rt *Raytracer) SamplingConfig() scene.SamplingConfig {
	return rt.sampling
}

func (rt *Raytracer) validate() error {
	switch {
	case rt.scene == nil || rt.scene.World == nil:
		return fmt.Errorf("%w: scene has no world", ErrInvalidConfig)
	case rt.sampling.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, rt.sampling.SamplesPerPixel)
	case rt.sampling.MaxBounces < 0:
		return fmt.Errorf("%w: max bounces must not be negative, got %d", ErrInvalidConfig, rt.sampling.MaxBounces)
	case rt.config.TileSize <= 0:
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidConfig, rt.config.TileSize)
	}
	return nil
}

// Render traces every pixel of the image and returns the packed result.
// The image is only returned once every tile has completed.
func (rt *Raytracer) Render(ctx context.Context) (*bitmap.Image, RenderStats, error) {
	if err := rt.validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := rt.sampling.Width, rt.sampling.Height
	img, err := bitmap.NewImage(width, height)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("allocate render target: %w", err)
	}

	startTime := time.Now()

	camera := geometry.NewCamera(rt.scene.CameraConfig, width, height)
	pathTracer := integrator.NewPathTracingIntegrator(rt.sampling)
	tileRenderer := NewTileRenderer(rt.scene.World, camera, pathTracer, rt.config.ToneMapper, rt.sampling.SamplesPerPixel)

	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)
	workerPool := NewWorkerPool(tileRenderer, len(tiles), rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d, %d primitives, %d samples per pixel, %d bounces (using %d workers)...\n",
		width, height, rt.scene.World.GetPrimitiveCount(), rt.sampling.SamplesPerPixel, rt.sampling.MaxBounces, workerPool.GetNumWorkers())

	workerPool.Start(ctx)
	defer workerPool.Stop()

	for _, tile := range tiles {
		workerPool.SubmitTask(TileTask{
			Tile:   tile,
			TaskID: tile.ID,
			Image:  img,
		})
	}

	var stats RenderStats
	lastReported := 0
	for completed := 1; completed <= len(tiles); completed++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			rt.logger.Printf("Rendering cancelled after %d of %d tiles\n", completed-1, len(tiles))
			return nil, RenderStats{}, result.Error
		}
		stats.Merge(result.Stats)

		// Report progress in 10% steps
		percent := completed * 100 / len(tiles)
		if percent/10 > lastReported/10 {
			rt.logger.Printf("Rendering... %d%%\n", percent)
			lastReported = percent
		}
	}

	stats.Elapsed = time.Since(startTime)
	rt.logger.Printf("Render completed in %v (%.2f bounces per sample)\n", stats.Elapsed, stats.AverageBounces())

	return img, stats, nil
}
