package renderer

import (
	"image"

	"github.com/emomaxd/rt/pkg/bitmap"
	"github.com/emomaxd/rt/pkg/core"
	"github.com/emomaxd/rt/pkg/geometry"
	"github.com/emomaxd/rt/pkg/integrator"
	"github.com/emomaxd/rt/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	world           *scene.World
	camera          *geometry.Camera
	integrator      integrator.Integrator
	toneMapper      ToneMapper
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(world *scene.World, camera *geometry.Camera, integratorInst integrator.Integrator, toneMapper ToneMapper, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		world:           world,
		camera:          camera,
		integrator:      integratorInst,
		toneMapper:      toneMapper,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderTileBounds renders pixels within bounds, writing each one exactly once into img.
// Rows are visited top to bottom.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, img *bitmap.Image, sampler core.Sampler) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			color := tr.samplePixel(i, j, sampler, &stats)
			img.Set(i, j, PackColor(tr.toneMapper.Map(color)))
		}
	}

	return stats
}

// samplePixel averages samplesPerPixel jittered camera rays through pixel (i, j)
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler, stats *RenderStats) core.Vec3 {
	var ps PixelStats
	for s := 0; s < tr.samplesPerPixel; s++ {
		ray := tr.camera.GetRay(i, j, sampler)
		color, bounces := tr.integrator.RayColor(ray, tr.world, sampler)
		ps.AddSample(color)

		stats.TotalBounces += bounces
		stats.MaxBouncesUsed = max(stats.MaxBouncesUsed, bounces)
	}
	stats.TotalSamples += ps.SampleCount
	return ps.GetColor()
}
