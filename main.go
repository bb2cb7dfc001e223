package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emomaxd/rt/pkg/core"
	"github.com/emomaxd/rt/pkg/renderer"
	"github.com/emomaxd/rt/pkg/scene"
)

// Config holds command line configuration
type Config struct {
	SceneType  string
	Width      int
	Height     int
	Samples    int
	Bounces    int
	Workers    int
	Seed       int64
	ToneMapper string
	Output     string
	Help       bool
}

func main() {
	config := parseFlags()

	if config.Help {
		showHelp()
		return
	}

	if err := run(context.Background(), config, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags and returns configuration
func parseFlags() Config {
	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "default", "Scene type: "+strings.Join(scene.Names(), ", "))
	flag.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&config.Height, "height", 0, "Image height in pixels (0 = scene default)")
	flag.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&config.Bounces, "bounces", 0, "Maximum bounces per path (0 = scene default)")
	flag.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.Int64Var(&config.Seed, "seed", renderer.DefaultRenderConfig().Seed, "Base random seed")
	flag.StringVar(&config.ToneMapper, "tonemap", "srgb", "Tone mapper: 'srgb' or 'gamma'")
	flag.StringVar(&config.Output, "out", "", "Output file (default output/<scene>/render_<timestamp>.bmp)")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

// showHelp displays help information
func showHelp() {
	fmt.Println("Path Tracer")
	fmt.Println("Usage: rt [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	fmt.Println("  default - Spheres of clay, metal and an emitter over a ground plane")
	fmt.Println("  mirror  - Polished metal spheres reflecting each other")
	fmt.Println("  ground  - A single diffuse plane under a bright sky")
	fmt.Println("  sky     - No geometry, only the background")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.bmp")
}

// run renders the configured scene and writes it to disk
func run(ctx context.Context, config Config, logger core.Logger) error {
	sceneObj, err := createScene(config.SceneType)
	if err != nil {
		return err
	}

	toneMapper, err := renderer.NewToneMapper(config.ToneMapper)
	if err != nil {
		return err
	}

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.NumWorkers = config.Workers
	renderConfig.Seed = config.Seed
	renderConfig.ToneMapper = toneMapper

	raytracer := renderer.NewRaytracer(sceneObj, renderConfig, logger)
	raytracer.MergeSamplingConfig(scene.SamplingConfig{
		Width:           config.Width,
		Height:          config.Height,
		SamplesPerPixel: config.Samples,
		MaxBounces:      config.Bounces,
	})

	logger.Printf("Using %s scene...\n", sceneObj.Name)

	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	logger.Printf("Samples: %d over %d pixels, longest path %d bounces\n",
		stats.TotalSamples, stats.TotalPixels, stats.MaxBouncesUsed)

	filename := config.Output
	if filename == "" {
		outputDir, err := createOutputDir(sceneObj.Name)
		if err != nil {
			return err
		}
		filename = outputFilename(outputDir, time.Now())
	}

	if err := img.WriteFile(filename); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene creates a scene by registered name
func createScene(sceneType string) (*scene.Scene, error) {
	sc, err := scene.New(sceneType)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(scene.Names(), ", "))
	}
	return sc, nil
}

// createOutputDir creates the output directory for a scene
func createOutputDir(sceneType string) (string, error) {
	outputDir := filepath.Join("output", sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}
	return outputDir, nil
}

// outputFilename builds the timestamped render file name inside dir
func outputFilename(dir string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("render_%s.bmp", timestamp))
}
