package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// uploader stores the encoded image remotely
type uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

var newUploader = func(cfg output.S3Config, logger core.Logger) (uploader, error) {
	return output.NewS3Uploader(cfg, logger)
}

func main() {
	cfg, err := config.Load(os.Args[1:], os.LookupEnv)
	if errors.Is(err, flag.ErrHelp) {
		printScenes()
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	var logger core.Logger = core.NopLogger{}
	if !cfg.Quiet {
		logger = core.NewLogger(os.Stderr)
	}

	if err := run(context.Background(), cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printScenes() {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(os.Stderr, "  %-14s %s\n", info.ID, info.Description)
	}
}

// run renders the configured scene and delivers it to the sink and, when a bucket
// is configured, to S3. The sink is opened before any tracing starts.
func run(ctx context.Context, cfg *config.Config, logger core.Logger) (err error) {
	raytracer, err := createRaytracer(cfg, logger)
	if err != nil {
		return err
	}

	sink, err := output.OpenSink(cfg.Output)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sink.Close(); err == nil {
			err = closeErr
		}
	}()

	var remote uploader
	if cfg.S3.Bucket != "" {
		if remote, err = newUploader(cfg.S3, logger); err != nil {
			return err
		}
	}

	logger.Printf("Rendering %q at %dx%d, %d samples per pixel, seed %d",
		cfg.Scene, cfg.Width, cfg.Height, cfg.Samples, cfg.Seed)
	rendered, _, err := raytracer.Render()
	if err != nil {
		return err
	}

	var img image.Image = rendered
	if img, err = output.Scale(img, cfg.Scale); err != nil {
		return err
	}
	logger.Printf("Average luminance: %.3f", renderer.CalculateAverageLuminance(img))

	format := cfg.OutputFormat()
	var buf bytes.Buffer
	if err := output.Encode(&buf, img, format); err != nil {
		return err
	}
	if _, err := sink.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output %s: %w", sink.Name, err)
	}
	logger.Printf("Render saved to %s (%s)", sink.Name, format)

	if remote != nil {
		if err := remote.Upload(ctx, cfg.ObjectKey(), buf.Bytes(), format.ContentType()); err != nil {
			return err
		}
	}
	return nil
}

// createRaytracer builds the scene, its camera and the raytracer. The scene builder and
// the renderer draw from separate generators seeded with the same value.
func createRaytracer(cfg *config.Config, logger core.Logger) (*renderer.Raytracer, error) {
	selectedScene, err := scene.Create(cfg.Scene, int64(cfg.Seed))
	if err != nil {
		return nil, err
	}

	camera, err := selectedScene.Camera(float32(cfg.Width) / float32(cfg.Height))
	if err != nil {
		return nil, err
	}

	sampling := renderer.SamplingConfig{
		SamplesPerPixel: cfg.Samples,
		MaxDepth:        cfg.MaxDepth,
		MinT:            float32(cfg.MinFloat),
	}
	return renderer.NewRaytracer(selectedScene.World, camera, cfg.Width, cfg.Height, sampling, int64(cfg.Seed), logger)
}
