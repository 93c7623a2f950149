package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/chewxy/math32"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

var (
	// ErrInvalidDimensions is returned for a non-positive image width or height
	ErrInvalidDimensions = errors.New("image dimensions must be positive")
	// ErrInvalidSampling is returned for unusable sampling parameters
	ErrInvalidSampling = errors.New("invalid sampling configuration")
)

var (
	skyWhite = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue  = core.NewVec3(0.5, 0.7, 1.0)
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	MinT            float32 // Smallest accepted hit distance, suppresses self-intersection
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 10,
		MaxDepth:        50,
		MinT:            0.001,
	}
}

// Validate rejects configurations that would divide by zero or never trace
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidSampling, c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidSampling, c.MaxDepth)
	}
	if c.MinT <= 0 || math32.IsInf(c.MinT, 0) || math32.IsNaN(c.MinT) {
		return fmt.Errorf("%w: minimum t must be a small positive number, got %g", ErrInvalidSampling, c.MinT)
	}
	return nil
}

// Raytracer handles the rendering process
type Raytracer struct {
	world  geometry.Hitable
	camera *Camera
	width  int
	height int
	config SamplingConfig
	seed   int64
	logger core.Logger
	stats  RenderStats
}

// NewRaytracer creates a new raytracer. The render is a pure function of
// (world, camera, config, seed): each call to Render starts a fresh generator from seed.
func NewRaytracer(world geometry.Hitable, camera *Camera, width, height int, config SamplingConfig, seed int64, logger core.Logger) (*Raytracer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if world == nil || camera == nil {
		return nil, errors.New("raytracer needs a world and a camera")
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		world:  world,
		camera: camera,
		width:  width,
		height: height,
		config: config,
		seed:   seed,
		logger: logger,
	}, nil
}

// backgroundGradient blends white to sky blue by the ray's vertical direction
func backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return skyWhite.Lerp(skyBlue, t)
}

// RayColor estimates the radiance arriving along r. depth counts bounces taken so far.
func (rt *Raytracer) RayColor(r core.Ray, sampler core.Sampler, depth int) core.Vec3 {
	rt.stats.RaysTraced++
	rt.stats.MaxDepthReached = max(rt.stats.MaxDepthReached, depth)

	hit, isHit := rt.world.Hit(r, rt.config.MinT, math32.Inf(1))
	if !isHit {
		return backgroundGradient(r)
	}

	// Truncated, not terminated: a bias accepted to bound the recursion
	if depth >= rt.config.MaxDepth {
		rt.stats.DepthLimited++
		return core.Vec3{}
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, sampler)
	if !didScatter {
		rt.stats.Absorbed++
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, sampler, depth+1))
}

// vec3ToColor converts an averaged linear color to RGBA with gamma 2 and clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0).Sqrt()

	return color.RGBA{
		R: uint8(255.99 * colorVec.X),
		G: uint8(255.99 * colorVec.Y),
		B: uint8(255.99 * colorVec.Z),
		A: 255,
	}
}

// samplePixel averages SamplesPerPixel jittered camera rays through pixel (i, j),
// j counted from the bottom row
func (rt *Raytracer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{}
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		s := (float32(i) + sampler.Get1D()) / float32(rt.width)
		t := (float32(j) + sampler.Get1D()) / float32(rt.height)

		ray := rt.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(rt.RayColor(ray, sampler, 0))
	}
	return colorAccum.Multiply(1.0 / float32(rt.config.SamplesPerPixel))
}

// Render traces every pixel top row first, left to right, and returns the image.
// A zero-length vector reaching normalization aborts the render with core.ErrZeroVector.
func (rt *Raytracer) Render() (img *image.RGBA, stats RenderStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(error); ok && errors.Is(perr, core.ErrZeroVector) {
				img, err = nil, fmt.Errorf("render aborted: %w", perr)
				return
			}
			panic(r)
		}
	}()

	startTime := time.Now()
	rt.stats = RenderStats{
		TotalPixels:     rt.width * rt.height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
	}

	sampler := core.NewSeededSampler(rt.seed)
	img = image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	progressEvery := max(1, rt.height/10)

	for j := rt.height - 1; j >= 0; j-- {
		row := rt.height - 1 - j
		if row%progressEvery == 0 {
			rt.logger.Printf("Scanlines remaining: %d/%d", j+1, rt.height)
		}
		for i := 0; i < rt.width; i++ {
			img.SetRGBA(i, row, vec3ToColor(rt.samplePixel(i, j, sampler)))
		}
	}

	rt.stats.TotalSamples = rt.stats.TotalPixels * rt.config.SamplesPerPixel
	rt.stats.Elapsed = time.Since(startTime)
	rt.logger.Printf("Render completed in %v: %d samples, %.2f rays/sample, deepest bounce %d",
		rt.stats.Elapsed, rt.stats.TotalSamples, rt.stats.AverageBounces(), rt.stats.MaxDepthReached)

	return img, rt.stats, nil
}
