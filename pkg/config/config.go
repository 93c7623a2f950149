package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/df07/go-weekend-raytracer/pkg/output"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultEnvFile is read when neither --env-file nor RAYTRACER_ENV_FILE is given
const DefaultEnvFile = ".env"

// Config holds everything the command line needs to render and deliver an image
type Config struct {
	Width    int
	Height   int
	Samples  int
	MaxDepth int
	MinFloat float64 // Hit distance epsilon
	Seed     int     // 0..255
	Scene    string
	Format   output.Format
	Scale    float64 // Resampling factor applied after rendering
	Quiet    bool
	Output   string // File path; empty writes to stdout
	EnvFile  string

	S3    output.S3Config
	S3Key string // Object key; empty derives one from the scene and format
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Width:    600,
		Height:   400,
		Samples:  10,
		MaxDepth: 50,
		MinFloat: 0.001,
		Seed:     101,
		Scene:    "cover",
		Format:   output.FormatAuto,
		Scale:    1,
	}
}

// envKeys maps flags to the environment variables that supply their defaults
var envKeys = map[string]string{
	"width":       "RAYTRACER_WIDTH",
	"height":      "RAYTRACER_HEIGHT",
	"n-samples":   "RAYTRACER_SAMPLES",
	"max-depth":   "RAYTRACER_MAX_DEPTH",
	"min-float":   "RAYTRACER_MIN_FLOAT",
	"random-seed": "RAYTRACER_SEED",
	"scene":       "RAYTRACER_SCENE",
	"format":      "RAYTRACER_FORMAT",
	"scale":       "RAYTRACER_SCALE",
	"quiet":       "RAYTRACER_QUIET",
	"s3-bucket":   "S3_BUCKET",
	"s3-key":      "S3_KEY",
}

// Load builds the configuration from, in increasing precedence: defaults, the .env
// file, the process environment, and args (flags plus an optional output FILE).
// lookupEnv is normally os.LookupEnv. Returns flag.ErrHelp for -h.
func Load(args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	return load(args, lookupEnv, os.Stderr)
}

func load(args []string, lookupEnv func(string) (string, bool), usageOutput io.Writer) (*Config, error) {
	cfg := Default()
	format := string(cfg.Format)

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(usageOutput)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: raytracer [options] [FILE]")
		fmt.Fprintln(fs.Output(), "Renders a scene of spheres. Writes PPM to FILE, or stdout when FILE is absent.")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
	}

	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Image height in pixels")
	fs.IntVar(&cfg.Samples, "n-samples", cfg.Samples, "Samples per pixel")
	fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "Maximum bounces per path")
	fs.Float64Var(&cfg.MinFloat, "min-float", cfg.MinFloat, "Smallest accepted hit distance")
	fs.IntVar(&cfg.Seed, "random-seed", cfg.Seed, "Random seed (0-255)")
	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "Scene to render")
	fs.StringVar(&format, "format", format, "Output format: auto, ppm or png")
	fs.Float64Var(&cfg.Scale, "scale", cfg.Scale, "Resample the rendered image by this factor")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Suppress progress logging")
	fs.StringVar(&cfg.EnvFile, "env-file", "", "Environment file (default .env)")
	fs.StringVar(&cfg.S3.Bucket, "s3-bucket", "", "Upload the image to this S3 bucket")
	fs.StringVar(&cfg.S3Key, "s3-key", "", "S3 object key (default <scene><ext>)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	explicitEnvFile := cfg.EnvFile != ""
	if !explicitEnvFile {
		cfg.EnvFile = DefaultEnvFile
		if path, ok := lookupEnv("RAYTRACER_ENV_FILE"); ok && path != "" {
			cfg.EnvFile, explicitEnvFile = path, true
		}
	}

	fileVars, err := godotenv.Read(cfg.EnvFile)
	if err != nil {
		if explicitEnvFile || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", cfg.EnvFile, err)
		}
		fileVars = map[string]string{}
	}

	// The process environment wins over the file, as with godotenv.Load
	lookup := func(key string) (string, bool) {
		if value, ok := lookupEnv(key); ok {
			return value, true
		}
		value, ok := fileVars[key]
		return value, ok
	}

	setByFlag := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { setByFlag[f.Name] = true })

	for name, key := range envKeys {
		if setByFlag[name] {
			continue
		}
		if value, ok := lookup(key); ok && value != "" {
			if err := fs.Set(name, value); err != nil {
				return nil, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, value, err)
			}
		}
	}

	cfg.S3.Region, _ = lookup("S3_REGION")
	cfg.S3.Endpoint, _ = lookup("S3_ENDPOINT")
	cfg.S3.AccessKey, _ = lookup("S3_ACCESS_KEY")
	cfg.S3.SecretKey, _ = lookup("S3_SECRET_KEY")

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.Output = fs.Arg(0)
	default:
		return nil, fmt.Errorf("%w: expected at most one output file, got %v", ErrInvalidConfig, fs.Args())
	}

	if cfg.Format, err = output.ParseFormat(format); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot produce an image
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Samples <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.Samples)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	case !(c.MinFloat > 0):
		return fmt.Errorf("%w: min-float must be positive, got %g", ErrInvalidConfig, c.MinFloat)
	case c.Seed < 0 || c.Seed > 255:
		return fmt.Errorf("%w: random seed must be in 0..255, got %d", ErrInvalidConfig, c.Seed)
	case !(c.Scale > 0):
		return fmt.Errorf("%w: scale must be positive, got %g", ErrInvalidConfig, c.Scale)
	case c.Scene == "":
		return fmt.Errorf("%w: scene name is empty", ErrInvalidConfig)
	}
	if _, err := output.ParseFormat(string(c.Format)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// OutputFormat resolves FormatAuto against the output path
func (c *Config) OutputFormat() output.Format {
	return c.Format.Resolve(c.Output)
}

// ObjectKey returns the S3 key for the encoded image
func (c *Config) ObjectKey() string {
	if c.S3Key != "" {
		return c.S3Key
	}
	return c.Scene + c.OutputFormat().Extension()
}
