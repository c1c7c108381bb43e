package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/scene"
)

// DefaultScene is rendered when neither a scene nor a scene file is given
const DefaultScene = "some-spheres"

// Integrator names accepted by the Integrator field
const (
	IntegratorPath   = "path"
	IntegratorDirect = "direct"
)

// Config holds the render settings of one CLI run.
// Zero values mean "use the scene's own setting".
type Config struct {
	// Scene selection
	Scene     string `json:"scene"`
	SceneFile string `json:"scene_file"`

	// Pixel grid
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	PixelSize float64 `json:"pixel_size"`

	// Sampling
	Samples    int     `json:"samples"`
	Bounces    *int    `json:"bounces,omitempty"`
	Seed       *uint64 `json:"seed,omitempty"`
	Jitter     bool    `json:"jitter"`
	Sampling   string  `json:"sampling"`
	Integrator string  `json:"integrator"`

	// Output
	Output    string `json:"output"`
	Thumbnail uint   `json:"thumbnail"`
	Resize    int    `json:"resize"`

	S3 S3Config `json:"s3"`
}

// S3Config holds the object store settings used for s3:// outputs
type S3Config struct {
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Endpoint  string `json:"endpoint"`
	Region    string `json:"region"`
	ACL       string `json:"acl"`
}

// Flags holds CLI flag values that override config file settings.
// Negative Bounces and Seed mean the flag was not set.
type Flags struct {
	Scene      string
	SceneFile  string
	Width      int
	Height     int
	PixelSize  float64
	Samples    int
	Bounces    int
	Seed       int64
	Jitter     bool
	Sampling   string
	Integrator string
	Output     string
	Thumbnail  uint
	Resize     int
}

// UnsetFlags returns Flags that override nothing
func UnsetFlags() Flags {
	return Flags{Bounces: -1, Seed: -1}
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies the CLI flags, which take priority when set, and fills
// the remaining defaults.
func (c *Config) Resolve(flags Flags) {
	// A scene chosen on the command line replaces the one from the file
	if flags.Scene != "" {
		c.Scene = flags.Scene
		c.SceneFile = ""
	}
	if flags.SceneFile != "" {
		c.SceneFile = flags.SceneFile
		if flags.Scene == "" {
			c.Scene = ""
		}
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.PixelSize > 0 {
		c.PixelSize = flags.PixelSize
	}
	if flags.Samples > 0 {
		c.Samples = flags.Samples
	}
	if flags.Bounces >= 0 {
		bounces := flags.Bounces
		c.Bounces = &bounces
	}
	if flags.Seed >= 0 {
		seed := uint64(flags.Seed)
		c.Seed = &seed
	}
	if flags.Jitter {
		c.Jitter = true
	}
	if flags.Sampling != "" {
		c.Sampling = flags.Sampling
	}
	if flags.Integrator != "" {
		c.Integrator = flags.Integrator
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Thumbnail > 0 {
		c.Thumbnail = flags.Thumbnail
	}
	if flags.Resize > 0 {
		c.Resize = flags.Resize
	}

	// Defaults
	if c.Scene == "" && c.SceneFile == "" {
		c.Scene = DefaultScene
	}
	if c.Integrator == "" {
		c.Integrator = IntegratorPath
	}
	if c.Seed == nil {
		seed := uint64(1)
		c.Seed = &seed
	}
}

// Validate checks values that Resolve cannot fix
func (c Config) Validate() error {
	if c.Scene != "" && c.SceneFile != "" {
		return fmt.Errorf("config: scene %q and scene file %q are mutually exclusive", c.Scene, c.SceneFile)
	}
	if c.Width < 0 || c.Height < 0 || c.PixelSize < 0 {
		return fmt.Errorf("config: grid size must not be negative")
	}
	if c.Samples < 0 {
		return fmt.Errorf("config: samples must not be negative, got %d", c.Samples)
	}
	if c.Bounces != nil && *c.Bounces < 0 {
		return fmt.Errorf("config: bounces must not be negative, got %d", *c.Bounces)
	}
	if c.Resize < 0 {
		return fmt.Errorf("config: resize width must not be negative, got %d", c.Resize)
	}
	if _, err := core.ParseSamplingScheme(c.Sampling); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Integrator {
	case "", IntegratorPath, IntegratorDirect:
	default:
		return fmt.Errorf("config: unknown integrator %q (expected %q or %q)", c.Integrator, IntegratorPath, IntegratorDirect)
	}
	return nil
}

// Apply overrides the scene's sampling and grid with the values set in c
func (c Config) Apply(s *scene.Scene) error {
	if c.Width > 0 {
		s.Grid.Width = c.Width
	}
	if c.Height > 0 {
		s.Grid.Height = c.Height
	}
	if c.PixelSize > 0 {
		s.Grid.PixelSize = c.PixelSize
	}
	if c.Samples > 0 {
		s.Sampling.SamplesPerPixel = c.Samples
	}
	if c.Bounces != nil {
		s.Sampling.Bounces = *c.Bounces
	}
	if c.Sampling != "" {
		scheme, err := core.ParseSamplingScheme(c.Sampling)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		s.Sampling.Scheme = scheme
	}
	return nil
}
