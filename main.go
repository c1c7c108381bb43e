package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/Turtyo/rayTracing3D/pkg/config"
	"github.com/Turtyo/rayTracing3D/pkg/export"
	"github.com/Turtyo/rayTracing3D/pkg/integrator"
	"github.com/Turtyo/rayTracing3D/pkg/loaders"
	"github.com/Turtyo/rayTracing3D/pkg/renderer"
	"github.com/Turtyo/rayTracing3D/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run parses args, renders the selected scene and writes the image
func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("rayTracing3D", flag.ContinueOnError)
	fs.SetOutput(stdout)

	flags := config.UnsetFlags()
	configPath := fs.String("config", "", "JSON config file")
	envPath := fs.String("env", ".env", "File with RT_S3_* variables for s3:// outputs")
	fs.StringVar(&flags.Scene, "scene", "", "Built-in scene: "+strings.Join(scene.Names(), ", "))
	fs.StringVar(&flags.SceneFile, "scene-file", "", "JSON scene file (see scenes/)")
	fs.IntVar(&flags.Width, "width", 0, "Grid width in pixels (default: scene setting)")
	fs.IntVar(&flags.Height, "height", 0, "Grid height in pixels (default: scene setting)")
	fs.Float64Var(&flags.PixelSize, "pixel-size", 0, "Pixel size in scene units (default: scene setting)")
	fs.IntVar(&flags.Samples, "samples", 0, "Samples per pixel (default: scene setting)")
	fs.IntVar(&flags.Bounces, "bounces", -1, "Maximum bounces per path (default: scene setting)")
	fs.Int64Var(&flags.Seed, "seed", -1, "Random seed (default: 1)")
	fs.BoolVar(&flags.Jitter, "jitter", false, "Jitter eye rays inside each pixel")
	fs.StringVar(&flags.Sampling, "sampling", "", "Bounce sampling: 'cosine' or 'uniform' (default: scene setting)")
	fs.StringVar(&flags.Integrator, "integrator", "", "Integrator: 'path' or 'direct' (default: path)")
	fs.StringVar(&flags.Output, "output", "", "Output image (.png .webp .tga .tif .bmp .jpg .gif) or s3://bucket/key")
	thumbnail := fs.Uint("thumbnail", 0, "Also write a thumbnail no larger than this many pixels")
	fs.IntVar(&flags.Resize, "resize", 0, "Rescale the output to this width")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return err
	}
	flags.Thumbnail = *thumbnail

	if *help {
		printHelp(fs, stdout)
		return nil
	}

	var cfg config.Config
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	s, err := loadScene(cfg)
	if err != nil {
		return err
	}
	if err := cfg.Apply(s); err != nil {
		return err
	}

	output := cfg.Output
	if output == "" {
		timestamp := time.Now().Format("20060102_150405")
		output = filepath.Join("output", slug(s.Name), fmt.Sprintf("render_%s.png", timestamp))
	}
	sink, err := buildSink(cfg, output, *envPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Rendering %v to %s\n", s, output)

	opts := []renderer.Option{
		renderer.WithCamera(renderer.NewCamera(s.Grid.Width, s.Grid.Height, s.Grid.PixelSize)),
		renderer.WithSeed(*cfg.Seed),
		renderer.WithJitter(cfg.Jitter),
		renderer.WithScheme(s.Sampling.Scheme),
		renderer.WithBackground(s.Background),
		renderer.WithLogger(renderer.NewDefaultLogger()),
	}
	if cfg.Integrator == config.IntegratorDirect {
		opts = append(opts, renderer.WithIntegrator(integrator.NewDirectLightingIntegrator(s.Background)))
	}

	rt := renderer.NewRaytracer(s.Objects, s.Sampling.SamplesPerPixel, s.Sampling.Bounces, opts...)
	grid, stats, err := rt.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if err := sink.WriteImage(grid.RGB(), grid.Width, grid.Height); err != nil {
		return fmt.Errorf("error saving %s: %w", output, err)
	}

	fmt.Fprintf(stdout, "Render completed in %v (%d samples, average luminance %.3f)\n",
		stats.Duration.Round(time.Millisecond), stats.TotalSamples, stats.AverageLuminance)
	fmt.Fprintf(stdout, "Render saved as %s\n", output)
	return nil
}

func loadScene(cfg config.Config) (*scene.Scene, error) {
	if cfg.SceneFile != "" {
		return loaders.LoadSceneFile(cfg.SceneFile)
	}
	return scene.Create(cfg.Scene)
}

// buildSink chains the optional resize and thumbnail stages in front of
// the final destination
func buildSink(cfg config.Config, output, envPath string) (renderer.Sink, error) {
	var client export.Uploader
	isS3 := strings.HasPrefix(output, "s3://")
	if isS3 {
		if err := cfg.LoadEnv(envPath); err != nil {
			return nil, err
		}
		s3Client, err := export.NewS3Client(export.S3Options{
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
		})
		if err != nil {
			return nil, err
		}
		client = s3Client
	}

	sink, err := export.NewSink(output, client, cfg.S3.ACL)
	if err != nil {
		return nil, err
	}
	if cfg.Resize > 0 {
		sink = &export.ResizeSink{Width: cfg.Resize, Next: sink}
	}
	if cfg.Thumbnail > 0 {
		if isS3 {
			return nil, fmt.Errorf("thumbnails are only written next to local outputs")
		}
		sink = &export.ThumbnailSink{MaxSize: cfg.Thumbnail, Path: export.ThumbnailPath(output), Next: sink}
	}
	return sink, nil
}

// slug turns a scene name into a directory name
func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	if name == "" {
		return "scene"
	}
	return name
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "rayTracing3D - Monte Carlo sphere path tracer")
	fmt.Fprintln(w, "Usage: rayTracing3D [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, name := range scene.Names() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	if files, err := scene.ListSceneFiles(); err == nil {
		for _, f := range files {
			fmt.Fprintf(w, "  %s (-scene-file %s)\n", f.DisplayName, f.FilePath)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output defaults to output/<scene>/render_<timestamp>.png")
}
