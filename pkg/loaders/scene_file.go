package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/geometry"
	"github.com/Turtyo/rayTracing3D/pkg/material"
	"github.com/Turtyo/rayTracing3D/pkg/scene"
)

// SceneFile is the JSON layout of a scene
type SceneFile struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Group       string      `json:"group,omitempty"`
	Variant     string      `json:"variant,omitempty"`
	Samples     int         `json:"samples,omitempty"`
	Bounces     *int        `json:"bounces,omitempty"`
	Sampling    string      `json:"sampling,omitempty"` // "cosine" or "uniform"
	Grid        *GridCfg    `json:"grid,omitempty"`
	Background  *[3]int     `json:"background,omitempty"` // 0-255 per channel
	Spheres     []SphereCfg `json:"spheres"`
}

// GridCfg overrides the pixel grid
type GridCfg struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	PixelSize float64 `json:"pixel_size"`
}

// SphereCfg describes one object. The radius is either given directly or
// derived from a point on the surface.
type SphereCfg struct {
	Name         string       `json:"name,omitempty"`
	Center       [3]float64   `json:"center"`
	Radius       *float64     `json:"radius,omitempty"`
	SurfacePoint *[3]float64  `json:"surface_point,omitempty"`
	Material     *MaterialCfg `json:"material,omitempty"` // defaults to a white diffuser
}

// MaterialCfg mirrors material.NewMaterial
type MaterialCfg struct {
	EmissionColor    [3]int     `json:"emission_color"` // 0-255 per channel
	EmissionStrength float64    `json:"emission_strength"`
	Diffusion        [3]float64 `json:"diffusion"`
	Reflection       float64    `json:"reflection"`
}

// Build validates the material through the core constructors
func (mc MaterialCfg) Build() (material.Material, error) {
	emission, err := parseColor("emission color", mc.EmissionColor)
	if err != nil {
		return material.Material{}, err
	}

	diffusion, err := material.NewDiffusionCoefficient(mc.Diffusion[0], mc.Diffusion[1], mc.Diffusion[2])
	if err != nil {
		return material.Material{}, err
	}
	return material.NewMaterial(emission, mc.EmissionStrength, diffusion, mc.Reflection)
}

func parseColor(name string, channels [3]int) (material.Color, error) {
	for i, v := range channels {
		if v < 0 || v > 255 {
			return material.Color{}, fmt.Errorf("%s channel %d must be in [0, 255], got %d", name, i, v)
		}
	}
	return material.Color{R: uint8(channels[0]), G: uint8(channels[1]), B: uint8(channels[2])}, nil
}

// Build creates the object described by sc
func (sc SphereCfg) Build() (*geometry.Object, error) {
	center := core.NewPoint(sc.Center[0], sc.Center[1], sc.Center[2])

	var shape geometry.Sphere
	switch {
	case sc.Radius != nil && sc.SurfacePoint != nil:
		return nil, fmt.Errorf("radius and surface_point are mutually exclusive")
	case sc.Radius != nil:
		var err error
		if shape, err = geometry.NewSphere(center, *sc.Radius); err != nil {
			return nil, err
		}
	case sc.SurfacePoint != nil:
		p := sc.SurfacePoint
		shape = geometry.NewSphereFromPoints(center, core.NewPoint(p[0], p[1], p[2]))
	default:
		return nil, fmt.Errorf("sphere needs a radius or a surface_point")
	}

	mat := material.DefaultMaterial()
	if sc.Material != nil {
		var err error
		if mat, err = sc.Material.Build(); err != nil {
			return nil, err
		}
	}
	return geometry.NewObject(sc.Name, shape, mat), nil
}

// ParseScene decodes a JSON scene. Unknown fields are rejected so that a
// misspelled key does not silently fall back to a default.
func ParseScene(r io.Reader) (*scene.Scene, error) {
	var file SceneFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("invalid scene JSON: %w", err)
	}
	return file.Build()
}

// Build converts the decoded file into a scene
func (f SceneFile) Build() (*scene.Scene, error) {
	s := scene.NewScene(f.Name)
	s.Description = f.Description

	if f.Samples < 0 {
		return nil, fmt.Errorf("samples must be positive, got %d", f.Samples)
	}
	if f.Samples > 0 {
		s.Sampling.SamplesPerPixel = f.Samples
	}
	if f.Bounces != nil {
		if *f.Bounces < 0 {
			return nil, fmt.Errorf("bounces must not be negative, got %d", *f.Bounces)
		}
		s.Sampling.Bounces = *f.Bounces
	}
	scheme, err := core.ParseSamplingScheme(f.Sampling)
	if err != nil {
		return nil, err
	}
	s.Sampling.Scheme = scheme

	if f.Grid != nil {
		if f.Grid.Width <= 0 || f.Grid.Height <= 0 || !(f.Grid.PixelSize > 0) {
			return nil, fmt.Errorf("grid needs a positive width, height and pixel_size, got %+v", *f.Grid)
		}
		s.Grid = scene.GridConfig{Width: f.Grid.Width, Height: f.Grid.Height, PixelSize: f.Grid.PixelSize}
	}

	if f.Background != nil {
		if s.Background, err = parseColor("background", *f.Background); err != nil {
			return nil, err
		}
	}

	for i, sc := range f.Spheres {
		obj, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d (%s): %w", i, sc.Name, err)
		}
		s.Objects = append(s.Objects, obj)
	}
	return s, nil
}

// LoadSceneFile reads a JSON scene from disk. A scene without a name is
// named after the file.
func LoadSceneFile(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}
