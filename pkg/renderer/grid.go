package renderer

import (
	"fmt"

	"github.com/Turtyo/rayTracing3D/pkg/material"
)

// Grid is the rendered raster: Width x Height colors, row-major, origin at
// the top-left pixel. x grows to the right and y grows downward.
type Grid struct {
	Width  int
	Height int
	Pixels []material.Color
}

// NewGrid creates a black grid
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Pixels: make([]material.Color, width*height),
	}
}

// At returns the color of pixel (x, y)
func (g *Grid) At(x, y int) material.Color {
	return g.Pixels[y*g.Width+x]
}

// Set stores the color of pixel (x, y)
func (g *Grid) Set(x, y int, c material.Color) {
	g.Pixels[y*g.Width+x] = c
}

// RGB returns the raster as tightly packed 8-bit RGB rows
func (g *Grid) RGB() []uint8 {
	pix := make([]uint8, 0, 3*len(g.Pixels))
	for _, c := range g.Pixels {
		pix = append(pix, c.R, c.G, c.B)
	}
	return pix
}

func (g *Grid) String() string {
	return fmt.Sprintf("grid %dx%d", g.Width, g.Height)
}
