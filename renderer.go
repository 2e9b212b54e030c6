package img2glyph

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Renderer turns images into glyph mosaics. A Renderer holds only
// configuration, so one value can serve any number of renders.
type Renderer struct {
	// Columns is the number of glyph columns in the grid.
	Columns int
	// Color draws glyphs in their block's mean color instead of gray.
	Color bool
	// PaletteSize, when positive, snaps colored glyphs to a palette of
	// that many colors extracted from the source image.
	PaletteSize   int
	PaletteMethod PaletteMethod
	// Background fills the canvas before glyphs are drawn.
	Background color.Color
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options.
// Default values: Columns=DefaultColumns, Color=false, PaletteSize=0,
// Background=white.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		Columns:       DefaultColumns,
		PaletteMethod: PaletteDominant,
		Background:    color.White,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithColumns sets the grid column count.
func WithColumns(columns int) RendererOption {
	return func(r *Renderer) {
		r.Columns = columns
	}
}

// WithColor enables color-sampled glyphs.
func WithColor(enabled bool) RendererOption {
	return func(r *Renderer) {
		r.Color = enabled
	}
}

// WithPalette quantizes colored glyphs to k colors extracted with method.
// k <= 0 disables quantization.
func WithPalette(k int, method PaletteMethod) RendererOption {
	return func(r *Renderer) {
		r.PaletteSize = k
		r.PaletteMethod = method
	}
}

// WithBackground sets the canvas fill color. Glyph colors do not depend
// on it.
func WithBackground(c color.Color) RendererOption {
	return func(r *Renderer) {
		r.Background = c
	}
}

// Grid computes the mosaic layout of img without drawing it.
func (r *Renderer) Grid(img image.Image, gs *GlyphSet) (*Grid, error) {
	g, err := ComputeGrid(img, gs, r.Columns, r.Color)
	if err != nil {
		return nil, err
	}
	if g.Color && r.PaletteSize > 0 {
		g.Quantize(ExtractPalette(img, r.PaletteSize, r.PaletteMethod).SampleOrder())
	}
	return g, nil
}

// Render computes the grid for img and draws it.
func (r *Renderer) Render(img image.Image, gs *GlyphSet) (draw.Image, error) {
	g, err := r.Grid(img, gs)
	if err != nil {
		return nil, err
	}
	return r.Draw(g, gs)
}

// Draw rasterizes a computed grid onto a new canvas filled with the
// background color. Colored grids produce an *image.RGBA, gray grids an
// *image.Gray. Each glyph sits on a baseline two pixels above the bottom
// of its cell.
func (r *Renderer) Draw(g *Grid, gs *GlyphSet) (draw.Image, error) {
	face, err := gs.Font.NewFace(FontSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	size := g.CanvasSize()
	rect := image.Rect(0, 0, size.X, size.Y)
	var canvas draw.Image
	if g.Color {
		canvas = image.NewRGBA(rect)
	} else {
		canvas = image.NewGray(rect)
	}
	bg := r.Background
	if bg == nil {
		bg = color.White
	}
	draw.Draw(canvas, rect, image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: canvas, Face: face}
	for i := range g.Cells {
		c := &g.Cells[i]
		d.Src = image.NewUniform(c.FG.ToColor())
		d.Dot = fixed.P(c.X*g.CellWidth, c.Y*g.CellHeight+g.CellHeight-baselineInset)
		d.DrawString(string(c.Glyph))
	}
	return canvas, nil
}

// Render draws img as a glyph mosaic of the given column count.
func Render(img image.Image, gs *GlyphSet, columns int, colored bool) (draw.Image, error) {
	return NewRenderer(WithColumns(columns), WithColor(colored)).Render(img, gs)
}
