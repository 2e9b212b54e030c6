// Package img2glyph renders raster images as character mosaics. An image
// is partitioned into a grid of blocks, every block is reduced to its mean
// color, and a glyph from a GlyphSet is drawn per block onto a canvas,
// white unless another background is set.
package img2glyph

import "errors"

const (
	// DefaultColumns is the grid width used when no column count is given.
	DefaultColumns = 100

	// FontSize is the point size glyphs are measured and drawn at (72 DPI,
	// so one point is one pixel).
	FontSize = 12

	// baselineInset is the distance from the bottom of a cell to the glyph
	// baseline.
	baselineInset = 2
)

var (
	// ErrInvalidColumns is returned when the column count is below one.
	ErrInvalidColumns = errors.New("columns must be at least 1")

	// ErrEmptyImage is returned for images with no pixels.
	ErrEmptyImage = errors.New("image has no pixels")

	// ErrDegenerateGrid is returned when the grid would have no rows or
	// zero-width blocks: the image is too short for the column count, or
	// narrower than the column count.
	ErrDegenerateGrid = errors.New("degenerate grid")
)
