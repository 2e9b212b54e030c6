package img2glyph

import (
	"fmt"
	"image"

	"github.com/wbrown/img2glyph/imageutil"
)

// Cell is one grid unit: a source block and the glyph drawn for it.
type Cell struct {
	// X and Y are the column and row of the cell.
	X, Y int
	// Block is the sampled source rectangle, in image coordinates.
	Block image.Rectangle
	// Mean holds the channel means in BGR order. Single-channel images
	// only populate Mean[0].
	Mean [3]float64
	// Luma is the weighted brightness of Mean.
	Luma  float64
	Glyph rune
	FG    imageutil.RGB
}

// Grid is the computed layout of a mosaic before it is drawn.
type Grid struct {
	Columns, Rows           int
	BlockWidth, BlockHeight int
	CellWidth, CellHeight   int
	// Channels is the channel count of the sampled image, 1 or 3.
	Channels int
	// Color is set when cells carry sampled colors rather than gray.
	Color bool
	// Cells are stored row-major.
	Cells []Cell
}

// At returns the cell at column x, row y.
func (g *Grid) At(x, y int) *Cell {
	return &g.Cells[y*g.Columns+x]
}

// CanvasSize returns the pixel size of the drawn mosaic.
func (g *Grid) CanvasSize() image.Point {
	return image.Pt(g.Columns*g.CellWidth, g.Rows*g.CellHeight)
}

// GridRows returns the row count for an image of the given size split
// into columns: floor(height*columns/width).
func GridRows(width, height, columns int) int {
	return height * columns / width
}

// ComputeGrid partitions img into columns x rows blocks and fills in each
// cell's mean, luma, glyph and foreground color.
//
// Blocks are floor(width/columns) x floor(height/rows) pixels; pixels past
// the last full block are never sampled. Glyphs cycle through gs by raster
// position, so cell (x, y) always gets gs.At(y*columns + x) whatever its
// brightness.
func ComputeGrid(img image.Image, gs *GlyphSet, columns int, color bool) (*Grid, error) {
	if columns < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidColumns, columns)
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 1 || height < 1 {
		return nil, ErrEmptyImage
	}
	if columns > width {
		return nil, fmt.Errorf("%w: %d columns exceed image width %d",
			ErrDegenerateGrid, columns, width)
	}
	rows := GridRows(width, height, columns)
	if rows == 0 {
		return nil, fmt.Errorf("%w: %dx%d image yields no rows at %d columns",
			ErrDegenerateGrid, width, height, columns)
	}

	s := newSampler(img)
	g := &Grid{
		Columns:     columns,
		Rows:        rows,
		BlockWidth:  width / columns,
		BlockHeight: height / rows,
		CellWidth:   gs.CellWidth,
		CellHeight:  gs.CellHeight,
		Channels:    s.channels,
		Color:       color && s.channels == 3,
		Cells:       make([]Cell, 0, rows*columns),
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			px, py := x*g.BlockWidth, y*g.BlockHeight
			w := min(g.BlockWidth, width-px)
			h := min(g.BlockHeight, height-py)
			block := image.Rect(px, py, px+w, py+h).Add(bounds.Min)

			m := s.mean(block)
			l := luma(m, s.channels)
			g.Cells = append(g.Cells, Cell{
				X:     x,
				Y:     y,
				Block: block,
				Mean:  m,
				Luma:  l,
				Glyph: gs.At(y*columns + x),
				FG:    foreground(m, l, s.channels, color),
			})
		}
	}
	return g, nil
}
