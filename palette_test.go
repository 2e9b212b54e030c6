package img2glyph

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/wbrown/img2glyph/imageutil"
)

func TestParsePaletteMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    PaletteMethod
		wantErr bool
	}{
		{"dominant", PaletteDominant, false},
		{"DominantColor", PaletteDominant, false},
		{"", PaletteDominant, false},
		{"kmeans", PaletteKMeans, false},
		{"KMeans", PaletteKMeans, false},
		{"median-cut", PaletteDominant, true},
	}
	for _, tt := range tests {
		got, err := ParsePaletteMethod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: unexpected error state: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestPaletteNearest(t *testing.T) {
	p := Palette{
		colorful.Color{R: 1, G: 0, B: 0},
		colorful.Color{R: 0, G: 0, B: 1},
		colorful.Color{R: 1, G: 1, B: 1},
	}

	tests := []struct {
		in   imageutil.RGB
		want imageutil.RGB
	}{
		{imageutil.RGB{R: 230, G: 20, B: 10}, imageutil.RGB{R: 255}},
		{imageutil.RGB{R: 10, G: 20, B: 200}, imageutil.RGB{B: 255}},
		{imageutil.RGB{R: 240, G: 240, B: 235}, imageutil.RGB{R: 255, G: 255, B: 255}},
	}
	for _, tt := range tests {
		if got := p.Nearest(tt.in); got != tt.want {
			t.Errorf("Nearest(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}

	in := imageutil.RGB{R: 1, G: 2, B: 3}
	if got := Palette(nil).Nearest(in); got != in {
		t.Errorf("Empty palette should return its input, got %v", got)
	}
}

func TestGridQuantize(t *testing.T) {
	p := Palette{colorful.Color{R: 1, G: 0, B: 0}, colorful.Color{R: 0, G: 1, B: 0}}
	img := imageutil.CreateColorBarsImage(160, 40)

	g, err := ComputeGrid(img, englishSet(), 16, true)
	if err != nil {
		t.Fatal(err)
	}
	g.Quantize(p)
	for _, c := range g.Cells {
		if c.FG != (imageutil.RGB{R: 255}) && c.FG != (imageutil.RGB{G: 255}) {
			t.Errorf("Cell (%d,%d): %v is not a palette color", c.X, c.Y, c.FG)
		}
	}

	gray, err := ComputeGrid(img, englishSet(), 16, false)
	if err != nil {
		t.Fatal(err)
	}
	gray.Quantize(p)
	for _, c := range gray.Cells {
		if !c.FG.IsGray() {
			t.Errorf("Gray grid should not be quantized, got %v", c.FG)
		}
	}
}

func TestExtractPalette(t *testing.T) {
	img := imageutil.CreateQuadrantImage(64, 64, [4]imageutil.RGB{
		{R: 255}, {B: 255}, {B: 255}, {R: 255},
	})

	if p := ExtractPalette(img, 0, PaletteDominant); p != nil {
		t.Errorf("Expected no palette for k=0, got %v", p)
	}

	for _, method := range []PaletteMethod{PaletteDominant, PaletteKMeans} {
		p := ExtractPalette(img, 2, method)
		if len(p) == 0 || len(p) > 2 {
			t.Errorf("%v: expected 1 or 2 colors, got %d", method, len(p))
		}
	}
}

func TestRendererPalette(t *testing.T) {
	img := imageutil.CreateColorBarsImage(160, 40)
	r := NewRenderer(WithColumns(16), WithColor(true), WithPalette(3, PaletteKMeans))
	g, err := r.Grid(img, englishSet())
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[imageutil.RGB]bool)
	for _, c := range g.Cells {
		seen[c.FG] = true
	}
	if len(seen) > 3 {
		t.Errorf("Expected at most 3 distinct colors, got %d", len(seen))
	}
}

func TestPaletteSampleOrder(t *testing.T) {
	p := Palette{
		colorful.Color{R: 1, G: 0, B: 0},
		colorful.Color{R: 0.2, G: 0.5, B: 0.9},
	}
	got := p.SampleOrder()
	want := Palette{
		colorful.Color{R: 0, G: 0, B: 1},
		colorful.Color{R: 0.9, G: 0.5, B: 0.2},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entry %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if p[0] != (colorful.Color{R: 1}) {
		t.Error("SampleOrder should not modify its receiver")
	}
}

func TestRendererPaletteSampleOrder(t *testing.T) {
	// Red blocks draw blue, so the palette they snap to must be swapped too
	img := imageutil.CreateQuadrantImage(64, 64, [4]imageutil.RGB{
		{R: 255}, {G: 255}, {G: 255}, {R: 255},
	})
	r := NewRenderer(WithColumns(8), WithColor(true), WithPalette(2, PaletteKMeans))
	g, err := r.Grid(img, englishSet())
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range g.Cells {
		if c.FG.R > 128 {
			t.Errorf("Cell (%d,%d): snapped to unswapped color %v", c.X, c.Y, c.FG)
		}
	}
}
