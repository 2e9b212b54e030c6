package img2glyph

import (
	"fmt"
	"image"
	"math"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/wbrown/img2glyph/imageutil"
)

// PaletteMethod selects how a palette is extracted from the source image.
type PaletteMethod int

const (
	// PaletteDominant uses dominant-color extraction.
	PaletteDominant PaletteMethod = iota
	// PaletteKMeans clusters a subsample of the pixels with k-means.
	PaletteKMeans
)

// kmeansMaxSamples bounds the pixels fed to k-means.
const kmeansMaxSamples = 12000

func (m PaletteMethod) String() string {
	switch m {
	case PaletteKMeans:
		return "kmeans"
	default:
		return "dominant"
	}
}

// ParsePaletteMethod parses "dominant" or "kmeans", ignoring case.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch strings.ToLower(s) {
	case "dominant", "dominantcolor", "":
		return PaletteDominant, nil
	case "kmeans":
		return PaletteKMeans, nil
	}
	return PaletteDominant, fmt.Errorf("unknown palette method %q", s)
}

// Palette is a set of colors that glyph foregrounds are snapped to.
type Palette []colorful.Color

// ExtractPalette extracts up to k colors from img. K-means falls back to
// dominant-color extraction if clustering fails.
func ExtractPalette(img image.Image, k int, method PaletteMethod) Palette {
	if k <= 0 {
		return nil
	}
	if method == PaletteKMeans {
		if p := extractKMeans(img, k); len(p) > 0 {
			return p
		}
	}
	return extractDominant(img, k)
}

func extractDominant(img image.Image, k int) Palette {
	var p Palette
	for _, c := range dominantcolor.FindWeight(img, k) {
		col, _ := colorful.MakeColor(c.RGBA)
		p = append(p, col.Clamped())
	}
	return p
}

func extractKMeans(img image.Image, k int) Palette {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	step := 1
	if width*height > kmeansMaxSamples {
		step = int(math.Sqrt(float64(width*height)/kmeansMaxSamples)) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, kmeansMaxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := imageutil.RGBFromColor(img.At(x, y))
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255,
				float64(c.G) / 255,
				float64(c.B) / 255,
			})
		}
	}
	k = min(k, len(dataset))
	if k == 0 {
		return nil
	}

	cc, err := kmeans.New().Partition(dataset, k)
	if err != nil {
		return nil
	}

	// Most populated clusters first.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	p := make(Palette, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		p = append(p, colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped())
	}
	return p
}

// SampleOrder returns p with red and blue exchanged, matching the channel
// order of colored cell foregrounds.
func (p Palette) SampleOrder() Palette {
	out := make(Palette, len(p))
	for i, c := range p {
		out[i] = colorful.Color{R: c.B, G: c.G, B: c.R}
	}
	return out
}

// Nearest returns the palette color closest to c in CIE Lab. An empty
// palette returns c.
func (p Palette) Nearest(c imageutil.RGB) imageutil.RGB {
	if len(p) == 0 {
		return c
	}
	target, _ := colorful.MakeColor(c.ToColor())
	best, bestDist := 0, math.MaxFloat64
	for i, pc := range p {
		if d := target.DistanceLab(pc); d < bestDist {
			best, bestDist = i, d
		}
	}
	r, g, b := p[best].RGB255()
	return imageutil.RGB{R: r, G: g, B: b}
}

// Quantize snaps every colored cell foreground to its nearest palette
// color. Gray grids are left alone.
func (g *Grid) Quantize(p Palette) {
	if !g.Color || len(p) == 0 {
		return
	}
	for i := range g.Cells {
		g.Cells[i].FG = p.Nearest(g.Cells[i].FG)
	}
}
