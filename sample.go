package img2glyph

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/wbrown/img2glyph/imageutil"
)

// Luma weights. They are applied to channels 0, 1 and 2 of the BGR
// sample, so 0.299 weights blue and 0.114 weights red. Output images
// depend on this ordering; it is kept as is.
const (
	lumaW0 = 0.299
	lumaW1 = 0.587
	lumaW2 = 0.114
)

// sampler computes per-channel block means, reusing its buffers between
// blocks.
type sampler struct {
	img      image.Image
	channels int
	values   [3][]float64
}

func newSampler(img image.Image) *sampler {
	return &sampler{img: img, channels: imageutil.Channels(img)}
}

// mean returns the arithmetic mean of each channel over r, in BGR order.
// Single-channel images only populate element 0.
func (s *sampler) mean(r image.Rectangle) [3]float64 {
	n := r.Dx() * r.Dy()
	for c := 0; c < s.channels; c++ {
		s.values[c] = s.values[c][:0]
		if cap(s.values[c]) < n {
			s.values[c] = make([]float64, 0, n)
		}
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			px := imageutil.PixelBGR(s.img, x, y)
			for c := 0; c < s.channels; c++ {
				s.values[c] = append(s.values[c], float64(px[c]))
			}
		}
	}

	var m [3]float64
	for c := 0; c < s.channels; c++ {
		m[c] = stat.Mean(s.values[c], nil)
	}
	return m
}

// luma returns the brightness of a block mean. Single-channel means are
// their own brightness.
func luma(m [3]float64, channels int) float64 {
	if channels == 1 {
		return m[0]
	}
	return lumaW0*m[0] + lumaW1*m[1] + lumaW2*m[2]
}

// foreground picks the glyph color for a block. With color enabled on a
// three-channel image it is the mean triple taken as (R, G, B) in sample
// order, so channel 0 (blue) lands in red and channel 2 (red) in blue.
// Like the luma weights, this ordering is kept as is. Otherwise the
// foreground is the inverted luma as gray.
func foreground(m [3]float64, l float64, channels int, color bool) imageutil.RGB {
	if color && channels == 3 {
		return imageutil.RGB{R: clampByte(m[0]), G: clampByte(m[1]), B: clampByte(m[2])}
	}
	g := clampByte(255 - math.Trunc(l))
	return imageutil.RGB{R: g, G: g, B: g}
}

// clampByte truncates v toward zero and clamps it to 0..255.
func clampByte(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
