// Package imageutil provides the image plumbing around the glyph renderer:
// decoding and encoding by file extension, grayscale conversion, portrait
// rotation and explicit channel access in the BGR order the sampler uses.
package imageutil

import (
	"image"
	"image/color"
	"image/draw"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to color.RGBA for use with standard library.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// IsGray reports whether all three channels are equal.
func (rgb RGB) IsGray() bool {
	return rgb.R == rgb.G && rgb.G == rgb.B
}

// RGBFromColor converts a color.Color to RGB.
func RGBFromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Channels reports how many channels the sampler reads from img: 1 for
// grayscale images, 3 for everything else.
func Channels(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	}
	return 3
}

// PixelBGR returns the pixel at (x, y) in channel order blue, green, red.
// For single-channel images the gray value is in element 0 and the other
// elements are zero.
func PixelBGR(img image.Image, x, y int) [3]uint8 {
	switch src := img.(type) {
	case *image.Gray:
		return [3]uint8{src.GrayAt(x, y).Y, 0, 0}
	case *image.Gray16:
		return [3]uint8{uint8(src.Gray16At(x, y).Y >> 8), 0, 0}
	case *image.RGBA:
		c := src.RGBAAt(x, y)
		return [3]uint8{c.B, c.G, c.R}
	case *image.NRGBA:
		c := src.NRGBAAt(x, y)
		return [3]uint8{c.B, c.G, c.R}
	}
	c := RGBFromColor(img.At(x, y))
	return [3]uint8{c.B, c.G, c.R}
}

// ToRGBA converts any image.Image to an *image.RGBA anchored at the origin.
// Gray images become three equal channels.
func ToRGBA(img image.Image) *image.RGBA {
	switch src := img.(type) {
	case *image.Gray:
		return GrayscaleToRGBA(src)
	case *image.RGBA:
		if src.Bounds().Min == (image.Point{}) {
			return src
		}
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}
