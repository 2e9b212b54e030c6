package imageutil

import (
	"image"
	"image/color"
)

// ToGrayscale converts an image to single-channel grayscale using the
// standard luminance formula: Y = 0.299*R + 0.587*G + 0.114*B
// This matches the BT.601 standard used by OpenCV's COLOR_BGR2GRAY.
// Gray images are returned as-is.
func ToGrayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	gray := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := PixelBGR(img, bounds.Min.X+x, bounds.Min.Y+y)
			// Integer math, scaled by 1000 and rounded
			lum := (299*int(px[2]) + 587*int(px[1]) + 114*int(px[0]) + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			gray.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}

	return gray
}

// GrayscaleToRGBA converts a grayscale image back to RGBA.
func GrayscaleToRGBA(gray *image.Gray) *image.RGBA {
	bounds := gray.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			v := gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
			rgba.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	return rgba
}
