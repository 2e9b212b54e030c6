package imageutil

import (
	"image"
	"image/draw"

	"github.com/disintegration/gift"
)

// RotateForPortrait rotates img 90 degrees clockwise when portrait is set
// and the image is wider than it is tall. Any other input is returned
// unchanged. Gray images stay single-channel.
func RotateForPortrait(img image.Image, portrait bool) image.Image {
	size := img.Bounds().Size()
	if !portrait || size.X <= size.Y {
		return img
	}
	return RotateClockwise(img)
}

// RotateClockwise rotates img 90 degrees clockwise.
func RotateClockwise(img image.Image) image.Image {
	// gift rotates counter-clockwise; 270 CCW is 90 CW.
	g := gift.New(gift.Rotate270())
	bounds := g.Bounds(img.Bounds())

	var dst draw.Image
	if Channels(img) == 1 {
		dst = image.NewGray(bounds)
	} else {
		dst = image.NewRGBA(bounds)
	}
	g.Draw(dst, img)
	return dst
}
