//go:build gocv

package imageutil

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// LoadImageOpenCV loads an image through OpenCV, the decoder the mosaic
// geometry was originally calibrated against. The conversion rules match
// LoadImage: grayscale when color is false, RGBA otherwise.
func LoadImageOpenCV(path string, color bool) (image.Image, error) {
	flags := gocv.IMReadColor
	if !color {
		flags = gocv.IMReadGrayScale
	}
	mat := gocv.IMRead(path, flags)
	if mat.Empty() {
		return nil, fmt.Errorf("could not read image from %s", path)
	}
	defer mat.Close()

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	if !color {
		return ToGrayscale(img), nil
	}
	return ToRGBA(img), nil
}

// RotateClockwiseOpenCV rotates a BGR matrix 90 degrees clockwise in place,
// for comparison against RotateClockwise.
func RotateClockwiseOpenCV(mat *gocv.Mat) {
	gocv.Rotate(*mat, mat, gocv.Rotate90Clockwise)
}
