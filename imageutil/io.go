package imageutil

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// JPEGQuality is the quality used when encoding .jpg/.jpeg output.
const JPEGQuality = 95

// LoadImage loads an image from the specified path. When color is false
// the result is converted to single-channel grayscale, otherwise to a
// three-channel *image.RGBA, grayscale sources included.
// Supports PNG, JPEG, GIF, TIFF, BMP and WebP input.
func LoadImage(path string, color bool) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f, color)
}

// Decode decodes an image from r with the same conversion rules as
// LoadImage.
func Decode(r io.Reader, color bool) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if !color {
		return ToGrayscale(img), nil
	}
	return ToRGBA(img), nil
}

// SaveImage saves an image to the specified path.
// Format is determined by file extension (see Encode).
func SaveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(f, img, filepath.Ext(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes img to w in the format named by ext (".png", ".jpg",
// ".jpeg", ".gif", ".tif", ".tiff", ".bmp"). The leading dot is optional
// and case is ignored. Unknown extensions encode PNG.
func Encode(w io.Writer, img image.Image, ext string) error {
	var err error
	switch NormalizeExt(ext) {
	case "jpg", "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case "gif":
		err = gif.Encode(w, img, nil)
	case "tif", "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "bmp":
		err = bmp.Encode(w, img)
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// NormalizeExt lowercases an extension and strips its leading dot.
func NormalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}

// ContentType returns the MIME type Encode produces for ext.
func ContentType(ext string) string {
	switch NormalizeExt(ext) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "tif", "tiff":
		return "image/tiff"
	case "bmp":
		return "image/bmp"
	}
	return "image/png"
}
