package imageutil

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestChannels(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		want int
	}{
		{"gray", image.NewGray(image.Rect(0, 0, 2, 2)), 1},
		{"gray16", image.NewGray16(image.Rect(0, 0, 2, 2)), 1},
		{"rgba", image.NewRGBA(image.Rect(0, 0, 2, 2)), 3},
		{"nrgba", image.NewNRGBA(image.Rect(0, 0, 2, 2)), 3},
		{"paletted", image.NewPaletted(image.Rect(0, 0, 2, 2), nil), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Channels(tt.img); got != tt.want {
				t.Errorf("Expected %d channels, got %d", tt.want, got)
			}
		})
	}
}

func TestPixelBGR(t *testing.T) {
	img := CreateSolidImage(2, 2, RGB{R: 10, G: 20, B: 30})
	got := PixelBGR(img, 1, 1)
	want := [3]uint8{30, 20, 10}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}

	gray := CreateSolidGray(2, 2, 77)
	got = PixelBGR(gray, 0, 0)
	if got != [3]uint8{77, 0, 0} {
		t.Errorf("Gray pixel should only populate channel 0, got %v", got)
	}
}

func TestToRGBA(t *testing.T) {
	rgba := ToRGBA(CreateSolidGray(3, 3, 9))
	if Channels(rgba) != 3 {
		t.Error("ToRGBA should expand gray images to three channels")
	}
	if got := rgba.RGBAAt(1, 1); got.R != 9 || got.G != 9 || got.B != 9 {
		t.Errorf("Expected gray 9 in every channel, got %v", got)
	}

	sub := CreateColorBarsImage(16, 4).SubImage(image.Rect(8, 0, 16, 4))
	out := ToRGBA(sub)
	if out.Bounds().Min != (image.Point{}) {
		t.Errorf("Expected origin-anchored bounds, got %v", out.Bounds())
	}
	if out.Bounds().Dx() != 8 {
		t.Errorf("Expected width 8, got %d", out.Bounds().Dx())
	}
}

func TestToGrayscale(t *testing.T) {
	tests := []struct {
		name     string
		c        RGB
		min, max uint8
	}{
		{"white", RGB{255, 255, 255}, 255, 255},
		{"black", RGB{0, 0, 0}, 0, 0},
		// 0.299 * 255 = 76.245
		{"red", RGB{255, 0, 0}, 75, 77},
		// 0.114 * 255 = 29.07
		{"blue", RGB{0, 0, 255}, 28, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gray := ToGrayscale(CreateSolidImage(1, 1, tt.c))
			v := gray.GrayAt(0, 0).Y
			if v < tt.min || v > tt.max {
				t.Errorf("Expected %d..%d, got %d", tt.min, tt.max, v)
			}
		})
	}
}

func TestGrayscaleToRGBA(t *testing.T) {
	rgba := GrayscaleToRGBA(CreateSolidGray(2, 2, 128))
	c := rgba.RGBAAt(1, 1)
	if c.R != 128 || c.G != 128 || c.B != 128 || c.A != 255 {
		t.Errorf("Expected opaque gray 128, got %v", c)
	}
}

func TestRotateForPortrait(t *testing.T) {
	// Landscape, top-left red, top-right green, bottom-left blue, bottom-right white
	img := CreateQuadrantImage(40, 20, [4]RGB{
		{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 255},
	})

	rotated := RotateForPortrait(img, true)
	size := rotated.Bounds().Size()
	if size.X != 20 || size.Y != 40 {
		t.Fatalf("Expected 20x40 after rotation, got %dx%d", size.X, size.Y)
	}

	// Clockwise: the old bottom-left lands top-left, the old top-left lands top-right
	b := rotated.Bounds()
	if got := RGBFromColor(rotated.At(b.Min.X+2, b.Min.Y+2)); got != (RGB{0, 0, 255}) {
		t.Errorf("Expected blue at top-left after clockwise rotation, got %v", got)
	}
	if got := RGBFromColor(rotated.At(b.Max.X-3, b.Min.Y+2)); got != (RGB{255, 0, 0}) {
		t.Errorf("Expected red at top-right after clockwise rotation, got %v", got)
	}

	if RotateForPortrait(img, false) != image.Image(img) {
		t.Error("Rotation without portrait flag should return the input")
	}
	tall := CreateSolidImage(10, 20, RGB{})
	if RotateForPortrait(tall, true) != image.Image(tall) {
		t.Error("Portrait input should not be rotated")
	}
}

func TestRotateKeepsGray(t *testing.T) {
	rotated := RotateClockwise(CreateSolidGray(8, 4, 50))
	if Channels(rotated) != 1 {
		t.Error("Rotating a gray image should keep one channel")
	}
}

func TestLoadSaveImage(t *testing.T) {
	tmpDir := t.TempDir()
	img := CreateColorBarsImage(64, 64)

	pngPath := filepath.Join(tmpDir, "test.png")
	if err := SaveImage(img, pngPath); err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}

	loaded, err := LoadImage(pngPath, true)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}

	// PNG should be lossless
	if mse := CalculateMSE(img, loaded); mse > 0.01 {
		t.Errorf("PNG should be lossless, MSE=%f", mse)
	}

	gray, err := LoadImage(pngPath, false)
	if err != nil {
		t.Fatalf("Failed to load PNG as gray: %v", err)
	}
	if Channels(gray) != 1 {
		t.Error("Loading without color should produce a single-channel image")
	}
}

func TestEncodeFormats(t *testing.T) {
	img := CreateGradientImage(16, 16)
	for _, ext := range []string{".png", ".jpg", "JPEG", ".gif", ".tiff", ".bmp", ".unknown"} {
		var buf bytes.Buffer
		if err := Encode(&buf, img, ext); err != nil {
			t.Fatalf("Encode(%q) failed: %v", ext, err)
		}
		decoded, err := Decode(&buf, true)
		if err != nil {
			t.Fatalf("Decode after Encode(%q) failed: %v", ext, err)
		}
		if decoded.Bounds().Dx() != 16 || decoded.Bounds().Dy() != 16 {
			t.Errorf("%s: expected 16x16, got %v", ext, decoded.Bounds())
		}
	}
}

func TestLoadImageErrors(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"), true); err == nil {
		t.Error("Expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.png")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(empty, true); err == nil {
		t.Error("Expected error for zero-byte file")
	}
}

func TestContentType(t *testing.T) {
	if ct := ContentType(".JPG"); ct != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %s", ct)
	}
	if ct := ContentType("webp"); ct != "image/png" {
		t.Errorf("Unknown output extensions should encode PNG, got %s", ct)
	}
}
