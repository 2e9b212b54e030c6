package img2glyph

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// FallbackFontName names the embedded Go Mono font used when no platform
// font can be loaded.
const FallbackFontName = "gomono"

// Script selects which platform fonts are worth probing for a glyph set.
type Script int

const (
	// ScriptLatin covers the ASCII brightness ramp.
	ScriptLatin Script = iota
	// ScriptCJK covers the ideographic default set and custom text.
	ScriptCJK
)

// Font is a parsed font resource that can produce faces at any size.
type Font struct {
	// Name is the file the font was loaded from, or FallbackFontName.
	Name string

	newFace func(size float64) (font.Face, error)
}

// NewFace returns a face at size points and 72 DPI. The caller owns the
// face and must Close it.
func (f *Font) NewFace(size float64) (font.Face, error) {
	return f.newFace(size)
}

// IsFallback reports whether f is the embedded fallback font.
func (f *Font) IsFallback() bool {
	return f.Name == FallbackFontName
}

var fallbackFont = sync.OnceValue(func() *Font {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		// The embedded font is part of x/image and always parses.
		panic(fmt.Sprintf("failed to parse embedded font: %v", err))
	}
	return openTypeFont(FallbackFontName, f)
})

// FallbackFont returns the embedded monospaced font.
func FallbackFont() *Font {
	return fallbackFont()
}

// PlatformFontCandidates lists the font files tried for script on goos,
// in preference order.
func PlatformFontCandidates(goos string, script Script) []string {
	if script == ScriptLatin {
		switch goos {
		case "darwin":
			return []string{"/System/Library/Fonts/Menlo.ttc", "/System/Library/Fonts/Monaco.ttf"}
		case "linux":
			return []string{
				"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
				"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
			}
		case "windows":
			return []string{`C:\Windows\Fonts\consola.ttf`, `C:\Windows\Fonts\cour.ttf`}
		}
		return nil
	}

	switch goos {
	case "darwin":
		return []string{
			"/System/Library/Fonts/PingFang.ttc",
			"/System/Library/Fonts/STHeiti Light.ttc",
			"/System/Library/Fonts/STHeiti Medium.ttc",
		}
	case "linux":
		return []string{
			"/usr/share/fonts/chinese/simsun.ttf",
			"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
			"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
		}
	case "windows":
		return []string{`C:\Windows\Fonts\simsun.ttc`, `C:\Windows\Fonts\msyh.ttc`}
	}
	return nil
}

// ResolveFont loads the first candidate that exists and parses. If none
// do, the embedded fallback font is returned. It never fails.
func ResolveFont(candidates []string) *Font {
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if f, err := LoadFont(path); err == nil {
			return f
		}
	}
	return FallbackFont()
}

// LoadFont loads a TrueType or OpenType font file. Plain .ttf files are
// parsed with freetype; collections, .otf files and anything freetype
// rejects go through the sfnt-based opentype parser, taking the first
// font of a collection.
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".ttf") {
		if ttf, err := freetype.ParseFont(data); err == nil {
			return trueTypeFont(path, ttf), nil
		}
	}

	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	if coll.NumFonts() == 0 {
		return nil, fmt.Errorf("font %s contains no fonts", path)
	}
	otf, err := coll.Font(0)
	if err != nil {
		return nil, fmt.Errorf("failed to load font %s: %w", path, err)
	}
	return openTypeFont(path, otf), nil
}

func trueTypeFont(name string, ttf *truetype.Font) *Font {
	return &Font{
		Name: name,
		newFace: func(size float64) (font.Face, error) {
			return truetype.NewFace(ttf, &truetype.Options{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingFull,
			}), nil
		},
	}
}

func openTypeFont(name string, otf *opentype.Font) *Font {
	return &Font{
		Name: name,
		newFace: func(size float64) (font.Face, error) {
			return opentype.NewFace(otf, &opentype.FaceOptions{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingFull,
			})
		},
	}
}

func currentGOOS() string {
	return runtime.GOOS
}
