package img2glyph

import (
	"strings"
)

// Glyph set modes accepted by Resolve. Any other value behaves like
// ModeChinese.
const (
	ModeEnglish = "english"
	ModeChinese = "chinese"
	ModeCustom  = "custom"
)

const (
	// EnglishRamp is ordered by coverage density, densest first. The
	// trailing space is the emptiest glyph.
	EnglishRamp = "@%#*+=-:. "

	// ChineseGlyphs is the default ideographic sequence.
	ChineseGlyphs = "江雪利编程艺术字图"

	// RampCellWidth and RampCellHeight are the fixed cell geometry of the
	// English ramp, independent of the font's metrics.
	RampCellWidth  = 8
	RampCellHeight = 12

	// MeasureGlyph is the wide glyph whose advance sets the cell width of
	// measured glyph sets.
	MeasureGlyph = '江'
)

// GlyphSet is the ordered glyph palette of a mosaic together with the cell
// geometry and font used to draw it. It is never empty.
type GlyphSet struct {
	Glyphs     []rune
	CellWidth  int
	CellHeight int
	Font       *Font
}

// Len returns the number of glyphs in the set.
func (gs *GlyphSet) Len() int {
	return len(gs.Glyphs)
}

// At returns the glyph for raster index i, cycling through the set.
func (gs *GlyphSet) At(i int) rune {
	return gs.Glyphs[i%len(gs.Glyphs)]
}

func (gs *GlyphSet) String() string {
	return string(gs.Glyphs)
}

// ResolverOption configures Resolve.
type ResolverOption func(*resolver)

type resolver struct {
	fontPath   string
	candidates []string
	override   bool
	goos       string
}

// WithFontPath tries path before any platform font.
func WithFontPath(path string) ResolverOption {
	return func(r *resolver) {
		r.fontPath = path
	}
}

// WithFontCandidates replaces the platform font list. An empty list
// resolves straight to the fallback font.
func WithFontCandidates(paths ...string) ResolverOption {
	return func(r *resolver) {
		r.candidates = paths
		r.override = true
	}
}

// Glyphs returns the glyph sequence for mode and customText. A non-empty
// customText always wins; otherwise "english" (any case) selects the
// ramp and every other mode, recognized or not, selects ChineseGlyphs.
func Glyphs(mode, customText string) []rune {
	if customText != "" {
		return []rune(customText)
	}
	if isEnglish(mode) {
		return []rune(EnglishRamp)
	}
	return []rune(ChineseGlyphs)
}

// Resolve builds the GlyphSet for mode and customText.
//
// Unknown modes fall back to the ideographic set rather than failing. In
// English mode the cells are RampCellWidth x RampCellHeight. In every other
// mode the cell is measured from the resolved font at FontSize: the advance
// of MeasureGlyph by the font's line height. Font loading never fails; the
// embedded fallback font is used when no candidate loads.
func Resolve(mode, customText string, opts ...ResolverOption) *GlyphSet {
	r := &resolver{goos: currentGOOS()}
	for _, opt := range opts {
		opt(r)
	}

	script := ScriptCJK
	if isEnglish(mode) {
		script = ScriptLatin
	}
	candidates := r.candidates
	if !r.override {
		candidates = PlatformFontCandidates(r.goos, script)
	}
	if r.fontPath != "" {
		candidates = append([]string{r.fontPath}, candidates...)
	}

	gs := &GlyphSet{
		Glyphs: Glyphs(mode, customText),
		Font:   ResolveFont(candidates),
	}
	if script == ScriptLatin {
		gs.CellWidth, gs.CellHeight = RampCellWidth, RampCellHeight
	} else {
		gs.CellWidth, gs.CellHeight = measureCell(gs.Font)
	}
	return gs
}

// measureCell returns the advance of MeasureGlyph and the line height at
// FontSize. Unusable metrics fall back to FontSize.
func measureCell(f *Font) (width, height int) {
	width, height = FontSize, FontSize
	face, err := f.NewFace(FontSize)
	if err != nil {
		return width, height
	}
	defer face.Close()

	if adv, ok := face.GlyphAdvance(MeasureGlyph); ok && adv.Round() > 0 {
		width = adv.Round()
	}
	if h := face.Metrics().Height.Ceil(); h > 0 {
		height = h
	}
	return width, height
}

func isEnglish(mode string) bool {
	return strings.EqualFold(mode, ModeEnglish)
}
