package img2glyph

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/wbrown/img2glyph/imageutil"
)

var escapeSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

func gridLines(g *Grid) []string {
	lines := make([]string, g.Rows)
	for y := range lines {
		var sb strings.Builder
		for x := 0; x < g.Columns; x++ {
			sb.WriteRune(g.At(x, y).Glyph)
		}
		lines[y] = sb.String()
	}
	return lines
}

func TestWriteTextAscii(t *testing.T) {
	img := imageutil.CreateGradientImage(120, 60)
	g, err := ComputeGrid(img, englishSet(), 12, true)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, g, termenv.Ascii); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("Ascii output should not contain escape sequences")
	}

	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	want := gridLines(g)
	if len(got) != len(want) {
		t.Fatalf("Expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestWriteTextTrueColor(t *testing.T) {
	img := imageutil.CreateColorBarsImage(160, 40)
	g, err := ComputeGrid(img, Resolve(ModeChinese, "", WithFontCandidates()), 16, true)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, g, termenv.TrueColor); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[38;2;") {
		t.Error("Expected 24-bit foreground escape sequences")
	}

	got := strings.Split(strings.TrimSuffix(escapeSeq.ReplaceAllString(out, ""), "\n"), "\n")
	want := gridLines(g)
	if len(got) != len(want) {
		t.Fatalf("Expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestWriteTextGroupsRuns(t *testing.T) {
	img := imageutil.CreateSolidImage(80, 40, imageutil.RGB{R: 200, G: 30, B: 40})
	g, err := ComputeGrid(img, englishSet(), 8, true)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, g, termenv.TrueColor); err != nil {
		t.Fatal(err)
	}
	for i, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		if n := strings.Count(line, "\x1b[38;2;"); n != 1 {
			t.Errorf("Line %d: expected one color run, got %d", i, n)
		}
	}
}
