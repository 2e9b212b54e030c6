package img2glyph

import (
	"bufio"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/wbrown/img2glyph/imageutil"
)

// WriteText writes the glyph grid as text, one line per row. With the
// termenv.Ascii profile the glyphs are written bare. Any other profile
// colors each run of equally colored cells with a single escape sequence,
// reset at the end of the run.
func WriteText(w io.Writer, g *Grid, profile termenv.Profile) error {
	bw := bufio.NewWriter(w)
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(profile)

	for y := 0; y < g.Rows; y++ {
		row := g.Cells[y*g.Columns : (y+1)*g.Columns]
		if profile == termenv.Ascii {
			for _, c := range row {
				bw.WriteRune(c.Glyph)
			}
		} else {
			writeColoredRow(bw, renderer, row)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// writeColoredRow groups adjacent cells with the same foreground into one
// styled run.
func writeColoredRow(bw *bufio.Writer, renderer *lipgloss.Renderer, row []Cell) {
	var run []rune
	var current imageutil.RGB
	flush := func() {
		if len(run) == 0 {
			return
		}
		style := renderer.NewStyle().Foreground(lipgloss.Color(hexColor(current)))
		bw.WriteString(style.Render(string(run)))
		run = run[:0]
	}

	for _, c := range row {
		if len(run) > 0 && c.FG != current {
			flush()
		}
		current = c.FG
		run = append(run, c.Glyph)
	}
	flush()
}

func hexColor(c imageutil.RGB) string {
	col, _ := colorful.MakeColor(c.ToColor())
	return col.Hex()
}
