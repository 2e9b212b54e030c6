// Command img2glyph renders an image as a mosaic of text glyphs.
package main

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/muesli/termenv"

	"github.com/wbrown/img2glyph"
	"github.com/wbrown/img2glyph/imageutil"
)

type Options struct {
	Input         string `short:"i" long:"input" description:"Path to the input image" required:"true"`
	Output        string `short:"o" long:"output" description:"Path to save the mosaic; format follows the extension" default:"output.jpg"`
	Language      string `short:"l" long:"language" description:"Glyph set: english, chinese or custom" default:"chinese"`
	CustomText    string `long:"custom_text" description:"Glyphs to cycle through, overrides --language"`
	Color         bool   `long:"color" description:"Draw glyphs in their block's color"`
	Portrait      bool   `long:"portrait" description:"Rotate landscape images 90 degrees clockwise"`
	Columns       int    `long:"columns" description:"Number of glyph columns" default:"100"`
	Font          string `long:"font" description:"Font file to try before the platform fonts"`
	Palette       int    `long:"palette" description:"Snap colored glyphs to this many colors, 0 keeps exact colors" default:"0"`
	PaletteMethod string `long:"palette-method" description:"Palette extraction method" choice:"dominant" choice:"kmeans" default:"dominant"`
	Background    string `long:"background" description:"Canvas background" choice:"white" choice:"black" default:"white"`
	Text          string `long:"text" description:"Also write the glyph grid as text, - for stdout"`
	Verbose       bool   `short:"v" long:"verbose" description:"Log progress to stderr"`
}

var backgrounds = map[string]color.Color{
	"white": color.White,
	"black": color.Black,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		if flags.WroteHelp(err) {
			fmt.Fprintln(stdout, err)
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := log.New(io.Discard, "", 0)
	if opts.Verbose {
		logger = log.New(stderr, "img2glyph: ", 0)
	}

	path, err := convert(opts, stdout, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, path)
	return 0
}

// convert runs the full pipeline and returns the absolute output path.
func convert(opts Options, stdout io.Writer, logger *log.Logger) (string, error) {
	method, err := img2glyph.ParsePaletteMethod(opts.PaletteMethod)
	if err != nil {
		return "", err
	}

	img, err := imageutil.LoadImage(opts.Input, opts.Color)
	if err != nil {
		return "", err
	}
	b := img.Bounds()
	logger.Printf("loaded %s: %dx%d, %d channel(s)", opts.Input, b.Dx(), b.Dy(), imageutil.Channels(img))

	img = imageutil.RotateForPortrait(img, opts.Portrait)
	if img.Bounds() != b {
		logger.Printf("rotated to %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}

	var ropts []img2glyph.ResolverOption
	if opts.Font != "" {
		ropts = append(ropts, img2glyph.WithFontPath(opts.Font))
	}
	gs := img2glyph.Resolve(opts.Language, opts.CustomText, ropts...)
	logger.Printf("glyphs %q, cell %dx%d, font %s", gs.String(), gs.CellWidth, gs.CellHeight, gs.Font.Name)
	if opts.Font != "" && gs.Font.Name != opts.Font {
		logger.Printf("could not use font %s", opts.Font)
	}

	r := img2glyph.NewRenderer(
		img2glyph.WithColumns(opts.Columns),
		img2glyph.WithColor(opts.Color),
		img2glyph.WithPalette(opts.Palette, method),
		img2glyph.WithBackground(backgrounds[opts.Background]),
	)
	g, err := r.Grid(img, gs)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", opts.Input, err)
	}
	logger.Printf("grid %dx%d of %dx%d blocks", g.Columns, g.Rows, g.BlockWidth, g.BlockHeight)

	canvas, err := r.Draw(g, gs)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", opts.Input, err)
	}

	if err := imageutil.SaveImage(canvas, opts.Output); err != nil {
		return "", err
	}
	logger.Printf("wrote %dx%d mosaic to %s", canvas.Bounds().Dx(), canvas.Bounds().Dy(), opts.Output)

	if opts.Text != "" {
		if err := writeText(opts, g, stdout); err != nil {
			return "", err
		}
	}

	abs, err := filepath.Abs(opts.Output)
	if err != nil {
		return opts.Output, nil
	}
	return abs, nil
}

func writeText(opts Options, g *img2glyph.Grid, stdout io.Writer) error {
	if opts.Text == "-" {
		profile := termenv.Ascii
		if opts.Color {
			profile = termenv.NewOutput(stdout).EnvColorProfile()
		}
		return img2glyph.WriteText(stdout, g, profile)
	}

	profile := termenv.Ascii
	if opts.Color {
		profile = termenv.TrueColor
	}
	f, err := os.Create(opts.Text)
	if err != nil {
		return fmt.Errorf("failed to create text file: %w", err)
	}
	if err := img2glyph.WriteText(f, g, profile); err != nil {
		f.Close()
		return fmt.Errorf("failed to write text: %w", err)
	}
	return f.Close()
}
