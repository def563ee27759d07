// Package main is the colorquant command line tool.
//
// It decodes an image, computes a palette and prints it as hex colors.
// With --out the image is remapped onto the palette and written as an
// indexed PNG.
package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"strings"

	_ "github.com/gen2brain/avif"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/hupe1980/colorquant"
)

const (
	// Flags.
	flagColors        = "colors"
	flagMethod        = "method"
	flagMaxIterations = "max-iterations"
	flagSeed          = "seed"
	flagWorkers       = "workers"
	flagPalette       = "palette"
	flagOut           = "out"
	flagLogLevel      = "log-level"
	flagLogJSON       = "log-json"

	// PNG palettes hold at most 256 entries.
	maxColors = 256
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "colorquant:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "colorquant",
		Usage:     "reduce the colors of an image with k-means",
		ArgsUsage: "<input>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    flagColors,
				Aliases: []string{"n"},
				Usage:   "palette size (0 uses up to 256, capped at the distinct color count)",
			},
			&cli.StringFlag{
				Name:    flagMethod,
				Aliases: []string{"m"},
				Value:   colorquant.MethodFiltering.String(),
				Usage:   "one of filtering, lloyd, most-frequent, random",
			},
			&cli.IntFlag{
				Name:  flagMaxIterations,
				Value: 100,
				Usage: "iteration cap for k-means",
			},
			&cli.Int64Flag{
				Name:  flagSeed,
				Value: 1,
				Usage: "seed for the initial palette",
			},
			&cli.IntFlag{
				Name:  flagWorkers,
				Usage: "goroutines scanning the image (0 uses GOMAXPROCS)",
			},
			&cli.StringFlag{
				Name:  flagPalette,
				Usage: "comma separated hex colors to start k-means from, e.g. `#000000,#ffffff`",
			},
			&cli.StringFlag{
				Name:    flagOut,
				Aliases: []string{"o"},
				Usage:   "write the remapped image as indexed PNG to `FILE`",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Value: "warn",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  flagLogJSON,
				Usage: "log as JSON",
			},
		},
		Action: quantizeAction,
	}
}

func quantizeAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one input image", 2)
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	img, format, err := decode(c.Args().First())
	if err != nil {
		return err
	}

	opts, err := options(c)
	if err != nil {
		return err
	}

	// Without --colors the library default applies: 256 capped at the number
	// of distinct colors, which equals PaletteSize(pixels) capped the same way.
	if n := c.Int(flagColors); n != 0 {
		if n > maxColors {
			return fmt.Errorf("%w: at most %d colors", colorquant.ErrInvalidConfiguration, maxColors)
		}
		opts = append(opts, colorquant.WithPaletteSize(n))
	}

	res, err := colorquant.Quantize(ctx, img, opts...)
	if err != nil {
		return err
	}

	w := c.App.Writer
	for _, h := range res.Hex() {
		fmt.Fprintln(w, h)
	}
	fmt.Fprintf(w, "input: %s, %d pixels, %d distinct colors\n", format, res.Pixels, res.DistinctColors)
	fmt.Fprintf(w, "method: %s, iterations: %d, %s\n", res.Method, res.Iterations, res.State)
	fmt.Fprintf(w, "distortion: %.2f\n", res.Distortion)

	if out := c.String(flagOut); out != "" {
		return writePNG(out, img, res.Palette())
	}
	return nil
}

func options(c *cli.Context) ([]colorquant.Option, error) {
	method, err := colorquant.ParseMethod(c.String(flagMethod))
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(c.String(flagLogLevel), c.Bool(flagLogJSON))
	if err != nil {
		return nil, err
	}

	opts := []colorquant.Option{
		colorquant.WithMethod(method),
		colorquant.WithMaxIterations(c.Int(flagMaxIterations)),
		colorquant.WithSeed(c.Int64(flagSeed)),
		colorquant.WithWorkers(c.Int(flagWorkers)),
		colorquant.WithLogger(logger),
	}

	if c.IsSet(flagPalette) {
		palette, err := parsePalette(c.String(flagPalette))
		if err != nil {
			return nil, err
		}
		opts = append(opts, colorquant.WithInitialPalette(palette))
	}
	return opts, nil
}

func newLogger(level string, json bool) (*colorquant.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("%w: log level %q", colorquant.ErrInvalidConfiguration, level)
	}
	if json {
		return colorquant.NewJSONLogger(l), nil
	}
	return colorquant.NewTextLogger(l), nil
}

func parsePalette(s string) ([]color.Color, error) {
	fields := strings.Split(s, ",")
	palette := make([]color.Color, 0, len(fields))
	for _, f := range fields {
		c, err := colorful.Hex(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%w: palette color %q: %w", colorquant.ErrInvalidConfiguration, f, err)
		}
		r, g, b := c.RGB255()
		palette = append(palette, color.NRGBA{R: r, G: g, B: b, A: 0xff})
	}
	if len(palette) > maxColors {
		return nil, fmt.Errorf("%w: at most %d colors", colorquant.ErrInvalidConfiguration, maxColors)
	}
	return palette, nil
}

func decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

func writePNG(path string, img image.Image, palette color.Palette) error {
	dst := image.NewPaletted(img.Bounds(), palette)
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
