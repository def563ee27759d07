package histogram

import (
	"context"
	"image"
	"image/color"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/colorquant/internal/geom"
)

// Options configures Extract.
type Options struct {
	// Workers bounds the number of concurrently scanned partitions.
	// Defaults to runtime.GOMAXPROCS(0).
	Workers int
	// Partitions is the number of row chunks. Defaults to Workers.
	// Capped at the image height.
	Partitions int
}

// Pack encodes an 8-bit RGB triple as 0xRRGGBB. Packed keys order the same
// way as the lexicographic (r, g, b) order.
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack decodes a key produced by Pack.
func Unpack(key uint32) (r, g, b uint8) {
	return uint8(key >> 16), uint8(key >> 8), uint8(key)
}

// Extract returns the distinct colours of img as weighted points sorted
// lexicographically by (r, g, b). Each weight is the number of pixels with
// that colour. Alpha is ignored; colours are taken non-premultiplied.
func Extract(ctx context.Context, img image.Image, opts Options) ([]geom.WeightedPoint, error) {
	bounds := img.Bounds()
	height := bounds.Dy()
	if bounds.Empty() {
		return nil, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	parts := opts.Partitions
	if parts <= 0 {
		parts = workers
	}
	parts = min(parts, height)

	read := rowReader(img)
	partials := make([]map[uint32]uint64, parts)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range parts {
		y0 := bounds.Min.Y + i*height/parts
		y1 := bounds.Min.Y + (i+1)*height/parts
		g.Go(func() error {
			counts := make(map[uint32]uint64)
			row := make([]uint32, bounds.Dx())
			for y := y0; y < y1; y++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				read(row, y)
				for _, key := range row {
					counts[key]++
				}
			}
			partials[i] = counts
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return merge(partials), nil
}

// merge folds the partial counts into one sorted point list.
func merge(partials []map[uint32]uint64) []geom.WeightedPoint {
	merged := partials[0]
	for _, p := range partials[1:] {
		for key, n := range p {
			merged[key] += n
		}
	}

	keys := make([]uint32, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	points := make([]geom.WeightedPoint, len(keys))
	for i, key := range keys {
		r, g, b := Unpack(key)
		points[i] = geom.NewWeightedPoint(float64(r), float64(g), float64(b), merged[key])
	}
	return points
}

// rowReader returns a function that writes the packed colours of row y
// into dst (len(dst) == image width).
func rowReader(img image.Image) func(dst []uint32, y int) {
	bounds := img.Bounds()

	switch m := img.(type) {
	case *image.RGBA:
		return func(dst []uint32, y int) {
			off := m.PixOffset(bounds.Min.X, y)
			for x := range dst {
				p := m.Pix[off : off+4 : off+4]
				if p[3] == 0xff {
					dst[x] = Pack(p[0], p[1], p[2])
				} else {
					dst[x] = packColor(color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]})
				}
				off += 4
			}
		}
	case *image.NRGBA:
		return func(dst []uint32, y int) {
			off := m.PixOffset(bounds.Min.X, y)
			for x := range dst {
				dst[x] = Pack(m.Pix[off], m.Pix[off+1], m.Pix[off+2])
				off += 4
			}
		}
	case *image.Paletted:
		// Indices outside the palette read as black.
		lut := make([]uint32, 256)
		for i, c := range m.Palette[:min(len(m.Palette), 256)] {
			lut[i] = packColor(c)
		}
		return func(dst []uint32, y int) {
			off := m.PixOffset(bounds.Min.X, y)
			for x := range dst {
				dst[x] = lut[m.Pix[off+x]]
			}
		}
	default:
		return func(dst []uint32, y int) {
			for x := range dst {
				dst[x] = packColor(img.At(bounds.Min.X+x, y))
			}
		}
	}
}

func packColor(c color.Color) uint32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pack(n.R, n.G, n.B)
}
