package histogram

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/colorquant/internal/geom"
	"github.com/hupe1980/colorquant/testutil"
)

// sequential is the reference single-threaded count.
func sequential(img image.Image) map[uint32]uint64 {
	counts := make(map[uint32]uint64)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			counts[packColor(img.At(x, y))]++
		}
	}
	return counts
}

func assertMatches(t *testing.T, want map[uint32]uint64, got []geom.WeightedPoint) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, p := range got {
		key := Pack(uint8(p.Point.X), uint8(p.Point.Y), uint8(p.Point.Z))
		assert.Equal(t, want[key], p.Weight, "colour %06x", key)
		if i > 0 {
			assert.Equal(t, -1, got[i-1].Compare(p), "points must be sorted")
		}
	}
}

func TestPackUnpack(t *testing.T) {
	key := Pack(0x12, 0x34, 0x56)
	assert.Equal(t, uint32(0x123456), key)

	r, g, b := Unpack(key)
	assert.Equal(t, []uint8{0x12, 0x34, 0x56}, []uint8{r, g, b})
	assert.Less(t, Pack(1, 0, 0), Pack(1, 0, 1))
	assert.Less(t, Pack(0, 255, 255), Pack(1, 0, 0))
}

func TestExtract_RGBA(t *testing.T) {
	rng := testutil.NewRNG(4711)
	img := rng.PaletteImage(97, 61, 40)

	points, err := Extract(context.Background(), img, Options{})
	require.NoError(t, err)

	assertMatches(t, sequential(img), points)
	assert.Equal(t, uint64(97*61), testutil.TotalWeight(points))
}

func TestExtract_IndependentOfPartitioning(t *testing.T) {
	rng := testutil.NewRNG(1)
	img := rng.SkewedImage(64, 50, 30, 1.2)

	want, err := Extract(context.Background(), img, Options{Workers: 1, Partitions: 1})
	require.NoError(t, err)

	for _, opts := range []Options{
		{Workers: 2},
		{Workers: 4, Partitions: 7},
		{Workers: 3, Partitions: 1000},
		{Workers: 16},
	} {
		got, err := Extract(context.Background(), img, opts)
		require.NoError(t, err)
		assert.Equal(t, want, got, "options %+v", opts)
	}
}

func TestExtract_Paletted(t *testing.T) {
	palette := color.Palette{
		color.RGBA{R: 255, A: 255},
		color.RGBA{G: 255, A: 255},
		color.RGBA{B: 255, A: 255},
	}
	img := image.NewPaletted(image.Rect(0, 0, 10, 10), palette)
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 3)
	}

	points, err := Extract(context.Background(), img, Options{Workers: 3})
	require.NoError(t, err)

	assert.Equal(t, []geom.WeightedPoint{
		geom.NewWeightedPoint(0, 0, 255, 33),
		geom.NewWeightedPoint(0, 255, 0, 33),
		geom.NewWeightedPoint(255, 0, 0, 34),
	}, points)
}

func TestExtract_SubImageAndGenericPath(t *testing.T) {
	rng := testutil.NewRNG(2)
	full := rng.PaletteImage(40, 40, 12)
	sub := full.SubImage(image.Rect(5, 7, 33, 29))

	points, err := Extract(context.Background(), sub, Options{Workers: 4})
	require.NoError(t, err)
	assertMatches(t, sequential(sub), points)

	gray := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i % 4)
	}
	points, err = Extract(context.Background(), gray, Options{Workers: 2})
	require.NoError(t, err)
	assert.Len(t, points, 4)
	assert.Equal(t, uint64(64), points[0].Weight)
}

func TestExtract_NRGBAIgnoresAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 7})

	points, err := Extract(context.Background(), img, Options{})
	require.NoError(t, err)
	assert.Equal(t, []geom.WeightedPoint{geom.NewWeightedPoint(10, 20, 30, 2)}, points)
}

func TestExtract_Empty(t *testing.T) {
	points, err := Extract(context.Background(), image.NewRGBA(image.Rect(0, 0, 0, 5)), Options{})
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestExtract_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img := testutil.NewRNG(3).PaletteImage(32, 32, 4)
	_, err := Extract(ctx, img, Options{Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}
