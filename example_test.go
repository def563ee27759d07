package colorquant_test

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hupe1980/colorquant"
)

func twoToneImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			c := color.RGBA{R: 10, G: 20, B: 30, A: 0xff}
			if x >= 2 {
				c = color.RGBA{R: 240, G: 200, B: 16, A: 0xff}
			}
			if x == 3 && y == 3 {
				c = color.RGBA{R: 250, G: 210, B: 26, A: 0xff}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// ExampleQuantize reduces an image to a two color palette.
func ExampleQuantize() {
	res, err := colorquant.Quantize(context.Background(), twoToneImage(),
		colorquant.WithPaletteSize(2),
		colorquant.WithMethod(colorquant.MethodMostFrequent),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Hex())
	// Output: [#0a141e #f0c810]
}

// ExampleQuantize_filtering starts k-means from a fixed palette.
func ExampleQuantize_filtering() {
	res, err := colorquant.Quantize(context.Background(), twoToneImage(),
		colorquant.WithInitialPalette([]color.Color{color.Black, color.White}),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Hex(), res.Converged, res.Iterations)
	// Output: [#0a141e #f1c911] true 2
}

// ExamplePaletteSize shows the palette size chosen for small images.
func ExamplePaletteSize() {
	for _, pixels := range []int{3, 10, 1000} {
		n, bits := colorquant.PaletteSize(pixels)
		fmt.Println(pixels, n, bits)
	}
	// Output:
	// 3 4 2
	// 10 16 4
	// 1000 256 8
}
