package colorquant

// PaletteSize returns the palette size and bits per index suited to an
// image with the given number of pixels. Large images get 256 colors and
// 8 bits. Smaller images get the smallest power-of-two width among 1, 2, 4
// and 8 bits whose palette holds every pixel.
func PaletteSize(pixels int) (n, bits int) {
	bits = 8
	n = 1 << bits
	if pixels >= n {
		return n, bits
	}

	bits /= 2
	for bits >= 2 && 1<<bits > pixels {
		bits /= 2
	}
	n = 1 << bits
	if pixels > n {
		bits *= 2
		n = 1 << bits
	}
	return n, bits
}
