package raster

import "math/bits"

// Buffer is an in-memory grid of float32 pixels with an explicit channel
// count. Pix holds the samples interleaved per pixel in row-major order: the
// value of channel c at (x, y) is Pix[(y*Width+x)*Channels+c].
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []float32
}

// New returns a zeroed Buffer with the given dimensions and channel count.
func New(width, height, channels int) *Buffer {
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float32, pixelBufferLength(width, height, channels)),
	}
}

func (b *Buffer) offset(x, y, c int) int {
	return (y*b.Width+x)*b.Channels + c
}

// At returns the value of channel c at (x, y). Coordinates outside the
// buffer return 0.
func (b *Buffer) At(x, y, c int) float32 {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height || c < 0 || c >= b.Channels {
		return 0
	}
	return b.Pix[b.offset(x, y, c)]
}

// Set stores v as channel c at (x, y). Coordinates outside the buffer are
// ignored.
func (b *Buffer) Set(x, y, c int, v float32) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height || c < 0 || c >= b.Channels {
		return
	}
	b.Pix[b.offset(x, y, c)] = v
}

// Row returns the interleaved samples of row y.
func (b *Buffer) Row(y int) []float32 {
	i := b.offset(0, y, 0)
	return b.Pix[i : i+b.Width*b.Channels]
}

// pixelBufferLength returns the length of the Pix slice for New. Conceptually
// this is just width*height*channels, but it panics if any dimension is
// negative or the product would overflow int.
func pixelBufferLength(width, height, channels int) int {
	n := mul3NonNeg(width, height, channels)
	if n < 0 {
		panic("raster: New Buffer has huge or negative dimensions")
	}
	return n
}

// mul3NonNeg returns (x * y * z), unless at least one argument is negative or
// if the computation overflows the int type, in which case it returns -1.
func mul3NonNeg(x int, y int, z int) int {
	if (x < 0) || (y < 0) || (z < 0) {
		return -1
	}
	hi, lo := bits.Mul64(uint64(x), uint64(y))
	if hi != 0 {
		return -1
	}
	hi, lo = bits.Mul64(lo, uint64(z))
	if hi != 0 {
		return -1
	}
	a := int(lo)
	if (a < 0) || (uint64(a) != lo) {
		return -1
	}
	return a
}
