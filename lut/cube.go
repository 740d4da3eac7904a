package lut

import (
	"fmt"

	"github.com/ryanjsims/lut-baker/raster"
)

// Triple is one RGB grid point of a cube LUT.
type Triple struct {
	R, G, B float64
}

// Encode3D rasterizes the identity cube of edge size as a horizontally
// tiled image: size square tiles of size x size pixels, one tile per blue
// level, total width size*size and height size. Within tile t, the pixel at
// local column cx, row cy holds R=ramp[cx], G=ramp[t], B=ramp[cy], where
// ramp spans [0, 1], the cube convention regardless of any 1D shape bounds.
//
// The tile, column and row indices fully determine every pixel, so the
// buffer is filled in place from that mapping rather than by concatenating
// per-tile images.
func Encode3D(size int) (*raster.Buffer, error) {
	ramp, err := Ramp(0, 1, size)
	if err != nil {
		return nil, err
	}
	buf := raster.New(size*size, size, 3)
	i := 0
	for cy := 0; cy < size; cy++ {
		for t := 0; t < size; t++ {
			for cx := 0; cx < size; cx++ {
				buf.Pix[i] = float32(ramp[cx])
				buf.Pix[i+1] = float32(ramp[t])
				buf.Pix[i+2] = float32(ramp[cy])
				i += 3
			}
		}
	}
	return buf, nil
}

// Decode3D walks buf in the same tiled layout Encode3D produces and
// reassembles the size^3 grid points in canonical traversal order: the
// triple at index ix + size*iy + size*size*iz is the pixel of tile iy at
// local column ix, row iz. Channels beyond the first three are dropped with
// a ChannelCountWarning. Fails with ErrShapeMismatch when the buffer is not
// size*size wide and size tall, or has fewer than three channels.
func Decode3D(buf *raster.Buffer, size int) ([]Triple, *ChannelCountWarning, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("%w: size %d", ErrInvalidShape, size)
	}
	if buf == nil || buf.Width != size*size || buf.Height != size {
		w, h := 0, 0
		if buf != nil {
			w, h = buf.Width, buf.Height
		}
		return nil, nil, fmt.Errorf("%w: got %dx%d, cube of size %d needs %dx%d",
			ErrShapeMismatch, w, h, size, size*size, size)
	}
	if buf.Channels < 3 {
		return nil, nil, fmt.Errorf("%w: cube decode needs 3 channels, buffer has %d",
			ErrShapeMismatch, buf.Channels)
	}
	var warn *ChannelCountWarning
	if buf.Channels > 3 {
		warn = &ChannelCountWarning{Have: buf.Channels, Used: 3}
	}
	triples := make([]Triple, size*size*size)
	for iz := 0; iz < size; iz++ {
		for iy := 0; iy < size; iy++ {
			for ix := 0; ix < size; ix++ {
				x := iy*size + ix
				triples[ix+size*iy+size*size*iz] = Triple{
					R: float64(buf.At(x, iz, 0)),
					G: float64(buf.At(x, iz, 1)),
					B: float64(buf.At(x, iz, 2)),
				}
			}
		}
	}
	return triples, warn, nil
}
