package lut

import (
	"fmt"

	"github.com/ryanjsims/lut-baker/raster"
)

// ChannelCountWarning reports that a decoded buffer carried more channels
// than the LUT layout uses. Decoding proceeds on the defined subset; the
// warning exists so callers can tell the user which channels were ignored.
type ChannelCountWarning struct {
	Have int
	Used int
}

func (w *ChannelCountWarning) String() string {
	return fmt.Sprintf("buffer has %d channels, using the first %d", w.Have, w.Used)
}

// Encode1D lays a sample sequence out as a single-row, single-channel
// buffer: pixel (k, 0) holds samples[k].
func Encode1D(samples []float64) *raster.Buffer {
	buf := raster.New(len(samples), 1, 1)
	for k, v := range samples {
		buf.Pix[k] = float32(v)
	}
	return buf
}

// Decode1D reads one value per column from row 0 of buf. Only channel 0 is
// consumed; buffers with more channels decode normally and report a
// ChannelCountWarning, since the image may have passed through tooling that
// added or widened channels.
func Decode1D(buf *raster.Buffer) ([]float64, *ChannelCountWarning, error) {
	if buf == nil || buf.Width < 1 || buf.Height < 1 || buf.Channels < 1 {
		return nil, nil, fmt.Errorf("%w: empty buffer", ErrShapeMismatch)
	}
	var warn *ChannelCountWarning
	if buf.Channels > 1 {
		warn = &ChannelCountWarning{Have: buf.Channels, Used: 1}
	}
	samples := make([]float64, buf.Width)
	for x := range samples {
		samples[x] = float64(buf.At(x, 0, 0))
	}
	return samples, warn, nil
}
