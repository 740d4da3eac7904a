package lut

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ryanjsims/lut-baker/raster"
)

func TestEncode1DLayout(t *testing.T) {
	samples := []float64{0, 0.25, 0.5, 0.75, 1}
	buf := Encode1D(samples)

	if buf.Width != 5 || buf.Height != 1 || buf.Channels != 1 {
		t.Fatalf("got %dx%dx%d buffer, want 5x1x1", buf.Width, buf.Height, buf.Channels)
	}
	for k, v := range samples {
		if got := buf.At(k, 0, 0); got != float32(v) {
			t.Errorf("pixel %d = %v, want %v", k, got, v)
		}
	}
}

func TestDecode1DRoundTrip(t *testing.T) {
	// Samples chosen to be exactly representable as float32 so the round
	// trip through the buffer is lossless.
	samples := []float64{0, 0.125, 0.25, 0.5, 0.75, 1}
	got, warn, err := Decode1D(Encode1D(samples))
	if err != nil {
		t.Fatalf("Decode1D: %v", err)
	}
	if warn != nil {
		t.Errorf("unexpected warning: %v", warn)
	}
	if diff := cmp.Diff(samples, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode1DMultiChannel(t *testing.T) {
	// Channel 0 carries the ramp; the others hold junk that must be ignored.
	buf := raster.New(4, 1, 3)
	for x := 0; x < 4; x++ {
		buf.Set(x, 0, 0, float32(x)/3)
		buf.Set(x, 0, 1, 0.9)
		buf.Set(x, 0, 2, -5)
	}

	got, warn, err := Decode1D(buf)
	if err != nil {
		t.Fatalf("Decode1D: %v", err)
	}
	if warn == nil {
		t.Fatal("expected a channel count warning for a 3-channel buffer")
	}
	if warn.Have != 3 || warn.Used != 1 {
		t.Errorf("warning = %+v, want Have=3 Used=1", warn)
	}
	for x := 0; x < 4; x++ {
		if got[x] != float64(float32(x)/3) {
			t.Errorf("sample %d = %v, want %v", x, got[x], float32(x)/3)
		}
	}
}

func TestDecode1DMultiRowReadsRowZero(t *testing.T) {
	buf := raster.New(3, 2, 1)
	for x := 0; x < 3; x++ {
		buf.Set(x, 0, 0, float32(x))
		buf.Set(x, 1, 0, 100)
	}
	got, _, err := Decode1D(buf)
	if err != nil {
		t.Fatalf("Decode1D: %v", err)
	}
	if diff := cmp.Diff([]float64{0, 1, 2}, got); diff != "" {
		t.Errorf("row 0 mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode1DEmptyBuffer(t *testing.T) {
	if _, _, err := Decode1D(nil); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("nil buffer: got %v, want ErrShapeMismatch", err)
	}
	if _, _, err := Decode1D(raster.New(0, 0, 1)); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("empty buffer: got %v, want ErrShapeMismatch", err)
	}
}
