package lut

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ryanjsims/lut-baker/raster"
)

func TestWriteSPI1D(t *testing.T) {
	var sb strings.Builder
	shape := Shape{Min: 0, Max: 1, Size: 3}
	if err := WriteSPI1D(&sb, shape, []float64{0, 0.5, 1}); err != nil {
		t.Fatal(err)
	}

	want := `Version 1
From 0.0 1.0
Length 3
Components 1
{
0
0.5
1
}
`
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("spi1d output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSPI1DPrecision(t *testing.T) {
	var sb strings.Builder
	shape := Shape{Min: -0.5, Max: 2.5, Size: 3}
	if err := WriteSPI1D(&sb, shape, []float64{-0.5, 1.0 / 3.0, 0.123456789}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(sb.String(), "\n")
	if lines[1] != "From -0.5 2.5" {
		t.Errorf("From line = %q", lines[1])
	}
	// 8 significant digits, trailing zeros dropped.
	if lines[5] != "-0.5" || lines[6] != "0.33333333" || lines[7] != "0.12345679" {
		t.Errorf("body lines = %q %q %q", lines[5], lines[6], lines[7])
	}
}

func TestWriteCube(t *testing.T) {
	triples, _, err := Decode3D(mustEncode3D(t, 2), 2)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := WriteCube(&sb, 2, triples); err != nil {
		t.Fatal(err)
	}

	want := `LUT_3D_SIZE 2
0 0 0
1 0 0
0 1 0
1 1 0
0 0 1
1 0 1
0 1 1
1 1 1
`
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("cube output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCubePrecision(t *testing.T) {
	var sb strings.Builder
	if err := WriteCube(&sb, 1, []Triple{{R: 1.0 / 3.0, G: 0.125, B: 1}}); err != nil {
		t.Fatal(err)
	}
	want := "LUT_3D_SIZE 1\n0.333333 0.125 1\n"
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}

func TestWriteCubeTripleCount(t *testing.T) {
	var sb strings.Builder
	triples := make([]Triple, 7)
	if err := WriteCube(&sb, 2, triples); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("7 triples for size 2: got %v, want ErrShapeMismatch", err)
	}
	if sb.Len() != 0 {
		t.Errorf("wrote %q despite mismatch", sb.String())
	}
}

func TestParseFormat(t *testing.T) {
	valid := map[string]Format{
		"spi":  FormatSPI,
		"cube": FormatCube,
		"cub":  FormatCub,
	}
	for token, want := range valid {
		got, err := ParseFormat(token)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", token, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", token, got, want)
		}
	}

	for _, token := range []string{"", "spi1d", "3dl", "CUBE", "csp"} {
		if _, err := ParseFormat(token); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ParseFormat(%q): got %v, want ErrUnsupportedFormat", token, err)
		}
	}
}

func TestFormatExtension(t *testing.T) {
	if ext := FormatSPI.Extension(); ext != ".spi1d" {
		t.Errorf("spi extension = %q", ext)
	}
	if ext := FormatCube.Extension(); ext != ".cube" {
		t.Errorf("cube extension = %q", ext)
	}
	if ext := FormatCub.Extension(); ext != ".cub" {
		t.Errorf("cub extension = %q", ext)
	}
	if FormatSPI.Is3D() || !FormatCube.Is3D() || !FormatCub.Is3D() {
		t.Error("Is3D dimensionality wrong")
	}
}

func mustEncode3D(t *testing.T, size int) *raster.Buffer {
	t.Helper()
	buf, err := Encode3D(size)
	if err != nil {
		t.Fatal(err)
	}
	return buf
}
