package lut

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format selects one of the supported LUT file formats.
type Format int

const (
	// FormatSPI is the Sony Pictures Imageworks 1D format (.spi1d).
	FormatSPI Format = iota
	// FormatCube is the Resolve/IRIDAS 3D cube format (.cube).
	FormatCube
	// FormatCub is the cube format written with a .cub extension.
	FormatCub
)

// ParseFormat maps a format token onto a Format. Only "spi", "cube" and
// "cub" are recognised; anything else fails with ErrUnsupportedFormat.
// Defaulting an empty token is the caller's policy, not handled here.
func ParseFormat(token string) (Format, error) {
	switch token {
	case "spi":
		return FormatSPI, nil
	case "cube":
		return FormatCube, nil
	case "cub":
		return FormatCub, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, token)
}

func (f Format) String() string {
	switch f {
	case FormatSPI:
		return "spi"
	case FormatCube:
		return "cube"
	case FormatCub:
		return "cub"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the file extension conventionally used for f.
func (f Format) Extension() string {
	switch f {
	case FormatCube:
		return ".cube"
	case FormatCub:
		return ".cub"
	}
	return ".spi1d"
}

// Is3D reports whether f is a cube format.
func (f Format) Is3D() bool {
	return f == FormatCube || f == FormatCub
}

// WriteSPI1D serializes a 1D sample sequence to the spi1d text layout:
//
//	Version 1
//	From <min> <max>
//	Length <size>
//	Components 1
//	{
//	<one value per line>
//	}
//
// Values are formatted with 8 significant digits. Downstream tools parse
// this layout structurally, so header tokens and field order are fixed.
func WriteSPI1D(w io.Writer, shape Shape, samples []float64) error {
	var sb strings.Builder
	sb.WriteString("Version 1\n")
	sb.WriteString("From " + formatDomain(shape.Min) + " " + formatDomain(shape.Max) + "\n")
	sb.WriteString("Length " + strconv.Itoa(shape.Size) + "\n")
	sb.WriteString("Components 1\n")
	sb.WriteString("{\n")
	for _, v := range samples {
		sb.WriteString(strconv.FormatFloat(v, 'g', 8, 64))
		sb.WriteByte('\n')
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteCube serializes a triple sequence to the cube text layout: a
// LUT_3D_SIZE header followed by one space-separated triple per line, in
// canonical traversal order (R fastest, B slowest). Triples are formatted
// with 6 significant digits. No footer. The triple count must match the
// declared size, otherwise the header would disagree with the body.
func WriteCube(w io.Writer, size int, triples []Triple) error {
	if len(triples) != size*size*size {
		return fmt.Errorf("%w: %d triples for cube of size %d, want %d",
			ErrShapeMismatch, len(triples), size, size*size*size)
	}
	var sb strings.Builder
	sb.WriteString("LUT_3D_SIZE " + strconv.Itoa(size) + "\n")
	for _, s := range triples {
		sb.WriteString(strconv.FormatFloat(s.R, 'g', 6, 64))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(s.G, 'g', 6, 64))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(s.B, 'g', 6, 64))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// formatDomain renders a domain bound in shortest round-trip form, forced
// to carry a decimal point ("From 0.0 1.0", not "From 0 1").
func formatDomain(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
