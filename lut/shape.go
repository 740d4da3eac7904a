package lut

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape reports a shape whose size cannot describe a LUT.
	ErrInvalidShape = errors.New("invalid LUT shape")
	// ErrShapeMismatch reports a pixel buffer whose dimensions do not agree
	// with the declared LUT shape.
	ErrShapeMismatch = errors.New("buffer dimensions do not match LUT shape")
	// ErrUnsupportedFormat reports an unrecognised LUT format token.
	ErrUnsupportedFormat = errors.New("unsupported LUT format")
)

// Shape describes the sampled input domain of a LUT: Size samples spread
// evenly from Min to Max inclusive. For cube LUTs only Size is meaningful;
// the domain is the unit cube by convention.
type Shape struct {
	Min  float64
	Max  float64
	Size int
}

func (s Shape) String() string {
	return fmt.Sprintf("[%v, %v] x %d", s.Min, s.Max, s.Size)
}

// Ramp returns the Size evenly spaced samples of the shape's domain, from
// Min to Max inclusive. A single-sample shape yields just [Min]. Fails with
// ErrInvalidShape when Size is not positive.
func (s Shape) Ramp() ([]float64, error) {
	return Ramp(s.Min, s.Max, s.Size)
}

// Ramp returns size evenly spaced values from min to max inclusive:
// value[k] = min + k*(max-min)/(size-1). size == 1 yields [min].
func Ramp(min, max float64, size int) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidShape, size)
	}
	if size == 1 {
		return []float64{min}, nil
	}
	ramp := make([]float64, size)
	step := (max - min) / float64(size-1)
	for k := range ramp {
		ramp[k] = min + float64(k)*step
	}
	// Guard the endpoint against accumulated rounding so downstream tools
	// see the exact domain bound.
	ramp[size-1] = max
	return ramp, nil
}
