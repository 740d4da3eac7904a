package lut

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRamp(t *testing.T) {
	cases := []struct {
		name     string
		min, max float64
		size     int
		want     []float64
	}{
		{"unit", 0, 1, 5, []float64{0, 0.25, 0.5, 0.75, 1}},
		{"two samples", 0, 1, 2, []float64{0, 1}},
		{"offset domain", -1, 1, 3, []float64{-1, 0, 1}},
		{"scaled domain", 0, 4, 5, []float64{0, 1, 2, 3, 4}},
		{"single sample", 0.25, 0.75, 1, []float64{0.25}},
		{"flat domain", 0.5, 0.5, 3, []float64{0.5, 0.5, 0.5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Ramp(tc.min, tc.max, tc.size)
			if err != nil {
				t.Fatalf("Ramp(%v, %v, %d): %v", tc.min, tc.max, tc.size, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ramp mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRampEndpoints(t *testing.T) {
	for _, size := range []int{2, 3, 7, 33, 1024} {
		got, err := Ramp(0.1, 0.9, size)
		if err != nil {
			t.Fatalf("Ramp size %d: %v", size, err)
		}
		if len(got) != size {
			t.Fatalf("size %d: got %d samples", size, len(got))
		}
		if got[0] != 0.1 {
			t.Errorf("size %d: first sample %v, want 0.1", size, got[0])
		}
		if got[size-1] != 0.9 {
			t.Errorf("size %d: last sample %v, want 0.9", size, got[size-1])
		}
		for k := 1; k < size; k++ {
			if got[k] <= got[k-1] {
				t.Errorf("size %d: samples not strictly increasing at %d: %v >= %v", size, k, got[k-1], got[k])
			}
		}
	}
}

func TestRampInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -33} {
		if _, err := Ramp(0, 1, size); !errors.Is(err, ErrInvalidShape) {
			t.Errorf("Ramp size %d: got %v, want ErrInvalidShape", size, err)
		}
	}
	if _, err := (Shape{Min: 0, Max: 1, Size: 0}).Ramp(); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Shape.Ramp with size 0: got %v, want ErrInvalidShape", err)
	}
}
