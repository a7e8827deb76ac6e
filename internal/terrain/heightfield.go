package terrain

import (
	"fmt"
	"math"

	"github.com/dgravesa/go-parallel/parallel"

	"github.com/Faultbox/midgard-terrain/internal/noise"
)

// SampleHeightField evaluates sampler over [-SampleExtent, SampleExtent]²
// at every lattice point of spec. With concurrent set, rows are sampled in
// parallel; each row owns a disjoint slice of the output.
func SampleHeightField(spec GridSpec, sampler noise.Sampler, concurrent bool) (*HeightField, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(spec.SampleExtent) || math.IsInf(spec.SampleExtent, 0) || spec.SampleExtent < 0 {
		return nil, fmt.Errorf("%w: sample extent %v is not a valid domain", noise.ErrNoiseSampling, spec.SampleExtent)
	}

	cols := spec.Width + 1
	rows := spec.Depth + 1
	samples := make([]float64, VertexCount(spec))

	sampleRow := func(row uint32) error {
		z := SampleCoord(row, spec.Depth, spec.SampleExtent)
		for col := range cols {
			x := SampleCoord(col, spec.Width, spec.SampleExtent)
			v, err := sampler.Sample(x, z)
			if err != nil {
				return fmt.Errorf("sampling lattice (%d, %d): %w", col, row, err)
			}
			samples[LatticeIndex(col, row, spec.Width)] = v
		}
		return nil
	}

	if concurrent {
		rowErrs := make([]error, rows)
		parallel.For(int(rows), func(i, _ int) {
			rowErrs[i] = sampleRow(uint32(i))
		})
		// First failing row wins so the reported error does not depend on scheduling.
		for _, err := range rowErrs {
			if err != nil {
				return nil, err
			}
		}
	} else {
		for row := range rows {
			if err := sampleRow(row); err != nil {
				return nil, err
			}
		}
	}

	return &HeightField{
		Width:   spec.Width,
		Depth:   spec.Depth,
		Samples: samples,
	}, nil
}

// NewHeightField wraps caller-supplied elevations laid out row-major.
func NewHeightField(width, depth uint32, samples []float64) (*HeightField, error) {
	spec := GridSpec{Width: width, Depth: depth}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(samples) != VertexCount(spec) {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrInvalidGridSpec, len(samples), VertexCount(spec))
	}
	return &HeightField{Width: width, Depth: depth, Samples: samples}, nil
}

// At returns the elevation at lattice point (col, row).
func (h *HeightField) At(col, row uint32) float64 {
	return h.Samples[LatticeIndex(col, row, h.Width)]
}

// Range returns the minimum and maximum elevation in the field.
func (h *HeightField) Range() (min, max float64) {
	if len(h.Samples) == 0 {
		return 0, 0
	}

	min = h.Samples[0]
	max = h.Samples[0]
	for _, v := range h.Samples {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
