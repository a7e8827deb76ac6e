// Package noise provides the seeded 2D noise samplers that terrain height
// fields are built from.
package noise

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoiseSampling is returned when a sampler is asked for a point outside a
// valid domain or produces a value that is not a finite number.
var ErrNoiseSampling = errors.New("noise sampling failed")

// Sampler evaluates a 2D scalar field. Implementations must be pure: the same
// (x, z) always yields the same value, and concurrent calls are safe.
type Sampler interface {
	Sample(x, z float64) (float64, error)
}

// SamplerFunc adapts an ordinary function to the Sampler interface.
type SamplerFunc func(x, z float64) (float64, error)

// Sample calls f(x, z).
func (f SamplerFunc) Sample(x, z float64) (float64, error) {
	return f(x, z)
}

// Kind names a built-in sampler implementation.
type Kind string

// Built-in sampler kinds.
const (
	KindPerlin  Kind = "perlin"
	KindSimplex Kind = "simplex"
	KindFlat    Kind = "flat"
)

// DefaultSeed matches the seed the terrain demo has always shipped with.
const DefaultSeed int64 = 2137

// Params selects and configures a built-in sampler.
type Params struct {
	Kind    Kind
	Seed    int64
	Alpha   float64 // Perlin: amplitude falloff per octave
	Beta    float64 // Perlin: frequency gain per octave
	Octaves int32   // Perlin: octave count
	Level   float64 // Flat: constant elevation
}

// DefaultParams returns single-octave Perlin noise seeded with DefaultSeed.
func DefaultParams() Params {
	return Params{
		Kind:    KindPerlin,
		Seed:    DefaultSeed,
		Alpha:   2,
		Beta:    2,
		Octaves: 1,
	}
}

// New builds the sampler described by p.
func New(p Params) (Sampler, error) {
	switch p.Kind {
	case KindPerlin, "":
		return NewPerlin(p.Seed, p.Alpha, p.Beta, p.Octaves)
	case KindSimplex:
		return NewSimplex(p.Seed), nil
	case KindFlat:
		return NewFlat(p.Level), nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", p.Kind)
	}
}

// checkDomain rejects coordinates the generators cannot evaluate.
func checkDomain(x, z float64) error {
	if !finite(x) || !finite(z) {
		return fmt.Errorf("%w: coordinate (%v, %v) is not finite", ErrNoiseSampling, x, z)
	}
	return nil
}

// checkValue rejects generator output that would poison a height field.
func checkValue(x, z, v float64) (float64, error) {
	if !finite(v) {
		return 0, fmt.Errorf("%w: value at (%v, %v) is %v", ErrNoiseSampling, x, z, v)
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
