package noise

import (
	"fmt"

	"github.com/aquilax/go-perlin"
)

// Perlin samples gradient noise from github.com/aquilax/go-perlin.
// Output is roughly in [-1, 1].
type Perlin struct {
	gen  *perlin.Perlin
	seed int64
}

// NewPerlin creates a Perlin sampler. alpha is the weight falloff between
// octaves (larger is smoother), beta the frequency gain.
func NewPerlin(seed int64, alpha, beta float64, octaves int32) (*Perlin, error) {
	if octaves < 1 {
		return nil, fmt.Errorf("perlin: octaves must be >= 1, got %d", octaves)
	}
	if alpha <= 0 || beta <= 0 {
		return nil, fmt.Errorf("perlin: alpha and beta must be positive, got %v and %v", alpha, beta)
	}
	return &Perlin{
		gen:  perlin.NewPerlin(alpha, beta, octaves, seed),
		seed: seed,
	}, nil
}

// Sample implements Sampler.
func (p *Perlin) Sample(x, z float64) (float64, error) {
	if err := checkDomain(x, z); err != nil {
		return 0, err
	}
	return checkValue(x, z, p.gen.Noise2D(x, z))
}

// Seed returns the seed the permutation tables were built from.
func (p *Perlin) Seed() int64 {
	return p.seed
}
