package noise

import (
	"github.com/ojrac/opensimplex-go"
)

// Simplex samples OpenSimplex noise. Output is roughly in [-1, 1].
type Simplex struct {
	gen  opensimplex.Noise
	seed int64
}

// NewSimplex creates an OpenSimplex sampler.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{
		gen:  opensimplex.New(seed),
		seed: seed,
	}
}

// Sample implements Sampler.
func (s *Simplex) Sample(x, z float64) (float64, error) {
	if err := checkDomain(x, z); err != nil {
		return 0, err
	}
	return checkValue(x, z, s.gen.Eval2(x, z))
}

// Seed returns the generator seed.
func (s *Simplex) Seed() int64 {
	return s.seed
}
