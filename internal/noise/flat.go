package noise

// Flat returns the same elevation everywhere.
type Flat struct {
	Level float64
}

// NewFlat creates a constant sampler.
func NewFlat(level float64) *Flat {
	return &Flat{Level: level}
}

// Sample implements Sampler.
func (f *Flat) Sample(x, z float64) (float64, error) {
	if err := checkDomain(x, z); err != nil {
		return 0, err
	}
	return checkValue(x, z, f.Level)
}
