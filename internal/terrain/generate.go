package terrain

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/internal/noise"
)

// Generate samples sampler over spec and builds the terrain mesh.
// Nothing is returned unless every step succeeds.
func Generate(spec GridSpec, sampler noise.Sampler, opts Options) (*Mesh, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	hf, err := SampleHeightField(spec, sampler, opts.Parallel)
	if err != nil {
		return nil, err
	}

	mesh, err := BuildMesh(hf, opts)
	if err != nil {
		return nil, err
	}

	lo, hi := hf.Range()
	logger.Debug("terrain generated",
		zap.Uint32("width", spec.Width),
		zap.Uint32("depth", spec.Depth),
		zap.Float64("sample_extent", spec.SampleExtent),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Float64("min_height", lo),
		zap.Float64("max_height", hi),
		zap.Stringer("normals", opts.Normals),
		zap.Duration("elapsed", time.Since(start)))

	return mesh, nil
}

// GenerateSeeded generates terrain from default Perlin noise with the given seed.
func GenerateSeeded(spec GridSpec, seed int64, opts Options) (*Mesh, error) {
	p := noise.DefaultParams()
	p.Seed = seed

	sampler, err := noise.New(p)
	if err != nil {
		return nil, err
	}
	return Generate(spec, sampler, opts)
}
