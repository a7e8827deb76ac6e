// Package config handles terraingen configuration loading and management.
package config

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/internal/noise"
	"github.com/Faultbox/midgard-terrain/internal/terrain"
)

// Config holds all generator settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Noise   NoiseConfig   `yaml:"noise"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig holds grid and mesh settings.
type TerrainConfig struct {
	Width         uint32  `yaml:"width"`          // Cells along X
	Depth         uint32  `yaml:"depth"`          // Cells along Z
	SampleExtent  float64 `yaml:"sample_extent"`  // Half-width of the noise domain
	PhysicalScale float64 `yaml:"physical_scale"` // Mesh edge length in model units
	HeightScale   float64 `yaml:"height_scale"`
	Normals       string  `yaml:"normals"` // "slope" or "up"
	Parallel      bool    `yaml:"parallel"`
}

// NoiseConfig selects the height source.
type NoiseConfig struct {
	Kind    string  `yaml:"kind"` // perlin, simplex or flat
	Seed    int64   `yaml:"seed"`
	Alpha   float64 `yaml:"alpha"`
	Beta    float64 `yaml:"beta"`
	Octaves int32   `yaml:"octaves"`
	Level   float64 `yaml:"level"` // flat only
}

// OutputConfig holds where generated assets are written.
type OutputConfig struct {
	Path      string `yaml:"path"`
	Format    string `yaml:"format"` // obj or tmsh; empty infers from Path
	Heightmap string `yaml:"heightmap"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Output formats.
const (
	FormatOBJ  = "obj"
	FormatTMSH = "tmsh"
)

// Default returns a Config matching the classic terrain demo: a 100x100
// grid over [-5, 5]² of Perlin noise seed 2137, stretched to 10 units.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Width:         100,
			Depth:         100,
			SampleExtent:  5.0,
			PhysicalScale: 10.0,
			HeightScale:   1.0,
			Normals:       "slope",
			Parallel:      false,
		},
		Noise: NoiseConfig{
			Kind:    string(noise.KindPerlin),
			Seed:    noise.DefaultSeed,
			Alpha:   2,
			Beta:    2,
			Octaves: 1,
		},
		Output: OutputConfig{
			Path: "terrain.obj",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error

	if e := c.GridSpec().Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("terrain: %w", e))
	}
	if !finite(c.Terrain.SampleExtent) || c.Terrain.SampleExtent < 0 {
		err = multierr.Append(err, fmt.Errorf("terrain.sample_extent: must be >= 0, got %v", c.Terrain.SampleExtent))
	}
	if opts, e := c.TerrainOptions(); e != nil {
		err = multierr.Append(err, e)
	} else if e := opts.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("terrain: %w", e))
	}

	switch noise.Kind(c.Noise.Kind) {
	case noise.KindPerlin:
		if c.Noise.Octaves < 1 {
			err = multierr.Append(err, fmt.Errorf("noise.octaves: must be >= 1, got %d", c.Noise.Octaves))
		}
		if c.Noise.Alpha <= 0 || c.Noise.Beta <= 0 {
			err = multierr.Append(err, fmt.Errorf("noise.alpha/beta: must be positive, got %v/%v", c.Noise.Alpha, c.Noise.Beta))
		}
	case noise.KindSimplex:
	case noise.KindFlat:
		if !finite(c.Noise.Level) {
			err = multierr.Append(err, fmt.Errorf("noise.level: must be finite, got %v", c.Noise.Level))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("noise.kind: unknown kind %q", c.Noise.Kind))
	}

	if _, e := c.OutputFormat(); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := logger.ParseLevel(c.Logging.Level); e != nil {
		err = multierr.Append(err, fmt.Errorf("logging.level: %w", e))
	}

	return err
}

// GridSpec returns the lattice described by the terrain section.
func (c *Config) GridSpec() terrain.GridSpec {
	return terrain.GridSpec{
		Width:        c.Terrain.Width,
		Depth:        c.Terrain.Depth,
		SampleExtent: c.Terrain.SampleExtent,
	}
}

// TerrainOptions returns the mesh options described by the terrain section.
func (c *Config) TerrainOptions() (terrain.Options, error) {
	opts := terrain.Options{
		HeightScale:   c.Terrain.HeightScale,
		PhysicalScale: c.Terrain.PhysicalScale,
		Parallel:      c.Terrain.Parallel,
	}

	switch c.Terrain.Normals {
	case "slope", "":
		opts.Normals = terrain.NormalsSlope
	case "up":
		opts.Normals = terrain.NormalsUp
	default:
		return opts, fmt.Errorf("terrain.normals: unknown mode %q", c.Terrain.Normals)
	}
	return opts, nil
}

// NoiseParams returns the sampler parameters described by the noise section.
func (c *Config) NoiseParams() noise.Params {
	return noise.Params{
		Kind:    noise.Kind(c.Noise.Kind),
		Seed:    c.Noise.Seed,
		Alpha:   c.Noise.Alpha,
		Beta:    c.Noise.Beta,
		Octaves: c.Noise.Octaves,
		Level:   c.Noise.Level,
	}
}

// OutputFormat resolves the mesh output format, inferring it from the
// output path extension when not set explicitly.
func (c *Config) OutputFormat() (string, error) {
	format := strings.ToLower(c.Output.Format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Output.Path)), ".")
	}

	switch format {
	case FormatOBJ, FormatTMSH:
		return format, nil
	case "":
		return FormatOBJ, nil
	default:
		return "", fmt.Errorf("output.format: unsupported format %q", format)
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
