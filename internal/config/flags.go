package config

import (
	"flag"
	"fmt"
	"strconv"
)

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWidth       = flag.String("width", "", "Grid cells along X")
	flagDepth       = flag.String("depth", "", "Grid cells along Z")
	flagExtent      = flag.String("extent", "", "Half-width of the noise sampling domain")
	flagScale       = flag.String("scale", "", "Mesh edge length in model units")
	flagHeightScale = flag.String("height-scale", "", "Elevation multiplier")
	flagSeed        = flag.String("seed", "", "Noise seed")
	flagNoise       = flag.String("noise", "", "Noise kind: perlin, simplex or flat")
	flagNormals     = flag.String("normals", "", "Normal mode: slope or up")
	flagParallel    = flag.Bool("parallel", false, "Sample the height field concurrently")
	flagOut         = flag.String("out", "", "Output mesh path (.obj or .tmsh)")
	flagSaveConfig  = flag.Bool("save-config", false, "Write the effective config to the user config directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveConfigRequested reports whether --save-config was given.
func SaveConfigRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
// Numeric flags are strings so that an explicit zero still overrides.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth != "" {
		v, err := strconv.ParseUint(*flagWidth, 10, 32)
		if err != nil {
			return fmt.Errorf("-width: %w", err)
		}
		cfg.Terrain.Width = uint32(v)
	}
	if *flagDepth != "" {
		v, err := strconv.ParseUint(*flagDepth, 10, 32)
		if err != nil {
			return fmt.Errorf("-depth: %w", err)
		}
		cfg.Terrain.Depth = uint32(v)
	}
	if *flagExtent != "" {
		v, err := strconv.ParseFloat(*flagExtent, 64)
		if err != nil {
			return fmt.Errorf("-extent: %w", err)
		}
		cfg.Terrain.SampleExtent = v
	}
	if *flagScale != "" {
		v, err := strconv.ParseFloat(*flagScale, 64)
		if err != nil {
			return fmt.Errorf("-scale: %w", err)
		}
		cfg.Terrain.PhysicalScale = v
	}
	if *flagHeightScale != "" {
		v, err := strconv.ParseFloat(*flagHeightScale, 64)
		if err != nil {
			return fmt.Errorf("-height-scale: %w", err)
		}
		cfg.Terrain.HeightScale = v
	}
	if *flagSeed != "" {
		v, err := strconv.ParseInt(*flagSeed, 10, 64)
		if err != nil {
			return fmt.Errorf("-seed: %w", err)
		}
		cfg.Noise.Seed = v
	}
	if *flagNoise != "" {
		cfg.Noise.Kind = *flagNoise
	}
	if *flagNormals != "" {
		cfg.Terrain.Normals = *flagNormals
	}
	if *flagParallel {
		cfg.Terrain.Parallel = true
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
		cfg.Output.Format = ""
	}
	return nil
}
