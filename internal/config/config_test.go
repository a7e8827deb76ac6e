package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"go.uber.org/multierr"

	"github.com/Faultbox/midgard-terrain/internal/noise"
	"github.com/Faultbox/midgard-terrain/internal/terrain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Terrain defaults reproduce the shipped demo
	if cfg.Terrain.Width != 100 || cfg.Terrain.Depth != 100 {
		t.Errorf("expected 100x100 grid, got %dx%d", cfg.Terrain.Width, cfg.Terrain.Depth)
	}
	if cfg.Terrain.SampleExtent != 5.0 {
		t.Errorf("expected sample extent 5.0, got %f", cfg.Terrain.SampleExtent)
	}
	if cfg.Terrain.PhysicalScale != 10.0 {
		t.Errorf("expected physical scale 10.0, got %f", cfg.Terrain.PhysicalScale)
	}
	if cfg.Terrain.HeightScale != 1.0 {
		t.Errorf("expected height scale 1.0, got %f", cfg.Terrain.HeightScale)
	}
	if cfg.Terrain.Normals != "slope" {
		t.Errorf("expected slope normals, got %s", cfg.Terrain.Normals)
	}
	if cfg.Terrain.Parallel {
		t.Error("expected parallel sampling to be off by default")
	}

	// Noise defaults
	if cfg.Noise.Kind != "perlin" {
		t.Errorf("expected perlin noise, got %s", cfg.Noise.Kind)
	}
	if cfg.Noise.Seed != 2137 {
		t.Errorf("expected seed 2137, got %d", cfg.Noise.Seed)
	}

	// Output and logging defaults
	if cfg.Output.Path != "terrain.obj" {
		t.Errorf("expected output terrain.obj, got %s", cfg.Output.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "terraingen.yaml")

	yamlContent := `
terrain:
  width: 64
  depth: 32
  sample_extent: 2.5
  physical_scale: 128
  height_scale: 12.5
  normals: up
  parallel: true

noise:
  kind: simplex
  seed: -42

output:
  path: out/island.tmsh
  heightmap: out/island.bmp

logging:
  level: "debug"
  log_file: "terraingen.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Terrain.Width != 64 || cfg.Terrain.Depth != 32 {
		t.Errorf("expected 64x32 grid, got %dx%d", cfg.Terrain.Width, cfg.Terrain.Depth)
	}
	if cfg.Terrain.SampleExtent != 2.5 {
		t.Errorf("expected sample extent 2.5, got %f", cfg.Terrain.SampleExtent)
	}
	if cfg.Terrain.PhysicalScale != 128 {
		t.Errorf("expected physical scale 128, got %f", cfg.Terrain.PhysicalScale)
	}
	if cfg.Terrain.HeightScale != 12.5 {
		t.Errorf("expected height scale 12.5, got %f", cfg.Terrain.HeightScale)
	}
	if cfg.Terrain.Normals != "up" {
		t.Errorf("expected up normals, got %s", cfg.Terrain.Normals)
	}
	if !cfg.Terrain.Parallel {
		t.Error("expected parallel to be true")
	}

	if cfg.Noise.Kind != "simplex" {
		t.Errorf("expected simplex noise, got %s", cfg.Noise.Kind)
	}
	if cfg.Noise.Seed != -42 {
		t.Errorf("expected seed -42, got %d", cfg.Noise.Seed)
	}
	// Unset fields keep their defaults
	if cfg.Noise.Octaves != 1 {
		t.Errorf("expected default octaves 1, got %d", cfg.Noise.Octaves)
	}

	if cfg.Output.Path != "out/island.tmsh" {
		t.Errorf("expected output out/island.tmsh, got %s", cfg.Output.Path)
	}
	if cfg.Output.Heightmap != "out/island.bmp" {
		t.Errorf("expected heightmap out/island.bmp, got %s", cfg.Output.Heightmap)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "terraingen.log" {
		t.Errorf("expected log file 'terraingen.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
terrain:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/terraingen.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Keep the user's real config directory out of the search.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "terraingen.yaml")
	if err := os.WriteFile(configPath, []byte("terrain:\n  width: 8\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find terraingen.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "grid flags",
			setup: func() {
				*flagWidth = "256"
				*flagDepth = "128"
				*flagExtent = "8"
				*flagScale = "512"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Width != 256 || cfg.Terrain.Depth != 128 {
					t.Errorf("expected 256x128, got %dx%d", cfg.Terrain.Width, cfg.Terrain.Depth)
				}
				if cfg.Terrain.SampleExtent != 8 {
					t.Errorf("expected extent 8, got %f", cfg.Terrain.SampleExtent)
				}
				if cfg.Terrain.PhysicalScale != 512 {
					t.Errorf("expected scale 512, got %f", cfg.Terrain.PhysicalScale)
				}
			},
			teardown: func() {
				*flagWidth = ""
				*flagDepth = ""
				*flagExtent = ""
				*flagScale = ""
			},
		},
		{
			name:  "zero extent overrides file value",
			setup: func() { *flagExtent = "0" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.SampleExtent != 0 {
					t.Errorf("expected extent 0, got %f", cfg.Terrain.SampleExtent)
				}
				if err := cfg.Validate(); err != nil {
					t.Errorf("zero extent should be valid: %v", err)
				}
			},
			teardown: func() { *flagExtent = "" },
		},
		{
			name: "zero seed and height scale",
			setup: func() {
				*flagSeed = "0"
				*flagHeightScale = "0"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Noise.Seed != 0 {
					t.Errorf("expected seed 0, got %d", cfg.Noise.Seed)
				}
				if cfg.Terrain.HeightScale != 0 {
					t.Errorf("expected height scale 0, got %f", cfg.Terrain.HeightScale)
				}
			},
			teardown: func() {
				*flagSeed = ""
				*flagHeightScale = ""
			},
		},
		{
			name: "noise, normals and parallel flags",
			setup: func() {
				*flagNoise = "flat"
				*flagNormals = "up"
				*flagParallel = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Noise.Kind != "flat" {
					t.Errorf("expected flat noise, got %s", cfg.Noise.Kind)
				}
				if cfg.Terrain.Normals != "up" {
					t.Errorf("expected up normals, got %s", cfg.Terrain.Normals)
				}
				if !cfg.Terrain.Parallel {
					t.Error("expected parallel to be enabled")
				}
			},
			teardown: func() {
				*flagNoise = ""
				*flagNormals = ""
				*flagParallel = false
			},
		},
		{
			name:  "out flag resets explicit format",
			setup: func() { *flagOut = "mesh.tmsh" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Path != "mesh.tmsh" {
					t.Errorf("expected mesh.tmsh, got %s", cfg.Output.Path)
				}
				if f, _ := cfg.OutputFormat(); f != FormatTMSH {
					t.Errorf("expected tmsh format, got %s", f)
				}
			},
			teardown: func() { *flagOut = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			cfg.Output.Format = FormatOBJ
			if err := applyFlags(cfg); err != nil {
				t.Fatalf("applyFlags failed: %v", err)
			}

			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlagsInvalidSeed(t *testing.T) {
	*flagSeed = "two thousand"
	defer func() { *flagSeed = "" }()

	if err := applyFlags(Default()); err == nil {
		t.Error("expected error for non-numeric seed")
	}
}

func TestApplyFlagsInvalidNumbers(t *testing.T) {
	tests := []struct {
		name string
		flag *string
		val  string
	}{
		{"negative width", flagWidth, "-4"},
		{"width overflows uint32", flagWidth, "4294967296"},
		{"non-numeric depth", flagDepth, "deep"},
		{"non-numeric extent", flagExtent, "wide"},
		{"non-numeric scale", flagScale, "big"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			*tt.flag = tt.val
			defer func() { *tt.flag = "" }()

			if err := applyFlags(Default()); err == nil {
				t.Errorf("expected error for %s=%q", tt.name, tt.val)
			}
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "terraingen.yaml")

	yamlContent := `
terrain:
  width: 48
  depth: 24
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = "96"
	defer func() {
		*flagConfig = ""
		*flagWidth = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (96), not file (48)
	if cfg.Terrain.Width != 96 {
		t.Errorf("expected width 96 from flag, got %d", cfg.Terrain.Width)
	}

	// Depth should be from file (24) since no flag override
	if cfg.Terrain.Depth != 24 {
		t.Errorf("expected depth 24 from file, got %d", cfg.Terrain.Depth)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "terraingen.yaml")
	if err := os.WriteFile(configPath, []byte("terrain:\n  width: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, terrain.ErrInvalidGridSpec) {
		t.Errorf("expected ErrInvalidGridSpec, got %v", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Width = 0
	cfg.Terrain.PhysicalScale = -1
	cfg.Terrain.Normals = "sideways"
	cfg.Noise.Kind = "worley"
	cfg.Output.Format = "fbx"
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	if n := len(multierr.Errors(err)); n != 5 {
		t.Errorf("expected 5 errors, got %d: %v", n, err)
	}
	if !errors.Is(err, terrain.ErrInvalidGridSpec) {
		t.Error("expected ErrInvalidGridSpec among errors")
	}
}

func TestValidateNoise(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"perlin ok", func(c *Config) {}, false},
		{"perlin zero octaves", func(c *Config) { c.Noise.Octaves = 0 }, true},
		{"perlin zero alpha", func(c *Config) { c.Noise.Alpha = 0 }, true},
		{"simplex ok", func(c *Config) { c.Noise.Kind = "simplex"; c.Noise.Octaves = 0 }, false},
		{"flat ok", func(c *Config) { c.Noise.Kind = "flat"; c.Noise.Level = 3 }, false},
		{"negative extent", func(c *Config) { c.Terrain.SampleExtent = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		path, format string
		want         string
		wantErr      bool
	}{
		{"terrain.obj", "", FormatOBJ, false},
		{"terrain.TMSH", "", FormatTMSH, false},
		{"terrain.obj", "tmsh", FormatTMSH, false},
		{"terrain", "", FormatOBJ, false},
		{"terrain.fbx", "", "", true},
		{"terrain.obj", "gltf", "", true},
	}

	for _, tt := range tests {
		cfg := Default()
		cfg.Output.Path = tt.path
		cfg.Output.Format = tt.format

		got, err := cfg.OutputFormat()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s/%s: error = %v, wantErr %v", tt.path, tt.format, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%s/%s: expected %s, got %s", tt.path, tt.format, tt.want, got)
		}
	}
}

func TestTerrainMapping(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Normals = "up"
	cfg.Terrain.Parallel = true
	cfg.Noise.Kind = "simplex"
	cfg.Noise.Seed = 9

	spec := cfg.GridSpec()
	if spec != (terrain.GridSpec{Width: 100, Depth: 100, SampleExtent: 5}) {
		t.Errorf("unexpected grid spec %+v", spec)
	}

	opts, err := cfg.TerrainOptions()
	if err != nil {
		t.Fatalf("TerrainOptions failed: %v", err)
	}
	if opts.Normals != terrain.NormalsUp || !opts.Parallel || opts.PhysicalScale != 10 || opts.HeightScale != 1 {
		t.Errorf("unexpected options %+v", opts)
	}

	p := cfg.NoiseParams()
	if p.Kind != noise.KindSimplex || p.Seed != 9 {
		t.Errorf("unexpected noise params %+v", p)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "terraingen.yaml")

	cfg := Default()
	cfg.Terrain.Width = 33
	cfg.Noise.Seed = 77
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Terrain.Width != 33 || loaded.Noise.Seed != 77 {
		t.Errorf("expected width 33 seed 77, got %d and %d", loaded.Terrain.Width, loaded.Noise.Seed)
	}
}

func TestSaveWritesToConfigDir(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir is only redirectable via XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Noise.Kind = "simplex"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := findConfigFile()
	if path != filepath.Join(ConfigDir(), "config.yaml") {
		t.Fatalf("expected saved config to be found in %s, got %q", ConfigDir(), path)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Noise.Kind != "simplex" {
		t.Errorf("expected simplex noise, got %s", loaded.Noise.Kind)
	}
}
