package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/internal/noise"
	"github.com/Faultbox/midgard-terrain/internal/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/formats"
)

func cmdGenerate(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		cfg.Output.Path = args[0]
		cfg.Output.Format = ""
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	opts, err := cfg.TerrainOptions()
	if err != nil {
		return err
	}
	sampler, err := noise.New(cfg.NoiseParams())
	if err != nil {
		return err
	}

	start := time.Now()
	mesh, err := terrain.Generate(cfg.GridSpec(), sampler, opts)
	if err != nil {
		return fmt.Errorf("generating terrain: %w", err)
	}

	if err := writeMesh(cfg.Output.Path, format, mesh); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output.Path, err)
	}

	logger.Info("mesh written",
		zap.String("path", cfg.Output.Path),
		zap.String("format", format),
		zap.String("noise", cfg.Noise.Kind),
		zap.Int64("seed", cfg.Noise.Seed),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)))

	if cfg.Output.Heightmap != "" {
		return writeHeightmap(cfg, sampler, cfg.Output.Heightmap)
	}
	return nil
}

func cmdHeightmap(cfg *config.Config, args []string) error {
	path := cfg.Output.Heightmap
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("usage: terraingen heightmap <output.bmp>")
	}

	sampler, err := noise.New(cfg.NoiseParams())
	if err != nil {
		return err
	}
	return writeHeightmap(cfg, sampler, path)
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: terraingen info <file.tmsh> [x z]")
	}

	asset, err := formats.LoadTMSH(args[0])
	if err != nil {
		return err
	}
	mesh, err := terrain.MeshFromAsset(asset)
	if err != nil {
		return err
	}

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Version:   %s\n", asset.Version)
	fmt.Printf("Grid:      %d x %d cells\n", mesh.Width, mesh.Depth)
	fmt.Printf("Vertices:  %d\n", mesh.VertexCount())
	fmt.Printf("Triangles: %d\n", mesh.TriangleCount())
	fmt.Printf("Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		mesh.Bounds.Min[0], mesh.Bounds.Min[1], mesh.Bounds.Min[2],
		mesh.Bounds.Max[0], mesh.Bounds.Max[1], mesh.Bounds.Max[2])

	// Probe the centre of the footprint unless a point is given
	x := (mesh.Bounds.Min[0] + mesh.Bounds.Max[0]) / 2
	z := (mesh.Bounds.Min[2] + mesh.Bounds.Max[2]) / 2
	if len(args) >= 3 {
		px, err := strconv.ParseFloat(args[1], 32)
		if err != nil {
			return fmt.Errorf("invalid x %q: %w", args[1], err)
		}
		pz, err := strconv.ParseFloat(args[2], 32)
		if err != nil {
			return fmt.Errorf("invalid z %q: %w", args[2], err)
		}
		x, z = float32(px), float32(pz)
	}

	if h, ok := mesh.HeightAt(x, z); ok {
		fmt.Printf("Height:    %.3f at (%.3f, %.3f)\n", h, x, z)
	} else {
		fmt.Printf("Height:    (%.3f, %.3f) is outside the mesh\n", x, z)
	}
	return nil
}

func writeMesh(path, format string, mesh *terrain.Mesh) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	if format == config.FormatTMSH {
		return mesh.Asset().Save(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := formats.WriteOBJ(f, mesh.Asset()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeHeightmap(cfg *config.Config, sampler noise.Sampler, path string) error {
	hf, err := terrain.SampleHeightField(cfg.GridSpec(), sampler, cfg.Terrain.Parallel)
	if err != nil {
		return fmt.Errorf("sampling height field: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	if err := formats.EncodeHeightmap(w, int(hf.Width)+1, int(hf.Depth)+1, hf.Samples); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}

	lo, hi := hf.Range()
	logger.Info("heightmap written",
		zap.String("path", path),
		zap.Float64("min_height", lo),
		zap.Float64("max_height", hi))
	return f.Close()
}
