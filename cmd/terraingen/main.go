// terraingen generates procedural terrain meshes from seeded noise.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/logger"
)

func main() {
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, ignored, err := loadConfig(command)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if ignored != nil {
		logger.Warn("config not loaded, using defaults", zap.Error(ignored))
	}

	if config.SaveConfigRequested() && ignored == nil {
		if err := cfg.Save(); err != nil {
			logger.Error("saving config", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
	}

	switch command {
	case "generate", "gen":
		err = cmdGenerate(cfg, args)
	case "heightmap", "hm":
		err = cmdHeightmap(cfg, args)
	case "info":
		err = cmdInfo(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		logger.Sync()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// loadConfig loads the configuration for command. info only inspects an
// asset file, so a broken config falls back to defaults and is returned as
// ignored instead of failing the command.
func loadConfig(command string) (cfg *config.Config, ignored, err error) {
	cfg, err = config.Load()
	if err == nil {
		return cfg, nil, nil
	}
	if command == "info" {
		return config.Default(), err, nil
	}
	return nil, nil, err
}

func printUsage() {
	fmt.Println(`terraingen - procedural terrain mesh generator

Usage:
  terraingen [flags] <command> [args]

Commands:
  generate [output]        Generate a mesh (.obj or .tmsh)
  heightmap <output.bmp>   Write the sampled height field as a grayscale BMP
  info <file.tmsh> [x z]   Show mesh asset information and surface height
  help                     Show this help

Flags (before the command):
  -config <path>           Config file (default ./terraingen.yaml)
  -width, -depth <n>       Grid cells along X and Z
  -extent <f>              Noise sampling half-width
  -scale <f>               Mesh edge length
  -height-scale <f>        Elevation multiplier
  -seed <n>                Noise seed
  -noise <kind>            perlin, simplex or flat
  -normals <mode>          slope or up
  -parallel                Sample rows concurrently
  -save-config             Save the effective config to the user config dir
  -out <path>              Output path
  -debug                   Debug logging

Examples:
  terraingen generate
  terraingen -width 256 -depth 256 -seed 7 generate island.tmsh
  terraingen -noise simplex -extent 3 heightmap island.bmp
  terraingen info island.tmsh`)
}
