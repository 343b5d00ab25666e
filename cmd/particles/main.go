package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"particle-field/app"
	"particle-field/config"
	"particle-field/scene"
	"particle-field/shaders"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed for the particle field (0 = use config)")
	shaderDir := flag.String("shader-dir", "", "Load points.vert/points.frag from this directory")
	watch := flag.Bool("watch", false, "Recompile shaders when files in -shader-dir change")
	perfCSV := flag.String("perf-csv", "", "Write per-second frame stats to this CSV file")
	export := flag.String("export", "", "Write the particle field to a .glb file and exit")
	dumpShaders := flag.String("dump-shaders", "", "Copy the embedded shaders into this directory and exit")
	dumpConfig := flag.String("dump-config", "", "Write the effective config to this YAML file and exit")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")

	flag.Parse()

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		logger.Error("failed to load config", zap.Error(err))
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Flags override the config file
	if *seed != 0 {
		cfg.Field.Seed = *seed
	}
	if *shaderDir != "" {
		cfg.Shaders.Dir = *shaderDir
	}
	if *watch {
		cfg.Shaders.Watch = true
	}
	if *perfCSV != "" {
		cfg.Telemetry.CSVPath = *perfCSV
	}
	if cfg.Shaders.Watch && cfg.Shaders.Dir == "" {
		logger.Error("-watch requires -shader-dir")
		os.Exit(2)
	}

	switch {
	case *dumpConfig != "":
		if err := cfg.WriteYAML(*dumpConfig); err != nil {
			logger.Error("failed to write config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config written", zap.String("path", *dumpConfig))
		return

	case *dumpShaders != "":
		if err := shaders.WriteEmbedded(*dumpShaders); err != nil {
			logger.Error("failed to write shaders", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("shaders written", zap.String("dir", *dumpShaders))
		return

	case *export != "":
		fieldSeed := app.Seed(cfg)
		field := scene.NewPointField(cfg.Field.Size, app.FieldOptions(cfg), rand.New(rand.NewSource(fieldSeed)))
		if err := scene.ExportGLB(*export, field); err != nil {
			logger.Error("export failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("field exported",
			zap.String("path", *export),
			zap.Int("points", field.Count()),
			zap.Int64("seed", fieldSeed))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sketch := app.New(cfg, app.FileAssets(cfg), logger)
	if err := sketch.Run(ctx); err != nil {
		logger.Error("sketch failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// newLogger builds a console logger for debug and a JSON logger otherwise.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	var zcfg zap.Config
	if lvl.Level() == zap.DebugLevel {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = lvl
	return zcfg.Build()
}
