// Package main is the entry point for the character look viewer.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/charlook/internal/config"
	"github.com/Faultbox/charlook/internal/game"
	"github.com/Faultbox/charlook/internal/logger"
)

var (
	flagAction = flag.String("action", "", "Action to play: attack, attack2, a meta action or a pose")
	flagPose   = flag.String("pose", "", "Pose to start in")
	flagTicks  = flag.Int("ticks", 0, "Fixed updates to run before output")
	flagDump   = flag.Bool("dump", false, "Print the draw calls of the resulting frame")
	flagPNG    = flag.String("png", "", "Write the resulting frame to a PNG file")
	flagWindow = flag.Bool("window", false, "Open an animated window")
	flagSave   = flag.Bool("save-config", false, "Write the merged config to the user config directory")
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== charlook ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if *flagSave {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("saving config", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
	}

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	v, err := game.New(cfg, logger.Named("viewer"))
	if err != nil {
		return err
	}
	defer v.Close()

	if *flagPose != "" {
		if err := v.SetPose(*flagPose); err != nil {
			return err
		}
	}
	v.Play(*flagAction)

	if ends := v.Step(*flagTicks); ends > 0 {
		logger.Debug("animation cycles completed", zap.Int("count", ends))
	}

	if *flagDump {
		if err := v.Dump(os.Stdout); err != nil {
			return fmt.Errorf("dump: %w", err)
		}
	}
	if *flagPNG != "" {
		if err := v.SavePNG(*flagPNG); err != nil {
			return err
		}
		logger.Info("frame written", zap.String("path", *flagPNG))
	}
	if *flagWindow {
		return v.RunWindow()
	}
	return nil
}
