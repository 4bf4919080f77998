package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"dolapkapak/internal/app/notify"
	"dolapkapak/internal/app/ordering"
	"dolapkapak/internal/app/recorder"
	"dolapkapak/internal/common/config"
	"dolapkapak/internal/common/logger"
)

const modes = config.ModeOrdering + " | " + config.ModeRecorder + " | " + config.ModeNotification

func main() {
	mode := flag.String("mode", config.ModeOrdering, modes)
	cfgPath := flag.String("config", "", "path to YAML config (default: config.yaml, then deploy/config.example.yaml)")
	port := flag.Int("port", 0, "http port for "+config.ModeOrdering)
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	lg := logger.New(*mode, cfg.Log.Level)
	defer lg.Sync()

	if err := cfg.Validate(*mode); err != nil {
		lg.Error("config_invalid", err, nil)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var run func(context.Context, config.Config, *logger.Logger) error
	switch *mode {
	case config.ModeOrdering:
		run = ordering.Run
	case config.ModeRecorder:
		run = recorder.Run
	case config.ModeNotification:
		run = notify.Run
	default:
		fmt.Fprintln(os.Stderr, "--mode must be one of: "+modes)
		os.Exit(2)
	}

	if err := run(ctx, cfg, lg); err != nil {
		lg.Error("fatal", err, nil)
		os.Exit(1)
	}
	lg.Info("graceful_shutdown", nil)
}

// loadConfig falls back to the defaults when no file is found.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		found, err := config.FindConfig()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config.Config{}, err
		}
		path = found
	}
	return config.Load(path)
}
