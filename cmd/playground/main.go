// Command playground opens the 3D scene editor.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"cogentcore.org/core/base/errors"
	"github.com/spf13/cobra"

	"playground/internal/app"
	"playground/internal/config"
	"playground/internal/env"
	"playground/internal/logger"
)

func init() {
	// raylib and OpenGL must stay on the main thread.
	runtime.LockOSThread()
}

type flags struct {
	config   string
	width    int
	height   int
	logLevel string
	noWatch  bool
	logFile  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "playground",
		Short:        "3D scene editor: select, move, rotate and scale primitive shapes",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", config.DefaultPath, "settings file (YAML)")
	fs.IntVar(&f.width, "width", 0, "window width, overrides the settings file")
	fs.IntVar(&f.height, "height", 0, "window height, overrides the settings file")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fs.BoolVar(&f.noWatch, "no-watch", false, "do not reload the settings file when it changes")
	fs.StringVar(&f.logFile, "log-file", logger.LogFilePath, "log file; empty keeps logs in memory")
	return cmd
}

func run(cmd *cobra.Command, f flags) error {
	// .env is optional; values already in the environment win.
	errors.Log(env.Load(".env"))

	settings, err := config.Load(f.config)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(&settings, os.LookupEnv); err != nil {
		return err
	}
	fl := cmd.Flags()
	if fl.Changed("width") {
		settings.Window.Width = f.width
	}
	if fl.Changed("height") {
		settings.Window.Height = f.height
	}
	if fl.Changed("log-level") {
		settings.LogLevel = f.logLevel
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	level, err := logger.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Options{Path: f.logFile, Level: level, Echo: os.Stderr})
	if err != nil {
		return err
	}
	defer log.Close()
	// Library helpers such as errors.Log write through the default logger.
	slog.SetDefault(log.Slog())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := app.New(app.Options{
		Settings:     settings,
		SettingsPath: f.config,
		Watch:        !f.noWatch,
		Logger:       log,
	})
	return a.Run(ctx)
}
