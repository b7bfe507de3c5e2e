// Boundary - Interactive Contour Detection
// Author: Ervins Strauhmanis
// License: MIT
// Version: 1.0.0 - Canny + External Contours + Stride Markers

package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"github.com/logisoltech/boundary/internal/config"
	"github.com/logisoltech/boundary/internal/gui"
)

const (
	AppName    = "Boundary"
	AppID      = "com.logisoltech.boundary"
	AppVersion = "1.0.0"
)

func main() {
	// Parse command line flags
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", "boundary.yaml", "Path to the settings file")
	flag.Parse()

	// Initialize logger
	logger := initLogger(*debugMode)

	// Load settings; a missing file falls back to defaults
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load settings")
	}
	if *debugMode {
		cfg.Debug = true
	}

	// Settings from the file may upgrade what the flags established.
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	if !cfg.Debug && !cfg.LogJSON {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": cfg.Debug,
		"config":     *configPath,
	}).Info("Starting Boundary")

	// Create Fyne application
	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.SearchIcon())

	// Note: In Fyne v2.6+, metadata is read-only and set from FyneApp.toml
	// The application metadata (name, version) is automatically loaded from FyneApp.toml

	myApp.Settings().SetTheme(theme.DefaultTheme())

	// Create and show main application window
	mainApp := gui.NewApplication(myApp, cfg, *configPath, logger)
	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
	os.Exit(0)
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
