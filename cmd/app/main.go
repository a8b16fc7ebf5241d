// Image Lightbox - Zoomable Gallery Viewer
// License: MIT
// Version: 1.0.0

package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"image-lightbox/internal/config"
	"image-lightbox/internal/gui"
)

const (
	AppName    = "Image Lightbox"
	AppID      = "com.lightbox.gallery"
	AppVersion = "1.0.0"
)

func main() {
	// Parse command line flags
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", "lightbox.yml", "Path to the YAML configuration file")
	galleryDir := flag.String("gallery", "", "Gallery directory to scan at startup (overrides config)")
	flag.Parse()

	// Initialize logger
	logger := initLogger(*debugMode)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if *galleryDir != "" {
		cfg.Gallery.Dir = *galleryDir
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}
	if cfg.Debug && !*debugMode {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode || cfg.Debug,
	}).Info("Starting Image Lightbox")

	// Create Fyne application
	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.MediaPhotoIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	// Create the gallery window and scan the configured directory
	mainApp := gui.NewApplication(myApp, logger, cfg)
	if cfg.Gallery.Dir != "" {
		if err := mainApp.LoadGallery(cfg.Gallery.Dir); err != nil {
			logger.WithError(err).Warn("Initial gallery scan failed")
		}
	}
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
