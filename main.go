package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/upscaler/internal/config"
	"github.com/ytget/upscaler/internal/flow"
	"github.com/ytget/upscaler/internal/logging"
	"github.com/ytget/upscaler/internal/model"
	"github.com/ytget/upscaler/internal/platform"
	"github.com/ytget/upscaler/internal/ui"
	"github.com/ytget/upscaler/internal/upload"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.upscaler"
	AppName = "4K AI Upscaler"

	WindowWidth  = 640
	WindowHeight = 560
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Debug)
	log.WithField("version", version).Info("Upscaler starting")

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewUpscalerTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		log.WithError(err).Warn("Failed to ensure download directory")
	}

	uploader := upload.NewService(cfg.ServerURL, cfg.RequestTimeout, log)

	ui.NewRootUI(myWindow, uploader, settings, version, flow.Options{
		Language:       model.ParseLanguage(cfg.Language),
		CountdownTicks: cfg.CountdownSeconds,
		TickInterval:   flow.DefaultTickInterval,
	}, log)

	myWindow.ShowAndRun()
}
