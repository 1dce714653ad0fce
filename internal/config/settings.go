package config

import (
	"fyne.io/fyne/v2"
	"github.com/ytget/upscaler/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir   = "download_directory"
	KeyOpenAfterSave = "open_after_save"
)

// Default values
const (
	DefaultOpenAfterSave = true
	FallbackDownloadDir  = "/tmp/downloads"
)

// Settings manages user preferences that survive restarts
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the directory upscaled images are saved to
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetOpenAfterSave returns whether a saved image is opened in the system viewer
func (s *Settings) GetOpenAfterSave() bool {
	return s.app.Preferences().BoolWithFallback(KeyOpenAfterSave, DefaultOpenAfterSave)
}

// SetOpenAfterSave sets whether a saved image is opened in the system viewer
func (s *Settings) SetOpenAfterSave(open bool) {
	s.app.Preferences().SetBool(KeyOpenAfterSave, open)
}
