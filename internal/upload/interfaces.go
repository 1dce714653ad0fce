package upload

import (
	"context"

	"github.com/ytget/upscaler/internal/model"
)

// Uploader defines the interface for the upload service.
type Uploader interface {
	// Upload sends the file to the server and returns the upscale result.
	// Errors wrap ErrTransport or are a *ServerError.
	Upload(ctx context.Context, file *model.SelectedFile) (*model.UpscaleResult, error)

	// DownloadURL returns the absolute download locator for a result
	DownloadURL(result *model.UpscaleResult) string

	// Fetch downloads the processed image into destDir and returns its path
	Fetch(ctx context.Context, result *model.UpscaleResult, destDir string) (string, error)
}
