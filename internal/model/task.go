package model

import (
	"fmt"
	"net/url"
	"strings"
)

// ImageMIMEPrefix is the only MIME family accepted for upscaling
const ImageMIMEPrefix = "image/"

// DownloadPathPrefix is the server route that serves processed images
const DownloadPathPrefix = "/download/"

// FallbackResolution is shown when the server did not report dimensions
const FallbackResolution = "Resolution: 4K (Ultra HD)"

// SelectedFile is the image picked by the user and pending upload
type SelectedFile struct {
	Name     string // display name (base name of the picked file)
	MIMEType string // declared content type
	Content  []byte // raw file bytes
}

// UpscaleResult represents a successful server response
type UpscaleResult struct {
	Filename string // generated name on the server
	Width    int    // 0 if not reported
	Height   int    // 0 if not reported
}

// IsImageMIME reports whether a content type belongs to the image family
func IsImageMIME(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), ImageMIMEPrefix)
}

// IsImage reports whether the file passes the image type check
func (f *SelectedFile) IsImage() bool {
	return f != nil && IsImageMIME(f.MIMEType)
}

// Size returns the file size in bytes
func (f *SelectedFile) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Content))
}

// HasDimensions returns true if the server reported both width and height
func (r *UpscaleResult) HasDimensions() bool {
	return r.Width > 0 && r.Height > 0
}

// ResolutionText returns the resolution line for the download section
func (r *UpscaleResult) ResolutionText() string {
	if r == nil || !r.HasDimensions() {
		return FallbackResolution
	}
	return fmt.Sprintf("Resolution: %d x %d", r.Width, r.Height)
}

// DownloadPath returns the server-relative locator of the processed image
func (r *UpscaleResult) DownloadPath() string {
	return DownloadPathPrefix + url.PathEscape(r.Filename)
}

// ValidateFilename checks that a server-returned name is a single path segment
func ValidateFilename(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("empty filename")
	case name == "." || name == "..":
		return fmt.Errorf("invalid filename: %s", name)
	case strings.ContainsAny(name, "/\\"):
		return fmt.Errorf("filename must not contain path separators: %s", name)
	}
	return nil
}
