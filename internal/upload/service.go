package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ytget/upscaler/internal/model"
	"github.com/ytget/upscaler/internal/platform"
)

// Wire constants
const (
	UploadPath       = "/upload"
	FormField        = "image"
	TaskIDPrefix     = "upload-"
	MaxResponseBytes = 1 << 20
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// uploadResponse is the JSON payload returned by POST /upload
type uploadResponse struct {
	Success  bool    `json:"success"`
	Filename string  `json:"filename"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Error    string  `json:"error,omitempty"`
}

var _ Uploader = (*Service)(nil)

// Service handles upload operations against the upscale server
type Service struct {
	baseURL string
	client  *http.Client
	log     logrus.FieldLogger
}

// NewService creates a new upload service for the given server base URL
func NewService(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Upload posts the file as multipart form data and decodes the result
func (s *Service) Upload(ctx context.Context, file *model.SelectedFile) (*model.UpscaleResult, error) {
	if file == nil {
		return nil, fmt.Errorf("no file selected")
	}

	taskID := generateTaskID()
	log := s.log.WithFields(logrus.Fields{
		"task": taskID,
		"file": file.Name,
		"size": file.Size(),
	})

	body, contentType, err := buildMultipartBody(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request body: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+UploadPath, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	log.Debug("Uploading image")
	started := time.Now()

	resp, err := s.client.Do(req)
	if err != nil {
		log.WithError(err).Warn("Upload request failed")
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	var payload uploadResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseBytes)).Decode(&payload); err != nil {
		log.WithError(err).WithField("status", resp.StatusCode).Warn("Upload response is not JSON")
		return nil, fmt.Errorf("%w: invalid response (status %d): %v", ErrTransport, resp.StatusCode, err)
	}

	if !payload.Success {
		log.WithField("status", resp.StatusCode).WithField("error", payload.Error).Warn("Server rejected upload")
		return nil, newServerError(resp.StatusCode, payload.Error)
	}

	if err := model.ValidateFilename(payload.Filename); err != nil {
		log.WithError(err).Warn("Server returned unusable filename")
		return nil, newServerError(resp.StatusCode, err.Error())
	}

	result := &model.UpscaleResult{
		Filename: payload.Filename,
		Width:    toDimension(payload.Width),
		Height:   toDimension(payload.Height),
	}

	log.WithFields(logrus.Fields{
		"filename": result.Filename,
		"width":    result.Width,
		"height":   result.Height,
		"elapsed":  time.Since(started).String(),
	}).Info("Upload completed")

	return result, nil
}

// DownloadURL returns the absolute download locator for a result
func (s *Service) DownloadURL(result *model.UpscaleResult) string {
	return s.baseURL + result.DownloadPath()
}

// Fetch downloads the processed image into destDir and returns the saved path
func (s *Service) Fetch(ctx context.Context, result *model.UpscaleResult, destDir string) (string, error) {
	if result == nil {
		return "", fmt.Errorf("no result to fetch")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.DownloadURL(result), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: download failed with status %d", ErrTransport, resp.StatusCode)
	}

	if err := platform.CreateDirectoryIfNotExists(destDir); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	// Write to a temp file first so a broken transfer leaves nothing behind
	tmp, err := os.CreateTemp(destDir, ".upscaler-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	written, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(tmpName)
		if copyErr != nil {
			return "", fmt.Errorf("%w: download interrupted: %v", ErrTransport, copyErr)
		}
		return "", fmt.Errorf("failed to write %s: %w", tmpName, closeErr)
	}

	// Reserve the final name, then move the download over the placeholder
	placeholder, err := platform.CreateUnique(destDir, result.Filename)
	if err != nil {
		os.Remove(tmpName)
		return "", err
	}
	path := placeholder.Name()
	placeholder.Close()

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		os.Remove(path)
		return "", fmt.Errorf("failed to move download into place: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"filename": result.Filename,
		"path":     path,
		"bytes":    written,
	}).Info("Saved upscaled image")

	return path, nil
}

// buildMultipartBody encodes the file as the single "image" form field
func buildMultipartBody(file *model.SelectedFile) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FormField, quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", file.MIMEType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

// toDimension converts a JSON number to a pixel count, 0 if absent or invalid
func toDimension(v float64) int {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}

// generateTaskID generates a unique ID for one upload attempt
func generateTaskID() string {
	return TaskIDPrefix + uuid.New().String()
}
