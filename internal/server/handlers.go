package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/ytget/upscaler/internal/imaging"
	"github.com/ytget/upscaler/internal/model"
	"github.com/ytget/upscaler/internal/platform"
)

// uploadResponse is the success body of POST /upload
type uploadResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload stores the image, upscales it to 4K and reports the processed name
func (s *Server) handleUpload(c echo.Context) error {
	fh, err := c.FormFile(FormField)
	if err != nil {
		// A part without a filename arrives as a plain form value
		if form := c.Request().MultipartForm; form != nil {
			if _, ok := form.Value[FormField]; ok {
				return NewBadRequestError(MsgNoSelectedFile)
			}
		}
		return NewBadRequestError(MsgNoFilePart)
	}

	name := filepath.Base(fh.Filename)
	if model.ValidateFilename(name) != nil {
		return NewBadRequestError(MsgNoSelectedFile)
	}

	out, err := platform.CreateUnique(s.opts.UploadDir, fmt.Sprintf("%d_%s", s.now().Unix(), name))
	if err != nil {
		return NewInternalError(err)
	}
	storedPath := out.Name()
	if err := saveFormFile(fh, out); err != nil {
		return NewInternalError(err)
	}

	stored := filepath.Base(storedPath)
	log := s.log.WithFields(logrus.Fields{"file": stored, "size": fh.Size})
	log.Debug("Upload stored")

	result, err := imaging.ProcessFile(storedPath, s.opts.ProcessedDir, ProcessedPrefix+stored)
	if err != nil {
		log.WithError(err).Warn("Upscale failed")
		return NewInternalError(err)
	}

	log.WithFields(logrus.Fields{
		"filename": result.Filename,
		"width":    result.Width,
		"height":   result.Height,
	}).Info("Image upscaled")

	return c.JSON(http.StatusOK, uploadResponse{
		Success:  true,
		Filename: result.Filename,
		Width:    result.Width,
		Height:   result.Height,
	})
}

// handleDownload serves a processed image as an attachment
func (s *Server) handleDownload(c echo.Context) error {
	// The router matches on RawPath when the request path has escapes it
	// cannot round-trip, and leaves the param encoded in that case only
	name := c.Param("filename")
	if c.Request().URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			return NewNotFoundError("file", name)
		}
		name = unescaped
	}
	if model.ValidateFilename(name) != nil {
		return NewNotFoundError("file", name)
	}

	path := filepath.Join(s.opts.ProcessedDir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return NewNotFoundError("file", name)
	}

	return c.Attachment(path, name)
}

// saveFormFile copies an uploaded part into out and closes it
func saveFormFile(fh *multipart.FileHeader, out *os.File) error {
	src, err := fh.Open()
	if err != nil {
		out.Close()
		os.Remove(out.Name())
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(out.Name())
		return fmt.Errorf("failed to store upload: %w", err)
	}
	return out.Close()
}
