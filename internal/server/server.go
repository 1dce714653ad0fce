package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ytget/upscaler/internal/platform"
)

// Routes
const (
	UploadRoute   = "/upload"
	DownloadRoute = "/download/:filename"
	HealthRoute   = "/health"

	// FormField is the multipart field carrying the image
	FormField = "image"

	// ProcessedPrefix is prepended to the stored name of every output
	ProcessedPrefix = "upscaled_"
)

// Options configures a Server
type Options struct {
	UploadDir      string
	ProcessedDir   string
	MaxUploadBytes int64
}

// Server is the companion HTTP server that stores uploads, upscales them and
// serves the results
type Server struct {
	echo *echo.Echo
	opts Options
	log  logrus.FieldLogger
	now  func() time.Time
}

// New creates the server and its storage directories
func New(opts Options, log logrus.FieldLogger) (*Server, error) {
	for _, dir := range []string{opts.UploadDir, opts.ProcessedDir} {
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	s := &Server{
		echo: echo.New(),
		opts: opts,
		log:  log,
		now:  time.Now,
	}
	s.setup()
	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) setup() {
	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(s.log)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == HealthRoute
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency,
			}).Info("Request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	if s.opts.MaxUploadBytes > 0 {
		e.Use(middleware.BodyLimit(bodyLimit(s.opts.MaxUploadBytes)))
	}

	e.GET(HealthRoute, s.handleHealth)
	e.POST(UploadRoute, s.handleUpload)
	e.GET(DownloadRoute, s.handleDownload)
}

// bodyLimit formats n bytes for the body limit middleware, rounded up to KiB
func bodyLimit(n int64) string {
	return fmt.Sprintf("%dK", (n+1023)/1024)
}

// Start serves on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.log.WithField("addr", addr).Info("Upscale server listening")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
