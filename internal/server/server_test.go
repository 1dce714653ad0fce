package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/upscaler/internal/logging"
)

var fixedNow = time.Unix(1700000000, 0)

func newTestServer(t *testing.T, maxUpload int64) *Server {
	t.Helper()
	dir := t.TempDir()
	s, err := New(Options{
		UploadDir:      filepath.Join(dir, "uploads"),
		ProcessedDir:   filepath.Join(dir, "processed"),
		MaxUploadBytes: maxUpload,
	}, logging.Discard())
	require.NoError(t, err)
	s.now = func() time.Time { return fixedNow }
	return s
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0, G: 128, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// multipartRequest builds POST /upload; an empty filename sends a plain form field
func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	if filename == "" {
		require.NoError(t, writer.WriteField(field, string(content)))
	} else {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, UploadRoute, body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestUpload_Success(t *testing.T) {
	s := newTestServer(t, 0)

	rec := serve(s, multipartRequest(t, FormField, "cat.png", pngBytes(t, 8, 4)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "upscaled_1700000000_cat.png", body["filename"])
	assert.Equal(t, float64(3840), body["width"])
	assert.Equal(t, float64(1920), body["height"])

	_, err := os.Stat(filepath.Join(s.opts.UploadDir, "1700000000_cat.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(s.opts.ProcessedDir, "upscaled_1700000000_cat.png"))
	assert.NoError(t, err)
}

func TestUpload_SameNameSameSecond(t *testing.T) {
	s := newTestServer(t, 0)

	first := decodeBody(t, serve(s, multipartRequest(t, FormField, "cat.png", pngBytes(t, 2, 2))))
	second := decodeBody(t, serve(s, multipartRequest(t, FormField, "cat.png", pngBytes(t, 2, 2))))

	assert.Equal(t, "upscaled_1700000000_cat.png", first["filename"])
	assert.Equal(t, "upscaled_1700000000_cat-1.png", second["filename"])
}

func TestUpload_SameSecondDifferentFormats(t *testing.T) {
	s := newTestServer(t, 0)

	first := decodeBody(t, serve(s, multipartRequest(t, FormField, "x.png", pngBytes(t, 2, 2))))
	second := decodeBody(t, serve(s, multipartRequest(t, FormField, "x.weird", pngBytes(t, 4, 2))))

	assert.Equal(t, "upscaled_1700000000_x.png", first["filename"])
	assert.Equal(t, "upscaled_1700000000_x-1.png", second["filename"])

	// The first result is still the square one
	f, err := os.Open(filepath.Join(s.opts.ProcessedDir, "upscaled_1700000000_x.png"))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 3840, cfg.Height)
}

func TestUpload_Errors(t *testing.T) {
	tests := []struct {
		name          string
		req           func(t *testing.T) *http.Request
		expectedCode  int
		expectedError string
	}{
		{
			name: "missing field",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "file", "cat.png", []byte("x"))
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: MsgNoFilePart,
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, UploadRoute, bytes.NewBufferString("{}"))
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: MsgNoFilePart,
		},
		{
			name: "empty filename",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, FormField, "", []byte("x"))
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: MsgNoSelectedFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, 0)
			rec := serve(s, tt.req(t))

			assert.Equal(t, tt.expectedCode, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.expectedError, body["error"])
		})
	}
}

func TestUpload_UndecodableImage(t *testing.T) {
	s := newTestServer(t, 0)

	rec := serve(s, multipartRequest(t, FormField, "notes.png", []byte("definitely not a png")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "failed to decode image")
}

func TestUpload_BodyLimit(t *testing.T) {
	s := newTestServer(t, 1024)

	rec := serve(s, multipartRequest(t, FormField, "big.png", bytes.Repeat([]byte{0}, 4096)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestDownload(t *testing.T) {
	s := newTestServer(t, 0)

	upload := decodeBody(t, serve(s, multipartRequest(t, FormField, "dog.png", pngBytes(t, 3, 6))))
	filename := upload["filename"].(string)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/download/"+filename, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), filename)

	cfg, err := png.DecodeConfig(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 3840, cfg.Height)
}

func TestDownload_NotFound(t *testing.T) {
	s := newTestServer(t, 0)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(s.opts.ProcessedDir), "secret.txt"), []byte("s"), 0o644))

	for _, path := range []string{
		"/download/missing.png",
		"/download/..%2Fsecret.txt",
		"/download/..",
	} {
		t.Run(path, func(t *testing.T) {
			rec := serve(s, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 0)

	rec := serve(s, httptest.NewRequest(http.MethodGet, HealthRoute, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestBodyLimit(t *testing.T) {
	assert.Equal(t, "1K", bodyLimit(1))
	assert.Equal(t, "1K", bodyLimit(1024))
	assert.Equal(t, "32768K", bodyLimit(32<<20))
}
