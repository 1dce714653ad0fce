package server

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/upscaler/internal/logging"
	"github.com/ytget/upscaler/internal/model"
	"github.com/ytget/upscaler/internal/upload"
)

func TestClientRoundTrip(t *testing.T) {
	s := newTestServer(t, 1<<20)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	client := upload.NewService(ts.URL, 10*time.Second, logging.Discard())
	ctx := context.Background()

	result, err := client.Upload(ctx, &model.SelectedFile{
		Name:     "wide.png",
		MIMEType: "image/png",
		Content:  pngBytes(t, 16, 9),
	})
	require.NoError(t, err)
	assert.Equal(t, "upscaled_1700000000_wide.png", result.Filename)
	assert.Equal(t, "Resolution: 3840 x 2160", result.ResolutionText())

	destDir := t.TempDir()
	path, err := client.Fetch(ctx, result, destDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, result.Filename), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestClientRoundTrip_ServerRejects(t *testing.T) {
	s := newTestServer(t, 1<<20)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	client := upload.NewService(ts.URL, 10*time.Second, logging.Discard())

	_, err := client.Upload(context.Background(), &model.SelectedFile{
		Name:     "fake.png",
		MIMEType: "image/png",
		Content:  []byte("not really a png"),
	})
	serverErr, ok := upload.AsServerError(err)
	require.True(t, ok, "expected a server error, got %v", err)
	assert.Contains(t, serverErr.Message, "failed to decode image")

	_, err = client.Fetch(context.Background(), &model.UpscaleResult{Filename: "missing.png"}, t.TempDir())
	assert.ErrorIs(t, err, upload.ErrTransport)
}

func TestClientRoundTrip_PercentInName(t *testing.T) {
	s := newTestServer(t, 1<<20)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	client := upload.NewService(ts.URL, 10*time.Second, logging.Discard())
	ctx := context.Background()

	for _, name := range []string{"50%.png", "a%41.png", "two words.png"} {
		t.Run(name, func(t *testing.T) {
			result, err := client.Upload(ctx, &model.SelectedFile{
				Name:     name,
				MIMEType: "image/png",
				Content:  pngBytes(t, 4, 4),
			})
			require.NoError(t, err)
			require.Contains(t, result.Filename, name)

			path, err := client.Fetch(ctx, result, t.TempDir())
			require.NoError(t, err)
			assert.Equal(t, result.Filename, filepath.Base(path))
		})
	}
}
