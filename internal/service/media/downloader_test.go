package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hawkhub/tg-tw-answering-bot/pkg/retry"
)

func fastRetrier() *retry.Retrier {
	cfg := retry.NewDefaultConfig()
	cfg.MaxRetries = 0
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = time.Millisecond
	return retry.NewRetrier(cfg)
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake jpeg bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()
	d := NewDownloader(dir)

	path, err := d.Download(context.Background(), server.URL+"/media/photo.jpg")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".jpg"), "path %q should keep the remote extension", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fake jpeg bytes", string(data))
}

func TestDownload_StripsQueryFromExtension(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer server.Close()

	d := NewDownloader(t.TempDir())
	path, err := d.Download(context.Background(), server.URL+"/v/clip.mp4?tag=12")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".mp4"), "path %q", path)
}

func TestDownload_HTTPErrorRemovesPartialFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dir := t.TempDir()
	d := NewDownloader(dir)
	d.retrier = fastRetrier()

	_, err := d.Download(context.Background(), server.URL+"/missing.jpg")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed download must not leave files behind")
}
