package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/Hawkhub/tg-tw-answering-bot/internal/core"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/log"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/retry"
)

const (
	defaultDownloadTimeout = 60 * time.Second
	maxMediaBytes          = 50 << 20 // Telegram bot upload limit
)

// Downloader pulls remote media into a local directory so the transport
// can upload it. Files are the caller's to remove once sent.
type Downloader struct {
	dir     string
	client  *http.Client
	retrier *retry.Retrier
}

func NewDownloader(dir string) *Downloader {
	return &Downloader{
		dir:     dir,
		client:  &http.Client{Timeout: defaultDownloadTimeout},
		retrier: retry.NewDefaultRetrier(),
	}
}

// Download fetches rawURL into the media directory and returns the local
// path.
func (d *Downloader) Download(ctx context.Context, rawURL string) (string, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	out, err := os.CreateTemp(d.dir, "media-*"+fileExt(rawURL))
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer out.Close()

	err = d.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", core.BotUserAgent)

		resp, err := d.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to download media: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		}

		if err := out.Truncate(0); err != nil {
			return err
		}
		if _, err := out.Seek(0, io.SeekStart); err != nil {
			return err
		}
		if _, err := io.Copy(out, io.LimitReader(resp.Body, maxMediaBytes)); err != nil {
			return fmt.Errorf("failed to write media file: %w", err)
		}
		return nil
	})
	if err != nil {
		os.Remove(out.Name())
		return "", err
	}

	log.FromCtx(ctx).Debug().Str("url", rawURL).Str("path", out.Name()).Msg("downloaded media")
	return out.Name(), nil
}

// fileExt keeps the remote extension so the transport can tell photos from
// videos; query strings and fragments are not part of it.
func fileExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return path.Ext(u.Path)
}
