// Package assets downloads the font and background image a card is drawn with.
package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"faal-poster/internal/config"
	"faal-poster/internal/domain"
	"faal-poster/pkg/log"

	"github.com/go-text/typesetting/font"
)

// maxAssetSize caps a single download.
const maxAssetSize = 32 << 20

// Fetcher retrieves remote assets over HTTP.
type Fetcher struct {
	client *http.Client
	cfg    config.AssetsConfig
}

// NewFetcher creates a Fetcher. A nil client uses http.DefaultClient.
func NewFetcher(client *http.Client, cfg config.AssetsConfig) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, cfg: cfg}
}

// DownloadFont returns the font bytes, downloading them into the local font path
// when the file is missing or does not parse as a font, or when RefreshFont is set.
func (f *Fetcher) DownloadFont(ctx context.Context) ([]byte, error) {
	if !f.cfg.RefreshFont {
		if data, err := os.ReadFile(f.cfg.FontPath); err == nil {
			_, perr := font.ParseTTF(bytes.NewReader(data))
			if perr == nil {
				log.GlobalDebugCtx(ctx, "font reused", "path", f.cfg.FontPath, "bytes", len(data))
				return data, nil
			}
			log.GlobalWarnCtx(ctx, "cached font unreadable, downloading again", "path", f.cfg.FontPath, "error", perr)
		}
	}

	data, err := f.get(ctx, f.cfg.FontURL)
	if err != nil {
		return nil, fmt.Errorf("download font: %w", err)
	}
	if err := writeFile(f.cfg.FontPath, data); err != nil {
		return nil, fmt.Errorf("save font: %w", err)
	}

	log.GlobalInfoCtx(ctx, "font downloaded", "path", f.cfg.FontPath, "bytes", len(data))
	return data, nil
}

// FetchRandomImage returns the raw bytes of a random background image.
func (f *Fetcher) FetchRandomImage(ctx context.Context) ([]byte, error) {
	data, err := f.get(ctx, f.cfg.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	log.GlobalDebugCtx(ctx, "image fetched", "url", f.cfg.ImageURL, "bytes", len(data))
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s answered %d", domain.ErrFetchFailed, url, resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxAssetSize))
}

// writeFile replaces path through a temp file in the same directory.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
