package assets_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"faal-poster/internal/adapters/assets"
	"faal-poster/internal/config"
	"faal-poster/internal/domain"

	"golang.org/x/image/font/gofont/goregular"
)

func newServer(t *testing.T, body string, status int) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestDownloadFont_MissingFile_DownloadsAndSaves(t *testing.T) {
	// Arrange
	srv, hits := newServer(t, "TTFDATA", http.StatusOK)
	fontPath := filepath.Join(t.TempDir(), "font.ttf")
	f := assets.NewFetcher(srv.Client(), config.AssetsConfig{FontURL: srv.URL, FontPath: fontPath})

	// Act
	data, err := f.DownloadFont(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "TTFDATA" {
		t.Errorf("data: got %q", data)
	}
	saved, err := os.ReadFile(fontPath)
	if err != nil || string(saved) != "TTFDATA" {
		t.Errorf("saved font: got %q, %v", saved, err)
	}
	if atomic.LoadInt32(hits) != 1 {
		t.Errorf("hits: got %d, want 1", *hits)
	}
}

func TestDownloadFont_ExistingFile_IsReused(t *testing.T) {
	srv, hits := newServer(t, "REMOTE", http.StatusOK)
	fontPath := filepath.Join(t.TempDir(), "font.ttf")
	os.WriteFile(fontPath, goregular.TTF, 0o644)
	f := assets.NewFetcher(srv.Client(), config.AssetsConfig{FontURL: srv.URL, FontPath: fontPath})

	data, err := f.DownloadFont(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(data, goregular.TTF) {
		t.Errorf("data: got %d bytes, want the cached font", len(data))
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Errorf("server should not be hit, got %d hits", *hits)
	}
}

func TestDownloadFont_CorruptCache_DownloadsAgain(t *testing.T) {
	// Arrange
	srv, hits := newServer(t, string(goregular.TTF), http.StatusOK)
	fontPath := filepath.Join(t.TempDir(), "font.ttf")
	os.WriteFile(fontPath, goregular.TTF[:512], 0o644)
	f := assets.NewFetcher(srv.Client(), config.AssetsConfig{FontURL: srv.URL, FontPath: fontPath})

	// Act
	data, err := f.DownloadFont(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(data, goregular.TTF) {
		t.Errorf("data: got %d bytes, want the downloaded font", len(data))
	}
	saved, _ := os.ReadFile(fontPath)
	if !bytes.Equal(saved, goregular.TTF) {
		t.Errorf("saved font: got %d bytes, want it replaced", len(saved))
	}
	if atomic.LoadInt32(hits) != 1 {
		t.Errorf("hits: got %d, want 1", *hits)
	}
}

func TestDownloadFont_Refresh_Overwrites(t *testing.T) {
	srv, _ := newServer(t, "REMOTE", http.StatusOK)
	fontPath := filepath.Join(t.TempDir(), "font.ttf")
	os.WriteFile(fontPath, []byte("LOCAL"), 0o644)
	f := assets.NewFetcher(srv.Client(), config.AssetsConfig{FontURL: srv.URL, FontPath: fontPath, RefreshFont: true})

	data, err := f.DownloadFont(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	saved, _ := os.ReadFile(fontPath)
	if string(data) != "REMOTE" || string(saved) != "REMOTE" {
		t.Errorf("data=%q saved=%q, want REMOTE", data, saved)
	}
}

func TestDownloadFont_ServerError_ReturnsErrFetchFailed(t *testing.T) {
	srv, _ := newServer(t, "nope", http.StatusNotFound)
	fontPath := filepath.Join(t.TempDir(), "font.ttf")
	f := assets.NewFetcher(srv.Client(), config.AssetsConfig{FontURL: srv.URL, FontPath: fontPath})

	_, err := f.DownloadFont(context.Background())

	if !errors.Is(err, domain.ErrFetchFailed) {
		t.Errorf("expected ErrFetchFailed, got %v", err)
	}
	if _, statErr := os.Stat(fontPath); !os.IsNotExist(statErr) {
		t.Error("no font file should be written on failure")
	}
}

func TestFetchRandomImage_ReturnsBody(t *testing.T) {
	srv, _ := newServer(t, "\x89PNG", http.StatusOK)
	f := assets.NewFetcher(srv.Client(), config.AssetsConfig{ImageURL: srv.URL})

	data, err := f.FetchRandomImage(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "\x89PNG" {
		t.Errorf("data: got %q", data)
	}
}

func TestFetchRandomImage_TransportError(t *testing.T) {
	srv, _ := newServer(t, "", http.StatusOK)
	srv.Close()
	f := assets.NewFetcher(srv.Client(), config.AssetsConfig{ImageURL: srv.URL})

	if _, err := f.FetchRandomImage(context.Background()); err == nil {
		t.Error("expected a transport error")
	}
}
