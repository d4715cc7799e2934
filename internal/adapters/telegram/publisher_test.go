package telegram_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"faal-poster/internal/adapters/telegram"
	"faal-poster/internal/config"
	"faal-poster/internal/domain"
)

type received struct {
	path    string
	chatID  string
	caption string
	photo   []byte
}

func newBotServer(t *testing.T, status int, body string) (*httptest.Server, *received) {
	t.Helper()
	got := &received{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		got.chatID = r.FormValue("chat_id")
		got.caption = r.FormValue("caption")
		if f, _, err := r.FormFile("photo"); err == nil {
			got.photo, _ = io.ReadAll(f)
			f.Close()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "card.png")
	if err := os.WriteFile(path, []byte("PNGDATA"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPublish_Success_Returns200AndSendsMultipart(t *testing.T) {
	// Arrange
	srv, got := newBotServer(t, http.StatusOK, `{"ok":true,"result":{"message_id":7}}`)
	p, err := telegram.NewPublisher(config.Credentials{BotToken: "123:abc", ChatID: "-100200"}, srv.Client(), srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("NewPublisher: %v", err)
	}

	// Act
	status, err := p.Publish(context.Background(), writeImage(t), "بیت اول\nبیت دوم")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status: got %d, want 200", status)
	}
	if got.path != "/bot123:abc/sendPhoto" {
		t.Errorf("path: got %q", got.path)
	}
	if got.chatID != "-100200" {
		t.Errorf("chat_id: got %q", got.chatID)
	}
	if got.caption != "بیت اول\nبیت دوم" {
		t.Errorf("caption: got %q", got.caption)
	}
	if string(got.photo) != "PNGDATA" {
		t.Errorf("photo: got %q", got.photo)
	}
}

func TestPublish_ChannelUsername(t *testing.T) {
	srv, got := newBotServer(t, http.StatusOK, `{"ok":true,"result":{}}`)
	p, _ := telegram.NewPublisher(config.Credentials{BotToken: "t", ChatID: "@hafez_daily"}, srv.Client(), srv.URL+"/bot%s/%s")

	if _, err := p.Publish(context.Background(), writeImage(t), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.chatID != "@hafez_daily" {
		t.Errorf("chat_id: got %q, want @hafez_daily", got.chatID)
	}
}

func TestPublish_Rejected_ReturnsStatusWithoutError(t *testing.T) {
	tests := []struct {
		status int
		body   string
	}{
		{http.StatusForbidden, `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`},
		{http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`},
		{http.StatusBadGateway, `<html>bad gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv, _ := newBotServer(t, tt.status, tt.body)
			p, _ := telegram.NewPublisher(config.Credentials{BotToken: "t", ChatID: "1"}, srv.Client(), srv.URL+"/bot%s/%s")

			status, err := p.Publish(context.Background(), writeImage(t), "x")

			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if status != tt.status {
				t.Errorf("status: got %d, want %d", status, tt.status)
			}
		})
	}
}

func TestPublish_TransportError(t *testing.T) {
	srv, _ := newBotServer(t, http.StatusOK, `{"ok":true}`)
	p, _ := telegram.NewPublisher(config.Credentials{BotToken: "t", ChatID: "1"}, srv.Client(), srv.URL+"/bot%s/%s")
	srv.Close()

	status, err := p.Publish(context.Background(), writeImage(t), "x")

	if err == nil {
		t.Error("expected transport error")
	}
	if status != 0 {
		t.Errorf("status: got %d, want 0", status)
	}
}

func TestPublish_CancelledContext(t *testing.T) {
	srv, _ := newBotServer(t, http.StatusOK, `{"ok":true}`)
	p, _ := telegram.NewPublisher(config.Credentials{BotToken: "t", ChatID: "1"}, srv.Client(), srv.URL+"/bot%s/%s")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Publish(ctx, writeImage(t), "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewPublisher_MissingCredentials(t *testing.T) {
	_, err := telegram.NewPublisher(config.Credentials{ChatID: "1"}, nil, "")
	if !errors.Is(err, domain.ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
}
