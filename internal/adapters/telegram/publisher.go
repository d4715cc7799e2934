// Package telegram publishes composed cards through the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"faal-poster/internal/config"
	"faal-poster/pkg/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Publisher uploads photos with a caption to a single chat.
type Publisher struct {
	client   *http.Client
	endpoint string
	creds    config.Credentials
}

// NewPublisher creates a Publisher. endpoint is a format string taking the
// token and the method name; empty means the public Bot API.
func NewPublisher(creds config.Credentials, client *http.Client, endpoint string) (*Publisher, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if client == nil {
		client = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	return &Publisher{client: client, endpoint: endpoint, creds: creds}, nil
}

// Publish sends the image at imagePath with caption via sendPhoto and returns
// the HTTP status of the answer. Rejections by the API are logged and reported
// through the status; only transport failures return an error.
func (p *Publisher) Publish(ctx context.Context, imagePath, caption string) (int, error) {
	rec := &statusRecorder{ctx: ctx, client: p.client}
	bot := &tgbotapi.BotAPI{Token: p.creds.BotToken, Client: rec, Buffer: 100}
	bot.SetAPIEndpoint(p.endpoint)

	photo := p.photo(imagePath)
	photo.Caption = caption

	_, err := bot.Request(photo)
	status := rec.Status()
	if status == 0 {
		return 0, fmt.Errorf("send photo: %w", err)
	}
	if err != nil {
		log.GlobalWarnCtx(ctx, "telegram rejected photo", "status", status, "error", err)
	}
	return status, nil
}

// photo addresses numeric chat ids directly and anything else as a channel username.
func (p *Publisher) photo(imagePath string) tgbotapi.PhotoConfig {
	file := tgbotapi.FilePath(imagePath)
	if id, err := strconv.ParseInt(p.creds.ChatID, 10, 64); err == nil {
		return tgbotapi.NewPhoto(id, file)
	}
	return tgbotapi.NewPhotoToChannel(p.creds.ChatID, file)
}

// statusRecorder binds requests to ctx and remembers the last response status.
type statusRecorder struct {
	ctx    context.Context
	client *http.Client

	mu     sync.Mutex
	status int
}

func (r *statusRecorder) Do(req *http.Request) (*http.Response, error) {
	resp, err := r.client.Do(req.WithContext(r.ctx))
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.status = resp.StatusCode
	r.mu.Unlock()
	return resp, nil
}

func (r *statusRecorder) Status() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// UseLogger routes the Bot API library's own logging through l.
func UseLogger(l *log.Logger) error {
	return tgbotapi.SetLogger(l)
}
