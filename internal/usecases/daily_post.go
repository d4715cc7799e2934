package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"faal-poster/internal/domain"
	"faal-poster/pkg/log"

	"github.com/google/uuid"
)

// Status lines printed after a publish attempt.
const (
	MsgSent       = "Message sent successfully!"
	MsgFailedFmt  = "Failed to send message. Status code: %d"
	defaultOutput = "image_with_text_and_frame.png"
)

// Publisher defines the interface for sending the card.
type Publisher interface {
	Publish(ctx context.Context, imagePath, caption string) (int, error)
}

// Journal defines the interface for recording publish attempts.
type Journal interface {
	Record(ctx context.Context, d domain.Delivery) error
}

// Outcome summarizes one daily run.
type Outcome struct {
	Skipped bool
	Date    domain.LocalizedDate
	Caption string
	Status  int
}

// Sent reports whether the publish endpoint answered 200.
func (o Outcome) Sent() bool {
	return o.Status == http.StatusOK
}

// StatusLine is the human-readable result of the publish attempt.
func (o Outcome) StatusLine() string {
	if o.Sent() {
		return MsgSent
	}
	return fmt.Sprintf(MsgFailedFmt, o.Status)
}

// DailyPostUseCase composes today's card and publishes it.
type DailyPostUseCase struct {
	compose    *ComposeCardUseCase
	publisher  Publisher
	journal    Journal
	outputPath string
	out        io.Writer

	mu sync.Mutex
}

// NewDailyPostUseCase creates a new DailyPostUseCase. The status line is
// written to out; the card is saved at outputPath before upload.
func NewDailyPostUseCase(compose *ComposeCardUseCase, publisher Publisher, journal Journal, outputPath string, out io.Writer) *DailyPostUseCase {
	if outputPath == "" {
		outputPath = defaultOutput
	}
	if out == nil {
		out = os.Stdout
	}
	return &DailyPostUseCase{
		compose:    compose,
		publisher:  publisher,
		journal:    journal,
		outputPath: outputPath,
		out:        out,
	}
}

// Execute runs the pipeline once. Concurrent calls run one after another.
// A missing poem skips the run without error and without a status line.
func (uc *DailyPostUseCase) Execute(ctx context.Context) (Outcome, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if log.RunIDFromContext(ctx) == "" {
		ctx = log.WithRunID(ctx, uuid.NewString())
	}
	log.GlobalInfoCtx(ctx, "daily post started")

	post, err := uc.compose.Execute(ctx)
	if errors.Is(err, domain.ErrPoemUnavailable) {
		log.GlobalInfoCtx(ctx, "no poem today, skipping publish")
		return Outcome{Skipped: true}, nil
	}
	if err != nil {
		return Outcome{}, err
	}

	if err := os.WriteFile(uc.outputPath, post.PNG, 0o644); err != nil {
		return Outcome{}, fmt.Errorf("save card: %w", err)
	}

	outcome := Outcome{Date: post.Date, Caption: post.Caption}
	status, err := uc.publisher.Publish(ctx, uc.outputPath, post.Caption)
	outcome.Status = status
	uc.record(ctx, domain.NewDelivery(post.Date.Key(), post.Caption, status, err))
	if err != nil {
		return outcome, fmt.Errorf("publish: %w", err)
	}

	fmt.Fprintln(uc.out, outcome.StatusLine())
	log.GlobalInfoCtx(ctx, "daily post finished", "status", status, "date", post.Date.Key())
	return outcome, nil
}

func (uc *DailyPostUseCase) record(ctx context.Context, d domain.Delivery) {
	if uc.journal == nil {
		return
	}
	if err := uc.journal.Record(ctx, d); err != nil {
		log.GlobalWarnCtx(ctx, "journal write failed", "delivery_id", d.ID.String(), "error", err)
	}
}
