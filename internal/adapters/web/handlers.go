package web

import (
	"context"
	"errors"
	"time"

	"faal-poster/internal/domain"
	"faal-poster/internal/usecases"
	"faal-poster/pkg/log"
	"faal-poster/templates/pages"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

const (
	pipelineTimeout = 2 * time.Minute
	historyOnPage   = 7
)

// Handlers contains the HTTP handlers for the web application.
type Handlers struct {
	daily    *usecases.DailyPostUseCase
	preview  *usecases.PreviewUseCase
	history  *usecases.HistoryUseCase
	calendar usecases.Calendar
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(daily *usecases.DailyPostUseCase, preview *usecases.PreviewUseCase, history *usecases.HistoryUseCase, calendar usecases.Calendar) *Handlers {
	return &Handlers{
		daily:    daily,
		preview:  preview,
		history:  history,
		calendar: calendar,
	}
}

// tickResponse is the JSON body of POST /tick.
type tickResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Skipped bool   `json:"skipped,omitempty"`
	Date    string `json:"date,omitempty"`
}

// render is a helper to render templ components.
func render(c *fiber.Ctx, component templ.Component) error {
	c.Set("Content-Type", "text/html; charset=utf-8")
	return adaptor.HTTPHandler(templ.Handler(component))(c)
}

// Health answers liveness checks.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}

// Home renders the status page: today's date, the preview and recent deliveries.
func (h *Handlers) Home(c *fiber.Ctx) error {
	ctx := c.UserContext()
	caption, err := h.calendar.Today().Caption()
	if err != nil {
		log.GlobalErrorCtx(ctx, "date caption failed", "error", err)
	}

	deliveries, err := h.history.Execute(ctx, historyOnPage)
	if err != nil {
		log.GlobalWarnCtx(ctx, "history unavailable", "error", err)
	}

	return render(c, pages.Status(caption, deliveries))
}

// Preview returns today's card as PNG without publishing it.
func (h *Handlers) Preview(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), pipelineTimeout)
	defer cancel()

	png, err := h.preview.Execute(ctx)
	if err != nil {
		log.GlobalErrorCtx(ctx, "preview failed", "error", err)
		return c.Status(statusFor(err)).SendString(friendlyError(err))
	}

	c.Set("Content-Type", "image/png")
	c.Set("Cache-Control", "no-store")
	return c.Send(png)
}

// Tick runs the daily post once, for external schedulers.
func (h *Handlers) Tick(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), pipelineTimeout)
	defer cancel()

	outcome, err := h.daily.Execute(ctx)
	if err != nil {
		log.GlobalErrorCtx(ctx, "tick failed", "error", err)
		status := statusFor(err)
		return c.Status(status).JSON(tickResponse{Status: status, Message: friendlyError(err)})
	}

	if outcome.Skipped {
		return c.JSON(tickResponse{Status: fiber.StatusOK, Message: friendlyError(domain.ErrPoemUnavailable), Skipped: true})
	}
	return c.JSON(tickResponse{Status: outcome.Status, Message: outcome.StatusLine(), Date: outcome.Date.Key()})
}

// History lists recent deliveries as JSON. ?limit=N caps the list.
func (h *Handlers) History(c *fiber.Ctx) error {
	ctx := c.UserContext()
	deliveries, err := h.history.Execute(ctx, c.QueryInt("limit", 20))
	if err != nil {
		log.GlobalErrorCtx(ctx, "history failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": friendlyError(err)})
	}
	if deliveries == nil {
		deliveries = []domain.Delivery{}
	}
	return c.JSON(deliveries)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPoemUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(err, domain.ErrFetchFailed), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// friendlyError returns a neutral, non-blaming error message.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrPoemUnavailable):
		return "The oracle has no poem right now. Please try again later."
	case errors.Is(err, domain.ErrRateLimited):
		return "Too many requests. Please wait a moment and try again."
	case errors.Is(err, domain.ErrFetchFailed):
		return "An image or font could not be downloaded. Please try again in a moment."
	default:
		return "Unable to prepare today's card right now. Please try again in a moment."
	}
}
