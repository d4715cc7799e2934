package usecases

import (
	"context"
	"fmt"

	"faal-poster/internal/domain"
	"faal-poster/pkg/log"
)

// AssetFetcher defines the interface for downloading the font and background.
type AssetFetcher interface {
	DownloadFont(ctx context.Context) ([]byte, error)
	FetchRandomImage(ctx context.Context) ([]byte, error)
}

// Calendar defines the interface for reading today's Jalali date.
type Calendar interface {
	Today() domain.LocalizedDate
}

// CardRenderer defines the interface for drawing a card to PNG.
type CardRenderer interface {
	Render(card domain.Card) ([]byte, error)
}

// ComposeCardUseCase gathers today's inputs and renders the card.
type ComposeCardUseCase struct {
	assets   AssetFetcher
	poems    *SelectPoemUseCase
	calendar Calendar
	renderer CardRenderer
}

// NewComposeCardUseCase creates a new ComposeCardUseCase.
func NewComposeCardUseCase(assets AssetFetcher, poems *SelectPoemUseCase, calendar Calendar, renderer CardRenderer) *ComposeCardUseCase {
	return &ComposeCardUseCase{
		assets:   assets,
		poems:    poems,
		calendar: calendar,
		renderer: renderer,
	}
}

// Today returns the date the next card will carry.
func (uc *ComposeCardUseCase) Today() domain.LocalizedDate {
	return uc.calendar.Today()
}

// Execute fetches the assets, selects a couplet and renders the card.
// It returns domain.ErrPoemUnavailable when the oracle had nothing usable.
func (uc *ComposeCardUseCase) Execute(ctx context.Context) (*domain.Post, error) {
	fontData, err := uc.assets.DownloadFont(ctx)
	if err != nil {
		return nil, err
	}

	background, err := uc.assets.FetchRandomImage(ctx)
	if err != nil {
		return nil, err
	}

	poem, ok, err := uc.poems.Execute(ctx)
	if err != nil {
		return nil, err
	}

	date := uc.calendar.Today()
	dateText, err := date.Caption()
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, domain.ErrPoemUnavailable
	}

	png, err := uc.renderer.Render(domain.Card{
		Background: background,
		Font:       fontData,
		DateText:   dateText,
		PoemText:   poem,
	})
	if err != nil {
		return nil, fmt.Errorf("render card: %w", err)
	}

	log.GlobalInfoCtx(ctx, "card composed", "date", date.Key(), "bytes", len(png))
	return &domain.Post{Date: date, Caption: poem, PNG: png}, nil
}
