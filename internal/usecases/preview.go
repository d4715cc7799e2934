package usecases

import (
	"context"

	"faal-poster/internal/domain"
	"faal-poster/pkg/log"
)

// PreviewCache defines the interface for caching rendered previews.
type PreviewCache interface {
	Get(date domain.LocalizedDate) ([]byte, bool)
	Set(date domain.LocalizedDate, png []byte)
}

// PreviewUseCase renders today's card without publishing, with cache-first strategy.
type PreviewUseCase struct {
	cache   PreviewCache
	compose *ComposeCardUseCase
}

// NewPreviewUseCase creates a new PreviewUseCase.
func NewPreviewUseCase(cache PreviewCache, compose *ComposeCardUseCase) *PreviewUseCase {
	return &PreviewUseCase{cache: cache, compose: compose}
}

// Execute returns today's card as PNG, checking cache first before composing.
func (uc *PreviewUseCase) Execute(ctx context.Context) ([]byte, error) {
	today := uc.compose.Today()
	if png, found := uc.cache.Get(today); found {
		log.GlobalDebugCtx(ctx, "cache hit", "date", today.Key())
		return png, nil
	}

	log.GlobalDebugCtx(ctx, "cache miss, composing", "date", today.Key())

	post, err := uc.compose.Execute(ctx)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(post.Date, post.PNG)
	return post.PNG, nil
}
