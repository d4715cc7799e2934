package usecases

import (
	"context"

	"faal-poster/internal/domain"
)

// DeliveryLog defines the interface for reading recorded deliveries.
type DeliveryLog interface {
	Recent(ctx context.Context, limit int) ([]domain.Delivery, error)
}

// HistoryUseCase lists recent publish attempts.
type HistoryUseCase struct {
	deliveries DeliveryLog
}

// NewHistoryUseCase creates a new HistoryUseCase.
func NewHistoryUseCase(deliveries DeliveryLog) *HistoryUseCase {
	return &HistoryUseCase{deliveries: deliveries}
}

// Execute returns up to limit deliveries, newest first.
func (uc *HistoryUseCase) Execute(ctx context.Context, limit int) ([]domain.Delivery, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.deliveries.Recent(ctx, limit)
}
