// Package journal records publish attempts.
package journal

import (
	"context"

	"faal-poster/internal/domain"
)

// Nop discards deliveries. It is used when no journal is configured.
type Nop struct{}

func (Nop) Record(context.Context, domain.Delivery) error { return nil }

func (Nop) Recent(context.Context, int) ([]domain.Delivery, error) { return nil, nil }

func (Nop) Close() error { return nil }
