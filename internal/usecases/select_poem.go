package usecases

import (
	"context"
	"errors"
	"math/rand/v2"

	"faal-poster/internal/domain"
	"faal-poster/pkg/log"
)

// PoemOracle defines the interface for asking the oracle for a poem.
type PoemOracle interface {
	Faal(ctx context.Context) (domain.Poem, bool, error)
}

// SelectPoemUseCase picks the couplet of the day.
type SelectPoemUseCase struct {
	oracle PoemOracle
	intn   func(n int) int
}

// NewSelectPoemUseCase creates a new SelectPoemUseCase. A nil intn uses math/rand/v2.
func NewSelectPoemUseCase(oracle PoemOracle, intn func(n int) int) *SelectPoemUseCase {
	if intn == nil {
		intn = rand.IntN
	}
	return &SelectPoemUseCase{oracle: oracle, intn: intn}
}

// Execute returns a random couplet. ok is false when the oracle had no usable
// poem: a non-200 answer or a body of the wrong shape. Transport failures are errors.
func (uc *SelectPoemUseCase) Execute(ctx context.Context) (string, bool, error) {
	poem, ok, err := uc.oracle.Faal(ctx)
	if errors.Is(err, domain.ErrInvalidPoemResponse) {
		log.GlobalWarnCtx(ctx, "oracle answer ignored", "error", err)
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	text, err := poem.PickCouplet(uc.intn)
	if err != nil {
		log.GlobalWarnCtx(ctx, "no couplet to pick", "error", err)
		return "", false, nil
	}

	log.GlobalDebugCtx(ctx, "couplet selected", "verses", len(poem.Verses))
	return text, true, nil
}
