package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gopledge/internal/domain"
)

// QuoteUseCase prices campaign form states.
type QuoteUseCase struct {
	schedule domain.FeeSchedule
	idGen    IDGenerator
	cache    Cache
	cacheTTL time.Duration
	recorder Recorder
	logger   zerolog.Logger
}

// QuoteOption configures a QuoteUseCase.
type QuoteOption func(*QuoteUseCase)

// WithCache enables quote caching. A nil cache disables it.
func WithCache(cache Cache, ttl time.Duration) QuoteOption {
	return func(uc *QuoteUseCase) {
		uc.cache = cache
		if ttl > 0 {
			uc.cacheTTL = ttl
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder Recorder) QuoteOption {
	return func(uc *QuoteUseCase) {
		if recorder != nil {
			uc.recorder = recorder
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) QuoteOption {
	return func(uc *QuoteUseCase) {
		uc.logger = logger
	}
}

// NewQuoteUseCase creates a new QuoteUseCase.
func NewQuoteUseCase(schedule domain.FeeSchedule, idGen IDGenerator, opts ...QuoteOption) *QuoteUseCase {
	uc := &QuoteUseCase{
		schedule: schedule,
		idGen:    idGen,
		cacheTTL: DefaultQuoteCacheTTL,
		recorder: nopRecorder{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// QuoteInput represents input for pricing a form state.
type QuoteInput struct {
	FundingGoal     domain.Money
	MinimumPledgers int64
	CurrentPledgers int64
}

// QuoteResult is a priced form state.
type QuoteResult struct {
	ID     string
	Cached bool
	Quote  domain.Quote
}

// Quote recomputes every derived field of the input. Cache failures are
// logged and never fail the request.
func (uc *QuoteUseCase) Quote(ctx context.Context, input QuoteInput) (*QuoteResult, error) {
	state := domain.FormState{
		FundingGoal:     input.FundingGoal,
		MinimumPledgers: input.MinimumPledgers,
		CurrentPledgers: input.CurrentPledgers,
	}
	key := uc.cacheKey(state)

	if quote, ok := uc.lookup(ctx, key); ok {
		return &QuoteResult{ID: uc.idGen.Generate(), Cached: true, Quote: quote}, nil
	}

	quote, err := uc.schedule.Recompute(state)
	if err != nil {
		uc.recorder.QuoteFailed(failureReason(err))
		return nil, err
	}
	uc.recorder.QuoteComputed(quote.Successful, quote.Breakdown.Charge)

	uc.store(ctx, key, quote)

	return &QuoteResult{ID: uc.idGen.Generate(), Quote: quote}, nil
}

// BoundsResult holds the pledger-count bounds of a funding goal.
type BoundsResult struct {
	FundingGoal             domain.Money
	MinimumPossiblePledgers int64
	MaximumPossiblePledgers int64
}

// Bounds returns the pledger-count bounds for a funding goal.
func (uc *QuoteUseCase) Bounds(ctx context.Context, fundingGoal domain.Money) (*BoundsResult, error) {
	minimum, maximum, err := uc.schedule.PledgerBounds(fundingGoal)
	if err != nil {
		uc.recorder.QuoteFailed(failureReason(err))
		return nil, err
	}

	return &BoundsResult{
		FundingGoal:             fundingGoal,
		MinimumPossiblePledgers: minimum,
		MaximumPossiblePledgers: maximum,
	}, nil
}

func (uc *QuoteUseCase) lookup(ctx context.Context, key string) (domain.Quote, bool) {
	if uc.cache == nil {
		return domain.Quote{}, false
	}

	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Str("key", key).Msg("quote cache read failed")
		}
		uc.recorder.CacheLookup(false)
		return domain.Quote{}, false
	}

	var quote domain.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cached quote")
		uc.recorder.CacheLookup(false)
		return domain.Quote{}, false
	}

	uc.recorder.CacheLookup(true)
	return quote, true
}

func (uc *QuoteUseCase) store(ctx context.Context, key string, quote domain.Quote) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(quote)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("failed to encode quote for cache")
		return
	}

	if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("quote cache write failed")
	}
}

// cacheKey includes the schedule so a pricing change never serves stale quotes.
func (uc *QuoteUseCase) cacheKey(state domain.FormState) string {
	s := uc.schedule
	return fmt.Sprintf("%s%s|%s|%s|%s|%s|%t:%s:%d:%d",
		quoteCachePrefix,
		s.PlatformFeeRate, s.ProcessingFeeRate, s.ProcessingFeeFixed,
		s.MinimumPledge, s.MaximumPledge, s.RoundUp,
		state.FundingGoal, state.MinimumPledgers, state.CurrentPledgers,
	)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidFundingGoal):
		return "invalid_funding_goal"
	case errors.Is(err, domain.ErrInvalidPledgerCount):
		return "invalid_pledger_count"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	default:
		return "other"
	}
}
