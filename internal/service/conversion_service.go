package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"currencyapp/internal/model"
	"currencyapp/internal/provider"
)

// ConversionServiceInterface defines the operations the console depends on.
type ConversionServiceInterface interface {
	Convert(ctx context.Context, direction model.Direction, amount decimal.Decimal) (*ConversionResult, error)
}

// SnapshotResolver is implemented by providers that report where a snapshot came from.
type SnapshotResolver interface {
	Resolve(ctx context.Context) (provider.Resolution, error)
}

// ConversionService resolves a snapshot and converts an amount with it.
type ConversionService struct {
	provider  provider.RatesProvider
	converter *Converter
	log       *zap.SugaredLogger
}

// NewConversionService creates a new ConversionService
func NewConversionService(prov provider.RatesProvider, converter *Converter, logger *zap.SugaredLogger) *ConversionService {
	return &ConversionService{
		provider:  prov,
		converter: converter,
		log:       logger,
	}
}

// Convert resolves the current snapshot and converts amount in direction.
// The direction and amount are checked before any rates are resolved. Fetch failures are returned wrapped in provider.ErrFetch and no partial
// result is produced.
func (s *ConversionService) Convert(ctx context.Context, direction model.Direction, amount decimal.Decimal) (*ConversionResult, error) {
	id := uuid.New().String()

	if !direction.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, direction)
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	res, err := s.resolve(ctx)
	if err != nil {
		s.log.Errorw("Failed to resolve rates", "conversion_id", id, "error", err)
		return nil, err
	}

	rates, err := s.converter.Rates(res.Snapshot)
	if err != nil {
		s.log.Errorw("Snapshot cannot be used for conversion", "conversion_id", id, "error", err)
		return nil, err
	}
	rate, err := rates.For(direction)
	if err != nil {
		return nil, err
	}

	converted := s.converter.Apply(rate, amount)

	s.log.Infow("Converted amount",
		"conversion_id", id,
		"direction", direction.String(),
		"amount", amount.String(),
		"result", converted.String(),
		"source", res.Source.String(),
	)

	return &ConversionResult{
		ID:        id,
		Direction: direction,
		Amount:    amount,
		Result:    converted,
		Rate:      rate,
		Source:    res.Source,
		RatesAt:   res.Snapshot.UpdatedAt(),
	}, nil
}

func (s *ConversionService) resolve(ctx context.Context) (provider.Resolution, error) {
	if r, ok := s.provider.(SnapshotResolver); ok {
		return r.Resolve(ctx)
	}
	snapshot, err := s.provider.GetRates(ctx)
	if err != nil {
		return provider.Resolution{}, err
	}
	return provider.Resolution{Snapshot: snapshot, Source: provider.SourceRemote}, nil
}
