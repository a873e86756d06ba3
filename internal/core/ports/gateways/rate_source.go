package gateways

import (
	"context"
	"time"

	"github.com/SscSPs/purchase_converter_app/internal/core/domain"
)

// RateSource is the outbound port to the external exchange-rates provider.
type RateSource interface {
	// GetRateForCountry returns the most recent rate for the given country
	// whose effective date falls on or before transactionDate and no more
	// than 6 calendar months before it.
	//
	// The result is three-way: (quote, nil) when a qualifying rate exists,
	// (nil, nil) when the provider answered but holds no qualifying rate,
	// and (nil, err) wrapping apperrors.ErrExternalService when the provider
	// itself failed. Callers must not conflate the last two.
	GetRateForCountry(ctx context.Context, country string, transactionDate time.Time) (*domain.RateQuote, error)
}
