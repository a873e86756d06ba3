package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/purchase_converter_app/internal/apperrors"
	"github.com/SscSPs/purchase_converter_app/internal/core/domain"
	"github.com/SscSPs/purchase_converter_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/purchase_converter_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_converter_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// purchaseService provides business logic for recording purchases and
// converting them into a target country's currency.
type purchaseService struct {
	purchaseRepo portsrepo.PurchaseRepositoryFacade
	rateSource   gateways.RateSource
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(purchaseRepo portsrepo.PurchaseRepositoryFacade, rateSource gateways.RateSource) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		rateSource:   rateSource,
	}
}

// CreatePurchase records a new purchase. Input constraints (description
// length, date not in the future, positive amount) are enforced by the
// request validation before this point; the service owns normalizing the
// amount to 2 fractional digits and assigning the identifier.
func (s *purchaseService) CreatePurchase(ctx context.Context, description string, transactionDate time.Time, amount decimal.Decimal, creatorClientID string) (*domain.Purchase, error) {
	now := time.Now()

	purchase := domain.Purchase{
		PurchaseID:      uuid.NewString(),
		Description:     description,
		TransactionDate: transactionDate,
		PurchaseAmount:  domain.NewPurchaseAmount(amount),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorClientID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorClientID,
		},
	}

	if err := s.purchaseRepo.SavePurchase(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to create purchase in service: %w", err)
	}

	return &purchase, nil
}

// GetPurchaseByID retrieves a purchase by its identifier.
func (s *purchaseService) GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		// Repository layer maps no-rows to apperrors.ErrNotFound
		return nil, fmt.Errorf("failed to get purchase by id in service: %w", err)
	}
	return purchase, nil
}

// GetConvertedPurchase looks up a purchase and converts its amount using the
// most recent rate on or before the transaction date within the 6-month
// lookback window. The purchase lookup happens first: an unknown id never
// triggers a provider call.
func (s *purchaseService) GetConvertedPurchase(ctx context.Context, purchaseID string, country string) (*domain.ConvertedPurchase, error) {
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase %s for conversion: %w", purchaseID, err)
	}

	quote, err := s.rateSource.GetRateForCountry(ctx, country, purchase.TransactionDate)
	if err != nil {
		// ErrExternalService / ErrInvalidDate pass through untouched so the
		// boundary can distinguish a provider fault from "no data".
		return nil, err
	}
	if quote == nil {
		return nil, fmt.Errorf(
			"%w: the purchase cannot be converted to the target currency: no exchange rate available for country '%s' within 6 months of transaction date %s",
			apperrors.ErrConversionUnavailable, country, purchase.TransactionDate.Format(time.DateOnly),
		)
	}

	convertedAmount := purchase.PurchaseAmount.Mul(quote.Rate).Round(2)

	return &domain.ConvertedPurchase{
		PurchaseID:      purchase.PurchaseID,
		Description:     purchase.Description,
		TransactionDate: purchase.TransactionDate,
		OriginalAmount:  purchase.PurchaseAmount,
		ExchangeRate:    quote.Rate,
		ConvertedAmount: convertedAmount,
		TargetCurrency:  country,
	}, nil
}
