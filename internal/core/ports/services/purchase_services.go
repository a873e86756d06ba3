package services

import (
	"context"
	"time"

	"github.com/SscSPs/purchase_converter_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PurchaseReaderSvc defines read operations on purchases.
type PurchaseReaderSvc interface {
	// GetPurchaseByID retrieves a purchase by its identifier.
	GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)
}

// PurchaseWriterSvc defines the purchase creation operation.
type PurchaseWriterSvc interface {
	// CreatePurchase records a new purchase. The amount is normalized to
	// exactly 2 fractional digits (half-up) before persisting.
	CreatePurchase(ctx context.Context, description string, transactionDate time.Time, amount decimal.Decimal, creatorClientID string) (*domain.Purchase, error)
}

// PurchaseConverterSvc defines the conversion operation.
type PurchaseConverterSvc interface {
	// GetConvertedPurchase looks up a purchase and converts its amount into
	// the target country's currency using the most recent applicable rate.
	GetConvertedPurchase(ctx context.Context, purchaseID string, country string) (*domain.ConvertedPurchase, error)
}

// PurchaseSvcFacade combines all purchase-related service interfaces.
type PurchaseSvcFacade interface {
	PurchaseReaderSvc
	PurchaseWriterSvc
	PurchaseConverterSvc
}
