package repositories

import (
	"context"

	"github.com/SscSPs/purchase_converter_app/internal/core/domain"
)

// PurchaseReader defines read operations for purchase data
type PurchaseReader interface {
	// FindPurchaseByID retrieves a specific purchase by its identifier.
	// Returns apperrors.ErrNotFound when no such purchase exists.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)
}

// PurchaseWriter defines write operations for purchase data
type PurchaseWriter interface {
	// SavePurchase persists a new purchase.
	SavePurchase(ctx context.Context, purchase domain.Purchase) error
}

// PurchaseRepositoryFacade combines all purchase-related repository interfaces.
// Purchases are immutable after creation, so there is no update or delete.
type PurchaseRepositoryFacade interface {
	PurchaseReader
	PurchaseWriter
}
