package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase represents a recorded USD purchase transaction.
// PurchaseAmount is always stored rounded to 2 fractional digits (half-up);
// NewPurchaseAmount is the single place that rounding happens.
type Purchase struct {
	PurchaseID      string          `json:"purchaseID"` // Primary Key (UUID)
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"` // Calendar date, never in the future
	PurchaseAmount  decimal.Decimal `json:"purchaseAmount"`  // USD, 2dp
	AuditFields
}

// NewPurchaseAmount normalizes a monetary amount to exactly 2 fractional
// digits using round-half-up.
func NewPurchaseAmount(amount decimal.Decimal) decimal.Decimal {
	// decimal.Round rounds half away from zero, which is half-up for the
	// positive amounts this domain allows.
	return amount.Round(2)
}
