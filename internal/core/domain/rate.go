package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateQuote is a single historical exchange rate as returned by the Treasury
// rates API. It is a transient value: quotes are never persisted or cached.
type RateQuote struct {
	EffectiveDate time.Time       `json:"effectiveDate"`
	Country       string          `json:"country"`
	Currency      string          `json:"currency"`
	Rate          decimal.Decimal `json:"rate"` // Provider-supplied precision
}

// ConvertedPurchase is the result of converting a purchase into a target
// country's currency. ConvertedAmount always carries exactly 2 fractional
// digits regardless of the rate's precision.
type ConvertedPurchase struct {
	PurchaseID      string          `json:"purchaseID"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"` // USD, 2dp
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"` // 2dp, half-up
	TargetCurrency  string          `json:"targetCurrency"`  // Country name as requested
}
