package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/SscSPs/purchase_converter_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// validate is the shared validator instance for request DTOs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// minPurchaseAmount is the smallest accepted purchase amount.
var minPurchaseAmount = decimal.New(1, -2) // 0.01

// CreatePurchaseRequest defines the structure for recording a new purchase.
// TransactionDate is kept as a string so the date format can be validated
// explicitly rather than failing opaquely during JSON binding.
type CreatePurchaseRequest struct {
	Description     string          `json:"description" validate:"required,max=50"`
	TransactionDate string          `json:"transactionDate" validate:"required"`
	PurchaseAmount  decimal.Decimal `json:"purchaseAmount"`
}

// Validate checks the request against the purchase constraints and returns
// the parsed transaction date plus a field->message map of violations. The
// map is nil when the request is valid.
func (r CreatePurchaseRequest) Validate(now time.Time) (time.Time, map[string]string) {
	fieldErrors := make(map[string]string)

	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.StructField() {
				case "Description":
					if fe.Tag() == "max" {
						fieldErrors["description"] = "Description must not exceed 50 characters"
					} else {
						fieldErrors["description"] = "Description is required"
					}
				case "TransactionDate":
					fieldErrors["transactionDate"] = "Transaction date is required"
				}
			}
		}
	}

	// A whitespace-only description passes the required tag but is still blank.
	if _, seen := fieldErrors["description"]; !seen && strings.TrimSpace(r.Description) == "" {
		fieldErrors["description"] = "Description is required"
	}

	var txDate time.Time
	if _, seen := fieldErrors["transactionDate"]; !seen {
		parsed, err := time.Parse(time.DateOnly, r.TransactionDate)
		switch {
		case err != nil:
			fieldErrors["transactionDate"] = "Transaction date must be in YYYY-MM-DD format"
		case parsed.After(now):
			fieldErrors["transactionDate"] = "Transaction date must not be in the future"
		default:
			txDate = parsed
		}
	}

	switch {
	case r.PurchaseAmount.IsZero():
		fieldErrors["purchaseAmount"] = "Purchase amount is required"
	case r.PurchaseAmount.Sign() < 0:
		fieldErrors["purchaseAmount"] = "Purchase amount must be positive"
	case r.PurchaseAmount.LessThan(minPurchaseAmount):
		fieldErrors["purchaseAmount"] = "Purchase amount must be at least 0.01"
	}

	if len(fieldErrors) > 0 {
		return time.Time{}, fieldErrors
	}
	return txDate, nil
}

// PurchaseResponse defines the structure for API responses containing a
// stored purchase.
type PurchaseResponse struct {
	ID              string          `json:"id"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transactionDate"`
	PurchaseAmount  decimal.Decimal `json:"purchaseAmount"`
}

// ConvertedPurchaseResponse defines the structure for API responses
// containing a purchase converted into a target country's currency.
type ConvertedPurchaseResponse struct {
	ID              string          `json:"id"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transactionDate"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	TargetCurrency  string          `json:"targetCurrency"`
}

// ToPurchaseResponse converts a domain.Purchase to PurchaseResponse DTO
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:              p.PurchaseID,
		Description:     p.Description,
		TransactionDate: p.TransactionDate.Format(time.DateOnly),
		PurchaseAmount:  p.PurchaseAmount,
	}
}

// ToConvertedPurchaseResponse converts a domain.ConvertedPurchase to
// ConvertedPurchaseResponse DTO
func ToConvertedPurchaseResponse(cp *domain.ConvertedPurchase) ConvertedPurchaseResponse {
	return ConvertedPurchaseResponse{
		ID:              cp.PurchaseID,
		Description:     cp.Description,
		TransactionDate: cp.TransactionDate.Format(time.DateOnly),
		OriginalAmount:  cp.OriginalAmount,
		ExchangeRate:    cp.ExchangeRate,
		ConvertedAmount: cp.ConvertedAmount,
		TargetCurrency:  cp.TargetCurrency,
	}
}
