package domain_test

import (
	"testing"

	"github.com/SscSPs/purchase_converter_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewPurchaseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already two decimals", "23.45", "23.45"},
		{"whole number", "100", "100.00"},
		{"half rounds up", "10.005", "10.01"},
		{"below half rounds down", "10.004", "10.00"},
		{"above half rounds up", "10.006", "10.01"},
		{"many fractional digits", "19.991234", "19.99"},
		{"smallest accepted amount", "0.01", "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NewPurchaseAmount(decimal.RequireFromString(tt.input))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}
