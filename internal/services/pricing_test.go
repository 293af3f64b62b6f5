package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSalePrice(t *testing.T) {
	tests := []struct {
		name   string
		hpp    string
		margin string
		want   string
	}{
		{"typical isp package", "300000", "30", "390000"},
		{"zero margin sells at cost", "150000", "0", "150000"},
		{"fractional margin rounds to 2 places", "99999", "12.5", "112498.88"},
		{"negative margin discounts below cost", "200000", "-10", "180000"},
		{"zero cost", "0", "45", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hpp := decimal.RequireFromString(tt.hpp)
			margin := decimal.RequireFromString(tt.margin)
			got := SalePrice(hpp, margin)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"SalePrice(%s, %s) = %s, want %s", tt.hpp, tt.margin, got, tt.want)
		})
	}
}

func TestSalePriceStable(t *testing.T) {
	hpp := decimal.RequireFromString("123456.78")
	margin := decimal.RequireFromString("17.5")
	first := SalePrice(hpp, margin)
	for i := 0; i < 10; i++ {
		assert.True(t, first.Equal(SalePrice(hpp, margin)))
	}
}
