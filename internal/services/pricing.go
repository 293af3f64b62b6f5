package services

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// SalePrice computes a catalog price from cost and margin percent:
// price = hpp * (1 + margin/100), at two-digit currency scale.
// Inputs are not validated here; negative or extreme margins simply
// produce negative or extreme prices.
func SalePrice(hpp, margin decimal.Decimal) decimal.Decimal {
	return hpp.Mul(decimal.NewFromInt(1).Add(margin.Div(hundred))).Round(2)
}
