package services

import "github.com/shopspring/decimal"

// ProposedItem is one line of a project proposal at gate-evaluation
// time, carrying the catalog price as fetched in that moment.
type ProposedItem struct {
	ProductID       int
	NegotiatedPrice decimal.Decimal
	CatalogPrice    decimal.Decimal
	Quantity        int
}

// NeedsApproval reports whether a proposal requires manager sign-off:
// true iff at least one item undercuts its catalog price. Matching the
// catalog price exactly is not a discount.
func NeedsApproval(items []ProposedItem) bool {
	for _, it := range items {
		if it.NegotiatedPrice.LessThan(it.CatalogPrice) {
			return true
		}
	}
	return false
}
