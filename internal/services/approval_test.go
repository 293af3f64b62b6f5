package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(negotiated, catalog string) ProposedItem {
	return ProposedItem{
		NegotiatedPrice: decimal.RequireFromString(negotiated),
		CatalogPrice:    decimal.RequireFromString(catalog),
		Quantity:        1,
	}
}

func TestNeedsApproval(t *testing.T) {
	tests := []struct {
		name  string
		items []ProposedItem
		want  bool
	}{
		{"all at catalog price", []ProposedItem{item("390000", "390000"), item("150000", "150000")}, false},
		{"all above catalog price", []ProposedItem{item("400000", "390000")}, false},
		{"one discounted item is enough", []ProposedItem{item("390000", "390000"), item("149999.99", "150000")}, true},
		{"every item discounted", []ProposedItem{item("1", "2"), item("3", "4")}, true},
		{"exact match is not a discount", []ProposedItem{item("390000.00", "390000")}, false},
		{"no items", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsApproval(tt.items))
		})
	}
}
