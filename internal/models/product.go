package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. HPP is the cost ("harga pokok penjualan");
// Price is always derived from HPP and Margin on read, never stored.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	HPP         decimal.Decimal `json:"hpp"`
	Margin      decimal.Decimal `json:"margin"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
}
