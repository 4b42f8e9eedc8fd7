package client

import (
	"github.com/minimart/storefront/app/dto"
	"github.com/shopspring/decimal"
)

// TaxRate is applied to the cart subtotal.
var TaxRate = decimal.RequireFromString("0.08")

// Summary holds cart totals at full precision. The server never computes
// these.
type Summary struct {
	ItemCount int
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// Summarize totals items. Nothing is rounded; use Rounded for display.
func Summarize(items []dto.CartItem) Summary {
	s := Summary{Subtotal: decimal.Zero}
	for _, it := range items {
		s.ItemCount += it.Quantity
		line := decimal.NewFromFloat(it.Product.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		s.Subtotal = s.Subtotal.Add(line)
	}
	s.Tax = s.Subtotal.Mul(TaxRate)
	s.Total = s.Subtotal.Add(s.Tax)
	return s
}

// Rounded returns the summary with every amount rounded to cents.
func (s Summary) Rounded() Summary {
	return Summary{
		ItemCount: s.ItemCount,
		Subtotal:  s.Subtotal.Round(2),
		Tax:       s.Tax.Round(2),
		Total:     s.Total.Round(2),
	}
}
