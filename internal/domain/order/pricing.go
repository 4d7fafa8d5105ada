package order

import "github.com/shopspring/decimal"

// Unit prices and tax rate of the juice bar.
var (
	MangoPrice = decimal.RequireFromString("2.99")
	BerryPrice = decimal.RequireFromString("1.99")
	ApplePrice = decimal.RequireFromString("2.49")
	TaxRate    = decimal.RequireFromString("0.13")
)

// Quantities holds the number of bottles ordered per juice.
type Quantities struct {
	Mango int
	Berry int
	Apple int
}

// Quote is the priced breakdown of a set of quantities.
type Quote struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Price computes subtotal, tax and total for q. The values are exact;
// rounding is left to presentation.
func Price(q Quantities) Quote {
	subtotal := MangoPrice.Mul(decimal.NewFromInt(int64(q.Mango))).
		Add(BerryPrice.Mul(decimal.NewFromInt(int64(q.Berry)))).
		Add(ApplePrice.Mul(decimal.NewFromInt(int64(q.Apple))))
	tax := subtotal.Mul(TaxRate)

	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
