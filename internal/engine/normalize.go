package engine

import (
	"github.com/shopspring/decimal"
)

// Charm endings treated as already intentional by the normalizer.
var (
	endingNinetyNine = decimal.NewFromFloat(0.99)
	endingNinetyFive = decimal.NewFromFloat(0.95)
)

// Normalize enforces the psychological pricing policy on a single price.
// Prices whose fractional part is already exactly .99, .95 or .00 are left
// untouched; everything else is rewritten to floor(price) + 0.99.
func Normalize(price decimal.Decimal) decimal.Decimal {
	frac := price.Sub(price.Floor())
	if frac.Equal(endingNinetyNine) || frac.Equal(endingNinetyFive) || frac.IsZero() {
		return price
	}
	return price.Floor().Add(endingNinetyNine)
}
