package utils

import "github.com/shopspring/decimal"

// FloorZero returns d, floored at zero. Used for user-visible balances that
// must never be negative.
func FloorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
