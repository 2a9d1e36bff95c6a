package port

import "github.com/shopspring/decimal"

// CurrencyConverter defines the interface for converting a quote-currency
// amount into the requested native currency. Implementations are opaque to
// the transform pipeline.
type CurrencyConverter interface {
	Convert(amount decimal.Decimal, currency string) decimal.Decimal
}
