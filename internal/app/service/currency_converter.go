package service

import (
	"strings"

	"positions_tracker/internal/app/port"

	"github.com/shopspring/decimal"
)

// fixedRateConverter implements port.CurrencyConverter over a static
// quote-currency rate table. Unknown currencies convert at identity.
type fixedRateConverter struct {
	rates  map[string]decimal.Decimal
	logger port.Logger
}

// NewFixedRateConverter creates a converter from a currency -> rate mapping
// of decimal strings, typically loaded from config. Malformed rates are
// skipped with a warning.
func NewFixedRateConverter(rates map[string]string, logger port.Logger) port.CurrencyConverter {
	parsed := make(map[string]decimal.Decimal, len(rates))
	for currency, rate := range rates {
		d, err := decimal.NewFromString(rate)
		if err != nil {
			logger.Warn("Skipping malformed conversion rate", "currency", currency, "rate", rate, "error", err)
			continue
		}
		parsed[strings.ToLower(currency)] = d
	}
	return &fixedRateConverter{rates: parsed, logger: logger}
}

// Convert implements port.CurrencyConverter.
func (c *fixedRateConverter) Convert(amount decimal.Decimal, currency string) decimal.Decimal {
	rate, ok := c.rates[strings.ToLower(currency)]
	if !ok {
		return amount
	}
	return amount.Mul(rate)
}
