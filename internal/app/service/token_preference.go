package service

import "strings"

// preferredUnderlying maps a wrapped or derivative token symbol to the
// canonical asset it represents. Positions held in a non-preferred variant
// double-count value the wallet already reports for the underlying asset,
// so their value is excluded from the transformed totals.
var preferredUnderlying = map[string]string{
	"steth":  "ETH",
	"wsteth": "ETH",
	"reth":   "ETH",
	"cbeth":  "ETH",
	"weth":   "ETH",
	"wbtc":   "BTC",
	"sdai":   "DAI",
	"wmatic": "MATIC",
	"wbnb":   "BNB",
	"wavax":  "AVAX",
}

// IsTokenPreferenceFiltered reports whether a token symbol (or a position's
// free-text description) names a non-preferred wrapped variant.
func IsTokenPreferenceFiltered(symbolOrDescription string) bool {
	_, ok := preferredUnderlying[strings.ToLower(strings.TrimSpace(symbolOrDescription))]
	return ok
}

// PreferredUnderlyingSymbol returns the canonical asset symbol a
// non-preferred variant resolves to, and whether the input was a variant.
func PreferredUnderlyingSymbol(symbol string) (string, bool) {
	underlying, ok := preferredUnderlying[strings.ToLower(strings.TrimSpace(symbol))]
	return underlying, ok
}
