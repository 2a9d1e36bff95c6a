package entity

// Wallet represents a tracked wallet address.
type Wallet struct {
	Address string `json:"address"`
}

// FetchParams identifies one positions snapshot: a wallet address and the
// quote currency its values are denominated in.
type FetchParams struct {
	Address  string
	Currency string
}

// CacheKey returns the store key for these params.
func (p FetchParams) CacheKey() string {
	return p.Address + "-" + p.Currency
}
