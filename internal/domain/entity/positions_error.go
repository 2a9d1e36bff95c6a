package entity

import "time"

// PositionsError represents an error that occurred while fetching or
// refreshing the positions of a wallet. It is recorded on the cache entry
// alongside any stale data that keeps backing queries.
type PositionsError struct {
	WalletAddress string    `json:"walletAddress"`
	Currency      string    `json:"currency"`
	Message       string    `json:"message"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func (e *PositionsError) Error() string {
	return e.Message
}
