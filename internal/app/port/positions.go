package port

import (
	"context"

	"positions_tracker/internal/domain/entity"
)

// PositionsProvider defines the interface for fetching a wallet's raw
// position-list payload from the backend API.
type PositionsProvider interface {
	GetPositions(ctx context.Context, address string, currency string) (*entity.RawPositionsResponse, error)
}

// PositionsStore defines the interface for the transformed-positions cache
// keyed by (address, currency).
type PositionsStore interface {
	// Fetch retrieves and caches a transformed snapshot for the given params.
	// A fresh cached snapshot is returned as-is unless force is set. On fetch
	// failure the previous snapshot is preserved and the error recorded.
	Fetch(ctx context.Context, params entity.FetchParams, force bool) (*entity.TransformedPositionsResult, error)

	// Positions returns the last completed snapshot for the given key, if any.
	Positions(address string, currency string) (*entity.TransformedPositionsResult, bool)

	// GetBalance derives the spendable wallet balance from the cached
	// snapshot: max(0, total - totalLocked) as a decimal string. Returns "0"
	// when no snapshot exists. Never blocks on a fetch.
	GetBalance(address string, currency string) string

	// LastError returns the error recorded by the most recent failed fetch
	// for the given key, if any.
	LastError(address string, currency string) *entity.PositionsError
}
