package service

import (
	"context"
	"fmt"
	"time"

	"positions_tracker/internal/app/port"
	"positions_tracker/internal/domain/entity"
	"positions_tracker/internal/pkg/metrics"
	"positions_tracker/internal/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const defaultCacheTime = 5 * time.Minute

// CacheEntry is one cached snapshot of a wallet's transformed positions.
// Entries are replaced wholesale; Data is never mutated in place.
type CacheEntry struct {
	Data          *entity.TransformedPositionsResult
	LastFetchedAt time.Time
	CacheTime     time.Duration
	ErrorInfo     *entity.PositionsError
}

// Fresh reports whether the snapshot is within its TTL.
func (e *CacheEntry) Fresh(now time.Time) bool {
	return e.Data != nil && now.Sub(e.LastFetchedAt) < e.CacheTime
}

// positionsStoreImpl implements port.PositionsStore. Concurrent fetches for
// the same (address, currency) key are coalesced through singleflight, so
// two in-flight refreshes can never interleave their writes for one key.
type positionsStoreImpl struct {
	provider  port.PositionsProvider
	converter port.CurrencyConverter
	logger    port.Logger
	cache     *gocache.Cache
	group     singleflight.Group
	cacheTime time.Duration
}

// NewPositionsStore creates a new instance of positionsStoreImpl.
func NewPositionsStore(
	provider port.PositionsProvider,
	converter port.CurrencyConverter,
	logger port.Logger,
	cacheTime time.Duration,
	cleanupInterval time.Duration,
) port.PositionsStore {
	if cacheTime <= 0 {
		cacheTime = defaultCacheTime
	}
	// Entries are stored without expiration: a stale snapshot must survive
	// its TTL so it keeps backing GetBalance after a failed refresh.
	return &positionsStoreImpl{
		provider:  provider,
		converter: converter,
		logger:    logger,
		cache:     gocache.New(gocache.NoExpiration, cleanupInterval),
		cacheTime: cacheTime,
	}
}

// Fetch implements port.PositionsStore. On refresh failure it returns the
// stale snapshot, if any, together with the error.
func (s *positionsStoreImpl) Fetch(ctx context.Context, params entity.FetchParams, force bool) (*entity.TransformedPositionsResult, error) {
	key := params.CacheKey()

	if !force {
		if entry, ok := s.entry(key); ok && entry.Fresh(time.Now()) {
			metrics.CacheHits.Inc()
			s.logger.Debug("Returning fresh cached positions", "key", key)
			return entry.Data, nil
		}
	}
	metrics.CacheMisses.Inc()

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.refresh(ctx, params)
	})
	if err != nil {
		if entry, ok := s.entry(key); ok && entry.Data != nil {
			s.logger.Warn("Refresh failed, serving stale positions", "key", key, "error", err)
			return entry.Data, err
		}
		return nil, err
	}
	return v.(*entity.TransformedPositionsResult), nil
}

// refresh fetches, transforms and stores a new snapshot for one key.
func (s *positionsStoreImpl) refresh(ctx context.Context, params entity.FetchParams) (*entity.TransformedPositionsResult, error) {
	key := params.CacheKey()
	metrics.FetchTotal.Inc()

	raw, err := s.provider.GetPositions(ctx, params.Address, params.Currency)
	if err != nil {
		metrics.FetchErrors.Inc()
		s.recordFailure(params, err)
		return nil, fmt.Errorf("failed to fetch positions for %s: %w", key, err)
	}

	data := TransformPositions(raw, TransformParams{
		Currency: params.Currency,
		Convert:  s.convertFunc(params.Currency),
	})

	s.cache.Set(key, &CacheEntry{
		Data:          data,
		LastFetchedAt: time.Now(),
		CacheTime:     s.cacheTime,
	}, gocache.NoExpiration)

	s.logger.Info("Positions snapshot refreshed",
		"key", key, "protocol_count", len(data.Positions), "total", data.Totals.Total.String())
	return data, nil
}

// recordFailure stores the fetch error while keeping the previous snapshot
// intact. A new entry is written instead of mutating the old one.
func (s *positionsStoreImpl) recordFailure(params entity.FetchParams, err error) {
	key := params.CacheKey()
	failed := &CacheEntry{
		CacheTime: s.cacheTime,
		ErrorInfo: &entity.PositionsError{
			WalletAddress: params.Address,
			Currency:      params.Currency,
			Message:       err.Error(),
			OccurredAt:    time.Now(),
		},
	}
	if prev, ok := s.entry(key); ok {
		failed.Data = prev.Data
		failed.LastFetchedAt = prev.LastFetchedAt
	}
	s.cache.Set(key, failed, gocache.NoExpiration)
}

// Positions implements port.PositionsStore.
func (s *positionsStoreImpl) Positions(address string, currency string) (*entity.TransformedPositionsResult, bool) {
	entry, ok := s.entry(entity.FetchParams{Address: address, Currency: currency}.CacheKey())
	if !ok || entry.Data == nil {
		return nil, false
	}
	return entry.Data, true
}

// GetBalance implements port.PositionsStore. Locked value is excluded from
// the spendable balance and the result is floored at zero; this is a
// user-visible guarantee, not an internal clamp.
func (s *positionsStoreImpl) GetBalance(address string, currency string) string {
	entry, ok := s.entry(entity.FetchParams{Address: address, Currency: currency}.CacheKey())
	if !ok || entry.Data == nil {
		return "0"
	}
	spendable := entry.Data.Totals.Total.Sub(entry.Data.Totals.TotalLocked)
	return utils.FloorZero(spendable).String()
}

// LastError implements port.PositionsStore.
func (s *positionsStoreImpl) LastError(address string, currency string) *entity.PositionsError {
	entry, ok := s.entry(entity.FetchParams{Address: address, Currency: currency}.CacheKey())
	if !ok {
		return nil
	}
	return entry.ErrorInfo
}

func (s *positionsStoreImpl) entry(key string) (*CacheEntry, bool) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	entry, ok := v.(*CacheEntry)
	return entry, ok
}

func (s *positionsStoreImpl) convertFunc(currency string) func(decimal.Decimal) decimal.Decimal {
	if s.converter == nil {
		return nil
	}
	return func(amount decimal.Decimal) decimal.Decimal {
		return s.converter.Convert(amount, currency)
	}
}
