package entity

import "github.com/shopspring/decimal"

// AmountItem represents a categorized token holding in a transformed position.
type AmountItem struct {
	Symbol string          `json:"symbol"`
	Amount decimal.Decimal `json:"amount"`
	Value  decimal.Decimal `json:"value"`
}

// StakeItem is an AmountItem with staking attributes. IsLp is set when the
// stake resolves from two or more simultaneous supply tokens of one raw
// position, in which case Underlying carries the per-token breakdown.
type StakeItem struct {
	AmountItem
	IsLocked   bool         `json:"isLocked"`
	IsLp       bool         `json:"isLp,omitempty"`
	Underlying []AmountItem `json:"underlying,omitempty"`
}

// PositionTotals mirrors the RawTotals shape, adjusted for token-preference
// filtering.
type PositionTotals struct {
	Total         decimal.Decimal `json:"total"`
	TotalLocked   decimal.Decimal `json:"totalLocked"`
	TotalDeposits decimal.Decimal `json:"totalDeposits"`
	TotalBorrows  decimal.Decimal `json:"totalBorrows"`
	TotalRewards  decimal.Decimal `json:"totalRewards"`
}

// TransformedPosition aggregates all raw positions of one canonical protocol
// into categorized item lists plus adjusted totals.
type TransformedPosition struct {
	CanonicalProtocolName string         `json:"canonicalProtocolName"`
	Deposits              []AmountItem   `json:"deposits,omitempty"`
	Borrows               []AmountItem   `json:"borrows,omitempty"`
	Rewards               []AmountItem   `json:"rewards,omitempty"`
	Stakes                []StakeItem    `json:"stakes,omitempty"`
	Pools                 []StakeItem    `json:"pools,omitempty"`
	Totals                PositionTotals `json:"totals"`
}

// IsEmpty reports whether the position has a zero adjusted total and no
// remaining categorized items. Empty positions are dropped from the result.
func (p TransformedPosition) IsEmpty() bool {
	return p.Totals.Total.IsZero() &&
		len(p.Deposits) == 0 && len(p.Borrows) == 0 && len(p.Rewards) == 0 &&
		len(p.Stakes) == 0 && len(p.Pools) == 0
}

// TransformedPositionsResult is the output of the position transformer.
// Positions is an ordered association list keyed by canonical protocol name,
// sorted by adjusted total descending with name-ascending tie-break; map
// iteration order is never relied on.
type TransformedPositionsResult struct {
	Positions []TransformedPosition `json:"positions"`
	Totals    PositionTotals        `json:"totals"`
}

// Protocol returns the transformed position for a canonical protocol name.
func (r *TransformedPositionsResult) Protocol(name string) (TransformedPosition, bool) {
	for _, p := range r.Positions {
		if p.CanonicalProtocolName == name {
			return p, true
		}
	}
	return TransformedPosition{}, false
}
