package service

import (
	"sort"
	"strings"

	"positions_tracker/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// TransformParams carries the per-request inputs of the position transformer.
// Convert is the injected native-currency conversion collaborator; a nil
// Convert is treated as identity.
type TransformParams struct {
	Currency string
	Convert  func(amount decimal.Decimal) decimal.Decimal
}

// protocolAccumulator collects the per-canonical-protocol state built up
// while walking the raw position list.
type protocolAccumulator struct {
	position       entity.TransformedPosition
	filteredValue  decimal.Decimal
	filteredLocked decimal.Decimal

	// Item-level sums, kept for the degraded path used when the backend
	// stats carry no entry for this canonical protocol.
	itemDeposits decimal.Decimal
	itemBorrows  decimal.Decimal
	itemRewards  decimal.Decimal
	itemStaked   decimal.Decimal
	itemLocked   decimal.Decimal
}

// TransformPositions converts a raw backend position-list response into the
// categorized, protocol-grouped representation consumed by the store and the
// API. It is a pure function: deterministic for identical inputs, no side
// effects, single pass over the input plus a final sort.
//
// Totals precedence: backend per-protocol stats are trusted when present and
// adjusted for token-preference filtering; item-level summation is used only
// when the canonical-protocol stats entry is absent.
func TransformPositions(raw *entity.RawPositionsResponse, params TransformParams) *entity.TransformedPositionsResult {
	convert := params.Convert
	if convert == nil {
		convert = func(d decimal.Decimal) decimal.Decimal { return d }
	}

	accs := make(map[string]*protocolAccumulator)
	var order []string

	for i := range raw.Positions {
		pos := &raw.Positions[i]
		name := pos.CanonicalProtocolName
		if name == "" {
			name = strings.ToLower(pos.ProtocolName)
		}
		acc := accs[name]
		if acc == nil {
			acc = &protocolAccumulator{position: entity.TransformedPosition{CanonicalProtocolName: name}}
			accs[name] = acc
			order = append(order, name)
		}

		locked := pos.IsLockedKind()

		// A description naming a non-preferred wrapped variant marks the
		// whole position as filtered; its net value is excluded wholesale.
		if IsTokenPreferenceFiltered(pos.Description) {
			acc.filteredValue = acc.filteredValue.Add(pos.NetValue)
			if locked {
				acc.filteredLocked = acc.filteredLocked.Add(pos.NetValue)
			}
			continue
		}

		acc.addSupplyTokens(pos, locked, convert)
		acc.addBorrowTokens(pos, convert)
		acc.addRewardTokens(pos, locked, convert)
	}

	stats := raw.Stats.CanonicalProtocol
	grandFiltered := decimal.Zero
	grandFilteredLocked := decimal.Zero

	positions := make([]entity.TransformedPosition, 0, len(order))
	for _, name := range order {
		acc := accs[name]
		grandFiltered = grandFiltered.Add(acc.filteredValue)
		grandFilteredLocked = grandFilteredLocked.Add(acc.filteredLocked)

		p := acc.position
		if st, ok := stats[name]; ok {
			p.Totals = entity.PositionTotals{
				Total:         st.Totals.OverallTotal.Sub(acc.filteredValue),
				TotalLocked:   st.Totals.TotalLocked.Sub(acc.filteredLocked),
				TotalDeposits: st.Totals.TotalDeposits,
				TotalBorrows:  st.Totals.TotalBorrows,
				TotalRewards:  st.Totals.TotalRewards,
			}
		} else {
			// Degraded path: the item sums already exclude filtered items,
			// so no further adjustment applies.
			p.Totals = entity.PositionTotals{
				Total:         acc.itemDeposits.Add(acc.itemStaked).Add(acc.itemRewards).Sub(acc.itemBorrows),
				TotalLocked:   acc.itemLocked,
				TotalDeposits: acc.itemDeposits,
				TotalBorrows:  acc.itemBorrows,
				TotalRewards:  acc.itemRewards,
			}
		}

		// Protocols fully consumed by filtering are omitted, not reported
		// with a zero (or negative) total.
		if p.IsEmpty() {
			continue
		}
		p.Totals = convertTotals(p.Totals, convert)
		positions = append(positions, p)
	}

	sort.SliceStable(positions, func(i, j int) bool {
		if !positions[i].Totals.Total.Equal(positions[j].Totals.Total) {
			return positions[i].Totals.Total.GreaterThan(positions[j].Totals.Total)
		}
		return positions[i].CanonicalProtocolName < positions[j].CanonicalProtocolName
	})

	grand := entity.PositionTotals{
		Total:         raw.Stats.Totals.OverallTotal.Sub(grandFiltered),
		TotalLocked:   raw.Stats.Totals.TotalLocked.Sub(grandFilteredLocked),
		TotalDeposits: raw.Stats.Totals.TotalDeposits,
		TotalBorrows:  raw.Stats.Totals.TotalBorrows,
		TotalRewards:  raw.Stats.Totals.TotalRewards,
	}

	return &entity.TransformedPositionsResult{
		Positions: positions,
		Totals:    convertTotals(grand, convert),
	}
}

// addSupplyTokens buckets the retained supply tokens of one raw position
// into deposits, stakes or pools. Non-preferred wrapped tokens are filtered
// at the item level: their value is excluded while preferred siblings of the
// same position are kept.
func (acc *protocolAccumulator) addSupplyTokens(pos *entity.RawPosition, locked bool, convert func(decimal.Decimal) decimal.Decimal) {
	var retained []entity.RawToken
	for _, tok := range pos.SupplyTokenList {
		if IsTokenPreferenceFiltered(tok.Asset.Symbol) {
			acc.filteredValue = acc.filteredValue.Add(tok.AssetValue)
			if locked {
				acc.filteredLocked = acc.filteredLocked.Add(tok.AssetValue)
			}
			continue
		}
		retained = append(retained, tok)
	}
	if len(retained) == 0 {
		return
	}

	switch {
	case pos.Kind == entity.KindLiquidityPool:
		acc.position.Pools = append(acc.position.Pools, makeStakeItem(retained, locked, convert))
		for _, tok := range retained {
			acc.itemDeposits = acc.itemDeposits.Add(tok.AssetValue)
		}
	case locked || pos.Kind == entity.KindStaked || pos.Kind == entity.KindFarming:
		acc.position.Stakes = append(acc.position.Stakes, makeStakeItem(retained, locked, convert))
		for _, tok := range retained {
			acc.itemStaked = acc.itemStaked.Add(tok.AssetValue)
			if locked {
				acc.itemLocked = acc.itemLocked.Add(tok.AssetValue)
			}
		}
	default:
		for _, tok := range retained {
			acc.position.Deposits = append(acc.position.Deposits, makeAmountItem(tok, convert))
			acc.itemDeposits = acc.itemDeposits.Add(tok.AssetValue)
		}
	}
}

func (acc *protocolAccumulator) addBorrowTokens(pos *entity.RawPosition, convert func(decimal.Decimal) decimal.Decimal) {
	for _, tok := range pos.BorrowTokenList {
		acc.position.Borrows = append(acc.position.Borrows, makeAmountItem(tok, convert))
		acc.itemBorrows = acc.itemBorrows.Add(tok.AssetValue)
	}
}

func (acc *protocolAccumulator) addRewardTokens(pos *entity.RawPosition, locked bool, convert func(decimal.Decimal) decimal.Decimal) {
	for _, tok := range pos.RewardTokenList {
		if IsTokenPreferenceFiltered(tok.Asset.Symbol) {
			acc.filteredValue = acc.filteredValue.Add(tok.AssetValue)
			if locked {
				acc.filteredLocked = acc.filteredLocked.Add(tok.AssetValue)
			}
			continue
		}
		acc.position.Rewards = append(acc.position.Rewards, makeAmountItem(tok, convert))
		acc.itemRewards = acc.itemRewards.Add(tok.AssetValue)
	}
}

func makeAmountItem(tok entity.RawToken, convert func(decimal.Decimal) decimal.Decimal) entity.AmountItem {
	return entity.AmountItem{
		Symbol: tok.Asset.Symbol,
		Amount: tok.Amount,
		Value:  convert(tok.AssetValue),
	}
}

// makeStakeItem builds a stake or pool entry from the retained supply tokens
// of one raw position. Two or more simultaneous tokens make an LP stake with
// a combined symbol and an underlying breakdown.
func makeStakeItem(tokens []entity.RawToken, locked bool, convert func(decimal.Decimal) decimal.Decimal) entity.StakeItem {
	if len(tokens) == 1 {
		return entity.StakeItem{
			AmountItem: makeAmountItem(tokens[0], convert),
			IsLocked:   locked,
		}
	}

	symbols := make([]string, 0, len(tokens))
	underlying := make([]entity.AmountItem, 0, len(tokens))
	value := decimal.Zero
	for _, tok := range tokens {
		symbols = append(symbols, tok.Asset.Symbol)
		underlying = append(underlying, makeAmountItem(tok, convert))
		value = value.Add(tok.AssetValue)
	}
	// Quantities of heterogeneous tokens do not add up; the combined entry
	// carries value only, Underlying holds the per-token amounts.
	return entity.StakeItem{
		AmountItem: entity.AmountItem{
			Symbol: strings.Join(symbols, "/"),
			Amount: decimal.Zero,
			Value:  convert(value),
		},
		IsLocked:   locked,
		IsLp:       true,
		Underlying: underlying,
	}
}

func convertTotals(t entity.PositionTotals, convert func(decimal.Decimal) decimal.Decimal) entity.PositionTotals {
	return entity.PositionTotals{
		Total:         convert(t.Total),
		TotalLocked:   convert(t.TotalLocked),
		TotalDeposits: convert(t.TotalDeposits),
		TotalBorrows:  convert(t.TotalBorrows),
		TotalRewards:  convert(t.TotalRewards),
	}
}
