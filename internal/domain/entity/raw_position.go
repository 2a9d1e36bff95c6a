package entity

import "github.com/shopspring/decimal"

// PositionKind tags the high-level shape of a raw position entry.
type PositionKind string

const (
	KindLending       PositionKind = "LENDING"
	KindLiquidityPool PositionKind = "LIQUIDITY_POOL"
	KindLocked        PositionKind = "LOCKED"
	KindStaked        PositionKind = "STAKED"
	KindFarming       PositionKind = "FARMING"
	KindVesting       PositionKind = "VESTING"
	KindDeposit       PositionKind = "DEPOSIT"
	KindRewards       PositionKind = "REWARDS"
)

// DetailType refines PositionKind for protocols that report several
// sub-positions under one kind.
type DetailType string

const (
	DetailLending DetailType = "LENDING"
	DetailLocked  DetailType = "LOCKED"
	DetailCommon  DetailType = "COMMON"
)

// RawAsset holds the token metadata attached to a raw token entry.
type RawAsset struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

// RawToken represents a single entry of a position's token bucket
// (supply, borrow or reward list).
type RawToken struct {
	Amount     decimal.Decimal `json:"amount"`
	Asset      RawAsset        `json:"asset"`
	AssetValue decimal.Decimal `json:"assetValue"`
}

// RawPosition represents one protocol instance as reported by the backend.
// All monetary fields are decimal strings on the wire.
type RawPosition struct {
	ID                    string          `json:"id"`
	ProtocolName          string          `json:"protocolName"`
	CanonicalProtocolName string          `json:"canonicalProtocolName"`
	ProtocolVersion       string          `json:"protocolVersion,omitempty"`
	Kind                  PositionKind    `json:"positionKind"`
	DetailType            DetailType      `json:"detailType,omitempty"`
	AssetValue            decimal.Decimal `json:"assetValue"`
	DebtValue             decimal.Decimal `json:"debtValue"`
	NetValue              decimal.Decimal `json:"netValue"`
	SupplyTokenList       []RawToken      `json:"supplyTokenList,omitempty"`
	BorrowTokenList       []RawToken      `json:"borrowTokenList,omitempty"`
	RewardTokenList       []RawToken      `json:"rewardTokenList,omitempty"`
	Description           string          `json:"description,omitempty"`
}

// IsLockedKind reports whether the position's value is not currently
// withdrawable (time-locked, vesting).
func (p RawPosition) IsLockedKind() bool {
	return p.Kind == KindLocked || p.Kind == KindVesting || p.DetailType == DetailLocked
}

// RawTotals mirrors the backend-computed totals record. The backend
// guarantees OverallTotal = NetTotal + TotalLocked at every level.
type RawTotals struct {
	NetTotal      decimal.Decimal `json:"netTotal"`
	TotalDeposits decimal.Decimal `json:"totalDeposits"`
	TotalBorrows  decimal.Decimal `json:"totalBorrows"`
	TotalRewards  decimal.Decimal `json:"totalRewards"`
	TotalLocked   decimal.Decimal `json:"totalLocked"`
	OverallTotal  decimal.Decimal `json:"overallTotal"`
}

// CanonicalProtocolStats holds the backend totals for one canonical protocol.
type CanonicalProtocolStats struct {
	Totals        RawTotals            `json:"totals"`
	TotalsByChain map[string]RawTotals `json:"totalsByChain,omitempty"`
}

// RawStats carries the aggregate stats of a position-list response.
type RawStats struct {
	Totals            RawTotals                         `json:"totals"`
	CanonicalProtocol map[string]CanonicalProtocolStats `json:"canonicalProtocol,omitempty"`
}

// RawPositionsResponse is the backend position-list payload for one wallet.
// It is an immutable input: received once per fetch and never mutated.
type RawPositionsResponse struct {
	Positions []RawPosition `json:"positions"`
	Stats     RawStats      `json:"stats"`
}
