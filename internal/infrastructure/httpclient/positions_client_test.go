package httpclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePositionsResponse(t *testing.T) {
	body := []byte(`{
		"positions": [
			{
				"id": "aave-v3-1",
				"protocolName": "Aave V3",
				"canonicalProtocolName": "aave",
				"positionKind": "LENDING",
				"assetValue": "10000",
				"debtValue": "2000",
				"netValue": "8000",
				"supplyTokenList": [
					{"amount": "5.25", "asset": {"symbol": "ETH", "price": "1904.761904"}, "assetValue": "10000"}
				],
				"borrowTokenList": [
					{"amount": "2000", "asset": {"symbol": "USDC", "price": "1"}, "assetValue": "2000"}
				]
			},
			{
				"id": "lido-1",
				"protocolName": "Lido",
				"canonicalProtocolName": "lido",
				"positionKind": "STAKED",
				"assetValue": "5000.000000000001",
				"debtValue": "0",
				"netValue": "5000.000000000001",
				"description": "wstETH"
			}
		],
		"stats": {
			"totals": {
				"netTotal": "13000.000000000001",
				"totalDeposits": "15000.000000000001",
				"totalBorrows": "2000",
				"totalRewards": "0",
				"totalLocked": "0",
				"overallTotal": "13000.000000000001"
			},
			"canonicalProtocol": {
				"aave": {"totals": {"netTotal": "8000", "totalDeposits": "10000", "totalBorrows": "2000", "overallTotal": "8000"}}
			}
		}
	}`)

	parsed, err := decodePositionsResponse(body)
	require.NoError(t, err)

	require.Len(t, parsed.Positions, 2)
	aave := parsed.Positions[0]
	assert.Equal(t, "aave", aave.CanonicalProtocolName)
	assert.Equal(t, "8000", aave.NetValue.String())
	require.Len(t, aave.SupplyTokenList, 1)
	assert.Equal(t, "ETH", aave.SupplyTokenList[0].Asset.Symbol)
	assert.Equal(t, "5.25", aave.SupplyTokenList[0].Amount.String())

	// Decimal strings survive decoding without float drift.
	assert.Equal(t, "5000.000000000001", parsed.Positions[1].NetValue.String())
	assert.Equal(t, "13000.000000000001", parsed.Stats.Totals.OverallTotal.String())

	aaveStats, ok := parsed.Stats.CanonicalProtocol["aave"]
	require.True(t, ok)
	assert.Equal(t, "8000", aaveStats.Totals.OverallTotal.String())
}

func TestDecodePositionsResponseInvalidPayload(t *testing.T) {
	_, err := decodePositionsResponse([]byte(`{"positions": "nope"`))
	require.Error(t, err)
}
