package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTokenPreferenceFiltered(t *testing.T) {
	assert.True(t, IsTokenPreferenceFiltered("wstETH"))
	assert.True(t, IsTokenPreferenceFiltered("stETH"))
	assert.True(t, IsTokenPreferenceFiltered("WBTC"))
	assert.True(t, IsTokenPreferenceFiltered(" weth "))

	assert.False(t, IsTokenPreferenceFiltered("ETH"))
	assert.False(t, IsTokenPreferenceFiltered("LDO"))
	assert.False(t, IsTokenPreferenceFiltered(""))
}

func TestPreferredUnderlyingSymbol(t *testing.T) {
	underlying, ok := PreferredUnderlyingSymbol("wstETH")
	assert.True(t, ok)
	assert.Equal(t, "ETH", underlying)

	underlying, ok = PreferredUnderlyingSymbol("sDAI")
	assert.True(t, ok)
	assert.Equal(t, "DAI", underlying)

	_, ok = PreferredUnderlyingSymbol("USDC")
	assert.False(t, ok)
}
