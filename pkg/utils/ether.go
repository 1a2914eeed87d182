package utils

import (
	"math/big"

	"github.com/shopspring/decimal"
)

const weiDecimals = 18

// FormatEther renders a wei amount in ether, trimming trailing zeros ("0.01").
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -weiDecimals).String()
}

// FormatUnits renders an integer amount scaled down by the given number of decimals.
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}
