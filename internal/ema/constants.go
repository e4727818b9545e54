package ema

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/shopspring/decimal"
)

const (
	// DecayPeriod is the time constant of the exponential decay, in seconds.
	DecayPeriod = 600

	// DefaultPlaces is the number of decimal places alpha is evaluated to.
	DefaultPlaces = 100

	q96Bits    = 96
	outputExp  = 18
	guardDigit = 10
)

var (
	// invQ96 is 2^-96 written exactly as 5^96 * 10^-96.
	invQ96 = decimal.NewFromBigInt(math.BigPow(5, q96Bits), -q96Bits)

	// clampUpper and clampLower are 1 + 1/64 and 1 - 1/64.
	clampUpper = decimal.New(1015625, -6)
	clampLower = decimal.New(984375, -6)

	one = decimal.New(1, 0)
)
