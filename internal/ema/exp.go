package ema

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/shopspring/decimal"
)

// Alpha returns exp(-timeDiff/DecayPeriod) to the given number of decimal places.
// A zero timeDiff yields exactly one.
func Alpha(timeDiff int64, places int32) (decimal.Decimal, error) {
	if timeDiff == 0 {
		return one, nil
	}
	if places < DefaultPlaces {
		places = DefaultPlaces
	}
	work := places + guardDigit
	x := decimal.NewFromInt(-timeDiff).DivRound(decimal.NewFromInt(DecayPeriod), work)

	val, err := exp(x, work)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return val.Round(places), nil
}

// exp evaluates e^x with a Taylor series on x/2^k and squares the result k
// times. k is chosen so that |x/2^k| <= 1.
func exp(x decimal.Decimal, places int32) (decimal.Decimal, error) {
	k := reductionSteps(x)
	work := places + int32(k) + guardDigit

	reduced := x
	if k > 0 {
		// x/2^k == x * 5^k * 10^-k, exact in decimal.
		reduced = x.Mul(decimal.NewFromBigInt(math.BigPow(5, int64(k)), -int32(k)))
	}

	val, err := reduced.ExpTaylor(work)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("exp taylor: %w", err)
	}
	// For large positive x the squares keep every integer digit, so cost grows
	// with the size of e^x.
	for i := 0; i < k; i++ {
		val = val.Mul(val).Round(work)
	}
	return val.Round(places), nil
}

func reductionSteps(x decimal.Decimal) int {
	abs := x.Abs()
	if abs.Cmp(one) <= 0 {
		return 0
	}
	ceil := abs.Ceil().BigInt()
	// 2^(bitlen-1) <= ceil < 2^bitlen, so ceil/2^bitlen < 1.
	if ceil.Cmp(new(big.Int).Lsh(big.NewInt(1), uint(ceil.BitLen()-1))) == 0 {
		return ceil.BitLen() - 1
	}
	return ceil.BitLen()
}
