package ema

import (
	"fmt"
	"math/big"
	"strings"
)

// ArgError marks a malformed or missing command line argument.
type ArgError struct {
	Msg string
}

func (e *ArgError) Error() string {
	return e.Msg
}

func argErrorf(format string, args ...interface{}) error {
	return &ArgError{Msg: fmt.Sprintf(format, args...)}
}

// ParseInput parses last_price, now_sqrt_price and time_diff as base-10 integers.
func ParseInput(args []string) (Input, error) {
	if len(args) != 3 {
		return Input{}, argErrorf("expected 3 arguments (last_price now_sqrt_price time_diff), got %d", len(args))
	}

	lastPrice, err := parseInt("last_price", args[0])
	if err != nil {
		return Input{}, err
	}
	sqrtPrice, err := parseInt("now_sqrt_price", args[1])
	if err != nil {
		return Input{}, err
	}
	timeDiff, err := parseInt("time_diff", args[2])
	if err != nil {
		return Input{}, err
	}
	if !timeDiff.IsInt64() {
		return Input{}, argErrorf("time_diff out of range: %s", strings.TrimSpace(args[2]))
	}

	return Input{
		LastPrice:    lastPrice,
		NowSqrtPrice: sqrtPrice,
		TimeDiff:     timeDiff.Int64(),
	}, nil
}

func parseInt(name, input string) (*big.Int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, argErrorf("invalid %s: empty value", name)
	}
	val, ok := new(big.Int).SetString(input, 10)
	if !ok {
		return nil, argErrorf("invalid %s: %q", name, input)
	}
	return val, nil
}
