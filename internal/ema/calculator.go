package ema

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Licredity/licredity-v1-oracle/internal/model"
)

// ClampSide reports which bound of the clamp band was applied.
type ClampSide string

const (
	// ClampNone means the decoded price was already inside the band.
	ClampNone ClampSide = "none"
	// ClampUpper means the price was cut to last*65/64.
	ClampUpper ClampSide = "upper"
	// ClampLower means the price was raised to last*63/64.
	ClampLower ClampSide = "lower"
)

// Input holds the values of a single EMA update.
type Input struct {
	LastPrice    *big.Int
	NowSqrtPrice *big.Int
	TimeDiff     int64
}

// Result captures every intermediate value of an update.
type Result struct {
	Alpha        decimal.Decimal
	NowPrice     decimal.Decimal
	ClampedPrice decimal.Decimal
	Clamp        ClampSide
	NewPrice     decimal.Decimal
	Scaled       decimal.Decimal
	Value        *big.Int
}

// Config controls calculator precision.
type Config struct {
	// Places is the number of decimal places alpha is evaluated to.
	// Values below DefaultPlaces are raised to it.
	Places int32
}

// Calculator computes EMA price updates.
type Calculator struct {
	cfg    Config
	logger *zap.Logger
}

// NewCalculator builds a calculator. A nil logger is replaced with a no-op logger.
func NewCalculator(cfg Config, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Places < DefaultPlaces {
		cfg.Places = DefaultPlaces
	}
	return &Calculator{cfg: cfg, logger: logger}
}

// Update computes the EMA update with default precision.
func Update(in Input) (Result, error) {
	return NewCalculator(Config{}, nil).Update(in)
}

// Update decodes the sqrt price, clamps it around the last price, blends the
// two with alpha and rescales the blend to an 18-decimal integer.
func (c *Calculator) Update(in Input) (Result, error) {
	if in.LastPrice == nil || in.NowSqrtPrice == nil {
		return Result{}, fmt.Errorf("last price and sqrt price are required")
	}

	alpha, err := Alpha(in.TimeDiff, c.cfg.Places)
	if err != nil {
		return Result{}, fmt.Errorf("compute alpha: %w", err)
	}

	last := decimal.NewFromBigInt(in.LastPrice, 0)
	nowPrice := DecodeSqrtPrice(in.NowSqrtPrice)
	clamped, side := Clamp(nowPrice, last)
	newPrice := Blend(alpha, clamped, last)
	scaled := Rescale(newPrice)
	value := scaled.BigInt()

	c.logger.Debug("ema update",
		zap.String("last_price", in.LastPrice.String()),
		zap.String("now_sqrt_price", hexutil.EncodeBig(in.NowSqrtPrice)),
		zap.Int64("time_diff", in.TimeDiff),
		zap.String("alpha", alpha.StringFixed(20)),
		zap.String("now_price", nowPrice.String()),
		zap.String("clamp", string(side)),
		zap.String("new_price", newPrice.String()),
		zap.String("result", value.String()),
	)

	return Result{
		Alpha:        alpha,
		NowPrice:     nowPrice,
		ClampedPrice: clamped,
		Clamp:        side,
		NewPrice:     newPrice,
		Scaled:       scaled,
		Value:        value,
	}, nil
}

// DecodeSqrtPrice returns sqrtPrice^2 / 2^96.
func DecodeSqrtPrice(sqrtPrice *big.Int) decimal.Decimal {
	sq := new(big.Int).Mul(sqrtPrice, sqrtPrice)
	return decimal.NewFromBigInt(sq, 0).Mul(invQ96)
}

// Clamp bounds price to [last*63/64, last*65/64]. The upper bound is checked
// first.
func Clamp(price, last decimal.Decimal) (decimal.Decimal, ClampSide) {
	upper := last.Mul(clampUpper)
	if price.GreaterThan(upper) {
		return upper, ClampUpper
	}
	lower := last.Mul(clampLower)
	if price.LessThan(lower) {
		return lower, ClampLower
	}
	return price, ClampNone
}

// Blend returns alpha*now + (1-alpha)*last.
func Blend(alpha, now, last decimal.Decimal) decimal.Decimal {
	return alpha.Mul(now).Add(one.Sub(alpha).Mul(last))
}

// Rescale converts a Q96 price into an 18-decimal fixed-point value.
func Rescale(price decimal.Decimal) decimal.Decimal {
	return price.Mul(invQ96).Shift(outputExp)
}

// Record converts the result into its JSON representation.
func (r Result) Record(in Input) model.PriceUpdate {
	return model.PriceUpdate{
		LastPrice:    bigString(in.LastPrice),
		NowSqrtPrice: bigString(in.NowSqrtPrice),
		TimeDiff:     in.TimeDiff,
		Alpha:        r.Alpha.String(),
		NowPrice:     r.NowPrice.String(),
		ClampedPrice: r.ClampedPrice.String(),
		Clamp:        string(r.Clamp),
		NewPrice:     r.NewPrice.String(),
		Result:       bigString(r.Value),
	}
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
