package coldstart

import (
	"github.com/shopspring/decimal"
)

// meanPrecision is the number of decimal places kept when averaging durations
const meanPrecision = 16

var (
	secondsPerMillisecond = decimal.New(1, -3)        // 1/1000
	gbPerMB               = decimal.New(9765625, -10) // 1/1024 = 0.0009765625, exact
)

// Mean returns the arithmetic mean of values, or zero for an empty slice
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Sum(decimal.Zero, values...)
	return sum.DivRound(decimal.NewFromInt(int64(len(values))), meanPrecision)
}

// MonthlyCost prices the init time of coldStarts cold starts:
//
//	avgInitMs/1000 * memoryMB/1024 * pricePerGBSecond * coldStarts
//
// The result is exact (no rounding) and never negative.
func MonthlyCost(avgInitMs decimal.Decimal, memoryMB int32, coldStarts int, pricePerGBSecond decimal.Decimal) decimal.Decimal {
	if coldStarts <= 0 || memoryMB <= 0 || avgInitMs.IsNegative() || pricePerGBSecond.IsNegative() {
		return decimal.Zero
	}

	avgInitSeconds := avgInitMs.Mul(secondsPerMillisecond)
	gb := decimal.NewFromInt32(memoryMB).Mul(gbPerMB)

	return avgInitSeconds.
		Mul(gb).
		Mul(pricePerGBSecond).
		Mul(decimal.NewFromInt(int64(coldStarts)))
}
