// Package fixedpoint implements the integer arithmetic used for all
// consensus-relevant values. Probabilities are represented as fixed-point
// integers on Scale (10000 = 100.00%); floating point is never used because
// it is not bit-reproducible across executors.
package fixedpoint

import (
	"errors"
	"math"
	"math/bits"
)

// Scale is the fixed-point denominator. A value of 7500 means 75.00%.
const Scale uint64 = 10000

// Scoring constants. score delta = ScoreNumerator / (ScoreUnit + distance*ScoreSensitivity),
// floor-divided: 100 at distance 0, exactly 0 at distance Scale, and
// monotonically non-increasing in between.
const (
	ScoreNumerator   uint64 = 10000
	ScoreUnit        uint64 = 100
	ScoreSensitivity uint64 = 1
)

// ErrOverflow is returned when a result exceeds the 64-bit integer width.
// Saturation is deliberately not performed anywhere.
var ErrOverflow = errors.New("arithmetic overflow")

// CheckedAdd returns a+b, or ErrOverflow if the sum wraps.
func CheckedAdd(a, b uint64) (uint64, error) {
	if b > math.MaxUint64-a {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// CheckedMul returns a*b, or ErrOverflow if the product exceeds 64 bits.
func CheckedMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}

// Distance returns |a - b|.
func Distance(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

// ScoreDelta returns the reputation reward for a submission whose value landed
// at the given distance from the post-update aggregate.
func ScoreDelta(distance uint64) uint64 {
	return ScoreNumerator / (ScoreUnit + distance*ScoreSensitivity)
}

// WeightedUpdate folds one weighted submission into a running aggregate:
//
//	newAggregate = floor((aggregate*totalWeight + value*weight) / (totalWeight+weight))
//
// Intermediate products are computed in 128 bits so they cannot overflow
// before the division. Rounding is truncation toward zero; ties are not
// rounded up. When both weights are zero the aggregate is returned unchanged.
// The new total weight overflowing 64 bits is an error.
func WeightedUpdate(aggregate, totalWeight, value, weight uint64) (newAggregate, newTotalWeight uint64, err error) {
	newTotalWeight, err = CheckedAdd(totalWeight, weight)
	if err != nil {
		return 0, 0, err
	}
	if newTotalWeight == 0 {
		return aggregate, 0, nil
	}

	oldHi, oldLo := bits.Mul64(aggregate, totalWeight)
	addHi, addLo := bits.Mul64(value, weight)
	lo, carry := bits.Add64(oldLo, addLo, 0)
	hi := oldHi + addHi + carry

	// With aggregate and value bounded by Scale the quotient always fits in
	// 64 bits; the guard keeps bits.Div64 from panicking on bad inputs.
	if hi >= newTotalWeight {
		return 0, 0, ErrOverflow
	}
	newAggregate, _ = bits.Div64(hi, lo, newTotalWeight)
	return newAggregate, newTotalWeight, nil
}
