package temporal

// Resolution is the number of base microseconds represented by one STN
// tick at a given level of detail.
type Resolution int64

const (
	Microsecond Resolution = 1
	Millisecond Resolution = 1_000
	Second      Resolution = 1_000_000
	Minute      Resolution = 60_000_000
	Hour        Resolution = 3_600_000_000
	Day         Resolution = 86_400_000_000
)

// RescaleInterval converts iv (expressed in rOld-ticks) into rNew-ticks,
// rounding the lower bound toward zero and the upper bound away from zero.
// For non-negative bounds the rescaled interval still contains every
// instant the original did; a negative bound moves the other way (a lower
// bound of -7s becomes 0 minutes), so containment is not kept there.
// ±Inf bounds pass through unchanged.
func RescaleInterval(iv Interval, rOld, rNew Resolution) Interval {
	return Interval{
		Lo: rescaleBound(iv.Lo, rOld, rNew, false),
		Hi: rescaleBound(iv.Hi, rOld, rNew, true),
	}
}

// RescaleTicks converts a single value from rOld-ticks to rNew-ticks,
// rounding away from zero (roundAwayFromZero=true) or toward zero
// (roundAwayFromZero=false).
func RescaleTicks(v Ticks, rOld, rNew Resolution, roundAwayFromZero bool) Ticks {
	return rescaleBound(v, rOld, rNew, roundAwayFromZero)
}

func rescaleBound(v Ticks, rOld, rNew Resolution, roundAwayFromZero bool) Ticks {
	if v == PosInf || v == NegInf {
		return v
	}
	num := v * int64(rOld)
	den := int64(rNew)
	q := num / den // Go truncates integer division toward zero.
	r := num % den
	if r == 0 || !roundAwayFromZero {
		return q
	}
	if num < 0 {
		return q - 1
	}
	return q + 1
}
