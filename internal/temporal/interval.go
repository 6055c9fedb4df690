package temporal

// Interval is a closed [Lo, Hi] bound, with Lo/Hi possibly ±Inf.
type Interval struct {
	Lo Ticks
	Hi Ticks
}

// Empty reports whether the interval is infeasible (Lo > Hi).
func (iv Interval) Empty() bool { return iv.Lo > iv.Hi }

// Negate returns the interval describing the reverse direction: if iv
// describes v-u, Negate describes u-v.
func (iv Interval) Negate() Interval {
	return Interval{Lo: negate(iv.Hi), Hi: negate(iv.Lo)}
}

// Tighten intersects two intervals, returning (result, ok). ok is false
// when the intersection is empty.
func Tighten(a, b Interval) (Interval, bool) {
	result := Interval{Lo: maxTicks(a.Lo, b.Lo), Hi: minTicks(a.Hi, b.Hi)}
	if result.Empty() {
		return Interval{}, false
	}
	return result, true
}
