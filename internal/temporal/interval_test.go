package temporal

import "testing"

func TestIntervalEmpty(t *testing.T) {
	if (Interval{Lo: 5, Hi: 3}).Empty() != true {
		t.Fatalf("expected [5,3] to be empty")
	}
	if (Interval{Lo: 3, Hi: 5}).Empty() != false {
		t.Fatalf("expected [3,5] to be non-empty")
	}
}

func TestIntervalNegate(t *testing.T) {
	got := Interval{Lo: 3, Hi: 5}.Negate()
	if got != (Interval{Lo: -5, Hi: -3}) {
		t.Fatalf("expected [-5,-3], got %+v", got)
	}
}

func TestIntervalNegateInfinities(t *testing.T) {
	got := Interval{Lo: NegInf, Hi: PosInf}.Negate()
	if got != (Interval{Lo: NegInf, Hi: PosInf}) {
		t.Fatalf("expected unbounded interval to negate to itself, got %+v", got)
	}
}

func TestTightenIntersection(t *testing.T) {
	got, ok := Tighten(Interval{Lo: 0, Hi: 10}, Interval{Lo: 5, Hi: 20})
	if !ok {
		t.Fatalf("expected tighten to succeed")
	}
	if got != (Interval{Lo: 5, Hi: 10}) {
		t.Fatalf("expected [5,10], got %+v", got)
	}
}

func TestTightenEmptyIntersection(t *testing.T) {
	if _, ok := Tighten(Interval{Lo: 0, Hi: 5}, Interval{Lo: 10, Hi: 20}); ok {
		t.Fatalf("expected tighten to fail on disjoint intervals")
	}
}
