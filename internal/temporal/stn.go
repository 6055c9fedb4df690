package temporal

import "fmt"

// ErrInconsistent is returned when adding a constraint would make the
// network infeasible (empty intersection, or a negative cycle once
// propagated).
var ErrInconsistent = fmt.Errorf("temporal network is inconsistent")

// STN is a Simple Temporal Network: a set of time-points and a map from
// ordered pairs (u, v) to the interval [lo, hi] meaning "v - u in [lo, hi]".
// STN values are treated as immutable by the planner: it Clone()s before
// adding constraints, so backtracking can restore a prior STN by swapping
// the reference.
type STN struct {
	points      map[string]struct{}
	constraints map[string]map[string]Interval
}

// New returns an empty STN.
func New() *STN {
	return &STN{
		points:      make(map[string]struct{}),
		constraints: make(map[string]map[string]Interval),
	}
}

// Clone returns a copy of every time-point and every constraint row,
// sharing no mutable state with the receiver; mutating the clone never
// affects the original.
func (s *STN) Clone() *STN {
	next := &STN{
		points:      make(map[string]struct{}, len(s.points)),
		constraints: make(map[string]map[string]Interval, len(s.constraints)),
	}
	for p := range s.points {
		next.points[p] = struct{}{}
	}
	for u, row := range s.constraints {
		cp := make(map[string]Interval, len(row))
		for v, iv := range row {
			cp[v] = iv
		}
		next.constraints[u] = cp
	}
	return next
}

// AddTimePoint registers a time-point id (idempotent).
func (s *STN) AddTimePoint(id string) {
	s.points[id] = struct{}{}
}

// AddConstraint installs [lo, hi] for (u, v) — meaning v - u in [lo, hi] —
// and its reverse [-hi, -lo] for (v, u), tightening by intersection if a
// constraint already exists for either ordered pair. Returns ErrInconsistent
// if the resulting intersection is empty or the network becomes globally
// inconsistent (a negative cycle) after propagation.
func (s *STN) AddConstraint(u, v string, iv Interval) error {
	s.AddTimePoint(u)
	s.AddTimePoint(v)

	fwd := iv
	if existing, ok := s.get(u, v); ok {
		tightened, ok := Tighten(existing, fwd)
		if !ok {
			return ErrInconsistent
		}
		fwd = tightened
	}
	bwd := fwd.Negate()

	s.set(u, v, fwd)
	s.set(v, u, bwd)

	if !s.Consistent() {
		return ErrInconsistent
	}
	return nil
}

func (s *STN) get(u, v string) (Interval, bool) {
	row, ok := s.constraints[u]
	if !ok {
		return Interval{}, false
	}
	iv, ok := row[v]
	return iv, ok
}

func (s *STN) set(u, v string, iv Interval) {
	row, ok := s.constraints[u]
	if !ok {
		row = make(map[string]Interval)
		s.constraints[u] = row
	}
	row[v] = iv
}

// GetConstraint returns the currently stored [lo, hi] for (u, v), if any.
func (s *STN) GetConstraint(u, v string) (Interval, bool) {
	return s.get(u, v)
}

// distances computes all-pairs shortest paths (Floyd-Warshall) over the
// distance graph derived from the stored constraints: edge(u,v) = hi(u,v).
func (s *STN) distances() map[string]map[string]Ticks {
	ids := make([]string, 0, len(s.points))
	for p := range s.points {
		ids = append(ids, p)
	}

	d := make(map[string]map[string]Ticks, len(ids))
	for _, u := range ids {
		row := make(map[string]Ticks, len(ids))
		for _, v := range ids {
			if u == v {
				row[v] = 0
			} else {
				row[v] = PosInf
			}
		}
		d[u] = row
	}
	for u, row := range s.constraints {
		for v, iv := range row {
			if iv.Hi < d[u][v] {
				d[u][v] = iv.Hi
			}
		}
	}

	for _, k := range ids {
		for _, i := range ids {
			dik := d[i][k]
			if dik == PosInf {
				continue
			}
			for _, j := range ids {
				dkj := d[k][j]
				if dkj == PosInf {
					continue
				}
				sum := addSaturating(dik, dkj)
				if sum < d[i][j] {
					d[i][j] = sum
				}
			}
		}
	}
	return d
}

// Consistent reports whether the network's distance graph has no negative
// cycle, i.e. d(u,u) >= 0 for every time-point u.
func (s *STN) Consistent() bool {
	d := s.distances()
	for u := range s.points {
		if d[u][u] < 0 {
			return false
		}
	}
	return true
}

// TimePoints returns every registered time-point id.
func (s *STN) TimePoints() []string {
	out := make([]string, 0, len(s.points))
	for p := range s.points {
		out = append(out, p)
	}
	return out
}
