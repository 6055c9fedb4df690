package fact

import "testing"

func TestSetFactGetFact(t *testing.T) {
	s0 := New()
	s1 := s0.SetFact("west_fox", "count", Int(1))

	if _, ok := s0.GetFact("west_fox", "count"); ok {
		t.Fatalf("s0 must remain unmodified after SetFact")
	}
	v, ok := s1.GetFact("west_fox", "count")
	if !ok {
		t.Fatalf("expected fact to be present on s1")
	}
	if got, _ := v.AsInt(); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
}

func TestMatches(t *testing.T) {
	s := New().SetFact("pos", "a", String("b"))

	if !s.Matches("pos", "a", String("b")) {
		t.Fatalf("expected match")
	}
	if s.Matches("pos", "a", String("table")) {
		t.Fatalf("expected no match for different value")
	}
	if s.Matches("pos", "missing", String("b")) {
		t.Fatalf("expected no match for missing subject")
	}
}

func TestValueEqualityIsTagged(t *testing.T) {
	if Int(1).Equal(Float(1)) {
		t.Fatalf("an Int and a Float must never compare equal, even with the same magnitude")
	}
	if !Int(5).Equal(Int(5)) {
		t.Fatalf("equal ints must compare equal")
	}
}

func TestToTriplesUnordered(t *testing.T) {
	s := New().
		SetFact("p1", "a", Int(1)).
		SetFact("p1", "b", Int(2)).
		SetFact("p2", "a", Bool(true))

	triples := s.ToTriples()
	if len(triples) != 3 {
		t.Fatalf("expected 3 triples, got %d", len(triples))
	}
}

func TestEntityCapabilities(t *testing.T) {
	s0 := New()
	s1 := s0.SetEntityCapability("agent-1", "agent", "cooking", Bool(true))

	if s0.HasEntity("agent-1") {
		t.Fatalf("s0 must remain unmodified")
	}
	if !s1.HasEntity("agent-1") {
		t.Fatalf("expected entity to be declared on s1")
	}
	v, ok := s1.GetEntityCapability("agent-1", "cooking")
	if !ok {
		t.Fatalf("expected capability to be present")
	}
	if got, _ := v.AsBool(); !got {
		t.Fatalf("expected true")
	}
}

func TestEntityRequirementSatisfied(t *testing.T) {
	s := New().SetEntityCapability("agent-1", "agent", "cleaning", Bool(true))

	req := EntityRequirement{Type: "agent", Capabilities: []string{"cooking"}}
	if req.Satisfied(s) {
		t.Fatalf("expected requirement miss: entity lacks 'cooking'")
	}

	s2 := s.SetEntityCapability("agent-1", "agent", "cooking", Bool(true))
	if !req.Satisfied(s2) {
		t.Fatalf("expected requirement to be satisfied")
	}
}

func TestMatchEntitiesResolvesIDsOrReportsMiss(t *testing.T) {
	s := New().SetEntityCapability("agent-1", "agent", "cleaning", Bool(true))

	req := EntityRequirement{Type: "agent", Capabilities: []string{"cooking"}}
	if _, ok := MatchEntities(s, []EntityRequirement{req}); ok {
		t.Fatalf("expected MatchEntities to report a miss")
	}

	s2 := s.SetEntityCapability("agent-1", "agent", "cooking", Bool(true))
	ids, ok := MatchEntities(s2, []EntityRequirement{req})
	if !ok || len(ids) != 1 || ids[0] != "agent-1" {
		t.Fatalf("expected [agent-1], got %v ok=%v", ids, ok)
	}
}

func TestMatchEntitiesIsDeterministicAcrossRuns(t *testing.T) {
	s := New().
		SetEntityCapability("agent-2", "agent", "cooking", Bool(true)).
		SetEntityCapability("agent-1", "agent", "cooking", Bool(true))

	req := EntityRequirement{Type: "agent", Capabilities: []string{"cooking"}}
	for i := 0; i < 5; i++ {
		ids, ok := MatchEntities(s, []EntityRequirement{req})
		if !ok || len(ids) != 1 || ids[0] != "agent-1" {
			t.Fatalf("expected a stable match of agent-1 on every run, got %v ok=%v (iteration %d)", ids, ok, i)
		}
	}
}

func TestDedupRequirements(t *testing.T) {
	reqs := []EntityRequirement{
		{Type: "agent", Capabilities: []string{"b", "a"}},
		{Type: "agent", Capabilities: []string{"a", "b"}},
		{Type: "vehicle", Capabilities: []string{"a"}},
	}
	out := DedupRequirements(reqs)
	if len(out) != 2 {
		t.Fatalf("expected 2 deduped requirements, got %d", len(out))
	}
}
