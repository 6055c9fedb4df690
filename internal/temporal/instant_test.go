package temporal

import "testing"

func TestParseInstantRequiresOffset(t *testing.T) {
	if _, err := ParseInstant("2026-07-30T10:00:00"); err == nil {
		t.Fatalf("expected error for instant missing offset")
	}
}

func TestParseInstantRoundTrip(t *testing.T) {
	cases := []string{
		"2026-07-30T10:00:00Z",
		"2026-07-30T10:03:00Z",
		"2026-07-30T10:00:00.500000Z",
	}
	for _, in := range cases {
		ticks, err := ParseInstant(in)
		if err != nil {
			t.Fatalf("ParseInstant(%q) unexpected error: %v", in, err)
		}
		out := FormatInstant(ticks)
		again, err := ParseInstant(out)
		if err != nil {
			t.Fatalf("round-tripped instant %q failed to parse: %v", out, err)
		}
		if again != ticks {
			t.Fatalf("round trip for %q: got %d via %q, want %d", in, again, out, ticks)
		}
	}
}

func TestParseInstantOffsetExample(t *testing.T) {
	start, err := ParseInstant("2026-07-30T10:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ParseInstant("2026-07-30T10:03:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second-start != 3*60_000_000 {
		t.Fatalf("expected 3-minute gap in micros, got %d", second-start)
	}
}
