// Package todo defines the refinement elements a planner works through:
// actions, commands, tasks, unigoals and multigoals, plus the planner
// metadata (duration, entity requirements, temporal bounds) attached to
// them and the Allen-algebra-driven merge used when two metadata-bearing
// elements are combined.
package todo

import (
	"fmt"

	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/temporal"
)

// Metadata is attached to any refinement element: its duration, the
// entities it requires, and optional concrete temporal bounds.
type Metadata struct {
	Duration         temporal.Ticks
	HasDuration      bool
	RequiresEntities []fact.EntityRequirement
	StartTime        *temporal.Ticks
	EndTime          *temporal.Ticks
}

// Validate checks the invariant: if both StartTime and EndTime are set,
// EndTime - StartTime must be at least Duration.
func (m Metadata) Validate() error {
	if m.StartTime != nil && m.EndTime != nil {
		span := *m.EndTime - *m.StartTime
		if m.HasDuration && span < m.Duration {
			return fmt.Errorf("metadata: end_time - start_time (%d) is shorter than duration (%d)", span, m.Duration)
		}
	}
	return nil
}

// Span projects the metadata's temporal bounds into an Allen Span. When
// EndTime is not given but StartTime and Duration are, End is derived as
// StartTime + Duration rather than left unknown.
func (m Metadata) Span() temporal.Span {
	end := m.EndTime
	if end == nil && m.HasDuration && m.StartTime != nil {
		derived := *m.StartTime + m.Duration
		end = &derived
	}
	return temporal.Span{Start: m.StartTime, End: end}
}

// UnigoalMetadata is Metadata plus the predicate name the goal method
// handles. Predicate must be non-empty.
type UnigoalMetadata struct {
	Metadata
	Predicate string
}

// MergeMetadata composes two sibling metadata values using their Allen
// relation: the merged temporal span follows the Allen merge table, the
// merged duration is always the second operand's (the temporally later
// element in composition order dominates), and entity requirements are
// unioned with de-duplication.
func MergeMetadata(a, b Metadata) Metadata {
	rel := temporal.Classify(a.Span(), b.Span())
	mergedSpan := temporal.MergeSpans(rel, a.Span(), b.Span())

	merged := Metadata{
		Duration:         b.Duration,
		HasDuration:      b.HasDuration,
		RequiresEntities: fact.DedupRequirements(append(append([]fact.EntityRequirement(nil), a.RequiresEntities...), b.RequiresEntities...)),
		StartTime:        mergedSpan.Start,
		EndTime:          mergedSpan.End,
	}
	return merged
}
