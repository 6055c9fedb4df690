package planner

import (
	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/temporal"
)

// Options configures one call to Plan.
type Options struct {
	// MaxDepth bounds task/goal/multigoal decomposition depth. Zero means
	// "use the default" (see DefaultMaxDepth).
	MaxDepth int

	// Verbose is carried through from the CLI, config and API layers; the
	// engine does not read it and collects no decision log.
	Verbose bool

	// PlanEntityRequirements are entity requirements the caller imposes on
	// the whole plan, checked against the initial state before search
	// begins: a precondition on running the plan at all, not a property
	// of wherever it ends up.
	PlanEntityRequirements []fact.EntityRequirement

	// Resolution names the STN's level of detail. Zero means Microsecond.
	// The engine does not rescale durations or time-points by it: action
	// metadata ticks enter the STN exactly as the domain returns them.
	Resolution temporal.Resolution
}

// DefaultMaxDepth bounds decomposition depth when Options.MaxDepth is zero.
const DefaultMaxDepth = 100

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) resolution() temporal.Resolution {
	if o.Resolution == 0 {
		return temporal.Microsecond
	}
	return o.Resolution
}
