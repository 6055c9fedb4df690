package planner

import (
	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/graph"
	"github.com/aria-htn/planner/internal/temporal"
)

// CommandResult is one emitted command, with the temporal and entity
// bindings it executed under.
type CommandResult struct {
	Name              string
	Args              map[string]fact.Value
	StartTime         *temporal.Ticks
	EndTime           *temporal.Ticks
	Duration          temporal.Ticks
	HasDuration       bool
	AssignedEntityIDs []string
}

// Outcome is what a successful Plan call returns: the ordered command
// sequence plus everything needed to inspect how it was derived.
type Outcome struct {
	Commands   []CommandResult
	FinalState *fact.State
	FinalSTN   *temporal.STN
	Graph      *graph.Graph
}
