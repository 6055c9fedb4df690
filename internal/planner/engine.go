// Package planner implements the depth-first, backtracking HTN search
// engine: it dispatches a pending todo list against a domain, mutating a
// working state and an STN as it goes, and records every refinement
// attempt in a solution graph.
package planner

import (
	"fmt"
	"time"

	"github.com/aria-htn/planner/internal/blacklist"
	"github.com/aria-htn/planner/internal/domain"
	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/graph"
	"github.com/aria-htn/planner/internal/temporal"
	"github.com/aria-htn/planner/internal/todo"
)

// Engine runs planning attempts against a fixed domain, accumulating
// stats across calls the way a long-lived planning service would.
type Engine struct {
	Domain *domain.Domain
	Stats  Stats
}

// NewEngine returns an engine bound to the given domain.
func NewEngine(d *domain.Domain) *Engine {
	return &Engine{Domain: d}
}

// Plan searches for a sequence of commands that satisfies every todo in
// todos, starting from initial.
func (e *Engine) Plan(initial *fact.State, todos []todo.Todo, opts Options) (*Outcome, *Error) {
	start := time.Now()
	e.Stats.recordAttempt()

	outcome, planErr := e.plan(initial, todos, opts)
	if planErr != nil {
		e.Stats.recordFailure(time.Since(start))
		return nil, planErr
	}
	e.Stats.recordSuccess(float64(opts.maxDepth()), float64(len(outcome.Commands)), time.Since(start))
	return outcome, nil
}

type pendingItem struct {
	Todo     todo.Todo
	ParentID string
	IsRoot   bool
}

type failure struct {
	kind  ErrorKind
	trace []string
}

func (e *Engine) plan(initial *fact.State, todos []todo.Todo, opts Options) (*Outcome, *Error) {
	for _, req := range opts.PlanEntityRequirements {
		if !req.Satisfied(initial) {
			return nil, &Error{Kind: ErrEntityRequirementUnmet, Message: fmt.Sprintf("plan-level requirement unmet: %+v", req)}
		}
	}

	g := graph.New()
	bl := blacklist.New()
	stn := temporal.New()

	pending := make([]pendingItem, 0, len(todos))
	for _, td := range todos {
		pending = append(pending, pendingItem{Todo: td, IsRoot: true})
	}

	finalState, finalSTN, _, ok, fail := e.run(initial, stn, g, bl, pending, 0, opts)
	if !ok {
		return nil, &Error{Kind: fail.kind, Message: "search exhausted all alternatives", Trace: fail.trace}
	}
	if !finalSTN.Consistent() {
		return nil, &Error{Kind: ErrTemporalInconsistent, Message: "final STN is inconsistent"}
	}

	commands := make([]CommandResult, 0)
	for _, n := range g.ClosePlan() {
		cr := CommandResult{
			Name:        n.Info.Name,
			Args:        n.Info.Args,
			StartTime:   n.StartTime,
			EndTime:     n.EndTime,
			HasDuration: n.HasDuration,
		}
		if n.Duration != nil {
			cr.Duration = *n.Duration
		}
		if n.StateSnapshot != nil && len(n.RequiresEntities) > 0 {
			if ids, ok := fact.MatchEntities(n.StateSnapshot, n.RequiresEntities); ok {
				cr.AssignedEntityIDs = ids
			}
		}
		commands = append(commands, cr)
	}

	return &Outcome{
		Commands:   commands,
		FinalState: finalState,
		FinalSTN:   finalSTN,
		Graph:      g,
	}, nil
}

// run dispatches the head of pending, recursing on the remainder. It
// returns the resulting state/STN/blacklist and ok=true on success, or
// ok=false with a failure describing why every alternative was
// exhausted. On success the returned blacklist carries every
// command/method blacklisted along the way; once a method choice point
// below is exhausted, the blacklist it reports upward is the one it was
// entered with, so entries learned inside that subtree do not reach the
// sibling alternatives the caller tries next.
func (e *Engine) run(
	state *fact.State,
	stn *temporal.STN,
	g *graph.Graph,
	bl *blacklist.Blacklist,
	pending []pendingItem,
	depth int,
	opts Options,
) (*fact.State, *temporal.STN, *blacklist.Blacklist, bool, failure) {
	if len(pending) == 0 {
		return state, stn, bl, true, failure{}
	}

	head := pending[0]
	rest := pending[1:]

	switch head.Todo.Kind {
	case todo.KindAction, todo.KindCommand:
		return e.runCommand(state, stn, g, bl, head, rest, depth, opts)
	case todo.KindTask:
		methods := e.Domain.TaskMethods(head.Todo.Name)
		names := make([]string, len(methods))
		for i, m := range methods {
			names[i] = m.Name
		}
		return e.runMethodKind(state, stn, g, bl, head, rest, depth, opts, graph.KindTask, names,
			func(methodIdx int, st *fact.State) ([]todo.Todo, error) {
				return methods[methodIdx].Fn(st, head.Todo.Args)
			},
		)
	case todo.KindUnigoal:
		if state.Matches(head.Todo.Unigoal.Predicate, head.Todo.Unigoal.Subject, head.Todo.Unigoal.Value) {
			n := g.NewNode(graph.KindGoal, head.Todo, nil, head.IsRoot)
			if !head.IsRoot {
				_ = g.Link(head.ParentID, n.ID)
			}
			_ = g.SetStatus(n.ID, graph.Closed)
			return e.run(state, stn, g, bl, rest, depth, opts)
		}
		methods := e.Domain.UnigoalMethods(head.Todo.Unigoal.Predicate)
		names := make([]string, len(methods))
		for i, m := range methods {
			names[i] = m.Name
		}
		return e.runMethodKind(state, stn, g, bl, head, rest, depth, opts, graph.KindGoal, names,
			func(methodIdx int, st *fact.State) ([]todo.Todo, error) {
				u := head.Todo.Unigoal
				return methods[methodIdx].Fn(st, u.Subject, u.Value)
			},
		)
	case todo.KindMultigoal:
		methods := e.Domain.MultigoalMethods()
		names := make([]string, len(methods))
		for i, m := range methods {
			names[i] = m.Name
		}
		return e.runMethodKind(state, stn, g, bl, head, rest, depth, opts, graph.KindMultigoal, names,
			func(methodIdx int, st *fact.State) ([]todo.Todo, error) {
				return methods[methodIdx].Fn(st, head.Todo.Multigoal)
			},
		)
	default:
		return state, stn, bl, false, failure{kind: ErrDomainMisconfigured, trace: []string{}}
	}
}

func (e *Engine) runCommand(
	state *fact.State,
	stn *temporal.STN,
	g *graph.Graph,
	bl *blacklist.Blacklist,
	head pendingItem,
	rest []pendingItem,
	depth int,
	opts Options,
) (*fact.State, *temporal.STN, *blacklist.Blacklist, bool, failure) {
	name, args := head.Todo.Name, head.Todo.Args

	n := g.NewNode(graph.KindAction, head.Todo, nil, head.IsRoot)
	if !head.IsRoot {
		_ = g.Link(head.ParentID, n.ID)
	}

	if bl.IsCommandBlacklisted(name, args) {
		_ = g.SetStatus(n.ID, graph.Failed)
		return state, stn, bl, false, failure{kind: ErrPreconditionFailed, trace: []string{n.ID}}
	}

	var fn domain.ActionFunc
	var ok bool
	if head.Todo.Kind == todo.KindAction {
		fn, ok = e.Domain.Action(name)
	} else {
		fn, ok = e.Domain.Command(name)
	}
	if !ok {
		_ = g.SetStatus(n.ID, graph.Failed)
		return state, stn, bl, false, failure{kind: ErrDomainMisconfigured, trace: []string{n.ID}}
	}

	newState, meta, err := fn(state, args)
	if err != nil {
		_ = g.SetStatus(n.ID, graph.Failed)
		return state, stn, bl.WithBlacklistedCommand(name, args), false, failure{kind: ErrPreconditionFailed, trace: []string{n.ID}}
	}

	if len(meta.RequiresEntities) > 0 {
		if _, ok := fact.MatchEntities(newState, meta.RequiresEntities); !ok {
			_ = g.SetStatus(n.ID, graph.Failed)
			return state, stn, bl, false, failure{kind: ErrEntityRequirementUnmet, trace: []string{n.ID}}
		}
	}

	newSTN := stn.Clone()
	startPoint := "t-" + n.ID + "-start"
	endPoint := "t-" + n.ID + "-end"
	newSTN.AddTimePoint(startPoint)
	newSTN.AddTimePoint(endPoint)

	lo, hi := temporal.Ticks(0), temporal.PosInf
	switch {
	case meta.StartTime != nil && meta.EndTime != nil:
		span := *meta.EndTime - *meta.StartTime
		lo, hi = span, span
	case meta.HasDuration:
		lo, hi = meta.Duration, meta.Duration
	}
	if err := newSTN.AddConstraint(startPoint, endPoint, temporal.Interval{Lo: lo, Hi: hi}); err != nil {
		_ = g.SetStatus(n.ID, graph.Failed)
		return state, stn, bl, false, failure{kind: ErrTemporalInconsistent, trace: []string{n.ID}}
	}

	_ = g.Snapshot(n.ID, newState)
	_ = g.AttachTemporal(n.ID, meta.StartTime, meta.EndTime, meta.Duration, meta.HasDuration)
	_ = g.SetRequiresEntities(n.ID, meta.RequiresEntities)
	_ = g.SetStatus(n.ID, graph.Closed)

	finalState, finalSTN, finalBl, succeeded, fail := e.run(newState, newSTN, g, bl, rest, depth, opts)
	if succeeded {
		return finalState, finalSTN, finalBl, true, failure{}
	}
	return state, stn, finalBl, false, fail
}

// methodFn resolves and invokes the method at methodIdx in the current
// kind's ordered method list.
type methodFn func(methodIdx int, st *fact.State) ([]todo.Todo, error)

func (e *Engine) runMethodKind(
	state *fact.State,
	stn *temporal.STN,
	g *graph.Graph,
	bl *blacklist.Blacklist,
	head pendingItem,
	rest []pendingItem,
	depth int,
	opts Options,
	kind graph.Kind,
	methodNames []string,
	invoke methodFn,
) (*fact.State, *temporal.STN, *blacklist.Blacklist, bool, failure) {
	n := g.NewNode(kind, head.Todo, methodNames, head.IsRoot)
	if !head.IsRoot {
		_ = g.Link(head.ParentID, n.ID)
	}

	if len(methodNames) == 0 {
		_ = g.SetStatus(n.ID, graph.Failed)
		return state, stn, bl, false, failure{kind: ErrNoApplicableMethod, trace: []string{n.ID}}
	}

	if depth+1 > opts.maxDepth() {
		_ = g.SetStatus(n.ID, graph.Failed)
		return state, stn, bl, false, failure{kind: ErrDepthExhausted, trace: []string{n.ID}}
	}

	currentBl := bl
	var lastFail failure

	for i, name := range methodNames {
		if currentBl.IsMethodBlacklisted(name) {
			continue
		}

		subtodos, err := invoke(i, state)
		if err != nil {
			currentBl = currentBl.WithBlacklistedMethod(name)
			continue
		}

		childPending := make([]pendingItem, 0, len(subtodos))
		for _, st := range subtodos {
			childPending = append(childPending, pendingItem{Todo: st, ParentID: n.ID})
		}
		combined := append(childPending, rest...)

		cp := g.Checkpoint()
		finalState, finalSTN, finalBl, ok, fail := e.run(state, stn, g, currentBl, combined, depth+1, opts)
		if ok {
			_ = g.SetSelectedMethod(n.ID, name)
			_ = g.SetStatus(n.ID, graph.Closed)
			return finalState, finalSTN, finalBl, true, failure{}
		}
		g.Restore(cp)
		currentBl = finalBl.WithBlacklistedMethod(name)
		lastFail = fail
	}

	_ = g.SetStatus(n.ID, graph.Failed)
	trace := append([]string{n.ID}, lastFail.trace...)
	// Every method below this node has now been exhausted: whatever got
	// blacklisted while exploring them is scoped to this subtree and
	// shouldn't leak to whichever sibling subtree the caller backtracks
	// into next, so the blacklist reported upward reverts to what this
	// node started with — mirroring the state/graph rollback above.
	return state, stn, bl, false, failure{kind: lastFailKind(lastFail, ErrNoApplicableMethod), trace: trace}
}

func lastFailKind(f failure, fallback ErrorKind) ErrorKind {
	if len(f.trace) == 0 && f.kind == 0 {
		return fallback
	}
	return f.kind
}

