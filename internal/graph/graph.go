// Package graph implements the planner's solution graph: a DAG of
// refinement nodes, each with its outcome and the state snapshot it left
// behind. Nodes of an abandoned alternative are removed again through
// Checkpoint/Restore. Closed action/command leaves, read in topological
// order, are the emitted plan.
package graph

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/temporal"
	"github.com/aria-htn/planner/internal/todo"
)

// Kind classifies a solution graph node.
type Kind int

const (
	KindAction Kind = iota
	KindTask
	KindGoal
	KindMultigoal
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindTask:
		return "task"
	case KindGoal:
		return "goal"
	case KindMultigoal:
		return "multigoal"
	default:
		return "invalid"
	}
}

// Status is a node's refinement status.
type Status int

const (
	Open Status = iota
	InProgress
	Closed
	Failed
)

func (s Status) String() string {
	switch s {
	case Open:
		return "open"
	case InProgress:
		return "in-progress"
	case Closed:
		return "closed"
	case Failed:
		return "failed"
	default:
		return "invalid"
	}
}

// Node is one entry in the solution graph.
type Node struct {
	ID               string
	Kind             Kind
	Status           Status
	Info             todo.Todo
	SelectedMethod   string
	AvailableMethods []string
	Successors       []string
	StateSnapshot    *fact.State
	StartTime        *temporal.Ticks
	EndTime          *temporal.Ticks
	Duration         *temporal.Ticks
	HasDuration      bool
	RequiresEntities []fact.EntityRequirement
}

// Graph is an append-mostly DAG of nodes, keyed by ID.
type Graph struct {
	nodes map[string]*Node
	roots []string
	order []string // node IDs in creation order, for Checkpoint/Restore
}

// New returns an empty solution graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// NewNode creates and stores a fresh Open node for the given todo and
// kind, returning the node. Pass isRoot=true for todos pushed directly by
// the caller (no parent link).
func (g *Graph) NewNode(kind Kind, info todo.Todo, availableMethods []string, isRoot bool) *Node {
	n := &Node{
		ID:               uuid.NewString(),
		Kind:             kind,
		Status:           Open,
		Info:             info,
		AvailableMethods: append([]string(nil), availableMethods...),
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	if isRoot {
		g.roots = append(g.roots, n.ID)
	}
	return n
}

// Checkpoint captures enough of the graph's current shape to undo every
// node created and every successor link appended since. Restoring it
// discards an abandoned refinement attempt without disturbing nodes
// created before the checkpoint.
type Checkpoint struct {
	orderLen      int
	successorLens map[string]int
}

// Checkpoint returns a marker for the graph's current state.
func (g *Graph) Checkpoint() Checkpoint {
	lens := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		lens[id] = len(n.Successors)
	}
	return Checkpoint{orderLen: len(g.order), successorLens: lens}
}

// Restore discards every node created after cp was taken and truncates
// every node's successor list back to its length at cp.
func (g *Graph) Restore(cp Checkpoint) {
	for _, id := range g.order[cp.orderLen:] {
		delete(g.nodes, id)
	}
	g.order = g.order[:cp.orderLen]

	for id, n := range g.nodes {
		if want, ok := cp.successorLens[id]; ok && want < len(n.Successors) {
			n.Successors = n.Successors[:want]
		}
	}
}

// Link appends childID to parentID's successor list.
func (g *Graph) Link(parentID, childID string) error {
	parent, ok := g.nodes[parentID]
	if !ok {
		return fmt.Errorf("graph: unknown parent node %q", parentID)
	}
	if _, ok := g.nodes[childID]; !ok {
		return fmt.Errorf("graph: unknown child node %q", childID)
	}
	parent.Successors = append(parent.Successors, childID)
	return nil
}

// SetStatus transitions a node's status.
func (g *Graph) SetStatus(id string, status Status) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("graph: unknown node %q", id)
	}
	n.Status = status
	return nil
}

// SetSelectedMethod records which method/decomposition realised a node.
func (g *Graph) SetSelectedMethod(id, methodName string) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("graph: unknown node %q", id)
	}
	n.SelectedMethod = methodName
	return nil
}

// Snapshot attaches a post-effect state snapshot to an action/command
// node. Per the graph invariant, snapshot equals the parent snapshot
// transformed by the action's effect — callers are responsible for
// passing the already-transformed state.
func (g *Graph) Snapshot(id string, s *fact.State) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("graph: unknown node %q", id)
	}
	n.StateSnapshot = s
	return nil
}

// AttachTemporal records the time-point pair and duration an action node
// contributed to the STN.
func (g *Graph) AttachTemporal(id string, start, end *temporal.Ticks, duration temporal.Ticks, hasDuration bool) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("graph: unknown node %q", id)
	}
	n.StartTime = start
	n.EndTime = end
	n.Duration = &duration
	n.HasDuration = hasDuration
	return nil
}

// SetRequiresEntities records the entity requirements the callback that
// produced this node's effect actually declared, so the requirement used
// to derive AssignedEntityIDs is the one the callback returned, not
// whatever (if anything) the originating todo carried.
func (g *Graph) SetRequiresEntities(id string, reqs []fact.EntityRequirement) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("graph: unknown node %q", id)
	}
	n.RequiresEntities = reqs
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodesWithTemporal returns every node carrying temporal fields, in no
// particular order.
func (g *Graph) NodesWithTemporal() []*Node {
	out := make([]*Node, 0)
	for _, n := range g.nodes {
		if n.StartTime != nil || n.EndTime != nil || n.HasDuration {
			out = append(out, n)
		}
	}
	return out
}

// ClosePlan returns the closed action/command leaves in topological
// (emission) order: a pre-order DFS over the roots, collecting Closed
// leaf nodes as they're reached in successor order. A leaf is any node
// with no successors; per the graph invariant action nodes are always
// leaves.
func (g *Graph) ClosePlan() []*Node {
	var out []*Node
	visited := make(map[string]bool)

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		n, ok := g.nodes[id]
		if !ok {
			return
		}
		if len(n.Successors) == 0 {
			if n.Kind == KindAction && n.Status == Closed {
				out = append(out, n)
			}
			return
		}
		for _, childID := range n.Successors {
			visit(childID)
		}
	}
	for _, rootID := range g.roots {
		visit(rootID)
	}
	return out
}
