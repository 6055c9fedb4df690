package graph

import (
	"testing"

	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/todo"
)

func TestNewNodeAssignsUniqueIDs(t *testing.T) {
	g := New()
	a := g.NewNode(KindTask, todo.NewTask("deliver", nil), []string{"m1"}, true)
	b := g.NewNode(KindTask, todo.NewTask("deliver", nil), []string{"m1"}, true)
	if a.ID == b.ID {
		t.Fatalf("expected distinct node IDs")
	}
}

func TestLinkAndClosePlanOrder(t *testing.T) {
	g := New()
	root := g.NewNode(KindTask, todo.NewTask("deliver", nil), nil, true)

	move := g.NewNode(KindAction, todo.NewAction("move", nil), nil, false)
	pick := g.NewNode(KindAction, todo.NewAction("pickup", nil), nil, false)

	if err := g.Link(root.ID, move.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.Link(root.ID, pick.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := fact.New()
	if err := g.Snapshot(move.ID, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.Snapshot(pick.ID, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.SetStatus(move.ID, Closed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.SetStatus(pick.ID, Closed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plan := g.ClosePlan()
	if len(plan) != 2 {
		t.Fatalf("expected 2 closed leaves in the plan, got %d", len(plan))
	}
	if plan[0].ID != move.ID || plan[1].ID != pick.ID {
		t.Fatalf("expected plan order [move, pickup], got [%s, %s]", plan[0].Info.Name, plan[1].Info.Name)
	}
}

func TestClosePlanExcludesFailedAndOpenLeaves(t *testing.T) {
	g := New()
	root := g.NewNode(KindTask, todo.NewTask("deliver", nil), nil, true)
	failed := g.NewNode(KindAction, todo.NewAction("move", nil), nil, false)
	open := g.NewNode(KindAction, todo.NewAction("pickup", nil), nil, false)

	_ = g.Link(root.ID, failed.ID)
	_ = g.Link(root.ID, open.ID)
	_ = g.SetStatus(failed.ID, Failed)

	plan := g.ClosePlan()
	if len(plan) != 0 {
		t.Fatalf("expected no closed leaves, got %d", len(plan))
	}
}

func TestLinkRejectsUnknownNodes(t *testing.T) {
	g := New()
	root := g.NewNode(KindTask, todo.NewTask("deliver", nil), nil, true)
	if err := g.Link(root.ID, "missing"); err == nil {
		t.Fatalf("expected error linking to unknown child")
	}
	if err := g.Link("missing", root.ID); err == nil {
		t.Fatalf("expected error linking from unknown parent")
	}
}
