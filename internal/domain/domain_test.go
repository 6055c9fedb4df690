package domain

import (
	"testing"

	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/todo"
)

func noopAction(s *fact.State, args map[string]fact.Value) (*fact.State, todo.Metadata, error) {
	return s, todo.Metadata{}, nil
}

func TestRegisterActionAndCommandNamesAreDisjoint(t *testing.T) {
	d := New()
	if err := d.RegisterAction("move", noopAction); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.RegisterCommand("move", noopAction); err == nil {
		t.Fatalf("expected error registering command with same name as an action")
	}
}

func TestRegisterActionDuplicateFails(t *testing.T) {
	d := New()
	if err := d.RegisterAction("move", noopAction); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.RegisterAction("move", noopAction); err == nil {
		t.Fatalf("expected error on duplicate action name")
	}
}

func TestTaskMethodsPreserveTryOrder(t *testing.T) {
	d := New()
	first := func(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error) { return nil, nil }
	second := func(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error) { return nil, nil }

	if err := d.RegisterTaskMethod("deliver", "deliver-by-hand", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.RegisterTaskMethod("deliver", "deliver-by-courier", second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	methods := d.TaskMethods("deliver")
	if len(methods) != 2 || methods[0].Name != "deliver-by-hand" || methods[1].Name != "deliver-by-courier" {
		t.Fatalf("expected try-order preserved, got %+v", methods)
	}
}

func TestMethodNameUniqueAcrossKinds(t *testing.T) {
	d := New()
	taskFn := func(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error) { return nil, nil }
	goalFn := func(s *fact.State, subject string, value fact.Value) ([]todo.Todo, error) { return nil, nil }

	if err := d.RegisterTaskMethod("deliver", "shared-name", taskFn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.RegisterUnigoalMethod("at", "shared-name", goalFn); err == nil {
		t.Fatalf("expected error reusing a method name across kinds")
	}
}

func TestDefaultMultigoalMethodIsAlwaysRegistered(t *testing.T) {
	d := New()
	methods := d.MultigoalMethods()
	if len(methods) != 1 || methods[0].Name != "unachieved-subgoals" {
		t.Fatalf("expected default method present, got %+v", methods)
	}

	s := fact.New()
	s = s.SetFact("at", "box1", fact.String("roomA"))
	goals := []todo.Unigoal{
		{Predicate: "at", Subject: "box1", Value: fact.String("roomA")},
		{Predicate: "at", Subject: "box2", Value: fact.String("roomB")},
	}
	out, err := methods[0].Fn(s, goals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 unsatisfied subgoal todo, got %d", len(out))
	}
}
