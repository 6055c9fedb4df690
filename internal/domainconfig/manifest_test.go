package domainconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aria-htn/planner/internal/domain"
	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/todo"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "domain.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoadManifestParsesTasksAndUnigoals(t *testing.T) {
	path := writeManifest(t, `
version: "1"
name: logistics
tasks:
  - task: deliver
    methods: [deliver-by-drone, deliver-by-hand]
unigoals:
  - predicate: at
    methods: [move-to]
multigoals: [batch-delivery]
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "logistics" {
		t.Errorf("expected name logistics, got %q", m.Name)
	}
	if len(m.Tasks) != 1 || m.Tasks[0].Task != "deliver" || len(m.Tasks[0].Methods) != 2 {
		t.Fatalf("unexpected tasks: %+v", m.Tasks)
	}
	if len(m.Unigoals) != 1 || m.Unigoals[0].Predicate != "at" {
		t.Fatalf("unexpected unigoals: %+v", m.Unigoals)
	}
	if len(m.Multigoals) != 1 || m.Multigoals[0] != "batch-delivery" {
		t.Fatalf("unexpected multigoals: %+v", m.Multigoals)
	}
}

func TestLoadManifestMissingFileErrors(t *testing.T) {
	if _, err := LoadManifest("/nonexistent/domain.yaml"); err == nil {
		t.Fatalf("expected error for missing manifest file")
	}
}

func TestValidateRejectsDuplicateTask(t *testing.T) {
	m := &Manifest{Tasks: []TaskEntry{
		{Task: "deliver", Methods: []string{"a"}},
		{Task: "deliver", Methods: []string{"b"}},
	}}
	if err := m.Validate(); err == nil {
		t.Fatalf("expected error for duplicate task entry")
	}
}

func TestValidateRejectsEmptyMethodList(t *testing.T) {
	m := &Manifest{Tasks: []TaskEntry{{Task: "deliver", Methods: nil}}}
	if err := m.Validate(); err == nil {
		t.Fatalf("expected error for empty method list")
	}
}

func TestValidateAcceptsWellFormedManifest(t *testing.T) {
	m := &Manifest{
		Tasks:    []TaskEntry{{Task: "deliver", Methods: []string{"a", "b"}}},
		Unigoals: []UnigoalEntry{{Predicate: "at", Methods: []string{"move-to"}}},
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateAgainstDomainDetectsDrift(t *testing.T) {
	d := domain.New()
	method := func(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error) {
		return nil, nil
	}
	if err := d.RegisterTaskMethod("deliver", "deliver-by-hand", method); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := &Manifest{Tasks: []TaskEntry{{Task: "deliver", Methods: []string{"deliver-by-drone"}}}}
	if err := m.ValidateAgainstDomain(d); err == nil {
		t.Fatalf("expected drift error for mismatched method name")
	}
}

func TestValidateAgainstDomainAcceptsMatchingOrder(t *testing.T) {
	d := domain.New()
	drone := func(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error) { return nil, nil }
	hand := func(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error) { return nil, nil }
	if err := d.RegisterTaskMethod("deliver", "deliver-by-drone", drone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.RegisterTaskMethod("deliver", "deliver-by-hand", hand); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := &Manifest{Tasks: []TaskEntry{{Task: "deliver", Methods: []string{"deliver-by-drone", "deliver-by-hand"}}}}
	if err := m.ValidateAgainstDomain(d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
