package api

import "testing"

func TestValidatePlanRequestJSONAcceptsWellFormedRequest(t *testing.T) {
	body := []byte(`{
		"domain_id": "logistics",
		"todos": [{"kind": "action", "name": "move"}]
	}`)
	if err := validatePlanRequestJSON(body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatePlanRequestJSONRejectsMissingDomainID(t *testing.T) {
	body := []byte(`{"todos": [{"kind": "action", "name": "move"}]}`)
	if err := validatePlanRequestJSON(body); err == nil {
		t.Fatalf("expected error for missing domain_id")
	}
}

func TestValidatePlanRequestJSONRejectsEmptyTodos(t *testing.T) {
	body := []byte(`{"domain_id": "logistics", "todos": []}`)
	if err := validatePlanRequestJSON(body); err == nil {
		t.Fatalf("expected error for empty todos array")
	}
}

func TestValidatePlanRequestJSONRejectsUnknownTodoKind(t *testing.T) {
	body := []byte(`{"domain_id": "logistics", "todos": [{"kind": "bogus"}]}`)
	if err := validatePlanRequestJSON(body); err == nil {
		t.Fatalf("expected error for unknown todo kind")
	}
}

func TestValidatePlanRequestJSONRejectsInvalidJSON(t *testing.T) {
	if err := validatePlanRequestJSON([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
