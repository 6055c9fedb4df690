package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"testing"
)

func inMemorySQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	re := regexp.MustCompile(`[^a-zA-Z0-9_]+`)
	dbName := re.ReplaceAllString(t.Name(), "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", dbName)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("create schema: %v", err)
	}

	s := &SQLiteStore{db: db}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreDomainCRUD(t *testing.T) {
	s := inMemorySQLiteStore(t)

	rec := DomainRecord{ID: "d1", Name: "logistics", Description: "fleet dispatch", ManifestPath: "domain.yaml"}
	if err := s.CreateDomain(rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.GetDomain("d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "logistics" || got.ManifestPath != "domain.yaml" {
		t.Errorf("unexpected domain record: %+v", got)
	}

	list, err := s.ListDomains()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 domain, got %d", len(list))
	}

	if err := s.DeleteDomain("d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.GetDomain("d1"); err == nil {
		t.Fatalf("expected error after delete")
	}
}

func TestSQLiteStorePlanRecordRoundTrip(t *testing.T) {
	s := inMemorySQLiteStore(t)

	rec := PlanRecord{ID: "p1", DomainID: "d1", Status: "succeeded", CommandCount: 3}
	if err := s.RecordPlan(rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.GetPlan("p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CommandCount != 3 || got.Status != "succeeded" {
		t.Errorf("unexpected plan record: %+v", got)
	}

	plans, err := s.ListPlansForDomain("d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(plans))
	}
}

func TestSQLiteStoreEntityUpsertReplacesCapabilities(t *testing.T) {
	s := inMemorySQLiteStore(t)

	rec := EntityRecord{DomainID: "d1", EntityID: "agent-1", Type: "agent", Capabilities: []string{"cooking"}}
	if err := s.UpsertEntity(rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec.Capabilities = []string{"cooking", "cleaning"}
	if err := s.UpsertEntity(rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.GetEntity("d1", "agent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Capabilities) != 2 {
		t.Fatalf("expected 2 capabilities after upsert, got %+v", got.Capabilities)
	}

	if err := s.DeleteEntity("d1", "agent-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.GetEntity("d1", "agent-1"); err == nil {
		t.Fatalf("expected error after delete")
	}
}
