package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore provides durable persistence for domain, plan and entity
// records using the pure-Go modernc.org/sqlite driver.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS domains (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	manifest_path TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS plans (
	id TEXT PRIMARY KEY,
	domain_id TEXT NOT NULL,
	status TEXT NOT NULL,
	command_count INTEGER NOT NULL DEFAULT 0,
	error_kind TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS entities (
	domain_id TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	type TEXT NOT NULL,
	capabilities TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (domain_id, entity_id)
);

CREATE INDEX IF NOT EXISTS idx_plans_domain ON plans(domain_id);
`

// OpenSQLite creates or opens a SQLite database at dbPath and ensures the
// schema exists.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dbPath, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateDomain(rec DomainRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO domains (id, name, description, manifest_path) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Description, rec.ManifestPath,
	)
	if err != nil {
		return fmt.Errorf("store: create domain: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetDomain(id string) (*DomainRecord, error) {
	var rec DomainRecord
	err := s.db.QueryRow(
		`SELECT id, name, description, manifest_path, created_at FROM domains WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Description, &rec.ManifestPath, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("store: domain %q not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get domain: %w", err)
	}
	return &rec, nil
}

func (s *SQLiteStore) ListDomains() ([]DomainRecord, error) {
	rows, err := s.db.Query(`SELECT id, name, description, manifest_path, created_at FROM domains ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("store: list domains: %w", err)
	}
	defer rows.Close()

	var out []DomainRecord
	for rows.Next() {
		var rec DomainRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.ManifestPath, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan domain: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteDomain(id string) error {
	if _, err := s.db.Exec(`DELETE FROM entities WHERE domain_id = ?`, id); err != nil {
		return fmt.Errorf("store: delete domain entities: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM domains WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete domain: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecordPlan(rec PlanRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO plans (id, domain_id, status, command_count, error_kind, error_message) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.DomainID, rec.Status, rec.CommandCount, rec.ErrorKind, rec.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("store: record plan: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetPlan(id string) (*PlanRecord, error) {
	var rec PlanRecord
	err := s.db.QueryRow(
		`SELECT id, domain_id, status, command_count, error_kind, error_message, created_at FROM plans WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.DomainID, &rec.Status, &rec.CommandCount, &rec.ErrorKind, &rec.ErrorMessage, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("store: plan %q not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get plan: %w", err)
	}
	return &rec, nil
}

func (s *SQLiteStore) ListPlansForDomain(domainID string) ([]PlanRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, domain_id, status, command_count, error_kind, error_message, created_at FROM plans WHERE domain_id = ? ORDER BY created_at ASC`,
		domainID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list plans: %w", err)
	}
	defer rows.Close()

	var out []PlanRecord
	for rows.Next() {
		var rec PlanRecord
		if err := rows.Scan(&rec.ID, &rec.DomainID, &rec.Status, &rec.CommandCount, &rec.ErrorKind, &rec.ErrorMessage, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan plan: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpsertEntity(rec EntityRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO entities (domain_id, entity_id, type, capabilities) VALUES (?, ?, ?, ?)
		 ON CONFLICT(domain_id, entity_id) DO UPDATE SET type=excluded.type, capabilities=excluded.capabilities`,
		rec.DomainID, rec.EntityID, rec.Type, strings.Join(rec.Capabilities, ","),
	)
	if err != nil {
		return fmt.Errorf("store: upsert entity: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetEntity(domainID, entityID string) (*EntityRecord, error) {
	var rec EntityRecord
	var capabilities string
	err := s.db.QueryRow(
		`SELECT domain_id, entity_id, type, capabilities FROM entities WHERE domain_id = ? AND entity_id = ?`,
		domainID, entityID,
	).Scan(&rec.DomainID, &rec.EntityID, &rec.Type, &capabilities)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("store: entity %q not found in domain %q", entityID, domainID)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get entity: %w", err)
	}
	rec.Capabilities = splitCapabilities(capabilities)
	return &rec, nil
}

func (s *SQLiteStore) ListEntities(domainID string) ([]EntityRecord, error) {
	rows, err := s.db.Query(`SELECT domain_id, entity_id, type, capabilities FROM entities WHERE domain_id = ?`, domainID)
	if err != nil {
		return nil, fmt.Errorf("store: list entities: %w", err)
	}
	defer rows.Close()

	var out []EntityRecord
	for rows.Next() {
		var rec EntityRecord
		var capabilities string
		if err := rows.Scan(&rec.DomainID, &rec.EntityID, &rec.Type, &capabilities); err != nil {
			return nil, fmt.Errorf("store: scan entity: %w", err)
		}
		rec.Capabilities = splitCapabilities(capabilities)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteEntity(domainID, entityID string) error {
	_, err := s.db.Exec(`DELETE FROM entities WHERE domain_id = ? AND entity_id = ?`, domainID, entityID)
	if err != nil {
		return fmt.Errorf("store: delete entity: %w", err)
	}
	return nil
}

func splitCapabilities(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

var _ Store = (*SQLiteStore)(nil)
var _ Store = (*MemoryStore)(nil)
