// Package domainconfig loads a YAML manifest describing the expected
// shape of a domain — which tasks, predicates and multigoal methods it
// registers, and in what order — so a deployment can validate its Go
// registration code against a data file reviewed independently of it.
package domainconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aria-htn/planner/internal/domain"
)

// TaskEntry declares the try-order of methods registered for one task.
type TaskEntry struct {
	Task    string   `yaml:"task"`
	Methods []string `yaml:"methods"`
}

// UnigoalEntry declares the try-order of methods registered for one
// predicate.
type UnigoalEntry struct {
	Predicate string   `yaml:"predicate"`
	Methods   []string `yaml:"methods"`
}

// Manifest is the structure of a domain manifest YAML file.
type Manifest struct {
	Version    string         `yaml:"version"`
	Name       string         `yaml:"name"`
	Tasks      []TaskEntry    `yaml:"tasks"`
	Unigoals   []UnigoalEntry `yaml:"unigoals"`
	Multigoals []string       `yaml:"multigoals"`
}

// LoadManifest reads and parses a domain manifest YAML file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("domainconfig: failed to read manifest file: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("domainconfig: failed to parse manifest YAML: %w", err)
	}
	return &m, nil
}

// Validate checks internal consistency: no task or predicate declared
// twice, no entry with an empty method list.
func (m *Manifest) Validate() error {
	seenTasks := make(map[string]bool)
	for _, t := range m.Tasks {
		if t.Task == "" {
			return fmt.Errorf("domainconfig: task entry missing name")
		}
		if seenTasks[t.Task] {
			return fmt.Errorf("domainconfig: duplicate task entry %q", t.Task)
		}
		seenTasks[t.Task] = true
		if len(t.Methods) == 0 {
			return fmt.Errorf("domainconfig: task %q declares no methods", t.Task)
		}
	}

	seenPredicates := make(map[string]bool)
	for _, u := range m.Unigoals {
		if u.Predicate == "" {
			return fmt.Errorf("domainconfig: unigoal entry missing predicate")
		}
		if seenPredicates[u.Predicate] {
			return fmt.Errorf("domainconfig: duplicate unigoal entry %q", u.Predicate)
		}
		seenPredicates[u.Predicate] = true
		if len(u.Methods) == 0 {
			return fmt.Errorf("domainconfig: predicate %q declares no methods", u.Predicate)
		}
	}
	return nil
}

// ValidateAgainstDomain checks that a live domain's registered method
// try-order matches the manifest exactly, catching drift between the
// reviewed manifest and the Go registration code.
func (m *Manifest) ValidateAgainstDomain(d *domain.Domain) error {
	for _, t := range m.Tasks {
		methods := d.TaskMethods(t.Task)
		if len(methods) != len(t.Methods) {
			return fmt.Errorf("domainconfig: task %q: manifest declares %d methods, domain has %d",
				t.Task, len(t.Methods), len(methods))
		}
		for i, name := range t.Methods {
			if methods[i].Name != name {
				return fmt.Errorf("domainconfig: task %q: method %d is %q in domain, %q in manifest",
					t.Task, i, methods[i].Name, name)
			}
		}
	}

	for _, u := range m.Unigoals {
		methods := d.UnigoalMethods(u.Predicate)
		if len(methods) != len(u.Methods) {
			return fmt.Errorf("domainconfig: predicate %q: manifest declares %d methods, domain has %d",
				u.Predicate, len(u.Methods), len(methods))
		}
		for i, name := range u.Methods {
			if methods[i].Name != name {
				return fmt.Errorf("domainconfig: predicate %q: method %d is %q in domain, %q in manifest",
					u.Predicate, i, methods[i].Name, name)
			}
		}
	}

	if len(m.Multigoals) > 0 {
		methods := d.MultigoalMethods()
		if len(methods) != len(m.Multigoals) {
			return fmt.Errorf("domainconfig: multigoals: manifest declares %d methods, domain has %d",
				len(m.Multigoals), len(methods))
		}
		for i, name := range m.Multigoals {
			if methods[i].Name != name {
				return fmt.Errorf("domainconfig: multigoal method %d is %q in domain, %q in manifest",
					i, methods[i].Name, name)
			}
		}
	}
	return nil
}
