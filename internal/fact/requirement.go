package fact

import "sort"

// sortedEntities returns the state's entities ordered by ID, so that
// picking "the first match" is deterministic across runs regardless of
// the underlying map's iteration order.
func sortedEntities(s *State) []Entity {
	entities := s.AllEntities()
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	return entities
}

// EntityRequirement describes the entity a command/action needs: an entity
// type plus a non-empty, atom-comparable set of required capability names.
type EntityRequirement struct {
	Type         string
	Capabilities []string
}

// Key returns the de-duplication key {type, sorted capabilities}.
func (r EntityRequirement) Key() string {
	caps := append([]string(nil), r.Capabilities...)
	sort.Strings(caps)
	key := r.Type + "|"
	for i, c := range caps {
		if i > 0 {
			key += ","
		}
		key += c
	}
	return key
}

// Satisfied reports whether the state has at least one entity of matching
// type whose capability set is a superset of the requirement.
func (r EntityRequirement) Satisfied(s *State) bool {
	for _, e := range sortedEntities(s) {
		if e.Type != r.Type {
			continue
		}
		if hasAllCapabilities(e, r.Capabilities) {
			return true
		}
	}
	return false
}

// MatchEntities resolves one concrete entity ID per requirement, in
// order, reporting ok=false the moment any requirement has no match. Used
// to record which entities a command's execution actually bound.
func MatchEntities(s *State, reqs []EntityRequirement) ([]string, bool) {
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		matched := ""
		for _, e := range sortedEntities(s) {
			if e.Type == r.Type && hasAllCapabilities(e, r.Capabilities) {
				matched = e.ID
				break
			}
		}
		if matched == "" {
			return nil, false
		}
		ids = append(ids, matched)
	}
	return ids, true
}

func hasAllCapabilities(e Entity, required []string) bool {
	for _, cap := range required {
		if _, ok := e.Capabilities[cap]; !ok {
			return false
		}
	}
	return true
}

// DedupRequirements removes duplicate requirements (by Key), preserving the
// first occurrence's order.
func DedupRequirements(reqs []EntityRequirement) []EntityRequirement {
	seen := make(map[string]struct{}, len(reqs))
	out := make([]EntityRequirement, 0, len(reqs))
	for _, r := range reqs {
		k := r.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
