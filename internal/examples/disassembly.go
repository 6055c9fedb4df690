package examples

import (
	"fmt"

	"github.com/aria-htn/planner/internal/domain"
	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/todo"
)

// disassemblyActivity is one removal step in a scaled-down stand-in for
// the aircraft-disassembly scenario: a named step, the location it ties
// up while in progress, and the activities that must already have
// finished before it may start.
type disassemblyActivity struct {
	Name         string
	Location     string
	Predecessors []string
}

var disassemblyActivities = []disassemblyActivity{
	{Name: "remove-fairing", Location: "bay-1"},
	{Name: "remove-panel", Location: "bay-1"},
	{Name: "disconnect-hydraulics", Location: "bay-1", Predecessors: []string{"remove-fairing", "remove-panel"}},
	{Name: "remove-gear", Location: "bay-2", Predecessors: []string{"disconnect-hydraulics"}},
	{Name: "remove-actuator", Location: "bay-2", Predecessors: []string{"remove-gear"}},
	{Name: "tag-and-store", Location: "bay-1", Predecessors: []string{"remove-actuator"}},
}

var disassemblyCapacity = map[string]int{
	"bay-1": 1,
	"bay-2": 2,
}

func disassemblyActivityByName(name string) (disassemblyActivity, bool) {
	for _, a := range disassemblyActivities {
		if a.Name == name {
			return a, true
		}
	}
	return disassemblyActivity{}, false
}

func disassemblyStatus(s *fact.State, name string) string {
	v, ok := s.GetFact("activity_status", name)
	if !ok {
		return "pending"
	}
	status, _ := v.AsString()
	return status
}

func disassemblyOccupancy(s *fact.State, location string) int64 {
	v, ok := s.GetFact("occupancy", location)
	if !ok {
		return 0
	}
	n, _ := v.AsInt()
	return n
}

// startActivity begins an activity: every predecessor must already be
// "finished", and the activity's location must have spare capacity. The
// occupancy counter is incremented for as long as the activity is
// "in_progress", modeling concurrent occupation of a shared location.
func startActivity(s *fact.State, args map[string]fact.Value) (*fact.State, todo.Metadata, error) {
	name, ok := args["activity"].AsString()
	if !ok {
		return nil, todo.Metadata{}, fmt.Errorf("start: missing 'activity' argument")
	}
	a, ok := disassemblyActivityByName(name)
	if !ok {
		return nil, todo.Metadata{}, fmt.Errorf("start: unknown activity %q", name)
	}
	if disassemblyStatus(s, name) != "pending" {
		return nil, todo.Metadata{}, fmt.Errorf("start: %s is not pending", name)
	}
	for _, pred := range a.Predecessors {
		if disassemblyStatus(s, pred) != "finished" {
			return nil, todo.Metadata{}, fmt.Errorf("start: predecessor %s has not finished", pred)
		}
	}
	if disassemblyOccupancy(s, a.Location) >= int64(disassemblyCapacity[a.Location]) {
		return nil, todo.Metadata{}, fmt.Errorf("start: %s is at capacity", a.Location)
	}

	next := s.SetFact("activity_status", name, fact.String("in_progress"))
	next = next.SetFact("occupancy", a.Location, fact.Int(disassemblyOccupancy(s, a.Location)+1))
	return next, todo.Metadata{}, nil
}

// finishActivity completes an in-progress activity, freeing its
// location's occupancy slot.
func finishActivity(s *fact.State, args map[string]fact.Value) (*fact.State, todo.Metadata, error) {
	name, ok := args["activity"].AsString()
	if !ok {
		return nil, todo.Metadata{}, fmt.Errorf("finish: missing 'activity' argument")
	}
	a, ok := disassemblyActivityByName(name)
	if !ok {
		return nil, todo.Metadata{}, fmt.Errorf("finish: unknown activity %q", name)
	}
	if disassemblyStatus(s, name) != "in_progress" {
		return nil, todo.Metadata{}, fmt.Errorf("finish: %s is not in progress", name)
	}

	next := s.SetFact("activity_status", name, fact.String("finished"))
	next = next.SetFact("occupancy", a.Location, fact.Int(disassemblyOccupancy(s, a.Location)-1))
	return next, todo.Metadata{}, nil
}

func disassemblyAllFinished(s *fact.State) bool {
	for _, a := range disassemblyActivities {
		if disassemblyStatus(s, a.Name) != "finished" {
			return false
		}
	}
	return true
}

func scheduleDoneMethod(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error) {
	if !disassemblyAllFinished(s) {
		return nil, fmt.Errorf("schedule: activities remain")
	}
	return []todo.Todo{}, nil
}

// scheduleAdvanceMethod is registered once per activity, in dependency
// order. It finishes any activities already in progress ahead of
// starting this one (a location can only hold so many at once, so
// freeing a slot is sometimes required before the next start succeeds),
// then starts this activity if its predecessors allow it, recursing
// back into "schedule" to keep going.
func scheduleAdvanceMethod(name string) domain.TaskMethodFunc {
	return func(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error) {
		if disassemblyStatus(s, name) != "pending" {
			return nil, fmt.Errorf("schedule: %s is not pending", name)
		}
		a, _ := disassemblyActivityByName(name)
		for _, pred := range a.Predecessors {
			if disassemblyStatus(s, pred) != "finished" {
				return nil, fmt.Errorf("schedule: predecessor %s has not finished", pred)
			}
		}

		subtodos := make([]todo.Todo, 0, 4)
		if disassemblyOccupancy(s, a.Location) >= int64(disassemblyCapacity[a.Location]) {
			finished := false
			for _, other := range disassemblyActivities {
				if other.Location == a.Location && disassemblyStatus(s, other.Name) == "in_progress" {
					subtodos = append(subtodos, todo.NewAction("finish", map[string]fact.Value{"activity": fact.String(other.Name)}))
					finished = true
					break
				}
			}
			if !finished {
				return nil, fmt.Errorf("schedule: %s has no slot to free at %s", name, a.Location)
			}
		}
		subtodos = append(subtodos,
			todo.NewAction("start", map[string]fact.Value{"activity": fact.String(name)}),
			todo.NewTask("schedule", nil),
		)
		return subtodos, nil
	}
}

// scheduleFinishMethod is the fallback tried once no activity remains
// pending: it finishes whichever activity named here is still
// "in_progress" and recurses, draining the schedule down to all-finished.
func scheduleFinishMethod(name string) domain.TaskMethodFunc {
	return func(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error) {
		if disassemblyStatus(s, name) != "in_progress" {
			return nil, fmt.Errorf("schedule: %s is not in progress", name)
		}
		return []todo.Todo{
			todo.NewAction("finish", map[string]fact.Value{"activity": fact.String(name)}),
			todo.NewTask("schedule", nil),
		}, nil
	}
}

// NewDisassembly returns a domain modeling a precedence-constrained,
// location-capacity-limited sequence of removal activities: "start" and
// "finish" actions bracket each activity's occupation of a location, and
// the "schedule" task recurses through the activities in dependency
// order, freeing a location's slot first whenever it is full.
func NewDisassembly() *domain.Domain {
	d := domain.New()
	if err := d.RegisterAction("start", startActivity); err != nil {
		panic(err)
	}
	if err := d.RegisterAction("finish", finishActivity); err != nil {
		panic(err)
	}
	if err := d.RegisterTaskMethod("schedule", "already-done", scheduleDoneMethod); err != nil {
		panic(err)
	}
	for _, a := range disassemblyActivities {
		if err := d.RegisterTaskMethod("schedule", "advance-"+a.Name, scheduleAdvanceMethod(a.Name)); err != nil {
			panic(err)
		}
	}
	for _, a := range disassemblyActivities {
		if err := d.RegisterTaskMethod("schedule", "finish-"+a.Name, scheduleFinishMethod(a.Name)); err != nil {
			panic(err)
		}
	}
	return d
}

// DisassemblyInitialState returns every activity pending and every
// location empty.
func DisassemblyInitialState() *fact.State {
	s := fact.New()
	for location := range disassemblyCapacity {
		s = s.SetFact("occupancy", location, fact.Int(0))
	}
	return s
}

// DisassemblyTodos returns the single top-level todo that starts the
// recursive scheduling search; it also finishes any activity still
// "in_progress" once every activity has been started, so the final
// state reflects every activity "finished" rather than leaving the last
// bay-2 occupant dangling.
func DisassemblyTodos() []todo.Todo {
	return []todo.Todo{todo.NewTask("schedule", nil)}
}
