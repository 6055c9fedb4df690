// Package examples holds small, self-contained domains used to exercise
// the planner end to end: a demo registration target for the HTTP server
// and a fixture for the core engine's test suite.
package examples

import (
	"fmt"

	"github.com/aria-htn/planner/internal/domain"
	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/todo"
)

const (
	bankWest = "west"
	bankEast = "east"
)

func otherBank(bank string) string {
	if bank == bankWest {
		return bankEast
	}
	return bankWest
}

// unsafe reports whether leaving fox/geese/corn unattended on bank would
// let the fox eat the geese or the geese eat the corn.
func unsafe(s *fact.State, bank string) bool {
	atBank := func(subject string) bool {
		v, ok := s.GetFact("bank", subject)
		return ok && v.Equal(fact.String(bank))
	}
	fox, geese, corn := atBank("fox"), atBank("geese"), atBank("corn")
	return (fox && geese) || (geese && corn)
}

// crossAction moves the boat, and optionally one passenger named by the
// "carry" argument ("none", "fox", "geese" or "corn"), from whichever
// bank the boat currently occupies to the other one.
func crossAction(s *fact.State, args map[string]fact.Value) (*fact.State, todo.Metadata, error) {
	carry, ok := args["carry"].AsString()
	if !ok {
		return nil, todo.Metadata{}, fmt.Errorf("cross: missing 'carry' argument")
	}
	boatBank, ok := s.GetFact("bank", "boat")
	if !ok {
		return nil, todo.Metadata{}, fmt.Errorf("cross: boat has no bank")
	}
	from, ok := boatBank.AsString()
	if !ok {
		return nil, todo.Metadata{}, fmt.Errorf("cross: boat bank is not a string")
	}
	to := otherBank(from)

	next := s
	switch carry {
	case "none":
	case "fox", "geese", "corn":
		passengerBank, ok := s.GetFact("bank", carry)
		if !ok || !passengerBank.Equal(fact.String(from)) {
			return nil, todo.Metadata{}, fmt.Errorf("cross: %s is not on the %s bank", carry, from)
		}
		next = next.SetFact("bank", carry, fact.String(to))
	default:
		return nil, todo.Metadata{}, fmt.Errorf("cross: unknown passenger %q", carry)
	}
	next = next.SetFact("bank", "boat", fact.String(to))

	if unsafe(next, from) {
		return nil, todo.Metadata{}, fmt.Errorf("cross: leaving %s unattended on the %s bank is unsafe", from, from)
	}
	return next, todo.Metadata{}, nil
}

func allAcross(s *fact.State) bool {
	for _, subject := range []string{"fox", "geese", "corn"} {
		if !s.Matches("bank", subject, fact.String(bankEast)) {
			return false
		}
	}
	return true
}

// ferryDoneMethod succeeds with no further subtodos once every passenger
// has reached the east bank; tried first so the search stops as soon as
// the puzzle is solved instead of proposing another crossing.
func ferryDoneMethod(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error) {
	if !allAcross(s) {
		return nil, fmt.Errorf("ferry: not everyone is across yet")
	}
	return []todo.Todo{}, nil
}

// ferryCrossMethod builds the method for one of the four candidate
// crossings: take nobody, or take carry. The engine tries the registered
// methods in order and backtracks through them via the solution graph
// whenever a deeper crossing turns out to be unsafe or leads to a dead
// end, which is how the classic seven-move solution gets found.
func ferryCrossMethod(carry string) domain.TaskMethodFunc {
	return func(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error) {
		return []todo.Todo{
			todo.NewAction("cross", map[string]fact.Value{"carry": fact.String(carry)}),
			todo.NewTask("ferry", nil),
		}, nil
	}
}

// NewFoxGeeseCorn returns a domain implementing the river-crossing puzzle:
// a single "cross" action carries the boat, and at most one of the fox,
// the geese or the corn, between banks, while forbidding any unattended
// combination that lets one eat the other. The "ferry" task recursively
// decomposes into one crossing plus another "ferry" until everyone is
// across.
func NewFoxGeeseCorn() *domain.Domain {
	d := domain.New()
	if err := d.RegisterAction("cross", crossAction); err != nil {
		panic(err)
	}
	if err := d.RegisterTaskMethod("ferry", "already-done", ferryDoneMethod); err != nil {
		panic(err)
	}
	for _, carry := range []string{"none", "fox", "geese", "corn"} {
		if err := d.RegisterTaskMethod("ferry", "cross-"+carry, ferryCrossMethod(carry)); err != nil {
			panic(err)
		}
	}
	return d
}

// FoxGeeseCornInitialState returns the puzzle's starting state: everyone
// and the boat on the west bank.
func FoxGeeseCornInitialState() *fact.State {
	return fact.New().
		SetFact("bank", "fox", fact.String(bankWest)).
		SetFact("bank", "geese", fact.String(bankWest)).
		SetFact("bank", "corn", fact.String(bankWest)).
		SetFact("bank", "boat", fact.String(bankWest))
}

// FoxGeeseCornTodos returns the single top-level todo that starts the
// recursive ferrying search.
func FoxGeeseCornTodos() []todo.Todo {
	return []todo.Todo{todo.NewTask("ferry", nil)}
}
