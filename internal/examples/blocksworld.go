package examples

import (
	"fmt"

	"github.com/aria-htn/planner/internal/domain"
	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/todo"
)

var blocksWorldBlocks = []string{"a", "b", "c"}

// blocksWorldGoal is the spec's init_1 -> goal1a target: c on b, b on a, a
// on the table.
var blocksWorldGoal = map[string]string{
	"a": "table",
	"b": "a",
	"c": "b",
}

func blockClear(s *fact.State, block string) bool {
	if block == "table" {
		return true
	}
	for _, b := range blocksWorldBlocks {
		if v, ok := s.GetFact("pos", b); ok && v.Equal(fact.String(block)) {
			return false
		}
	}
	return true
}

func handHolds(s *fact.State) (string, bool) {
	v, ok := s.GetFact("holding", "hand")
	if !ok {
		return "", false
	}
	if v.Equal(fact.String("none")) {
		return "", false
	}
	held, _ := v.AsString()
	return held, true
}

// pickupAction lifts block off whatever it rests on, provided the hand is
// empty and the block has nothing stacked on it.
func pickupAction(s *fact.State, args map[string]fact.Value) (*fact.State, todo.Metadata, error) {
	block, ok := args["block"].AsString()
	if !ok {
		return nil, todo.Metadata{}, fmt.Errorf("pickup: missing 'block' argument")
	}
	if _, holding := handHolds(s); holding {
		return nil, todo.Metadata{}, fmt.Errorf("pickup: hand is already holding a block")
	}
	if !blockClear(s, block) {
		return nil, todo.Metadata{}, fmt.Errorf("pickup: %s is not clear", block)
	}
	return s.SetFact("holding", "hand", fact.String(block)), todo.Metadata{}, nil
}

// putdownAction places the held block onto "to" (another block or the
// table), provided "to" is clear.
func putdownAction(s *fact.State, args map[string]fact.Value) (*fact.State, todo.Metadata, error) {
	block, ok := args["block"].AsString()
	if !ok {
		return nil, todo.Metadata{}, fmt.Errorf("putdown: missing 'block' argument")
	}
	to, ok := args["to"].AsString()
	if !ok {
		return nil, todo.Metadata{}, fmt.Errorf("putdown: missing 'to' argument")
	}
	held, holding := handHolds(s)
	if !holding || held != block {
		return nil, todo.Metadata{}, fmt.Errorf("putdown: hand is not holding %s", block)
	}
	if !blockClear(s, to) {
		return nil, todo.Metadata{}, fmt.Errorf("putdown: %s is not clear", to)
	}
	next := s.SetFact("pos", block, fact.String(to))
	next = next.SetFact("holding", "hand", fact.String("none"))
	return next, todo.Metadata{}, nil
}

func blocksWorldDone(s *fact.State) bool {
	for _, b := range blocksWorldBlocks {
		if !s.Matches("pos", b, fact.String(blocksWorldGoal[b])) {
			return false
		}
	}
	return true
}

func rearrangeDoneMethod(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error) {
	if !blocksWorldDone(s) {
		return nil, fmt.Errorf("rearrange: goal not yet reached")
	}
	return []todo.Todo{}, nil
}

// rearrangeAchieveMethod tries to move one specific block straight to its
// goal position. Registered once per block, tried in a fixed order ahead
// of any exhaustive fallback — for this instance every block's goal
// position is reachable directly, so the method never needs to propose
// an intermediate move.
func rearrangeAchieveMethod(block string) domain.TaskMethodFunc {
	return func(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error) {
		target := blocksWorldGoal[block]
		if s.Matches("pos", block, fact.String(target)) {
			return nil, fmt.Errorf("rearrange: %s is already at its goal position", block)
		}
		if !blockClear(s, block) || !blockClear(s, target) {
			return nil, fmt.Errorf("rearrange: %s or %s is not clear", block, target)
		}
		return []todo.Todo{
			todo.NewAction("pickup", map[string]fact.Value{"block": fact.String(block)}),
			todo.NewAction("putdown", map[string]fact.Value{"block": fact.String(block), "to": fact.String(target)}),
			todo.NewTask("rearrange", nil),
		}, nil
	}
}

// NewBlocksWorld returns a domain for the three-block "init_1 -> goal1a"
// rearrangement: pickup/putdown actions sharing a one-block hand, and a
// "rearrange" task that recurses until every block sits at its goal
// position.
func NewBlocksWorld() *domain.Domain {
	d := domain.New()
	if err := d.RegisterAction("pickup", pickupAction); err != nil {
		panic(err)
	}
	if err := d.RegisterAction("putdown", putdownAction); err != nil {
		panic(err)
	}
	if err := d.RegisterTaskMethod("rearrange", "already-done", rearrangeDoneMethod); err != nil {
		panic(err)
	}
	for _, block := range blocksWorldBlocks {
		if err := d.RegisterTaskMethod("rearrange", "achieve-"+block, rearrangeAchieveMethod(block)); err != nil {
			panic(err)
		}
	}
	return d
}

// BlocksWorldInitialState returns init_1: pos={a->b, b->table, c->table}.
func BlocksWorldInitialState() *fact.State {
	return fact.New().
		SetFact("pos", "a", fact.String("b")).
		SetFact("pos", "b", fact.String("table")).
		SetFact("pos", "c", fact.String("table")).
		SetFact("holding", "hand", fact.String("none"))
}

// BlocksWorldTodos returns the single top-level todo that starts the
// recursive rearrangement search.
func BlocksWorldTodos() []todo.Todo {
	return []todo.Todo{todo.NewTask("rearrange", nil)}
}
