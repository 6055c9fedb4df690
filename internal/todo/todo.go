package todo

import "github.com/aria-htn/planner/internal/fact"

// Kind discriminates the refinement elements a Todo can carry.
type Kind int

const (
	KindAction Kind = iota
	KindCommand
	KindTask
	KindUnigoal
	KindMultigoal
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindCommand:
		return "command"
	case KindTask:
		return "task"
	case KindUnigoal:
		return "unigoal"
	case KindMultigoal:
		return "multigoal"
	default:
		return "invalid"
	}
}

// Unigoal is a target assertion (predicate, subject, value) to make hold
// in the state.
type Unigoal struct {
	Predicate string
	Subject   string
	Value     fact.Value
}

// Todo is a tagged variant over {Action, Command, Task, Unigoal,
// Multigoal}. Exactly one payload is populated, selected by Kind. Each
// Todo carries optional attached metadata.
type Todo struct {
	Kind Kind

	// Action, Command, Task share name+args.
	Name string
	Args map[string]fact.Value

	// Unigoal.
	Unigoal Unigoal

	// Multigoal.
	Multigoal []Unigoal
	Tag       string

	Metadata    Metadata
	HasMetadata bool
}

// NewAction builds an Action todo.
func NewAction(name string, args map[string]fact.Value) Todo {
	return Todo{Kind: KindAction, Name: name, Args: args}
}

// NewCommand builds a Command todo.
func NewCommand(name string, args map[string]fact.Value) Todo {
	return Todo{Kind: KindCommand, Name: name, Args: args}
}

// NewTask builds a Task todo.
func NewTask(name string, args map[string]fact.Value) Todo {
	return Todo{Kind: KindTask, Name: name, Args: args}
}

// NewUnigoal builds a Unigoal todo.
func NewUnigoal(predicate, subject string, value fact.Value) Todo {
	return Todo{Kind: KindUnigoal, Unigoal: Unigoal{Predicate: predicate, Subject: subject, Value: value}}
}

// NewMultigoal builds a Multigoal todo over the given unigoals, with an
// optional tag used only for diagnostics.
func NewMultigoal(goals []Unigoal, tag string) Todo {
	return Todo{Kind: KindMultigoal, Multigoal: goals, Tag: tag}
}

// WithMetadata returns a copy of t carrying the given metadata.
func (t Todo) WithMetadata(m Metadata) Todo {
	t.Metadata = m
	t.HasMetadata = true
	return t
}

// Satisfied reports whether a unigoal already holds in the given state,
// per State.matches — the planner skips decomposition when it does.
func (u Unigoal) Satisfied(s *fact.State) bool {
	return s.Matches(u.Predicate, u.Subject, u.Value)
}

// UnsatisfiedUnigoals filters goals down to those not yet holding in s,
// preserving order. This underlies the default "unachieved-subgoals"
// multigoal method.
func UnsatisfiedUnigoals(s *fact.State, goals []Unigoal) []Unigoal {
	out := make([]Unigoal, 0, len(goals))
	for _, g := range goals {
		if !g.Satisfied(s) {
			out = append(out, g)
		}
	}
	return out
}
