package api

import (
	"fmt"

	"github.com/aria-htn/planner/internal/config"
	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/planner"
	"github.com/aria-htn/planner/internal/temporal"
	"github.com/aria-htn/planner/internal/todo"
)

func resolutionFromString(name string) (temporal.Resolution, error) {
	return config.PlannerConfig{Resolution: name}.ResolvedResolution()
}

// ValueDTO is the wire representation of a fact.Value tagged union.
type ValueDTO struct {
	Kind   string     `json:"kind"`
	String string     `json:"string,omitempty"`
	Int    *int64     `json:"int,omitempty"`
	Float  *float64   `json:"float,omitempty"`
	Bool   *bool      `json:"bool,omitempty"`
	Tuple  []ValueDTO `json:"tuple,omitempty"`
}

// ToValue converts a wire value into a fact.Value.
func (d ValueDTO) ToValue() (fact.Value, error) {
	switch d.Kind {
	case "", "unset":
		return fact.Unset(), nil
	case "string":
		return fact.String(d.String), nil
	case "ref":
		return fact.Ref(d.String), nil
	case "int":
		if d.Int == nil {
			return fact.Value{}, fmt.Errorf("api: value kind %q requires \"int\"", d.Kind)
		}
		return fact.Int(*d.Int), nil
	case "float":
		if d.Float == nil {
			return fact.Value{}, fmt.Errorf("api: value kind %q requires \"float\"", d.Kind)
		}
		return fact.Float(*d.Float), nil
	case "bool":
		if d.Bool == nil {
			return fact.Value{}, fmt.Errorf("api: value kind %q requires \"bool\"", d.Kind)
		}
		return fact.Bool(*d.Bool), nil
	case "tuple":
		vs := make([]fact.Value, len(d.Tuple))
		for i, elem := range d.Tuple {
			v, err := elem.ToValue()
			if err != nil {
				return fact.Value{}, err
			}
			vs[i] = v
		}
		return fact.Tuple(vs...), nil
	default:
		return fact.Value{}, fmt.Errorf("api: unknown value kind %q", d.Kind)
	}
}

// ValueFromFact converts a fact.Value into its wire representation.
func ValueFromFact(v fact.Value) ValueDTO {
	switch v.Kind() {
	case fact.KindString:
		s, _ := v.AsString()
		return ValueDTO{Kind: "string", String: s}
	case fact.KindRef:
		s, _ := v.AsRef()
		return ValueDTO{Kind: "ref", String: s}
	case fact.KindInt:
		i, _ := v.AsInt()
		return ValueDTO{Kind: "int", Int: &i}
	case fact.KindFloat:
		f, _ := v.AsFloat()
		return ValueDTO{Kind: "float", Float: &f}
	case fact.KindBool:
		b, _ := v.AsBool()
		return ValueDTO{Kind: "bool", Bool: &b}
	case fact.KindTuple:
		tup, _ := v.AsTuple()
		out := make([]ValueDTO, len(tup))
		for i, elem := range tup {
			out[i] = ValueFromFact(elem)
		}
		return ValueDTO{Kind: "tuple", Tuple: out}
	default:
		return ValueDTO{Kind: "unset"}
	}
}

// FactDTO is one (predicate, subject, value) triple in the wire format.
type FactDTO struct {
	Predicate string   `json:"predicate"`
	Subject   string   `json:"subject"`
	Value     ValueDTO `json:"value"`
}

// UnigoalDTO is a target assertion in a multigoal or standalone goal.
type UnigoalDTO struct {
	Predicate string   `json:"predicate"`
	Subject   string   `json:"subject"`
	Value     ValueDTO `json:"value"`
}

func (d UnigoalDTO) toUnigoal() (todo.Unigoal, error) {
	v, err := d.Value.ToValue()
	if err != nil {
		return todo.Unigoal{}, err
	}
	return todo.Unigoal{Predicate: d.Predicate, Subject: d.Subject, Value: v}, nil
}

// TodoDTO is the wire representation of one refinement item. Action,
// command and task names must already be registered on the target
// domain — only their arguments travel over the wire, never callback
// bodies.
type TodoDTO struct {
	Kind      string              `json:"kind"`
	Name      string              `json:"name,omitempty"`
	Args      map[string]ValueDTO `json:"args,omitempty"`
	Predicate string              `json:"predicate,omitempty"`
	Subject   string              `json:"subject,omitempty"`
	Value     *ValueDTO           `json:"value,omitempty"`
	Multigoal []UnigoalDTO        `json:"multigoal,omitempty"`
	Tag       string              `json:"tag,omitempty"`
}

func (d TodoDTO) toTodo() (todo.Todo, error) {
	args, err := toArgs(d.Args)
	if err != nil {
		return todo.Todo{}, err
	}

	switch d.Kind {
	case "action":
		return todo.NewAction(d.Name, args), nil
	case "command":
		return todo.NewCommand(d.Name, args), nil
	case "task":
		return todo.NewTask(d.Name, args), nil
	case "unigoal":
		if d.Value == nil {
			return todo.Todo{}, fmt.Errorf("api: unigoal todo requires a value")
		}
		v, err := d.Value.ToValue()
		if err != nil {
			return todo.Todo{}, err
		}
		return todo.NewUnigoal(d.Predicate, d.Subject, v), nil
	case "multigoal":
		goals := make([]todo.Unigoal, len(d.Multigoal))
		for i, g := range d.Multigoal {
			u, err := g.toUnigoal()
			if err != nil {
				return todo.Todo{}, err
			}
			goals[i] = u
		}
		return todo.NewMultigoal(goals, d.Tag), nil
	default:
		return todo.Todo{}, fmt.Errorf("api: unknown todo kind %q", d.Kind)
	}
}

func toArgs(dtoArgs map[string]ValueDTO) (map[string]fact.Value, error) {
	if len(dtoArgs) == 0 {
		return nil, nil
	}
	out := make(map[string]fact.Value, len(dtoArgs))
	for k, v := range dtoArgs {
		val, err := v.ToValue()
		if err != nil {
			return nil, fmt.Errorf("api: arg %q: %w", k, err)
		}
		out[k] = val
	}
	return out, nil
}

// EntityRequirementDTO is the wire representation of a plan-level entity
// requirement imposed on the whole plan rather than a single command.
type EntityRequirementDTO struct {
	Type         string   `json:"type"`
	Capabilities []string `json:"capabilities"`
}

// OptionsDTO is the wire representation of planner.Options.
type OptionsDTO struct {
	MaxDepth               int                    `json:"max_depth,omitempty"`
	Verbose                bool                   `json:"verbose,omitempty"`
	Resolution             string                 `json:"resolution,omitempty"`
	PlanEntityRequirements []EntityRequirementDTO `json:"plan_entity_requirements,omitempty"`
}

// PlanRequestDTO is the full body of POST /plans.
type PlanRequestDTO struct {
	DomainID     string     `json:"domain_id"`
	InitialState []FactDTO  `json:"initial_state,omitempty"`
	Todos        []TodoDTO  `json:"todos"`
	Options      OptionsDTO `json:"options"`
}

func (req PlanRequestDTO) buildInitialState() (*fact.State, error) {
	s := fact.New()
	for _, f := range req.InitialState {
		v, err := f.Value.ToValue()
		if err != nil {
			return nil, fmt.Errorf("api: initial_state fact (%s,%s): %w", f.Predicate, f.Subject, err)
		}
		s = s.SetFact(f.Predicate, f.Subject, v)
	}
	return s, nil
}

func (req PlanRequestDTO) buildTodos() ([]todo.Todo, error) {
	out := make([]todo.Todo, len(req.Todos))
	for i, t := range req.Todos {
		converted, err := t.toTodo()
		if err != nil {
			return nil, fmt.Errorf("api: todos[%d]: %w", i, err)
		}
		out[i] = converted
	}
	return out, nil
}

func (o OptionsDTO) toPlannerOptions() (planner.Options, error) {
	resolution, err := resolutionFromString(o.Resolution)
	if err != nil {
		return planner.Options{}, err
	}
	reqs := make([]fact.EntityRequirement, len(o.PlanEntityRequirements))
	for i, r := range o.PlanEntityRequirements {
		reqs[i] = fact.EntityRequirement{Type: r.Type, Capabilities: r.Capabilities}
	}
	return planner.Options{
		MaxDepth:               o.MaxDepth,
		Verbose:                o.Verbose,
		Resolution:             resolution,
		PlanEntityRequirements: reqs,
	}, nil
}

// CommandResultDTO is one emitted command in a plan response.
type CommandResultDTO struct {
	Name              string              `json:"name"`
	Args              map[string]ValueDTO `json:"args,omitempty"`
	AssignedEntityIDs []string            `json:"assigned_entity_ids,omitempty"`
}

// PlanResponseDTO is the wire representation of a successful planner.Outcome.
type PlanResponseDTO struct {
	Commands []CommandResultDTO `json:"commands"`
}

func planResponseFromOutcome(outcome *planner.Outcome) PlanResponseDTO {
	commands := make([]CommandResultDTO, len(outcome.Commands))
	for i, c := range outcome.Commands {
		args := make(map[string]ValueDTO, len(c.Args))
		for k, v := range c.Args {
			args[k] = ValueFromFact(v)
		}
		commands[i] = CommandResultDTO{
			Name:              c.Name,
			Args:              args,
			AssignedEntityIDs: c.AssignedEntityIDs,
		}
	}
	return PlanResponseDTO{Commands: commands}
}

// ErrorResponseDTO is the wire representation of a planner.Error.
type ErrorResponseDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func errorResponseFromPlannerError(err *planner.Error) ErrorResponseDTO {
	return ErrorResponseDTO{Kind: err.Kind.String(), Message: err.Message}
}
