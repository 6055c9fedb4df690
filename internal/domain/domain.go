// Package domain holds the registries of actions, commands and
// decomposition methods a planner searches over: the callback tables the
// engine dispatches into, grouped and ordered exactly as the search
// algorithm consumes them.
package domain

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/todo"
)

// ActionFunc is the signature shared by actions and commands: given the
// current state and arguments, produce a new state plus effect metadata,
// or an error describing why the precondition failed.
type ActionFunc func(s *fact.State, args map[string]fact.Value) (*fact.State, todo.Metadata, error)

// TaskMethodFunc decomposes a task invocation into a list of subtodos.
type TaskMethodFunc func(s *fact.State, args map[string]fact.Value) ([]todo.Todo, error)

// UnigoalMethodFunc decomposes a goal (subject, value) pair into subtodos.
type UnigoalMethodFunc func(s *fact.State, subject string, value fact.Value) ([]todo.Todo, error)

// MultigoalMethodFunc decomposes a multigoal into subtodos.
type MultigoalMethodFunc func(s *fact.State, goals []todo.Unigoal) ([]todo.Todo, error)

// NamedMethod pairs a method with the name used for blacklist lookups and
// diagnostics; method names must be unique within their kind.
type NamedMethod[F any] struct {
	Name string
	Fn   F
}

// Domain is a closed collection of actions, commands and methods. Built up
// via the Register* calls and then frozen by use; safe for concurrent
// reads once construction is complete.
type Domain struct {
	mu sync.RWMutex

	actions  map[string]ActionFunc
	commands map[string]ActionFunc

	taskMethods     map[string][]NamedMethod[TaskMethodFunc]
	unigoalMethods  map[string][]NamedMethod[UnigoalMethodFunc]
	multigoalMethod []NamedMethod[MultigoalMethodFunc]

	methodNames map[string]struct{} // dedup across all method kinds
}

// New returns an empty domain with the default always-registered
// "unachieved-subgoals" multigoal method installed.
func New() *Domain {
	d := &Domain{
		actions:        make(map[string]ActionFunc),
		commands:       make(map[string]ActionFunc),
		taskMethods:    make(map[string][]NamedMethod[TaskMethodFunc]),
		unigoalMethods: make(map[string][]NamedMethod[UnigoalMethodFunc]),
		methodNames:    make(map[string]struct{}),
	}
	d.multigoalMethod = append(d.multigoalMethod, NamedMethod[MultigoalMethodFunc]{
		Name: "unachieved-subgoals",
		Fn:   defaultMultigoalMethod,
	})
	d.methodNames["unachieved-subgoals"] = struct{}{}
	return d
}

func defaultMultigoalMethod(s *fact.State, goals []todo.Unigoal) ([]todo.Todo, error) {
	remaining := todo.UnsatisfiedUnigoals(s, goals)
	out := make([]todo.Todo, 0, len(remaining))
	for _, g := range remaining {
		out = append(out, todo.NewUnigoal(g.Predicate, g.Subject, g.Value))
	}
	return out, nil
}

// RegisterAction adds a primitive action. Returns an error if the name
// collides with an existing action or command.
func (d *Domain) RegisterAction(name string, fn ActionFunc) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkActionName(name); err != nil {
		return err
	}
	d.actions[name] = fn
	return nil
}

// RegisterCommand adds a command. Returns an error if the name collides
// with an existing action or command.
func (d *Domain) RegisterCommand(name string, fn ActionFunc) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkActionName(name); err != nil {
		return err
	}
	d.commands[name] = fn
	return nil
}

func (d *Domain) checkActionName(name string) error {
	if _, ok := d.actions[name]; ok {
		return fmt.Errorf("domain: action/command name %q already registered", name)
	}
	if _, ok := d.commands[name]; ok {
		return fmt.Errorf("domain: action/command name %q already registered", name)
	}
	return nil
}

// RegisterTaskMethod appends a method to taskName's try-order list.
func (d *Domain) RegisterTaskMethod(taskName, methodName string, fn TaskMethodFunc) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkMethodName(methodName); err != nil {
		return err
	}
	d.taskMethods[taskName] = append(d.taskMethods[taskName], NamedMethod[TaskMethodFunc]{Name: methodName, Fn: fn})
	return nil
}

// RegisterUnigoalMethod appends a method to predicate's try-order list.
func (d *Domain) RegisterUnigoalMethod(predicate, methodName string, fn UnigoalMethodFunc) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkMethodName(methodName); err != nil {
		return err
	}
	d.unigoalMethods[predicate] = append(d.unigoalMethods[predicate], NamedMethod[UnigoalMethodFunc]{Name: methodName, Fn: fn})
	return nil
}

// RegisterMultigoalMethod appends a multigoal method, tried after the
// default "unachieved-subgoals" method and any previously registered ones.
func (d *Domain) RegisterMultigoalMethod(methodName string, fn MultigoalMethodFunc) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkMethodName(methodName); err != nil {
		return err
	}
	d.multigoalMethod = append(d.multigoalMethod, NamedMethod[MultigoalMethodFunc]{Name: methodName, Fn: fn})
	return nil
}

func (d *Domain) checkMethodName(name string) error {
	if _, ok := d.methodNames[name]; ok {
		return fmt.Errorf("domain: method name %q already registered", name)
	}
	d.methodNames[name] = struct{}{}
	return nil
}

// Action looks up a registered action by name.
func (d *Domain) Action(name string) (ActionFunc, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn, ok := d.actions[name]
	return fn, ok
}

// Command looks up a registered command by name.
func (d *Domain) Command(name string) (ActionFunc, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn, ok := d.commands[name]
	return fn, ok
}

// TaskMethods returns the ordered method list for a task name.
func (d *Domain) TaskMethods(taskName string) []NamedMethod[TaskMethodFunc] {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]NamedMethod[TaskMethodFunc](nil), d.taskMethods[taskName]...)
}

// UnigoalMethods returns the ordered method list for a predicate.
func (d *Domain) UnigoalMethods(predicate string) []NamedMethod[UnigoalMethodFunc] {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]NamedMethod[UnigoalMethodFunc](nil), d.unigoalMethods[predicate]...)
}

// MultigoalMethods returns the ordered multigoal method list, default
// method first.
func (d *Domain) MultigoalMethods() []NamedMethod[MultigoalMethodFunc] {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]NamedMethod[MultigoalMethodFunc](nil), d.multigoalMethod...)
}

// ActionNames returns every registered action and command name, sorted,
// for diagnostics.
func (d *Domain) ActionNames() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.actions)+len(d.commands))
	for n := range d.actions {
		names = append(names, n)
	}
	for n := range d.commands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
