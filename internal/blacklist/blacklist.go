// Package blacklist tracks commands and methods that have already failed
// below the current search subtree, so the engine never retries them
// before backtracking past their choice point. Scoped per planning
// attempt; cheap to snapshot at a choice point because both sets are
// copy-on-write.
package blacklist

import (
	"fmt"
	"sort"

	"github.com/aria-htn/planner/internal/fact"
)

// commandKey identifies a blacklisted (name, args) pair. Args are
// rendered into a stable string so two calls with the same bindings
// collide regardless of map iteration order.
type commandKey struct {
	name string
	args string
}

// Blacklist is an immutable-by-convention pair of sets: every mutator
// returns a new Blacklist, leaving the receiver untouched, so a choice
// point can hold onto its blacklist value and "restore" it for free.
type Blacklist struct {
	commands map[commandKey]struct{}
	methods  map[string]struct{}
}

// New returns an empty blacklist.
func New() *Blacklist {
	return &Blacklist{commands: map[commandKey]struct{}{}, methods: map[string]struct{}{}}
}

func argsKey(args map[string]fact.Value) string {
	names := make([]string, 0, len(args))
	for k := range args {
		names = append(names, k)
	}
	sort.Strings(names)
	key := ""
	for _, n := range names {
		key += n + "=" + args[n].String() + ";"
	}
	return key
}

// WithBlacklistedCommand returns a new Blacklist with (name, args) added.
func (b *Blacklist) WithBlacklistedCommand(name string, args map[string]fact.Value) *Blacklist {
	next := &Blacklist{
		commands: cloneCommands(b.commands),
		methods:  b.methods,
	}
	next.commands[commandKey{name: name, args: argsKey(args)}] = struct{}{}
	return next
}

// WithBlacklistedMethod returns a new Blacklist with methodName added.
func (b *Blacklist) WithBlacklistedMethod(methodName string) *Blacklist {
	next := &Blacklist{
		commands: b.commands,
		methods:  cloneMethods(b.methods),
	}
	next.methods[methodName] = struct{}{}
	return next
}

// IsCommandBlacklisted reports whether (name, args) has already failed in
// this subtree.
func (b *Blacklist) IsCommandBlacklisted(name string, args map[string]fact.Value) bool {
	_, ok := b.commands[commandKey{name: name, args: argsKey(args)}]
	return ok
}

// IsMethodBlacklisted reports whether methodName has already failed in
// this subtree.
func (b *Blacklist) IsMethodBlacklisted(methodName string) bool {
	_, ok := b.methods[methodName]
	return ok
}

// Clear returns an empty blacklist, for starting a fresh planning attempt.
func Clear() *Blacklist { return New() }

func cloneCommands(m map[commandKey]struct{}) map[commandKey]struct{} {
	out := make(map[commandKey]struct{}, len(m)+1)
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func cloneMethods(m map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(m)+1)
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

// String renders the blacklist for diagnostics.
func (b *Blacklist) String() string {
	return fmt.Sprintf("blacklist{commands=%d, methods=%d}", len(b.commands), len(b.methods))
}
