// Command htnplan runs a single planning attempt against one of the
// built-in demo domains from the command line, optionally validating a
// domain manifest against the domain's live method registration before
// planning.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aria-htn/planner/internal/api"
	"github.com/aria-htn/planner/internal/domain"
	"github.com/aria-htn/planner/internal/domainconfig"
	"github.com/aria-htn/planner/internal/examples"
	"github.com/aria-htn/planner/internal/fact"
	"github.com/aria-htn/planner/internal/planner"
	"github.com/aria-htn/planner/internal/todo"
)

func builtinDomain(name string) (*domain.Domain, *fact.State, []todo.Todo, error) {
	switch name {
	case "fox-geese-corn":
		return examples.NewFoxGeeseCorn(), examples.FoxGeeseCornInitialState(), examples.FoxGeeseCornTodos(), nil
	case "blocks-world":
		return examples.NewBlocksWorld(), examples.BlocksWorldInitialState(), examples.BlocksWorldTodos(), nil
	case "disassembly":
		return examples.NewDisassembly(), examples.DisassemblyInitialState(), examples.DisassemblyTodos(), nil
	default:
		return nil, nil, nil, fmt.Errorf("htnplan: unknown domain %q (known: fox-geese-corn, blocks-world, disassembly)", name)
	}
}

func main() {
	domainName := flag.String("domain", "fox-geese-corn", "built-in domain to plan against")
	manifestPath := flag.String("manifest", "", "optional YAML manifest to validate against the domain's registered methods")
	maxDepth := flag.Int("max-depth", 0, "decomposition depth bound (0 uses the engine default)")
	verbose := flag.Bool("verbose", false, "set the planner's Verbose option (no decision trace is printed)")
	flag.Parse()

	d, initial, todos, err := builtinDomain(*domainName)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *manifestPath != "" {
		manifest, err := domainconfig.LoadManifest(*manifestPath)
		if err != nil {
			log.Fatalf("htnplan: %v", err)
		}
		if err := manifest.Validate(); err != nil {
			log.Fatalf("htnplan: %v", err)
		}
		if err := manifest.ValidateAgainstDomain(d); err != nil {
			log.Fatalf("htnplan: manifest does not match domain: %v", err)
		}
		log.Printf("htnplan: manifest %s matches the domain's registered methods", *manifestPath)
	}

	e := planner.NewEngine(d)
	outcome, planErr := e.Plan(initial, todos, planner.Options{MaxDepth: *maxDepth, Verbose: *verbose})
	if planErr != nil {
		fmt.Fprintf(os.Stderr, "planning failed: %s: %s\n", planErr.Kind, planErr.Message)
		os.Exit(1)
	}

	type commandOut struct {
		Name string                  `json:"name"`
		Args map[string]api.ValueDTO `json:"args,omitempty"`
	}
	out := make([]commandOut, len(outcome.Commands))
	for i, c := range outcome.Commands {
		args := make(map[string]api.ValueDTO, len(c.Args))
		for k, v := range c.Args {
			args[k] = api.ValueFromFact(v)
		}
		out[i] = commandOut{Name: c.Name, Args: args}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("htnplan: failed to encode plan: %v", err)
	}
}
