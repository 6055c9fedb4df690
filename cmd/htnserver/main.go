// Command htnserver runs the HTN planner as an HTTP service: domains are
// registered in process, plan requests arrive as JSON over POST /plans,
// and every attempt is recorded to a store for later audit.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/aria-htn/planner/internal/api"
	"github.com/aria-htn/planner/internal/config"
	"github.com/aria-htn/planner/internal/examples"
	"github.com/aria-htn/planner/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (optional)")
	dbPath := flag.String("db", "", "path to a SQLite database file; empty uses an in-memory store")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("htnserver: %v", err)
	}

	var st store.Store
	if *dbPath == "" {
		st = store.NewMemoryStore()
		log.Printf("htnserver: using an in-memory store")
	} else {
		sqliteStore, err := store.OpenSQLite(*dbPath)
		if err != nil {
			log.Fatalf("htnserver: %v", err)
		}
		st = sqliteStore
		log.Printf("htnserver: using SQLite store at %s", *dbPath)
	}
	defer st.Close()

	registry := api.NewDomainRegistry()

	registerDemo := func(id, description, manifestPath string) {
		log.Printf("htnserver: registered demo domain %q", id)
		if err := st.CreateDomain(store.DomainRecord{
			ID:           id,
			Name:         id,
			Description:  description,
			ManifestPath: manifestPath,
			CreatedAt:    time.Now(),
		}); err != nil {
			log.Printf("htnserver: failed to record demo domain metadata for %q: %v", id, err)
		}
	}

	registry.Register("fox-geese-corn", examples.NewFoxGeeseCorn())
	registerDemo("fox-geese-corn", "classic river-crossing puzzle with a capacity-limited boat", "domains/fox-geese-corn.manifest.yaml")

	registry.Register("blocks-world", examples.NewBlocksWorld())
	registerDemo("blocks-world", "three-block rearrangement from init_1 to goal1a", "")

	registry.Register("disassembly", examples.NewDisassembly())
	registerDemo("disassembly", "precedence- and capacity-constrained removal schedule", "")

	authSecret := os.Getenv("HTNSERVER_AUTH_SECRET")
	auth := api.NewAuthMiddleware(authSecret)
	if authSecret != "" {
		log.Printf("htnserver: bearer token authentication enabled")
	}

	handlers := api.NewHandlers(registry, st)
	server := api.NewServer(cfg.Server.Port, handlers, auth)
	if err := server.Run(); err != nil {
		log.Fatalf("htnserver: %v", err)
	}
}
