package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/aria-htn/planner/internal/planner"
	"github.com/aria-htn/planner/internal/store"
)

// Handlers bundles the dependencies the HTTP surface dispatches into: a
// registry of live domains to plan against, and a store for recording
// plan attempts.
type Handlers struct {
	Registry *DomainRegistry
	Plans    store.PlanStore
}

// NewHandlers builds a Handlers bundle.
func NewHandlers(registry *DomainRegistry, plans store.PlanStore) *Handlers {
	return &Handlers{Registry: registry, Plans: plans}
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "htn-planner",
	})
}

// PostPlan handles POST /plans: validates the request body against the
// plan request JSON Schema, resolves the named domain, runs the search
// engine and returns the serialized outcome.
func (h *Handlers) PostPlan(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	if err := validatePlanRequestJSON(body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req PlanRequestDTO
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	d, err := h.Registry.Get(req.DomainID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	initialState, err := req.buildInitialState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	todos, err := req.buildTodos()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts, err := req.Options.toPlannerOptions()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e := planner.NewEngine(d)
	outcome, planErr := e.Plan(initialState, todos, opts)

	record := store.PlanRecord{ID: uuid.NewString(), DomainID: req.DomainID, CreatedAt: time.Now()}
	w.Header().Set("Content-Type", "application/json")

	if planErr != nil {
		record.Status = "failed"
		record.ErrorKind = planErr.Kind.String()
		record.ErrorMessage = planErr.Message
		if h.Plans != nil {
			if err := h.Plans.RecordPlan(record); err != nil {
				log.Printf("api: failed to record plan attempt: %v", err)
			}
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(errorResponseFromPlannerError(planErr))
		return
	}

	record.Status = "succeeded"
	record.CommandCount = len(outcome.Commands)
	if h.Plans != nil {
		if err := h.Plans.RecordPlan(record); err != nil {
			log.Printf("api: failed to record plan attempt: %v", err)
		}
	}
	json.NewEncoder(w).Encode(planResponseFromOutcome(outcome))
}
