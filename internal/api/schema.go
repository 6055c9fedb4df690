package api

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const planRequestSchemaJSON = `{
	"type": "object",
	"required": ["domain_id", "todos"],
	"properties": {
		"domain_id": {"type": "string", "minLength": 1},
		"initial_state": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["predicate", "subject", "value"],
				"properties": {
					"predicate": {"type": "string", "minLength": 1},
					"subject": {"type": "string", "minLength": 1},
					"value": {"type": "object"}
				}
			}
		},
		"todos": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["kind"],
				"properties": {
					"kind": {"enum": ["action", "command", "task", "unigoal", "multigoal"]}
				}
			}
		},
		"options": {"type": "object"}
	}
}`

var planRequestSchema *jsonschema.Schema

func init() {
	var doc any
	if err := json.Unmarshal([]byte(planRequestSchemaJSON), &doc); err != nil {
		panic(fmt.Sprintf("api: invalid embedded plan request schema: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("plan-request.json", doc); err != nil {
		panic(fmt.Sprintf("api: failed to register plan request schema: %v", err))
	}
	compiled, err := c.Compile("plan-request.json")
	if err != nil {
		panic(fmt.Sprintf("api: failed to compile plan request schema: %v", err))
	}
	planRequestSchema = compiled
}

// validatePlanRequestJSON checks a raw request body against the plan
// request JSON Schema before it is unmarshaled into PlanRequestDTO.
func validatePlanRequestJSON(body []byte) error {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("api: invalid JSON: %w", err)
	}
	if err := planRequestSchema.Validate(doc); err != nil {
		return fmt.Errorf("api: request failed schema validation: %w", err)
	}
	return nil
}
