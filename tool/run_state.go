package tool

import (
	"fmt"

	"github.com/Tpanarchist/AgentForge/core"
)

// RunStateTool provides operations over the owning run through ToolContext.
//
// It demonstrates how tools integrate with the run infrastructure: reading and
// writing scratch values staged between lifecycle stages, persisting results,
// and inspecting run identity. Processing stages that route model function
// calls can register it to give the model controlled access to run state.
type RunStateTool struct {
	name        string
	description string
}

// NewRunStateTool creates a new run state tool.
//
// This tool provides operations for:
//   - Reading and writing run-scoped scratch values
//   - Persisting a result through the run's result store
//   - Inspecting the run and agent identity
//
// Returns a fully initialized RunStateTool that implements the Tool interface.
func NewRunStateTool() *RunStateTool {
	return &RunStateTool{
		name: "run_state",
		description: "Manages run-scoped state and persistence. " +
			"Supports operations: get_value, set_value, persist_result, run_info.",
	}
}

// Name returns the tool identifier.
func (t *RunStateTool) Name() string {
	return t.name
}

// Description returns the tool description.
func (t *RunStateTool) Description() string {
	return t.description
}

// Parameters returns the JSON schema for tool parameters.
func (t *RunStateTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"operation": map[string]any{
				"type": "string",
				"enum": []string{
					"get_value", "set_value", "persist_result", "run_info",
				},
				"description": "The run state operation to perform",
			},
			"key": map[string]any{
				"type":        "string",
				"description": "Value key for get_value/set_value operations",
			},
			"value": map[string]any{
				"description": "Value for set_value operations (any type)",
			},
			"result": map[string]any{
				"description": "Result payload for persist_result operations (any type)",
			},
		},
		"required": []string{"operation"},
	}
}

// Call implements the Tool interface with structured arguments.
func (t *RunStateTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	operation, ok := args["operation"].(string)
	if !ok {
		return nil, fmt.Errorf("operation parameter is required")
	}

	switch operation {
	case "get_value":
		return t.handleGetValue(args, toolCtx)
	case "set_value":
		return t.handleSetValue(args, toolCtx)
	case "persist_result":
		return t.handlePersistResult(args, toolCtx)
	case "run_info":
		return t.handleRunInfo(toolCtx)
	default:
		return nil, fmt.Errorf("unknown operation: %s", operation)
	}
}

// handleGetValue retrieves a scratch value from the owning run.
func (t *RunStateTool) handleGetValue(args map[string]any, toolCtx *core.ToolContext) (any, error) {
	key, ok := args["key"].(string)
	if !ok {
		return nil, fmt.Errorf("key parameter is required for get_value operation")
	}

	value, exists := toolCtx.GetValue(key)
	if !exists {
		return map[string]any{
			"key":    key,
			"exists": false,
			"value":  nil,
		}, nil
	}

	return map[string]any{
		"key":    key,
		"exists": true,
		"value":  value,
	}, nil
}

// handleSetValue stages a scratch value on the owning run.
func (t *RunStateTool) handleSetValue(args map[string]any, toolCtx *core.ToolContext) (any, error) {
	key, ok := args["key"].(string)
	if !ok {
		return nil, fmt.Errorf("key parameter is required for set_value operation")
	}

	value := args["value"] // Can be any type

	toolCtx.SetValue(key, value)

	return map[string]any{
		"key":     key,
		"value":   value,
		"success": true,
		"message": fmt.Sprintf("Value '%s' set successfully", key),
	}, nil
}

// handlePersistResult stores a result through the run's result store.
func (t *RunStateTool) handlePersistResult(args map[string]any, toolCtx *core.ToolContext) (any, error) {
	result, ok := args["result"]
	if !ok {
		return nil, fmt.Errorf("result parameter is required for persist_result operation")
	}

	if err := toolCtx.Persist(result); err != nil {
		return nil, fmt.Errorf("failed to persist result: %w", err)
	}

	return map[string]any{
		"agent":   toolCtx.AgentName(),
		"run_id":  toolCtx.RunID(),
		"success": true,
		"message": "Result persisted successfully",
	}, nil
}

// handleRunInfo reports the identity of the owning run.
func (t *RunStateTool) handleRunInfo(toolCtx *core.ToolContext) (any, error) {
	return map[string]any{
		"run_id":     toolCtx.RunID(),
		"agent_name": toolCtx.AgentName(),
		"agent_type": toolCtx.AgentType(),
		"call_id":    toolCtx.CallID(),
	}, nil
}
