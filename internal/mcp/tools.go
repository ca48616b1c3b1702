package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes a callable tool
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "add_record",
			Description: "Add a credit record. The record starts unpaid; date defaults to today.",
			InputSchema: object(recordProps(
				"Entry date YYYY-MM-DD (defaults to today)",
				"Due date YYYY-MM-DD",
			), "name", "amount"),
		},
		{
			Name:        "update_record",
			Description: "Replace the editable fields of a record. Unknown ids are ignored (changed=false).",
			InputSchema: object(withID(recordProps(
				"Entry date YYYY-MM-DD (omit to keep)",
				"Due date YYYY-MM-DD (omit to clear)",
			)), "id", "name", "amount"),
		},
		{
			Name:        "mark_paid",
			Description: "Mark a record as paid. Idempotent.",
			InputSchema: byID(),
		},
		{
			Name:        "delete_record",
			Description: "Delete a record. Deleting a missing record is a no-op.",
			InputSchema: byID(),
		},
		{
			Name:        "prune_paid",
			Description: "Delete every paid record and report how many were removed.",
			InputSchema: object(nil),
		},
		{
			Name:        "list_records",
			Description: "List records filtered by a case-insensitive name search and payment status, with a ledger summary.",
			InputSchema: object(map[string]any{
				"search": prop("string", "Substring of the customer name"),
				"status": map[string]any{
					"type":        "string",
					"description": "Payment status filter",
					"enum":        []string{"all", "paid", "unpaid"},
				},
			}),
		},
		{
			Name:        "get_record",
			Description: "Get one record by ID.",
			InputSchema: byID(),
		},
		{
			Name:        "get_summary",
			Description: "Count records by payment state and total the pending amount.",
			InputSchema: object(nil),
		},
		{
			Name:        "export_backup",
			Description: "Export the whole ledger as backup JSON text.",
			InputSchema: object(nil),
		},
		{
			Name:        "import_backup",
			Description: "Replace the whole ledger with backup JSON text. Rejected backups leave the ledger unchanged.",
			InputSchema: object(map[string]any{
				"data": prop("string", "Backup file contents: a JSON array of records"),
			}, "data"),
		},
		{
			Name:        "build_reminder",
			Description: "Build a WhatsApp payment reminder link and message for a record.",
			InputSchema: byID(),
		},
		{
			Name:        "get_activity",
			Description: "List recent ledger changes, newest first.",
			InputSchema: object(map[string]any{
				"record_id": prop("integer", "Only changes to this record"),
				"type":      prop("string", "Activity type, e.g. marked_paid"),
				"limit":     prop("integer", "Maximum entries (default 50)"),
			}),
		},
	}
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

func object(props map[string]any, required ...string) map[string]any {
	if props == nil {
		props = map[string]any{}
	}
	schema := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func recordProps(dateDesc, dueDesc string) map[string]any {
	return map[string]any{
		"name":   prop("string", "Customer name (required)"),
		"phone":  prop("string", "Phone number digits, used for reminders"),
		"amount": prop("string", "Amount owed as entered, e.g. \"500\" (required)"),
		"note":   prop("string", "Free-form note"),
		"date":   prop("string", dateDesc),
		"due":    prop("string", dueDesc),
	}
}

// Record ids are snowflakes; clients may pass them as strings to avoid
// float rounding.
func withID(props map[string]any) map[string]any {
	props["id"] = map[string]any{
		"type":        []string{"integer", "string"},
		"description": "Record ID",
	}
	return props
}

func byID() map[string]any {
	return object(withID(map[string]any{}), "id")
}

// registerTools exposes every catalog entry through the handler. Domain
// errors become tool results with IsError set so the agent can read them.
func registerTools(server *sdkmcp.Server, handler *Handler, logger *slog.Logger) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			result, err := handler.Handle(ctx, name, args)
			if err != nil {
				if logger != nil {
					logger.Debug("tool call failed", "tool", name, "error", err)
				}
				return toolError(err), nil
			}
			data, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("encoding %s result: %w", name, err)
			}
			return &sdkmcp.CallToolResult{
				Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
			}, nil
		})
	}
}

func toolError(err error) *sdkmcp.CallToolResult {
	text := err.Error()
	if apiErr := MapError(err); apiErr != nil {
		if data, mErr := json.Marshal(apiErr); mErr == nil {
			text = string(data)
		}
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
		IsError: true,
	}
}
