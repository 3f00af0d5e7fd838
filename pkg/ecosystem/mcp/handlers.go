package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/ormasoftchile/actlint/pkg/schema"
	"github.com/ormasoftchile/actlint/pkg/validate"
)

// HandleValidate implements the actlint/validate MCP tool.
func HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}

	kind, err := kindFor(path, args)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errorResult(fmt.Sprintf("read %s: %s", path, err)), nil
	}
	return stateResult(validate.ValidateSource(string(data), kind)), nil
}

// HandleValidateAction implements the actlint/validate_action MCP tool.
func HandleValidateAction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, _ := req.GetArguments()["src"].(string)
	return stateResult(validate.ValidateAction(src)), nil
}

// HandleValidateWorkflow implements the actlint/validate_workflow MCP tool.
func HandleValidateWorkflow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src, _ := req.GetArguments()["src"].(string)
	return stateResult(validate.ValidateWorkflow(src)), nil
}

// HandleSchema implements the actlint/schema MCP tool.
func HandleSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, _ := req.GetArguments()["kind"].(string)

	var data []byte
	var err error
	switch kind {
	case "action":
		data, err = schema.GenerateActionSchema()
	case "workflow":
		data, err = schema.GenerateWorkflowSchema()
	default:
		return errorResult(fmt.Sprintf("unknown kind %q — use 'action' or 'workflow'", kind)), nil
	}

	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

// kindFor resolves the document kind for a file: an explicit kind
// argument wins, otherwise action.yml / action.yaml is an action and
// everything else is a workflow.
func kindFor(path string, args map[string]any) (validate.DocumentKind, error) {
	switch k, _ := args["kind"].(string); k {
	case "":
	case "action":
		return validate.KindAction, nil
	case "workflow":
		return validate.KindWorkflow, nil
	default:
		return "", fmt.Errorf("unknown kind %q — use 'action' or 'workflow'", k)
	}
	switch filepath.Base(path) {
	case "action.yml", "action.yaml":
		return validate.KindAction, nil
	}
	return validate.KindWorkflow, nil
}

func stateResult(state validate.ValidationState) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(state, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(data))},
		IsError: !state.IsValid(),
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}
