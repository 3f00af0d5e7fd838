package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new MCP server with actlint tools registered.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer(
		"actlint",
		version,
		server.WithToolCapabilities(true),
	)

	// Register tools
	s.AddTool(
		mcp.NewTool("actlint/validate",
			mcp.WithDescription("Validate a GitHub Action or Workflow YAML file"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the YAML file")),
			mcp.WithString("kind", mcp.Description("Document kind: 'action' or 'workflow' (default: by file name)")),
		),
		HandleValidate,
	)

	s.AddTool(
		mcp.NewTool("actlint/validate_action",
			mcp.WithDescription("Validate inline YAML source as a GitHub Action definition"),
			mcp.WithString("src", mcp.Required(), mcp.Description("Action YAML source text")),
		),
		HandleValidateAction,
	)

	s.AddTool(
		mcp.NewTool("actlint/validate_workflow",
			mcp.WithDescription("Validate inline YAML source as a GitHub Workflow definition"),
			mcp.WithString("src", mcp.Required(), mcp.Description("Workflow YAML source text")),
		),
		HandleValidateWorkflow,
	)

	s.AddTool(
		mcp.NewTool("actlint/schema",
			mcp.WithDescription("Export the JSON Schema for a document kind"),
			mcp.WithString("kind", mcp.Required(), mcp.Description("Document kind: 'action' or 'workflow'")),
		),
		HandleSchema,
	)

	return s
}
