// Package mcpserver exposes the tool registry and the reference resources
// over the Model Context Protocol, on stdio or streamable HTTP.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aatumaykin/cronty/internal/constants"
	"github.com/aatumaykin/cronty/internal/logger"
	"github.com/aatumaykin/cronty/internal/resources"
	"github.com/aatumaykin/cronty/internal/tools"
)

// Server wraps an MCP server bound to a tool executor.
type Server struct {
	mcp      *server.MCPServer
	executor *tools.Executor
	logger   *logger.Logger
}

// New registers every tool of the executor's registry and every static
// resource on a fresh MCP server.
func New(executor *tools.Executor, version string, log *logger.Logger) (*Server, error) {
	if executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if log == nil {
		log = logger.Nop()
	}

	s := &Server{
		mcp: server.NewMCPServer(
			constants.ServerName,
			version,
			server.WithToolCapabilities(true),
			server.WithResourceCapabilities(false, false),
			server.WithRecovery(),
		),
		executor: executor,
		logger:   log.Named("mcp"),
	}

	for _, tool := range executor.Registry().List() {
		def, err := toolDefinition(tool)
		if err != nil {
			return nil, err
		}
		s.mcp.AddTool(def, s.handleTool(tool.Name()))
	}

	for _, res := range resources.All() {
		s.mcp.AddResource(
			mcp.NewResource(res.URI, res.Name,
				mcp.WithResourceDescription(res.Description),
				mcp.WithMIMEType(res.MIMEType),
			),
			handleResource(res),
		)
	}

	return s, nil
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves newline-delimited JSON-RPC on in/out until ctx is
// cancelled or in closes. Nothing else may write to out meanwhile.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Slog().Handler(), slog.LevelError))

	s.logger.Info("serving MCP over stdio")
	err := stdio.Listen(ctx, in, out)
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)) {
		return nil
	}
	return err
}

func toolDefinition(tool tools.Tool) (mcp.Tool, error) {
	schema, err := json.Marshal(tool.Parameters())
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("failed to marshal schema of %s: %w", tool.Name(), err)
	}

	def := mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), schema)
	if ro, ok := tool.(tools.ReadOnlyTool); ok && ro.ReadOnly() {
		def.Annotations.ReadOnlyHint = mcp.ToBoolPtr(true)
		def.Annotations.DestructiveHint = mcp.ToBoolPtr(false)
	}
	return def, nil
}

// handleTool forwards a call to the executor. Tool failures are reported
// inside the result so the agent can read the suggestion.
func (s *Server) handleTool(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		if args == nil {
			args = map[string]any{}
		}
		raw, err := json.Marshal(args)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments for %s: %v", name, err)), nil
		}

		result := s.executor.Execute(ctx, tools.ToolCall{Name: name, Arguments: string(raw)})
		if result.Error != nil {
			return mcp.NewToolResultError(result.Text()), nil
		}
		return mcp.NewToolResultStructured(result.Content, result.Text()), nil
	}
}

func handleResource(res resources.Resource) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		body, err := res.Read()
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      res.URI,
				MIMEType: res.MIMEType,
				Text:     body,
			},
		}, nil
	}
}
