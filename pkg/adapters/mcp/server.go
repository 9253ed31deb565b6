package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// EnvironmentsURI is the resource exposing the catalog.
const EnvironmentsURI = "envswitch://environments"

// Engine defines what the MCP server needs from the envswitch engine.
type Engine interface {
	Environments() []domain.Environment
	Lookup(name string) (domain.Environment, error)
	Switch(ctx context.Context, name string) (domain.RenameReport, error)
	Current(ctx context.Context) (*domain.ActivationRecord, error)
}

// SwitchArgs are the arguments of the switch_environment tool.
type SwitchArgs struct {
	Name string `json:"name"`
}

// SwitchResponse is the structured result of switch_environment.
type SwitchResponse struct {
	Environment string   `json:"environment" jsonschema_description:"The activated environment"`
	Renamed     []string `json:"renamed" jsonschema_description:"Workspaces renamed, as 'source -> target'"`
	Failed      []string `json:"failed" jsonschema_description:"Renames that failed, with the reason"`
}

// Server exposes the engine as an MCP server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("envswitch-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: list_environments
	s.mcpServer.AddTool(mcp.NewTool("list_environments",
		mcp.WithDescription("List the environments defined in the catalog."),
	), s.handleList)

	// TOOL: show_environment
	s.mcpServer.AddTool(mcp.NewTool("show_environment",
		mcp.WithDescription("Get the full definition of one environment."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Environment name")),
	), s.handleShow)

	// TOOL: switch_environment
	s.mcpServer.AddTool(mcp.NewTool("switch_environment",
		mcp.WithDescription("Switch to an environment, renaming the window manager workspaces to its labels."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Environment name")),
		mcp.WithOutputSchema[SwitchResponse](),
	), mcp.NewStructuredToolHandler(s.handleSwitch))

	// TOOL: current_environment
	s.mcpServer.AddTool(mcp.NewTool("current_environment",
		mcp.WithDescription("Get the most recently activated environment."),
	), s.handleCurrent)
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.engine.Environments())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleShow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	env, err := s.engine.Lookup(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonBytes, err := json.Marshal(env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleSwitch(ctx context.Context, request mcp.CallToolRequest, args SwitchArgs) (SwitchResponse, error) {
	if args.Name == "" {
		return SwitchResponse{}, errors.New("name is required")
	}

	report, err := s.engine.Switch(ctx, args.Name)
	if err != nil {
		return SwitchResponse{}, fmt.Errorf("switch failed: %w", err)
	}

	resp := SwitchResponse{
		Environment: report.Environment,
		Renamed:     []string{},
		Failed:      []string{},
	}
	for _, res := range report.Results {
		op := res.Operation
		if res.Err != nil {
			resp.Failed = append(resp.Failed, fmt.Sprintf("%s -> %s: %v", op.Source, op.Target, res.Err))
			continue
		}
		resp.Renamed = append(resp.Renamed, op.Source+" -> "+op.Target)
	}
	return resp, nil
}

func (s *Server) handleCurrent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := s.engine.Current(ctx)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return mcp.NewToolResultText("no environment has been activated yet"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonBytes, err := json.Marshal(rec)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: envswitch://environments
	s.mcpServer.AddResource(mcp.NewResource(EnvironmentsURI, "Environment Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Environments())
		if err != nil {
			return nil, fmt.Errorf("failed to encode environments: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      EnvironmentsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
