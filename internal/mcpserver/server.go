// Package mcpserver exposes planning as MCP tools (SPEC_FULL.md §3.4):
// plan.submit (submit a domain+problem, run search synchronously up to a
// time limit, return the complete plan or a failure reason) and
// plan.inspect (read back a checkpointed session), plus a
// plan://session/{id} resource. Grounded on the teacher's
// pkg/adapters/mcp.Server: the same NewServer/registerTools/
// registerResources split, mcp.NewStructuredToolHandler for typed tool
// results, and ServeStdio for the CLI's `pocl serve --mcp stdio`.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/aretw0/pocl/internal/collab/memgraph"
	"github.com/aretw0/pocl/internal/config"
	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/metrics"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/problem"
	"github.com/aretw0/pocl/internal/search"
	"github.com/aretw0/pocl/internal/store"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SubmitResult is plan.submit's structured tool output.
type SubmitResult struct {
	SessionID string              `json:"session_id"`
	Found     bool                `json:"found"`
	Plan      *search.PlanSummary `json:"plan,omitempty"`
	Stats     search.Stats        `json:"stats"`
	Reason    string              `json:"reason,omitempty"`
}

// InspectResult is plan.inspect's structured tool output.
type InspectResult struct {
	Checkpoint search.Checkpoint `json:"checkpoint"`
}

// Server wraps a store.PlanStore and exposes it as an MCP server.
type Server struct {
	store     store.PlanStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer builds a Server backed by planStore, registering its tools
// and resources eagerly the way the teacher's NewServer does.
func NewServer(planStore store.PlanStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		store:     planStore,
		logger:    logger,
		mcpServer: server.NewMCPServer("pocl-mcp", "0.1.0"),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	submitTool := mcp.NewTool("plan.submit",
		mcp.WithDescription("Submit a domain+problem YAML pair and run search synchronously up to time_limit, returning the complete plan or a failure reason."),
		mcp.WithString("domain_path", mcp.Required(), mcp.Description("Path to the domain YAML document")),
		mcp.WithString("problem_path", mcp.Required(), mcp.Description("Path to the problem YAML document")),
		mcp.WithString("params_path", mcp.Description("Optional path to a config.Parameters YAML override file")),
		mcp.WithString("session_id", mcp.Description("Session id to checkpoint under (generated if omitted)")),
		mcp.WithOutputSchema[SubmitResult](),
	)
	s.mcpServer.AddTool(submitTool, mcp.NewStructuredToolHandler(s.handleSubmit))

	inspectTool := mcp.NewTool("plan.inspect",
		mcp.WithDescription("Read back a checkpointed search session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id to inspect")),
		mcp.WithOutputSchema[InspectResult](),
	)
	s.mcpServer.AddTool(inspectTool, mcp.NewStructuredToolHandler(s.handleInspect))
}

func (s *Server) handleSubmit(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SubmitResult, error) {
	domainPath, _ := args["domain_path"].(string)
	problemPath, _ := args["problem_path"].(string)
	paramsPath, _ := args["params_path"].(string)
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if domainPath == "" || problemPath == "" {
		return SubmitResult{}, fmt.Errorf("plan.submit: domain_path and problem_path are required")
	}

	dom, err := problem.LoadDomain(domainPath)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("plan.submit: %w", err)
	}
	prob, err := problem.LoadProblem(problemPath, dom)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("plan.submit: %w", err)
	}

	params := config.Default()
	if paramsPath != "" {
		loaded, err := config.Load(paramsPath)
		if err != nil {
			return SubmitResult{}, fmt.Errorf("plan.submit: %w", err)
		}
		params = loaded
	}

	actions := make([]*model.Action, 0, len(dom.Actions))
	for _, a := range dom.Actions {
		actions = append(actions, a)
	}
	graph := memgraph.Build(actions)

	sctx := engine.New(dom, prob, graph, s.logger, metrics.Nop{}, params, rand.New(rand.NewSource(params.Seed)))
	result := search.Run(sctx)

	cp := search.Checkpoint{
		SessionID: sessionID,
		UpdatedAt: time.Now(),
		Params:    params,
		Stats:     result.Stats,
		Done:      true,
		Found:     result.Found,
	}
	out := SubmitResult{SessionID: sessionID, Found: result.Found, Stats: result.Stats}
	if result.Found {
		summary := search.SummarizeForPlan(result.Plan)
		cp.Result = &summary
		out.Plan = &summary
	} else {
		out.Reason = "search exhausted the frontier without finding a complete, groundable plan"
	}

	if s.store != nil {
		if err := s.store.Save(ctx, sessionID, cp); err != nil {
			s.logger.Error("mcpserver: checkpoint save failed", "session_id", sessionID, "error", err)
		}
	}
	return out, nil
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (InspectResult, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return InspectResult{}, fmt.Errorf("plan.inspect: session_id is required")
	}
	if s.store == nil {
		return InspectResult{}, fmt.Errorf("plan.inspect: no session store configured")
	}
	cp, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return InspectResult{}, fmt.Errorf("plan.inspect: %w", err)
	}
	return InspectResult{Checkpoint: cp}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("plan://session/{id}", "Checkpointed search session",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if s.store == nil {
			return nil, fmt.Errorf("mcpserver: no session store configured")
		}
		sessionID := strings.TrimPrefix(request.Params.URI, "plan://session/")
		cp, err := s.store.Load(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("mcpserver: load session %s: %w", sessionID, err)
		}
		data, err := json.Marshal(cp)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
