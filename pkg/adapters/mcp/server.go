package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/vigil"
	"github.com/aretw0/vigil/pkg/domain"
	"github.com/aretw0/vigil/pkg/ports"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

// MetricsURI is the resource exposing the current counters.
const MetricsURI = "vigil://metrics"

// WorkflowsResponse wraps a workflow list for structured output.
type WorkflowsResponse struct {
	Workflows []domain.Workflow `json:"workflows" jsonschema_description:"Registered workflows in registration order"`
}

// AgentsResponse wraps an agent list for structured output.
type AgentsResponse struct {
	Agents []domain.Agent `json:"agents" jsonschema_description:"Registered agents in registration order"`
}

// AlertsResponse wraps bottleneck alerts for structured output.
type AlertsResponse struct {
	Alerts []domain.Alert `json:"alerts" jsonschema_description:"Phase alerts first, then agent alerts"`
}

// ResultResponse reports the outcome of an update.
type ResultResponse struct {
	Result domain.Result `json:"result" jsonschema_description:"applied, not_found or rejected"`
}

// Server wraps a Monitor and exposes it as an MCP Server.
type Server struct {
	monitor   ports.Monitor
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(monitor ports.Monitor) *Server {
	s := &Server{
		monitor:   monitor,
		mcpServer: server.NewMCPServer("vigil-mcp", strings.TrimSpace(vigil.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: cors.AllowAll().Handler(mux),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_workflows",
		mcp.WithDescription("List every monitored workflow with its phases and alerts."),
		mcp.WithOutputSchema[WorkflowsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListWorkflows))

	s.mcpServer.AddTool(mcp.NewTool("get_workflow",
		mcp.WithDescription("Get one workflow by ID."),
		mcp.WithString("workflow_id", mcp.Required(), mcp.Description("Workflow ID")),
		mcp.WithOutputSchema[domain.Workflow](),
	), mcp.NewStructuredToolHandler(s.handleGetWorkflow))

	s.mcpServer.AddTool(mcp.NewTool("list_agents",
		mcp.WithDescription("List every registered agent with status and utilization."),
		mcp.WithOutputSchema[AgentsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListAgents))

	s.mcpServer.AddTool(mcp.NewTool("get_metrics",
		mcp.WithDescription("Get workflow counters and per-agent utilization."),
		mcp.WithOutputSchema[domain.Metrics](),
	), mcp.NewStructuredToolHandler(s.handleGetMetrics))

	s.mcpServer.AddTool(mcp.NewTool("check_bottlenecks",
		mcp.WithDescription("Scan for long-running phases and overutilized agents. Omit workflow_id to scan every workflow."),
		mcp.WithString("workflow_id", mcp.Description("Workflow ID (optional)")),
		mcp.WithOutputSchema[AlertsResponse](),
	), mcp.NewStructuredToolHandler(s.handleCheckBottlenecks))

	s.mcpServer.AddTool(mcp.NewTool("predict_delivery",
		mcp.WithDescription("Estimate when a workflow will complete from its finished phases."),
		mcp.WithString("workflow_id", mcp.Required(), mcp.Description("Workflow ID")),
		mcp.WithOutputSchema[domain.Prediction](),
	), mcp.NewStructuredToolHandler(s.handlePredictDelivery))

	s.mcpServer.AddTool(mcp.NewTool("update_phase_status",
		mcp.WithDescription("Move a workflow phase to pending, active, completed or failed."),
		mcp.WithString("workflow_id", mcp.Required(), mcp.Description("Workflow ID")),
		mcp.WithString("phase", mcp.Required(), mcp.Description("Phase name")),
		mcp.WithString("status", mcp.Required(), mcp.Description("New phase status"),
			mcp.Enum("pending", "active", "completed", "failed")),
		mcp.WithString("assignee", mcp.Description("Agent assigned to the phase")),
		mcp.WithString("notes", mcp.Description("Free-form notes")),
		mcp.WithOutputSchema[ResultResponse](),
	), mcp.NewStructuredToolHandler(s.handleUpdatePhaseStatus))

	s.mcpServer.AddTool(mcp.NewTool("update_agent_status",
		mcp.WithDescription("Move an agent to idle, busy or offline."),
		mcp.WithString("agent_id", mcp.Required(), mcp.Description("Agent ID")),
		mcp.WithString("status", mcp.Required(), mcp.Description("New agent status"),
			mcp.Enum("idle", "busy", "offline")),
		mcp.WithString("current_workflow", mcp.Description("Workflow the agent is working on")),
		mcp.WithString("current_task", mcp.Description("Task the agent is working on")),
		mcp.WithNumber("utilization", mcp.Description("Explicit utilization reset (0-100)")),
		mcp.WithOutputSchema[ResultResponse](),
	), mcp.NewStructuredToolHandler(s.handleUpdateAgentStatus))

	s.mcpServer.AddTool(mcp.NewTool("register_workflow",
		mcp.WithDescription("Register a pending workflow with ordered phases. Omit workflow_id to get a generated one."),
		mcp.WithString("workflow_id", mcp.Description("Workflow ID (optional)")),
		mcp.WithString("name", mcp.Description("Display name")),
		mcp.WithArray("phases", mcp.Description("Phase names in order"), mcp.WithStringItems()),
		mcp.WithArray("agents", mcp.Description("Participating agent IDs"), mcp.WithStringItems()),
		mcp.WithOutputSchema[domain.Workflow](),
	), mcp.NewStructuredToolHandler(s.handleRegisterWorkflow))

	s.mcpServer.AddTool(mcp.NewTool("register_agent",
		mcp.WithDescription("Register an idle agent."),
		mcp.WithString("agent_id", mcp.Required(), mcp.Description("Agent ID")),
		mcp.WithString("type", mcp.Description("Agent type, e.g. developer")),
		mcp.WithOutputSchema[domain.Agent](),
	), mcp.NewStructuredToolHandler(s.handleRegisterAgent))

	s.mcpServer.AddTool(mcp.NewTool("health_check",
		mcp.WithDescription("Summarize counters, agent availability and risks."),
		mcp.WithOutputSchema[domain.Health](),
	), mcp.NewStructuredToolHandler(s.handleHealthCheck))
}

// Handler methods for structured tools

func (s *Server) handleListWorkflows(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (WorkflowsResponse, error) {
	return WorkflowsResponse{Workflows: s.monitor.GetAllWorkflows(ctx)}, nil
}

func (s *Server) handleGetWorkflow(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Workflow, error) {
	id, _ := args["workflow_id"].(string)
	w, ok := s.monitor.GetWorkflow(ctx, id)
	if !ok {
		return domain.Workflow{}, fmt.Errorf("%w: workflow %q", domain.ErrNotFound, id)
	}
	return w, nil
}

func (s *Server) handleRegisterWorkflow(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Workflow, error) {
	id, _ := args["workflow_id"].(string)
	if id == "" {
		id = uuid.New().String()
	}
	name, _ := args["name"].(string)
	return s.monitor.RegisterWorkflow(ctx, id, domain.WorkflowSpec{
		Name:   name,
		Phases: stringSlice(args["phases"]),
		Agents: stringSlice(args["agents"]),
	})
}

func (s *Server) handleRegisterAgent(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Agent, error) {
	id, _ := args["agent_id"].(string)
	typ, _ := args["type"].(string)
	return s.monitor.RegisterAgent(ctx, id, domain.AgentSpec{Type: typ})
}

func (s *Server) handleListAgents(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AgentsResponse, error) {
	return AgentsResponse{Agents: s.monitor.GetAllAgents(ctx)}, nil
}

func (s *Server) handleGetMetrics(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Metrics, error) {
	return s.monitor.GetMetrics(ctx), nil
}

func (s *Server) handleHealthCheck(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Health, error) {
	return s.monitor.HealthCheck(ctx), nil
}

func (s *Server) handleCheckBottlenecks(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AlertsResponse, error) {
	id, _ := args["workflow_id"].(string)
	if id == "" {
		return AlertsResponse{Alerts: s.monitor.CheckAllBottlenecks(ctx)}, nil
	}
	alerts, ok := s.monitor.CheckForBottlenecks(ctx, id)
	if !ok {
		return AlertsResponse{}, fmt.Errorf("%w: workflow %q", domain.ErrNotFound, id)
	}
	return AlertsResponse{Alerts: alerts}, nil
}

func (s *Server) handlePredictDelivery(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Prediction, error) {
	id, _ := args["workflow_id"].(string)
	return s.monitor.PredictDelivery(ctx, id)
}

func (s *Server) handleUpdatePhaseStatus(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ResultResponse, error) {
	id, _ := args["workflow_id"].(string)
	phase, _ := args["phase"].(string)
	raw, _ := args["status"].(string)

	status, err := domain.ParsePhaseStatus(raw)
	if err != nil {
		return ResultResponse{}, err
	}

	var upd domain.PhaseUpdate
	if v, ok := args["assignee"].(string); ok {
		upd.Assignee = &v
	}
	if v, ok := args["notes"].(string); ok {
		upd.Notes = &v
	}

	res, err := s.monitor.UpdatePhaseStatus(ctx, id, phase, status, upd)
	if err != nil {
		return ResultResponse{}, err
	}
	return ResultResponse{Result: res}, nil
}

func (s *Server) handleUpdateAgentStatus(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ResultResponse, error) {
	id, _ := args["agent_id"].(string)
	raw, _ := args["status"].(string)

	status, err := domain.ParseAgentStatus(raw)
	if err != nil {
		return ResultResponse{}, err
	}

	var upd domain.AgentUpdate
	if v, ok := args["current_workflow"].(string); ok {
		upd.CurrentWorkflow = &v
	}
	if v, ok := args["current_task"].(string); ok {
		upd.CurrentTask = &v
	}
	// JSON numbers arrive as float64.
	if v, ok := args["utilization"].(float64); ok {
		upd.Utilization = domain.Ptr(int(v))
	}

	res, err := s.monitor.UpdateAgentStatus(ctx, id, status, upd)
	if err != nil {
		return ResultResponse{}, err
	}
	return ResultResponse{Result: res}, nil
}

// stringSlice converts a decoded JSON array; non-string items are skipped.
func stringSlice(v any) []string {
	items, _ := v.([]interface{})
	out := make([]string, 0, len(items))
	for _, it := range items {
		if str, ok := it.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(MetricsURI, "Workflow and Agent Metrics",
		mcp.WithMIMEType("application/json"),
	), s.handleMetricsResource)
}

func (s *Server) handleMetricsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.monitor.GetMetrics(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to encode metrics: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      MetricsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
