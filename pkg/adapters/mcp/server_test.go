package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/vigil"
	"github.com/aretw0/vigil/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *vigil.Monitor, func(time.Duration)) {
	t.Helper()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	m := vigil.New(vigil.WithClock(func() time.Time { return now }))

	ctx := context.Background()
	_, err := m.RegisterWorkflow(ctx, "w1", domain.WorkflowSpec{Name: "Checkout", Phases: []string{"design", "build"}})
	require.NoError(t, err)
	_, err = m.RegisterAgent(ctx, "dev1", domain.AgentSpec{Type: "developer"})
	require.NoError(t, err)

	return NewServer(m), m, func(d time.Duration) { now = now.Add(d) }
}

func TestListTools(t *testing.T) {
	s, _, _ := newTestServer(t)
	ctx := context.Background()

	wfs, err := s.handleListWorkflows(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	require.Len(t, wfs.Workflows, 1)
	assert.Equal(t, "w1", wfs.Workflows[0].ID)

	agents, err := s.handleListAgents(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	require.Len(t, agents.Agents, 1)
	assert.Equal(t, domain.AgentIdle, agents.Agents[0].Status)

	m, err := s.handleGetMetrics(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, m.WorkflowCount)
}

func TestGetWorkflow(t *testing.T) {
	s, _, _ := newTestServer(t)
	ctx := context.Background()

	w, err := s.handleGetWorkflow(ctx, mcp.CallToolRequest{}, map[string]interface{}{"workflow_id": "w1"})
	require.NoError(t, err)
	assert.Equal(t, "Checkout", w.Name)

	_, err = s.handleGetWorkflow(ctx, mcp.CallToolRequest{}, map[string]interface{}{"workflow_id": "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePhaseStatus_ThenBottlenecks(t *testing.T) {
	s, m, advance := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleUpdatePhaseStatus(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"workflow_id": "w1",
		"phase":       "design",
		"status":      "active",
		"assignee":    "dev1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultApplied, res.Result)

	w, _ := m.GetWorkflow(ctx, "w1")
	assert.Equal(t, "dev1", w.Phases[0].Assignee)

	advance(45 * time.Minute)

	alerts, err := s.handleCheckBottlenecks(ctx, mcp.CallToolRequest{}, map[string]interface{}{"workflow_id": "w1"})
	require.NoError(t, err)
	require.Len(t, alerts.Alerts, 1)
	assert.Equal(t, 45, alerts.Alerts[0].DurationMinutes)

	all, err := s.handleCheckBottlenecks(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	require.NoError(t, err)
	assert.Len(t, all.Alerts, 1)

	_, err = s.handleCheckBottlenecks(ctx, mcp.CallToolRequest{}, map[string]interface{}{"workflow_id": "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePhaseStatus_Results(t *testing.T) {
	s, _, _ := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleUpdatePhaseStatus(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"workflow_id": "w1", "phase": "ghost", "status": "active",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultNotFound, res.Result)

	_, err = s.handleUpdatePhaseStatus(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"workflow_id": "w1", "phase": "design", "status": "sleeping",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdateAgentStatus(t *testing.T) {
	s, m, _ := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleUpdateAgentStatus(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"agent_id":         "dev1",
		"status":           "busy",
		"current_workflow": "w1",
		"utilization":      float64(85),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultApplied, res.Result)

	a, ok := m.GetAgent(ctx, "dev1")
	require.True(t, ok)
	assert.Equal(t, domain.AgentBusy, a.Status)
	assert.Equal(t, "w1", a.CurrentWorkflow)
	assert.Equal(t, 85, a.Utilization)

	res, err = s.handleUpdateAgentStatus(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"agent_id": "ghost", "status": "idle",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultNotFound, res.Result)
}

func TestPredictDelivery(t *testing.T) {
	s, _, advance := newTestServer(t)
	ctx := context.Background()
	args := map[string]interface{}{"workflow_id": "w1"}

	_, err := s.handlePredictDelivery(ctx, mcp.CallToolRequest{}, args)
	assert.ErrorIs(t, err, domain.ErrInsufficientHistory)

	for _, st := range []string{"active", "completed"} {
		_, err := s.handleUpdatePhaseStatus(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"workflow_id": "w1", "phase": "design", "status": st,
		})
		require.NoError(t, err)
		advance(10 * time.Minute)
	}

	p, err := s.handlePredictDelivery(ctx, mcp.CallToolRequest{}, args)
	require.NoError(t, err)
	assert.Equal(t, 1, p.RemainingPhases)
	assert.Equal(t, 10*time.Minute, p.AvgPhaseDuration)
}

func TestMetricsResource(t *testing.T) {
	s, _, _ := newTestServer(t)

	contents, err := s.handleMetricsResource(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, MetricsURI, text.URI)

	var m domain.Metrics
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m))
	assert.Equal(t, 1, m.WorkflowCount)
	assert.Contains(t, m.AgentUtilization, "dev1")
}

func TestRegisterTools(t *testing.T) {
	s, m, _ := newTestServer(t)
	ctx := context.Background()

	w, err := s.handleRegisterWorkflow(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"workflow_id": "w2",
		"name":        "Search",
		"phases":      []interface{}{"spike", "build", 7},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"spike", "build"}, phaseNames(w))

	_, err = s.handleRegisterWorkflow(ctx, mcp.CallToolRequest{}, map[string]interface{}{"workflow_id": "w2"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntity)

	_, err = s.handleRegisterAgent(ctx, mcp.CallToolRequest{}, map[string]interface{}{"agent_id": "qa1", "type": "qa"})
	require.NoError(t, err)
	_, ok := m.GetAgent(ctx, "qa1")
	assert.True(t, ok)

	_, err = s.handleRegisterAgent(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	_, ok = m.GetAgent(ctx, "")
	assert.False(t, ok)
}

func TestRegisterWorkflow_GeneratesID(t *testing.T) {
	s, m, _ := newTestServer(t)
	ctx := context.Background()

	w, err := s.handleRegisterWorkflow(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"name":   "Unnamed",
		"phases": []interface{}{"build"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)

	_, ok := m.GetWorkflow(ctx, w.ID)
	assert.True(t, ok)
	_, ok = m.GetWorkflow(ctx, "")
	assert.False(t, ok)
}

func TestHealthCheckTool(t *testing.T) {
	s, _, _ := newTestServer(t)

	h, err := s.handleHealthCheck(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.HealthOperational, h.Status)
	assert.Equal(t, 1, h.Metrics.WorkflowCount)
	assert.Equal(t, 1, h.AgentsByStatus[domain.AgentIdle])

	raw, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"status":"operational"`)
}

func phaseNames(w domain.Workflow) []string {
	names := make([]string, len(w.Phases))
	for i, p := range w.Phases {
		names[i] = p.Name
	}
	return names
}
