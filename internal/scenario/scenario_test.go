package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/vigil"
	"github.com/aretw0/vigil/pkg/domain"
	"github.com/aretw0/vigil/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndReplay(t *testing.T) {
	s, err := Load("testdata/demo.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Sample Project Development", s.Name)
	require.Len(t, s.Steps, 13)

	run, err := s.Replay(context.Background())
	require.NoError(t, err)

	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, start.Add(time.Hour), run.Clock.Now())
	assert.Equal(t, []string{"workflow-demo-123"}, run.WorkflowIDs)

	ctx := context.Background()
	w, ok := run.Monitor.GetWorkflow(ctx, "workflow-demo-123")
	require.True(t, ok)
	assert.Equal(t, domain.WorkflowActive, w.Status)
	assert.Equal(t, "kickoff", w.StatusReason)
	assert.Equal(t, domain.PhaseCompleted, w.Phases[0].Status)
	assert.Equal(t, "analyst", w.Phases[0].Assignee)
	assert.Equal(t, domain.PhaseActive, w.Phases[1].Status)
	require.Len(t, w.Alerts, 1)
	assert.Equal(t, domain.AlertType("manual_review"), w.Alerts[0].Type)

	a, ok := run.Monitor.GetAgent(ctx, "analyst")
	require.True(t, ok)
	assert.Equal(t, domain.AgentBusy, a.Status)
	assert.Equal(t, "requirements", a.CurrentTask)
	assert.Equal(t, []string{"requirements", "research"}, a.Capabilities["skills"])

	require.Len(t, run.Scans, 1)
	require.Len(t, run.Scans[0].Alerts, 1)
	assert.Equal(t, "design", run.Scans[0].Alerts[0].Phase)
	assert.Equal(t, 40, run.Scans[0].Alerts[0].DurationMinutes)

	var notFound []Outcome
	for _, o := range run.Outcomes {
		if o.Result == domain.ResultNotFound {
			notFound = append(notFound, o)
		}
	}
	require.Len(t, notFound, 1)
	assert.Equal(t, "workflow-demo-123/ghost", notFound[0].Target)
	assert.Equal(t, 12, notFound[0].Step)
}

func TestReplay_PassesOptions(t *testing.T) {
	s, err := Parse([]byte(`
start: 2025-03-01T09:00:00Z
steps:
  - action: register_workflow
    id: w1
`))
	require.NoError(t, err)

	run, err := s.Replay(context.Background(), vigil.WithCountingPolicy(metrics.CountOccupancy))
	require.NoError(t, err)
	assert.Equal(t, 0, run.Monitor.GetMetrics(context.Background()).ActiveWorkflows)
}

func TestReplay_GeneratesWorkflowID(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - action: register_workflow
    name: anonymous
    phases: [one]
`))
	require.NoError(t, err)

	run, err := s.Replay(context.Background())
	require.NoError(t, err)
	require.Len(t, run.WorkflowIDs, 1)
	assert.NotEmpty(t, run.WorkflowIDs[0])
}

func TestReplay_DuplicateFails(t *testing.T) {
	s, err := Parse([]byte(`
steps:
  - action: register_agent
    id: dev1
  - action: register_agent
    id: dev1
`))
	require.NoError(t, err)

	_, err = s.Replay(context.Background())
	assert.ErrorIs(t, err, domain.ErrDuplicateEntity)
	assert.Contains(t, err.Error(), "step 2")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"Unknown action", "steps:\n  - action: explode\n", "unknown action"},
		{"Missing action", "steps:\n  - id: x\n", "missing action"},
		{"Unknown field", "steps:\n  - action: agent_status\n    agent: a\n    status: idle\n    mood: happy\n", "mood"},
		{"Bad status", "steps:\n  - action: phase_status\n    workflow: w\n    phase: p\n    status: sleeping\n", "invalid status"},
		{"Bad duration", "steps:\n  - action: advance\n    by: soon\n", "step 1"},
		{"Non-positive advance", "steps:\n  - action: advance\n    by: 0s\n", "positive"},
		{"Agent without id", "steps:\n  - action: register_agent\n    type: dev\n", "id is required"},
		{"Alert without type", "steps:\n  - action: alert\n    workflow: w\n", "type is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReplay_CanceledContext(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - action: register_agent\n    id: a\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Replay(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
