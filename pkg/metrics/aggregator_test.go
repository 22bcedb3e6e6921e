package metrics_test

import (
	"testing"

	"github.com/aretw0/vigil/pkg/domain"
	"github.com/aretw0/vigil/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_Legacy(t *testing.T) {
	a := metrics.NewAggregator("")
	require.Equal(t, metrics.CountLegacy, a.Policy())

	a.WorkflowRegistered()
	a.WorkflowRegistered()
	m := a.Snapshot()
	assert.Equal(t, 2, m.WorkflowCount)
	assert.Equal(t, 2, m.ActiveWorkflows, "pending workflows count as active")

	a.WorkflowTransitioned(domain.WorkflowPending, domain.WorkflowActive)
	assert.Equal(t, 2, a.Snapshot().ActiveWorkflows)

	a.WorkflowTransitioned(domain.WorkflowActive, domain.WorkflowCompleted)
	// Not from active: no counter moves.
	a.WorkflowTransitioned(domain.WorkflowPending, domain.WorkflowFailed)

	m = a.Snapshot()
	assert.Equal(t, 1, m.ActiveWorkflows)
	assert.Equal(t, 1, m.CompletedWorkflows)
	assert.Equal(t, 0, m.FailedWorkflows)

	a.WorkflowTransitioned(domain.WorkflowActive, domain.WorkflowFailed)
	m = a.Snapshot()
	assert.Equal(t, 0, m.ActiveWorkflows)
	assert.Equal(t, 1, m.FailedWorkflows)
}

func TestAggregator_Occupancy(t *testing.T) {
	a := metrics.NewAggregator(metrics.CountOccupancy)

	a.WorkflowRegistered()
	assert.Equal(t, 0, a.Snapshot().ActiveWorkflows)

	steps := []struct {
		from, to                  domain.WorkflowStatus
		active, completed, failed int
	}{
		{domain.WorkflowPending, domain.WorkflowActive, 1, 0, 0},
		{domain.WorkflowActive, domain.WorkflowActive, 1, 0, 0},
		{domain.WorkflowActive, domain.WorkflowPaused, 0, 0, 0},
		{domain.WorkflowPaused, domain.WorkflowActive, 1, 0, 0},
		{domain.WorkflowActive, domain.WorkflowCompleted, 0, 1, 0},
		{domain.WorkflowCompleted, domain.WorkflowArchived, 0, 0, 0},
	}
	for _, s := range steps {
		a.WorkflowTransitioned(s.from, s.to)
		m := a.Snapshot()
		assert.Equal(t, s.active, m.ActiveWorkflows, "%s->%s active", s.from, s.to)
		assert.Equal(t, s.completed, m.CompletedWorkflows, "%s->%s completed", s.from, s.to)
		assert.Equal(t, s.failed, m.FailedWorkflows, "%s->%s failed", s.from, s.to)
	}
}

func TestAggregator_SnapshotIsCopy(t *testing.T) {
	a := metrics.NewAggregator(metrics.CountLegacy)
	a.AgentUtilization("dev1", 42)

	m := a.Snapshot()
	m.AgentUtilization["dev1"] = 0
	m.WorkflowCount = 100

	again := a.Snapshot()
	assert.Equal(t, 42, again.AgentUtilization["dev1"])
	assert.Equal(t, 0, again.WorkflowCount)
}

func TestParsePolicy(t *testing.T) {
	p, err := metrics.ParsePolicy("occupancy")
	require.NoError(t, err)
	assert.Equal(t, metrics.CountOccupancy, p)

	_, err = metrics.ParsePolicy("bogus")
	assert.Error(t, err)
}
