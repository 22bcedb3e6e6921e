package observability_test

import (
	"context"
	"testing"

	"github.com/aretw0/vigil"
	"github.com/aretw0/vigil/internal/logging"
	"github.com/aretw0/vigil/pkg/domain"
	"github.com/aretw0/vigil/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource domain.Metrics

func (s staticSource) GetMetrics(context.Context) domain.Metrics { return domain.Metrics(s) }

func TestCollector(t *testing.T) {
	c := observability.NewCollector(staticSource{
		WorkflowCount:    3,
		ActiveWorkflows:  2,
		FailedWorkflows:  1,
		AgentUtilization: map[string]int{"dev1": 42, "qa": 90},
	})

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			values[f.GetName()+"/"+m.GetLabel()[0].GetValue()] = m.GetGauge().GetValue()
		}
	}

	assert.Equal(t, 3.0, values["vigil_workflows/total"])
	assert.Equal(t, 2.0, values["vigil_workflows/active"])
	assert.Equal(t, 0.0, values["vigil_workflows/completed"])
	assert.Equal(t, 1.0, values["vigil_workflows/failed"])
	assert.Equal(t, 90.0, values["vigil_agent_utilization/qa"])
	assert.Equal(t, 6, testutil.CollectAndCount(c))
}

func TestHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	tr, err := observability.NewTransitions(reg)
	require.NoError(t, err)

	m := vigil.New(vigil.WithLifecycleHooks(observability.Hooks(logging.NewNop(), tr)))
	ctx := context.Background()

	_, err = m.RegisterWorkflow(ctx, "w1", domain.WorkflowSpec{Phases: []string{"design"}})
	require.NoError(t, err)
	_, _ = m.UpdateWorkflowStatus(ctx, "w1", domain.WorkflowActive, domain.WorkflowUpdate{})
	_, _ = m.UpdatePhaseStatus(ctx, "w1", "design", domain.PhaseActive, domain.PhaseUpdate{})
	m.AddAlert(ctx, "w1", domain.Alert{Type: "scope_change"})

	n, err := testutil.GatherAndCount(reg, "vigil_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per (kind, to)")

	n, err = testutil.GatherAndCount(reg, "vigil_alerts_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = observability.NewTransitions(reg)
	assert.Error(t, err, "double registration is refused")
}
