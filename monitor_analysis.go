package vigil

import (
	"context"
	"fmt"

	"github.com/aretw0/vigil/pkg/analysis"
	"github.com/aretw0/vigil/pkg/domain"
)

// GetMetrics returns a point-in-time copy of the counters.
func (m *Monitor) GetMetrics(ctx context.Context) domain.Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.metrics.Snapshot()
}

// CheckForBottlenecks scans one workflow for long-running phases, then every
// agent for overutilization. It is read-only: stored alert logs are untouched.
// The bool is false when the workflow is unknown.
func (m *Monitor) CheckForBottlenecks(ctx context.Context, id string) ([]domain.Alert, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.workflows.Get(id)
	if !ok {
		return nil, false
	}
	return m.detector.Scan(w, m.agents.List(), m.clock()), true
}

// CheckAllBottlenecks scans every workflow in registration order, then the agents once.
func (m *Monitor) CheckAllBottlenecks(ctx context.Context) []domain.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allBottlenecks()
}

func (m *Monitor) allBottlenecks() []domain.Alert {
	now := m.clock()
	var alerts []domain.Alert
	for _, w := range m.workflows.List() {
		alerts = append(alerts, m.detector.PhaseAlerts(w, now)...)
	}
	return append(alerts, m.detector.AgentAlerts(m.agents.List(), now)...)
}

// PredictDelivery estimates when a workflow will complete.
// It fails with domain.ErrNotFound for unknown ids and with
// domain.ErrInsufficientHistory until one phase has completed.
func (m *Monitor) PredictDelivery(ctx context.Context, id string) (domain.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.workflows.Get(id)
	if !ok {
		return domain.Prediction{}, fmt.Errorf("%w: workflow %q", domain.ErrNotFound, id)
	}
	return m.detector.Predict(w, m.clock())
}

// AssessRisks grades every current bottleneck and failed workflow.
func (m *Monitor) AssessRisks(ctx context.Context) []domain.Risk {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.risks()
}

func (m *Monitor) risks() []domain.Risk {
	return m.detector.AssessRisks(m.workflows.List(), m.allBottlenecks(), m.clock())
}

// HealthCheck summarizes counters, agent availability and risks.
func (m *Monitor) HealthCheck(ctx context.Context) domain.Health {
	m.mu.Lock()
	defer m.mu.Unlock()
	return analysis.CheckHealth(m.metrics.Snapshot(), m.agents.List(), m.risks())
}
