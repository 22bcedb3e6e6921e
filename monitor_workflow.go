package vigil

import (
	"context"
	"fmt"

	"github.com/aretw0/vigil/pkg/domain"
)

// RegisterWorkflow adds a pending workflow. Registering an existing id fails
// with domain.ErrDuplicateEntity and leaves the counters untouched.
func (m *Monitor) RegisterWorkflow(ctx context.Context, id string, spec domain.WorkflowSpec) (domain.Workflow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, err := m.workflows.Register(id, spec, m.clock())
	if err != nil {
		return domain.Workflow{}, err
	}
	m.metrics.WorkflowRegistered()
	m.logger.Info("workflow registered", "workflow_id", id, "phases", len(w.Phases))
	return w, nil
}

// UpdateWorkflowStatus moves a workflow to status. Unknown ids are a no-op
// reported as domain.ResultNotFound.
func (m *Monitor) UpdateWorkflowStatus(ctx context.Context, id string, status domain.WorkflowStatus, upd domain.WorkflowUpdate) (domain.Result, error) {
	if !status.Valid() {
		return domain.ResultRejected, fmt.Errorf("%w: workflow status %q", domain.ErrInvalidStatus, status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock()
	from, res := m.workflows.UpdateStatus(id, status, upd, now)
	if !res.Applied() {
		m.ignored("update_workflow_status", "workflow", id, res)
		return res, nil
	}
	m.metrics.WorkflowTransitioned(from, status)

	if from != status && m.hooks.OnWorkflowTransition != nil {
		m.hooks.OnWorkflowTransition(ctx, &domain.TransitionEvent{
			Timestamp: now,
			Kind:      domain.KindWorkflow,
			EntityID:  id,
			From:      string(from),
			To:        string(status),
		})
	}
	return res, nil
}

// UpdatePhaseStatus moves a phase of a workflow to status. Unknown workflows
// or phases yield domain.ResultNotFound; moving a finished phase yields
// domain.ResultRejected. Neither mutates anything.
func (m *Monitor) UpdatePhaseStatus(ctx context.Context, id, phase string, status domain.PhaseStatus, upd domain.PhaseUpdate) (domain.Result, error) {
	if !status.Valid() {
		return domain.ResultRejected, fmt.Errorf("%w: phase status %q", domain.ErrInvalidStatus, status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock()
	from, res := m.workflows.UpdatePhase(id, phase, status, upd, now)
	if !res.Applied() {
		m.ignored("update_phase_status", "phase", id+"/"+phase, res)
		return res, nil
	}

	if from != status && m.hooks.OnPhaseTransition != nil {
		m.hooks.OnPhaseTransition(ctx, &domain.TransitionEvent{
			Timestamp: now,
			Kind:      domain.KindPhase,
			EntityID:  id,
			Phase:     phase,
			From:      string(from),
			To:        string(status),
		})
	}
	return res, nil
}

// AddAlert appends an alert to the workflow's log with an engine timestamp.
func (m *Monitor) AddAlert(ctx context.Context, id string, alert domain.Alert) domain.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, res := m.workflows.AddAlert(id, alert, m.clock())
	if !res.Applied() {
		m.ignored("add_alert", "workflow", id, res)
		return res
	}
	if m.hooks.OnAlert != nil {
		m.hooks.OnAlert(ctx, &stored)
	}
	return res
}

// GetWorkflow returns a copy of the workflow.
func (m *Monitor) GetWorkflow(ctx context.Context, id string) (domain.Workflow, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.workflows.Get(id)
}

// GetAllWorkflows returns copies of every workflow in registration order.
func (m *Monitor) GetAllWorkflows(ctx context.Context) []domain.Workflow {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.workflows.List()
}

// GetAlerts returns a copy of the workflow's stored alert log.
func (m *Monitor) GetAlerts(ctx context.Context, id string) ([]domain.Alert, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.workflows.Alerts(id)
}
