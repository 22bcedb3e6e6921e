// Package workflow holds the Workflow Store: registered workflows, their
// ordered phases and alert logs.
package workflow

import (
	"fmt"
	"slices"
	"time"

	"github.com/aretw0/vigil/pkg/domain"
)

// Store owns the registered workflows.
// It is not safe for concurrent use; vigil.Monitor serializes access.
type Store struct {
	workflows map[string]*domain.Workflow
	order     []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		workflows: make(map[string]*domain.Workflow),
	}
}

// Register creates a pending workflow whose phases are all pending.
func (s *Store) Register(id string, spec domain.WorkflowSpec, now time.Time) (domain.Workflow, error) {
	if id == "" {
		return domain.Workflow{}, fmt.Errorf("%w: workflow id is empty", domain.ErrInvalidID)
	}
	if _, exists := s.workflows[id]; exists {
		return domain.Workflow{}, fmt.Errorf("%w: workflow %q", domain.ErrDuplicateEntity, id)
	}

	phases := make([]domain.Phase, 0, len(spec.Phases))
	seen := make(map[string]bool, len(spec.Phases))
	for _, name := range spec.Phases {
		if name == "" {
			return domain.Workflow{}, fmt.Errorf("%w: empty phase name in workflow %q", domain.ErrInvalidPhase, id)
		}
		if seen[name] {
			return domain.Workflow{}, fmt.Errorf("%w: phase %q repeated in workflow %q", domain.ErrDuplicateEntity, name, id)
		}
		seen[name] = true
		phases = append(phases, domain.Phase{Name: name, Status: domain.PhasePending})
	}

	w := &domain.Workflow{
		ID:        id,
		Name:      spec.Name,
		Agents:    slices.Clone(spec.Agents),
		Status:    domain.WorkflowPending,
		Phases:    phases,
		StartTime: now,
		Alerts:    []domain.Alert{},
	}
	if w.Agents == nil {
		w.Agents = []string{}
	}
	s.workflows[id] = w
	s.order = append(s.order, id)
	return w.Clone(), nil
}

// UpdateStatus moves a workflow to status and applies the update fields.
// EndTime is fixed the first time the workflow reaches completed or failed.
// A finished workflow may only be archived; any other move is rejected.
// It returns the previous status.
func (s *Store) UpdateStatus(id string, status domain.WorkflowStatus, upd domain.WorkflowUpdate, now time.Time) (domain.WorkflowStatus, domain.Result) {
	w, ok := s.workflows[id]
	if !ok {
		return "", domain.ResultNotFound
	}

	from := w.Status
	if w.EndTime != nil && status != from && status != domain.WorkflowArchived {
		return from, domain.ResultRejected
	}
	w.Status = status
	if status.Terminal() && w.EndTime == nil {
		end := now
		w.EndTime = &end
	}

	if upd.Name != nil {
		w.Name = *upd.Name
	}
	if upd.Agents != nil {
		w.Agents = slices.Clone(upd.Agents)
	}
	if upd.Reason != nil {
		w.StatusReason = *upd.Reason
	}
	return from, domain.ResultApplied
}

// UpdatePhase moves the named phase to status. Timestamps are set once:
// StartTime on the first activation, EndTime on the first terminal status.
// A terminal phase never moves again.
func (s *Store) UpdatePhase(id, phase string, status domain.PhaseStatus, upd domain.PhaseUpdate, now time.Time) (domain.PhaseStatus, domain.Result) {
	w, ok := s.workflows[id]
	if !ok {
		return "", domain.ResultNotFound
	}
	idx := w.PhaseIndex(phase)
	if idx < 0 {
		return "", domain.ResultNotFound
	}

	p := &w.Phases[idx]
	from := p.Status
	if from.Terminal() && status != from {
		return from, domain.ResultRejected
	}

	p.Status = status
	switch {
	case status == domain.PhaseActive && p.StartTime == nil:
		start := now
		p.StartTime = &start
	case status.Terminal() && p.EndTime == nil:
		end := now
		p.EndTime = &end
		if p.StartTime == nil {
			// Never seen active: keep StartTime <= EndTime.
			start := now
			p.StartTime = &start
		}
	}

	if upd.Assignee != nil {
		p.Assignee = *upd.Assignee
	}
	if upd.Notes != nil {
		p.Notes = *upd.Notes
	}
	return from, domain.ResultApplied
}

// AddAlert appends alert to the workflow's log, stamped with now.
func (s *Store) AddAlert(id string, alert domain.Alert, now time.Time) (domain.Alert, domain.Result) {
	w, ok := s.workflows[id]
	if !ok {
		return domain.Alert{}, domain.ResultNotFound
	}

	a := alert.Clone()
	a.Timestamp = now
	if a.WorkflowID == "" {
		a.WorkflowID = id
	}
	w.Alerts = append(w.Alerts, a)
	return a.Clone(), domain.ResultApplied
}

// Get returns a copy of the workflow.
func (s *Store) Get(id string) (domain.Workflow, bool) {
	w, ok := s.workflows[id]
	if !ok {
		return domain.Workflow{}, false
	}
	return w.Clone(), true
}

// Alerts returns a copy of the workflow's alert log.
func (s *Store) Alerts(id string) ([]domain.Alert, bool) {
	w, ok := s.workflows[id]
	if !ok {
		return nil, false
	}
	out := domain.CloneAlerts(w.Alerts)
	if out == nil {
		out = []domain.Alert{}
	}
	return out, true
}

// List returns copies of all workflows in registration order.
func (s *Store) List() []domain.Workflow {
	out := make([]domain.Workflow, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.workflows[id].Clone())
	}
	return out
}
