package registry

import (
	"fmt"
	"time"

	"github.com/aretw0/vigil/pkg/domain"
)

// RatchetFunc derives the next utilization score of an agent.
type RatchetFunc func(a domain.Agent, now time.Time) int

// Registry owns the set of known agents.
// It is not safe for concurrent use; vigil.Monitor serializes access.
type Registry struct {
	agents  map[string]*domain.Agent
	order   []string
	ratchet RatchetFunc
}

// NewRegistry creates an empty registry. The ratchet runs after every status
// update; a nil ratchet leaves utilization untouched.
func NewRegistry(ratchet RatchetFunc) *Registry {
	return &Registry{
		agents:  make(map[string]*domain.Agent),
		ratchet: ratchet,
	}
}

// Register adds an idle agent with zero utilization.
// Re-registration must go through UpdateStatus instead.
func (r *Registry) Register(id string, spec domain.AgentSpec, now time.Time) (domain.Agent, error) {
	if id == "" {
		return domain.Agent{}, fmt.Errorf("%w: agent id is empty", domain.ErrInvalidID)
	}
	if _, exists := r.agents[id]; exists {
		return domain.Agent{}, fmt.Errorf("%w: agent %q", domain.ErrDuplicateEntity, id)
	}

	a := &domain.Agent{
		ID:           id,
		Type:         spec.Type,
		Status:       domain.AgentIdle,
		Capabilities: domain.MergeCapabilities(nil, spec.Capabilities),
		LastActive:   now,
	}
	r.agents[id] = a
	r.order = append(r.order, id)
	return a.Clone(), nil
}

// UpdateStatus moves an agent to status, applies the update fields and
// recomputes utilization. Unknown ids are ignored.
// It returns the previous status and the resulting agent.
func (r *Registry) UpdateStatus(id string, status domain.AgentStatus, upd domain.AgentUpdate, now time.Time) (domain.AgentStatus, domain.Agent, domain.Result) {
	a, ok := r.agents[id]
	if !ok {
		return "", domain.Agent{}, domain.ResultNotFound
	}

	from := a.Status
	if status == domain.AgentBusy && from != domain.AgentBusy {
		a.LastActive = now
	}
	a.Status = status
	apply(a, upd)

	if r.ratchet != nil {
		a.Utilization = domain.ClampUtilization(r.ratchet(*a, now))
	}
	return from, a.Clone(), domain.ResultApplied
}

func apply(a *domain.Agent, upd domain.AgentUpdate) {
	if upd.Type != nil {
		a.Type = *upd.Type
	}
	if upd.CurrentWorkflow != nil {
		a.CurrentWorkflow = *upd.CurrentWorkflow
	}
	if upd.CurrentTask != nil {
		a.CurrentTask = *upd.CurrentTask
	}
	if upd.Workload != nil {
		a.Workload = max(*upd.Workload, 0)
	}
	if upd.Utilization != nil {
		a.Utilization = domain.ClampUtilization(*upd.Utilization)
	}
	a.Capabilities = domain.MergeCapabilities(a.Capabilities, upd.Capabilities)
}

// Get returns a copy of the agent.
func (r *Registry) Get(id string) (domain.Agent, bool) {
	a, ok := r.agents[id]
	if !ok {
		return domain.Agent{}, false
	}
	return a.Clone(), true
}

// List returns copies of all agents in registration order.
func (r *Registry) List() []domain.Agent {
	out := make([]domain.Agent, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.agents[id].Clone())
	}
	return out
}

// Len returns the number of registered agents.
func (r *Registry) Len() int {
	return len(r.agents)
}
