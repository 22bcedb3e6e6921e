package vigil

import (
	"context"
	"fmt"

	"github.com/aretw0/vigil/pkg/domain"
)

// RegisterAgent adds an idle agent with zero utilization.
func (m *Monitor) RegisterAgent(ctx context.Context, id string, spec domain.AgentSpec) (domain.Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, err := m.agents.Register(id, spec, m.clock())
	if err != nil {
		return domain.Agent{}, err
	}
	m.metrics.AgentUtilization(id, a.Utilization)
	m.logger.Info("agent registered", "agent_id", id, "type", spec.Type)
	return a, nil
}

// UpdateAgentStatus moves an agent to status, applies upd and ratchets its
// utilization. Unknown ids are a no-op reported as domain.ResultNotFound.
func (m *Monitor) UpdateAgentStatus(ctx context.Context, id string, status domain.AgentStatus, upd domain.AgentUpdate) (domain.Result, error) {
	if !status.Valid() {
		return domain.ResultRejected, fmt.Errorf("%w: agent status %q", domain.ErrInvalidStatus, status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock()
	from, a, res := m.agents.UpdateStatus(id, status, upd, now)
	if !res.Applied() {
		m.ignored("update_agent_status", "agent", id, res)
		return res, nil
	}
	m.metrics.AgentUtilization(id, a.Utilization)

	if from != status && m.hooks.OnAgentTransition != nil {
		m.hooks.OnAgentTransition(ctx, &domain.TransitionEvent{
			Timestamp: now,
			Kind:      domain.KindAgent,
			EntityID:  id,
			From:      string(from),
			To:        string(status),
		})
	}
	return res, nil
}

// GetAgent returns a copy of the agent.
func (m *Monitor) GetAgent(ctx context.Context, id string) (domain.Agent, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.agents.Get(id)
}

// GetAllAgents returns copies of every agent in registration order.
func (m *Monitor) GetAllAgents(ctx context.Context) []domain.Agent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.agents.List()
}
