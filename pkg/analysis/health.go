package analysis

import "github.com/aretw0/vigil/pkg/domain"

// CheckHealth is critical when any risk is high, degraded when any risk exists.
func CheckHealth(m domain.Metrics, agents []domain.Agent, risks []domain.Risk) domain.Health {
	h := domain.Health{
		Status:         domain.HealthOperational,
		Metrics:        m.Clone(),
		AgentsByStatus: make(map[domain.AgentStatus]int),
		Risks:          len(risks),
	}
	for _, a := range agents {
		h.AgentsByStatus[a.Status]++
	}
	for _, r := range risks {
		if r.Severity == domain.SeverityHigh {
			h.Status = domain.HealthCritical
			break
		}
		h.Status = domain.HealthDegraded
	}
	return h
}
