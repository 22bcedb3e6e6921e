package domain

import "maps"

// Metrics is a point-in-time copy of the cached counters.
// It is derived data: all of it can be recomputed from workflows and agents.
type Metrics struct {
	WorkflowCount      int            `json:"workflow_count"`
	ActiveWorkflows    int            `json:"active_workflows"`
	CompletedWorkflows int            `json:"completed_workflows"`
	FailedWorkflows    int            `json:"failed_workflows"`
	AgentUtilization   map[string]int `json:"agent_utilization"`
}

// Clone returns a deep copy of the snapshot.
func (m Metrics) Clone() Metrics {
	out := m
	out.AgentUtilization = maps.Clone(m.AgentUtilization)
	if out.AgentUtilization == nil {
		out.AgentUtilization = map[string]int{}
	}
	return out
}
