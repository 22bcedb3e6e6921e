package domain

import (
	"maps"
	"slices"
	"time"
)

// MaxUtilization is the upper bound of an agent's utilization score.
const MaxUtilization = 100

// Agent is a worker that can be assigned to workflows.
type Agent struct {
	ID     string      `json:"id"`
	Type   string      `json:"type"`
	Status AgentStatus `json:"status"`

	// Capabilities describes what the agent can do, e.g. {"languages": ["go"]}.
	Capabilities map[string][]string `json:"capabilities,omitempty"`

	// Lookup-only back references.
	CurrentWorkflow string `json:"current_workflow,omitempty"`
	CurrentTask     string `json:"current_task,omitempty"`

	Workload    int       `json:"workload"`
	LastActive  time.Time `json:"last_active"`
	Utilization int       `json:"utilization"`
}

// AgentSpec is the registration payload of an Agent.
type AgentSpec struct {
	Type         string              `json:"type" yaml:"type" mapstructure:"type"`
	Capabilities map[string][]string `json:"capabilities" yaml:"capabilities" mapstructure:"capabilities"`
}

// Clone returns a deep copy of the agent.
func (a Agent) Clone() Agent {
	out := a
	out.Capabilities = cloneCapabilities(a.Capabilities)
	return out
}

// ClampUtilization bounds v to [0, MaxUtilization].
func ClampUtilization(v int) int {
	return min(max(v, 0), MaxUtilization)
}

func cloneCapabilities(in map[string][]string) map[string][]string {
	if in == nil {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = slices.Clone(v)
	}
	return out
}

// MergeCapabilities overwrites the keys of dst present in src (shallow per key).
func MergeCapabilities(dst, src map[string][]string) map[string][]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string][]string, len(src))
	}
	maps.Copy(dst, cloneCapabilities(src))
	return dst
}
