package domain

// The update types enumerate every field a caller may change after
// registration. IDs, timestamps and statuses are not part of them: the
// engine owns those. A nil field means "leave unchanged".

// WorkflowUpdate lists the mutable fields of a Workflow.
type WorkflowUpdate struct {
	Name   *string  `json:"name,omitempty" mapstructure:"name"`
	Agents []string `json:"agents,omitempty" mapstructure:"agents"`
	Reason *string  `json:"reason,omitempty" mapstructure:"reason"`
}

// PhaseUpdate lists the mutable fields of a Phase.
type PhaseUpdate struct {
	Assignee *string `json:"assignee,omitempty" mapstructure:"assignee"`
	Notes    *string `json:"notes,omitempty" mapstructure:"notes"`
}

// AgentUpdate lists the mutable fields of an Agent.
type AgentUpdate struct {
	Type            *string `json:"type,omitempty" mapstructure:"type"`
	CurrentWorkflow *string `json:"current_workflow,omitempty" mapstructure:"current_workflow"`
	CurrentTask     *string `json:"current_task,omitempty" mapstructure:"current_task"`
	Workload        *int    `json:"workload,omitempty" mapstructure:"workload"`

	// Utilization is the explicit external reset (e.g. on reassignment).
	// It is clamped to [0, MaxUtilization].
	Utilization *int `json:"utilization,omitempty" mapstructure:"utilization"`

	// Capabilities are merged key by key into the existing set.
	Capabilities map[string][]string `json:"capabilities,omitempty" mapstructure:"capabilities"`
}

// Ptr returns a pointer to v. Handy for building updates.
func Ptr[T any](v T) *T { return &v }
