package domain

import (
	"slices"
	"time"
)

// Workflow is a multi-phase project tracked by the engine.
type Workflow struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Agents []string       `json:"agents"`
	Status WorkflowStatus `json:"status"`

	// StatusReason carries the operator's note for the latest transition (e.g. why it was paused).
	StatusReason string `json:"status_reason,omitempty"`

	// Phases are kept in their intended execution order.
	Phases []Phase `json:"phases"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	Alerts []Alert `json:"alerts"`
}

// Phase is a named step of a Workflow. It is owned by exactly one Workflow.
type Phase struct {
	Name      string      `json:"name"`
	Status    PhaseStatus `json:"status"`
	StartTime *time.Time  `json:"start_time,omitempty"`
	EndTime   *time.Time  `json:"end_time,omitempty"`
	Assignee  string      `json:"assignee,omitempty"`
	Notes     string      `json:"notes,omitempty"`
}

// WorkflowSpec is the registration payload of a Workflow.
type WorkflowSpec struct {
	Name   string   `json:"name" yaml:"name" mapstructure:"name"`
	Agents []string `json:"agents" yaml:"agents" mapstructure:"agents"`
	Phases []string `json:"phases" yaml:"phases" mapstructure:"phases"`
}

// PhaseIndex returns the position of the named phase, or -1.
func (w *Workflow) PhaseIndex(name string) int {
	return slices.IndexFunc(w.Phases, func(p Phase) bool { return p.Name == name })
}

// Clone returns a deep copy so callers never share memory with the engine.
func (w Workflow) Clone() Workflow {
	out := w
	out.Agents = slices.Clone(w.Agents)
	out.EndTime = cloneTime(w.EndTime)
	if w.Phases != nil {
		out.Phases = make([]Phase, len(w.Phases))
		for i, p := range w.Phases {
			out.Phases[i] = p.Clone()
		}
	}
	out.Alerts = CloneAlerts(w.Alerts)
	return out
}

// Clone returns a deep copy of the phase.
func (p Phase) Clone() Phase {
	out := p
	out.StartTime = cloneTime(p.StartTime)
	out.EndTime = cloneTime(p.EndTime)
	return out
}

// Duration is the time spent in the phase: until EndTime when finished,
// until now while active, zero when never started.
func (p Phase) Duration(now time.Time) time.Duration {
	if p.StartTime == nil {
		return 0
	}
	if p.EndTime != nil {
		return p.EndTime.Sub(*p.StartTime)
	}
	return now.Sub(*p.StartTime)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
