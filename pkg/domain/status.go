package domain

import "fmt"

// WorkflowStatus is the lifecycle position of a Workflow.
type WorkflowStatus string

const (
	WorkflowPending   WorkflowStatus = "pending"
	WorkflowActive    WorkflowStatus = "active"
	WorkflowPaused    WorkflowStatus = "paused"
	WorkflowCompleted WorkflowStatus = "completed"
	WorkflowFailed    WorkflowStatus = "failed"
	WorkflowArchived  WorkflowStatus = "archived"
)

// Valid reports whether s is a known workflow status.
func (s WorkflowStatus) Valid() bool {
	switch s {
	case WorkflowPending, WorkflowActive, WorkflowPaused, WorkflowCompleted, WorkflowFailed, WorkflowArchived:
		return true
	}
	return false
}

// Terminal is true for completed and failed, the statuses that fix EndTime.
func (s WorkflowStatus) Terminal() bool {
	return s == WorkflowCompleted || s == WorkflowFailed
}

// ParseWorkflowStatus converts external text into a WorkflowStatus.
func ParseWorkflowStatus(s string) (WorkflowStatus, error) {
	st := WorkflowStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: workflow status %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// PhaseStatus is the lifecycle position of a Phase.
type PhaseStatus string

const (
	PhasePending   PhaseStatus = "pending"
	PhaseActive    PhaseStatus = "active"
	PhaseCompleted PhaseStatus = "completed"
	PhaseFailed    PhaseStatus = "failed"
)

func (s PhaseStatus) Valid() bool {
	switch s {
	case PhasePending, PhaseActive, PhaseCompleted, PhaseFailed:
		return true
	}
	return false
}

// Terminal is true for completed and failed. Terminal phases never move again.
func (s PhaseStatus) Terminal() bool {
	return s == PhaseCompleted || s == PhaseFailed
}

// ParsePhaseStatus converts external text into a PhaseStatus.
func ParsePhaseStatus(s string) (PhaseStatus, error) {
	st := PhaseStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: phase status %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// AgentStatus is the availability of an Agent.
type AgentStatus string

const (
	AgentIdle    AgentStatus = "idle"
	AgentBusy    AgentStatus = "busy"
	AgentOffline AgentStatus = "offline"
)

func (s AgentStatus) Valid() bool {
	return s == AgentIdle || s == AgentBusy || s == AgentOffline
}

// ParseAgentStatus converts external text into an AgentStatus.
func ParseAgentStatus(s string) (AgentStatus, error) {
	st := AgentStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: agent status %q", ErrInvalidStatus, s)
	}
	return st, nil
}
