// Package metrics maintains the running counters of the engine.
//
// The Aggregator is a cache updated by the mutation paths of vigil.Monitor.
// There is no recompute pass: state changed behind the Monitor's back is not
// reflected here.
package metrics

import (
	"fmt"

	"github.com/aretw0/vigil/pkg/domain"
)

// Policy selects how workflow statuses map onto the counters.
type Policy string

const (
	// CountLegacy counts a workflow as active from registration on, and only
	// moves counters on active->completed and active->failed.
	CountLegacy Policy = "legacy"

	// CountOccupancy makes Active/Completed/Failed the number of workflows
	// currently in that status. Registration only bumps WorkflowCount.
	CountOccupancy Policy = "occupancy"
)

// ParsePolicy converts configuration text into a Policy. Empty means CountLegacy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", CountLegacy:
		return CountLegacy, nil
	case CountOccupancy:
		return CountOccupancy, nil
	}
	return "", fmt.Errorf("unknown counting policy %q", s)
}

// Aggregator holds the cached counters.
// It is not safe for concurrent use; vigil.Monitor serializes access.
type Aggregator struct {
	policy Policy
	m      domain.Metrics
}

// NewAggregator creates zeroed counters using policy.
func NewAggregator(policy Policy) *Aggregator {
	if policy == "" {
		policy = CountLegacy
	}
	return &Aggregator{
		policy: policy,
		m:      domain.Metrics{AgentUtilization: make(map[string]int)},
	}
}

// Policy returns the counting policy in use.
func (a *Aggregator) Policy() Policy {
	return a.policy
}

// WorkflowRegistered records a new pending workflow.
func (a *Aggregator) WorkflowRegistered() {
	a.m.WorkflowCount++
	if a.policy == CountLegacy {
		a.m.ActiveWorkflows++
	}
}

// WorkflowTransitioned records a status change from -> to.
func (a *Aggregator) WorkflowTransitioned(from, to domain.WorkflowStatus) {
	if a.policy == CountOccupancy {
		if from == to {
			return
		}
		a.adjust(from, -1)
		a.adjust(to, +1)
		return
	}

	if from != domain.WorkflowActive {
		return
	}
	switch to {
	case domain.WorkflowCompleted:
		a.m.ActiveWorkflows--
		a.m.CompletedWorkflows++
	case domain.WorkflowFailed:
		a.m.ActiveWorkflows--
		a.m.FailedWorkflows++
	}
}

func (a *Aggregator) adjust(s domain.WorkflowStatus, delta int) {
	switch s {
	case domain.WorkflowActive:
		a.m.ActiveWorkflows += delta
	case domain.WorkflowCompleted:
		a.m.CompletedWorkflows += delta
	case domain.WorkflowFailed:
		a.m.FailedWorkflows += delta
	}
}

// AgentUtilization records the latest utilization of an agent.
func (a *Aggregator) AgentUtilization(id string, value int) {
	a.m.AgentUtilization[id] = value
}

// Snapshot returns a point-in-time copy.
func (a *Aggregator) Snapshot() domain.Metrics {
	return a.m.Clone()
}
