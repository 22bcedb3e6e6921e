package domain

import "time"

// Prediction estimates when a workflow will deliver.
type Prediction struct {
	WorkflowID          string        `json:"workflow_id"`
	PredictedCompletion time.Time     `json:"predicted_completion"`
	Confidence          float64       `json:"confidence"`
	AvgPhaseDuration    time.Duration `json:"avg_phase_duration"`
	RemainingPhases     int           `json:"remaining_phases"`
	Factors             []string      `json:"factors"`
}

// Severity grades a Risk.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RiskWorkflowFailed is raised for every failed workflow.
const RiskWorkflowFailed = "workflow_failed"

// Risk is a graded, human-readable view of a bottleneck or failure.
type Risk struct {
	Type        string    `json:"type"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
	WorkflowID  string    `json:"workflow_id,omitempty"`
	Phase       string    `json:"phase,omitempty"`
	AgentID     string    `json:"agent_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// SystemHealth summarizes the overall state.
type SystemHealth string

const (
	HealthOperational SystemHealth = "operational"
	HealthDegraded    SystemHealth = "degraded"
	HealthCritical    SystemHealth = "critical"
)

// Health is the result of a health check.
type Health struct {
	Status         SystemHealth        `json:"status"`
	Metrics        Metrics             `json:"metrics"`
	AgentsByStatus map[AgentStatus]int `json:"agents_by_status"`
	Risks          int                 `json:"risks"`
}

// Report is a point-in-time performance report built by a reporting host.
type Report struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	Timeframe   string       `json:"timeframe,omitempty"`
	Generated   time.Time    `json:"generated"`
	Metrics     Metrics      `json:"metrics"`
	Health      Health       `json:"health"`
	Bottlenecks []Alert      `json:"bottlenecks"`
	Risks       []Risk       `json:"risks"`
	Predictions []Prediction `json:"predictions"`
	Workflows   []Workflow   `json:"workflows"`
}

// Clone returns a deep copy of the report.
func (r Report) Clone() Report {
	out := r
	out.Metrics = r.Metrics.Clone()
	out.Health.Metrics = r.Health.Metrics.Clone()
	if r.Health.AgentsByStatus != nil {
		out.Health.AgentsByStatus = make(map[AgentStatus]int, len(r.Health.AgentsByStatus))
		for k, v := range r.Health.AgentsByStatus {
			out.Health.AgentsByStatus[k] = v
		}
	}
	out.Bottlenecks = CloneAlerts(r.Bottlenecks)
	out.Risks = append([]Risk(nil), r.Risks...)
	if r.Predictions != nil {
		out.Predictions = make([]Prediction, len(r.Predictions))
		for i, p := range r.Predictions {
			p.Factors = append([]string(nil), p.Factors...)
			out.Predictions[i] = p
		}
	}
	if r.Workflows != nil {
		out.Workflows = make([]Workflow, len(r.Workflows))
		for i, w := range r.Workflows {
			out.Workflows[i] = w.Clone()
		}
	}
	return out
}
