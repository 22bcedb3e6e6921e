package domain

import (
	"maps"
	"time"
)

// AlertType tags the meaning of an Alert.
type AlertType string

const (
	AlertLongRunningPhase     AlertType = "long_running_phase"
	AlertAgentOverutilization AlertType = "agent_overutilization"
)

// Alert is an operational signal. Only Type and Timestamp are always set;
// the rest depends on what raised it.
type Alert struct {
	Type      AlertType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	WorkflowID string `json:"workflow_id,omitempty"`
	Phase      string `json:"phase,omitempty"`
	AgentID    string `json:"agent_id,omitempty"`
	Severity   string `json:"severity,omitempty"`
	Message    string `json:"message,omitempty"`

	// DurationMinutes is always whole, rounded minutes.
	DurationMinutes int `json:"duration_minutes,omitempty"`
	Utilization     int `json:"utilization,omitempty"`

	Data map[string]string `json:"data,omitempty"`
}

// Clone returns a deep copy of the alert.
func (a Alert) Clone() Alert {
	out := a
	if a.Data != nil {
		out.Data = maps.Clone(a.Data)
	}
	return out
}

// CloneAlerts deep-copies an alert log. A nil log stays nil.
func CloneAlerts(in []Alert) []Alert {
	if in == nil {
		return nil
	}
	out := make([]Alert, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}
