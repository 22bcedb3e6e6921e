package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/aretw0/vigil/pkg/domain"
)

// Detector scans snapshots for long-running phases and overutilized agents.
type Detector struct {
	thresholds Thresholds
}

// NewDetector creates a Detector. Zero thresholds fall back to the defaults.
func NewDetector(t Thresholds) *Detector {
	return &Detector{thresholds: t.WithDefaults()}
}

// Thresholds returns the effective policy.
func (d *Detector) Thresholds() Thresholds {
	return d.thresholds
}

// Scan returns the phase alerts of w followed by the agent alerts.
// It never touches w's stored alert log.
func (d *Detector) Scan(w domain.Workflow, agents []domain.Agent, now time.Time) []domain.Alert {
	alerts := d.PhaseAlerts(w, now)
	return append(alerts, d.AgentAlerts(agents, now)...)
}

// PhaseAlerts reports every active phase of w that has exceeded LongRunningPhase.
func (d *Detector) PhaseAlerts(w domain.Workflow, now time.Time) []domain.Alert {
	var alerts []domain.Alert
	for _, p := range w.Phases {
		if p.Status != domain.PhaseActive || p.StartTime == nil {
			continue
		}
		elapsed := now.Sub(*p.StartTime)
		if elapsed <= d.thresholds.LongRunningPhase {
			continue
		}
		minutes := RoundMinutes(elapsed)
		alerts = append(alerts, domain.Alert{
			Type:            domain.AlertLongRunningPhase,
			Timestamp:       now,
			WorkflowID:      w.ID,
			Phase:           p.Name,
			DurationMinutes: minutes,
			Message:         fmt.Sprintf("Phase %q has been active for %d minutes", p.Name, minutes),
		})
	}
	return alerts
}

// AgentAlerts reports every agent strictly above the Overutilization threshold.
func (d *Detector) AgentAlerts(agents []domain.Agent, now time.Time) []domain.Alert {
	var alerts []domain.Alert
	for _, a := range agents {
		if a.Utilization <= d.thresholds.Overutilization {
			continue
		}
		alerts = append(alerts, domain.Alert{
			Type:        domain.AlertAgentOverutilization,
			Timestamp:   now,
			AgentID:     a.ID,
			Utilization: a.Utilization,
			Message:     fmt.Sprintf("Agent %q is at %d%% utilization", a.ID, a.Utilization),
		})
	}
	return alerts
}

// RoundMinutes converts d to whole minutes, rounding half away from zero.
func RoundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
