package analysis

import (
	"fmt"
	"time"

	"github.com/aretw0/vigil/pkg/domain"
)

// criticalUtilization is the agent utilization from which overload is a high risk.
const criticalUtilization = 95

// AssessRisks grades the given bottleneck alerts and adds one risk per failed workflow.
func (d *Detector) AssessRisks(workflows []domain.Workflow, bottlenecks []domain.Alert, now time.Time) []domain.Risk {
	risks := make([]domain.Risk, 0, len(bottlenecks))
	for _, a := range bottlenecks {
		r := domain.Risk{
			Type:        string(a.Type),
			Severity:    domain.SeverityMedium,
			Description: a.Message,
			WorkflowID:  a.WorkflowID,
			Phase:       a.Phase,
			AgentID:     a.AgentID,
			Timestamp:   now,
		}
		switch a.Type {
		case domain.AlertLongRunningPhase:
			if time.Duration(a.DurationMinutes)*time.Minute >= 2*d.thresholds.LongRunningPhase {
				r.Severity = domain.SeverityHigh
			}
		case domain.AlertAgentOverutilization:
			if a.Utilization >= criticalUtilization {
				r.Severity = domain.SeverityHigh
			}
		default:
			r.Severity = domain.SeverityLow
		}
		risks = append(risks, r)
	}

	for _, w := range workflows {
		if w.Status != domain.WorkflowFailed {
			continue
		}
		risks = append(risks, domain.Risk{
			Type:        domain.RiskWorkflowFailed,
			Severity:    domain.SeverityHigh,
			Description: fmt.Sprintf("Workflow %q failed", w.Name),
			WorkflowID:  w.ID,
			Timestamp:   now,
		})
	}
	return risks
}
