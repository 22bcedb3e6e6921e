package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/vigil/pkg/domain"
)

// Markdown renders a human summary of the report.
func Markdown(r domain.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Vigil %s report\n\n", r.Kind)
	fmt.Fprintf(&b, "_Generated %s", r.Generated.UTC().Format(time.RFC3339))
	if r.Timeframe != "" {
		fmt.Fprintf(&b, " · timeframe %s", r.Timeframe)
	}
	b.WriteString("_\n\n")

	fmt.Fprintf(&b, "**Health:** %s\n\n", r.Health.Status)

	b.WriteString("## Metrics\n\n")
	b.WriteString("| Workflows | Active | Completed | Failed |\n")
	b.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d |\n\n",
		r.Metrics.WorkflowCount, r.Metrics.ActiveWorkflows,
		r.Metrics.CompletedWorkflows, r.Metrics.FailedWorkflows)

	if len(r.Workflows) > 0 {
		b.WriteString("## Workflows\n\n")
		b.WriteString("| ID | Name | Status | Phases done |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, w := range r.Workflows {
			done := 0
			for _, p := range w.Phases {
				if p.Status == domain.PhaseCompleted {
					done++
				}
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %d/%d |\n", w.ID, w.Name, w.Status, done, len(w.Phases))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Bottlenecks\n\n")
	if len(r.Bottlenecks) == 0 {
		b.WriteString("None.\n\n")
	} else {
		for _, a := range r.Bottlenecks {
			fmt.Fprintf(&b, "- **%s**: %s\n", a.Type, a.Message)
		}
		b.WriteString("\n")
	}

	if len(r.Risks) > 0 {
		b.WriteString("## Risks\n\n")
		for _, k := range r.Risks {
			fmt.Fprintf(&b, "- [%s] %s\n", k.Severity, k.Description)
		}
		b.WriteString("\n")
	}

	if len(r.Predictions) > 0 {
		b.WriteString("## Predictions\n\n")
		for _, p := range r.Predictions {
			fmt.Fprintf(&b, "- `%s`: %d phases left, expected %s (confidence %.0f%%)\n",
				p.WorkflowID, p.RemainingPhases,
				p.PredictedCompletion.UTC().Format(time.RFC3339), p.Confidence*100)
		}
		b.WriteString("\n")
	}

	if len(r.Metrics.AgentUtilization) > 0 {
		b.WriteString("## Agent utilization\n\n")
		ids := make([]string, 0, len(r.Metrics.AgentUtilization))
		for id := range r.Metrics.AgentUtilization {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "- %s: %d%%\n", id, r.Metrics.AgentUtilization[id])
		}
	}

	return b.String()
}
