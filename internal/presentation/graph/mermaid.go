package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/vigil/pkg/domain"
)

// Phase fill colours, shared by the node styles and the class definitions.
const (
	colorCompleted = "#34a853"
	colorActive    = "#f9ab00"
	colorPending   = "#e8eaed"
	colorFailed    = "#ea4335"
)

// Overlay contains dynamic signals to annotate on the graph.
type Overlay struct {
	// Bottlenecks are long-running phase alerts; matching phases show their duration.
	Bottlenecks []domain.Alert
}

// GenerateMermaid produces a Mermaid flowchart of a workflow's phases in order.
// Each node shows the phase name and status, and is coloured by status:
// completed green, active amber, pending grey, failed red.
func GenerateMermaid(w domain.Workflow, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	slow := make(map[string]int)
	if overlay != nil {
		for _, a := range overlay.Bottlenecks {
			if a.Type == domain.AlertLongRunningPhase && (a.WorkflowID == "" || a.WorkflowID == w.ID) {
				slow[a.Phase] = a.DurationMinutes
			}
		}
	}

	ids := make([]string, len(w.Phases))
	for i, p := range w.Phases {
		ids[i] = nodeID(i, p.Name)

		label := fmt.Sprintf("%s<br/>%s", escapeLabel(p.Name), statusLabel(p.Status))
		if minutes, ok := slow[p.Name]; ok {
			label += fmt.Sprintf(" <br/> ⏱️ %d min", minutes)
		}
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", ids[i], label))
	}

	for i := 1; i < len(ids); i++ {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids[i-1], ids[i]))
	}

	if len(w.Phases) == 0 {
		return sb.String()
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("    classDef completed fill:%s,stroke:#333,stroke-width:2px,color:#000;\n", colorCompleted))
	sb.WriteString(fmt.Sprintf("    classDef active fill:%s,stroke:#333,stroke-width:2px,color:#000;\n", colorActive))
	sb.WriteString(fmt.Sprintf("    classDef pending fill:%s,stroke:#333,stroke-width:2px,color:#000;\n", colorPending))
	sb.WriteString(fmt.Sprintf("    classDef failed fill:%s,stroke:#333,stroke-width:2px,color:#000;\n", colorFailed))
	if len(slow) > 0 {
		sb.WriteString("    classDef bottleneck stroke:#d93025,stroke-width:4px;\n")
	}

	for i, p := range w.Phases {
		sb.WriteString(fmt.Sprintf("    class %s %s;\n", ids[i], p.Status))
		if _, ok := slow[p.Name]; ok {
			sb.WriteString(fmt.Sprintf("    class %s bottleneck;\n", ids[i]))
		}
	}

	return sb.String()
}

func statusLabel(s domain.PhaseStatus) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// nodeID keeps IDs unique even when two names sanitize to the same string.
func nodeID(i int, name string) string {
	return fmt.Sprintf("p%d_%s", i, sanitizeMermaidID(name))
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}
