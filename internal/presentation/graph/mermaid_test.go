package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/vigil/internal/presentation/graph"
	"github.com/aretw0/vigil/pkg/domain"
)

func workflow(phases ...domain.Phase) domain.Workflow {
	return domain.Workflow{ID: "w1", Phases: phases}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		workflow domain.Workflow
		overlay  *graph.Overlay
		contains []string
		excludes []string
	}{
		{
			name: "Phases In Order",
			workflow: workflow(
				domain.Phase{Name: "requirements", Status: domain.PhaseCompleted},
				domain.Phase{Name: "design", Status: domain.PhaseActive},
				domain.Phase{Name: "testing", Status: domain.PhasePending},
			),
			contains: []string{
				"graph TD\n",
				`p0_requirements["requirements<br/>Completed"]`,
				`p1_design["design<br/>Active"]`,
				"p0_requirements --> p1_design",
				"p1_design --> p2_testing",
			},
		},
		{
			name: "Status Colours",
			workflow: workflow(
				domain.Phase{Name: "a", Status: domain.PhaseCompleted},
				domain.Phase{Name: "b", Status: domain.PhaseFailed},
			),
			contains: []string{
				"classDef completed fill:#34a853",
				"classDef active fill:#f9ab00",
				"classDef pending fill:#e8eaed",
				"classDef failed fill:#ea4335",
				"class p0_a completed;",
				"class p1_b failed;",
			},
		},
		{
			name: "ID Sanitization",
			workflow: workflow(
				domain.Phase{Name: "code review", Status: domain.PhasePending},
				domain.Phase{Name: "qa/sign-off", Status: domain.PhasePending},
			),
			contains: []string{
				`p0_code_review["code review<br/>Pending"]`,
				`p1_qa_sign_off["qa/sign-off<br/>Pending"]`,
			},
		},
		{
			name: "Label Escaping",
			workflow: workflow(
				domain.Phase{Name: `the "big" one`, Status: domain.PhasePending},
			),
			contains: []string{
				`["the 'big' one<br/>Pending"]`,
			},
		},
		{
			name: "Bottleneck Overlay",
			workflow: workflow(
				domain.Phase{Name: "build", Status: domain.PhaseActive},
			),
			overlay: &graph.Overlay{Bottlenecks: []domain.Alert{
				{Type: domain.AlertLongRunningPhase, WorkflowID: "w1", Phase: "build", DurationMinutes: 45},
				{Type: domain.AlertLongRunningPhase, WorkflowID: "other", Phase: "build", DurationMinutes: 99},
			}},
			contains: []string{
				"⏱️ 45 min",
				"class p0_build bottleneck;",
			},
			excludes: []string{
				"99 min",
			},
		},
		{
			name:     "Empty Workflow",
			workflow: workflow(),
			excludes: []string{"classDef"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.workflow, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, bad)
				}
			}
		})
	}
}
