package vigil_test

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/vigil"
	"github.com/aretw0/vigil/pkg/domain"
)

// ExampleMonitor_CheckForBottlenecks drives a monitor with a fixed clock so
// elapsed time is deterministic.
func ExampleMonitor_CheckForBottlenecks() {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	mon := vigil.New(vigil.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, _ = mon.RegisterWorkflow(ctx, "release", domain.WorkflowSpec{
		Name:   "Release",
		Phases: []string{"build", "ship"},
	})
	_, _ = mon.UpdatePhaseStatus(ctx, "release", "build", domain.PhaseActive, domain.PhaseUpdate{})
	now = now.Add(45 * time.Minute)

	alerts, _ := mon.CheckForBottlenecks(ctx, "release")
	for _, a := range alerts {
		fmt.Println(a.Message)
	}

	// Unknown phases are ignored, not errors.
	res, err := mon.UpdatePhaseStatus(ctx, "release", "ghost", domain.PhaseActive, domain.PhaseUpdate{})
	fmt.Println(res, err)

	// Output:
	// Phase "build" has been active for 45 minutes
	// not_found <nil>
}
