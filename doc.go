/*
Package vigil is an in-process monitoring engine for pools of cooperating
worker agents executing multi-phase workflows.

It tracks workflows, their ordered phases and the agents assigned to them,
keeps running counters up to date on every transition, and derives
operational signals on demand: agent utilization, long-running phases,
overutilized agents, delivery predictions, risks and an overall health
status.

# Concept

The engine is pure state plus analytics. It performs no I/O, persists
nothing and owns no transport. A host (the vigil CLI, the HTTP or MCP
adapters, a test) drives it through the Monitor facade and receives copies,
never live references.

# Key Rules

  - Duplicate registration fails with domain.ErrDuplicateEntity.
  - Updates on unknown ids or phases are no-ops reported as domain.ResultNotFound.
  - Phase timestamps are set once and finished phases never move again.
  - Bottleneck scans are read-only; AddAlert is the only way to grow an alert log.

# Usage

	m := vigil.New(vigil.WithLogger(logger))

	_, err := m.RegisterWorkflow(ctx, "w1", domain.WorkflowSpec{
		Name:   "Checkout revamp",
		Agents: []string{"dev1"},
		Phases: []string{"design", "build"},
	})
	if err != nil {
		log.Fatal(err)
	}

	m.UpdatePhaseStatus(ctx, "w1", "design", domain.PhaseActive, domain.PhaseUpdate{})

	alerts, _ := m.CheckForBottlenecks(ctx, "w1")
	for _, a := range alerts {
		fmt.Println(a.Message)
	}
*/
package vigil
