/*
Package domain contains the core models of the vigil monitoring engine.

It defines the tracked entities (workflows, their phases, agents), the alerts
and metrics derived from them, and the enumerated update field sets accepted
by the engine. This package is kept pure: no I/O, no locking, no clocks.

# Key Entities

  - Workflow: A multi-phase project with an ordered list of Phases and an append-only alert log.
  - Phase: A named step of a Workflow with monotonic start/end timestamps.
  - Agent: A worker with a status, workload and a 0-100 utilization score.
  - Alert: A typed operational signal (long-running phase, overutilized agent, ...).
  - Metrics: Cached counters derived from every state transition.
*/
package domain
