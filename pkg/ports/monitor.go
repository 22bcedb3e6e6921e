package ports

import (
	"context"

	"github.com/aretw0/vigil/pkg/domain"
)

// MonitorReader is the read-only side of the engine, enough to build reports.
type MonitorReader interface {
	GetWorkflow(ctx context.Context, id string) (domain.Workflow, bool)
	GetAllWorkflows(ctx context.Context) []domain.Workflow
	GetAgent(ctx context.Context, id string) (domain.Agent, bool)
	GetAllAgents(ctx context.Context) []domain.Agent
	GetMetrics(ctx context.Context) domain.Metrics
	GetAlerts(ctx context.Context, id string) ([]domain.Alert, bool)
	CheckForBottlenecks(ctx context.Context, id string) ([]domain.Alert, bool)
	CheckAllBottlenecks(ctx context.Context) []domain.Alert
	PredictDelivery(ctx context.Context, id string) (domain.Prediction, error)
	AssessRisks(ctx context.Context) []domain.Risk
	HealthCheck(ctx context.Context) domain.Health
}

// Monitor is the full surface of vigil.Monitor used by interactive adapters.
type Monitor interface {
	MonitorReader

	RegisterWorkflow(ctx context.Context, id string, spec domain.WorkflowSpec) (domain.Workflow, error)
	UpdateWorkflowStatus(ctx context.Context, id string, status domain.WorkflowStatus, upd domain.WorkflowUpdate) (domain.Result, error)
	UpdatePhaseStatus(ctx context.Context, id, phase string, status domain.PhaseStatus, upd domain.PhaseUpdate) (domain.Result, error)
	AddAlert(ctx context.Context, id string, alert domain.Alert) domain.Result
	RegisterAgent(ctx context.Context, id string, spec domain.AgentSpec) (domain.Agent, error)
	UpdateAgentStatus(ctx context.Context, id string, status domain.AgentStatus, upd domain.AgentUpdate) (domain.Result, error)
}
