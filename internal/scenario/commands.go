package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/vigil/pkg/domain"
	"github.com/google/uuid"
)

type command interface {
	validate() error
	apply(ctx context.Context, r *Run) error
}

type registerAgent struct {
	domain.AgentSpec `mapstructure:",squash"`

	ID string `mapstructure:"id"`
}

func (c *registerAgent) validate() error {
	if c.ID == "" {
		return fmt.Errorf("id is required")
	}
	return nil
}

func (c *registerAgent) apply(ctx context.Context, r *Run) error {
	_, err := r.Monitor.RegisterAgent(ctx, c.ID, c.AgentSpec)
	return err
}

type registerWorkflow struct {
	domain.WorkflowSpec `mapstructure:",squash"`

	ID string `mapstructure:"id"`
}

func (c *registerWorkflow) validate() error { return nil }

func (c *registerWorkflow) apply(ctx context.Context, r *Run) error {
	id := c.ID
	if id == "" {
		id = uuid.New().String()
	}
	w, err := r.Monitor.RegisterWorkflow(ctx, id, c.WorkflowSpec)
	if err != nil {
		return err
	}
	r.WorkflowIDs = append(r.WorkflowIDs, w.ID)
	return nil
}

type workflowStatus struct {
	domain.WorkflowUpdate `mapstructure:",squash"`

	Workflow string `mapstructure:"workflow"`
	Status   string `mapstructure:"status"`

	status domain.WorkflowStatus
}

func (c *workflowStatus) validate() error {
	var err error
	c.status, err = domain.ParseWorkflowStatus(c.Status)
	return err
}

func (c *workflowStatus) apply(ctx context.Context, r *Run) error {
	res, err := r.Monitor.UpdateWorkflowStatus(ctx, c.Workflow, c.status, c.WorkflowUpdate)
	r.record(ActionWorkflowStatus, c.Workflow, res)
	return err
}

type phaseStatus struct {
	domain.PhaseUpdate `mapstructure:",squash"`

	Workflow string `mapstructure:"workflow"`
	Phase    string `mapstructure:"phase"`
	Status   string `mapstructure:"status"`

	status domain.PhaseStatus
}

func (c *phaseStatus) validate() error {
	var err error
	c.status, err = domain.ParsePhaseStatus(c.Status)
	return err
}

func (c *phaseStatus) apply(ctx context.Context, r *Run) error {
	res, err := r.Monitor.UpdatePhaseStatus(ctx, c.Workflow, c.Phase, c.status, c.PhaseUpdate)
	r.record(ActionPhaseStatus, c.Workflow+"/"+c.Phase, res)
	return err
}

type agentStatus struct {
	domain.AgentUpdate `mapstructure:",squash"`

	Agent  string `mapstructure:"agent"`
	Status string `mapstructure:"status"`

	status domain.AgentStatus
}

func (c *agentStatus) validate() error {
	var err error
	c.status, err = domain.ParseAgentStatus(c.Status)
	return err
}

func (c *agentStatus) apply(ctx context.Context, r *Run) error {
	res, err := r.Monitor.UpdateAgentStatus(ctx, c.Agent, c.status, c.AgentUpdate)
	r.record(ActionAgentStatus, c.Agent, res)
	return err
}

type alert struct {
	Workflow string            `mapstructure:"workflow"`
	Type     string            `mapstructure:"type"`
	Severity string            `mapstructure:"severity"`
	Message  string            `mapstructure:"message"`
	Data     map[string]string `mapstructure:"data"`
}

func (c *alert) validate() error {
	if c.Type == "" {
		return fmt.Errorf("type is required")
	}
	return nil
}

func (c *alert) apply(ctx context.Context, r *Run) error {
	res := r.Monitor.AddAlert(ctx, c.Workflow, domain.Alert{
		Type:     domain.AlertType(c.Type),
		Severity: c.Severity,
		Message:  c.Message,
		Data:     c.Data,
	})
	r.record(ActionAlert, c.Workflow, res)
	return nil
}

type advance struct {
	By time.Duration `mapstructure:"by"`
}

func (c *advance) validate() error {
	if c.By <= 0 {
		return fmt.Errorf("by must be a positive duration")
	}
	return nil
}

func (c *advance) apply(ctx context.Context, r *Run) error {
	r.Clock.Advance(c.By)
	return nil
}

type scan struct {
	Workflow string `mapstructure:"workflow"`
}

func (c *scan) validate() error { return nil }

func (c *scan) apply(ctx context.Context, r *Run) error {
	var alerts []domain.Alert
	if c.Workflow == "" {
		alerts = r.Monitor.CheckAllBottlenecks(ctx)
	} else {
		alerts, _ = r.Monitor.CheckForBottlenecks(ctx, c.Workflow)
	}
	r.Scans = append(r.Scans, Scan{At: r.Clock.Now(), Workflow: c.Workflow, Alerts: alerts})
	return nil
}
