package report

import (
	"context"
	"time"

	"github.com/aretw0/vigil/pkg/domain"
	"github.com/aretw0/vigil/pkg/ports"
	"github.com/google/uuid"
)

// KindPerformance is the default report kind.
const KindPerformance = "performance"

// Spec identifies the report to build. Empty fields get defaults:
// a random ID and KindPerformance.
type Spec struct {
	ID        string
	Kind      string
	Timeframe string
}

// Build assembles a report from the current monitor state.
// Predictions are included only for live workflows with enough history.
func Build(ctx context.Context, src ports.MonitorReader, spec Spec, now time.Time) domain.Report {
	if spec.ID == "" {
		spec.ID = uuid.New().String()
	}
	if spec.Kind == "" {
		spec.Kind = KindPerformance
	}

	workflows := src.GetAllWorkflows(ctx)

	var predictions []domain.Prediction
	for _, w := range workflows {
		if w.Status.Terminal() || w.Status == domain.WorkflowArchived {
			continue
		}
		p, err := src.PredictDelivery(ctx, w.ID)
		if err != nil {
			continue
		}
		predictions = append(predictions, p)
	}

	return domain.Report{
		ID:          spec.ID,
		Kind:        spec.Kind,
		Timeframe:   spec.Timeframe,
		Generated:   now,
		Metrics:     src.GetMetrics(ctx),
		Health:      src.HealthCheck(ctx),
		Bottlenecks: src.CheckAllBottlenecks(ctx),
		Risks:       src.AssessRisks(ctx),
		Predictions: predictions,
		Workflows:   workflows,
	}
}
