package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/vigil/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Transitions counts applied status changes and alerts.
type Transitions struct {
	changes *prometheus.CounterVec
	alerts  *prometheus.CounterVec
}

// NewTransitions creates the counters and registers them with reg.
func NewTransitions(reg prometheus.Registerer) (*Transitions, error) {
	t := &Transitions{
		changes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vigil_transitions_total",
				Help: "Total number of applied status transitions",
			},
			[]string{"kind", "to"},
		),
		alerts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vigil_alerts_total",
				Help: "Total number of alerts appended to workflow logs",
			},
			[]string{"type"},
		),
	}
	for _, c := range []prometheus.Collector{t.changes, t.alerts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Hooks returns lifecycle hooks that log every event and feed the counters.
// A nil Transitions only logs.
func Hooks(logger *slog.Logger, t *Transitions) domain.LifecycleHooks {
	onTransition := func(ctx context.Context, e *domain.TransitionEvent) {
		logger.Info("transition",
			"kind", e.Kind,
			"id", e.EntityID,
			"phase", e.Phase,
			"from", e.From,
			"to", e.To,
		)
		if t != nil {
			t.changes.WithLabelValues(string(e.Kind), e.To).Inc()
		}
	}

	return domain.LifecycleHooks{
		OnWorkflowTransition: onTransition,
		OnPhaseTransition:    onTransition,
		OnAgentTransition:    onTransition,
		OnAlert: func(ctx context.Context, a *domain.Alert) {
			logger.Warn("alert",
				"type", a.Type,
				"workflow_id", a.WorkflowID,
				"message", a.Message,
			)
			if t != nil {
				t.alerts.WithLabelValues(string(a.Type)).Inc()
			}
		},
	}
}
