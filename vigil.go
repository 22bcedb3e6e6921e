package vigil

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/vigil/internal/logging"
	"github.com/aretw0/vigil/pkg/analysis"
	"github.com/aretw0/vigil/pkg/domain"
	"github.com/aretw0/vigil/pkg/metrics"
	"github.com/aretw0/vigil/pkg/ports"
	"github.com/aretw0/vigil/pkg/registry"
	"github.com/aretw0/vigil/pkg/workflow"
)

// Monitor is the high-level entry point of the vigil library.
// It composes the agent registry, the workflow store, the metrics aggregator
// and the analysis helpers behind one API. Every read returns a copy.
//
// Monitor is safe for concurrent use: all operations are serialized by a
// single engine-wide lock.
type Monitor struct {
	mu sync.Mutex

	agents    *registry.Registry
	workflows *workflow.Store
	metrics   *metrics.Aggregator
	detector  *analysis.Detector

	thresholds analysis.Thresholds
	policy     metrics.Policy
	hooks      domain.LifecycleHooks
	clock      func() time.Time
	logger     *slog.Logger
}

var _ ports.Monitor = (*Monitor)(nil)

// Option defines a functional option for configuring the Monitor.
type Option func(*Monitor)

// WithClock replaces time.Now. Tests use it to simulate elapsed time.
func WithClock(clock func() time.Time) Option {
	return func(m *Monitor) {
		m.clock = clock
	}
}

// WithLogger sets a custom structured logger for the monitor.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

// WithThresholds overrides the bottleneck and utilization policy.
// Zero fields keep their defaults.
func WithThresholds(t analysis.Thresholds) Option {
	return func(m *Monitor) {
		m.thresholds = t
	}
}

// WithCountingPolicy selects how workflow statuses feed the counters
// (default metrics.CountLegacy).
func WithCountingPolicy(p metrics.Policy) Option {
	return func(m *Monitor) {
		m.policy = p
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Monitor) {
		m.hooks = hooks
	}
}

// New creates an empty Monitor.
func New(opts ...Option) *Monitor {
	m := &Monitor{
		policy: metrics.CountLegacy,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = logging.NewNop()
	}

	m.detector = analysis.NewDetector(m.thresholds)
	m.thresholds = m.detector.Thresholds()
	idle := m.thresholds.UtilizationIdle

	m.agents = registry.NewRegistry(func(a domain.Agent, now time.Time) int {
		return analysis.Ratchet(a, now, idle)
	})
	m.workflows = workflow.NewStore()
	m.metrics = metrics.NewAggregator(m.policy)
	return m
}

// Thresholds returns the effective policy constants.
func (m *Monitor) Thresholds() analysis.Thresholds {
	return m.thresholds
}

func (m *Monitor) ignored(op, kind, id string, res domain.Result) {
	m.logger.Debug("update ignored",
		"op", op,
		"kind", kind,
		"id", id,
		"result", res.String(),
	)
}
