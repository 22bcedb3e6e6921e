package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/vigil/internal/logging"
	"github.com/aretw0/vigil/pkg/ports"
)

// LatestID is the report ID the Poller overwrites on each tick.
const LatestID = "latest"

// Poller periodically builds and publishes a report.
// Each tick sees the monitor as of that tick; nothing is buffered in between.
type Poller struct {
	source   ports.MonitorReader
	manager  *Manager
	interval time.Duration
	spec     Spec
	clock    func() time.Time
	logger   *slog.Logger
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithPollerLogger sets the logger used for bottleneck warnings.
func WithPollerLogger(logger *slog.Logger) PollerOption {
	return func(p *Poller) {
		p.logger = logger
	}
}

// WithPollerClock replaces time.Now for report timestamps.
func WithPollerClock(clock func() time.Time) PollerOption {
	return func(p *Poller) {
		p.clock = clock
	}
}

// WithSpec sets the ID, kind and timeframe of published reports.
func WithSpec(spec Spec) PollerOption {
	return func(p *Poller) {
		p.spec = spec
	}
}

// NewPoller creates a Poller publishing every interval.
func NewPoller(source ports.MonitorReader, manager *Manager, interval time.Duration, opts ...PollerOption) *Poller {
	p := &Poller{
		source:   source,
		manager:  manager,
		interval: interval,
		spec:     Spec{ID: LatestID, Kind: KindPerformance},
		clock:    time.Now,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tick builds and publishes one report.
func (p *Poller) Tick(ctx context.Context) error {
	r := Build(ctx, p.source, p.spec, p.clock())
	for _, a := range r.Bottlenecks {
		p.logger.Warn("bottleneck detected",
			"type", a.Type,
			"workflow_id", a.WorkflowID,
			"phase", a.Phase,
			"agent_id", a.AgentID,
			"message", a.Message,
		)
	}
	return p.manager.Publish(ctx, r)
}

// Run publishes immediately and then on every interval until ctx is done.
// Publish failures are logged and do not stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.Tick(ctx); err != nil {
		p.logger.Error("report publish failed", "err", err)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.Tick(ctx); err != nil {
				p.logger.Error("report publish failed", "err", err)
			}
		}
	}
}
