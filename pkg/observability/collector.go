package observability

import (
	"context"

	"github.com/aretw0/vigil/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsSource provides the snapshot exported on each scrape.
type MetricsSource interface {
	GetMetrics(ctx context.Context) domain.Metrics
}

// Collector implements prometheus.Collector over a MetricsSource.
type Collector struct {
	source      MetricsSource
	workflows   *prometheus.Desc
	utilization *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector. Register it with a prometheus.Registerer.
func NewCollector(source MetricsSource) *Collector {
	return &Collector{
		source: source,
		workflows: prometheus.NewDesc(
			"vigil_workflows",
			"Workflow counters by state (total, active, completed, failed).",
			[]string{"state"}, nil,
		),
		utilization: prometheus.NewDesc(
			"vigil_agent_utilization",
			"Latest utilization score (0-100) per agent.",
			[]string{"agent"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.workflows
	ch <- c.utilization
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.source.GetMetrics(context.Background())

	for state, v := range map[string]int{
		"total":     m.WorkflowCount,
		"active":    m.ActiveWorkflows,
		"completed": m.CompletedWorkflows,
		"failed":    m.FailedWorkflows,
	} {
		ch <- prometheus.MustNewConstMetric(c.workflows, prometheus.GaugeValue, float64(v), state)
	}
	for agent, v := range m.AgentUtilization {
		ch <- prometheus.MustNewConstMetric(c.utilization, prometheus.GaugeValue, float64(v), agent)
	}
}
