package analysis

import "time"

// Thresholds are the policy constants behind the derived signals.
type Thresholds struct {
	// LongRunningPhase is how long a phase may stay active before it is reported.
	LongRunningPhase time.Duration `yaml:"long_running_phase"`
	// Overutilization is the utilization above which an agent is reported (exclusive).
	Overutilization int `yaml:"overutilization"`
	// UtilizationIdle is how long an agent must stay busy before utilization ratchets up.
	UtilizationIdle time.Duration `yaml:"utilization_idle"`
}

// DefaultThresholds returns the stock policy: 30 minutes, 80%, 5 minutes.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LongRunningPhase: 30 * time.Minute,
		Overutilization:  80,
		UtilizationIdle:  5 * time.Minute,
	}
}

// WithDefaults fills zero fields from DefaultThresholds.
func (t Thresholds) WithDefaults() Thresholds {
	d := DefaultThresholds()
	if t.LongRunningPhase <= 0 {
		t.LongRunningPhase = d.LongRunningPhase
	}
	if t.Overutilization <= 0 {
		t.Overutilization = d.Overutilization
	}
	if t.UtilizationIdle <= 0 {
		t.UtilizationIdle = d.UtilizationIdle
	}
	return t
}
