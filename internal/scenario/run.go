package scenario

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/vigil"
	"github.com/aretw0/vigil/pkg/domain"
)

// Clock is a manually advanced clock shared by the Monitor and the replay.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at t.
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

// Now returns the simulated instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Outcome records the result of an update step.
type Outcome struct {
	Step   int           `json:"step"`
	Action string        `json:"action"`
	Target string        `json:"target"`
	Result domain.Result `json:"result"`
}

// Scan records the alerts seen by a scan step.
type Scan struct {
	At       time.Time      `json:"at"`
	Workflow string         `json:"workflow,omitempty"`
	Alerts   []domain.Alert `json:"alerts"`
}

// Run is the state left after a replay.
type Run struct {
	Monitor     *vigil.Monitor
	Clock       *Clock
	WorkflowIDs []string
	Outcomes    []Outcome
	Scans       []Scan

	step int
}

func (r *Run) record(action, target string, res domain.Result) {
	r.Outcomes = append(r.Outcomes, Outcome{Step: r.step, Action: action, Target: target, Result: res})
}

// Replay runs every step against a fresh Monitor driven by a simulated clock.
// opts are applied after the clock option, so they may add hooks or policy.
// A zero Start begins at the current wall-clock minute.
func (s *Scenario) Replay(ctx context.Context, opts ...vigil.Option) (*Run, error) {
	start := s.Start
	if start.IsZero() {
		start = time.Now().UTC().Truncate(time.Minute)
	}
	clock := NewClock(start)

	r := &Run{
		Monitor: vigil.New(append([]vigil.Option{vigil.WithClock(clock.Now)}, opts...)...),
		Clock:   clock,
	}

	for i, cmd := range s.commands {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		r.step = i + 1
		if err := cmd.apply(ctx, r); err != nil {
			return r, fmt.Errorf("step %d (%s): %w", r.step, s.Steps[i].Action, err)
		}
	}
	return r, nil
}
