package analysis

import (
	"fmt"
	"time"

	"github.com/aretw0/vigil/pkg/domain"
)

const (
	baseConfidence    = 0.5
	sampleConfidence  = 0.1
	maxConfidence     = 0.95
	minConfidence     = 0.1
	bottleneckPenalty = 0.1
)

// Predict projects the completion of w from the average duration of its
// completed phases. Each remaining phase is assumed to take that average,
// minus what the currently active phase has already spent. A workflow that
// has finished (including one archived afterwards) predicts its EndTime.
func (d *Detector) Predict(w domain.Workflow, now time.Time) (domain.Prediction, error) {
	p := domain.Prediction{WorkflowID: w.ID}

	// EndTime is only ever set by finishing, and archiving keeps it.
	if w.EndTime != nil {
		p.PredictedCompletion = *w.EndTime
		p.Confidence = 1
		p.Factors = []string{"Workflow already finished"}
		return p, nil
	}

	var (
		total   time.Duration
		samples int
		elapsed time.Duration
	)
	for _, ph := range w.Phases {
		switch {
		case ph.Status == domain.PhaseCompleted && ph.StartTime != nil && ph.EndTime != nil:
			total += ph.Duration(now)
			samples++
		case ph.Status == domain.PhaseActive:
			p.RemainingPhases++
			elapsed += ph.Duration(now)
		case !ph.Status.Terminal():
			p.RemainingPhases++
		}
	}
	if samples == 0 {
		return domain.Prediction{}, fmt.Errorf("%w: workflow %q has no completed phase", domain.ErrInsufficientHistory, w.ID)
	}

	p.AvgPhaseDuration = total / time.Duration(samples)
	remaining := max(p.AvgPhaseDuration*time.Duration(p.RemainingPhases)-elapsed, 0)
	p.PredictedCompletion = now.Add(remaining)

	longRunning := len(d.PhaseAlerts(w, now))
	confidence := min(baseConfidence+sampleConfidence*float64(samples), maxConfidence)
	confidence -= bottleneckPenalty * float64(longRunning)
	p.Confidence = max(confidence, minConfidence)

	p.Factors = []string{
		fmt.Sprintf("Historical phase duration data (%d samples)", samples),
		fmt.Sprintf("Current workflow progress (%d phases remaining)", p.RemainingPhases),
	}
	if longRunning > 0 {
		p.Factors = append(p.Factors, fmt.Sprintf("Active bottlenecks (%d)", longRunning))
	}
	return p, nil
}
