package analysis

import (
	"time"

	"github.com/aretw0/vigil/pkg/domain"
)

// Ratchet returns the next utilization score of an agent.
//
// Utilization only moves up, one point at a time, while the agent has been
// busy for longer than threshold since it last became busy. It never decays;
// an explicit domain.AgentUpdate.Utilization is the only way down.
func Ratchet(a domain.Agent, now time.Time, threshold time.Duration) int {
	u := domain.ClampUtilization(a.Utilization)
	if a.Status == domain.AgentBusy && now.Sub(a.LastActive) > threshold {
		u = min(u+1, domain.MaxUtilization)
	}
	return u
}
