package domain

import (
	"context"
	"time"
)

// EntityKind names what a TransitionEvent is about.
type EntityKind string

const (
	KindWorkflow EntityKind = "workflow"
	KindPhase    EntityKind = "phase"
	KindAgent    EntityKind = "agent"
)

// TransitionEvent describes an applied status change.
type TransitionEvent struct {
	Timestamp time.Time  `json:"timestamp"`
	Kind      EntityKind `json:"kind"`
	EntityID  string     `json:"entity_id"`
	Phase     string     `json:"phase,omitempty"` // Only for KindPhase
	From      string     `json:"from"`
	To        string     `json:"to"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously after the mutation and must not call back into the engine.
type LifecycleHooks struct {
	OnWorkflowTransition func(context.Context, *TransitionEvent)
	OnPhaseTransition    func(context.Context, *TransitionEvent)
	OnAgentTransition    func(context.Context, *TransitionEvent)
	OnAlert              func(context.Context, *Alert)
}

// ComposeHooks returns hooks that invoke each of hs in order. Nil callbacks are skipped.
func ComposeHooks(hs ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	out.OnWorkflowTransition = composeTransition(hs, func(h LifecycleHooks) func(context.Context, *TransitionEvent) { return h.OnWorkflowTransition })
	out.OnPhaseTransition = composeTransition(hs, func(h LifecycleHooks) func(context.Context, *TransitionEvent) { return h.OnPhaseTransition })
	out.OnAgentTransition = composeTransition(hs, func(h LifecycleHooks) func(context.Context, *TransitionEvent) { return h.OnAgentTransition })

	var alerts []func(context.Context, *Alert)
	for _, h := range hs {
		if h.OnAlert != nil {
			alerts = append(alerts, h.OnAlert)
		}
	}
	if len(alerts) > 0 {
		out.OnAlert = func(ctx context.Context, a *Alert) {
			for _, fn := range alerts {
				fn(ctx, a)
			}
		}
	}
	return out
}

func composeTransition(hs []LifecycleHooks, pick func(LifecycleHooks) func(context.Context, *TransitionEvent)) func(context.Context, *TransitionEvent) {
	var fns []func(context.Context, *TransitionEvent)
	for _, h := range hs {
		if fn := pick(h); fn != nil {
			fns = append(fns, fn)
		}
	}
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, e *TransitionEvent) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}
