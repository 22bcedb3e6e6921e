package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/vigil/internal/logging"
	"github.com/aretw0/vigil/pkg/domain"
)

// AllTopics receives every event regardless of entity.
const AllTopics = "*"

// StreamManager fans transition events out to SSE subscribers.
// Topics are entity IDs (workflow or agent) plus AllTopics.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel for topic. The returned func
// unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(topic string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[topic]; !ok {
		sm.subscribers[topic] = make(map[chan<- string]struct{})
	}
	sm.subscribers[topic][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[topic]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, topic)
			}
		}
	}
}

// Broadcast delivers msg to the topic's subscribers and to AllTopics.
// Slow subscribers lose messages rather than block the engine.
func (sm *StreamManager) Broadcast(topic string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	topics := []string{AllTopics}
	if topic != "" && topic != AllTopics {
		topics = append(topics, topic)
	}
	for _, t := range topics {
		for ch := range sm.subscribers[t] {
			select {
			case ch <- msg:
			default:
				sm.logger.Warn("SSE: Client buffer full, dropping message", "topic", t)
			}
		}
	}
}

// Hooks returns lifecycle hooks that broadcast events as JSON.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	onTransition := func(ctx context.Context, e *domain.TransitionEvent) {
		b, err := json.Marshal(e)
		if err != nil {
			return
		}
		sm.Broadcast(e.EntityID, string(b))
	}
	return domain.LifecycleHooks{
		OnWorkflowTransition: onTransition,
		OnPhaseTransition:    onTransition,
		OnAgentTransition:    onTransition,
		OnAlert: func(ctx context.Context, a *domain.Alert) {
			b, err := json.Marshal(a)
			if err != nil {
				return
			}
			sm.Broadcast(a.WorkflowID, string(b))
		},
	}
}

// SubscribeEvents handles the GET /events request (SSE).
// ?id= narrows the stream to one workflow or agent.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	topic := r.URL.Query().Get("id")
	if topic == "" {
		topic = AllTopics
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE Client Disconnected", "topic", topic)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
