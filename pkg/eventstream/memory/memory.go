package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/Bezneima/Kucher-retro-back/pkg/eventstream"
)

// Buffer sized for bursts: one batch sync can fan out a full board
// snapshot per changed column.
const defaultSubscriberBuffer = 256

var errStreamerClosed = errors.New("streamer is closed")

type subscriber[Topic any, Payload any] struct {
	ctx    context.Context
	filter eventstream.TopicFilter[Topic]
	ch     chan eventstream.Event[Topic, Payload]
	closed atomic.Bool
}

type inMemorySyncStreamer[Topic any, Payload any] struct {
	mu          sync.RWMutex
	subscribers map[*subscriber[Topic, Payload]]struct{}
	closed      atomic.Bool
}

func NewInMemorySyncStreamer[Topic any, Payload any]() eventstream.SyncStreamer[Topic, Payload] {
	return &inMemorySyncStreamer[Topic, Payload]{
		subscribers: make(map[*subscriber[Topic, Payload]]struct{}),
	}
}

func (s *inMemorySyncStreamer[Topic, Payload]) Publish(topic Topic, payloads ...Payload) {
	if s.closed.Load() || len(payloads) == 0 {
		return
	}

	s.mu.RLock()
	subs := make([]*subscriber[Topic, Payload], 0, len(s.subscribers))
	for sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.RUnlock()

	for _, sub := range subs {
		if sub.closed.Load() {
			continue
		}
		if sub.filter != nil && !sub.filter(topic) {
			continue
		}
		for _, payload := range payloads {
			event := eventstream.Event[Topic, Payload]{Topic: topic, Payload: payload}
			s.trySend(sub, event)
		}
	}
}

// trySend delivers without blocking the mutation path. The subscriber's
// channel can be closed by remove between the closed.Load check above and
// the send, so recover from the send-on-closed panic and mark the
// subscriber dead.
func (s *inMemorySyncStreamer[Topic, Payload]) trySend(sub *subscriber[Topic, Payload], evt eventstream.Event[Topic, Payload]) {
	defer func() {
		if r := recover(); r != nil {
			sub.closed.Store(true)
		}
	}()

	select {
	case sub.ch <- evt:
	default:
		// Slow consumer; drop rather than block.
	}
}

func (s *inMemorySyncStreamer[Topic, Payload]) Subscribe(ctx context.Context, filter eventstream.TopicFilter[Topic]) (<-chan eventstream.Event[Topic, Payload], error) {
	if s.closed.Load() {
		return nil, errStreamerClosed
	}
	if filter == nil {
		filter = func(Topic) bool { return true }
	}

	sub := &subscriber[Topic, Payload]{
		ctx:    ctx,
		filter: filter,
		ch:     make(chan eventstream.Event[Topic, Payload], defaultSubscriberBuffer),
	}

	s.mu.Lock()
	if s.closed.Load() {
		// Lost the race with Shutdown; registering now would leave an
		// unclosed channel behind.
		s.mu.Unlock()
		return nil, errStreamerClosed
	}
	s.subscribers[sub] = struct{}{}
	s.mu.Unlock()

	go s.monitorContext(sub)

	return sub.ch, nil
}

func (s *inMemorySyncStreamer[Topic, Payload]) monitorContext(sub *subscriber[Topic, Payload]) {
	<-sub.ctx.Done()
	s.remove(sub)
}

func (s *inMemorySyncStreamer[Topic, Payload]) Shutdown() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subscribers {
		if sub.closed.CompareAndSwap(false, true) {
			close(sub.ch)
		}
	}
	s.subscribers = nil
}

func (s *inMemorySyncStreamer[Topic, Payload]) remove(sub *subscriber[Topic, Payload]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribers == nil {
		return
	}
	if _, ok := s.subscribers[sub]; !ok {
		return
	}
	delete(s.subscribers, sub)
	if sub.closed.CompareAndSwap(false, true) {
		close(sub.ch)
	}
}
