// Package eventstream defines the generic fan-out used to push board
// mutations to team members. The core publishes fire-and-forget; the
// stream edge owns delivery.
package eventstream

import "context"

// Event pairs a routing topic with its payload.
type Event[Topic any, Payload any] struct {
	Topic   Topic
	Payload Payload
}

// TopicFilter selects which topics a subscriber receives.
type TopicFilter[Topic any] func(Topic) bool

type SyncStreamer[Topic any, Payload any] interface {
	// Subscribe returns a read-only channel of matching events. The
	// channel closes when the context is cancelled or the streamer
	// shuts down.
	Subscribe(ctx context.Context, filter TopicFilter[Topic]) (<-chan Event[Topic, Payload], error)

	// Publish sends payloads to all matching subscribers. Non-blocking:
	// events are dropped for subscribers with a full buffer.
	Publish(topic Topic, payloads ...Payload)

	// Shutdown closes every subscriber channel.
	Shutdown()
}
