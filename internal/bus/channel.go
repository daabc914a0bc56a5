package bus

import (
	"context"
	"sync"
	"time"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// Channel is the in-process bus backend: a buffered Go channel per
// (topic, group). It is the BUS_TYPE=channel default — no external broker,
// ordering preserved trivially since there is exactly one process.
type Channel struct {
	mu   sync.Mutex
	subs map[string][]chan *pb.EventBook
}

// NewChannel constructs an empty in-process Bus Adapter.
func NewChannel() *Channel {
	return &Channel{subs: make(map[string][]chan *pb.EventBook)}
}

func groupKey(topic, group string) string { return topic + "\x00" + group }

func (c *Channel) Publish(ctx context.Context, topic string, book *pb.EventBook) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, chans := range c.subs {
		if !hasTopicPrefix(key, topic) {
			continue
		}
		for _, ch := range chans {
			select {
			case ch <- book:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

func hasTopicPrefix(key, topic string) bool {
	prefix := topic + "\x00"
	return len(key) >= len(prefix) && key[:len(prefix)] == prefix
}

func (c *Channel) Subscribe(ctx context.Context, topic, group string, handler Handler) error {
	ch := make(chan *pb.EventBook, 64)
	c.mu.Lock()
	key := groupKey(topic, group)
	c.subs[key] = append(c.subs[key], ch)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		chans := c.subs[key]
		for i, sub := range chans {
			if sub == ch {
				c.subs[key] = append(chans[:i], chans[i+1:]...)
				break
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case book := <-ch:
			if err := deliverWithRetry(ctx, book, handler); err != nil {
				return err
			}
		}
	}
}

// deliverWithRetry re-invokes handler with backoff until it succeeds or ctx
// is cancelled, giving the in-process backend the same at-least-once
// redelivery-on-failure contract every other backend offers.
func deliverWithRetry(ctx context.Context, book *pb.EventBook, handler Handler) error {
	backoff := 10 * time.Millisecond
	const maxBackoff = 2 * time.Second
	for {
		if err := handler(ctx, book); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff *= 2; backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, chans := range c.subs {
		for _, ch := range chans {
			close(ch)
		}
	}
	c.subs = make(map[string][]chan *pb.EventBook)
	return nil
}

var _ Adapter = (*Channel)(nil)
