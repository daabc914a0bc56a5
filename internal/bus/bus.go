// Package bus defines the Bus Adapter: topic-oriented pub/sub of
// EventBooks with durable subscription groups and at-least-once delivery.
// Partition key is always cover.root, so per-aggregate ordering survives
// fan-out to any backend.
package bus

import (
	"context"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// Handler processes one delivered EventBook. Returning an error causes the
// adapter to redeliver with backoff; returning nil acknowledges.
type Handler func(ctx context.Context, book *pb.EventBook) error

// Adapter is the capability set every Bus Adapter backend implements.
type Adapter interface {
	// Publish delivers book to every durable subscription group on topic,
	// at-least-once. Topic is conventionally the event's domain.
	Publish(ctx context.Context, topic string, book *pb.EventBook) error

	// Subscribe registers handler under (topic, group). Each event is
	// delivered to each group at least once; intra-group concurrency is
	// adapter-defined. Subscribe blocks until ctx is cancelled or an
	// unrecoverable adapter error occurs.
	Subscribe(ctx context.Context, topic, group string, handler Handler) error

	// Close releases adapter resources (connections, goroutines).
	Close() error
}

// partitionKey returns the per-aggregate partition key used by backends
// that support explicit partitioning (Kafka, SQS FIFO, pub/sub ordering
// keys): cover.root, so a single aggregate's events are always delivered
// to the same partition and therefore observed in order.
func partitionKey(book *pb.EventBook) string {
	return string(book.GetCover().GetRoot().GetValue())
}
