package bus

import (
	"context"
	"fmt"

	kafka "github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// Kafka is the segmentio/kafka-go-backed Bus Adapter. Topic maps directly
// to a Kafka topic; group maps to a consumer group, so Kafka's own
// partition-assignment protocol gives competing consumers within a group.
// Publish keys every message by cover.root so partitioning preserves
// per-aggregate order.
type Kafka struct {
	brokers []string
	writer  *kafka.Writer
	readers []*kafka.Reader
}

// NewKafka constructs a Bus Adapter over the given broker addresses.
func NewKafka(brokers []string) *Kafka {
	return &Kafka{
		brokers: brokers,
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.Hash{},
		},
	}
}

func (k *Kafka) Publish(ctx context.Context, topic string, book *pb.EventBook) error {
	body, err := proto.Marshal(protoadapt.MessageV2(book))
	if err != nil {
		return fmt.Errorf("marshal event book: %w", err)
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(partitionKey(book)),
		Value: body,
	})
}

func (k *Kafka) Subscribe(ctx context.Context, topic, group string, handler Handler) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: k.brokers,
		Topic:   topic,
		GroupID: group,
	})
	k.readers = append(k.readers, reader)
	defer reader.Close()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("fetch message: %w", err)
		}
		var book pb.EventBook
		if err := proto.Unmarshal(msg.Value, protoadapt.MessageV2(&book)); err != nil {
			// malformed payload: commit past it rather than wedging the
			// partition, since redelivery can never make it parse.
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		// retried in place with backoff; the offset is committed only once
		// the handler has succeeded.
		if err := deliverWithRetry(ctx, &book, handler); err != nil {
			return err
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit message: %w", err)
		}
	}
}

func (k *Kafka) Close() error {
	var firstErr error
	if err := k.writer.Close(); err != nil {
		firstErr = err
	}
	for _, r := range k.readers {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ Adapter = (*Kafka)(nil)
