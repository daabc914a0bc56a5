package bus

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// GCPPubSub is the Cloud Pub/Sub-backed Bus Adapter. Topic maps to a
// Pub/Sub topic; each (topic, group) gets its own subscription, so
// distinct groups each receive every message while consumers within a
// group compete over the same subscription's pulled messages.
type GCPPubSub struct {
	client *pubsub.Client
}

// NewGCPPubSub constructs a Bus Adapter against the given GCP project.
func NewGCPPubSub(ctx context.Context, projectID string) (*GCPPubSub, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("pubsub client: %w", err)
	}
	return &GCPPubSub{client: client}, nil
}

func (g *GCPPubSub) topicHandle(ctx context.Context, topic string) (*pubsub.Topic, error) {
	t := g.client.Topic(topic)
	ok, err := t.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check topic: %w", err)
	}
	if !ok {
		if t, err = g.client.CreateTopic(ctx, topic); err != nil {
			return nil, fmt.Errorf("create topic: %w", err)
		}
	}
	return t, nil
}

func (g *GCPPubSub) Publish(ctx context.Context, topic string, book *pb.EventBook) error {
	t, err := g.topicHandle(ctx, topic)
	if err != nil {
		return err
	}
	defer t.Stop()
	body, err := proto.Marshal(protoadapt.MessageV2(book))
	if err != nil {
		return fmt.Errorf("marshal event book: %w", err)
	}
	result := t.Publish(ctx, &pubsub.Message{
		Data:        body,
		OrderingKey: partitionKey(book),
	})
	_, err = result.Get(ctx)
	return err
}

func (g *GCPPubSub) Subscribe(ctx context.Context, topic, group string, handler Handler) error {
	t, err := g.topicHandle(ctx, topic)
	if err != nil {
		return err
	}
	subID := topic + "-" + group
	sub := g.client.Subscription(subID)
	ok, err := sub.Exists(ctx)
	if err != nil {
		return fmt.Errorf("check subscription: %w", err)
	}
	if !ok {
		if sub, err = g.client.CreateSubscription(ctx, subID, pubsub.SubscriptionConfig{
			Topic:                 t,
			EnableMessageOrdering: true,
		}); err != nil {
			return fmt.Errorf("create subscription: %w", err)
		}
	}
	return sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		var book pb.EventBook
		if err := proto.Unmarshal(msg.Data, protoadapt.MessageV2(&book)); err != nil {
			msg.Nack()
			return
		}
		if err := handler(ctx, &book); err != nil {
			msg.Nack() // Pub/Sub backs off redelivery per its subscription policy
			return
		}
		msg.Ack()
	})
}

func (g *GCPPubSub) Close() error {
	return g.client.Close()
}

var _ Adapter = (*GCPPubSub)(nil)
