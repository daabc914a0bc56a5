package bus

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// AMQP is the RabbitMQ-backed Bus Adapter. Each topic maps to a topic
// exchange; each (topic, group) maps to a durable queue bound to it with the
// "#" routing key, so every group's queue receives every message: RabbitMQ's
// standard competing-consumers semantics within a group and fan-out across
// groups.
type AMQP struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQP dials url and opens the channel this adapter multiplexes
// publishing and consuming over.
func NewAMQP(url string) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	return &AMQP{conn: conn, ch: ch}, nil
}

func (a *AMQP) declareExchange(topic string) error {
	return a.ch.ExchangeDeclare(topic, "topic", true, false, false, false, nil)
}

func (a *AMQP) Publish(ctx context.Context, topic string, book *pb.EventBook) error {
	if err := a.declareExchange(topic); err != nil {
		return err
	}
	body, err := proto.Marshal(protoadapt.MessageV2(book))
	if err != nil {
		return fmt.Errorf("marshal event book: %w", err)
	}
	return a.ch.PublishWithContext(ctx, topic, partitionKey(book), false, false, amqp.Publishing{
		ContentType:  "application/x-protobuf",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
}

func (a *AMQP) Subscribe(ctx context.Context, topic, group string, handler Handler) error {
	if err := a.declareExchange(topic); err != nil {
		return err
	}
	q, err := a.ch.QueueDeclare(topic+"."+group, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err := a.ch.QueueBind(q.Name, "#", topic, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}
	msgs, err := a.ch.ConsumeWithContext(ctx, q.Name, group, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			var book pb.EventBook
			if err := proto.Unmarshal(d.Body, protoadapt.MessageV2(&book)); err != nil {
				d.Nack(false, false)
				continue
			}
			if err := handler(ctx, &book); err != nil {
				d.Nack(false, true) // requeue, backoff is RabbitMQ's redelivery
				continue
			}
			d.Ack(false)
		}
	}
}

func (a *AMQP) Close() error {
	if a.ch != nil {
		a.ch.Close()
	}
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

var _ Adapter = (*AMQP)(nil)
