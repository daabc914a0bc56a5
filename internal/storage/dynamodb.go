package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

const (
	dynamoEventsTable   = "angzarr_events"
	dynamoSnapshotTable = "angzarr_snapshots"
	dynamoEditionsTable = "angzarr_editions"
)

type dynamoEventItem struct {
	StreamKey string `dynamodbav:"stream_key"`
	Sequence  uint32 `dynamodbav:"sequence"`
	TypeURL   string `dynamodbav:"type_url"`
	Payload   []byte `dynamodbav:"payload"`
}

type dynamoSnapshotItem struct {
	StreamKey string `dynamodbav:"stream_key"`
	Sequence  uint32 `dynamodbav:"sequence"`
	Payload   []byte `dynamodbav:"payload"`
}

type dynamoEditionItem struct {
	EditionKey         string `dynamodbav:"edition_key"`
	DivergenceSequence uint32 `dynamodbav:"divergence_sequence"`
}

// DynamoDB is the DynamoDB-backed Storage Adapter. Each stream is keyed by
// a partition key "<domain>#<root>" with sequence as the sort key, giving
// a natural Query for range reads; the CAS check is a conditional put
// against the next sequence number's non-existence.
type DynamoDB struct {
	client *dynamodb.Client
}

// NewDynamoDB constructs a Storage Adapter using the default AWS config chain.
func NewDynamoDB(ctx context.Context) (*DynamoDB, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &DynamoDB{client: dynamodb.NewFromConfig(cfg)}, nil
}

func streamKey(domain string, root []byte) string {
	return domain + "#" + string(root)
}

func (d *DynamoDB) streamLength(ctx context.Context, sk string) (uint32, error) {
	out, err := d.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(dynamoEventsTable),
		KeyConditionExpression: aws.String("stream_key = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sk": &types.AttributeValueMemberS{Value: sk},
		},
		Select: types.SelectCount,
	})
	if err != nil {
		return 0, fmt.Errorf("query count: %w", err)
	}
	return uint32(out.Count), nil
}

func (d *DynamoDB) Append(ctx context.Context, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	root := cover.GetRoot().GetValue()
	sk := streamKey(cover.GetDomain(), root)
	cur, err := d.streamLength(ctx, sk)
	if err != nil {
		return nil, err
	}
	if !force && cur != expectedSeq {
		return nil, &ErrConcurrencyConflict{Actual: cur}
	}

	next := cur
	for _, page := range pages {
		page.Sequence = next
		item, err := attributevalue.MarshalMap(dynamoEventItem{
			StreamKey: sk, Sequence: next,
			TypeURL: page.GetEvent().GetTypeUrl(), Payload: page.GetEvent().GetValue(),
		})
		if err != nil {
			return nil, fmt.Errorf("marshal event item: %w", err)
		}
		_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(dynamoEventsTable),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(sequence)"),
		})
		if err != nil {
			return nil, fmt.Errorf("put event item: %w", err)
		}
		next++
	}
	return d.Load(ctx, cover, 0, nil, true)
}

func (d *DynamoDB) Load(ctx context.Context, cover *pb.Cover, fromSeq uint32, toSeq *uint32, useSnapshot bool) (*pb.EventBook, error) {
	root := cover.GetRoot().GetValue()
	sk := streamKey(cover.GetDomain(), root)
	start := fromSeq
	var snap *pb.Snapshot
	if useSnapshot {
		out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(dynamoSnapshotTable),
			Key: map[string]types.AttributeValue{
				"stream_key": &types.AttributeValueMemberS{Value: sk},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("get snapshot: %w", err)
		}
		if out.Item != nil {
			var item dynamoSnapshotItem
			if err := attributevalue.UnmarshalMap(out.Item, &item); err == nil {
				var s pb.Snapshot
				if err := proto.Unmarshal(item.Payload, protoadapt.MessageV2(&s)); err == nil && s.Sequence+1 > start {
					snap = &s
					start = s.Sequence + 1
				}
			}
		}
	}

	expr := "stream_key = :sk AND sequence >= :start"
	values := map[string]types.AttributeValue{
		":sk":    &types.AttributeValueMemberS{Value: sk},
		":start": &types.AttributeValueMemberN{Value: fmt.Sprint(start)},
	}
	if toSeq != nil {
		expr = "stream_key = :sk AND sequence BETWEEN :start AND :end"
		values[":end"] = &types.AttributeValueMemberN{Value: fmt.Sprint(*toSeq - 1)}
	}
	out, err := d.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(dynamoEventsTable),
		KeyConditionExpression:    aws.String(expr),
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	pages := make([]*pb.EventPage, 0, len(out.Items))
	for _, raw := range out.Items {
		var item dynamoEventItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, fmt.Errorf("unmarshal event item: %w", err)
		}
		pages = append(pages, &pb.EventPage{Sequence: item.Sequence, Event: anyOf(item.TypeURL, item.Payload)})
	}
	next, err := d.streamLength(ctx, sk)
	if err != nil {
		return nil, err
	}
	return &pb.EventBook{Cover: cover, Snapshot: snap, Pages: pages, NextSequence: next}, nil
}

func (d *DynamoDB) WriteSnapshot(ctx context.Context, cover *pb.Cover, snapshot *pb.Snapshot) error {
	body, err := proto.Marshal(protoadapt.MessageV2(snapshot))
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	item, err := attributevalue.MarshalMap(dynamoSnapshotItem{
		StreamKey: streamKey(cover.GetDomain(), cover.GetRoot().GetValue()),
		Sequence:  snapshot.GetSequence(), Payload: body,
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot item: %w", err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(dynamoSnapshotTable), Item: item})
	if err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}
	return nil
}

func (d *DynamoDB) ListRoots(ctx context.Context, domain string) (<-chan *pb.AggregateRoot, error) {
	out, err := d.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(dynamoEventsTable),
		FilterExpression: aws.String("begins_with(stream_key, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":prefix": &types.AttributeValueMemberS{Value: domain + "#"},
		},
		ProjectionExpression: aws.String("stream_key"),
	})
	if err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}
	seen := make(map[string]bool)
	outCh := make(chan *pb.AggregateRoot)
	go func() {
		defer close(outCh)
		for _, raw := range out.Items {
			var item struct {
				StreamKey string `dynamodbav:"stream_key"`
			}
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil || seen[item.StreamKey] {
				continue
			}
			seen[item.StreamKey] = true
			root := item.StreamKey[len(domain)+1:]
			select {
			case <-ctx.Done():
				return
			case outCh <- &pb.AggregateRoot{Domain: domain, Root: &pb.UUID{Value: []byte(root)}}:
			}
		}
	}()
	return outCh, nil
}

func editionKeyName(domain, name string) string { return domain + "#" + name }

func (d *DynamoDB) CreateEdition(ctx context.Context, desc *pb.EditionDescriptor) error {
	item, err := attributevalue.MarshalMap(dynamoEditionItem{
		EditionKey: editionKeyName(desc.GetDomain(), desc.GetName()), DivergenceSequence: desc.GetDivergenceSequence(),
	})
	if err != nil {
		return fmt.Errorf("marshal edition item: %w", err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(dynamoEditionsTable),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(edition_key)"),
	})
	if err != nil {
		return ErrEditionExists
	}
	return nil
}

func (d *DynamoDB) DeleteEdition(ctx context.Context, domain, name string) error {
	key := editionKeyName(domain, name)
	out, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(dynamoEditionsTable),
		Key: map[string]types.AttributeValue{
			"edition_key": &types.AttributeValueMemberS{Value: key},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("delete edition: %w", err)
	}
	if len(out.Attributes) == 0 {
		return ErrEditionNotFound
	}

	prefix := "edition#" + name + "#" + domain
	scan, err := d.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(dynamoEventsTable),
		FilterExpression: aws.String("begins_with(stream_key, :p)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":p": &types.AttributeValueMemberS{Value: prefix},
		},
	})
	if err != nil {
		return fmt.Errorf("scan edition events: %w", err)
	}
	for _, raw := range scan.Items {
		var item dynamoEventItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			continue
		}
		d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(dynamoEventsTable),
			Key: map[string]types.AttributeValue{
				"stream_key": &types.AttributeValueMemberS{Value: item.StreamKey},
				"sequence":   &types.AttributeValueMemberN{Value: fmt.Sprint(item.Sequence)},
			},
		})
	}
	return nil
}

func (d *DynamoDB) editionDescriptor(ctx context.Context, domain, name string) (uint32, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(dynamoEditionsTable),
		Key: map[string]types.AttributeValue{
			"edition_key": &types.AttributeValueMemberS{Value: editionKeyName(domain, name)},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("get edition: %w", err)
	}
	if out.Item == nil {
		return 0, ErrEditionNotFound
	}
	var item dynamoEditionItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return 0, fmt.Errorf("unmarshal edition item: %w", err)
	}
	return item.DivergenceSequence, nil
}

func editionStreamKey(edition, domain string, root []byte) string {
	return "edition#" + edition + "#" + domain + "#" + string(root)
}

func (d *DynamoDB) EditionLoad(ctx context.Context, edition string, cover *pb.Cover, fromSeq uint32, toSeq *uint32) (*pb.EventBook, error) {
	div, err := d.editionDescriptor(ctx, cover.GetDomain(), edition)
	if err != nil {
		return nil, err
	}
	main, err := d.Load(ctx, cover, fromSeq, &div, true)
	if err != nil {
		return nil, err
	}

	sk := editionStreamKey(edition, cover.GetDomain(), cover.GetRoot().GetValue())
	start := fromSeq
	if div > start {
		start = div
	}
	privStart := start - div
	expr := "stream_key = :sk AND sequence >= :start"
	values := map[string]types.AttributeValue{
		":sk":    &types.AttributeValueMemberS{Value: sk},
		":start": &types.AttributeValueMemberN{Value: fmt.Sprint(privStart)},
	}
	if toSeq != nil {
		expr = "stream_key = :sk AND sequence BETWEEN :start AND :end"
		values[":end"] = &types.AttributeValueMemberN{Value: fmt.Sprint(*toSeq - div - 1)}
	}
	out, err := d.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(dynamoEventsTable),
		KeyConditionExpression:    aws.String(expr),
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return nil, fmt.Errorf("query edition events: %w", err)
	}
	pages := append([]*pb.EventPage{}, main.Pages...)
	lastSeq := div
	for _, raw := range out.Items {
		var item dynamoEventItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			continue
		}
		pages = append(pages, &pb.EventPage{Sequence: div + item.Sequence, Event: anyOf(item.TypeURL, item.Payload)})
		lastSeq = div + item.Sequence + 1
	}
	return &pb.EventBook{Cover: cover, Snapshot: main.Snapshot, Pages: pages, NextSequence: lastSeq}, nil
}

func (d *DynamoDB) EditionAppend(ctx context.Context, edition string, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	if _, err := d.editionDescriptor(ctx, cover.GetDomain(), edition); err != nil {
		return nil, err
	}
	sk := editionStreamKey(edition, cover.GetDomain(), cover.GetRoot().GetValue())
	cur, err := d.streamLength(ctx, sk)
	if err != nil {
		return nil, err
	}
	if !force && cur != expectedSeq {
		return nil, &ErrConcurrencyConflict{Actual: cur}
	}
	next := cur
	for _, page := range pages {
		page.Sequence = next
		item, err := attributevalue.MarshalMap(dynamoEventItem{
			StreamKey: sk, Sequence: next,
			TypeURL: page.GetEvent().GetTypeUrl(), Payload: page.GetEvent().GetValue(),
		})
		if err != nil {
			return nil, fmt.Errorf("marshal edition event item: %w", err)
		}
		_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(dynamoEventsTable),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(sequence)"),
		})
		if err != nil {
			return nil, fmt.Errorf("put edition event item: %w", err)
		}
		next++
	}
	return &pb.EventBook{Cover: cover, Pages: pages, NextSequence: next}, nil
}

func (d *DynamoDB) Close() error {
	return nil
}

var _ Adapter = (*DynamoDB)(nil)
