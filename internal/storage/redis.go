package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// Redis is the go-redis-backed Storage Adapter. Each stream is a Redis
// LIST at key "events:<domain>:<root>", one RESP string per page holding
// the marshaled EventPage, whose stored sequence equals its list position.
// Append's CAS is enforced with WATCH/MULTI so
// concurrent appenders never interleave.
type Redis struct {
	client *redis.Client
}

// NewRedis constructs a Storage Adapter against the given redis:// address.
func NewRedis(addr string) (*Redis, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Redis{client: redis.NewClient(opts)}, nil
}

func eventsKey(cover *pb.Cover) string {
	return "events:" + cover.GetDomain() + ":" + string(cover.GetRoot().GetValue())
}

func snapshotKey(cover *pb.Cover) string {
	return "snapshot:" + cover.GetDomain() + ":" + string(cover.GetRoot().GetValue())
}

func rootsKey(domain string) string {
	return "roots:" + domain
}

func editionKey(domain, name string) string {
	return "edition:" + domain + ":" + name
}

func editionEventsKey(edition string, cover *pb.Cover) string {
	return "edition-events:" + edition + ":" + cover.GetDomain() + ":" + string(cover.GetRoot().GetValue())
}

func (r *Redis) Append(ctx context.Context, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	key := eventsKey(cover)
	txf := func(tx *redis.Tx) error {
		cur, err := tx.LLen(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("llen: %w", err)
		}
		if !force && uint32(cur) != expectedSeq {
			return &ErrConcurrencyConflict{Actual: uint32(cur)}
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			next := uint32(cur)
			for _, page := range pages {
				page.Sequence = next
				body, err := proto.Marshal(protoadapt.MessageV2(page))
				if err != nil {
					return fmt.Errorf("marshal page: %w", err)
				}
				pipe.RPush(ctx, key, body)
				next++
			}
			pipe.SAdd(ctx, rootsKey(cover.GetDomain()), string(cover.GetRoot().GetValue()))
			return nil
		})
		return err
	}
	if err := r.client.Watch(ctx, txf, key); err != nil {
		var conflict *ErrConcurrencyConflict
		if errors.As(err, &conflict) {
			return nil, conflict
		}
		return nil, fmt.Errorf("append tx: %w", err)
	}
	return r.Load(ctx, cover, 0, nil, true)
}

func (r *Redis) Load(ctx context.Context, cover *pb.Cover, fromSeq uint32, toSeq *uint32, useSnapshot bool) (*pb.EventBook, error) {
	key := eventsKey(cover)
	total, err := r.client.LLen(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("llen: %w", err)
	}

	start := fromSeq
	var snap *pb.Snapshot
	if useSnapshot {
		raw, err := r.client.Get(ctx, snapshotKey(cover)).Result()
		switch {
		case err == nil:
			var s pb.Snapshot
			if err := proto.Unmarshal([]byte(raw), protoadapt.MessageV2(&s)); err == nil && s.Sequence+1 > start {
				snap = &s
				start = s.Sequence + 1
			}
		case !errors.Is(err, redis.Nil):
			return nil, fmt.Errorf("get snapshot: %w", err)
		}
	}

	upper := uint32(total)
	if toSeq != nil && *toSeq < upper {
		upper = *toSeq
	}
	if start >= upper {
		return &pb.EventBook{Cover: cover, Snapshot: snap, NextSequence: uint32(total)}, nil
	}
	raw, err := r.client.LRange(ctx, key, int64(start), int64(upper)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange: %w", err)
	}
	pages := make([]*pb.EventPage, 0, len(raw))
	for _, body := range raw {
		var page pb.EventPage
		if err := proto.Unmarshal([]byte(body), protoadapt.MessageV2(&page)); err != nil {
			return nil, fmt.Errorf("unmarshal page: %w", err)
		}
		pages = append(pages, &page)
	}
	return &pb.EventBook{Cover: cover, Snapshot: snap, Pages: pages, NextSequence: uint32(total)}, nil
}

func (r *Redis) WriteSnapshot(ctx context.Context, cover *pb.Cover, snapshot *pb.Snapshot) error {
	body, err := proto.Marshal(protoadapt.MessageV2(snapshot))
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return r.client.Set(ctx, snapshotKey(cover), body, 0).Err()
}

func (r *Redis) ListRoots(ctx context.Context, domain string) (<-chan *pb.AggregateRoot, error) {
	members, err := r.client.SMembers(ctx, rootsKey(domain)).Result()
	if err != nil {
		return nil, fmt.Errorf("smembers: %w", err)
	}
	out := make(chan *pb.AggregateRoot)
	go func() {
		defer close(out)
		for _, m := range members {
			select {
			case <-ctx.Done():
				return
			case out <- &pb.AggregateRoot{Domain: domain, Root: &pb.UUID{Value: []byte(m)}}:
			}
		}
	}()
	return out, nil
}

func (r *Redis) CreateEdition(ctx context.Context, desc *pb.EditionDescriptor) error {
	key := editionKey(desc.GetDomain(), desc.GetName())
	ok, err := r.client.SetNX(ctx, key, strconv.FormatUint(uint64(desc.GetDivergenceSequence()), 10), 0).Result()
	if err != nil {
		return fmt.Errorf("setnx edition: %w", err)
	}
	if !ok {
		return ErrEditionExists
	}
	return nil
}

func (r *Redis) DeleteEdition(ctx context.Context, domain, name string) error {
	key := editionKey(domain, name)
	n, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("del edition: %w", err)
	}
	if n == 0 {
		return ErrEditionNotFound
	}
	iter := r.client.Scan(ctx, 0, "edition-events:"+name+":"+domain+":*", 0).Iterator()
	for iter.Next(ctx) {
		r.client.Del(ctx, iter.Val())
	}
	return iter.Err()
}

func (r *Redis) editionDescriptor(ctx context.Context, domain, name string) (uint32, error) {
	raw, err := r.client.Get(ctx, editionKey(domain, name)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrEditionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get edition: %w", err)
	}
	div, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse divergence sequence: %w", err)
	}
	return uint32(div), nil
}

func (r *Redis) EditionLoad(ctx context.Context, edition string, cover *pb.Cover, fromSeq uint32, toSeq *uint32) (*pb.EventBook, error) {
	div, err := r.editionDescriptor(ctx, cover.GetDomain(), edition)
	if err != nil {
		return nil, err
	}
	main, err := r.Load(ctx, cover, fromSeq, &div, true)
	if err != nil {
		return nil, err
	}

	key := editionEventsKey(edition, cover)
	total, err := r.client.LLen(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("edition llen: %w", err)
	}
	start := fromSeq
	if div > start {
		start = div
	}
	privStart := start - div
	upper := uint32(total)
	if toSeq != nil && *toSeq-div < upper {
		upper = *toSeq - div
	}
	pages := append([]*pb.EventPage{}, main.Pages...)
	if privStart < upper {
		raw, err := r.client.LRange(ctx, key, int64(privStart), int64(upper)-1).Result()
		if err != nil {
			return nil, fmt.Errorf("edition lrange: %w", err)
		}
		for _, body := range raw {
			var page pb.EventPage
			if err := proto.Unmarshal([]byte(body), protoadapt.MessageV2(&page)); err != nil {
				return nil, fmt.Errorf("unmarshal edition page: %w", err)
			}
			pages = append(pages, &page)
		}
	}
	return &pb.EventBook{Cover: cover, Snapshot: main.Snapshot, Pages: pages, NextSequence: div + uint32(total)}, nil
}

func (r *Redis) EditionAppend(ctx context.Context, edition string, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	if _, err := r.editionDescriptor(ctx, cover.GetDomain(), edition); err != nil {
		return nil, err
	}
	key := editionEventsKey(edition, cover)
	txf := func(tx *redis.Tx) error {
		cur, err := tx.LLen(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("edition llen: %w", err)
		}
		if !force && uint32(cur) != expectedSeq {
			return &ErrConcurrencyConflict{Actual: uint32(cur)}
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			next := uint32(cur)
			for _, page := range pages {
				page.Sequence = next
				body, err := proto.Marshal(protoadapt.MessageV2(page))
				if err != nil {
					return fmt.Errorf("marshal edition page: %w", err)
				}
				pipe.RPush(ctx, key, body)
				next++
			}
			return nil
		})
		return err
	}
	if err := r.client.Watch(ctx, txf, key); err != nil {
		var conflict *ErrConcurrencyConflict
		if errors.As(err, &conflict) {
			return nil, conflict
		}
		return nil, fmt.Errorf("edition append tx: %w", err)
	}
	total, err := r.client.LLen(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("edition llen: %w", err)
	}
	return &pb.EventBook{Cover: cover, Pages: pages, NextSequence: uint32(total)}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

var _ Adapter = (*Redis)(nil)
