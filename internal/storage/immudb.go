package storage

import (
	"context"
	"fmt"
	"strconv"

	immuclient "github.com/codenotary/immudb/pkg/client"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// ImmuDB is the immudb-backed Storage Adapter, offered for deployments that
// want the event log's tamper-evidence guarantees baked into storage
// itself rather than layered on top. Each page is a key
// "evt:<domain>:<root>:<sequence padded>"; immudb's own cryptographic
// verification of reads/writes is left to client configuration, this
// adapter only uses the plain KV surface.
type ImmuDB struct {
	client immuclient.ImmuClient
}

// NewImmuDB dials the given immudb server and logs in with the supplied
// credentials, selecting db as the active database.
func NewImmuDB(ctx context.Context, addr string, port int, user, password, db string) (*ImmuDB, error) {
	opts := immuclient.DefaultOptions().WithAddress(addr).WithPort(port)
	client := immuclient.NewClient().WithOptions(opts)
	if err := client.OpenSession(ctx, []byte(user), []byte(password), db); err != nil {
		return nil, fmt.Errorf("immudb open session: %w", err)
	}
	return &ImmuDB{client: client}, nil
}

func immuEventKey(domain string, root []byte, seq uint32) string {
	return "evt:" + domain + ":" + string(root) + ":" + padSeq(seq)
}

func immuSnapshotKey(domain string, root []byte) string {
	return "snap:" + domain + ":" + string(root)
}

func immuEditionKey(domain, name string) string {
	return "ed:" + domain + ":" + name
}

func (i *ImmuDB) streamLength(ctx context.Context, domain string, root []byte) (uint32, error) {
	prefix := []byte("evt:" + domain + ":" + string(root) + ":")
	res, err := i.client.Scan(ctx, &immuclient.ScanRequest{Prefix: prefix})
	if err != nil {
		return 0, fmt.Errorf("scan stream: %w", err)
	}
	return uint32(len(res.Entries)), nil
}

func (i *ImmuDB) Append(ctx context.Context, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	root := cover.GetRoot().GetValue()
	cur, err := i.streamLength(ctx, cover.GetDomain(), root)
	if err != nil {
		return nil, err
	}
	if !force && cur != expectedSeq {
		return nil, &ErrConcurrencyConflict{Actual: cur}
	}
	next := cur
	for _, page := range pages {
		page.Sequence = next
		body, err := proto.Marshal(protoadapt.MessageV2(page))
		if err != nil {
			return nil, fmt.Errorf("marshal page: %w", err)
		}
		if _, err := i.client.Set(ctx, []byte(immuEventKey(cover.GetDomain(), root, next)), body); err != nil {
			return nil, fmt.Errorf("set event: %w", err)
		}
		next++
	}
	return i.Load(ctx, cover, 0, nil, true)
}

func (i *ImmuDB) Load(ctx context.Context, cover *pb.Cover, fromSeq uint32, toSeq *uint32, useSnapshot bool) (*pb.EventBook, error) {
	root := cover.GetRoot().GetValue()
	start := fromSeq
	var snap *pb.Snapshot
	if useSnapshot {
		entry, err := i.client.Get(ctx, []byte(immuSnapshotKey(cover.GetDomain(), root)))
		if err == nil && entry != nil {
			var s pb.Snapshot
			if err := proto.Unmarshal(entry.Value, protoadapt.MessageV2(&s)); err == nil && s.Sequence+1 > start {
				snap = &s
				start = s.Sequence + 1
			}
		}
	}

	prefix := []byte("evt:" + cover.GetDomain() + ":" + string(root) + ":")
	res, err := i.client.Scan(ctx, &immuclient.ScanRequest{Prefix: prefix})
	if err != nil {
		return nil, fmt.Errorf("scan stream: %w", err)
	}
	var pages []*pb.EventPage
	for _, entry := range res.Entries {
		var page pb.EventPage
		if err := proto.Unmarshal(entry.Value, protoadapt.MessageV2(&page)); err != nil {
			continue
		}
		if page.Sequence < start {
			continue
		}
		if toSeq != nil && page.Sequence >= *toSeq {
			continue
		}
		pages = append(pages, &page)
	}
	next, err := i.streamLength(ctx, cover.GetDomain(), root)
	if err != nil {
		return nil, err
	}
	return &pb.EventBook{Cover: cover, Snapshot: snap, Pages: pages, NextSequence: next}, nil
}

func (i *ImmuDB) WriteSnapshot(ctx context.Context, cover *pb.Cover, snapshot *pb.Snapshot) error {
	body, err := proto.Marshal(protoadapt.MessageV2(snapshot))
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = i.client.Set(ctx, []byte(immuSnapshotKey(cover.GetDomain(), cover.GetRoot().GetValue())), body)
	if err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

func (i *ImmuDB) ListRoots(ctx context.Context, domain string) (<-chan *pb.AggregateRoot, error) {
	prefix := []byte("evt:" + domain + ":")
	res, err := i.client.Scan(ctx, &immuclient.ScanRequest{Prefix: prefix})
	if err != nil {
		return nil, fmt.Errorf("scan domain: %w", err)
	}
	seen := make(map[string]bool)
	out := make(chan *pb.AggregateRoot)
	go func() {
		defer close(out)
		for _, entry := range res.Entries {
			key := string(entry.Key)
			parts := splitImmuKey(key)
			if len(parts) < 4 || seen[parts[2]] {
				continue
			}
			seen[parts[2]] = true
			select {
			case <-ctx.Done():
				return
			case out <- &pb.AggregateRoot{Domain: domain, Root: &pb.UUID{Value: []byte(parts[2])}}:
			}
		}
	}()
	return out, nil
}

func splitImmuKey(key string) []string {
	var parts []string
	cur := ""
	for _, r := range key {
		if r == ':' {
			parts = append(parts, cur)
			cur = ""
			continue
		}
		cur += string(r)
	}
	return append(parts, cur)
}

func (i *ImmuDB) CreateEdition(ctx context.Context, desc *pb.EditionDescriptor) error {
	key := []byte(immuEditionKey(desc.GetDomain(), desc.GetName()))
	if entry, err := i.client.Get(ctx, key); err == nil && entry != nil {
		return ErrEditionExists
	}
	_, err := i.client.Set(ctx, key, []byte(strconv.FormatUint(uint64(desc.GetDivergenceSequence()), 10)))
	if err != nil {
		return fmt.Errorf("set edition: %w", err)
	}
	return nil
}

func (i *ImmuDB) DeleteEdition(ctx context.Context, domain, name string) error {
	key := []byte(immuEditionKey(domain, name))
	if entry, err := i.client.Get(ctx, key); err != nil || entry == nil {
		return ErrEditionNotFound
	}
	// immudb is append-only and intentionally offers no delete: the
	// descriptor is tombstoned by writing a zero-length marker that
	// editionDescriptor treats as absent, rather than removed from history.
	_, err := i.client.Set(ctx, key, []byte{})
	if err != nil {
		return fmt.Errorf("tombstone edition: %w", err)
	}
	return nil
}

func (i *ImmuDB) editionDescriptor(ctx context.Context, domain, name string) (uint32, error) {
	entry, err := i.client.Get(ctx, []byte(immuEditionKey(domain, name)))
	if err != nil || entry == nil || len(entry.Value) == 0 {
		return 0, ErrEditionNotFound
	}
	div, err := strconv.ParseUint(string(entry.Value), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse divergence sequence: %w", err)
	}
	return uint32(div), nil
}

func (i *ImmuDB) immuEditionEventKey(edition, domain string, root []byte, seq uint32) string {
	return "eevt:" + edition + ":" + domain + ":" + string(root) + ":" + padSeq(seq)
}

func (i *ImmuDB) editionStreamLength(ctx context.Context, edition, domain string, root []byte) (uint32, error) {
	prefix := []byte("eevt:" + edition + ":" + domain + ":" + string(root) + ":")
	res, err := i.client.Scan(ctx, &immuclient.ScanRequest{Prefix: prefix})
	if err != nil {
		return 0, fmt.Errorf("scan edition stream: %w", err)
	}
	return uint32(len(res.Entries)), nil
}

func (i *ImmuDB) EditionLoad(ctx context.Context, edition string, cover *pb.Cover, fromSeq uint32, toSeq *uint32) (*pb.EventBook, error) {
	div, err := i.editionDescriptor(ctx, cover.GetDomain(), edition)
	if err != nil {
		return nil, err
	}
	main, err := i.Load(ctx, cover, fromSeq, &div, true)
	if err != nil {
		return nil, err
	}

	root := cover.GetRoot().GetValue()
	prefix := []byte("eevt:" + edition + ":" + cover.GetDomain() + ":" + string(root) + ":")
	res, err := i.client.Scan(ctx, &immuclient.ScanRequest{Prefix: prefix})
	if err != nil {
		return nil, fmt.Errorf("scan edition events: %w", err)
	}
	start := fromSeq
	if div > start {
		start = div
	}
	pages := append([]*pb.EventPage{}, main.Pages...)
	lastSeq := div
	for _, entry := range res.Entries {
		var page pb.EventPage
		if err := proto.Unmarshal(entry.Value, protoadapt.MessageV2(&page)); err != nil {
			continue
		}
		absSeq := div + page.Sequence
		if absSeq < start {
			continue
		}
		if toSeq != nil && absSeq >= *toSeq {
			continue
		}
		page.Sequence = absSeq
		pages = append(pages, &page)
		lastSeq = absSeq + 1
	}
	return &pb.EventBook{Cover: cover, Snapshot: main.Snapshot, Pages: pages, NextSequence: lastSeq}, nil
}

func (i *ImmuDB) EditionAppend(ctx context.Context, edition string, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	if _, err := i.editionDescriptor(ctx, cover.GetDomain(), edition); err != nil {
		return nil, err
	}
	root := cover.GetRoot().GetValue()
	cur, err := i.editionStreamLength(ctx, edition, cover.GetDomain(), root)
	if err != nil {
		return nil, err
	}
	if !force && cur != expectedSeq {
		return nil, &ErrConcurrencyConflict{Actual: cur}
	}
	next := cur
	for _, page := range pages {
		relSeq := next
		page.Sequence = next
		body, err := proto.Marshal(protoadapt.MessageV2(page))
		if err != nil {
			return nil, fmt.Errorf("marshal edition page: %w", err)
		}
		if _, err := i.client.Set(ctx, []byte(i.immuEditionEventKey(edition, cover.GetDomain(), root, relSeq)), body); err != nil {
			return nil, fmt.Errorf("set edition event: %w", err)
		}
		next++
	}
	return &pb.EventBook{Cover: cover, Pages: pages, NextSequence: next}, nil
}

func (i *ImmuDB) Close() error {
	return i.client.CloseSession(context.Background())
}

var _ Adapter = (*ImmuDB)(nil)
