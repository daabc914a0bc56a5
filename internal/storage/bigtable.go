package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/bigtable"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

const (
	bigtableEventsTable   = "events"
	bigtableSnapshotTable = "snapshots"
	bigtableEditionsTable = "editions"
	bigtableFamily        = "p"
	bigtableColumn        = "page"
)

// Bigtable is the Cloud Bigtable-backed Storage Adapter. Row keys are
// "<domain>#<root>#<sequence padded to 10 digits>" so a row-range read over
// a single aggregate's stream is a contiguous scan. Sequence padding keeps
// lexicographic row-key order equal to numeric sequence order.
type Bigtable struct {
	client *bigtable.Client
	events *bigtable.Table
	snaps  *bigtable.Table
	eds    *bigtable.Table
}

// NewBigtable opens a client against the given project/instance.
func NewBigtable(ctx context.Context, project, instance string) (*Bigtable, error) {
	client, err := bigtable.NewClient(ctx, project, instance)
	if err != nil {
		return nil, fmt.Errorf("bigtable client: %w", err)
	}
	return &Bigtable{
		client: client,
		events: client.Open(bigtableEventsTable),
		snaps:  client.Open(bigtableSnapshotTable),
		eds:    client.Open(bigtableEditionsTable),
	}, nil
}

func padSeq(seq uint32) string {
	return fmt.Sprintf("%010d", seq)
}

func streamPrefix(domain string, root []byte) string {
	return domain + "#" + string(root) + "#"
}

func eventRowKey(domain string, root []byte, seq uint32) string {
	return streamPrefix(domain, root) + padSeq(seq)
}

func (b *Bigtable) streamLength(ctx context.Context, domain string, root []byte) (uint32, error) {
	var count uint32
	err := b.events.ReadRows(ctx, bigtable.PrefixRange(streamPrefix(domain, root)), func(row bigtable.Row) bool {
		count++
		return true
	}, bigtable.RowFilter(bigtable.StripValueFilter()))
	if err != nil {
		return 0, fmt.Errorf("read stream length: %w", err)
	}
	return count, nil
}

func (b *Bigtable) Append(ctx context.Context, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	root := cover.GetRoot().GetValue()
	cur, err := b.streamLength(ctx, cover.GetDomain(), root)
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
		mut := bigtable.NewMutation()
		mut.Set(bigtableFamily, bigtableColumn, bigtable.Now(), body)
		if err := b.events.Apply(ctx, eventRowKey(cover.GetDomain(), root, next), mut); err != nil {
			return nil, fmt.Errorf("apply event mutation: %w", err)
		}
		next++
	}
	return b.Load(ctx, cover, 0, nil, true)
}

func (b *Bigtable) Load(ctx context.Context, cover *pb.Cover, fromSeq uint32, toSeq *uint32, useSnapshot bool) (*pb.EventBook, error) {
	root := cover.GetRoot().GetValue()
	start := fromSeq
	var snap *pb.Snapshot
	if useSnapshot {
		row, err := b.snaps.ReadRow(ctx, cover.GetDomain()+"#"+string(root))
		if err != nil {
			return nil, fmt.Errorf("read snapshot row: %w", err)
		}
		if cells, ok := row[bigtableFamily]; ok && len(cells) > 0 {
			var s pb.Snapshot
			if err := proto.Unmarshal(cells[0].Value, protoadapt.MessageV2(&s)); err == nil && s.Sequence+1 > start {
				snap = &s
				start = s.Sequence + 1
			}
		}
	}

	rr := bigtable.NewRange(eventRowKey(cover.GetDomain(), root, start), streamPrefix(cover.GetDomain(), root)+"\xff")
	var pages []*pb.EventPage
	err := b.events.ReadRows(ctx, rr, func(row bigtable.Row) bool {
		cells := row[bigtableFamily]
		if len(cells) == 0 {
			return true
		}
		var page pb.EventPage
		if err := proto.Unmarshal(cells[0].Value, protoadapt.MessageV2(&page)); err != nil {
			return true
		}
		if toSeq != nil && page.Sequence >= *toSeq {
			return true
		}
		pages = append(pages, &page)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	next, err := b.streamLength(ctx, cover.GetDomain(), root)
	if err != nil {
		return nil, err
	}
	return &pb.EventBook{Cover: cover, Snapshot: snap, Pages: pages, NextSequence: next}, nil
}

func (b *Bigtable) WriteSnapshot(ctx context.Context, cover *pb.Cover, snapshot *pb.Snapshot) error {
	body, err := proto.Marshal(protoadapt.MessageV2(snapshot))
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	mut := bigtable.NewMutation()
	mut.Set(bigtableFamily, bigtableColumn, bigtable.Now(), body)
	key := cover.GetDomain() + "#" + string(cover.GetRoot().GetValue())
	if err := b.snaps.Apply(ctx, key, mut); err != nil {
		return fmt.Errorf("apply snapshot mutation: %w", err)
	}
	return nil
}

func (b *Bigtable) ListRoots(ctx context.Context, domain string) (<-chan *pb.AggregateRoot, error) {
	out := make(chan *pb.AggregateRoot)
	seen := make(map[string]bool)
	go func() {
		defer close(out)
		b.events.ReadRows(ctx, bigtable.PrefixRange(domain+"#"), func(row bigtable.Row) bool {
			parts := strings.SplitN(row.Key(), "#", 3)
			if len(parts) < 2 || seen[parts[1]] {
				return true
			}
			seen[parts[1]] = true
			select {
			case <-ctx.Done():
				return false
			case out <- &pb.AggregateRoot{Domain: domain, Root: &pb.UUID{Value: []byte(parts[1])}}:
			}
			return true
		}, bigtable.RowFilter(bigtable.StripValueFilter()))
	}()
	return out, nil
}

func (b *Bigtable) editionRowKey(domain, name string) string {
	return domain + "#" + name
}

func (b *Bigtable) CreateEdition(ctx context.Context, desc *pb.EditionDescriptor) error {
	key := b.editionRowKey(desc.GetDomain(), desc.GetName())
	row, err := b.eds.ReadRow(ctx, key)
	if err != nil {
		return fmt.Errorf("read edition row: %w", err)
	}
	if len(row) > 0 {
		return ErrEditionExists
	}
	mut := bigtable.NewMutation()
	mut.Set(bigtableFamily, "divergence", bigtable.Now(), []byte(strconv.FormatUint(uint64(desc.GetDivergenceSequence()), 10)))
	if err := b.eds.Apply(ctx, key, mut); err != nil {
		return fmt.Errorf("apply edition mutation: %w", err)
	}
	return nil
}

func (b *Bigtable) DeleteEdition(ctx context.Context, domain, name string) error {
	key := b.editionRowKey(domain, name)
	row, err := b.eds.ReadRow(ctx, key)
	if err != nil {
		return fmt.Errorf("read edition row: %w", err)
	}
	if len(row) == 0 {
		return ErrEditionNotFound
	}
	mut := bigtable.NewMutation()
	mut.DeleteRow()
	if err := b.eds.Apply(ctx, key, mut); err != nil {
		return fmt.Errorf("delete edition row: %w", err)
	}

	prefix := "edition-events#" + name + "#" + domain + "#"
	var toDelete []string
	b.events.ReadRows(ctx, bigtable.PrefixRange(prefix), func(row bigtable.Row) bool {
		toDelete = append(toDelete, row.Key())
		return true
	}, bigtable.RowFilter(bigtable.StripValueFilter()))
	for _, k := range toDelete {
		del := bigtable.NewMutation()
		del.DeleteRow()
		b.events.Apply(ctx, k, del)
	}
	return nil
}

func (b *Bigtable) editionDescriptor(ctx context.Context, domain, name string) (uint32, error) {
	row, err := b.eds.ReadRow(ctx, b.editionRowKey(domain, name))
	if err != nil {
		return 0, fmt.Errorf("read edition row: %w", err)
	}
	cells, ok := row[bigtableFamily]
	if !ok || len(cells) == 0 {
		return 0, ErrEditionNotFound
	}
	div, err := strconv.ParseUint(string(cells[0].Value), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse divergence sequence: %w", err)
	}
	return uint32(div), nil
}

func (b *Bigtable) editionEventRowKey(edition, domain string, root []byte, seq uint32) string {
	return "edition-events#" + edition + "#" + domain + "#" + string(root) + "#" + padSeq(seq)
}

func (b *Bigtable) editionStreamLength(ctx context.Context, edition, domain string, root []byte) (uint32, error) {
	prefix := "edition-events#" + edition + "#" + domain + "#" + string(root) + "#"
	var count uint32
	err := b.events.ReadRows(ctx, bigtable.PrefixRange(prefix), func(row bigtable.Row) bool {
		count++
		return true
	}, bigtable.RowFilter(bigtable.StripValueFilter()))
	if err != nil {
		return 0, fmt.Errorf("edition stream length: %w", err)
	}
	return count, nil
}

func (b *Bigtable) EditionLoad(ctx context.Context, edition string, cover *pb.Cover, fromSeq uint32, toSeq *uint32) (*pb.EventBook, error) {
	div, err := b.editionDescriptor(ctx, cover.GetDomain(), edition)
	if err != nil {
		return nil, err
	}
	main, err := b.Load(ctx, cover, fromSeq, &div, true)
	if err != nil {
		return nil, err
	}

	root := cover.GetRoot().GetValue()
	start := fromSeq
	if div > start {
		start = div
	}
	prefix := "edition-events#" + edition + "#" + cover.GetDomain() + "#" + string(root) + "#"
	rr := bigtable.NewRange(b.editionEventRowKey(edition, cover.GetDomain(), root, start), prefix+"\xff")
	pages := append([]*pb.EventPage{}, main.Pages...)
	lastSeq := div
	err = b.events.ReadRows(ctx, rr, func(row bigtable.Row) bool {
		cells := row[bigtableFamily]
		if len(cells) == 0 {
			return true
		}
		var page pb.EventPage
		if err := proto.Unmarshal(cells[0].Value, protoadapt.MessageV2(&page)); err != nil {
			return true
		}
		if toSeq != nil && page.Sequence >= *toSeq {
			return true
		}
		pages = append(pages, &page)
		lastSeq = page.Sequence + 1
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("read edition rows: %w", err)
	}
	return &pb.EventBook{Cover: cover, Snapshot: main.Snapshot, Pages: pages, NextSequence: lastSeq}, nil
}

func (b *Bigtable) EditionAppend(ctx context.Context, edition string, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	if _, err := b.editionDescriptor(ctx, cover.GetDomain(), edition); err != nil {
		return nil, err
	}
	root := cover.GetRoot().GetValue()
	cur, err := b.editionStreamLength(ctx, edition, cover.GetDomain(), root)
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
			return nil, fmt.Errorf("marshal edition page: %w", err)
		}
		mut := bigtable.NewMutation()
		mut.Set(bigtableFamily, bigtableColumn, bigtable.Now(), body)
		if err := b.events.Apply(ctx, b.editionEventRowKey(edition, cover.GetDomain(), root, next), mut); err != nil {
			return nil, fmt.Errorf("apply edition mutation: %w", err)
		}
		next++
	}
	return &pb.EventBook{Cover: cover, Pages: pages, NextSequence: next}, nil
}

func (b *Bigtable) Close() error {
	return b.client.Close()
}

var _ Adapter = (*Bigtable)(nil)
