package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"google.golang.org/protobuf/types/known/anypb"
	"gorm.io/gorm"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// anyOf builds an anypb.Any from a stored (type_url, payload) column pair;
// every SQL-backed adapter stores Any fields this way rather than as a
// marshaled message, so fields are queryable/indexable individually.
func anyOf(typeURL string, payload []byte) *anypb.Any {
	if typeURL == "" {
		return nil
	}
	return &anypb.Any{TypeUrl: typeURL, Value: payload}
}

// eventRow, snapshotRow and editionRow are the gorm models backing the
// SQLite Storage Adapter. SQLite has no concurrent-writer story worth
// relying on, so Append additionally takes SQLite.mu to serialize writes at
// the process level rather than leaning on row locks that SQLite won't
// honor under its default journal mode.
type eventRow struct {
	Domain   string `gorm:"primaryKey"`
	Root     []byte `gorm:"primaryKey"`
	Sequence uint32 `gorm:"primaryKey"`
	TypeURL  string
	Payload  []byte
}

func (eventRow) TableName() string { return "events" }

type snapshotRow struct {
	Domain   string `gorm:"primaryKey"`
	Root     []byte `gorm:"primaryKey"`
	Sequence uint32
	TypeURL  string
	Payload  []byte
}

func (snapshotRow) TableName() string { return "snapshots" }

type editionRow struct {
	Domain             string `gorm:"primaryKey"`
	Name               string `gorm:"primaryKey"`
	DivergenceSequence uint32
}

func (editionRow) TableName() string { return "editions" }

type editionEventRow struct {
	Edition  string `gorm:"primaryKey"`
	Domain   string `gorm:"primaryKey"`
	Root     []byte `gorm:"primaryKey"`
	Sequence uint32 `gorm:"primaryKey"`
	TypeURL  string
	Payload  []byte
}

func (editionEventRow) TableName() string { return "edition_events" }

// SQLite is the embedded, file-backed Storage Adapter, used for local
// development and single-process deployments where an external database
// is unwanted overhead.
type SQLite struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewSQLite opens path (":memory:" is valid) and migrates the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&eventRow{}, &snapshotRow{}, &editionRow{}, &editionEventRow{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) streamLength(domain string, root []byte) (uint32, error) {
	var n int64
	if err := s.db.Model(&eventRow{}).Where("domain = ? AND root = ?", domain, root).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return uint32(n), nil
}

func (s *SQLite) Append(_ context.Context, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	root := cover.GetRoot().GetValue()
	cur, err := s.streamLength(cover.GetDomain(), root)
	if err != nil {
		return nil, err
	}
	if !force && cur != expectedSeq {
		return nil, &ErrConcurrencyConflict{Actual: cur}
	}

	rows := make([]eventRow, 0, len(pages))
	next := cur
	for _, page := range pages {
		page.Sequence = next
		rows = append(rows, eventRow{
			Domain: cover.GetDomain(), Root: root, Sequence: next,
			TypeURL: page.GetEvent().GetTypeUrl(), Payload: page.GetEvent().GetValue(),
		})
		next++
	}
	if len(rows) > 0 {
		if err := s.db.Create(&rows).Error; err != nil {
			return nil, fmt.Errorf("insert events: %w", err)
		}
	}
	return s.loadLocked(cover, 0, nil, true)
}

func (s *SQLite) Load(_ context.Context, cover *pb.Cover, fromSeq uint32, toSeq *uint32, useSnapshot bool) (*pb.EventBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(cover, fromSeq, toSeq, useSnapshot)
}

func (s *SQLite) loadLocked(cover *pb.Cover, fromSeq uint32, toSeq *uint32, useSnapshot bool) (*pb.EventBook, error) {
	root := cover.GetRoot().GetValue()
	start := fromSeq
	var snap *pb.Snapshot
	if useSnapshot {
		var row snapshotRow
		err := s.db.Where("domain = ? AND root = ?", cover.GetDomain(), root).First(&row).Error
		switch {
		case err == nil && row.Sequence+1 > start:
			snap = &pb.Snapshot{Sequence: row.Sequence, State: anyOf(row.TypeURL, row.Payload)}
			start = row.Sequence + 1
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
	}

	q := s.db.Where("domain = ? AND root = ? AND sequence >= ?", cover.GetDomain(), root, start).Order("sequence ASC")
	if toSeq != nil {
		q = q.Where("sequence < ?", *toSeq)
	}
	var rows []eventRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	pages := make([]*pb.EventPage, 0, len(rows))
	for _, r := range rows {
		pages = append(pages, &pb.EventPage{Sequence: r.Sequence, Event: anyOf(r.TypeURL, r.Payload)})
	}
	next, err := s.streamLength(cover.GetDomain(), root)
	if err != nil {
		return nil, err
	}
	return &pb.EventBook{Cover: cover, Snapshot: snap, Pages: pages, NextSequence: next}, nil
}

func (s *SQLite) WriteSnapshot(_ context.Context, cover *pb.Cover, snapshot *pb.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := snapshotRow{
		Domain: cover.GetDomain(), Root: cover.GetRoot().GetValue(),
		Sequence: snapshot.GetSequence(), TypeURL: snapshot.GetState().GetTypeUrl(), Payload: snapshot.GetState().GetValue(),
	}
	err := s.db.Where("domain = ? AND root = ?", row.Domain, row.Root).
		Assign(row).FirstOrCreate(&snapshotRow{}).Error
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (s *SQLite) ListRoots(ctx context.Context, domain string) (<-chan *pb.AggregateRoot, error) {
	var roots [][]byte
	if err := s.db.Model(&eventRow{}).Where("domain = ?", domain).Distinct("root").Pluck("root", &roots).Error; err != nil {
		return nil, fmt.Errorf("list roots: %w", err)
	}
	out := make(chan *pb.AggregateRoot)
	go func() {
		defer close(out)
		for _, r := range roots {
			select {
			case <-ctx.Done():
				return
			case out <- &pb.AggregateRoot{Domain: domain, Root: &pb.UUID{Value: r}}:
			}
		}
	}()
	return out, nil
}

func (s *SQLite) CreateEdition(_ context.Context, desc *pb.EditionDescriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var existing editionRow
	err := s.db.Where("domain = ? AND name = ?", desc.GetDomain(), desc.GetName()).First(&existing).Error
	if err == nil {
		return ErrEditionExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check edition: %w", err)
	}
	row := editionRow{Domain: desc.GetDomain(), Name: desc.GetName(), DivergenceSequence: desc.GetDivergenceSequence()}
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("create edition: %w", err)
	}
	return nil
}

func (s *SQLite) DeleteEdition(_ context.Context, domain, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.db.Where("domain = ? AND name = ?", domain, name).Delete(&editionRow{})
	if res.Error != nil {
		return fmt.Errorf("delete edition: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrEditionNotFound
	}
	if err := s.db.Where("edition = ? AND domain = ?", name, domain).Delete(&editionEventRow{}).Error; err != nil {
		return fmt.Errorf("delete edition events: %w", err)
	}
	return nil
}

func (s *SQLite) editionDescriptor(domain, name string) (uint32, error) {
	var row editionRow
	err := s.db.Where("domain = ? AND name = ?", domain, name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrEditionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get edition: %w", err)
	}
	return row.DivergenceSequence, nil
}

func (s *SQLite) EditionLoad(ctx context.Context, edition string, cover *pb.Cover, fromSeq uint32, toSeq *uint32) (*pb.EventBook, error) {
	s.mu.Lock()
	div, err := s.editionDescriptor(cover.GetDomain(), edition)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	main, err := s.loadLocked(cover, fromSeq, &div, true)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	start := fromSeq
	if div > start {
		start = div
	}
	q := s.db.Where("edition = ? AND domain = ? AND root = ? AND sequence >= ?", edition, cover.GetDomain(), cover.GetRoot().GetValue(), start).Order("sequence ASC")
	if toSeq != nil {
		q = q.Where("sequence < ?", *toSeq)
	}
	var rows []editionEventRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load edition events: %w", err)
	}
	pages := append([]*pb.EventPage{}, main.Pages...)
	lastSeq := div
	for _, r := range rows {
		pages = append(pages, &pb.EventPage{Sequence: r.Sequence, Event: anyOf(r.TypeURL, r.Payload)})
		lastSeq = r.Sequence + 1
	}
	return &pb.EventBook{Cover: cover, Snapshot: main.Snapshot, Pages: pages, NextSequence: lastSeq}, nil
}

func (s *SQLite) EditionAppend(_ context.Context, edition string, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.editionDescriptor(cover.GetDomain(), edition); err != nil {
		return nil, err
	}
	root := cover.GetRoot().GetValue()
	var cur int64
	if err := s.db.Model(&editionEventRow{}).Where("edition = ? AND domain = ? AND root = ?", edition, cover.GetDomain(), root).Count(&cur).Error; err != nil {
		return nil, fmt.Errorf("count edition events: %w", err)
	}
	if !force && uint32(cur) != expectedSeq {
		return nil, &ErrConcurrencyConflict{Actual: uint32(cur)}
	}
	rows := make([]editionEventRow, 0, len(pages))
	next := uint32(cur)
	for _, page := range pages {
		page.Sequence = next
		rows = append(rows, editionEventRow{
			Edition: edition, Domain: cover.GetDomain(), Root: root, Sequence: next,
			TypeURL: page.GetEvent().GetTypeUrl(), Payload: page.GetEvent().GetValue(),
		})
		next++
	}
	if len(rows) > 0 {
		if err := s.db.Create(&rows).Error; err != nil {
			return nil, fmt.Errorf("insert edition events: %w", err)
		}
	}
	return &pb.EventBook{Cover: cover, Pages: pages, NextSequence: next}, nil
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ Adapter = (*SQLite)(nil)
