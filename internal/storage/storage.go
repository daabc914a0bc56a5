// Package storage defines the Storage Adapter: append-only EventBook
// persistence with per-aggregate monotonic sequence, snapshot read/write,
// aggregate-root discovery, and edition-scoped views. Every backend in this
// package implements the same Adapter interface so the coordinator package
// never branches on storage.type beyond construction.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// ErrConcurrencyConflict is returned by Append when the caller's
// expected_sequence no longer matches the stream's actual length. Actual
// carries the real length so the coordinator can build a MissingEventsDetail
// without a second round-trip.
type ErrConcurrencyConflict struct {
	Actual uint32
}

func (e *ErrConcurrencyConflict) Error() string {
	return fmt.Sprintf("concurrency conflict: actual sequence %d", e.Actual)
}

// ErrEditionExists is returned by CreateEdition for a duplicate name.
var ErrEditionExists = errors.New("edition already exists")

// ErrEditionNotFound is returned by operations against an unknown edition.
var ErrEditionNotFound = errors.New("edition not found")

// Adapter is the capability set every Storage Adapter backend implements.
// All operations are scoped by Cover; callers are responsible for routing a
// cover with an edition selector to EditionLoad/EditionAppend below instead
// of Load/Append.
type Adapter interface {
	// Append performs an atomic CAS: succeeds iff current stream length
	// equals expectedSeq, or force is true (then it appends at head
	// regardless of expectedSeq, renumbering the incoming pages from the
	// current head). Returns the full updated EventBook.
	Append(ctx context.Context, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error)

	// Load returns pages in [fromSeq, toSeq) in strict sequence order.
	// toSeq == nil means "to the end". If useSnapshot is true and a
	// snapshot exists whose sequence is at or above fromSeq, the returned
	// EventBook inlines it and pages start just after the snapshot's
	// sequence.
	Load(ctx context.Context, cover *pb.Cover, fromSeq uint32, toSeq *uint32, useSnapshot bool) (*pb.EventBook, error)

	// WriteSnapshot is an idempotent upsert.
	WriteSnapshot(ctx context.Context, cover *pb.Cover, snapshot *pb.Snapshot) error

	// ListRoots streams (domain, root) pairs. The returned channel is
	// closed when enumeration completes; ctx cancellation stops it early.
	ListRoots(ctx context.Context, domain string) (<-chan *pb.AggregateRoot, error)

	// CreateEdition registers a new named divergence point.
	CreateEdition(ctx context.Context, desc *pb.EditionDescriptor) error

	// DeleteEdition purges only the edition's private pages.
	DeleteEdition(ctx context.Context, domain, name string) error

	// EditionLoad returns the logical edition view: main-timeline pages
	// with sequence < divergence, edition-private pages with
	// sequence >= divergence.
	EditionLoad(ctx context.Context, edition string, cover *pb.Cover, fromSeq uint32, toSeq *uint32) (*pb.EventBook, error)

	// EditionAppend writes to the edition's private store only.
	EditionAppend(ctx context.Context, edition string, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error)
}

// stream is the in-memory representation shared by every backend that keeps
// its working set in process memory (the memory backend, and as the
// write-behind cache other backends may layer atop their durable store).
type stream struct {
	mu       sync.Mutex
	pages    []*pb.EventPage
	snapshot *pb.Snapshot
}

func (s *stream) length() uint32 { return uint32(len(s.pages)) }

// appendLocked performs the CAS check and append under the stream's own
// lock; callers must hold s.mu.
func (s *stream) appendLocked(pages []*pb.EventPage, expectedSeq uint32, force bool) error {
	cur := s.length()
	if !force && expectedSeq != cur {
		return &ErrConcurrencyConflict{Actual: cur}
	}
	next := cur
	for _, p := range pages {
		p.Sequence = next
		s.pages = append(s.pages, p)
		next++
	}
	return nil
}

func (s *stream) bookLocked(cover *pb.Cover, fromSeq uint32, toSeq *uint32, useSnapshot bool) *pb.EventBook {
	upper := s.length()
	if toSeq != nil && *toSeq < upper {
		upper = *toSeq
	}
	start := fromSeq
	var snap *pb.Snapshot
	if useSnapshot && s.snapshot != nil && s.snapshot.GetSequence()+1 > start && s.snapshot.GetSequence() < upper {
		snap = s.snapshot
		start = snap.GetSequence() + 1
	}
	var pages []*pb.EventPage
	for _, p := range s.pages {
		if p.GetSequence() >= start && p.GetSequence() < upper {
			pages = append(pages, p)
		}
	}
	return &pb.EventBook{
		Cover:        cover,
		Snapshot:     snap,
		Pages:        pages,
		NextSequence: s.length(),
	}
}

// key identifies a stream by (domain, root) — the coordinator never scopes
// storage by correlation_id, only by cover.domain/cover.root.
func key(cover *pb.Cover) string {
	return cover.GetDomain() + "\x00" + string(cover.GetRoot().GetValue())
}

// Memory is the in-memory baseline backend: always available, used by
// the gateway package's tests and as STORAGE_TYPE=memory's default.
type Memory struct {
	mu       sync.Mutex
	streams  map[string]*stream
	roots    map[string]map[string]*pb.UUID // domain -> root-key -> root
	editions map[string]*pb.EditionDescriptor
	private  map[string]*stream // edition-name\x00domain\x00root -> private stream
}

// NewMemory constructs an empty in-memory Storage Adapter.
func NewMemory() *Memory {
	return &Memory{
		streams:  make(map[string]*stream),
		roots:    make(map[string]map[string]*pb.UUID),
		editions: make(map[string]*pb.EditionDescriptor),
		private:  make(map[string]*stream),
	}
}

func (m *Memory) streamFor(cover *pb.Cover) *stream {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(cover)
	s, ok := m.streams[k]
	if !ok {
		s = &stream{}
		m.streams[k] = s
	}
	domain := cover.GetDomain()
	if m.roots[domain] == nil {
		m.roots[domain] = make(map[string]*pb.UUID)
	}
	m.roots[domain][string(cover.GetRoot().GetValue())] = cover.GetRoot()
	return s
}

func (m *Memory) Append(_ context.Context, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	s := m.streamFor(cover)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.appendLocked(pages, expectedSeq, force); err != nil {
		return nil, err
	}
	return s.bookLocked(cover, 0, nil, true), nil
}

func (m *Memory) Load(_ context.Context, cover *pb.Cover, fromSeq uint32, toSeq *uint32, useSnapshot bool) (*pb.EventBook, error) {
	s := m.streamFor(cover)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookLocked(cover, fromSeq, toSeq, useSnapshot), nil
}

func (m *Memory) WriteSnapshot(_ context.Context, cover *pb.Cover, snapshot *pb.Snapshot) error {
	s := m.streamFor(cover)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	return nil
}

func (m *Memory) ListRoots(ctx context.Context, domain string) (<-chan *pb.AggregateRoot, error) {
	m.mu.Lock()
	roots := make([]*pb.UUID, 0, len(m.roots[domain]))
	for _, r := range m.roots[domain] {
		roots = append(roots, r)
	}
	m.mu.Unlock()
	sort.Slice(roots, func(i, j int) bool { return string(roots[i].Value) < string(roots[j].Value) })

	out := make(chan *pb.AggregateRoot)
	go func() {
		defer close(out)
		for _, r := range roots {
			select {
			case <-ctx.Done():
				return
			case out <- &pb.AggregateRoot{Domain: domain, Root: r}:
			}
		}
	}()
	return out, nil
}

func (m *Memory) CreateEdition(_ context.Context, desc *pb.EditionDescriptor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := desc.GetDomain() + "\x00" + desc.GetName()
	if _, ok := m.editions[k]; ok {
		return ErrEditionExists
	}
	m.editions[k] = desc
	return nil
}

func (m *Memory) DeleteEdition(_ context.Context, domain, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := domain + "\x00" + name
	if _, ok := m.editions[k]; !ok {
		return ErrEditionNotFound
	}
	delete(m.editions, k)
	for pk := range m.private {
		if hasPrefix(pk, name+"\x00"+domain+"\x00") {
			delete(m.private, pk)
		}
	}
	return nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func (m *Memory) editionDescriptor(domain, name string) (*pb.EditionDescriptor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.editions[domain+"\x00"+name]
	return d, ok
}

func (m *Memory) privateStream(edition string, cover *pb.Cover) *stream {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := edition + "\x00" + key(cover)
	s, ok := m.private[k]
	if !ok {
		s = &stream{}
		m.private[k] = s
	}
	return s
}

func (m *Memory) EditionLoad(ctx context.Context, edition string, cover *pb.Cover, fromSeq uint32, toSeq *uint32) (*pb.EventBook, error) {
	desc, ok := m.editionDescriptor(cover.GetDomain(), edition)
	if !ok {
		return nil, ErrEditionNotFound
	}
	main, err := m.Load(ctx, cover, fromSeq, &desc.DivergenceSequence, true)
	if err != nil {
		return nil, err
	}
	priv := m.privateStream(edition, cover)
	priv.mu.Lock()
	privBook := priv.bookLocked(cover, max32(fromSeq, desc.DivergenceSequence), toSeq, false)
	priv.mu.Unlock()

	pages := append(append([]*pb.EventPage{}, main.Pages...), privBook.Pages...)
	return &pb.EventBook{
		Cover:        cover,
		Snapshot:     main.Snapshot,
		Pages:        pages,
		NextSequence: desc.DivergenceSequence + priv.length(),
	}, nil
}

func (m *Memory) EditionAppend(_ context.Context, edition string, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	if _, ok := m.editionDescriptor(cover.GetDomain(), edition); !ok {
		return nil, ErrEditionNotFound
	}
	priv := m.privateStream(edition, cover)
	priv.mu.Lock()
	defer priv.mu.Unlock()
	if err := priv.appendLocked(pages, expectedSeq, force); err != nil {
		return nil, err
	}
	return priv.bookLocked(cover, 0, nil, false), nil
}

func max32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

var _ Adapter = (*Memory)(nil)
