package coordinator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/angzarr-io/angzarr/internal/bus"
	"github.com/angzarr-io/angzarr/internal/storage"
	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// ProjectorCoordinator implements ProjectorCoordinatorServiceServer: async
// durable-subscription dispatch with position tracking, plus the inline
// synchronous path used by SyncMode SIMPLE/CASCADE.
type ProjectorCoordinator struct {
	pb.UnimplementedProjectorCoordinatorServiceServer

	Storage    storage.Adapter
	Bus        bus.Adapter
	Registry   *ProjectorRegistry
	MaxRetries int

	Logger *zap.Logger

	posMu     sync.Mutex
	positions map[string]uint32 // "projector\x00domain" -> last processed sequence, exclusive
}

func NewProjectorCoordinator(storageAdapter storage.Adapter, busAdapter bus.Adapter, reg *ProjectorRegistry, maxRetries int, logger *zap.Logger) *ProjectorCoordinator {
	return &ProjectorCoordinator{
		Storage:    storageAdapter,
		Bus:        busAdapter,
		Registry:   reg,
		MaxRetries: maxRetries,
		Logger:     logger,
		positions:  make(map[string]uint32),
	}
}

func (pc *ProjectorCoordinator) logger() *zap.Logger {
	if pc.Logger != nil {
		return pc.Logger
	}
	return zap.NewNop()
}

func posKey(projector, domain string) string { return projector + "\x00" + domain }

func (pc *ProjectorCoordinator) position(projector, domain string) uint32 {
	pc.posMu.Lock()
	defer pc.posMu.Unlock()
	return pc.positions[posKey(projector, domain)]
}

func (pc *ProjectorCoordinator) advance(projector, domain string, seq uint32) {
	pc.posMu.Lock()
	defer pc.posMu.Unlock()
	if seq > pc.positions[posKey(projector, domain)] {
		pc.positions[posKey(projector, domain)] = seq
	}
}

// Run subscribes to the bus for domain under the projector-coordinator
// consumer group and dispatches every delivered book to every projector
// registered for that domain, with retry-with-backoff on handler failure —
// the bus Adapter contract (redeliver on non-nil error) gives the at-least
// -once semantics spec §4.4 asks for.
func (pc *ProjectorCoordinator) Run(ctx context.Context, domain string) error {
	return pc.Bus.Subscribe(ctx, domain, "projector-coordinator", func(ctx context.Context, book *pb.EventBook) error {
		_, err := pc.dispatch(ctx, book, false)
		return err
	})
}

// Handle is the coordinator-facing async RPC entry point: dispatch happens
// in the background so the caller is not blocked on projector completion.
func (pc *ProjectorCoordinator) Handle(ctx context.Context, book *pb.EventBook) (*pb.Empty, error) {
	go func() {
		bg := context.Background()
		if _, err := pc.dispatch(bg, book, false); err != nil {
			pc.logger().Error("async projector dispatch failed", zap.Error(err))
		}
	}()
	return &pb.Empty{}, nil
}

// HandleSync is the coordinator-facing sync RPC entry point: returns the
// result of the last projector run, matching the 1:1 wire shape of
// ProjectorCoordinatorService.HandleSync. Projectors run in
// ProjectorRegistry.ForDomain's order, which is not defined.
func (pc *ProjectorCoordinator) HandleSync(ctx context.Context, book *pb.EventBook) (*pb.Projection, error) {
	projections, err := pc.dispatch(ctx, book, true)
	if err != nil {
		return nil, err
	}
	if len(projections) == 0 {
		return &pb.Projection{}, nil
	}
	return projections[len(projections)-1], nil
}

// DispatchSync is the in-process entry point used by the Aggregate
// Coordinator for SyncMode SIMPLE/CASCADE: every projector registered for
// the domain runs inline and its result is returned; a failing projector
// surfaces to the original caller per spec §4.4.
func (pc *ProjectorCoordinator) DispatchSync(ctx context.Context, book *pb.EventBook) ([]*pb.Projection, error) {
	return pc.dispatch(ctx, book, true)
}

func (pc *ProjectorCoordinator) dispatch(ctx context.Context, book *pb.EventBook, synchronous bool) ([]*pb.Projection, error) {
	domain := book.GetCover().GetDomain()
	regs := pc.Registry.ForDomain(domain)
	var projections []*pb.Projection
	for _, reg := range regs {
		last := pc.position(reg.Name, domain)
		if book.GetNextSequence() <= last {
			continue // already observed every page in this book
		}
		var proj *pb.Projection
		var err error
		if synchronous {
			proj, err = reg.Client.Handle(ctx, book)
		} else {
			proj, err = pc.withRetry(ctx, reg, book)
		}
		if err != nil {
			return nil, err
		}
		pc.advance(reg.Name, domain, book.GetNextSequence())
		projections = append(projections, proj)
	}
	return projections, nil
}

// withRetry re-invokes the projector handler with exponential backoff
// until it succeeds, hits MaxRetries, or ctx is cancelled — mirroring the
// bus package's deliverWithRetry shape for the same at-least-once-with
// -backoff contract, applied here at the projector-handler level rather
// than the transport level.
func (pc *ProjectorCoordinator) withRetry(ctx context.Context, reg *ProjectorRegistration, book *pb.EventBook) (*pb.Projection, error) {
	backoff := 10 * time.Millisecond
	const maxBackoff = 2 * time.Second
	attempts := 0
	for {
		proj, err := reg.Client.Handle(ctx, book)
		if err == nil {
			return proj, nil
		}
		attempts++
		if pc.MaxRetries > 0 && attempts >= pc.MaxRetries {
			return nil, unavailable(err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		if backoff *= 2; backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// Rebuild resets position to 0 for every projector registered against
// domain and replays the entire domain stream in order, root by root.
func (pc *ProjectorCoordinator) Rebuild(ctx context.Context, domain string) error {
	for _, reg := range pc.Registry.ForDomain(domain) {
		pc.posMu.Lock()
		pc.positions[posKey(reg.Name, domain)] = 0
		pc.posMu.Unlock()
	}

	roots, err := pc.Storage.ListRoots(ctx, domain)
	if err != nil {
		return err
	}
	for root := range roots {
		book, err := pc.Storage.Load(ctx, &pb.Cover{Domain: domain, Root: root.GetRoot()}, 0, nil, false)
		if err != nil {
			return err
		}
		if _, err := pc.dispatch(ctx, book, true); err != nil {
			return err
		}
	}
	return nil
}

var _ pb.ProjectorCoordinatorServiceServer = (*ProjectorCoordinator)(nil)
