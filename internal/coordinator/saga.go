package coordinator

import (
	"context"
	"encoding/binary"
	"time"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/anypb"

	"github.com/angzarr-io/angzarr/internal/bus"
	"github.com/angzarr-io/angzarr/internal/storage"
	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// sagaMarkerTypeURL tags the synthetic idempotency-checkpoint pages a saga
// appends to its own stream before dispatching — not a domain event type,
// never shown to domain logic or projectors.
const sagaMarkerTypeURL = "type.angzarr.internal/SagaMarker"

// aggregateDispatcher is the subset of AggregateCoordinator the Saga
// Coordinator dispatches commands through. One AggregateCoordinator
// instance serves every domain in a single coordinatord process, so this
// is satisfied in-process without a gRPC hop; *AggregateCoordinator
// implements it structurally.
type aggregateDispatcher interface {
	Handle(ctx context.Context, cb *pb.CommandBook) (*pb.CommandResponse, error)
	HandleSync(ctx context.Context, scb *pb.SyncCommandBook) (*pb.CommandResponse, error)
}

// SagaCoordinator implements SagaCoordinatorServiceServer: rehydrates saga
// state from events, runs the domain saga's Prepare/Execute protocol, and
// dispatches resulting commands through the Aggregate Coordinator.
type SagaCoordinator struct {
	pb.UnimplementedSagaCoordinatorServiceServer

	Storage    storage.Adapter
	Bus        bus.Adapter
	Registry   *SagaRegistry
	Aggregates aggregateDispatcher
	Router     rejectionNotifier
	MaxRetries int

	Logger *zap.Logger
}

func NewSagaCoordinator(storageAdapter storage.Adapter, busAdapter bus.Adapter, reg *SagaRegistry, aggregates aggregateDispatcher, maxRetries int, logger *zap.Logger) *SagaCoordinator {
	return &SagaCoordinator{Storage: storageAdapter, Bus: busAdapter, Registry: reg, Aggregates: aggregates, MaxRetries: maxRetries, Logger: logger}
}

func (sc *SagaCoordinator) logger() *zap.Logger {
	if sc.Logger != nil {
		return sc.Logger
	}
	return zap.NewNop()
}

// markerCover is the synthetic per-(saga,root) bookkeeping stream a saga
// persists its processing checkpoint to, per spec §4.2's "the saga's own
// event-processing event is itself persisted before dispatch to
// deduplicate."
func markerCover(sagaName string, root *pb.UUID) *pb.Cover {
	return &pb.Cover{Domain: "saga$" + sagaName, Root: root}
}

func (sc *SagaCoordinator) lastProcessed(ctx context.Context, sagaName string, root *pb.UUID) (uint32, error) {
	book, err := sc.Storage.Load(ctx, markerCover(sagaName, root), 0, nil, false)
	if err != nil {
		return 0, err
	}
	pages := book.GetPages()
	if len(pages) == 0 {
		return 0, nil
	}
	last := pages[len(pages)-1].GetEvent()
	if last == nil || len(last.Value) < 4 {
		return 0, nil
	}
	return binary.BigEndian.Uint32(last.Value), nil
}

func (sc *SagaCoordinator) recordProcessed(ctx context.Context, sagaName string, root *pb.UUID, seq uint32) error {
	cover := markerCover(sagaName, root)
	book, err := sc.Storage.Load(ctx, cover, 0, nil, false)
	if err != nil {
		return err
	}
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, seq)
	page := pb.NewEventPage(0, &anypb.Any{TypeUrl: sagaMarkerTypeURL, Value: buf}, false)
	_, err = sc.Storage.Append(ctx, cover, []*pb.EventPage{page}, book.GetNextSequence(), false)
	return err
}

// Handle is the async entry point: events are processed and dispatched,
// with retry-on-Aborted backoff; no response is returned to the caller.
func (sc *SagaCoordinator) Handle(ctx context.Context, book *pb.EventBook) (*pb.Empty, error) {
	if _, err := sc.process(ctx, book, false); err != nil {
		sc.logger().Error("saga async processing failed", zap.Error(err))
	}
	return &pb.Empty{}, nil
}

// HandleSync is the coordinator-facing sync RPC entry point: used directly
// or, recursively, by CASCADE — dispatched commands are executed inline
// before this returns.
func (sc *SagaCoordinator) HandleSync(ctx context.Context, book *pb.EventBook) (*pb.SagaResponse, error) {
	responses, err := sc.process(ctx, book, true)
	if err != nil {
		return nil, err
	}
	var commands []*pb.CommandBook
	for _, r := range responses {
		commands = append(commands, r.GetCommands()...)
	}
	return &pb.SagaResponse{Commands: commands}, nil
}

// DispatchSync is the in-process entry point the Aggregate Coordinator
// calls for SyncMode SIMPLE/CASCADE.
func (sc *SagaCoordinator) DispatchSync(ctx context.Context, book *pb.EventBook) ([]*pb.SagaResponse, error) {
	return sc.process(ctx, book, true)
}

// Run subscribes to the bus for domain under the saga-coordinator consumer
// group and feeds every delivered book through the async saga pipeline.
func (sc *SagaCoordinator) Run(ctx context.Context, domain string) error {
	return sc.Bus.Subscribe(ctx, domain, "saga-coordinator", func(ctx context.Context, book *pb.EventBook) error {
		_, err := sc.process(ctx, book, false)
		return err
	})
}

func (sc *SagaCoordinator) process(ctx context.Context, book *pb.EventBook, synchronous bool) ([]*pb.SagaResponse, error) {
	domain := book.GetCover().GetDomain()
	root := book.GetCover().GetRoot()
	var responses []*pb.SagaResponse

	for _, reg := range sc.Registry.ForDomain(domain) {
		last, err := sc.lastProcessed(ctx, reg.Name, root)
		if err != nil {
			return nil, internalErr("load saga checkpoint: %v", err)
		}
		if book.GetNextSequence() <= last {
			continue // already processed through this revision
		}
		if !anyPageMatches(reg, book.GetPages(), last) {
			_ = sc.recordProcessed(ctx, reg.Name, root, book.GetNextSequence())
			continue
		}

		prep, err := reg.Client.Prepare(ctx, &pb.SagaPrepareRequest{Source: book})
		if err != nil {
			return nil, unavailable(err)
		}
		destinations := make([]*pb.EventBook, 0, len(prep.GetDestinations()))
		for _, cover := range prep.GetDestinations() {
			destBook, err := sc.Storage.Load(ctx, cover, 0, nil, true)
			if err != nil {
				return nil, internalErr("load saga destination: %v", err)
			}
			destinations = append(destinations, destBook)
		}

		resp, err := reg.Client.Execute(ctx, &pb.SagaExecuteRequest{Source: book, Destinations: destinations})
		if err != nil {
			return nil, unavailable(err)
		}

		// Persist the checkpoint before dispatch so re-delivery of this
		// same book never re-executes the saga, even if dispatch fails.
		if err := sc.recordProcessed(ctx, reg.Name, root, book.GetNextSequence()); err != nil {
			return nil, internalErr("record saga checkpoint: %v", err)
		}

		for _, cmd := range resp.GetCommands() {
			if err := sc.dispatchWithRetry(ctx, cmd, synchronous); err != nil {
				sc.logger().Error("saga command dispatch failed", zap.Error(err), zap.String("saga", reg.Name))
				sc.notifyRejection(ctx, reg.Name, book, cmd, err)
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// anyPageMatches reports whether any page at or after lastProcessed has a
// type_url suffix the registration subscribes to.
func anyPageMatches(reg *SagaRegistration, pages []*pb.EventPage, lastProcessed uint32) bool {
	for _, p := range pages {
		if p.GetSequence() < lastProcessed {
			continue
		}
		if reg.matches(p.GetEvent().GetTypeUrl()) {
			return true
		}
	}
	return false
}

// dispatchWithRetry dispatches one saga-issued command with bounded
// exponential backoff on Aborted (sequence conflict), per spec §4.2/§7.
// The synchronous path dispatches under SyncMode CASCADE so nested saga
// reactions execute inline before this returns; the async path fires a
// plain Handle.
func (sc *SagaCoordinator) dispatchWithRetry(ctx context.Context, cmd *pb.CommandBook, synchronous bool) error {
	backoff := 20 * time.Millisecond
	const maxBackoff = 3 * time.Second
	maxAttempts := sc.MaxRetries
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var err error
		if synchronous {
			_, err = sc.Aggregates.HandleSync(ctx, &pb.SyncCommandBook{Command: cmd, SyncMode: pb.SyncMode_CASCADE})
		} else {
			_, err = sc.Aggregates.Handle(ctx, cmd)
		}
		if err == nil {
			return nil
		}
		lastErr = err
		if ce := AsCoordinatorError(err); ce == nil || ce.Kind != KindAborted {
			return err // only sequence conflicts are retried
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff *= 2; backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
	return lastErr
}

// notifyRejection forwards a FailedPrecondition dispatch failure to the
// Rejection Router, per spec §4.2/§4.8. Aborted failures that exhausted
// retry are not business rejections and are not compensated; only a
// genuine domain-logic rejection reaches here with KindFailedPrecondition.
func (sc *SagaCoordinator) notifyRejection(ctx context.Context, sagaName string, source *pb.EventBook, cmd *pb.CommandBook, dispatchErr error) {
	if sc.Router == nil {
		return
	}
	ce := AsCoordinatorError(dispatchErr)
	if ce == nil || ce.Kind != KindFailedPrecondition {
		return
	}
	var sourceType string
	if pages := source.GetPages(); len(pages) > 0 {
		sourceType = TypeSuffix(pages[len(pages)-1].GetEvent().GetTypeUrl())
	}
	notif := &pb.Notification{
		IssuerType:      "saga",
		IssuerName:      sagaName,
		SourceEventType: sourceType,
		RejectedCommand: cmd,
		RejectionReason: ce.Message,
		CorrelationId:   source.GetCover().GetCorrelationId(),
	}
	if err := sc.Router.Route(ctx, notif); err != nil {
		sc.logger().Error("rejection routing failed", zap.Error(err), zap.String("saga", sagaName))
	}
}

var _ pb.SagaCoordinatorServiceServer = (*SagaCoordinator)(nil)
