package coordinator

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/angzarr-io/angzarr/internal/bus"
	"github.com/angzarr-io/angzarr/internal/storage"
	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// syncProjectorDispatcher is the Projector Coordinator's synchronous entry
// point, called inline for SyncMode SIMPLE/CASCADE. Named DispatchSync
// (rather than HandleSync) because it fans out to every projector
// registered for the domain and so returns a slice, unlike the 1:1
// ProjectorCoordinatorServiceServer.HandleSync RPC method of the same
// underlying type. Declared here rather than imported to avoid a hard
// compile-time dependency on projector.go's concrete type;
// *ProjectorCoordinator satisfies it structurally.
type syncProjectorDispatcher interface {
	DispatchSync(ctx context.Context, book *pb.EventBook) ([]*pb.Projection, error)
}

// syncSagaDispatcher is the Saga Coordinator's synchronous entry point,
// called inline for SyncMode SIMPLE/CASCADE; see syncProjectorDispatcher
// for why this is DispatchSync rather than the RPC-facing HandleSync.
type syncSagaDispatcher interface {
	DispatchSync(ctx context.Context, book *pb.EventBook) ([]*pb.SagaResponse, error)
}

// AggregateCoordinator implements AggregateCoordinatorServiceServer: command
// ingress, history load, domain-logic call-out, optimistic append, bus
// publish, and SyncMode-driven projector/saga dispatch.
type AggregateCoordinator struct {
	pb.UnimplementedAggregateCoordinatorServiceServer

	Storage    storage.Adapter
	Bus        bus.Adapter
	Logic      *BusinessLogicRegistry
	Upcasters  *UpcasterRegistry
	Editions   *EditionManager
	Projectors syncProjectorDispatcher
	Sagas      syncSagaDispatcher

	SnapshotReadEnabled  bool
	SnapshotWriteEnabled bool
	CascadeMaxDepth      int

	Logger *zap.Logger
}

func (ac *AggregateCoordinator) logger() *zap.Logger {
	if ac.Logger != nil {
		return ac.Logger
	}
	return zap.NewNop()
}

// Handle runs the command pipeline under SyncMode NONE — the bare
// CommandBook carries no SyncMode of its own, so the plain
// AggregateCoordinatorService.Handle RPC is always fire-and-forget for
// projectors/sagas.
func (ac *AggregateCoordinator) Handle(ctx context.Context, cb *pb.CommandBook) (*pb.CommandResponse, error) {
	return ac.pipeline(ctx, cb, pb.SyncMode_NONE, false)
}

// HandleSync runs the pipeline under an explicit SyncMode.
func (ac *AggregateCoordinator) HandleSync(ctx context.Context, scb *pb.SyncCommandBook) (*pb.CommandResponse, error) {
	return ac.pipeline(ctx, scb.GetCommand(), scb.GetSyncMode(), true)
}

// Record persists a saga-issued EventBook directly, skipping domain logic
// but still validating sequence contiguity and publishing.
func (ac *AggregateCoordinator) Record(ctx context.Context, book *pb.EventBook) (*pb.CommandResponse, error) {
	cover := book.GetCover()
	if cover.GetDomain() == "" {
		return nil, invalidArgument("record: cover.domain is required")
	}
	pages := book.GetPages()
	if len(pages) == 0 {
		return nil, invalidArgument("record: at least one page is required")
	}
	expectedSeq := pages[0].GetSequence()
	force := pages[0].GetForceFlag()

	appended, err := ac.Editions.Append(ctx, cover, pages, expectedSeq, force)
	if err != nil {
		return ac.handleAppendError(ctx, cover, expectedSeq, err)
	}
	return ac.finishAppend(ctx, cover, appended, pb.SyncMode_NONE, false)
}

// DryRunHandle runs the pipeline read-only: history is loaded (optionally
// bounded by AsOfSequence for temporal replay), domain logic is invoked,
// but nothing is appended, published, or dispatched downstream.
func (ac *AggregateCoordinator) DryRunHandle(ctx context.Context, req *pb.DryRunRequest) (*pb.CommandResponse, error) {
	cb := req.GetCommand()
	cover := cb.GetCover()
	if cover.GetDomain() == "" {
		return nil, invalidArgument("dry_run: cover.domain is required")
	}
	history, err := ac.loadHistory(ctx, cover, req.AsOfSequence)
	if err != nil {
		return nil, internalErr("dry_run: load history: %v", err)
	}
	client, err := ac.Logic.Lookup(cover.GetDomain())
	if err != nil {
		return nil, invalidArgument("%v", err)
	}
	resp, err := client.Handle(ctx, &pb.ContextualCommand{Command: cb, Events: history})
	if err != nil {
		return nil, unavailable(err)
	}
	if rej := resp.GetRejection(); rej != nil {
		return nil, rejectionError(rej)
	}
	events := resp.GetEvents()
	if events != nil {
		// Assign sequence numbers the same way a real append would, without
		// touching storage.
		next := history.GetNextSequence()
		pages := make([]*pb.EventPage, len(events.GetPages()))
		for i, p := range events.GetPages() {
			clone := p.Clone()
			clone.Sequence = next
			pages[i] = clone
			next++
		}
		events = &pb.EventBook{Cover: cover, Snapshot: events.GetSnapshot(), Pages: pages, NextSequence: next}
	}
	return &pb.CommandResponse{Events: events}, nil
}

// pipeline is the shared body of Handle/HandleSync: load, upcast, validate
// sequence, call domain logic, append (with one contention retry), publish,
// and dispatch per SyncMode.
func (ac *AggregateCoordinator) pipeline(ctx context.Context, cb *pb.CommandBook, mode pb.SyncMode, synchronous bool) (*pb.CommandResponse, error) {
	cover := cb.GetCover()
	if cover.GetDomain() == "" {
		return nil, invalidArgument("handle: cover.domain is required")
	}
	pages := cb.GetPages()
	if len(pages) == 0 {
		return nil, invalidArgument("handle: at least one command page is required")
	}
	// Decision (documented in the design ledger): a CommandBook dispatched
	// to the Aggregate Coordinator carries exactly one CommandPage, whose
	// Sequence is the writer's expected_sequence and ForceFlag is the
	// force-write override — the shape the Storage Adapter's Append already
	// takes as (expectedSeq uint32, force bool) rather than per-page values.
	page := pages[0]
	expectedSeq := page.GetSequence()
	force := page.GetForceFlag()

	client, err := ac.Logic.Lookup(cover.GetDomain())
	if err != nil {
		return nil, invalidArgument("%v", err)
	}

	appended, retryErr := ac.tryAppend(ctx, client, cb, cover, expectedSeq, force, synchronous)
	if retryErr != nil {
		return nil, retryErr
	}
	return ac.finishAppend(ctx, cover, appended, mode, synchronous)
}

// tryAppend performs one dispatch-and-append attempt, retrying exactly
// once on storage contention per spec §4.1 step 6/§7.
func (ac *AggregateCoordinator) tryAppend(ctx context.Context, client pb.AggregateServiceClient, cb *pb.CommandBook, cover *pb.Cover, expectedSeq uint32, force bool, synchronous bool) (*pb.EventBook, error) {
	for attempt := 0; attempt < 2; attempt++ {
		history, err := ac.loadHistory(ctx, cover, nil)
		if err != nil {
			return nil, internalErr("load history: %v", err)
		}
		actual := history.GetNextSequence()
		if !force && expectedSeq != actual {
			return nil, aborted(&pb.MissingEventsDetail{
				Domain: cover.GetDomain(), Root: cover.GetRoot(),
				ExpectedSequence: expectedSeq, ActualSequence: actual,
			})
		}

		ctxCmd := &pb.ContextualCommand{Command: cb, Events: history}
		var resp *pb.BusinessResponse
		if synchronous {
			resp, err = client.HandleSync(ctx, ctxCmd)
		} else {
			resp, err = client.Handle(ctx, ctxCmd)
		}
		if err != nil {
			return nil, unavailable(err)
		}
		if rej := resp.GetRejection(); rej != nil {
			return nil, rejectionError(rej)
		}
		events := resp.GetEvents()
		if events == nil {
			return nil, internalErr("domain logic returned neither events nor rejection")
		}

		appended, err := ac.Editions.Append(ctx, cover, events.GetPages(), expectedSeq, force)
		if err == nil {
			if ac.SnapshotWriteEnabled && events.GetSnapshot() != nil {
				if werr := ac.Storage.WriteSnapshot(ctx, cover, events.GetSnapshot()); werr != nil {
					ac.logger().Warn("snapshot write failed", zap.Error(werr))
				}
			}
			return appended, nil
		}
		if conflict, ok := err.(*storage.ErrConcurrencyConflict); ok {
			if attempt == 0 {
				continue // one internal retry, per spec
			}
			return nil, aborted(&pb.MissingEventsDetail{
				Domain: cover.GetDomain(), Root: cover.GetRoot(),
				ExpectedSequence: expectedSeq, ActualSequence: conflict.Actual,
			})
		}
		return nil, internalErr("append: %v", err)
	}
	return nil, internalErr("append: exhausted retries")
}

func (ac *AggregateCoordinator) handleAppendError(ctx context.Context, cover *pb.Cover, expectedSeq uint32, err error) (*pb.CommandResponse, error) {
	if conflict, ok := err.(*storage.ErrConcurrencyConflict); ok {
		return nil, aborted(&pb.MissingEventsDetail{
			Domain: cover.GetDomain(), Root: cover.GetRoot(),
			ExpectedSequence: expectedSeq, ActualSequence: conflict.Actual,
		})
	}
	return nil, internalErr("append: %v", err)
}

// finishAppend publishes the durable append and dispatches to
// projectors/sagas per mode, assembling the CommandResponse.
func (ac *AggregateCoordinator) finishAppend(ctx context.Context, cover *pb.Cover, appended *pb.EventBook, mode pb.SyncMode, synchronous bool) (*pb.CommandResponse, error) {
	if err := ac.Bus.Publish(ctx, cover.GetDomain(), appended); err != nil {
		// Durable append already happened, so a publish failure is logged
		// rather than returned to the caller; the book is not re-published.
		ac.logger().Warn("bus publish failed after durable append", zap.Error(err), zap.String("domain", cover.GetDomain()))
	}

	resp := &pb.CommandResponse{Events: appended}
	if !synchronous || mode == pb.SyncMode_NONE || editionSelected(cover) {
		// Editions never trigger sagas by default (dry-universe semantics);
		// sync dispatch is skipped entirely for edition-scoped writes.
		return resp, nil
	}

	if ac.Projectors != nil {
		projections, err := ac.Projectors.DispatchSync(ctx, appended)
		if err != nil {
			return nil, failedPrecondition("synchronous projector dispatch failed: %v", err)
		}
		resp.Projections = projections
	}

	if mode == pb.SyncMode_CASCADE && ac.Sagas != nil {
		root := string(cover.GetRoot().GetValue())
		if _, active := cascadeFrom(ctx); !active && ac.CascadeMaxDepth > 0 {
			ctx = withCascade(ctx, cover.GetCorrelationId(), ac.CascadeMaxDepth)
		}
		if cerr := enterCascade(ctx, cover.GetDomain(), root); cerr != nil {
			return nil, &Error{Kind: KindAborted, Message: cerr.Error(), Cause: cerr}
		}
		sagaResults, err := ac.Sagas.DispatchSync(ctx, appended)
		if err != nil {
			return nil, failedPrecondition("cascade saga dispatch failed: %v", err)
		}
		resp.SagaResults = sagaResults
	}
	return resp, nil
}

// loadHistory loads via the Edition Manager (so an edition-scoped cover
// transparently gets the edition view) and applies upcasting. asOf, when
// non-nil, bounds the load for temporal replay / dry-run.
func (ac *AggregateCoordinator) loadHistory(ctx context.Context, cover *pb.Cover, asOf *uint32) (*pb.EventBook, error) {
	book, err := ac.Editions.Load(ctx, cover, 0, asOf, ac.SnapshotReadEnabled)
	if err != nil {
		return nil, err
	}
	return ac.Upcasters.Apply(book), nil
}

func editionSelected(cover *pb.Cover) bool {
	return cover.GetEdition() != nil
}

// rejectionError maps a domain Rejection to the coordinator's gRPC error
// model: a code of "INVALID_ARGUMENT" (case-insensitive) is malformed-input
// and never compensated; anything else is a business-rule rejection that
// flows into the Rejection/Compensation Router.
func rejectionError(rej *pb.Rejection) error {
	if strings.EqualFold(rej.GetCode(), "INVALID_ARGUMENT") {
		return invalidArgument("%s", rej.GetMessage())
	}
	return failedPrecondition("%s", rej.GetMessage())
}

var _ pb.AggregateCoordinatorServiceServer = (*AggregateCoordinator)(nil)
