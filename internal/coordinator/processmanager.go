package coordinator

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/anypb"

	"github.com/angzarr-io/angzarr/internal/bus"
	"github.com/angzarr-io/angzarr/internal/storage"
	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// Internal marker type_urls recorded on a process manager's own aggregate
// stream; never shown to domain logic — purely the coordinator's own
// correlation-keyed fan-in bookkeeping per spec §4.3.
const (
	pmPrereqTypeURL     = "type.angzarr.internal/PrereqReceived"
	pmDispatchedTypeURL = "type.angzarr.internal/Dispatched"
	pmStepFailedTypeURL = "type.angzarr.internal/StepFailed"
)

// ProcessManagerCoordinator implements the correlation-keyed fan-in
// described in spec §4.3: a PM's own state is itself an aggregate, domain
// = PM name, root = correlation id. There is no dedicated gRPC surface for
// this coordinator — it is purely bus-driven.
type ProcessManagerCoordinator struct {
	Storage    storage.Adapter
	Bus        bus.Adapter
	Registry   *PMRegistry
	Aggregates aggregateDispatcher
	Router     rejectionNotifier
	MaxRetries int

	Logger *zap.Logger
}

func NewProcessManagerCoordinator(storageAdapter storage.Adapter, busAdapter bus.Adapter, reg *PMRegistry, aggregates aggregateDispatcher, maxRetries int, logger *zap.Logger) *ProcessManagerCoordinator {
	return &ProcessManagerCoordinator{Storage: storageAdapter, Bus: busAdapter, Registry: reg, Aggregates: aggregates, MaxRetries: maxRetries, Logger: logger}
}

func (pc *ProcessManagerCoordinator) logger() *zap.Logger {
	if pc.Logger != nil {
		return pc.Logger
	}
	return zap.NewNop()
}

func pmCover(pmName, correlationID string) *pb.Cover {
	return &pb.Cover{Domain: pmName, Root: &pb.UUID{Value: []byte(correlationID)}}
}

// Run subscribes to the bus for domain under the process-manager-coordinator
// consumer group and feeds every delivered book through ReceiveEvent.
func (pc *ProcessManagerCoordinator) Run(ctx context.Context, domain string) error {
	return pc.Bus.Subscribe(ctx, domain, "processmanager-coordinator", func(ctx context.Context, book *pb.EventBook) error {
		return pc.ReceiveEvent(ctx, book)
	})
}

// ReceiveEvent records a PrereqReceived page (idempotently) for every PM
// registered against the event's domain and whose PrereqKinds include the
// event's type, then checks for dispatch readiness.
func (pc *ProcessManagerCoordinator) ReceiveEvent(ctx context.Context, book *pb.EventBook) error {
	domain := book.GetCover().GetDomain()
	correlationID := book.GetCover().GetCorrelationId()
	if correlationID == "" {
		return nil // no fan-in key, nothing for any PM to key off of
	}

	for _, reg := range pc.Registry.ForDomain(domain) {
		for _, page := range book.GetPages() {
			kind := TypeSuffix(page.GetEvent().GetTypeUrl())
			if !containsStr(reg.PrereqKinds, kind) {
				continue
			}
			if err := pc.recordPrereq(ctx, reg, correlationID, kind); err != nil {
				return internalErr("record prereq: %v", err)
			}
		}
		if err := pc.maybeDispatch(ctx, reg, correlationID, book); err != nil {
			return err
		}
	}
	return nil
}

// recordPrereq appends a PrereqReceived(kind) page unless that kind has
// already been recorded for this correlation id — duplicate delivery of
// the same prerequisite is a no-op per spec §4.3's idempotency rule.
func (pc *ProcessManagerCoordinator) recordPrereq(ctx context.Context, reg *PMRegistration, correlationID, kind string) error {
	cover := pmCover(reg.Name, correlationID)
	state, err := pc.Storage.Load(ctx, cover, 0, nil, false)
	if err != nil {
		return err
	}
	if observedKinds(state).has(kind) {
		return nil
	}
	page := pb.NewEventPage(0, &anypb.Any{TypeUrl: pmPrereqTypeURL, Value: []byte(kind)}, false)
	_, err = pc.Storage.Append(ctx, cover, []*pb.EventPage{page}, state.GetNextSequence(), false)
	return err
}

// maybeDispatch checks whether every prerequisite kind has been observed
// and dispatch has not already happened; if so it runs the PM's
// Prepare/Handle protocol, records a terminal Dispatched marker plus any
// process events, and dispatches the resulting commands.
func (pc *ProcessManagerCoordinator) maybeDispatch(ctx context.Context, reg *PMRegistration, correlationID string, trigger *pb.EventBook) error {
	cover := pmCover(reg.Name, correlationID)
	state, err := pc.Storage.Load(ctx, cover, 0, nil, false)
	if err != nil {
		return internalErr("load PM state: %v", err)
	}
	kinds := observedKinds(state)
	if kinds.has(dispatchedMarker) {
		return nil // dispatched is terminal for this correlation-id stream
	}
	for _, want := range reg.PrereqKinds {
		if !kinds.has(want) {
			return nil // not all prerequisites observed yet
		}
	}

	prep, err := reg.Client.Prepare(ctx, &pb.ProcessManagerPrepareRequest{Trigger: trigger, ProcessState: state})
	if err != nil {
		return unavailable(err)
	}
	destinations := make([]*pb.EventBook, 0, len(prep.GetDestinations()))
	for _, c := range prep.GetDestinations() {
		destBook, err := pc.Storage.Load(ctx, c, 0, nil, true)
		if err != nil {
			return internalErr("load PM destination: %v", err)
		}
		destinations = append(destinations, destBook)
	}

	handled, err := reg.Client.Handle(ctx, &pb.ProcessManagerHandleRequest{Trigger: trigger, ProcessState: state, Destinations: destinations})
	if err != nil {
		return unavailable(err)
	}

	pages := []*pb.EventPage{pb.NewEventPage(0, &anypb.Any{TypeUrl: pmDispatchedTypeURL}, false)}
	if pe := handled.GetProcessEvents(); pe != nil {
		pages = append(pages, pe.GetPages()...)
	}
	reloaded, err := pc.Storage.Load(ctx, cover, 0, nil, false)
	if err != nil {
		return internalErr("reload PM state: %v", err)
	}
	if _, err := pc.Storage.Append(ctx, cover, pages, reloaded.GetNextSequence(), false); err != nil {
		return internalErr("record PM dispatch: %v", err)
	}

	for _, cmd := range handled.GetCommands() {
		if err := pc.dispatchWithRetry(ctx, cmd); err != nil {
			pc.logger().Error("PM command dispatch failed", zap.Error(err), zap.String("pm", reg.Name))
			pc.notifyRejection(ctx, reg.Name, correlationID, cmd, err)
		}
	}
	return nil
}

// notifyRejection forwards a FailedPrecondition dispatch failure to the
// Rejection Router, per spec §4.2/§4.8's PM-as-issuer routing.
func (pc *ProcessManagerCoordinator) notifyRejection(ctx context.Context, pmName, correlationID string, cmd *pb.CommandBook, dispatchErr error) {
	if pc.Router == nil {
		return
	}
	ce := AsCoordinatorError(dispatchErr)
	if ce == nil || ce.Kind != KindFailedPrecondition {
		return
	}
	notif := &pb.Notification{
		IssuerType:      "pm",
		IssuerName:      pmName,
		RejectedCommand: cmd,
		RejectionReason: ce.Message,
		CorrelationId:   correlationID,
	}
	if err := pc.Router.Route(ctx, notif); err != nil {
		pc.logger().Error("rejection routing failed", zap.Error(err), zap.String("pm", pmName))
	}
}

// ReceiveRejection is the PM's entry point for Notifications the Rejection
// Router delivers when a PM-dispatched command is rejected downstream: it
// records a StepFailed(step, reason) event per spec §4.3.
func (pc *ProcessManagerCoordinator) ReceiveRejection(ctx context.Context, pmName string, notif *pb.Notification) error {
	cover := pmCover(pmName, notif.CorrelationId)
	state, err := pc.Storage.Load(ctx, cover, 0, nil, false)
	if err != nil {
		return internalErr("load PM state: %v", err)
	}
	value := []byte(notif.SourceEventType + "\x00" + notif.RejectionReason)
	page := pb.NewEventPage(0, &anypb.Any{TypeUrl: pmStepFailedTypeURL, Value: value}, false)
	_, err = pc.Storage.Append(ctx, cover, []*pb.EventPage{page}, state.GetNextSequence(), false)
	return err
}

func (pc *ProcessManagerCoordinator) dispatchWithRetry(ctx context.Context, cmd *pb.CommandBook) error {
	backoff := 20 * time.Millisecond
	const maxBackoff = 3 * time.Second
	maxAttempts := pc.MaxRetries
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		_, err := pc.Aggregates.Handle(ctx, cmd)
		if err == nil {
			return nil
		}
		lastErr = err
		if ce := AsCoordinatorError(err); ce == nil || ce.Kind != KindAborted {
			return err
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

const dispatchedMarker = "\x00dispatched"

type kindSet map[string]struct{}

func (s kindSet) has(kind string) bool {
	_, ok := s[kind]
	return ok
}

// observedKinds scans a PM's own state stream for every PrereqReceived
// kind recorded so far, plus a synthetic dispatchedMarker entry when a
// Dispatched page is present.
func observedKinds(state *pb.EventBook) kindSet {
	set := make(kindSet)
	for _, p := range state.GetPages() {
		event := p.GetEvent()
		switch event.GetTypeUrl() {
		case pmPrereqTypeURL:
			set[string(event.GetValue())] = struct{}{}
		case pmDispatchedTypeURL:
			set[dispatchedMarker] = struct{}{}
		}
	}
	return set
}

func containsStr(ss []string, s string) bool {
	for _, v := range ss {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
