package coordinator

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/anypb"

	"github.com/angzarr-io/angzarr/internal/registry"
	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// systemRevocationTypeURL tags the generic marker event the router persists
// when no compensation handler matches a rejection.
const systemRevocationTypeURL = "type.angzarr.internal/SystemRevocation"

// CompensationHandler computes the compensation events for a rejected
// command; a nil EventBook means "acknowledged, nothing to persist".
type CompensationHandler func(ctx context.Context, notif *pb.Notification) (*pb.EventBook, error)

// eventRecorder is the subset of AggregateCoordinator the router persists
// compensation events through; *AggregateCoordinator satisfies it via its
// Record method.
type eventRecorder interface {
	Record(ctx context.Context, book *pb.EventBook) (*pb.CommandResponse, error)
}

// pmRejectionReceiver is the subset of ProcessManagerCoordinator the router
// delivers PM-issuer notifications to.
type pmRejectionReceiver interface {
	ReceiveRejection(ctx context.Context, pmName string, notif *pb.Notification) error
}

// rejectionNotifier is the Saga/Process-Manager coordinators' view of the
// Rejection Router: the only capability they need is forwarding a
// downstream rejection. *RejectionRouter satisfies it structurally.
type rejectionNotifier interface {
	Route(ctx context.Context, notif *pb.Notification) error
}

// RejectionRouter implements spec §4.8: FailedPrecondition rejections on a
// dispatched command are wrapped as a Notification and routed first to the
// PM issuer (if any), then to the source aggregate for compensation.
// InvalidArgument rejections never reach this router — the coordinator
// surfaces those directly to the original caller.
type RejectionRouter struct {
	mu       sync.RWMutex
	handlers map[string]CompensationHandler // "domain\x00command" -> handler

	PMs       pmRejectionReceiver
	Aggregate eventRecorder

	Logger *zap.Logger
}

func NewRejectionRouter(aggregate eventRecorder, pms pmRejectionReceiver, logger *zap.Logger) *RejectionRouter {
	return &RejectionRouter{handlers: make(map[string]CompensationHandler), Aggregate: aggregate, PMs: pms, Logger: logger}
}

func (r *RejectionRouter) logger() *zap.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop()
}

// RegisterCompensation registers a compensation handler for commands of the
// given type_url suffix issued against domain.
func (r *RejectionRouter) RegisterCompensation(domain, command string, handler CompensationHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[registry.CompensationKey(domain, command)] = handler
}

func (r *RejectionRouter) lookup(domain, command string) (CompensationHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[registry.CompensationKey(domain, command)]
	return h, ok
}

// Route delivers notif to the PM issuer (when issuer_type is "pm") and then
// to the source aggregate's registered compensation handler, falling back
// to a generic SystemRevocation marker when none matches.
func (r *RejectionRouter) Route(ctx context.Context, notif *pb.Notification) error {
	if r.PMs != nil && notif.IssuerType == "pm" {
		if err := r.PMs.ReceiveRejection(ctx, notif.IssuerName, notif); err != nil {
			r.logger().Error("PM rejection delivery failed", zap.Error(err), zap.String("pm", notif.IssuerName))
		}
	}

	cover := notif.RejectedCommand.GetCover()
	domain := cover.GetDomain()
	var command string
	if pages := notif.RejectedCommand.GetPages(); len(pages) > 0 {
		command = TypeSuffix(pages[0].GetCommand().GetTypeUrl())
	}

	handler, ok := r.lookup(domain, command)
	if !ok {
		return r.recordSystemRevocation(ctx, cover, notif)
	}
	events, err := handler(ctx, notif)
	if err != nil {
		return internalErr("compensation handler failed: %v", err)
	}
	if events == nil {
		return nil
	}
	if r.Aggregate == nil {
		return nil
	}
	_, err = r.Aggregate.Record(ctx, events)
	return err
}

func (r *RejectionRouter) recordSystemRevocation(ctx context.Context, cover *pb.Cover, notif *pb.Notification) error {
	if r.Aggregate == nil || cover.GetDomain() == "" {
		return nil
	}
	value, err := proto.Marshal(protoadapt.MessageV2(notif))
	if err != nil {
		return internalErr("marshal rejection notification: %v", err)
	}
	payload := &anypb.Any{TypeUrl: systemRevocationTypeURL, Value: value}
	book := &pb.EventBook{
		Cover: cover,
		Pages: []*pb.EventPage{pb.NewEventPage(0, payload, true)},
	}
	_, err = r.Aggregate.Record(ctx, book)
	return err
}
