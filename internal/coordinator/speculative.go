package coordinator

import (
	"context"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// dryRunHandler is the Aggregate Coordinator's read-only pipeline variant;
// SpeculativeCoordinator.DryRunCommand delegates to it directly rather than
// re-implementing history-load-and-call-domain-logic a second time.
type dryRunHandler interface {
	DryRunHandle(ctx context.Context, req *pb.DryRunRequest) (*pb.CommandResponse, error)
}

// SpeculativeCoordinator implements SpeculativeServiceServer: every method
// loads history/state, calls out to domain logic or a registered
// saga/projector/PM handler, and returns the computed result without ever
// appending, publishing, or recording — per spec §4.10, a side-effect-free
// sink for the pipeline it otherwise shares with the live coordinators.
type SpeculativeCoordinator struct {
	pb.UnimplementedSpeculativeServiceServer

	Aggregates dryRunHandler
	Projectors *ProjectorRegistry
	Sagas      *SagaRegistry
	PMs        *PMRegistry
}

func NewSpeculativeCoordinator(aggregates dryRunHandler, projectors *ProjectorRegistry, sagas *SagaRegistry, pms *PMRegistry) *SpeculativeCoordinator {
	return &SpeculativeCoordinator{Aggregates: aggregates, Projectors: projectors, Sagas: sagas, PMs: pms}
}

// DryRunCommand runs a command through domain logic against loaded history
// (optionally as-of a past sequence) without appending or publishing.
func (sp *SpeculativeCoordinator) DryRunCommand(ctx context.Context, req *pb.DryRunRequest) (*pb.CommandResponse, error) {
	return sp.Aggregates.DryRunHandle(ctx, req)
}

// SpeculateProjector invokes the named projector's read-only handler
// directly; no position advance, no external read-model write.
func (sp *SpeculativeCoordinator) SpeculateProjector(ctx context.Context, req *pb.SpeculateProjectorRequest) (*pb.Projection, error) {
	reg, ok := sp.Projectors.Lookup(req.ProjectorName)
	if !ok {
		return nil, invalidArgument("no projector registered with name %q", req.ProjectorName)
	}
	return reg.Client.HandleSpeculative(ctx, req.Events)
}

// SpeculateSaga runs every saga subscribed to the source event's domain
// through Execute with the caller-supplied destinations, without
// persisting a checkpoint or dispatching the resulting commands. Decision
// (documented in the design ledger): SpeculateSagaRequest names no saga, so
// every subscribed saga runs and their commands are concatenated.
func (sp *SpeculativeCoordinator) SpeculateSaga(ctx context.Context, req *pb.SpeculateSagaRequest) (*pb.SagaResponse, error) {
	domain := req.Source.GetCover().GetDomain()
	var commands []*pb.CommandBook
	for _, reg := range sp.Sagas.ForDomain(domain) {
		if !anyPageMatches(reg, req.Source.GetPages(), 0) {
			continue
		}
		resp, err := reg.Client.Execute(ctx, &pb.SagaExecuteRequest{Source: req.Source, Destinations: req.Destinations})
		if err != nil {
			return nil, unavailable(err)
		}
		commands = append(commands, resp.GetCommands()...)
	}
	return &pb.SagaResponse{Commands: commands}, nil
}

// SpeculateProcessManager invokes one PM registered for the trigger's
// domain, without recording prerequisites or a dispatch marker. The request
// names no PM, so the first entry PMRegistry.ForDomain returns is used; that
// order is not defined, and the PM's prerequisite kinds are not checked.
func (sp *SpeculativeCoordinator) SpeculateProcessManager(ctx context.Context, req *pb.SpeculatePmRequest) (*pb.ProcessManagerHandleResponse, error) {
	domain := req.Trigger.GetCover().GetDomain()
	regs := sp.PMs.ForDomain(domain)
	if len(regs) == 0 {
		return nil, invalidArgument("no process manager registered for domain %q", domain)
	}
	return regs[0].Client.Handle(ctx, &pb.ProcessManagerHandleRequest{
		Trigger:      req.Trigger,
		ProcessState: req.ProcessState,
		Destinations: req.Destinations,
	})
}

var _ pb.SpeculativeServiceServer = (*SpeculativeCoordinator)(nil)
