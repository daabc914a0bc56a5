package angzarr

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ============================================================================
// AggregateService — domain-side BusinessLogic (spec §6's `BusinessLogic`).
// ============================================================================

type AggregateServiceServer interface {
	Handle(context.Context, *ContextualCommand) (*BusinessResponse, error)
	HandleSync(context.Context, *ContextualCommand) (*BusinessResponse, error)
	Replay(context.Context, *ReplayRequest) (*ReplayResponse, error)
}

// UnimplementedAggregateServiceServer must be embedded by every
// implementation to stay forward-compatible with new methods.
type UnimplementedAggregateServiceServer struct{}

func (UnimplementedAggregateServiceServer) Handle(context.Context, *ContextualCommand) (*BusinessResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Handle not implemented")
}
func (UnimplementedAggregateServiceServer) HandleSync(context.Context, *ContextualCommand) (*BusinessResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method HandleSync not implemented")
}
func (UnimplementedAggregateServiceServer) Replay(context.Context, *ReplayRequest) (*ReplayResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Replay not implemented")
}

func RegisterAggregateServiceServer(s grpc.ServiceRegistrar, srv AggregateServiceServer) {
	s.RegisterService(&aggregateServiceDesc, srv)
}

type AggregateServiceClient interface {
	Handle(ctx context.Context, in *ContextualCommand, opts ...grpc.CallOption) (*BusinessResponse, error)
	HandleSync(ctx context.Context, in *ContextualCommand, opts ...grpc.CallOption) (*BusinessResponse, error)
	Replay(ctx context.Context, in *ReplayRequest, opts ...grpc.CallOption) (*ReplayResponse, error)
}

type aggregateServiceClient struct{ cc grpc.ClientConnInterface }

func NewAggregateServiceClient(cc grpc.ClientConnInterface) AggregateServiceClient {
	return &aggregateServiceClient{cc}
}

func (c *aggregateServiceClient) Handle(ctx context.Context, in *ContextualCommand, opts ...grpc.CallOption) (*BusinessResponse, error) {
	out := new(BusinessResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.AggregateService/Handle", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
func (c *aggregateServiceClient) HandleSync(ctx context.Context, in *ContextualCommand, opts ...grpc.CallOption) (*BusinessResponse, error) {
	out := new(BusinessResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.AggregateService/HandleSync", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
func (c *aggregateServiceClient) Replay(ctx context.Context, in *ReplayRequest, opts ...grpc.CallOption) (*ReplayResponse, error) {
	out := new(ReplayResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.AggregateService/Replay", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

var aggregateServiceDesc = grpc.ServiceDesc{
	ServiceName: "angzarr.AggregateService",
	HandlerType: (*AggregateServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Handle", Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(ContextualCommand)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return srv.(AggregateServiceServer).Handle(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/angzarr.AggregateService/Handle"}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(AggregateServiceServer).Handle(ctx, req.(*ContextualCommand))
			}
			return interceptor(ctx, in, info, handler)
		}},
		{MethodName: "HandleSync", Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(ContextualCommand)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return srv.(AggregateServiceServer).HandleSync(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/angzarr.AggregateService/HandleSync"}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(AggregateServiceServer).HandleSync(ctx, req.(*ContextualCommand))
			}
			return interceptor(ctx, in, info, handler)
		}},
		{MethodName: "Replay", Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(ReplayRequest)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return srv.(AggregateServiceServer).Replay(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/angzarr.AggregateService/Replay"}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(AggregateServiceServer).Replay(ctx, req.(*ReplayRequest))
			}
			return interceptor(ctx, in, info, handler)
		}},
	},
	Metadata: "angzarr/aggregate.proto",
}

// ============================================================================
// AggregateCoordinatorService — coordinator-facing, spec §6.
// ============================================================================

type AggregateCoordinatorServiceServer interface {
	Handle(context.Context, *CommandBook) (*CommandResponse, error)
	HandleSync(context.Context, *SyncCommandBook) (*CommandResponse, error)
	Record(context.Context, *EventBook) (*CommandResponse, error)
	DryRunHandle(context.Context, *DryRunRequest) (*CommandResponse, error)
}

type UnimplementedAggregateCoordinatorServiceServer struct{}

func (UnimplementedAggregateCoordinatorServiceServer) Handle(context.Context, *CommandBook) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Handle not implemented")
}
func (UnimplementedAggregateCoordinatorServiceServer) HandleSync(context.Context, *SyncCommandBook) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method HandleSync not implemented")
}
func (UnimplementedAggregateCoordinatorServiceServer) Record(context.Context, *EventBook) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Record not implemented")
}
func (UnimplementedAggregateCoordinatorServiceServer) DryRunHandle(context.Context, *DryRunRequest) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DryRunHandle not implemented")
}

func RegisterAggregateCoordinatorServiceServer(s grpc.ServiceRegistrar, srv AggregateCoordinatorServiceServer) {
	s.RegisterService(&aggregateCoordinatorServiceDesc, srv)
}

type AggregateCoordinatorServiceClient interface {
	Handle(ctx context.Context, in *CommandBook, opts ...grpc.CallOption) (*CommandResponse, error)
	HandleSync(ctx context.Context, in *SyncCommandBook, opts ...grpc.CallOption) (*CommandResponse, error)
	Record(ctx context.Context, in *EventBook, opts ...grpc.CallOption) (*CommandResponse, error)
	DryRunHandle(ctx context.Context, in *DryRunRequest, opts ...grpc.CallOption) (*CommandResponse, error)
}

type aggregateCoordinatorServiceClient struct{ cc grpc.ClientConnInterface }

func NewAggregateCoordinatorServiceClient(cc grpc.ClientConnInterface) AggregateCoordinatorServiceClient {
	return &aggregateCoordinatorServiceClient{cc}
}

func (c *aggregateCoordinatorServiceClient) Handle(ctx context.Context, in *CommandBook, opts ...grpc.CallOption) (*CommandResponse, error) {
	out := new(CommandResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.AggregateCoordinatorService/Handle", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
func (c *aggregateCoordinatorServiceClient) HandleSync(ctx context.Context, in *SyncCommandBook, opts ...grpc.CallOption) (*CommandResponse, error) {
	out := new(CommandResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.AggregateCoordinatorService/HandleSync", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
func (c *aggregateCoordinatorServiceClient) Record(ctx context.Context, in *EventBook, opts ...grpc.CallOption) (*CommandResponse, error) {
	out := new(CommandResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.AggregateCoordinatorService/Record", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
func (c *aggregateCoordinatorServiceClient) DryRunHandle(ctx context.Context, in *DryRunRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	out := new(CommandResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.AggregateCoordinatorService/DryRunHandle", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

var aggregateCoordinatorServiceDesc = grpc.ServiceDesc{
	ServiceName: "angzarr.AggregateCoordinatorService",
	HandlerType: (*AggregateCoordinatorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Handle", "/angzarr.AggregateCoordinatorService/Handle", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(AggregateCoordinatorServiceServer).Handle(ctx, req.(*CommandBook))
			}
		}, func() interface{} { return new(CommandBook) }),
		unaryMethod("HandleSync", "/angzarr.AggregateCoordinatorService/HandleSync", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(AggregateCoordinatorServiceServer).HandleSync(ctx, req.(*SyncCommandBook))
			}
		}, func() interface{} { return new(SyncCommandBook) }),
		unaryMethod("Record", "/angzarr.AggregateCoordinatorService/Record", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(AggregateCoordinatorServiceServer).Record(ctx, req.(*EventBook))
			}
		}, func() interface{} { return new(EventBook) }),
		unaryMethod("DryRunHandle", "/angzarr.AggregateCoordinatorService/DryRunHandle", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(AggregateCoordinatorServiceServer).DryRunHandle(ctx, req.(*DryRunRequest))
			}
		}, func() interface{} { return new(DryRunRequest) }),
	},
	Metadata: "angzarr/aggregate_coordinator.proto",
}

// unaryMethod builds a grpc.MethodDesc for a single-request/single-response
// RPC, factoring out the decode/interceptor boilerplate every method here
// would otherwise repeat.
func unaryMethod(name, fullMethod string, call func(srv interface{}) func(context.Context, interface{}) (interface{}, error), newReq func() interface{}) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			fn := call(srv)
			if interceptor == nil {
				return fn(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return fn(ctx, req)
			})
		},
	}
}

// ============================================================================
// SagaService — domain-side two-phase saga protocol.
// ============================================================================

type SagaServiceServer interface {
	Prepare(context.Context, *SagaPrepareRequest) (*SagaPrepareResponse, error)
	Execute(context.Context, *SagaExecuteRequest) (*SagaResponse, error)
}

type UnimplementedSagaServiceServer struct{}

func (UnimplementedSagaServiceServer) Prepare(context.Context, *SagaPrepareRequest) (*SagaPrepareResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Prepare not implemented")
}
func (UnimplementedSagaServiceServer) Execute(context.Context, *SagaExecuteRequest) (*SagaResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Execute not implemented")
}

func RegisterSagaServiceServer(s grpc.ServiceRegistrar, srv SagaServiceServer) {
	s.RegisterService(&sagaServiceDesc, srv)
}

type SagaServiceClient interface {
	Prepare(ctx context.Context, in *SagaPrepareRequest, opts ...grpc.CallOption) (*SagaPrepareResponse, error)
	Execute(ctx context.Context, in *SagaExecuteRequest, opts ...grpc.CallOption) (*SagaResponse, error)
}

type sagaServiceClient struct{ cc grpc.ClientConnInterface }

func NewSagaServiceClient(cc grpc.ClientConnInterface) SagaServiceClient { return &sagaServiceClient{cc} }

func (c *sagaServiceClient) Prepare(ctx context.Context, in *SagaPrepareRequest, opts ...grpc.CallOption) (*SagaPrepareResponse, error) {
	out := new(SagaPrepareResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.SagaService/Prepare", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
func (c *sagaServiceClient) Execute(ctx context.Context, in *SagaExecuteRequest, opts ...grpc.CallOption) (*SagaResponse, error) {
	out := new(SagaResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.SagaService/Execute", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

var sagaServiceDesc = grpc.ServiceDesc{
	ServiceName: "angzarr.SagaService",
	HandlerType: (*SagaServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Prepare", "/angzarr.SagaService/Prepare", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(SagaServiceServer).Prepare(ctx, req.(*SagaPrepareRequest))
			}
		}, func() interface{} { return new(SagaPrepareRequest) }),
		unaryMethod("Execute", "/angzarr.SagaService/Execute", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(SagaServiceServer).Execute(ctx, req.(*SagaExecuteRequest))
			}
		}, func() interface{} { return new(SagaExecuteRequest) }),
	},
	Metadata: "angzarr/saga.proto",
}

// ============================================================================
// SagaCoordinatorService — the coordinator-facing shape from spec §6.
// ============================================================================

type SagaCoordinatorServiceServer interface {
	Handle(context.Context, *EventBook) (*Empty, error)
	HandleSync(context.Context, *EventBook) (*SagaResponse, error)
}

type UnimplementedSagaCoordinatorServiceServer struct{}

func (UnimplementedSagaCoordinatorServiceServer) Handle(context.Context, *EventBook) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Handle not implemented")
}
func (UnimplementedSagaCoordinatorServiceServer) HandleSync(context.Context, *EventBook) (*SagaResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method HandleSync not implemented")
}

func RegisterSagaCoordinatorServiceServer(s grpc.ServiceRegistrar, srv SagaCoordinatorServiceServer) {
	s.RegisterService(&sagaCoordinatorServiceDesc, srv)
}

var sagaCoordinatorServiceDesc = grpc.ServiceDesc{
	ServiceName: "angzarr.SagaCoordinatorService",
	HandlerType: (*SagaCoordinatorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Handle", "/angzarr.SagaCoordinatorService/Handle", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(SagaCoordinatorServiceServer).Handle(ctx, req.(*EventBook))
			}
		}, func() interface{} { return new(EventBook) }),
		unaryMethod("HandleSync", "/angzarr.SagaCoordinatorService/HandleSync", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(SagaCoordinatorServiceServer).HandleSync(ctx, req.(*EventBook))
			}
		}, func() interface{} { return new(EventBook) }),
	},
	Metadata: "angzarr/saga_coordinator.proto",
}

// ============================================================================
// ProjectorService — domain-side read-model handler.
// ============================================================================

type ProjectorServiceServer interface {
	Handle(context.Context, *EventBook) (*Projection, error)
	HandleSpeculative(context.Context, *EventBook) (*Projection, error)
}

type UnimplementedProjectorServiceServer struct{}

func (UnimplementedProjectorServiceServer) Handle(context.Context, *EventBook) (*Projection, error) {
	return nil, status.Error(codes.Unimplemented, "method Handle not implemented")
}
func (UnimplementedProjectorServiceServer) HandleSpeculative(context.Context, *EventBook) (*Projection, error) {
	return nil, status.Error(codes.Unimplemented, "method HandleSpeculative not implemented")
}

func RegisterProjectorServiceServer(s grpc.ServiceRegistrar, srv ProjectorServiceServer) {
	s.RegisterService(&projectorServiceDesc, srv)
}

type ProjectorServiceClient interface {
	Handle(ctx context.Context, in *EventBook, opts ...grpc.CallOption) (*Projection, error)
	HandleSpeculative(ctx context.Context, in *EventBook, opts ...grpc.CallOption) (*Projection, error)
}

type projectorServiceClient struct{ cc grpc.ClientConnInterface }

func NewProjectorServiceClient(cc grpc.ClientConnInterface) ProjectorServiceClient {
	return &projectorServiceClient{cc}
}

func (c *projectorServiceClient) Handle(ctx context.Context, in *EventBook, opts ...grpc.CallOption) (*Projection, error) {
	out := new(Projection)
	if err := c.cc.Invoke(ctx, "/angzarr.ProjectorService/Handle", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
func (c *projectorServiceClient) HandleSpeculative(ctx context.Context, in *EventBook, opts ...grpc.CallOption) (*Projection, error) {
	out := new(Projection)
	if err := c.cc.Invoke(ctx, "/angzarr.ProjectorService/HandleSpeculative", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

var projectorServiceDesc = grpc.ServiceDesc{
	ServiceName: "angzarr.ProjectorService",
	HandlerType: (*ProjectorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Handle", "/angzarr.ProjectorService/Handle", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(ProjectorServiceServer).Handle(ctx, req.(*EventBook))
			}
		}, func() interface{} { return new(EventBook) }),
		unaryMethod("HandleSpeculative", "/angzarr.ProjectorService/HandleSpeculative", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(ProjectorServiceServer).HandleSpeculative(ctx, req.(*EventBook))
			}
		}, func() interface{} { return new(EventBook) }),
	},
	Metadata: "angzarr/projector.proto",
}

// ============================================================================
// ProjectorCoordinatorService — coordinator-facing shape from spec §6.
// ============================================================================

type ProjectorCoordinatorServiceServer interface {
	Handle(context.Context, *EventBook) (*Empty, error)
	HandleSync(context.Context, *EventBook) (*Projection, error)
}

type UnimplementedProjectorCoordinatorServiceServer struct{}

func (UnimplementedProjectorCoordinatorServiceServer) Handle(context.Context, *EventBook) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Handle not implemented")
}
func (UnimplementedProjectorCoordinatorServiceServer) HandleSync(context.Context, *EventBook) (*Projection, error) {
	return nil, status.Error(codes.Unimplemented, "method HandleSync not implemented")
}

func RegisterProjectorCoordinatorServiceServer(s grpc.ServiceRegistrar, srv ProjectorCoordinatorServiceServer) {
	s.RegisterService(&projectorCoordinatorServiceDesc, srv)
}

var projectorCoordinatorServiceDesc = grpc.ServiceDesc{
	ServiceName: "angzarr.ProjectorCoordinatorService",
	HandlerType: (*ProjectorCoordinatorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Handle", "/angzarr.ProjectorCoordinatorService/Handle", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(ProjectorCoordinatorServiceServer).Handle(ctx, req.(*EventBook))
			}
		}, func() interface{} { return new(EventBook) }),
		unaryMethod("HandleSync", "/angzarr.ProjectorCoordinatorService/HandleSync", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(ProjectorCoordinatorServiceServer).HandleSync(ctx, req.(*EventBook))
			}
		}, func() interface{} { return new(EventBook) }),
	},
	Metadata: "angzarr/projector_coordinator.proto",
}

// ============================================================================
// ProcessManagerService — domain-side fan-in handler.
// ============================================================================

type ProcessManagerServiceServer interface {
	Prepare(context.Context, *ProcessManagerPrepareRequest) (*ProcessManagerPrepareResponse, error)
	Handle(context.Context, *ProcessManagerHandleRequest) (*ProcessManagerHandleResponse, error)
}

type UnimplementedProcessManagerServiceServer struct{}

func (UnimplementedProcessManagerServiceServer) Prepare(context.Context, *ProcessManagerPrepareRequest) (*ProcessManagerPrepareResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Prepare not implemented")
}
func (UnimplementedProcessManagerServiceServer) Handle(context.Context, *ProcessManagerHandleRequest) (*ProcessManagerHandleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Handle not implemented")
}

func RegisterProcessManagerServiceServer(s grpc.ServiceRegistrar, srv ProcessManagerServiceServer) {
	s.RegisterService(&processManagerServiceDesc, srv)
}

type ProcessManagerServiceClient interface {
	Prepare(ctx context.Context, in *ProcessManagerPrepareRequest, opts ...grpc.CallOption) (*ProcessManagerPrepareResponse, error)
	Handle(ctx context.Context, in *ProcessManagerHandleRequest, opts ...grpc.CallOption) (*ProcessManagerHandleResponse, error)
}

type processManagerServiceClient struct{ cc grpc.ClientConnInterface }

func NewProcessManagerServiceClient(cc grpc.ClientConnInterface) ProcessManagerServiceClient {
	return &processManagerServiceClient{cc}
}

func (c *processManagerServiceClient) Prepare(ctx context.Context, in *ProcessManagerPrepareRequest, opts ...grpc.CallOption) (*ProcessManagerPrepareResponse, error) {
	out := new(ProcessManagerPrepareResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.ProcessManagerService/Prepare", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
func (c *processManagerServiceClient) Handle(ctx context.Context, in *ProcessManagerHandleRequest, opts ...grpc.CallOption) (*ProcessManagerHandleResponse, error) {
	out := new(ProcessManagerHandleResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.ProcessManagerService/Handle", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

var processManagerServiceDesc = grpc.ServiceDesc{
	ServiceName: "angzarr.ProcessManagerService",
	HandlerType: (*ProcessManagerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Prepare", "/angzarr.ProcessManagerService/Prepare", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(ProcessManagerServiceServer).Prepare(ctx, req.(*ProcessManagerPrepareRequest))
			}
		}, func() interface{} { return new(ProcessManagerPrepareRequest) }),
		unaryMethod("Handle", "/angzarr.ProcessManagerService/Handle", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(ProcessManagerServiceServer).Handle(ctx, req.(*ProcessManagerHandleRequest))
			}
		}, func() interface{} { return new(ProcessManagerHandleRequest) }),
	},
	Metadata: "angzarr/process_manager.proto",
}

// ============================================================================
// SpeculativeService — dedicated dry-run/what-if RPC surface.
// ============================================================================

type SpeculativeServiceServer interface {
	DryRunCommand(context.Context, *DryRunRequest) (*CommandResponse, error)
	SpeculateProjector(context.Context, *SpeculateProjectorRequest) (*Projection, error)
	SpeculateSaga(context.Context, *SpeculateSagaRequest) (*SagaResponse, error)
	SpeculateProcessManager(context.Context, *SpeculatePmRequest) (*ProcessManagerHandleResponse, error)
}

type UnimplementedSpeculativeServiceServer struct{}

func (UnimplementedSpeculativeServiceServer) DryRunCommand(context.Context, *DryRunRequest) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DryRunCommand not implemented")
}
func (UnimplementedSpeculativeServiceServer) SpeculateProjector(context.Context, *SpeculateProjectorRequest) (*Projection, error) {
	return nil, status.Error(codes.Unimplemented, "method SpeculateProjector not implemented")
}
func (UnimplementedSpeculativeServiceServer) SpeculateSaga(context.Context, *SpeculateSagaRequest) (*SagaResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SpeculateSaga not implemented")
}
func (UnimplementedSpeculativeServiceServer) SpeculateProcessManager(context.Context, *SpeculatePmRequest) (*ProcessManagerHandleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SpeculateProcessManager not implemented")
}

func RegisterSpeculativeServiceServer(s grpc.ServiceRegistrar, srv SpeculativeServiceServer) {
	s.RegisterService(&speculativeServiceDesc, srv)
}

type SpeculativeServiceClient interface {
	DryRunCommand(ctx context.Context, in *DryRunRequest, opts ...grpc.CallOption) (*CommandResponse, error)
	SpeculateProjector(ctx context.Context, in *SpeculateProjectorRequest, opts ...grpc.CallOption) (*Projection, error)
	SpeculateSaga(ctx context.Context, in *SpeculateSagaRequest, opts ...grpc.CallOption) (*SagaResponse, error)
	SpeculateProcessManager(ctx context.Context, in *SpeculatePmRequest, opts ...grpc.CallOption) (*ProcessManagerHandleResponse, error)
}

type speculativeServiceClient struct{ cc grpc.ClientConnInterface }

func NewSpeculativeServiceClient(cc grpc.ClientConnInterface) SpeculativeServiceClient {
	return &speculativeServiceClient{cc}
}

func (c *speculativeServiceClient) DryRunCommand(ctx context.Context, in *DryRunRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	out := new(CommandResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.SpeculativeService/DryRunCommand", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
func (c *speculativeServiceClient) SpeculateProjector(ctx context.Context, in *SpeculateProjectorRequest, opts ...grpc.CallOption) (*Projection, error) {
	out := new(Projection)
	if err := c.cc.Invoke(ctx, "/angzarr.SpeculativeService/SpeculateProjector", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
func (c *speculativeServiceClient) SpeculateSaga(ctx context.Context, in *SpeculateSagaRequest, opts ...grpc.CallOption) (*SagaResponse, error) {
	out := new(SagaResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.SpeculativeService/SpeculateSaga", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
func (c *speculativeServiceClient) SpeculateProcessManager(ctx context.Context, in *SpeculatePmRequest, opts ...grpc.CallOption) (*ProcessManagerHandleResponse, error) {
	out := new(ProcessManagerHandleResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.SpeculativeService/SpeculateProcessManager", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

var speculativeServiceDesc = grpc.ServiceDesc{
	ServiceName: "angzarr.SpeculativeService",
	HandlerType: (*SpeculativeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("DryRunCommand", "/angzarr.SpeculativeService/DryRunCommand", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(SpeculativeServiceServer).DryRunCommand(ctx, req.(*DryRunRequest))
			}
		}, func() interface{} { return new(DryRunRequest) }),
		unaryMethod("SpeculateProjector", "/angzarr.SpeculativeService/SpeculateProjector", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(SpeculativeServiceServer).SpeculateProjector(ctx, req.(*SpeculateProjectorRequest))
			}
		}, func() interface{} { return new(SpeculateProjectorRequest) }),
		unaryMethod("SpeculateSaga", "/angzarr.SpeculativeService/SpeculateSaga", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(SpeculativeServiceServer).SpeculateSaga(ctx, req.(*SpeculateSagaRequest))
			}
		}, func() interface{} { return new(SpeculateSagaRequest) }),
		unaryMethod("SpeculateProcessManager", "/angzarr.SpeculativeService/SpeculateProcessManager", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(SpeculativeServiceServer).SpeculateProcessManager(ctx, req.(*SpeculatePmRequest))
			}
		}, func() interface{} { return new(SpeculatePmRequest) }),
	},
	Metadata: "angzarr/speculative.proto",
}

// ============================================================================
// EventQueryService — read-side query surface over a single aggregate's
// event stream, plus cross-aggregate root enumeration.
// ============================================================================

type EventQueryServiceServer interface {
	GetEventBook(context.Context, *Query) (*EventBook, error)
	GetEvents(*Query, EventQueryService_GetEventsServer) error
	Synchronize(EventQueryService_SynchronizeServer) error
	GetAggregateRoots(*Empty, EventQueryService_GetAggregateRootsServer) error
}

type UnimplementedEventQueryServiceServer struct{}

func (UnimplementedEventQueryServiceServer) GetEventBook(context.Context, *Query) (*EventBook, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEventBook not implemented")
}
func (UnimplementedEventQueryServiceServer) GetEvents(*Query, EventQueryService_GetEventsServer) error {
	return status.Error(codes.Unimplemented, "method GetEvents not implemented")
}
func (UnimplementedEventQueryServiceServer) Synchronize(EventQueryService_SynchronizeServer) error {
	return status.Error(codes.Unimplemented, "method Synchronize not implemented")
}
func (UnimplementedEventQueryServiceServer) GetAggregateRoots(*Empty, EventQueryService_GetAggregateRootsServer) error {
	return status.Error(codes.Unimplemented, "method GetAggregateRoots not implemented")
}

func RegisterEventQueryServiceServer(s grpc.ServiceRegistrar, srv EventQueryServiceServer) {
	s.RegisterService(&eventQueryServiceDesc, srv)
}

// --- GetEvents: server-streaming EventPage ---

type EventQueryService_GetEventsServer interface {
	Send(*EventPage) error
	grpc.ServerStream
}

type eventQueryServiceGetEventsServer struct{ grpc.ServerStream }

func (s *eventQueryServiceGetEventsServer) Send(m *EventPage) error { return s.ServerStream.SendMsg(m) }

type EventQueryService_GetEventsClient interface {
	Recv() (*EventPage, error)
	grpc.ClientStream
}

type eventQueryServiceGetEventsClient struct{ grpc.ClientStream }

func (c *eventQueryServiceGetEventsClient) Recv() (*EventPage, error) {
	m := new(EventPage)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// --- Synchronize: bidi-streaming CommandPage in, EventPage out ---

type EventQueryService_SynchronizeServer interface {
	Send(*EventPage) error
	Recv() (*CommandPage, error)
	grpc.ServerStream
}

type eventQueryServiceSynchronizeServer struct{ grpc.ServerStream }

func (s *eventQueryServiceSynchronizeServer) Send(m *EventPage) error { return s.ServerStream.SendMsg(m) }
func (s *eventQueryServiceSynchronizeServer) Recv() (*CommandPage, error) {
	m := new(CommandPage)
	if err := s.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type EventQueryService_SynchronizeClient interface {
	Send(*CommandPage) error
	Recv() (*EventPage, error)
	grpc.ClientStream
}

type eventQueryServiceSynchronizeClient struct{ grpc.ClientStream }

func (c *eventQueryServiceSynchronizeClient) Send(m *CommandPage) error { return c.ClientStream.SendMsg(m) }
func (c *eventQueryServiceSynchronizeClient) Recv() (*EventPage, error) {
	m := new(EventPage)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// --- GetAggregateRoots: server-streaming AggregateRoot ---

type EventQueryService_GetAggregateRootsServer interface {
	Send(*AggregateRoot) error
	grpc.ServerStream
}

type eventQueryServiceGetAggregateRootsServer struct{ grpc.ServerStream }

func (s *eventQueryServiceGetAggregateRootsServer) Send(m *AggregateRoot) error {
	return s.ServerStream.SendMsg(m)
}

type EventQueryService_GetAggregateRootsClient interface {
	Recv() (*AggregateRoot, error)
	grpc.ClientStream
}

type eventQueryServiceGetAggregateRootsClient struct{ grpc.ClientStream }

func (c *eventQueryServiceGetAggregateRootsClient) Recv() (*AggregateRoot, error) {
	m := new(AggregateRoot)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type EventQueryServiceClient interface {
	GetEventBook(ctx context.Context, in *Query, opts ...grpc.CallOption) (*EventBook, error)
	GetEvents(ctx context.Context, in *Query, opts ...grpc.CallOption) (EventQueryService_GetEventsClient, error)
	Synchronize(ctx context.Context, opts ...grpc.CallOption) (EventQueryService_SynchronizeClient, error)
	GetAggregateRoots(ctx context.Context, in *Empty, opts ...grpc.CallOption) (EventQueryService_GetAggregateRootsClient, error)
}

type eventQueryServiceClient struct{ cc grpc.ClientConnInterface }

func NewEventQueryServiceClient(cc grpc.ClientConnInterface) EventQueryServiceClient {
	return &eventQueryServiceClient{cc}
}

func (c *eventQueryServiceClient) GetEventBook(ctx context.Context, in *Query, opts ...grpc.CallOption) (*EventBook, error) {
	out := new(EventBook)
	if err := c.cc.Invoke(ctx, "/angzarr.EventQueryService/GetEventBook", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *eventQueryServiceClient) GetEvents(ctx context.Context, in *Query, opts ...grpc.CallOption) (EventQueryService_GetEventsClient, error) {
	stream, err := c.cc.NewStream(ctx, &eventQueryServiceDesc.Streams[0], "/angzarr.EventQueryService/GetEvents", opts...)
	if err != nil {
		return nil, err
	}
	x := &eventQueryServiceGetEventsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *eventQueryServiceClient) Synchronize(ctx context.Context, opts ...grpc.CallOption) (EventQueryService_SynchronizeClient, error) {
	stream, err := c.cc.NewStream(ctx, &eventQueryServiceDesc.Streams[1], "/angzarr.EventQueryService/Synchronize", opts...)
	if err != nil {
		return nil, err
	}
	return &eventQueryServiceSynchronizeClient{stream}, nil
}

func (c *eventQueryServiceClient) GetAggregateRoots(ctx context.Context, in *Empty, opts ...grpc.CallOption) (EventQueryService_GetAggregateRootsClient, error) {
	stream, err := c.cc.NewStream(ctx, &eventQueryServiceDesc.Streams[2], "/angzarr.EventQueryService/GetAggregateRoots", opts...)
	if err != nil {
		return nil, err
	}
	x := &eventQueryServiceGetAggregateRootsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

var eventQueryServiceDesc = grpc.ServiceDesc{
	ServiceName: "angzarr.EventQueryService",
	HandlerType: (*EventQueryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("GetEventBook", "/angzarr.EventQueryService/GetEventBook", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(EventQueryServiceServer).GetEventBook(ctx, req.(*Query))
			}
		}, func() interface{} { return new(Query) }),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetEvents",
			ServerStreams: true,
			Handler: func(srv interface{}, stream grpc.ServerStream) error {
				m := new(Query)
				if err := stream.RecvMsg(m); err != nil {
					return err
				}
				return srv.(EventQueryServiceServer).GetEvents(m, &eventQueryServiceGetEventsServer{stream})
			},
		},
		{
			StreamName:    "Synchronize",
			ServerStreams: true,
			ClientStreams: true,
			Handler: func(srv interface{}, stream grpc.ServerStream) error {
				return srv.(EventQueryServiceServer).Synchronize(&eventQueryServiceSynchronizeServer{stream})
			},
		},
		{
			StreamName:    "GetAggregateRoots",
			ServerStreams: true,
			Handler: func(srv interface{}, stream grpc.ServerStream) error {
				m := new(Empty)
				if err := stream.RecvMsg(m); err != nil {
					return err
				}
				return srv.(EventQueryServiceServer).GetAggregateRoots(m, &eventQueryServiceGetAggregateRootsServer{stream})
			},
		},
	},
	Metadata: "angzarr/event_query.proto",
}

// ============================================================================
// GatewayService — the single domain-routed entry point, spec §6. Three
// streaming variants bound how long the caller watches the resulting event
// stream: by event count, by wall-clock duration, or until a sentinel event
// type_url suffix is observed.
// ============================================================================

type GatewayServiceServer interface {
	Execute(context.Context, *GatewayRequest) (*CommandResponse, error)
	StreamByCount(*StreamCountOptions, GatewayService_StreamByCountServer) error
	StreamByTime(*StreamTimeOptions, GatewayService_StreamByTimeServer) error
	StreamBySentinel(*StreamSentinelOptions, GatewayService_StreamBySentinelServer) error
}

type UnimplementedGatewayServiceServer struct{}

func (UnimplementedGatewayServiceServer) Execute(context.Context, *GatewayRequest) (*CommandResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Execute not implemented")
}
func (UnimplementedGatewayServiceServer) StreamByCount(*StreamCountOptions, GatewayService_StreamByCountServer) error {
	return status.Error(codes.Unimplemented, "method StreamByCount not implemented")
}
func (UnimplementedGatewayServiceServer) StreamByTime(*StreamTimeOptions, GatewayService_StreamByTimeServer) error {
	return status.Error(codes.Unimplemented, "method StreamByTime not implemented")
}
func (UnimplementedGatewayServiceServer) StreamBySentinel(*StreamSentinelOptions, GatewayService_StreamBySentinelServer) error {
	return status.Error(codes.Unimplemented, "method StreamBySentinel not implemented")
}

func RegisterGatewayServiceServer(s grpc.ServiceRegistrar, srv GatewayServiceServer) {
	s.RegisterService(&gatewayServiceDesc, srv)
}

type GatewayService_StreamByCountServer interface {
	Send(*EventPage) error
	grpc.ServerStream
}
type gatewayServiceStreamByCountServer struct{ grpc.ServerStream }

func (s *gatewayServiceStreamByCountServer) Send(m *EventPage) error { return s.ServerStream.SendMsg(m) }

type GatewayService_StreamByCountClient interface {
	Recv() (*EventPage, error)
	grpc.ClientStream
}
type gatewayServiceStreamByCountClient struct{ grpc.ClientStream }

func (c *gatewayServiceStreamByCountClient) Recv() (*EventPage, error) {
	m := new(EventPage)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type GatewayService_StreamByTimeServer interface {
	Send(*EventPage) error
	grpc.ServerStream
}
type gatewayServiceStreamByTimeServer struct{ grpc.ServerStream }

func (s *gatewayServiceStreamByTimeServer) Send(m *EventPage) error { return s.ServerStream.SendMsg(m) }

type GatewayService_StreamByTimeClient interface {
	Recv() (*EventPage, error)
	grpc.ClientStream
}
type gatewayServiceStreamByTimeClient struct{ grpc.ClientStream }

func (c *gatewayServiceStreamByTimeClient) Recv() (*EventPage, error) {
	m := new(EventPage)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type GatewayService_StreamBySentinelServer interface {
	Send(*EventPage) error
	grpc.ServerStream
}
type gatewayServiceStreamBySentinelServer struct{ grpc.ServerStream }

func (s *gatewayServiceStreamBySentinelServer) Send(m *EventPage) error { return s.ServerStream.SendMsg(m) }

type GatewayService_StreamBySentinelClient interface {
	Recv() (*EventPage, error)
	grpc.ClientStream
}
type gatewayServiceStreamBySentinelClient struct{ grpc.ClientStream }

func (c *gatewayServiceStreamBySentinelClient) Recv() (*EventPage, error) {
	m := new(EventPage)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type GatewayServiceClient interface {
	Execute(ctx context.Context, in *GatewayRequest, opts ...grpc.CallOption) (*CommandResponse, error)
	StreamByCount(ctx context.Context, in *StreamCountOptions, opts ...grpc.CallOption) (GatewayService_StreamByCountClient, error)
	StreamByTime(ctx context.Context, in *StreamTimeOptions, opts ...grpc.CallOption) (GatewayService_StreamByTimeClient, error)
	StreamBySentinel(ctx context.Context, in *StreamSentinelOptions, opts ...grpc.CallOption) (GatewayService_StreamBySentinelClient, error)
}

type gatewayServiceClient struct{ cc grpc.ClientConnInterface }

func NewGatewayServiceClient(cc grpc.ClientConnInterface) GatewayServiceClient { return &gatewayServiceClient{cc} }

func (c *gatewayServiceClient) Execute(ctx context.Context, in *GatewayRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	out := new(CommandResponse)
	if err := c.cc.Invoke(ctx, "/angzarr.GatewayService/Execute", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gatewayServiceClient) StreamByCount(ctx context.Context, in *StreamCountOptions, opts ...grpc.CallOption) (GatewayService_StreamByCountClient, error) {
	stream, err := c.cc.NewStream(ctx, &gatewayServiceDesc.Streams[0], "/angzarr.GatewayService/StreamByCount", opts...)
	if err != nil {
		return nil, err
	}
	x := &gatewayServiceStreamByCountClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *gatewayServiceClient) StreamByTime(ctx context.Context, in *StreamTimeOptions, opts ...grpc.CallOption) (GatewayService_StreamByTimeClient, error) {
	stream, err := c.cc.NewStream(ctx, &gatewayServiceDesc.Streams[1], "/angzarr.GatewayService/StreamByTime", opts...)
	if err != nil {
		return nil, err
	}
	x := &gatewayServiceStreamByTimeClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *gatewayServiceClient) StreamBySentinel(ctx context.Context, in *StreamSentinelOptions, opts ...grpc.CallOption) (GatewayService_StreamBySentinelClient, error) {
	stream, err := c.cc.NewStream(ctx, &gatewayServiceDesc.Streams[2], "/angzarr.GatewayService/StreamBySentinel", opts...)
	if err != nil {
		return nil, err
	}
	x := &gatewayServiceStreamBySentinelClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

var gatewayServiceDesc = grpc.ServiceDesc{
	ServiceName: "angzarr.GatewayService",
	HandlerType: (*GatewayServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Execute", "/angzarr.GatewayService/Execute", func(srv interface{}) func(context.Context, interface{}) (interface{}, error) {
			return func(ctx context.Context, req interface{}) (interface{}, error) {
				return srv.(GatewayServiceServer).Execute(ctx, req.(*GatewayRequest))
			}
		}, func() interface{} { return new(GatewayRequest) }),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamByCount",
			ServerStreams: true,
			Handler: func(srv interface{}, stream grpc.ServerStream) error {
				m := new(StreamCountOptions)
				if err := stream.RecvMsg(m); err != nil {
					return err
				}
				return srv.(GatewayServiceServer).StreamByCount(m, &gatewayServiceStreamByCountServer{stream})
			},
		},
		{
			StreamName:    "StreamByTime",
			ServerStreams: true,
			Handler: func(srv interface{}, stream grpc.ServerStream) error {
				m := new(StreamTimeOptions)
				if err := stream.RecvMsg(m); err != nil {
					return err
				}
				return srv.(GatewayServiceServer).StreamByTime(m, &gatewayServiceStreamByTimeServer{stream})
			},
		},
		{
			StreamName:    "StreamBySentinel",
			ServerStreams: true,
			Handler: func(srv interface{}, stream grpc.ServerStream) error {
				m := new(StreamSentinelOptions)
				if err := stream.RecvMsg(m); err != nil {
					return err
				}
				return srv.(GatewayServiceServer).StreamBySentinel(m, &gatewayServiceStreamBySentinelServer{stream})
			},
		},
	},
	Metadata: "angzarr/gateway.proto",
}
