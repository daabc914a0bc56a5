package angzarr

import "google.golang.org/protobuf/types/known/anypb"

// SagaPrepareRequest is phase 1 of the two-phase saga protocol: declare
// which destination aggregates are needed to process source.
type SagaPrepareRequest struct {
	Source *EventBook `protobuf:"bytes,1,opt,name=source,proto3"`
}

func (m *SagaPrepareRequest) Reset()         { *m = SagaPrepareRequest{} }
func (m *SagaPrepareRequest) String() string { return "SagaPrepareRequest" }
func (*SagaPrepareRequest) ProtoMessage()    {}

func (m *SagaPrepareRequest) GetSource() *EventBook {
	if m == nil {
		return nil
	}
	return m.Source
}

// SagaPrepareResponse lists the destination covers the coordinator must load
// before calling Execute.
type SagaPrepareResponse struct {
	Destinations []*Cover `protobuf:"bytes,1,rep,name=destinations,proto3"`
}

func (m *SagaPrepareResponse) Reset()         { *m = SagaPrepareResponse{} }
func (m *SagaPrepareResponse) String() string { return "SagaPrepareResponse" }
func (*SagaPrepareResponse) ProtoMessage()    {}

func (m *SagaPrepareResponse) GetDestinations() []*Cover {
	if m == nil {
		return nil
	}
	return m.Destinations
}

// SagaExecuteRequest is phase 2: source plus the loaded destination books.
type SagaExecuteRequest struct {
	Source       *EventBook   `protobuf:"bytes,1,opt,name=source,proto3"`
	Destinations []*EventBook `protobuf:"bytes,2,rep,name=destinations,proto3"`
}

func (m *SagaExecuteRequest) Reset()         { *m = SagaExecuteRequest{} }
func (m *SagaExecuteRequest) String() string { return "SagaExecuteRequest" }
func (*SagaExecuteRequest) ProtoMessage()    {}

func (m *SagaExecuteRequest) GetSource() *EventBook {
	if m == nil {
		return nil
	}
	return m.Source
}
func (m *SagaExecuteRequest) GetDestinations() []*EventBook {
	if m == nil {
		return nil
	}
	return m.Destinations
}

// SagaResponse lists the commands a saga wants dispatched.
type SagaResponse struct {
	Commands []*CommandBook `protobuf:"bytes,1,rep,name=commands,proto3"`
}

func (m *SagaResponse) Reset()         { *m = SagaResponse{} }
func (m *SagaResponse) String() string { return "SagaResponse" }
func (*SagaResponse) ProtoMessage()    {}

func (m *SagaResponse) GetCommands() []*CommandBook {
	if m == nil {
		return nil
	}
	return m.Commands
}

// ProcessManagerPrepareRequest declares a PM's interest in a trigger event
// alongside its own process state.
type ProcessManagerPrepareRequest struct {
	Trigger      *EventBook `protobuf:"bytes,1,opt,name=trigger,proto3"`
	ProcessState *EventBook `protobuf:"bytes,2,opt,name=process_state,proto3"`
}

func (m *ProcessManagerPrepareRequest) Reset()         { *m = ProcessManagerPrepareRequest{} }
func (m *ProcessManagerPrepareRequest) String() string { return "ProcessManagerPrepareRequest" }
func (*ProcessManagerPrepareRequest) ProtoMessage()    {}

func (m *ProcessManagerPrepareRequest) GetTrigger() *EventBook {
	if m == nil {
		return nil
	}
	return m.Trigger
}
func (m *ProcessManagerPrepareRequest) GetProcessState() *EventBook {
	if m == nil {
		return nil
	}
	return m.ProcessState
}

// ProcessManagerPrepareResponse lists additional destinations the PM needs.
type ProcessManagerPrepareResponse struct {
	Destinations []*Cover `protobuf:"bytes,1,rep,name=destinations,proto3"`
}

func (m *ProcessManagerPrepareResponse) Reset()         { *m = ProcessManagerPrepareResponse{} }
func (m *ProcessManagerPrepareResponse) String() string { return "ProcessManagerPrepareResponse" }
func (*ProcessManagerPrepareResponse) ProtoMessage()    {}

func (m *ProcessManagerPrepareResponse) GetDestinations() []*Cover {
	if m == nil {
		return nil
	}
	return m.Destinations
}

// ProcessManagerHandleRequest is the fully-assembled fan-in context: the
// trigger event, the PM's own prior state, and any prepared destinations.
type ProcessManagerHandleRequest struct {
	Trigger      *EventBook   `protobuf:"bytes,1,opt,name=trigger,proto3"`
	ProcessState *EventBook   `protobuf:"bytes,2,opt,name=process_state,proto3"`
	Destinations []*EventBook `protobuf:"bytes,3,rep,name=destinations,proto3"`
}

func (m *ProcessManagerHandleRequest) Reset()         { *m = ProcessManagerHandleRequest{} }
func (m *ProcessManagerHandleRequest) String() string { return "ProcessManagerHandleRequest" }
func (*ProcessManagerHandleRequest) ProtoMessage()    {}

func (m *ProcessManagerHandleRequest) GetTrigger() *EventBook {
	if m == nil {
		return nil
	}
	return m.Trigger
}
func (m *ProcessManagerHandleRequest) GetProcessState() *EventBook {
	if m == nil {
		return nil
	}
	return m.ProcessState
}
func (m *ProcessManagerHandleRequest) GetDestinations() []*EventBook {
	if m == nil {
		return nil
	}
	return m.Destinations
}

// ProcessManagerHandleResponse carries both the follow-on commands and the
// PM's own state-tracking events to persist.
type ProcessManagerHandleResponse struct {
	Commands      []*CommandBook `protobuf:"bytes,1,rep,name=commands,proto3"`
	ProcessEvents *EventBook     `protobuf:"bytes,2,opt,name=process_events,proto3"`
}

func (m *ProcessManagerHandleResponse) Reset()         { *m = ProcessManagerHandleResponse{} }
func (m *ProcessManagerHandleResponse) String() string { return "ProcessManagerHandleResponse" }
func (*ProcessManagerHandleResponse) ProtoMessage()    {}

func (m *ProcessManagerHandleResponse) GetCommands() []*CommandBook {
	if m == nil {
		return nil
	}
	return m.Commands
}
func (m *ProcessManagerHandleResponse) GetProcessEvents() *EventBook {
	if m == nil {
		return nil
	}
	return m.ProcessEvents
}

// ReplayRequest asks domain logic to fold a run of events (optionally atop
// a base snapshot) into state, for MERGE_COMMUTATIVE conflict resolution.
type ReplayRequest struct {
	Events       []*EventPage `protobuf:"bytes,1,rep,name=events,proto3"`
	BaseSnapshot *Snapshot    `protobuf:"bytes,2,opt,name=base_snapshot,proto3"`
}

func (m *ReplayRequest) Reset()         { *m = ReplayRequest{} }
func (m *ReplayRequest) String() string { return "ReplayRequest" }
func (*ReplayRequest) ProtoMessage()    {}

// ReplayResponse is the folded state, packed as Any.
type ReplayResponse struct {
	State *anypb.Any `protobuf:"bytes,1,opt,name=state,proto3"`
}

func (m *ReplayResponse) Reset()         { *m = ReplayResponse{} }
func (m *ReplayResponse) String() string { return "ReplayResponse" }
func (*ReplayResponse) ProtoMessage()    {}

// DryRunRequest runs the standard pipeline with side-effect-free sinks.
type DryRunRequest struct {
	Command      *CommandBook `protobuf:"bytes,1,opt,name=command,proto3"`
	AsOfSequence *uint32      `protobuf:"varint,2,opt,name=as_of_sequence,proto3,oneof"`
}

func (m *DryRunRequest) Reset()         { *m = DryRunRequest{} }
func (m *DryRunRequest) String() string { return "DryRunRequest" }
func (*DryRunRequest) ProtoMessage()    {}

func (m *DryRunRequest) GetCommand() *CommandBook {
	if m == nil {
		return nil
	}
	return m.Command
}

// SpeculateProjectorRequest speculatively runs a projector against events
// without persisting its write, per spec §4.10.
type SpeculateProjectorRequest struct {
	Events        *EventBook `protobuf:"bytes,1,opt,name=events,proto3"`
	ProjectorName string     `protobuf:"bytes,2,opt,name=projector_name,proto3"`
}

func (m *SpeculateProjectorRequest) Reset()         { *m = SpeculateProjectorRequest{} }
func (m *SpeculateProjectorRequest) String() string { return "SpeculateProjectorRequest" }
func (*SpeculateProjectorRequest) ProtoMessage()    {}

// SpeculateSagaRequest speculatively runs a saga without dispatching.
type SpeculateSagaRequest struct {
	Source       *EventBook   `protobuf:"bytes,1,opt,name=source,proto3"`
	Destinations []*EventBook `protobuf:"bytes,2,rep,name=destinations,proto3"`
}

func (m *SpeculateSagaRequest) Reset()         { *m = SpeculateSagaRequest{} }
func (m *SpeculateSagaRequest) String() string { return "SpeculateSagaRequest" }
func (*SpeculateSagaRequest) ProtoMessage()    {}

// SpeculatePmRequest speculatively runs a process manager without
// recording dispatch markers.
type SpeculatePmRequest struct {
	Trigger      *EventBook   `protobuf:"bytes,1,opt,name=trigger,proto3"`
	ProcessState *EventBook   `protobuf:"bytes,2,opt,name=process_state,proto3"`
	Destinations []*EventBook `protobuf:"bytes,3,rep,name=destinations,proto3"`
}

func (m *SpeculatePmRequest) Reset()         { *m = SpeculatePmRequest{} }
func (m *SpeculatePmRequest) String() string { return "SpeculatePmRequest" }
func (*SpeculatePmRequest) ProtoMessage()    {}

// GatewayRequest is the Gateway's single entry envelope: a domain-routed
// command plus the sync mode to execute it under.
type GatewayRequest struct {
	Command  *CommandBook `protobuf:"bytes,1,opt,name=command,proto3"`
	SyncMode SyncMode     `protobuf:"varint,2,opt,name=sync_mode,proto3,enum=angzarr.SyncMode"`
	Edition  string       `protobuf:"bytes,3,opt,name=edition,proto3"`
}

func (m *GatewayRequest) Reset()         { *m = GatewayRequest{} }
func (m *GatewayRequest) String() string { return "GatewayRequest" }
func (*GatewayRequest) ProtoMessage()    {}

func (m *GatewayRequest) GetCommand() *CommandBook {
	if m == nil {
		return nil
	}
	return m.Command
}
func (m *GatewayRequest) GetSyncMode() SyncMode {
	if m == nil {
		return SyncMode_NONE
	}
	return m.SyncMode
}
func (m *GatewayRequest) GetEdition() string {
	if m == nil {
		return ""
	}
	return m.Edition
}

// StreamCountOptions bounds a streaming Gateway call by event count.
type StreamCountOptions struct {
	Count uint32 `protobuf:"varint,1,opt,name=count,proto3"`
}

func (m *StreamCountOptions) Reset()         { *m = StreamCountOptions{} }
func (m *StreamCountOptions) String() string { return "StreamCountOptions" }
func (*StreamCountOptions) ProtoMessage()    {}

// StreamTimeOptions bounds a streaming Gateway call by wall-clock duration.
type StreamTimeOptions struct {
	DurationMs uint64 `protobuf:"varint,1,opt,name=duration_ms,proto3"`
}

func (m *StreamTimeOptions) Reset()         { *m = StreamTimeOptions{} }
func (m *StreamTimeOptions) String() string { return "StreamTimeOptions" }
func (*StreamTimeOptions) ProtoMessage()    {}

// StreamSentinelOptions bounds a streaming Gateway call by a sentinel event
// type_url suffix that marks the end of the stream.
type StreamSentinelOptions struct {
	EndTypeUrlSuffix string `protobuf:"bytes,1,opt,name=end_type_url_suffix,proto3"`
}

func (m *StreamSentinelOptions) Reset()         { *m = StreamSentinelOptions{} }
func (m *StreamSentinelOptions) String() string { return "StreamSentinelOptions" }
func (*StreamSentinelOptions) ProtoMessage()    {}
