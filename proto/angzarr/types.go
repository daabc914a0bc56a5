// Package angzarr contains the wire types for the coordinator's gRPC
// surface: covers, event/command books, business responses, and the
// request/response messages for every coordinator-hosted service.
//
// These types are hand-maintained rather than protoc-generated (no protoc
// toolchain runs in this build), but follow the shape protoc-gen-go would
// produce closely enough to marshal/unmarshal correctly through the
// standard "proto" gRPC codec and through google.golang.org/protobuf's
// legacy-message bridge: every type implements the classic
// Reset()/String()/ProtoMessage() trio and carries protobuf struct tags, so
// anypb.Any, proto.Marshal and proto.Clone all operate on it normally.
package angzarr

import (
	"fmt"

	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// UUID wraps a 16-byte aggregate-root identifier. Kept as a distinct
// message (rather than plain bytes) so Cover.Root round-trips through Any
// the same way the teacher's examples.UUID does.
type UUID struct {
	Value []byte `protobuf:"bytes,1,opt,name=value,proto3"`
}

func (m *UUID) Reset()         { *m = UUID{} }
func (m *UUID) String() string { return fmt.Sprintf("UUID(%x)", m.GetValue()) }
func (*UUID) ProtoMessage()    {}

func (m *UUID) GetValue() []byte {
	if m == nil {
		return nil
	}
	return m.Value
}

// Edition names a diverged timeline.
type Edition struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3"`
}

func (m *Edition) Reset()         { *m = Edition{} }
func (m *Edition) String() string { return "Edition(" + m.GetName() + ")" }
func (*Edition) ProtoMessage()    {}

func (m *Edition) GetName() string {
	if m == nil {
		return ""
	}
	return m.Name
}

// Cover is the identity triple (domain, root, correlation_id), plus an
// optional edition selector.
type Cover struct {
	Domain        string   `protobuf:"bytes,1,opt,name=domain,proto3"`
	Root          *UUID    `protobuf:"bytes,2,opt,name=root,proto3"`
	CorrelationId string   `protobuf:"bytes,3,opt,name=correlation_id,proto3"`
	Edition       *Edition `protobuf:"bytes,4,opt,name=edition,proto3"`
}

func (m *Cover) Reset()         { *m = Cover{} }
func (m *Cover) String() string { return fmt.Sprintf("Cover(%s)", m.GetDomain()) }
func (*Cover) ProtoMessage()    {}

func (m *Cover) GetDomain() string {
	if m == nil {
		return ""
	}
	return m.Domain
}
func (m *Cover) GetRoot() *UUID {
	if m == nil {
		return nil
	}
	return m.Root
}
func (m *Cover) GetCorrelationId() string {
	if m == nil {
		return ""
	}
	return m.CorrelationId
}
func (m *Cover) GetEdition() *Edition {
	if m == nil {
		return nil
	}
	return m.Edition
}

// EventPage_Payload is the oneof carrying the event Any.
type isEventPage_Payload interface{ isEventPage_Payload() }

type EventPage_Event struct {
	Event *anypb.Any `protobuf:"bytes,3,opt,name=event,proto3,oneof"`
}

func (*EventPage_Event) isEventPage_Payload() {}

// EventPage is one durable entry in an EventBook.
type EventPage struct {
	Sequence  uint32               `protobuf:"varint,1,opt,name=sequence,proto3"`
	CreatedAt *timestamppb.Timestamp `protobuf:"bytes,2,opt,name=created_at,proto3"`
	Payload   isEventPage_Payload  `protobuf:"bytes,3,opt,name=payload,proto3,oneof"`
	ForceFlag bool                 `protobuf:"varint,4,opt,name=force_flag,proto3"`
}

func (m *EventPage) Reset()         { *m = EventPage{} }
func (m *EventPage) String() string { return fmt.Sprintf("EventPage(seq=%d)", m.GetSequence()) }
func (*EventPage) ProtoMessage()    {}

func (m *EventPage) GetSequence() uint32 {
	if m == nil {
		return 0
	}
	return m.Sequence
}
func (m *EventPage) GetCreatedAt() *timestamppb.Timestamp {
	if m == nil {
		return nil
	}
	return m.CreatedAt
}
func (m *EventPage) GetForceFlag() bool {
	if m == nil {
		return false
	}
	return m.ForceFlag
}
func (m *EventPage) GetEvent() *anypb.Any {
	if m == nil {
		return nil
	}
	if e, ok := m.Payload.(*EventPage_Event); ok {
		return e.Event
	}
	return nil
}

// Clone returns a shallow copy of the page with its own Payload box, so
// replacing the event on the clone never mutates the original. EventPage
// cannot go through proto.Clone directly: it implements only the legacy
// Reset/String/ProtoMessage trio, not protoreflect.ProtoMessage.
func (m *EventPage) Clone() *EventPage {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

// NewEventPage builds an EventPage carrying the given event.
func NewEventPage(seq uint32, event *anypb.Any, force bool) *EventPage {
	return &EventPage{
		Sequence:  seq,
		CreatedAt: timestamppb.Now(),
		Payload:   &EventPage_Event{Event: event},
		ForceFlag: force,
	}
}

// Snapshot is the folded state after applying pages 0..=sequence.
type Snapshot struct {
	Sequence uint32     `protobuf:"varint,1,opt,name=sequence,proto3"`
	State    *anypb.Any `protobuf:"bytes,2,opt,name=state,proto3"`
}

func (m *Snapshot) Reset()         { *m = Snapshot{} }
func (m *Snapshot) String() string { return fmt.Sprintf("Snapshot(seq=%d)", m.GetSequence()) }
func (*Snapshot) ProtoMessage()    {}

func (m *Snapshot) GetSequence() uint32 {
	if m == nil {
		return 0
	}
	return m.Sequence
}
func (m *Snapshot) GetState() *anypb.Any {
	if m == nil {
		return nil
	}
	return m.State
}

// EventBook is the full durable stream for one cover, optionally
// snapshot-condensed.
type EventBook struct {
	Cover        *Cover       `protobuf:"bytes,1,opt,name=cover,proto3"`
	Snapshot     *Snapshot    `protobuf:"bytes,2,opt,name=snapshot,proto3"`
	Pages        []*EventPage `protobuf:"bytes,3,rep,name=pages,proto3"`
	NextSequence uint32       `protobuf:"varint,4,opt,name=next_sequence,proto3"`
}

func (m *EventBook) Reset() { *m = EventBook{} }
func (m *EventBook) String() string {
	return fmt.Sprintf("EventBook(%s, %d pages)", m.GetCover().GetDomain(), len(m.GetPages()))
}
func (*EventBook) ProtoMessage() {}

func (m *EventBook) GetCover() *Cover {
	if m == nil {
		return nil
	}
	return m.Cover
}
func (m *EventBook) GetSnapshot() *Snapshot {
	if m == nil {
		return nil
	}
	return m.Snapshot
}
func (m *EventBook) GetPages() []*EventPage {
	if m == nil {
		return nil
	}
	return m.Pages
}
func (m *EventBook) GetNextSequence() uint32 {
	if m == nil {
		return 0
	}
	return m.NextSequence
}

// CommandPage_Payload is the oneof carrying the command Any.
type isCommandPage_Payload interface{ isCommandPage_Payload() }

type CommandPage_Command struct {
	Command *anypb.Any `protobuf:"bytes,3,opt,name=command,proto3,oneof"`
}

func (*CommandPage_Command) isCommandPage_Payload() {}

// CommandPage carries the writer's claimed expected_sequence plus payload.
type CommandPage struct {
	Sequence  uint32               `protobuf:"varint,1,opt,name=sequence,proto3"`
	Payload   isCommandPage_Payload `protobuf:"bytes,3,opt,name=payload,proto3,oneof"`
	ForceFlag bool                 `protobuf:"varint,4,opt,name=force_flag,proto3"`
}

func (m *CommandPage) Reset()         { *m = CommandPage{} }
func (m *CommandPage) String() string { return fmt.Sprintf("CommandPage(seq=%d)", m.GetSequence()) }
func (*CommandPage) ProtoMessage()    {}

func (m *CommandPage) GetSequence() uint32 {
	if m == nil {
		return 0
	}
	return m.Sequence
}
func (m *CommandPage) GetForceFlag() bool {
	if m == nil {
		return false
	}
	return m.ForceFlag
}
func (m *CommandPage) GetCommand() *anypb.Any {
	if m == nil {
		return nil
	}
	if c, ok := m.Payload.(*CommandPage_Command); ok {
		return c.Command
	}
	return nil
}

// NewCommandPage builds a CommandPage with the given expected sequence.
func NewCommandPage(expectedSeq uint32, cmd *anypb.Any, force bool) *CommandPage {
	return &CommandPage{
		Sequence:  expectedSeq,
		Payload:   &CommandPage_Command{Command: cmd},
		ForceFlag: force,
	}
}

// CommandBook mirrors EventBook as the dispatch unit sent to a coordinator.
type CommandBook struct {
	Cover *Cover         `protobuf:"bytes,1,opt,name=cover,proto3"`
	Pages []*CommandPage `protobuf:"bytes,2,rep,name=pages,proto3"`
}

func (m *CommandBook) Reset() { *m = CommandBook{} }
func (m *CommandBook) String() string {
	return fmt.Sprintf("CommandBook(%s, %d pages)", m.GetCover().GetDomain(), len(m.GetPages()))
}
func (*CommandBook) ProtoMessage() {}

func (m *CommandBook) GetCover() *Cover {
	if m == nil {
		return nil
	}
	return m.Cover
}
func (m *CommandBook) GetPages() []*CommandPage {
	if m == nil {
		return nil
	}
	return m.Pages
}

// SyncMode controls whether projectors/sagas block the command response.
type SyncMode int32

const (
	SyncMode_NONE    SyncMode = 0
	SyncMode_SIMPLE  SyncMode = 1
	SyncMode_CASCADE SyncMode = 2
)

func (s SyncMode) String() string {
	switch s {
	case SyncMode_SIMPLE:
		return "SIMPLE"
	case SyncMode_CASCADE:
		return "CASCADE"
	default:
		return "NONE"
	}
}

// SyncCommandBook pairs a CommandBook with the SyncMode to execute it under.
type SyncCommandBook struct {
	Command  *CommandBook `protobuf:"bytes,1,opt,name=command,proto3"`
	SyncMode SyncMode     `protobuf:"varint,2,opt,name=sync_mode,proto3,enum=angzarr.SyncMode"`
}

func (m *SyncCommandBook) Reset()         { *m = SyncCommandBook{} }
func (m *SyncCommandBook) String() string { return "SyncCommandBook" }
func (*SyncCommandBook) ProtoMessage()    {}

func (m *SyncCommandBook) GetCommand() *CommandBook {
	if m == nil {
		return nil
	}
	return m.Command
}
func (m *SyncCommandBook) GetSyncMode() SyncMode {
	if m == nil {
		return SyncMode_NONE
	}
	return m.SyncMode
}

// ContextualCommand is the full replay context handed to domain logic.
type ContextualCommand struct {
	Command *CommandBook `protobuf:"bytes,1,opt,name=command,proto3"`
	Events  *EventBook   `protobuf:"bytes,2,opt,name=events,proto3"`
}

func (m *ContextualCommand) Reset()         { *m = ContextualCommand{} }
func (m *ContextualCommand) String() string { return "ContextualCommand" }
func (*ContextualCommand) ProtoMessage()    {}

func (m *ContextualCommand) GetCommand() *CommandBook {
	if m == nil {
		return nil
	}
	return m.Command
}
func (m *ContextualCommand) GetEvents() *EventBook {
	if m == nil {
		return nil
	}
	return m.Events
}

// Rejection is a business-rule failure with a caller-facing message.
type Rejection struct {
	Code    string `protobuf:"bytes,1,opt,name=code,proto3"`
	Message string `protobuf:"bytes,2,opt,name=message,proto3"`
}

func (m *Rejection) Reset()         { *m = Rejection{} }
func (m *Rejection) String() string { return m.GetMessage() }
func (*Rejection) ProtoMessage()    {}

func (m *Rejection) GetCode() string {
	if m == nil {
		return ""
	}
	return m.Code
}
func (m *Rejection) GetMessage() string {
	if m == nil {
		return ""
	}
	return m.Message
}

// RevocationResponse carries the fallback compensation instructions when a
// domain handler has no bespoke response for a notification.
type RevocationResponse struct {
	EmitSystemRevocation  bool   `protobuf:"varint,1,opt,name=emit_system_revocation,proto3"`
	SendToDeadLetterQueue bool   `protobuf:"varint,2,opt,name=send_to_dead_letter_queue,proto3"`
	Escalate              bool   `protobuf:"varint,3,opt,name=escalate,proto3"`
	Abort                 bool   `protobuf:"varint,4,opt,name=abort,proto3"`
	Reason                string `protobuf:"bytes,5,opt,name=reason,proto3"`
}

func (m *RevocationResponse) Reset()         { *m = RevocationResponse{} }
func (m *RevocationResponse) String() string { return m.GetReason() }
func (*RevocationResponse) ProtoMessage()    {}

func (m *RevocationResponse) GetReason() string {
	if m == nil {
		return ""
	}
	return m.Reason
}

// BusinessResponse_Result is the oneof of what domain logic returns.
type isBusinessResponse_Result interface{ isBusinessResponse_Result() }

type BusinessResponse_Events struct {
	Events *EventBook `protobuf:"bytes,1,opt,name=events,proto3,oneof"`
}
type BusinessResponse_Rejection struct {
	Rejection *Rejection `protobuf:"bytes,2,opt,name=rejection,proto3,oneof"`
}
type BusinessResponse_Revocation struct {
	Revocation *RevocationResponse `protobuf:"bytes,3,opt,name=revocation,proto3,oneof"`
}

func (*BusinessResponse_Events) isBusinessResponse_Result()     {}
func (*BusinessResponse_Rejection) isBusinessResponse_Result()  {}
func (*BusinessResponse_Revocation) isBusinessResponse_Result() {}

// BusinessResponse is what domain logic returns to a coordinator.
type BusinessResponse struct {
	Result isBusinessResponse_Result `protobuf:"bytes,1,opt,name=result,proto3,oneof"`
}

func (m *BusinessResponse) Reset()         { *m = BusinessResponse{} }
func (m *BusinessResponse) String() string { return "BusinessResponse" }
func (*BusinessResponse) ProtoMessage()    {}

func (m *BusinessResponse) GetEvents() *EventBook {
	if m == nil {
		return nil
	}
	if e, ok := m.Result.(*BusinessResponse_Events); ok {
		return e.Events
	}
	return nil
}
func (m *BusinessResponse) GetRejection() *Rejection {
	if m == nil {
		return nil
	}
	if r, ok := m.Result.(*BusinessResponse_Rejection); ok {
		return r.Rejection
	}
	return nil
}
func (m *BusinessResponse) GetRevocation() *RevocationResponse {
	if m == nil {
		return nil
	}
	if r, ok := m.Result.(*BusinessResponse_Revocation); ok {
		return r.Revocation
	}
	return nil
}

// MissingEventsDetail accompanies an Aborted status on a sequence mismatch.
type MissingEventsDetail struct {
	Domain          string `protobuf:"bytes,1,opt,name=domain,proto3"`
	Root            *UUID  `protobuf:"bytes,2,opt,name=root,proto3"`
	ExpectedSequence uint32 `protobuf:"varint,3,opt,name=expected_sequence,proto3"`
	ActualSequence   uint32 `protobuf:"varint,4,opt,name=actual_sequence,proto3"`
}

func (m *MissingEventsDetail) Reset() { *m = MissingEventsDetail{} }
func (m *MissingEventsDetail) String() string {
	return fmt.Sprintf("MissingEvents[%d,%d)", m.GetExpectedSequence(), m.GetActualSequence())
}
func (*MissingEventsDetail) ProtoMessage() {}

func (m *MissingEventsDetail) GetExpectedSequence() uint32 {
	if m == nil {
		return 0
	}
	return m.ExpectedSequence
}
func (m *MissingEventsDetail) GetActualSequence() uint32 {
	if m == nil {
		return 0
	}
	return m.ActualSequence
}

// Projection is a read-model mutation result from a projector handler.
type Projection struct {
	Name string     `protobuf:"bytes,1,opt,name=name,proto3"`
	Data *anypb.Any `protobuf:"bytes,2,opt,name=data,proto3"`
}

func (m *Projection) Reset()         { *m = Projection{} }
func (m *Projection) String() string { return "Projection(" + m.GetName() + ")" }
func (*Projection) ProtoMessage()    {}

func (m *Projection) GetName() string {
	if m == nil {
		return ""
	}
	return m.Name
}
func (m *Projection) GetData() *anypb.Any {
	if m == nil {
		return nil
	}
	return m.Data
}

// CommandResponse is returned from the Aggregate Coordinator's Handle/Record.
type CommandResponse struct {
	Events      *EventBook     `protobuf:"bytes,1,opt,name=events,proto3"`
	Projections []*Projection  `protobuf:"bytes,2,rep,name=projections,proto3"`
	SagaResults []*SagaResponse `protobuf:"bytes,3,rep,name=saga_results,proto3"`
	Missing     *MissingEventsDetail `protobuf:"bytes,4,opt,name=missing,proto3"`
}

func (m *CommandResponse) Reset()         { *m = CommandResponse{} }
func (m *CommandResponse) String() string { return "CommandResponse" }
func (*CommandResponse) ProtoMessage()    {}

func (m *CommandResponse) GetEvents() *EventBook {
	if m == nil {
		return nil
	}
	return m.Events
}
func (m *CommandResponse) GetMissing() *MissingEventsDetail {
	if m == nil {
		return nil
	}
	return m.Missing
}

// Notification wraps a downstream rejection for routing back to issuer and
// source aggregate.
type Notification struct {
	IssuerType      string     `protobuf:"bytes,1,opt,name=issuer_type,proto3"`
	IssuerName      string     `protobuf:"bytes,2,opt,name=issuer_name,proto3"`
	SourceEventType string     `protobuf:"bytes,3,opt,name=source_event_type,proto3"`
	RejectedCommand *CommandBook `protobuf:"bytes,4,opt,name=rejected_command,proto3"`
	RejectionReason string     `protobuf:"bytes,5,opt,name=rejection_reason,proto3"`
	CorrelationId   string     `protobuf:"bytes,6,opt,name=correlation_id,proto3"`
	Payload         *anypb.Any `protobuf:"bytes,7,opt,name=payload,proto3"`
}

func (m *Notification) Reset()         { *m = Notification{} }
func (m *Notification) String() string { return "Notification(" + m.GetIssuerName() + ")" }
func (*Notification) ProtoMessage()    {}

func (m *Notification) GetIssuerName() string {
	if m == nil {
		return ""
	}
	return m.IssuerName
}
func (m *Notification) GetPayload() *anypb.Any {
	if m == nil {
		return nil
	}
	return m.Payload
}

// RejectionNotification is the payload carried inside Notification.Payload.
type RejectionNotification struct {
	IssuerName          string       `protobuf:"bytes,1,opt,name=issuer_name,proto3"`
	IssuerType          string       `protobuf:"bytes,2,opt,name=issuer_type,proto3"`
	SourceEventSequence uint32       `protobuf:"varint,3,opt,name=source_event_sequence,proto3"`
	RejectionReason     string       `protobuf:"bytes,4,opt,name=rejection_reason,proto3"`
	RejectedCommand     *CommandBook `protobuf:"bytes,5,opt,name=rejected_command,proto3"`
	SourceAggregate     *Cover       `protobuf:"bytes,6,opt,name=source_aggregate,proto3"`
}

func (m *RejectionNotification) Reset()         { *m = RejectionNotification{} }
func (m *RejectionNotification) String() string { return "RejectionNotification" }
func (*RejectionNotification) ProtoMessage()    {}

// SequenceRange selects a [lower, upper) window of sequences.
type SequenceRange struct {
	Lower uint32  `protobuf:"varint,1,opt,name=lower,proto3"`
	Upper *uint32 `protobuf:"varint,2,opt,name=upper,proto3,oneof"`
}

func (m *SequenceRange) Reset()         { *m = SequenceRange{} }
func (m *SequenceRange) String() string { return "SequenceRange" }
func (*SequenceRange) ProtoMessage()    {}

// TemporalQuery_PointInTime is the oneof for temporal replay selection.
type isTemporalQuery_PointInTime interface{ isTemporalQuery_PointInTime() }

type TemporalQuery_AsOfSequence struct {
	AsOfSequence uint32 `protobuf:"varint,1,opt,name=as_of_sequence,proto3,oneof"`
}
type TemporalQuery_AsOfTime struct {
	AsOfTime *timestamppb.Timestamp `protobuf:"bytes,2,opt,name=as_of_time,proto3,oneof"`
}

func (*TemporalQuery_AsOfSequence) isTemporalQuery_PointInTime() {}
func (*TemporalQuery_AsOfTime) isTemporalQuery_PointInTime()     {}

// TemporalQuery selects a past point in a stream's history for replay.
type TemporalQuery struct {
	PointInTime isTemporalQuery_PointInTime `protobuf:"bytes,1,opt,name=point_in_time,proto3,oneof"`
}

func (m *TemporalQuery) Reset()         { *m = TemporalQuery{} }
func (m *TemporalQuery) String() string { return "TemporalQuery" }
func (*TemporalQuery) ProtoMessage()    {}

// Query_Selection is the oneof of how a Query narrows the stream.
type isQuery_Selection interface{ isQuery_Selection() }

type Query_Range struct {
	Range *SequenceRange `protobuf:"bytes,2,opt,name=range,proto3,oneof"`
}
type Query_Temporal struct {
	Temporal *TemporalQuery `protobuf:"bytes,3,opt,name=temporal,proto3,oneof"`
}

func (*Query_Range) isQuery_Selection()    {}
func (*Query_Temporal) isQuery_Selection() {}

// Query is a read request against the Storage Adapter.
type Query struct {
	Cover     *Cover            `protobuf:"bytes,1,opt,name=cover,proto3"`
	Selection isQuery_Selection `protobuf:"bytes,2,opt,name=selection,proto3,oneof"`
}

func (m *Query) Reset()         { *m = Query{} }
func (m *Query) String() string { return "Query(" + m.GetCover().GetDomain() + ")" }
func (*Query) ProtoMessage()    {}

func (m *Query) GetCover() *Cover {
	if m == nil {
		return nil
	}
	return m.Cover
}
func (m *Query) GetRange() *SequenceRange {
	if m == nil {
		return nil
	}
	if r, ok := m.Selection.(*Query_Range); ok {
		return r.Range
	}
	return nil
}
func (m *Query) GetTemporal() *TemporalQuery {
	if m == nil {
		return nil
	}
	if t, ok := m.Selection.(*Query_Temporal); ok {
		return t.Temporal
	}
	return nil
}

// AggregateRoot is a (domain, root) discovery record.
type AggregateRoot struct {
	Domain string `protobuf:"bytes,1,opt,name=domain,proto3"`
	Root   *UUID  `protobuf:"bytes,2,opt,name=root,proto3"`
}

func (m *AggregateRoot) Reset()         { *m = AggregateRoot{} }
func (m *AggregateRoot) String() string { return "AggregateRoot(" + m.GetDomain() + ")" }
func (*AggregateRoot) ProtoMessage()    {}

func (m *AggregateRoot) GetDomain() string {
	if m == nil {
		return ""
	}
	return m.Domain
}
func (m *AggregateRoot) GetRoot() *UUID {
	if m == nil {
		return nil
	}
	return m.Root
}

// EditionDescriptor records an edition's divergence point.
type EditionDescriptor struct {
	Name               string                 `protobuf:"bytes,1,opt,name=name,proto3"`
	Domain             string                 `protobuf:"bytes,2,opt,name=domain,proto3"`
	DivergenceSequence uint32                 `protobuf:"varint,3,opt,name=divergence_sequence,proto3"`
	CreatedAt          *timestamppb.Timestamp `protobuf:"bytes,4,opt,name=created_at,proto3"`
}

func (m *EditionDescriptor) Reset()         { *m = EditionDescriptor{} }
func (m *EditionDescriptor) String() string { return "Edition(" + m.GetName() + ")" }
func (*EditionDescriptor) ProtoMessage()    {}

func (m *EditionDescriptor) GetName() string {
	if m == nil {
		return ""
	}
	return m.Name
}
func (m *EditionDescriptor) GetDomain() string {
	if m == nil {
		return ""
	}
	return m.Domain
}
func (m *EditionDescriptor) GetDivergenceSequence() uint32 {
	if m == nil {
		return 0
	}
	return m.DivergenceSequence
}

// Empty is the canonical no-payload message.
type Empty struct{}

func (m *Empty) Reset()         { *m = Empty{} }
func (m *Empty) String() string { return "Empty" }
func (*Empty) ProtoMessage()    {}

// Cover et al. implement only the classic Reset/String/ProtoMessage trio
// (protoadapt.MessageV1), not protoreflect.ProtoMessage directly. grpc's
// built-in "proto" codec accepts either interface directly, so these types
// travel over the wire unwrapped; code in this module that needs a v2
// proto.Message (proto.Marshal, anypb.New) wraps with protoadapt.MessageV2.
var _ protoadapt.MessageV1 = (*Cover)(nil)
