package gateway

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/anypb"

	"github.com/angzarr-io/angzarr/internal/bus"
	"github.com/angzarr-io/angzarr/internal/storage"
	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// fakeServerStream is the minimal grpc.ServerStream a gateway handler needs:
// a context to read routing metadata from, and nothing else exercised here.
type fakeServerStream struct {
	ctx context.Context
}

func (f *fakeServerStream) SetHeader(metadata.MD) error  { return nil }
func (f *fakeServerStream) SendHeader(metadata.MD) error  { return nil }
func (f *fakeServerStream) SetTrailer(metadata.MD)        {}
func (f *fakeServerStream) Context() context.Context      { return f.ctx }
func (f *fakeServerStream) SendMsg(m interface{}) error    { return nil }
func (f *fakeServerStream) RecvMsg(m interface{}) error    { return io.EOF }

type fakeCountStream struct {
	fakeServerStream
	sent []*pb.EventPage
}

func (f *fakeCountStream) Send(p *pb.EventPage) error {
	f.sent = append(f.sent, p)
	return nil
}

type fakeDispatcher struct {
	handleCalls     int
	handleSyncCalls int
	lastCommand     *pb.CommandBook
	lastSyncMode    pb.SyncMode
}

func (f *fakeDispatcher) Handle(ctx context.Context, cb *pb.CommandBook) (*pb.CommandResponse, error) {
	f.handleCalls++
	f.lastCommand = cb
	return &pb.CommandResponse{}, nil
}

func (f *fakeDispatcher) HandleSync(ctx context.Context, scb *pb.SyncCommandBook) (*pb.CommandResponse, error) {
	f.handleSyncCalls++
	f.lastCommand = scb.GetCommand()
	f.lastSyncMode = scb.GetSyncMode()
	return &pb.CommandResponse{}, nil
}

func rootCover(t *testing.T, domain string) (*pb.Cover, uuid.UUID) {
	t.Helper()
	root := uuid.New()
	rootBytes, err := root.MarshalBinary()
	require.NoError(t, err)
	return &pb.Cover{Domain: domain, Root: &pb.UUID{Value: rootBytes}}, root
}

func TestExecute_RoutesThroughHandleWhenSyncModeNone(t *testing.T) {
	cover, _ := rootCover(t, "payments")
	dispatcher := &fakeDispatcher{}
	g := NewGateway(dispatcher, storage.NewMemory(), bus.NewChannel(), nil)

	cmd := &pb.CommandBook{Cover: cover, Pages: []*pb.CommandPage{pb.NewCommandPage(0, &anypb.Any{TypeUrl: "examples.ChargeCard"}, false)}}
	_, err := g.Execute(context.Background(), &pb.GatewayRequest{Command: cmd, SyncMode: pb.SyncMode_NONE})

	require.NoError(t, err)
	assert.Equal(t, 1, dispatcher.handleCalls)
	assert.Equal(t, 0, dispatcher.handleSyncCalls)
}

func TestExecute_RoutesThroughHandleSyncWhenSyncModeSet(t *testing.T) {
	cover, _ := rootCover(t, "payments")
	dispatcher := &fakeDispatcher{}
	g := NewGateway(dispatcher, storage.NewMemory(), bus.NewChannel(), nil)

	cmd := &pb.CommandBook{Cover: cover, Pages: []*pb.CommandPage{pb.NewCommandPage(0, &anypb.Any{TypeUrl: "examples.ChargeCard"}, false)}}
	_, err := g.Execute(context.Background(), &pb.GatewayRequest{Command: cmd, SyncMode: pb.SyncMode_CASCADE})

	require.NoError(t, err)
	assert.Equal(t, 0, dispatcher.handleCalls)
	assert.Equal(t, 1, dispatcher.handleSyncCalls)
	assert.Equal(t, pb.SyncMode_CASCADE, dispatcher.lastSyncMode)
}

func TestExecute_EditionOverridesCover(t *testing.T) {
	cover, _ := rootCover(t, "payments")
	dispatcher := &fakeDispatcher{}
	g := NewGateway(dispatcher, storage.NewMemory(), bus.NewChannel(), nil)

	cmd := &pb.CommandBook{Cover: cover, Pages: []*pb.CommandPage{pb.NewCommandPage(0, &anypb.Any{TypeUrl: "examples.ChargeCard"}, false)}}
	_, err := g.Execute(context.Background(), &pb.GatewayRequest{Command: cmd, Edition: "what-if-refund"})

	require.NoError(t, err)
	require.NotNil(t, dispatcher.lastCommand.GetCover())
	assert.Equal(t, "what-if-refund", dispatcher.lastCommand.GetCover().GetEdition().GetName())
}

func TestExecute_RequiresCommand(t *testing.T) {
	g := NewGateway(&fakeDispatcher{}, storage.NewMemory(), bus.NewChannel(), nil)
	_, err := g.Execute(context.Background(), &pb.GatewayRequest{})
	assert.Error(t, err)
}

func TestCoverFromContext_RequiresMetadata(t *testing.T) {
	_, err := coverFromContext(context.Background())
	assert.Error(t, err)
}

func TestCoverFromContext_ParsesRootUUID(t *testing.T) {
	root := uuid.New()
	md := metadata.Pairs(MetadataDomain, "payments", MetadataRoot, root.String())
	ctx := metadata.NewIncomingContext(context.Background(), md)

	cover, err := coverFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "payments", cover.GetDomain())

	rootBytes, _ := root.MarshalBinary()
	assert.Equal(t, rootBytes, cover.GetRoot().GetValue())
}

func TestCoverFromContext_RejectsInvalidRoot(t *testing.T) {
	md := metadata.Pairs(MetadataDomain, "payments", MetadataRoot, "not-a-uuid")
	ctx := metadata.NewIncomingContext(context.Background(), md)
	_, err := coverFromContext(ctx)
	assert.Error(t, err)
}

func TestStreamByCount_BoundsToRequestedCount(t *testing.T) {
	mem := storage.NewMemory()
	cover, root := rootCover(t, "payments")
	_, err := mem.Append(context.Background(), cover, []*pb.EventPage{
		pb.NewEventPage(0, &anypb.Any{TypeUrl: "examples.ChargeCardInitiated"}, false),
		pb.NewEventPage(1, &anypb.Any{TypeUrl: "examples.ChargeCardSettled"}, false),
		pb.NewEventPage(2, &anypb.Any{TypeUrl: "examples.ReceiptSent"}, false),
	}, 0, false)
	require.NoError(t, err)

	g := NewGateway(&fakeDispatcher{}, mem, bus.NewChannel(), nil)
	md := metadata.Pairs(MetadataDomain, "payments", MetadataRoot, root.String())
	ctx := metadata.NewIncomingContext(context.Background(), md)
	stream := &fakeCountStream{fakeServerStream: fakeServerStream{ctx: ctx}}

	require.NoError(t, g.StreamByCount(&pb.StreamCountOptions{Count: 2}, stream))
	assert.Len(t, stream.sent, 2)
}

func TestStreamByCount_ZeroCountReturnsEverything(t *testing.T) {
	mem := storage.NewMemory()
	cover, root := rootCover(t, "payments")
	_, err := mem.Append(context.Background(), cover, []*pb.EventPage{
		pb.NewEventPage(0, &anypb.Any{TypeUrl: "examples.ChargeCardInitiated"}, false),
		pb.NewEventPage(1, &anypb.Any{TypeUrl: "examples.ChargeCardSettled"}, false),
	}, 0, false)
	require.NoError(t, err)

	g := NewGateway(&fakeDispatcher{}, mem, bus.NewChannel(), nil)
	md := metadata.Pairs(MetadataDomain, "payments", MetadataRoot, root.String())
	ctx := metadata.NewIncomingContext(context.Background(), md)
	stream := &fakeCountStream{fakeServerStream: fakeServerStream{ctx: ctx}}

	require.NoError(t, g.StreamByCount(&pb.StreamCountOptions{Count: 0}, stream))
	assert.Len(t, stream.sent, 2)
}

func TestSameRoot(t *testing.T) {
	a, _ := rootCover(t, "payments")
	b := &pb.Cover{Domain: "payments", Root: a.GetRoot()}
	c, _ := rootCover(t, "payments")

	assert.True(t, sameRoot(a, b))
	assert.False(t, sameRoot(a, c))
}
