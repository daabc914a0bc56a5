package gateway

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/angzarr-io/angzarr/internal/storage"
	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

type fakeGetEventsStream struct {
	fakeServerStream
	sent []*pb.EventPage
}

func (f *fakeGetEventsStream) Send(p *pb.EventPage) error {
	f.sent = append(f.sent, p)
	return nil
}

type fakeRootsStream struct {
	fakeServerStream
	sent []*pb.AggregateRoot
}

func (f *fakeRootsStream) Send(r *pb.AggregateRoot) error {
	f.sent = append(f.sent, r)
	return nil
}

type fakeSyncStream struct {
	fakeServerStream
	toSend []*pb.CommandPage
	recvd  []*pb.EventPage
}

func (f *fakeSyncStream) Send(p *pb.EventPage) error {
	f.recvd = append(f.recvd, p)
	return nil
}

func (f *fakeSyncStream) Recv() (*pb.CommandPage, error) {
	if len(f.toSend) == 0 {
		return nil, io.EOF
	}
	p := f.toSend[0]
	f.toSend = f.toSend[1:]
	return p, nil
}

func seedBook(t *testing.T, mem storage.Adapter, cover *pb.Cover) {
	t.Helper()
	_, err := mem.Append(context.Background(), cover, []*pb.EventPage{
		pb.NewEventPage(0, &anypb.Any{TypeUrl: "examples.ChargeCardInitiated"}, false),
		pb.NewEventPage(1, &anypb.Any{TypeUrl: "examples.ChargeCardSettled"}, false),
		pb.NewEventPage(2, &anypb.Any{TypeUrl: "examples.ReceiptSent"}, false),
	}, 0, false)
	require.NoError(t, err)
}

func TestGetEventBook_FullStreamByDefault(t *testing.T) {
	mem := storage.NewMemory()
	cover, _ := rootCover(t, "payments")
	seedBook(t, mem, cover)

	q := NewQueryServer(mem, []string{"payments"})
	book, err := q.GetEventBook(context.Background(), &pb.Query{Cover: cover})
	require.NoError(t, err)
	assert.Len(t, book.GetPages(), 3)
}

func TestGetEventBook_RequiresDomain(t *testing.T) {
	q := NewQueryServer(storage.NewMemory(), nil)
	_, err := q.GetEventBook(context.Background(), &pb.Query{Cover: &pb.Cover{}})
	assert.Error(t, err)
}

func TestGetEventBook_SequenceRange(t *testing.T) {
	mem := storage.NewMemory()
	cover, _ := rootCover(t, "payments")
	seedBook(t, mem, cover)

	upper := uint32(2)
	q := NewQueryServer(mem, []string{"payments"})
	book, err := q.GetEventBook(context.Background(), &pb.Query{
		Cover:     cover,
		Selection: &pb.Query_Range{Range: &pb.SequenceRange{Lower: 1, Upper: &upper}},
	})
	require.NoError(t, err)
	require.Len(t, book.GetPages(), 1)
	assert.Equal(t, uint32(1), book.GetPages()[0].GetSequence())
}

func TestGetEventBook_AsOfSequence(t *testing.T) {
	mem := storage.NewMemory()
	cover, _ := rootCover(t, "payments")
	seedBook(t, mem, cover)

	q := NewQueryServer(mem, []string{"payments"})
	book, err := q.GetEventBook(context.Background(), &pb.Query{
		Cover:     cover,
		Selection: &pb.Query_Temporal{Temporal: &pb.TemporalQuery{PointInTime: &pb.TemporalQuery_AsOfSequence{AsOfSequence: 1}}},
	})
	require.NoError(t, err)
	assert.Len(t, book.GetPages(), 2)
}

func TestGetEventBook_AsOfTime(t *testing.T) {
	mem := storage.NewMemory()
	cover, _ := rootCover(t, "payments")
	seedBook(t, mem, cover)

	q := NewQueryServer(mem, []string{"payments"})
	book, err := q.GetEventBook(context.Background(), &pb.Query{
		Cover:     cover,
		Selection: &pb.Query_Temporal{Temporal: &pb.TemporalQuery{PointInTime: &pb.TemporalQuery_AsOfTime{AsOfTime: timestamppb.Now()}}},
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(book.GetPages()), 3)
}

func TestGetEvents_StreamsEveryPage(t *testing.T) {
	mem := storage.NewMemory()
	cover, _ := rootCover(t, "payments")
	seedBook(t, mem, cover)

	q := NewQueryServer(mem, []string{"payments"})
	stream := &fakeGetEventsStream{fakeServerStream: fakeServerStream{ctx: context.Background()}}
	require.NoError(t, q.GetEvents(&pb.Query{Cover: cover}, stream))
	assert.Len(t, stream.sent, 3)
}

func TestGetAggregateRoots_WalksEveryKnownDomain(t *testing.T) {
	mem := storage.NewMemory()
	paymentsCover, _ := rootCover(t, "payments")
	ordersCover, _ := rootCover(t, "orders")
	seedBook(t, mem, paymentsCover)
	seedBook(t, mem, ordersCover)

	q := NewQueryServer(mem, []string{"payments", "orders"})
	stream := &fakeRootsStream{fakeServerStream: fakeServerStream{ctx: context.Background()}}
	require.NoError(t, q.GetAggregateRoots(&pb.Empty{}, stream))
	assert.Len(t, stream.sent, 2)
}

func TestSynchronize_ForceAppendsAndEchoes(t *testing.T) {
	mem := storage.NewMemory()
	cover, root := rootCover(t, "payments")

	q := NewQueryServer(mem, []string{"payments"})
	md := metadata.Pairs(MetadataDomain, "payments", MetadataRoot, root.String())
	ctx := metadata.NewIncomingContext(context.Background(), md)
	stream := &fakeSyncStream{
		fakeServerStream: fakeServerStream{ctx: ctx},
		toSend: []*pb.CommandPage{
			pb.NewCommandPage(0, &anypb.Any{TypeUrl: "examples.ChargeCard"}, true),
		},
	}

	err := q.Synchronize(stream)
	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, stream.recvd, 1)
	assert.Equal(t, uint32(0), stream.recvd[0].GetSequence())
}

func TestSynchronize_RequiresRoutingMetadata(t *testing.T) {
	q := NewQueryServer(storage.NewMemory(), nil)
	stream := &fakeSyncStream{fakeServerStream: fakeServerStream{ctx: context.Background()}}
	err := q.Synchronize(stream)
	assert.Error(t, err)
}
