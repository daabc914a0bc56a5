// Package gateway implements the Gateway service: the single externally
// facing entry point that routes a command to its domain's aggregate
// pipeline and serves the three bounded streaming read variants (by
// count, by wall-clock duration, by end-sentinel) over raw EventPages.
//
// StreamCountOptions/StreamTimeOptions/StreamSentinelOptions carry no
// cover — the REST surface identifies the target aggregate by URL path
// (/v1/{domain}/{root}/stream/...), and the REST handlers in http.go forward
// those path segments as gRPC metadata ("angzarr-domain", "angzarr-root") on
// the outgoing streaming call, the same way the teacher's
// own handlers read routed path parameters off the request context.
package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/angzarr-io/angzarr/internal/bus"
	"github.com/angzarr-io/angzarr/internal/registry"
	"github.com/angzarr-io/angzarr/internal/storage"
	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// Metadata keys the REST handlers in http.go populate from the REST path and the
// streaming handlers below read back out of the incoming context.
const (
	MetadataDomain = "angzarr-domain"
	MetadataRoot   = "angzarr-root"
)

// aggregateDispatcher is the subset of AggregateCoordinator the Gateway
// routes commands through — one coordinatord process hosts exactly one
// AggregateCoordinator, so this is an in-process call, never a second gRPC
// hop; *coordinator.AggregateCoordinator satisfies it structurally.
type aggregateDispatcher interface {
	Handle(ctx context.Context, cb *pb.CommandBook) (*pb.CommandResponse, error)
	HandleSync(ctx context.Context, scb *pb.SyncCommandBook) (*pb.CommandResponse, error)
}

// Gateway implements pb.GatewayServiceServer.
type Gateway struct {
	pb.UnimplementedGatewayServiceServer

	Aggregates aggregateDispatcher
	Storage    storage.Adapter
	Bus        bus.Adapter

	Logger *zap.Logger
}

func NewGateway(aggregates aggregateDispatcher, storageAdapter storage.Adapter, busAdapter bus.Adapter, logger *zap.Logger) *Gateway {
	return &Gateway{Aggregates: aggregates, Storage: storageAdapter, Bus: busAdapter, Logger: logger}
}

func (g *Gateway) logger() *zap.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return zap.NewNop()
}

// Execute routes req.Command to the business-logic pipeline under the
// requested SyncMode. A non-empty req.Edition overrides whatever edition
// selector the command's own cover carries, so a REST caller can target an
// edition purely via the envelope without the client SDK needing to know
// about it.
func (g *Gateway) Execute(ctx context.Context, req *pb.GatewayRequest) (*pb.CommandResponse, error) {
	cmd := req.GetCommand()
	if cmd == nil {
		return nil, status.Error(codes.InvalidArgument, "command is required")
	}
	if edition := req.GetEdition(); edition != "" {
		if cmd.Cover == nil {
			cmd.Cover = &pb.Cover{}
		}
		cmd.Cover.Edition = &pb.Edition{Name: edition}
	}
	if req.GetSyncMode() == pb.SyncMode_NONE {
		return g.Aggregates.Handle(ctx, cmd)
	}
	return g.Aggregates.HandleSync(ctx, &pb.SyncCommandBook{Command: cmd, SyncMode: req.GetSyncMode()})
}

// coverFromContext resolves the target aggregate from the path-routed
// metadata the REST handlers in http.go attach to a streaming call.
func coverFromContext(ctx context.Context) (*pb.Cover, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "no routing metadata on stream")
	}
	domain := firstValue(md, MetadataDomain)
	rootStr := firstValue(md, MetadataRoot)
	if domain == "" || rootStr == "" {
		return nil, status.Error(codes.InvalidArgument, "stream requires domain and root in routing metadata")
	}
	root, err := uuid.Parse(rootStr)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid root %q: %v", rootStr, err)
	}
	rootBytes, err := root.MarshalBinary()
	if err != nil {
		return nil, status.Error(codes.Internal, "marshal root")
	}
	return &pb.Cover{Domain: domain, Root: &pb.UUID{Value: rootBytes}}, nil
}

func firstValue(md metadata.MD, key string) string {
	if vs := md.Get(key); len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// StreamByCount replays up to opts.Count pages of the target aggregate's
// current history — a bounded historical window read straight off the
// Storage Adapter, no bus involvement.
func (g *Gateway) StreamByCount(opts *pb.StreamCountOptions, stream pb.GatewayService_StreamByCountServer) error {
	cover, err := coverFromContext(stream.Context())
	if err != nil {
		return err
	}
	book, err := g.Storage.Load(stream.Context(), cover, 0, nil, false)
	if err != nil {
		return status.Errorf(codes.Internal, "load history: %v", err)
	}
	pages := book.GetPages()
	limit := int(opts.GetCount())
	if limit > 0 && limit < len(pages) {
		pages = pages[:limit]
	}
	for _, p := range pages {
		if err := stream.Send(p); err != nil {
			return err
		}
	}
	return nil
}

// StreamByTime tails the bus for the target aggregate's domain, forwarding
// only pages whose root matches, for up to opts.DurationMs before ending
// the stream cleanly.
func (g *Gateway) StreamByTime(opts *pb.StreamTimeOptions, stream pb.GatewayService_StreamByTimeServer) error {
	cover, err := coverFromContext(stream.Context())
	if err != nil {
		return err
	}
	duration := time.Duration(opts.GetDurationMs()) * time.Millisecond
	if duration <= 0 {
		duration = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(stream.Context(), duration)
	defer cancel()

	group := fmt.Sprintf("gateway-stream-time-%x", cover.GetRoot().GetValue())
	err = g.Bus.Subscribe(ctx, cover.GetDomain(), group, func(_ context.Context, book *pb.EventBook) error {
		if !sameRoot(book.GetCover(), cover) {
			return nil
		}
		for _, p := range book.GetPages() {
			if sendErr := stream.Send(p); sendErr != nil {
				return sendErr
			}
		}
		return nil
	})
	if ctx.Err() != nil {
		return nil // duration elapsed or caller cancelled: a clean stream end
	}
	return err
}

// StreamBySentinel tails the bus for the target aggregate's domain until a
// page whose event type_url suffix matches opts.EndTypeUrlSuffix has been
// forwarded (inclusive), then ends the stream.
func (g *Gateway) StreamBySentinel(opts *pb.StreamSentinelOptions, stream pb.GatewayService_StreamBySentinelServer) error {
	cover, err := coverFromContext(stream.Context())
	if err != nil {
		return err
	}
	suffix := opts.GetEndTypeUrlSuffix()
	ctx, cancel := context.WithCancel(stream.Context())
	defer cancel()

	sentinelSeen := errSentinelReached
	group := fmt.Sprintf("gateway-stream-sentinel-%x", cover.GetRoot().GetValue())
	err = g.Bus.Subscribe(ctx, cover.GetDomain(), group, func(_ context.Context, book *pb.EventBook) error {
		if !sameRoot(book.GetCover(), cover) {
			return nil
		}
		for _, p := range book.GetPages() {
			if sendErr := stream.Send(p); sendErr != nil {
				return sendErr
			}
			if suffix != "" && strings.HasSuffix(registry.TypeSuffix(p.GetEvent().GetTypeUrl()), suffix) {
				cancel()
				return sentinelSeen
			}
		}
		return nil
	})
	if err == sentinelSeen || ctx.Err() != nil {
		return nil
	}
	return err
}

func sameRoot(a, b *pb.Cover) bool {
	av, bv := a.GetRoot().GetValue(), b.GetRoot().GetValue()
	if len(av) != len(bv) {
		return false
	}
	for i := range av {
		if av[i] != bv[i] {
			return false
		}
	}
	return true
}

// errSentinelReached is a sentinel value (not a user-facing error) the
// subscribe handler returns, right after cancelling its context, once the
// end marker has been forwarded; the bus's retry loop treats it like any
// other handler error, but the cancelled context ends the loop instead of a
// retry, and this value is swallowed immediately above.
var errSentinelReached = fmt.Errorf("sentinel reached")
