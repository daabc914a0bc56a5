package gateway

import (
	"context"
	"sort"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/angzarr-io/angzarr/internal/storage"
	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// QueryServer implements EventQueryServiceServer directly over the Storage
// Adapter: the read-side surface for a single aggregate's event stream
// plus cross-aggregate root enumeration, independent of the Aggregate
// Coordinator's write pipeline.
type QueryServer struct {
	pb.UnimplementedEventQueryServiceServer

	Storage storage.Adapter

	// Domains is every domain this coordinatord process has business
	// logic, a saga, a process manager, or a projector registered for —
	// GetAggregateRoots has no per-call domain filter (Empty), so
	// cross-aggregate enumeration walks this known set.
	Domains []string
}

func NewQueryServer(storageAdapter storage.Adapter, domains []string) *QueryServer {
	return &QueryServer{Storage: storageAdapter, Domains: domains}
}

// GetEventBook resolves a Query's selection (full stream, sequence range,
// or as-of-sequence/as-of-time point-in-time) into a single EventBook.
func (q *QueryServer) GetEventBook(ctx context.Context, query *pb.Query) (*pb.EventBook, error) {
	cover := query.GetCover()
	if cover.GetDomain() == "" {
		return nil, status.Error(codes.InvalidArgument, "cover.domain is required")
	}

	if rng := query.GetRange(); rng != nil {
		book, err := q.Storage.Load(ctx, cover, rng.Lower, rng.Upper, false)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "load range: %v", err)
		}
		return book, nil
	}

	if temporal := query.GetTemporal(); temporal != nil {
		return q.loadTemporal(ctx, cover, temporal)
	}

	book, err := q.Storage.Load(ctx, cover, 0, nil, true)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "load: %v", err)
	}
	return book, nil
}

func (q *QueryServer) loadTemporal(ctx context.Context, cover *pb.Cover, temporal *pb.TemporalQuery) (*pb.EventBook, error) {
	switch sel := temporal.PointInTime.(type) {
	case *pb.TemporalQuery_AsOfSequence:
		upper := sel.AsOfSequence + 1
		book, err := q.Storage.Load(ctx, cover, 0, &upper, false)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "load as-of-sequence: %v", err)
		}
		return book, nil
	case *pb.TemporalQuery_AsOfTime:
		book, err := q.Storage.Load(ctx, cover, 0, nil, false)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "load as-of-time: %v", err)
		}
		cutoff := sel.AsOfTime.AsTime()
		pages := book.GetPages()
		idx := sort.Search(len(pages), func(i int) bool {
			return pages[i].GetCreatedAt().AsTime().After(cutoff)
		})
		book.Pages = pages[:idx]
		return book, nil
	default:
		return nil, status.Error(codes.InvalidArgument, "temporal query requires a point_in_time selector")
	}
}

// GetEvents streams the pages GetEventBook would have returned, one at a
// time, for callers that want incremental delivery rather than a single
// response message.
func (q *QueryServer) GetEvents(query *pb.Query, stream pb.EventQueryService_GetEventsServer) error {
	book, err := q.GetEventBook(stream.Context(), query)
	if err != nil {
		return err
	}
	for _, p := range book.GetPages() {
		if err := stream.Send(p); err != nil {
			return err
		}
	}
	return nil
}

// Synchronize is a bidi replay/append loop bound to a single aggregate for
// the lifetime of the connection: CommandPage carries no cover of its own
// (unlike CommandBook), so the target is resolved once from the same
// routing metadata the Gateway's streaming reads use. Every page received
// is force-appended — the caller is presumed to already hold sequencing
// authority, e.g. a migration or replication tool driving this aggregate's
// stream directly — and every stored page from the received page's
// sequence onward, which includes the appended page, is echoed back.
func (q *QueryServer) Synchronize(stream pb.EventQueryService_SynchronizeServer) error {
	cover, err := coverFromContext(stream.Context())
	if err != nil {
		return err
	}
	for {
		cmdPage, err := stream.Recv()
		if err != nil {
			return err
		}
		page := pb.NewEventPage(cmdPage.GetSequence(), cmdPage.GetCommand(), true)
		book, err := q.Storage.Append(stream.Context(), cover, []*pb.EventPage{page}, cmdPage.GetSequence(), true)
		if err != nil {
			return status.Errorf(codes.Internal, "synchronize append: %v", err)
		}
		for _, p := range book.GetPages() {
			if p.GetSequence() >= cmdPage.GetSequence() {
				if err := stream.Send(p); err != nil {
					return err
				}
			}
		}
	}
}

// GetAggregateRoots streams every (domain, root) pair across every domain
// registered with this coordinatord process — Empty carries no filter, so
// this is a true cross-aggregate enumeration rather than a single-stream
// read.
func (q *QueryServer) GetAggregateRoots(_ *pb.Empty, stream pb.EventQueryService_GetAggregateRootsServer) error {
	ctx := stream.Context()
	for _, domain := range q.Domains {
		roots, err := q.Storage.ListRoots(ctx, domain)
		if err != nil {
			return status.Errorf(codes.Internal, "list roots for %q: %v", domain, err)
		}
		for root := range roots {
			if err := stream.Send(root); err != nil {
				return err
			}
		}
	}
	return nil
}

var _ pb.EventQueryServiceServer = (*QueryServer)(nil)
var _ pb.GatewayServiceServer = (*Gateway)(nil)
