package coordinator

import (
	"context"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/angzarr-io/angzarr/internal/storage"
	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// EditionManager is the single place every coordinator operation routes an
// optional edition selector through: with cover.edition set, reads/writes
// go to the edition's private store layered atop the main timeline; without
// one, they hit the main timeline directly. Every AggregateCoordinator
// Load/Append call goes through here rather than calling storage.Adapter
// directly, so edition routing never has to be reimplemented per call site.
type EditionManager struct {
	Storage storage.Adapter
}

func NewEditionManager(s storage.Adapter) *EditionManager {
	return &EditionManager{Storage: s}
}

// Load returns the edition view when cover selects one, otherwise the main
// timeline.
func (m *EditionManager) Load(ctx context.Context, cover *pb.Cover, fromSeq uint32, toSeq *uint32, useSnapshot bool) (*pb.EventBook, error) {
	if ed := cover.GetEdition(); ed != nil {
		return m.Storage.EditionLoad(ctx, ed.GetName(), cover, fromSeq, toSeq)
	}
	return m.Storage.Load(ctx, cover, fromSeq, toSeq, useSnapshot)
}

// Append writes to the edition's private store when cover selects one,
// otherwise the main timeline.
func (m *EditionManager) Append(ctx context.Context, cover *pb.Cover, pages []*pb.EventPage, expectedSeq uint32, force bool) (*pb.EventBook, error) {
	if ed := cover.GetEdition(); ed != nil {
		return m.Storage.EditionAppend(ctx, ed.GetName(), cover, pages, expectedSeq, force)
	}
	return m.Storage.Append(ctx, cover, pages, expectedSeq, force)
}

// Create registers a new named divergence point. Duplicate names are
// rejected by the underlying Storage Adapter.
func (m *EditionManager) Create(ctx context.Context, domain, name string, divergenceSeq uint32) error {
	return m.Storage.CreateEdition(ctx, &pb.EditionDescriptor{
		Name:               name,
		Domain:             domain,
		DivergenceSequence: divergenceSeq,
		CreatedAt:          timestamppb.Now(),
	})
}

// Delete purges only the edition's private pages; the main timeline is
// untouched.
func (m *EditionManager) Delete(ctx context.Context, domain, name string) error {
	return m.Storage.DeleteEdition(ctx, domain, name)
}
