package coordinator

import (
	"sync"

	angzarr "github.com/angzarr-io/angzarr/client/go"
	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// UpcasterRegistry is the coordinator-side counterpart to the client SDK's
// per-domain angzarr.UpcasterRouter: it is consulted on every load, not
// just by handlers that opt in, so historical events are always normalized
// to current schema before domain logic or any coordinator sees them.
// Transform functions never mutate stored pages — angzarr.UpcasterRouter.
// Upcast already clones before replacing the event payload.
type UpcasterRegistry struct {
	mu      sync.RWMutex
	routers map[string]*angzarr.UpcasterRouter
}

func NewUpcasterRegistry() *UpcasterRegistry {
	return &UpcasterRegistry{routers: make(map[string]*angzarr.UpcasterRouter)}
}

// Register installs (or replaces) the router for a domain.
func (u *UpcasterRegistry) Register(router *angzarr.UpcasterRouter) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.routers[router.Domain()] = router
}

// Apply runs every page in book through the domain's registered upcaster,
// if any. Domains without a registered router pass through unchanged.
func (u *UpcasterRegistry) Apply(book *pb.EventBook) *pb.EventBook {
	if book == nil {
		return nil
	}
	u.mu.RLock()
	router, ok := u.routers[book.GetCover().GetDomain()]
	u.mu.RUnlock()
	if !ok {
		return book
	}
	upcasted := *book
	upcasted.Pages = router.Upcast(book.Pages)
	return &upcasted
}
