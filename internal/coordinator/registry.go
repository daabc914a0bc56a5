// Package coordinator implements the orchestration engine: the Aggregate,
// Saga, Process-Manager and Projector coordinators, the rejection/
// compensation router, the edition manager, and the speculative (dry-run)
// pipeline variant. Every coordinator talks to domain logic over the
// AggregateService/SagaService/ProjectorService/ProcessManagerService
// client stubs in proto/angzarr — dispatch is registry-driven, never
// inheritance-based, matching the type-URL-suffix tagged-union dispatch
// used on the wire.
package coordinator

import (
	"fmt"
	"sync"

	"github.com/angzarr-io/angzarr/internal/registry"
	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// BusinessLogicRegistry maps a domain name to the gRPC client for that
// domain's aggregate business logic. One domain, one backing service.
type BusinessLogicRegistry struct {
	mu      sync.RWMutex
	clients map[string]pb.AggregateServiceClient
}

func NewBusinessLogicRegistry() *BusinessLogicRegistry {
	return &BusinessLogicRegistry{clients: make(map[string]pb.AggregateServiceClient)}
}

func (r *BusinessLogicRegistry) Register(domain string, client pb.AggregateServiceClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[domain] = client
}

func (r *BusinessLogicRegistry) Lookup(domain string) (pb.AggregateServiceClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[domain]
	if !ok {
		return nil, fmt.Errorf("no business logic registered for domain %q", domain)
	}
	return c, nil
}

// SagaRegistration describes one saga's subscription: which event type
// suffixes it reacts to (source domain included), and the client used to
// invoke its Prepare/Execute protocol.
type SagaRegistration struct {
	Name          string
	SourceDomain  string
	EventSuffixes []string
	Client        pb.SagaServiceClient
}

func (s *SagaRegistration) matches(typeURL string) bool {
	return registry.Matches(typeURL, s.EventSuffixes)
}

// SagaRegistry holds every registered saga, keyed by name for direct lookup
// and scanned linearly for event-subscription matching (the saga count per
// deployment is small relative to event volume).
type SagaRegistry struct {
	mu     sync.RWMutex
	byName map[string]*SagaRegistration
}

func NewSagaRegistry() *SagaRegistry {
	return &SagaRegistry{byName: make(map[string]*SagaRegistration)}
}

func (r *SagaRegistry) Register(reg *SagaRegistration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[reg.Name] = reg
}

func (r *SagaRegistry) Lookup(name string) (*SagaRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.byName[name]
	return reg, ok
}

// MatchingSagas returns every saga subscribed to the given event's domain
// and type_url. Registrations are held in a map, so the order of the result
// is not defined.
func (r *SagaRegistry) MatchingSagas(domain, typeURL string) []*SagaRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*SagaRegistration
	for _, reg := range r.byName {
		if reg.SourceDomain == domain && reg.matches(typeURL) {
			out = append(out, reg)
		}
	}
	return out
}

// ForDomain returns every saga subscribed to a source domain, in no defined
// order, regardless of which event types it reacts to —
// callers that need to track per-saga checkpoints across every page of a
// delivered book use this rather than MatchingSagas.
func (r *SagaRegistry) ForDomain(domain string) []*SagaRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*SagaRegistration
	for _, reg := range r.byName {
		if reg.SourceDomain == domain {
			out = append(out, reg)
		}
	}
	return out
}

// ProjectorRegistration describes one projector's subscription.
type ProjectorRegistration struct {
	Name   string
	Domain string
	Client pb.ProjectorServiceClient
}

type ProjectorRegistry struct {
	mu     sync.RWMutex
	byName map[string]*ProjectorRegistration
}

func NewProjectorRegistry() *ProjectorRegistry {
	return &ProjectorRegistry{byName: make(map[string]*ProjectorRegistration)}
}

func (r *ProjectorRegistry) Register(reg *ProjectorRegistration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[reg.Name] = reg
}

func (r *ProjectorRegistry) Lookup(name string) (*ProjectorRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.byName[name]
	return reg, ok
}

// ForDomain returns every projector subscribed to a domain, in no defined
// order.
func (r *ProjectorRegistry) ForDomain(domain string) []*ProjectorRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*ProjectorRegistration
	for _, reg := range r.byName {
		if reg.Domain == domain {
			out = append(out, reg)
		}
	}
	return out
}

// PMRegistration describes one process manager's correlation-keyed fan-in:
// the set of prerequisite kinds it waits on, and the client used to ask it
// to Prepare and then Handle once every prerequisite kind has been observed.
type PMRegistration struct {
	Name         string
	SourceDomain string
	PrereqKinds  []string
	Client       pb.ProcessManagerServiceClient
}

type PMRegistry struct {
	mu     sync.RWMutex
	byName map[string]*PMRegistration
}

func NewPMRegistry() *PMRegistry {
	return &PMRegistry{byName: make(map[string]*PMRegistration)}
}

func (r *PMRegistry) Register(reg *PMRegistration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[reg.Name] = reg
}

func (r *PMRegistry) Lookup(name string) (*PMRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.byName[name]
	return reg, ok
}

func (r *PMRegistry) ForDomain(domain string) []*PMRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*PMRegistration
	for _, reg := range r.byName {
		if reg.SourceDomain == domain {
			out = append(out, reg)
		}
	}
	return out
}

// TypeSuffix returns the dispatch key used throughout the coordinator: the
// trailing ".MessageName" component of a type_url. Delegates to the
// registry package so saga matching and compensation lookup apply the
// exact same suffix convention.
func TypeSuffix(typeURL string) string {
	return registry.TypeSuffix(typeURL)
}
