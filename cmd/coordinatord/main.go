// Command coordinatord boots the coordination engine: the Aggregate, Saga,
// Process-Manager, Projector, and Speculative coordinators wired against a
// Storage Adapter and Bus Adapter backend selected from environment
// configuration, following the same bootstrap shape as the domain-side
// server (listen, register, health-check, graceful-stop-on-signal).
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/angzarr-io/angzarr/internal/bus"
	"github.com/angzarr-io/angzarr/internal/config"
	"github.com/angzarr-io/angzarr/internal/coordinator"
	"github.com/angzarr-io/angzarr/internal/gateway"
	"github.com/angzarr-io/angzarr/internal/storage"
	"github.com/angzarr-io/angzarr/internal/telemetry"
	pb "github.com/angzarr-io/angzarr/proto/angzarr"

	sdk "github.com/angzarr-io/angzarr/client/go"
)

func main() {
	cfg := config.FromEnv()
	logger := telemetry.NewLogger("coordinatord")
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storageAdapter, err := buildStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("build storage adapter", zap.Error(err))
	}
	busAdapter, err := buildBus(ctx, cfg)
	if err != nil {
		logger.Fatal("build bus adapter", zap.Error(err))
	}

	logic := coordinator.NewBusinessLogicRegistry()
	for _, e := range cfg.BusinessLogic {
		conn, err := dial(e.Addr)
		if err != nil {
			logger.Fatal("dial business logic", zap.String("domain", e.Domain), zap.Error(err))
		}
		logic.Register(e.Domain, pb.NewAggregateServiceClient(conn))
	}

	projectorRegistry := coordinator.NewProjectorRegistry()
	domains := map[string]struct{}{}
	for _, e := range cfg.Projectors {
		conn, err := dial(e.Addr)
		if err != nil {
			logger.Fatal("dial projector", zap.String("name", e.Name), zap.Error(err))
		}
		projectorRegistry.Register(&coordinator.ProjectorRegistration{Name: e.Name, Domain: e.Domain, Client: pb.NewProjectorServiceClient(conn)})
		domains[e.Domain] = struct{}{}
	}

	sagaRegistry := coordinator.NewSagaRegistry()
	for _, e := range cfg.Sagas {
		conn, err := dial(e.Addr)
		if err != nil {
			logger.Fatal("dial saga", zap.String("name", e.Name), zap.Error(err))
		}
		sagaRegistry.Register(&coordinator.SagaRegistration{Name: e.Name, SourceDomain: e.SourceDomain, EventSuffixes: e.EventSuffixes, Client: pb.NewSagaServiceClient(conn)})
		domains[e.SourceDomain] = struct{}{}
	}

	pmRegistry := coordinator.NewPMRegistry()
	for _, e := range cfg.ProcessManagers {
		conn, err := dial(e.Addr)
		if err != nil {
			logger.Fatal("dial process manager", zap.String("name", e.Name), zap.Error(err))
		}
		pmRegistry.Register(&coordinator.PMRegistration{Name: e.Name, SourceDomain: e.SourceDomain, PrereqKinds: e.PrereqKinds, Client: pb.NewProcessManagerServiceClient(conn)})
		domains[e.SourceDomain] = struct{}{}
	}

	editions := coordinator.NewEditionManager(storageAdapter)
	upcasters := coordinator.NewUpcasterRegistry()

	projectorCoord := coordinator.NewProjectorCoordinator(storageAdapter, busAdapter, projectorRegistry, cfg.RetryProjectorMaxAttempts, logger)

	aggregateCoord := &coordinator.AggregateCoordinator{
		Storage:              storageAdapter,
		Bus:                  busAdapter,
		Logic:                logic,
		Upcasters:            upcasters,
		Editions:             editions,
		Projectors:           projectorCoord,
		SnapshotReadEnabled:  cfg.SnapshotReadEnabled,
		SnapshotWriteEnabled: cfg.SnapshotWriteEnabled,
		CascadeMaxDepth:      cfg.CascadeMaxDepth,
		Logger:               logger,
	}

	sagaCoord := coordinator.NewSagaCoordinator(storageAdapter, busAdapter, sagaRegistry, aggregateCoord, cfg.RetrySagaMaxAttempts, logger)
	aggregateCoord.Sagas = sagaCoord

	pmCoord := coordinator.NewProcessManagerCoordinator(storageAdapter, busAdapter, pmRegistry, aggregateCoord, cfg.RetrySagaMaxAttempts, logger)
	rejectionRouter := coordinator.NewRejectionRouter(aggregateCoord, pmCoord, logger)
	sagaCoord.Router = rejectionRouter
	pmCoord.Router = rejectionRouter

	speculative := coordinator.NewSpeculativeCoordinator(aggregateCoord, projectorRegistry, sagaRegistry, pmRegistry)

	for domain := range domains {
		d := domain
		go func() {
			if err := projectorCoord.Run(ctx, d); err != nil && ctx.Err() == nil {
				logger.Error("projector coordinator subscription ended", zap.String("domain", d), zap.Error(err))
			}
		}()
		go func() {
			if err := sagaCoord.Run(ctx, d); err != nil && ctx.Err() == nil {
				logger.Error("saga coordinator subscription ended", zap.String("domain", d), zap.Error(err))
			}
		}()
		go func() {
			if err := pmCoord.Run(ctx, d); err != nil && ctx.Err() == nil {
				logger.Error("process manager coordinator subscription ended", zap.String("domain", d), zap.Error(err))
			}
		}()
	}

	transport := sdk.GetTransportConfig()
	if transport.Type != "uds" {
		transport.Address = fmt.Sprintf("[::]:%d", cfg.AggregatePort)
	}
	var listener net.Listener
	if transport.Type == "uds" {
		listener, err = net.Listen("unix", transport.Address)
	} else {
		listener, err = net.Listen("tcp", transport.Address)
	}
	if err != nil {
		logger.Fatal("listen", zap.Error(err))
	}

	domainList := make([]string, 0, len(domains))
	for d := range domains {
		domainList = append(domainList, d)
	}
	gw := gateway.NewGateway(aggregateCoord, storageAdapter, busAdapter, logger)
	queryServer := gateway.NewQueryServer(storageAdapter, domainList)

	server := grpc.NewServer()
	pb.RegisterAggregateCoordinatorServiceServer(server, aggregateCoord)
	pb.RegisterSagaCoordinatorServiceServer(server, sagaCoord)
	pb.RegisterProjectorCoordinatorServiceServer(server, projectorCoord)
	pb.RegisterSpeculativeServiceServer(server, speculative)
	pb.RegisterGatewayServiceServer(server, gw)
	pb.RegisterEventQueryServiceServer(server, queryServer)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	reflection.Register(server)

	// The REST/JSON transcoding surface dials the gRPC listener above as a
	// plain client, so it only stands up over TCP transport; a UDS-only
	// deployment serves gRPC exclusively.
	if transport.Type != "uds" {
		httpServer := buildHTTPGateway(cfg)
		go func() {
			<-ctx.Done()
			_ = httpServer.Close()
		}()
		go func() {
			logger.Info("coordinatord REST gateway listening", zap.Int("port", cfg.TopologyPort))
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("REST gateway exited", zap.Error(err))
			}
		}()
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down coordinatord")
		server.GracefulStop()
	}()

	logger.Info("coordinatord listening", zap.String("transport", transport.Type), zap.String("address", transport.Address))
	if err := server.Serve(listener); err != nil {
		logger.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

// buildHTTPGateway dials the coordinatord's own gRPC listener as a client
// (the hand-registered REST routes speak only gRPC client stubs) and serves
// the JSON transcoding mux on TopologyPort.
func buildHTTPGateway(cfg config.Config) *http.Server {
	conn, err := dial(fmt.Sprintf("127.0.0.1:%d", cfg.AggregatePort))
	if err != nil {
		panic(fmt.Sprintf("dial local gateway client: %v", err))
	}
	mux := gateway.NewHTTPMux(pb.NewGatewayServiceClient(conn))
	return &http.Server{Addr: fmt.Sprintf("[::]:%d", cfg.TopologyPort), Handler: mux}
}

func dial(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func buildStorage(ctx context.Context, cfg config.Config) (storage.Adapter, error) {
	switch cfg.StorageType {
	case config.StorageMemory:
		return storage.NewMemory(), nil
	case config.StoragePostgres:
		return storage.NewPostgres(ctx, cfg.PostgresDSN)
	case config.StorageRedis:
		return storage.NewRedis(cfg.RedisAddr)
	case config.StorageSQLite:
		return storage.NewSQLite(cfg.SQLiteDSN)
	case config.StorageBigtable:
		return storage.NewBigtable(ctx, cfg.BigtableProject, cfg.BigtableInstance)
	case config.StorageDynamoDB:
		return storage.NewDynamoDB(ctx)
	case config.StorageImmudb:
		host, port, err := net.SplitHostPort(cfg.ImmudbAddr)
		if err != nil {
			return nil, fmt.Errorf("parse immudb addr %q: %w", cfg.ImmudbAddr, err)
		}
		p, err := net.LookupPort("tcp", port)
		if err != nil {
			return nil, fmt.Errorf("parse immudb port %q: %w", port, err)
		}
		return storage.NewImmuDB(ctx, host, p, cfg.ImmudbUsername, cfg.ImmudbPassword, "defaultdb")
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
}

func buildBus(ctx context.Context, cfg config.Config) (bus.Adapter, error) {
	switch cfg.BusType {
	case config.BusChannel:
		return bus.NewChannel(), nil
	case config.BusAMQP:
		return bus.NewAMQP(cfg.AMQPURL)
	case config.BusKafka:
		return bus.NewKafka(cfg.KafkaBrokers), nil
	case config.BusPubSub:
		return bus.NewGCPPubSub(ctx, cfg.PubSubProject)
	case config.BusAWSSQS:
		return bus.NewAWSSQS(ctx)
	default:
		return nil, fmt.Errorf("unknown bus type %q", cfg.BusType)
	}
}
