package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/anypb"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

// No protoc-gen-grpc-gateway run over proto/angzarr (it is hand-maintained,
// not protoc-generated — see the package doc in proto/angzarr/types.go), so
// the REST routes below are registered directly against runtime.ServeMux
// via HandlePath rather than through generated RegisterXHandler functions.
// Each handler dials straight through to the Gateway's gRPC client stub, so
// the REST surface and the gRPC surface share one code path end to end.

// commandEnvelope is the REST wire shape for a command: the raw Any fields
// plus sequencing, kept flat because the hand-maintained CommandBook type's
// oneof payload doesn't round-trip through encoding/json on its own.
type commandEnvelope struct {
	TypeURL          string `json:"type_url"`
	Value            []byte `json:"value"`
	ExpectedSequence uint32 `json:"expected_sequence"`
	ForceFlag        bool   `json:"force_flag"`
	SyncMode         string `json:"sync_mode"`
	Edition          string `json:"edition"`
	CorrelationID    string `json:"correlation_id"`
}

var syncModeByName = map[string]pb.SyncMode{
	"":        pb.SyncMode_NONE,
	"NONE":    pb.SyncMode_NONE,
	"SIMPLE":  pb.SyncMode_SIMPLE,
	"CASCADE": pb.SyncMode_CASCADE,
}

// NewHTTPMux builds the JSON/REST transcoding surface for the Gateway
// service: POST to execute a command, GET to read one of the three bounded
// streaming variants as newline-delimited JSON.
func NewHTTPMux(client pb.GatewayServiceClient) *runtime.ServeMux {
	mux := runtime.NewServeMux()
	mux.HandlePath(http.MethodPost, "/v1/{domain}/{root}/execute", executeHandler(client))
	mux.HandlePath(http.MethodGet, "/v1/{domain}/{root}/stream/count/{count}", streamCountHandler(client))
	mux.HandlePath(http.MethodGet, "/v1/{domain}/{root}/stream/time/{duration_ms}", streamTimeHandler(client))
	mux.HandlePath(http.MethodGet, "/v1/{domain}/{root}/stream/sentinel/{end_type_url_suffix}", streamSentinelHandler(client))
	return mux
}

func executeHandler(client pb.GatewayServiceClient) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		var env commandEnvelope
		if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		root, err := rootUUIDBytes(pathParams["root"])
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		cover := &pb.Cover{Domain: pathParams["domain"], Root: &pb.UUID{Value: root}, CorrelationId: env.CorrelationID}
		cmd := &pb.CommandBook{
			Cover: cover,
			Pages: []*pb.CommandPage{pb.NewCommandPage(env.ExpectedSequence, &anypb.Any{TypeUrl: env.TypeURL, Value: env.Value}, env.ForceFlag)},
		}
		resp, err := client.Execute(r.Context(), &pb.GatewayRequest{Command: cmd, SyncMode: syncModeByName[env.SyncMode], Edition: env.Edition})
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func streamCountHandler(client pb.GatewayServiceClient) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		count, err := strconv.ParseUint(pathParams["count"], 10, 32)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		ctx := outgoingCover(r.Context(), pathParams)
		stream, err := client.StreamByCount(ctx, &pb.StreamCountOptions{Count: uint32(count)})
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}
		streamPages(w, func() (*pb.EventPage, error) { return stream.Recv() })
	}
}

func streamTimeHandler(client pb.GatewayServiceClient) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		durationMs, err := strconv.ParseUint(pathParams["duration_ms"], 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		ctx := outgoingCover(r.Context(), pathParams)
		stream, err := client.StreamByTime(ctx, &pb.StreamTimeOptions{DurationMs: durationMs})
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}
		streamPages(w, func() (*pb.EventPage, error) { return stream.Recv() })
	}
}

func streamSentinelHandler(client pb.GatewayServiceClient) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		ctx := outgoingCover(r.Context(), pathParams)
		stream, err := client.StreamBySentinel(ctx, &pb.StreamSentinelOptions{EndTypeUrlSuffix: pathParams["end_type_url_suffix"]})
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}
		streamPages(w, func() (*pb.EventPage, error) { return stream.Recv() })
	}
}

// outgoingCover forwards the REST path's domain/root as outgoing gRPC
// metadata; the dialed gRPC server receives it as incoming metadata, which
// coverFromContext reads back out.
func outgoingCover(ctx context.Context, pathParams map[string]string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, MetadataDomain, pathParams["domain"], MetadataRoot, pathParams["root"])
}

func streamPages(w http.ResponseWriter, recv func() (*pb.EventPage, error)) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)
	for {
		page, err := recv()
		if err != nil {
			return
		}
		if err := enc.Encode(page); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func rootUUIDBytes(s string) ([]byte, error) {
	root, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return root.MarshalBinary()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
