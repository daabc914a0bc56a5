package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	pb "github.com/angzarr-io/angzarr/proto/angzarr"
)

func TestNewHTTPMux_UnknownRouteNotFound(t *testing.T) {
	mux := NewHTTPMux(nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/unknown", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSyncModeByName_DefaultsToNone(t *testing.T) {
	assert.Equal(t, pb.SyncMode_NONE, syncModeByName[""])
	assert.Equal(t, pb.SyncMode_CASCADE, syncModeByName["CASCADE"])
}
