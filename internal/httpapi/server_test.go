package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/pocl/internal/httpapi"
	"github.com/aretw0/pocl/internal/search"
	"github.com/aretw0/pocl/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHealth(t *testing.T) {
	handler := httpapi.NewHandler(memory.New(), nil)
	req, _ := http.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetSession_NotFound(t *testing.T) {
	handler := httpapi.NewHandler(memory.New(), nil)
	req, _ := http.NewRequest("GET", "/sessions/missing", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetSessionAndFrontier(t *testing.T) {
	s := memory.New()
	cp := search.Checkpoint{
		SessionID: "sess-1",
		FLimit:    2,
		Queues: []search.QueueSnapshot{
			{Name: "default", PlanIDs: []int64{1, 2}, Limit: 0, Expansions: 3},
		},
	}
	require.NoError(t, s.Save(context.Background(), "sess-1", cp))

	handler := httpapi.NewHandler(s, nil)

	req, _ := http.NewRequest("GET", "/sessions/sess-1", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req2, _ := http.NewRequest("GET", "/sessions/sess-1/frontier", nil)
	rr2 := httptest.NewRecorder()
	handler.ServeHTTP(rr2, req2)
	assert.Equal(t, http.StatusOK, rr2.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr2.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["f_limit"])
}

func TestGetPlan_InFrontier(t *testing.T) {
	s := memory.New()
	cp := search.Checkpoint{
		SessionID: "sess-2",
		Queues: []search.QueueSnapshot{
			{Name: "default", PlanIDs: []int64{7}},
		},
	}
	require.NoError(t, s.Save(context.Background(), "sess-2", cp))

	handler := httpapi.NewHandler(s, nil)
	req, _ := http.NewRequest("GET", "/sessions/sess-2/plan/7", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
