package dataset

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydromap/internal/types"
)

func TestRemoteSourceRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/infrastructure", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		if calls.Add(1) == 1 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode([]types.InfrastructureAsset{{ID: "a1", Name: "Kutch"}})
	}))
	defer srv.Close()

	src := NewRemoteSource(srv.URL+"/", time.Second, quietLogger())
	got, err := src.ListInfrastructure(context.Background(), ListOptions{Limit: 3})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Kutch", got[0].Name)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRemoteSourceClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := NewRemoteSource(srv.URL, time.Second, quietLogger())
	_, err := src.ListInvestments(context.Background(), ListOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestRemoteSourceNullBodyIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	got, err := NewRemoteSource(srv.URL, time.Second, quietLogger()).ListPerformance(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRemoteSourceGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewRemoteSource(srv.URL, time.Second, quietLogger())
	src.maxElapsed = 300 * time.Millisecond
	_, err := src.ListInfrastructure(context.Background(), ListOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error 502")
}
