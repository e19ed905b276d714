package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zakatkuy/amil/internal/pkg/constants"
)

func newTestClient() *Client {
	return NewClient(WithRetries(3), WithInterval(time.Millisecond))
}

func TestGet_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	body, err := newTestClient().Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestGet_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("done"))
	}))
	defer server.Close()

	body, err := newTestClient().Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "done", string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGet_ClientErrorIsPermanent(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient().Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, constants.ErrNetworkFetch))
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(WithRetries(0), WithInterval(time.Millisecond)).Get(context.Background(), url)
	require.Error(t, err)
	assert.True(t, errors.Is(err, constants.ErrNetworkFetch))
}
