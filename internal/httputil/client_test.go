// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scisearch/pkg/types"
)

func TestDoSetsUserAgent(t *testing.T) {
	var gotUA atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c, err := NewClient(types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "scisearch-test/0.1"}, 100, 10)
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), ts.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "scisearch-test/0.1", gotUA.Load())
}

func TestDoKeepsExplicitUserAgent(t *testing.T) {
	var gotUA atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
	}))
	defer ts.Close()

	c, err := NewClient(types.HTTPConfig{UserAgent: "default/1"}, 100, 10)
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "explicit/2")

	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "explicit/2", gotUA.Load())
}

func TestDoRespectsCancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	// Rate of one request per hour with burst 1: the second call must block
	// on the limiter and then fail when the context is cancelled.
	c, err := NewClient(types.HTTPConfig{}, 1.0/3600, 1)
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), ts.URL)
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Get(ctx, ts.URL)
	assert.Error(t, err)
}

func TestNewClientRejectsBadProxy(t *testing.T) {
	_, err := NewClient(types.HTTPConfig{ProxyURL: "http://bad url with spaces"}, 0, 0)
	assert.Error(t, err)
}
