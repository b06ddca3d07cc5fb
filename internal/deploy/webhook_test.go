package deploy_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growth4u/contentflow/internal/deploy"
)

func TestWebhook_Notify(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/build_hooks/abc", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	hook := deploy.NewWebhook(ts.URL+"/build_hooks/abc", time.Second)
	require.NoError(t, hook.Notify(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
}

func TestWebhook_Notify_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	err := deploy.NewWebhook(ts.URL, time.Second).Notify(context.Background())
	assert.ErrorContains(t, err, "404")
}

func TestWebhook_Notify_EmptyURL(t *testing.T) {
	err := deploy.NewWebhook("", 0).Notify(context.Background())
	assert.ErrorContains(t, err, "misconfigured")
}
