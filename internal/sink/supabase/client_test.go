package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/sink"
)

func testSubmission() *sink.Submission {
	return &sink.Submission{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Subject: "Hello",
		Message: "This is a test message.",
	}
}

func TestClient_Insert_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/contact_submissions", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var rows []map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rows))
		require.Len(t, rows, 1)
		assert.Equal(t, map[string]string{
			"name":    "Jane Doe",
			"email":   "jane@x.com",
			"subject": "Hello",
			"message": "This is a test message.",
		}, rows[0])

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := New(Config{URL: server.URL + "/", APIKey: "anon-key"})

	err := client.Insert(context.Background(), testSubmission())
	require.NoError(t, err)
}

func TestClient_Insert_MissingConfigMakesNoRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	tests := []Config{
		{},
		{URL: server.URL},
		{APIKey: "anon-key"},
		{URL: "not a url", APIKey: "anon-key"},
	}
	for _, cfg := range tests {
		client := New(cfg)
		err := client.Insert(context.Background(), testSubmission())

		require.Error(t, err)
		assert.Equal(t, sink.KindConfig, sink.KindOf(err))
		assert.ErrorIs(t, err, sink.ErrNotConfigured)
	}
	assert.Zero(t, hits.Load())
	assert.False(t, New(Config{URL: server.URL}).Configured())
	assert.True(t, New(Config{URL: server.URL, APIKey: "k"}).Configured())
}

func TestClient_Insert_RemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"code":"42501","message":"new row violates row-level security policy","details":null,"hint":null}`)
	}))
	defer server.Close()

	err := New(Config{URL: server.URL, APIKey: "anon-key"}).Insert(context.Background(), testSubmission())

	require.Error(t, err)
	assert.Equal(t, sink.KindRemote, sink.KindOf(err))
	assert.Equal(t, "new row violates row-level security policy", sink.MessageOf(err))
}

func TestClient_Insert_RemoteErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := New(Config{URL: server.URL, APIKey: "anon-key"}).Insert(context.Background(), testSubmission())

	require.Error(t, err)
	assert.Equal(t, sink.KindRemote, sink.KindOf(err))
	assert.Empty(t, sink.MessageOf(err))
}

func TestClient_Insert_GatewayErrorIsNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := New(Config{URL: server.URL, APIKey: "anon-key"}).Insert(context.Background(), testSubmission())

	assert.Equal(t, sink.KindNetwork, sink.KindOf(err))
}

func TestClient_Insert_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	err := New(Config{URL: addr, APIKey: "anon-key", Timeout: 2 * time.Second}).Insert(context.Background(), testSubmission())

	require.Error(t, err)
	assert.Equal(t, sink.KindNetwork, sink.KindOf(err))
}

func TestClient_Insert_CustomTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/messages", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := New(Config{URL: server.URL, APIKey: "k", Table: "messages"}).WithHTTPClient(server.Client())

	require.NoError(t, client.Insert(context.Background(), testSubmission()))
}
