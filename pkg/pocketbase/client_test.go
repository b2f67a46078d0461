package pocketbase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betpromo/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log, err := logger.New("error", "development")
	require.NoError(t, err)

	return NewClient(server.URL, log), server
}

func TestAuthWithPassword(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/collections/users/auth-with-password", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@betpromo.com", body["identity"])
		assert.Equal(t, "secret", body["password"])

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"token":"pb-token","record":{"id":"u-1","email":"admin@betpromo.com"}}`)
	})

	resp, err := client.AuthWithPassword(context.Background(), CollectionUsers, "admin@betpromo.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "pb-token", resp.Token)

	var record map[string]string
	require.NoError(t, json.Unmarshal(resp.Record, &record))
	assert.Equal(t, "u-1", record["id"])
}

func TestListWalksEveryPage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/collections/bookmakers/records", r.URL.Path)
		page := r.URL.Query().Get("page")

		w.Header().Set("Content-Type", "application/json")
		switch page {
		case "1":
			fmt.Fprint(w, `{"page":1,"perPage":2,"totalPages":2,"totalItems":3,"items":[{"id":"a"},{"id":"b"}]}`)
		default:
			fmt.Fprint(w, `{"page":2,"perPage":2,"totalPages":2,"totalItems":3,"items":[{"id":"c"}]}`)
		}
	})

	items, err := client.List(context.Background(), CollectionBookmakers, ListQuery{PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestListSinglePageWithFilter(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "-created", q.Get("sort"))
		assert.Equal(t, "month=1 && year=2026", q.Get("filter"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"page":1,"perPage":30,"totalPages":5,"totalItems":150,"items":[{"id":"x"}]}`)
	})

	items, err := client.List(context.Background(), CollectionBookmakers, ListQuery{
		Page:   1,
		Sort:   "-created",
		Filter: "month=1 && year=2026",
	})
	require.NoError(t, err)
	// Page > 0 fetches exactly one page, even with more available.
	assert.Len(t, items, 1)
}

func TestBearerTokenSentAfterSetToken(t *testing.T) {
	var seenAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"rec-1"}`)
	})

	client.SetToken("service-token")
	var out map[string]string
	require.NoError(t, client.Create(context.Background(), CollectionStats, map[string]int{"totalClicks": 0}, &out))
	assert.Equal(t, "Bearer service-token", seenAuth)
	assert.Equal(t, "rec-1", out["id"])
}

func TestUpdateAndDelete(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			assert.Equal(t, "/api/collections/bookmakers/records/p-1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":"p-1","clicks":5}`)
		case http.MethodDelete:
			assert.Equal(t, "/api/collections/bookmakers/records/p-2", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	})

	var out map[string]interface{}
	require.NoError(t, client.Update(context.Background(), CollectionBookmakers, "p-1", map[string]int{"clicks": 5}, &out))
	assert.Equal(t, "p-1", out["id"])

	require.NoError(t, client.Delete(context.Background(), CollectionBookmakers, "p-2"))
}

func TestAPIErrorDecoding(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status":404,"message":"The requested resource wasn't found."}`)
	})

	err := client.Delete(context.Background(), CollectionBookmakers, "missing")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.True(t, IsNotFound(err))
}
