package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavolo/dishsearch"
	"github.com/tavolo/dishsearch/embedding/mock"
	"github.com/tavolo/dishsearch/seed"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()

	db, err := dishsearch.Open(
		filepath.Join(dir, "catalog.db"),
		filepath.Join(dir, "vectors"),
		dishsearch.WithProvider(mock.NewMockProvider()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	indexer, err := db.NewIndexer()
	require.NoError(t, err)
	t.Cleanup(indexer.Release)

	require.NoError(t, seed.Seed(context.Background(), db.Catalog(), indexer))

	engine, err := db.NewEngine()
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewHandlers(engine, indexer).Routes(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	var body map[string]string
	status := getJSON(t, server.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
}

func TestStructuredSearchEndpoint(t *testing.T) {
	server := newTestServer(t)

	var body struct {
		DishIDs []int64 `json:"dish_ids"`
		Count   int     `json:"count"`
	}
	status := getJSON(t, server.URL+"/api/dishes/search?name=pizza&max_price=1300", &body)
	assert.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, body.Count)
}

func TestStructuredSearchWithDetails(t *testing.T) {
	server := newTestServer(t)

	var body struct {
		Dishes []struct {
			Name       string  `json:"Name"`
			Price      float64 `json:"Price"`
			Restaurant string  `json:"Restaurant"`
		} `json:"dishes"`
	}
	status := getJSON(t, server.URL+"/api/dishes/search?category=burgers&details=true", &body)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body.Dishes, 2)
	// Sorted by ascending price.
	assert.Equal(t, "Spicy Chicken Burger", body.Dishes[0].Name)
	assert.Equal(t, "Classic Cheeseburger", body.Dishes[1].Name)
	assert.Equal(t, "Burger Heaven", body.Dishes[0].Restaurant)
}

func TestTextSearchEndpoint(t *testing.T) {
	server := newTestServer(t)

	var body struct {
		Locale  string `json:"locale"`
		Label   string `json:"label"`
		Matches []struct {
			DishID int64 `json:"dish_id"`
		} `json:"matches"`
	}
	status := postJSON(t, server.URL+"/api/dishes/search-by-text",
		map[string]any{"query": "bghit pizza bzaf", "k": 3}, &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "da", body.Locale)
	assert.NotEmpty(t, body.Label)
	assert.NotEmpty(t, body.Matches)
	assert.LessOrEqual(t, len(body.Matches), 3)
}

func TestTextSearchRequiresQuery(t *testing.T) {
	server := newTestServer(t)

	var body map[string]string
	status := postJSON(t, server.URL+"/api/dishes/search-by-text", map[string]any{"k": 3}, &body)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestVectorSearchDimensionMismatch(t *testing.T) {
	server := newTestServer(t)

	var body map[string]string
	status := postJSON(t, server.URL+"/api/dishes/search",
		map[string]any{"embedding": []float32{1, 2, 3}, "k": 3}, &body)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetDishEndpoint(t *testing.T) {
	server := newTestServer(t)

	var detail struct {
		Name string `json:"Name"`
	}
	status := getJSON(t, server.URL+"/api/dishes/1", &detail)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, detail.Name)

	var errBody map[string]string
	status = getJSON(t, server.URL+"/api/dishes/99999", &errBody)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSimilarEndpoint(t *testing.T) {
	server := newTestServer(t)

	var body struct {
		Matches []struct {
			DishID int64 `json:"dish_id"`
		} `json:"matches"`
	}
	status := getJSON(t, server.URL+"/api/dishes/1/similar?k=3", &body)
	assert.Equal(t, http.StatusOK, status)
	for _, m := range body.Matches {
		assert.NotEqual(t, int64(1), m.DishID)
	}

	var errBody map[string]string
	status = getJSON(t, server.URL+"/api/dishes/99999/similar", &errBody)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestVerifyEndpoint(t *testing.T) {
	server := newTestServer(t)

	var body struct {
		Clean bool `json:"clean"`
	}
	status := getJSON(t, server.URL+"/api/index/verify", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.Clean)
}
