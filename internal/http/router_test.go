package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Festongithub/onesoko-storefront/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := newTestStore(t)
	cartHandler := NewCartHandler(store, productGetterMock{product: stockedProduct("p1", "10.00", 5)}, &orderSubmitterMock{}, nil)
	catalogHandler := NewCatalogHandler(listerMock{}, productGetterMock{}, categoriesMock{}, shopsMock{}, reviewsMock{})
	return NewRouter(cartHandler, catalogHandler, monitor.New(), 5*time.Second)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body []byte, session string) *httptest.ResponseRecorder {
	t.Helper()
	var request *http.Request
	if body != nil {
		request = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		request = httptest.NewRequest(method, path, nil)
	}
	if session != "" {
		request.Header.Set("X-Session-ID", session)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestRouter_CartLifecycle(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(addItemRequest{ProductID: "p1", Quantity: 2})
	recorder := doJSON(t, router, "POST", "/api/v1/cart/items", body, "session-1")
	require.Equal(t, http.StatusCreated, recorder.Code)

	var view cartView
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&view))
	require.Len(t, view.Items, 1)
	itemID := view.Items[0].ID

	update, _ := json.Marshal(updateQuantityRequest{Quantity: 4})
	recorder = doJSON(t, router, "PUT", "/api/v1/cart/items/"+itemID, update, "session-1")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&view))
	assert.Equal(t, 4, view.TotalItems)

	recorder = doJSON(t, router, "DELETE", "/api/v1/cart/items/"+itemID, nil, "session-1")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&view))
	assert.Empty(t, view.Items)
}

func TestRouter_SessionIsolation(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(addItemRequest{ProductID: "p1", Quantity: 2})
	recorder := doJSON(t, router, "POST", "/api/v1/cart/items", body, "session-a")
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = doJSON(t, router, "GET", "/api/v1/cart/", nil, "session-b")
	require.Equal(t, http.StatusOK, recorder.Code)

	var view cartView
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&view))
	assert.Empty(t, view.Items)
}

func TestRouter_CartRequiresSession(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, "GET", "/api/v1/cart/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRouter_BearerTokenResolvesOwner(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(addItemRequest{ProductID: "p1", Quantity: 1})
	request := httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body))
	request.Header.Set("Authorization", "Bearer some-jwt")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code)

	// Same token, same cart.
	request = httptest.NewRequest("GET", "/api/v1/cart/", nil)
	request.Header.Set("Authorization", "Bearer some-jwt")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var view cartView
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&view))
	assert.Equal(t, 1, view.TotalItems)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, "GET", "/health", nil, "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_DebugMetricsCountsRequests(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, "GET", "/health", nil, "")
	doJSON(t, router, "GET", "/health", nil, "")
	recorder := doJSON(t, router, "GET", "/debug/metrics", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var snap monitor.Snapshot
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&snap))
	assert.Greater(t, snap.Goroutines, 0)

	found := false
	for _, op := range snap.Operations {
		if op.Name == "GET /health" {
			found = true
			assert.Equal(t, uint64(2), op.Count)
		}
	}
	assert.True(t, found, "expected GET /health counter in snapshot")
}
