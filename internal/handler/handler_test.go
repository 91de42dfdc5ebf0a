package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/eats-storefront/internal/checkout"
	"github.com/xenking/eats-storefront/internal/client"
	"github.com/xenking/eats-storefront/internal/domain/order"
	"github.com/xenking/eats-storefront/internal/domain/restaurant"
	"github.com/xenking/eats-storefront/internal/domain/user"
	"github.com/xenking/eats-storefront/internal/search"
	"github.com/xenking/eats-storefront/internal/storage/memory"
)

// --- Fakes ---

type fakeBackend struct {
	restaurants map[string]*restaurant.Restaurant
	orders      []order.Order
	profile     *user.User

	lastSearchCity  string
	lastSearchState search.State
	searchResp      *client.SearchResponse

	calls        int
	sessionCalls int
	sessionURL   string
}

func (f *fakeBackend) GetRestaurant(_ context.Context, id string) (*restaurant.Restaurant, error) {
	f.calls++
	r, ok := f.restaurants[id]
	if !ok {
		return nil, restaurant.ErrNotFound
	}
	return r, nil
}

func (f *fakeBackend) SearchRestaurants(_ context.Context, city string, state search.State) (*client.SearchResponse, error) {
	f.calls++
	f.lastSearchCity = city
	f.lastSearchState = state
	return f.searchResp, nil
}

func (f *fakeBackend) GetMyOrders(context.Context) ([]order.Order, error) {
	f.calls++
	return f.orders, nil
}

func (f *fakeBackend) GetMyUser(context.Context) (*user.User, error) {
	f.calls++
	return f.profile, nil
}

func (f *fakeBackend) CreateCheckoutSession(_ context.Context, _ client.CheckoutSessionRequest, _ string) (*client.CheckoutSession, error) {
	f.calls++
	f.sessionCalls++
	return &client.CheckoutSession{URL: f.sessionURL}, nil
}

// --- Helpers ---

func newTestHandler(t *testing.T) (*Handler, *fakeBackend, *memory.Store) {
	t.Helper()
	backend := &fakeBackend{
		restaurants: map[string]*restaurant.Restaurant{
			"r1": {
				ID:            "r1",
				Name:          "Pasta Place",
				DeliveryPrice: 199,
				MenuItems: []restaurant.MenuItem{
					{ID: "m1", Name: "Margherita", Price: 850},
					{ID: "m2", Name: "Calzone", Price: 1050},
				},
			},
		},
		profile: &user.User{
			Email: "sam@example.com", Name: "Sam",
			AddressLine1: "1 High St", City: "manchester", Country: "uk",
		},
		searchResp: &client.SearchResponse{
			Data:       []restaurant.Restaurant{{ID: "r1"}},
			Pagination: client.Pagination{Total: 1, Page: 1, Pages: 1},
		},
		sessionURL: "https://pay.example/s/1",
	}
	store := memory.NewStore()
	h := New(backend, store, store, checkout.NewService(store, backend))
	return h, backend, store
}

func doRequest(t *testing.T, h *Handler, method, target, sid string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if sid != "" {
		req.Header.Set(SessionHeader, sid)
	}
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func decodeCartResponse(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// --- Tests ---

func TestGetCart_FirstVisitIsEmpty(t *testing.T) {
	h, _, _ := newTestHandler(t)
	sid := uuid.New().String()

	rec := doRequest(t, h, http.MethodGet, "/cart/r1", sid, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCartResponse(t, rec)
	assert.Empty(t, resp.Items)
	assert.Equal(t, int64(199), resp.Total, "empty cart total is just the delivery fee")
}

func TestAddCartItem_AccumulatesQuantity(t *testing.T) {
	h, _, _ := newTestHandler(t)
	sid := uuid.New().String()
	body := []byte(`{"menuItemId":"m1"}`)

	doRequest(t, h, http.MethodPost, "/cart/r1/items", sid, body)
	rec := doRequest(t, h, http.MethodPost, "/cart/r1/items", sid, body)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCartResponse(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, int64(850*2+199), resp.Total)
}

func TestAddCartItem_UnknownItemRejected(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/cart/r1/items", uuid.New().String(), []byte(`{"menuItemId":"nope"}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRemoveCartItem(t *testing.T) {
	h, _, _ := newTestHandler(t)
	sid := uuid.New().String()

	doRequest(t, h, http.MethodPost, "/cart/r1/items", sid, []byte(`{"menuItemId":"m1"}`))
	doRequest(t, h, http.MethodPost, "/cart/r1/items", sid, []byte(`{"menuItemId":"m2"}`))
	rec := doRequest(t, h, http.MethodDelete, "/cart/r1/items/m1", sid, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCartResponse(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "m2", resp.Items[0].ID)
}

func TestCarts_IndependentPerRestaurant(t *testing.T) {
	h, backend, _ := newTestHandler(t)
	backend.restaurants["r2"] = &restaurant.Restaurant{
		ID: "r2", DeliveryPrice: 99,
		MenuItems: []restaurant.MenuItem{{ID: "x9", Name: "Pad Thai", Price: 1200}},
	}
	sid := uuid.New().String()

	doRequest(t, h, http.MethodPost, "/cart/r1/items", sid, []byte(`{"menuItemId":"m1"}`))
	doRequest(t, h, http.MethodPost, "/cart/r2/items", sid, []byte(`{"menuItemId":"x9"}`))

	r1 := decodeCartResponse(t, doRequest(t, h, http.MethodGet, "/cart/r1", sid, nil))
	r2 := decodeCartResponse(t, doRequest(t, h, http.MethodGet, "/cart/r2", sid, nil))

	require.Len(t, r1.Items, 1)
	require.Len(t, r2.Items, 1)
	assert.Equal(t, "m1", r1.Items[0].ID)
	assert.Equal(t, "x9", r2.Items[0].ID)
}

func TestCheckout_EmptyCart(t *testing.T) {
	h, backend, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/checkout/r1", uuid.New().String(), nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Zero(t, backend.calls, "empty-cart checkout must issue no remote call at all")
}

func TestCheckout_RedirectURL(t *testing.T) {
	h, _, _ := newTestHandler(t)
	sid := uuid.New().String()
	doRequest(t, h, http.MethodPost, "/cart/r1/items", sid, []byte(`{"menuItemId":"m1"}`))

	rec := doRequest(t, h, http.MethodPost, "/checkout/r1", sid, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "https://pay.example/s/1", resp["url"])
}

func TestSearch_ForwardsParsedState(t *testing.T) {
	h, backend, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet,
		"/search/manchester?searchQuery=pasta&page=2&selectedCuisines=italian,thai&sortOption=deliveryPrice", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "manchester", backend.lastSearchCity)
	assert.Equal(t, "pasta", backend.lastSearchState.Query)
	assert.Equal(t, 2, backend.lastSearchState.Page)
	assert.Equal(t, []string{"italian", "thai"}, backend.lastSearchState.Cuisines)
	assert.Equal(t, search.SortDeliveryPrice, backend.lastSearchState.Sort)
}

func TestSearch_InvalidStateRejected(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/search/manchester?sortOption=cheapest", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/search/manchester?page=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrders_EnrichesDisplayState(t *testing.T) {
	h, backend, _ := newTestHandler(t)
	backend.orders = []order.Order{{
		ID:         "o1",
		Status:     order.StatusInProgress,
		CreatedAt:  time.Date(2025, 3, 1, 18, 45, 0, 0, time.UTC),
		Restaurant: restaurant.Restaurant{EstimatedDeliveryTime: 30},
	}}

	rec := doRequest(t, h, http.MethodGet, "/orders", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var views []orderView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&views))
	require.Len(t, views, 1)
	assert.Equal(t, "In Progress", views[0].StatusLabel)
	assert.Equal(t, 50, views[0].Progress)
	assert.Equal(t, "19:15", views[0].ExpectedDelivery)
}

func TestTutorialFlags(t *testing.T) {
	h, _, _ := newTestHandler(t)
	sid := uuid.New().String()

	rec := doRequest(t, h, http.MethodGet, "/tutorial/landing-page", sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"completed":false}`, rec.Body.String())

	rec = doRequest(t, h, http.MethodPut, "/tutorial/landing-page", sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/tutorial/landing-page", sid, nil)
	assert.JSONEq(t, `{"completed":true}`, rec.Body.String())
}

func TestPreviews(t *testing.T) {
	h, _, _ := newTestHandler(t)
	sid := uuid.New().String()

	rec := doRequest(t, h, http.MethodGet, "/preview/m1", sid, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, h, http.MethodPut, "/preview/m1", sid, []byte("png-bytes"))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/preview/m1", sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestSessionID_IssuedWhenAbsent(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/cart/r1", "", nil)

	issued := rec.Header().Get(SessionHeader)
	require.NotEmpty(t, issued)
	_, err := uuid.Parse(issued)
	assert.NoError(t, err)
}
