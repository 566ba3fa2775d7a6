package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/pakolabs/business-console/internal/app/entity"
	"github.com/pakolabs/business-console/internal/app/model"
	"github.com/pakolabs/business-console/internal/app/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	query  url.Values
}

type fakeTransport struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  func(method, path string) (transport.Response, error)
}

func (f *fakeTransport) Do(ctx context.Context, method, path string, body any, query url.Values) (transport.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{method: method, path: path, query: query})
	f.mu.Unlock()

	return f.handler(method, path)
}

func (f *fakeTransport) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

func orderEnvelopeBody(t *testing.T, order model.OrderResponse) []byte {
	t.Helper()

	body, err := json.Marshal(model.OrderEnvelope{Success: true, Data: &order})
	require.NoError(t, err)

	return body
}

func ordersEnvelopeBody(t *testing.T, orders []model.OrderResponse, pagination *model.PaginationResponse) []byte {
	t.Helper()

	body, err := json.Marshal(model.OrdersEnvelope{Success: true, Data: orders, Pagination: pagination})
	require.NoError(t, err)

	return body
}

func staticResponse(body []byte) func(method, path string) (transport.Response, error) {
	return func(method, path string) (transport.Response, error) {
		return transport.Response{StatusCode: http.StatusOK, Body: body}, nil
	}
}

func TestCreateInsertsAtHead(t *testing.T) {
	existing := model.OrderResponse{OrderID: "order-old", RestaurantName: "Old Place", Status: "PENDING"}
	created := model.OrderResponse{OrderID: "order-new", RestaurantName: "New Place", Status: "PENDING"}

	client := &fakeTransport{
		handler: func(method, path string) (transport.Response, error) {
			if method == http.MethodGet {
				return transport.Response{StatusCode: http.StatusOK, Body: ordersEnvelopeBody(t, []model.OrderResponse{existing}, nil)}, nil
			}

			return transport.Response{StatusCode: http.StatusCreated, Body: orderEnvelopeBody(t, created)}, nil
		},
	}

	manager := New(client)

	_, err := manager.List(context.Background(), ListParams{})
	require.NoError(t, err)

	order, err := manager.Create(context.Background(), model.CreateOrderRequest{
		RestaurantName: "New Place",
		OrderedItems:   []model.OrderItemRequest{{ItemID: "item_01", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "order-new", order.OrderID)

	orders := manager.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "order-new", orders[0].OrderID)
	assert.Equal(t, "order-old", orders[1].OrderID)
}

func TestCreateValidationShortCircuits(t *testing.T) {
	tests := []struct {
		name    string
		request model.CreateOrderRequest
	}{
		{
			name: "missing restaurant name",
			request: model.CreateOrderRequest{
				OrderedItems: []model.OrderItemRequest{{ItemID: "item_01"}},
			},
		},
		{
			name: "empty item list",
			request: model.CreateOrderRequest{
				RestaurantName: "Pako Demo Restaurant",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client := &fakeTransport{
				handler: staticResponse(nil),
			}

			manager := New(client)

			_, err := manager.Create(context.Background(), test.request)
			require.Error(t, err)

			var validationErr *entity.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, 0, client.callCount())
			assert.ErrorIs(t, manager.LastError(), err)
		})
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	client := &fakeTransport{handler: staticResponse(nil)}
	manager := New(client)

	_, err := manager.UpdateStatus(context.Background(), "order-1", "FLYING")
	require.Error(t, err)

	var validationErr *entity.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, client.callCount())
}

func TestUpdateStatusPatchesLocalCache(t *testing.T) {
	cached := model.OrderResponse{OrderID: "order-1", RestaurantName: "Pako", Status: "PENDING"}
	updated := model.OrderResponse{OrderID: "order-1", RestaurantName: "Pako", Status: "PREPARING"}

	client := &fakeTransport{
		handler: func(method, path string) (transport.Response, error) {
			if method == http.MethodGet {
				return transport.Response{StatusCode: http.StatusOK, Body: ordersEnvelopeBody(t, []model.OrderResponse{cached}, nil)}, nil
			}

			return transport.Response{StatusCode: http.StatusOK, Body: orderEnvelopeBody(t, updated)}, nil
		},
	}

	manager := New(client)

	_, err := manager.List(context.Background(), ListParams{})
	require.NoError(t, err)

	order, err := manager.UpdateStatus(context.Background(), "order-1", "PREPARING")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPreparing, order.Status)

	orders := manager.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, entity.StatusPreparing, orders[0].Status)
}

func TestUpdateStatusWithoutCacheEntry(t *testing.T) {
	updated := model.OrderResponse{OrderID: "order-unseen", Status: "READY"}

	client := &fakeTransport{handler: staticResponse(orderEnvelopeBody(t, updated))}
	manager := New(client)

	order, err := manager.UpdateStatus(context.Background(), "order-unseen", "READY")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusReady, order.Status)
	assert.Empty(t, manager.Orders())
}

func TestCancelForcesCancelledStatus(t *testing.T) {
	cached := model.OrderResponse{OrderID: "order-1", Status: "PENDING"}
	// The server may echo a stale status; cancellation overrides it locally.
	stale := model.OrderResponse{OrderID: "order-1", Status: "PENDING"}

	client := &fakeTransport{
		handler: func(method, path string) (transport.Response, error) {
			if method == http.MethodGet {
				return transport.Response{StatusCode: http.StatusOK, Body: ordersEnvelopeBody(t, []model.OrderResponse{cached}, nil)}, nil
			}

			return transport.Response{StatusCode: http.StatusOK, Body: orderEnvelopeBody(t, stale)}, nil
		},
	}

	manager := New(client)

	_, err := manager.List(context.Background(), ListParams{})
	require.NoError(t, err)

	order, err := manager.Cancel(context.Background(), "order-1", "customer request")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, order.Status)

	orders := manager.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, entity.StatusCancelled, orders[0].Status)

	last := client.requests[len(client.requests)-1]
	assert.Equal(t, http.MethodPost, last.method)
	assert.Equal(t, "/business/orders/order-1/cancel", last.path)
	assert.Equal(t, "customer request", last.query.Get("reason"))

	// Cancelling again converges on the same terminal state.
	again, err := manager.Cancel(context.Background(), "order-1", "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, again.Status)
}

func TestListReplacesCacheAndKeepsCursor(t *testing.T) {
	firstPage := []model.OrderResponse{
		{OrderID: "order-1", Status: "PENDING"},
		{OrderID: "order-2", Status: "DELIVERED"},
	}
	secondPage := []model.OrderResponse{
		{OrderID: "order-3", Status: "PREPARING"},
	}

	responses := [][]byte{
		ordersEnvelopeBody(t, firstPage, &model.PaginationResponse{Page: 1, Limit: 2, Total: 3}),
		ordersEnvelopeBody(t, secondPage, nil),
	}

	var call int
	client := &fakeTransport{
		handler: func(method, path string) (transport.Response, error) {
			body := responses[call]
			call++
			return transport.Response{StatusCode: http.StatusOK, Body: body}, nil
		},
	}

	manager := New(client)

	orders, err := manager.List(context.Background(), ListParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, entity.Pagination{Page: 1, Limit: 2, Total: 3}, manager.Pagination())

	orders, err = manager.List(context.Background(), ListParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "order-3", manager.Orders()[0].OrderID)

	// A response without a cursor leaves the previous one in place.
	assert.Equal(t, entity.Pagination{Page: 1, Limit: 2, Total: 3}, manager.Pagination())

	query := client.requests[1].query
	assert.Equal(t, "2", query.Get("page"))
	assert.Equal(t, "2", query.Get("limit"))
}

func TestListAcceptsBareArray(t *testing.T) {
	body, err := json.Marshal([]model.OrderResponse{{OrderID: "order-1", Status: "PENDING"}})
	require.NoError(t, err)

	client := &fakeTransport{handler: staticResponse(body)}
	manager := New(client)

	orders, err := manager.List(context.Background(), ListParams{})
	require.NoError(t, err)

	require.Len(t, orders, 1)
	assert.Equal(t, "order-1", orders[0].OrderID)
}

func TestFetchOnePopulatesCurrentSlot(t *testing.T) {
	detail := model.OrderResponse{OrderID: "order-7", RestaurantName: "Pako", Status: "READY"}

	client := &fakeTransport{handler: staticResponse(orderEnvelopeBody(t, detail))}
	manager := New(client)

	_, ok := manager.Current()
	assert.False(t, ok)

	order, err := manager.FetchOne(context.Background(), "order-7")
	require.NoError(t, err)
	assert.Equal(t, "order-7", order.OrderID)

	current, ok := manager.Current()
	require.True(t, ok)
	assert.Equal(t, "order-7", current.OrderID)

	// Detail fetches never touch the list cache.
	assert.Empty(t, manager.Orders())
}

func TestUpdateMergesServerFields(t *testing.T) {
	cached := model.OrderResponse{
		OrderID:              "order-1",
		RestaurantName:       "Pako",
		DeliveryInstructions: "Leave at the door",
		Status:               "PENDING",
		CreatedAt:            "2026-08-30T10:00:00Z",
	}
	// The server response omits fields it did not change.
	partial := model.OrderResponse{
		OrderID: "order-1",
		Status:  "ACCEPTED",
	}

	client := &fakeTransport{
		handler: func(method, path string) (transport.Response, error) {
			if method == http.MethodGet {
				return transport.Response{StatusCode: http.StatusOK, Body: ordersEnvelopeBody(t, []model.OrderResponse{cached}, nil)}, nil
			}

			return transport.Response{StatusCode: http.StatusOK, Body: orderEnvelopeBody(t, partial)}, nil
		},
	}

	manager := New(client)

	_, err := manager.List(context.Background(), ListParams{})
	require.NoError(t, err)

	order, err := manager.Update(context.Background(), "order-1", model.UpdateOrderRequest{})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusAccepted, order.Status)
	assert.Equal(t, "Pako", order.RestaurantName)
	assert.Equal(t, "Leave at the door", order.DeliveryInstructions)
	assert.Equal(t, "2026-08-30T10:00:00Z", order.CreatedAt)
}

func TestMutationSingleFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	var once sync.Once
	client := &fakeTransport{
		handler: func(method, path string) (transport.Response, error) {
			once.Do(func() { close(started) })
			<-release
			return transport.Response{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil
		},
	}

	manager := New(client)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = manager.UpdateStatus(context.Background(), "order-1", "PREPARING")
	}()

	<-started

	_, err := manager.Cancel(context.Background(), "order-1", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrMutationInFlight)

	// A different order is not blocked by the in-flight mutation's lock,
	// only by the shared transport fake; release it first.
	close(release)
	wg.Wait()

	_, err = manager.UpdateStatus(context.Background(), "order-2", "READY")
	require.NoError(t, err)
}

func TestFailurePrefersServerMessage(t *testing.T) {
	client := &fakeTransport{
		handler: func(method, path string) (transport.Response, error) {
			return transport.Response{StatusCode: http.StatusBadRequest}, &entity.HTTPError{
				Status:           http.StatusBadRequest,
				ServerMessage:    "Order validation failed",
				ValidationErrors: []string{"order: restaurant name is required"},
			}
		},
	}

	manager := New(client)

	_, err := manager.Create(context.Background(), model.CreateOrderRequest{
		RestaurantName: "Pako",
		OrderedItems:   []model.OrderItemRequest{{ItemID: "item_01"}},
	})
	require.Error(t, err)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "Order validation failed (order: restaurant name is required)", opErr.Message)

	var httpErr *entity.HTTPError
	assert.ErrorAs(t, err, &httpErr)
}

func TestFailureFallbackMessage(t *testing.T) {
	client := &fakeTransport{
		handler: func(method, path string) (transport.Response, error) {
			return transport.Response{}, entity.ErrTimeout
		},
	}

	manager := New(client)

	_, err := manager.Create(context.Background(), model.CreateOrderRequest{
		RestaurantName: "Pako",
		OrderedItems:   []model.OrderItemRequest{{ItemID: "item_01"}},
	})
	require.Error(t, err)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, MsgCreateFailed, opErr.Message)
	assert.ErrorIs(t, err, entity.ErrTimeout)
}

func TestDerivedViews(t *testing.T) {
	orders := []model.OrderResponse{
		{OrderID: "order-1", Status: "PENDING"},
		{OrderID: "order-2", Status: "PREPARING"},
		{OrderID: "order-3", Status: "DELIVERED"},
		{OrderID: "order-4", Status: "CANCELLED"},
	}

	client := &fakeTransport{handler: staticResponse(ordersEnvelopeBody(t, orders, nil))}
	manager := New(client)

	_, err := manager.List(context.Background(), ListParams{})
	require.NoError(t, err)

	pending := manager.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "order-1", pending[0].OrderID)

	active := manager.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "order-1", active[0].OrderID)
	assert.Equal(t, "order-2", active[1].OrderID)

	completed := manager.Completed()
	require.Len(t, completed, 1)
	assert.Equal(t, "order-3", completed[0].OrderID)
}
