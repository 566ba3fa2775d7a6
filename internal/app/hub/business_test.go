package hub

import (
	"testing"

	"github.com/pakolabs/business-console/internal/app/entity"
	"github.com/pakolabs/business-console/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestBusinessLogin(t *testing.T) {
	registry := NewBusinessRegistry(testSecret)

	type want struct {
		err error
	}
	tests := []struct {
		name    string
		request model.LoginRequest

		want want
	}{
		{
			name:    "seeded demo account",
			request: model.LoginRequest{Email: "demo@pako.app", Password: "demo1234"},

			want: want{err: nil},
		},
		{
			name:    "unknown email",
			request: model.LoginRequest{Email: "ghost@pako.app", Password: "demo1234"},

			want: want{err: ErrUserNotFound},
		},
		{
			name:    "wrong password",
			request: model.LoginRequest{Email: "demo@pako.app", Password: "nope"},

			want: want{err: ErrInvalidCredentials},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			token, user, err := registry.Login(test.request)

			if test.want.err != nil {
				assert.ErrorIs(t, err, test.want.err)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, "demo@pako.app", user.Email)
			assert.Equal(t, "ACTIVE", user.Status)
		})
	}
}

func TestRegisteredAccountStaysPending(t *testing.T) {
	registry := NewBusinessRegistry(testSecret)

	request := model.RegisterBusinessRequest{
		Name:     "New Restaurant",
		Email:    "new@pako.app",
		Password: "secret12",
	}

	message, err := registry.Register(request)
	require.NoError(t, err)
	assert.NotEmpty(t, message)

	// Pending accounts cannot log in until approved.
	_, _, err = registry.Login(model.LoginRequest{Email: "new@pako.app", Password: "secret12"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = registry.Register(request)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestCreateOrderDropsUnknownItems(t *testing.T) {
	registry := NewBusinessRegistry(testSecret)
	catalog := NewDemoRegistry()

	order := registry.CreateOrder(catalog, model.CreateOrderRequest{
		RestaurantName: "Pako Demo Restaurant",
		OrderedItems: []model.OrderItemRequest{
			{ItemID: "item_03", Quantity: 1},
			{ItemID: "item_unknown", Quantity: 5},
		},
	})

	require.Len(t, order.Items, 1)
	assert.Equal(t, "item_03", order.Items[0].ItemID)
	assert.InDelta(t, 22.00, order.TotalAmount, 0.001)
	assert.Equal(t, string(entity.StatusPending), order.Status)
	assert.NotEmpty(t, order.OrderID)
}

func TestCreateOrderPrependsNewest(t *testing.T) {
	registry := NewBusinessRegistry(testSecret)
	catalog := NewDemoRegistry()

	request := model.CreateOrderRequest{
		RestaurantName: "Pako Demo Restaurant",
		OrderedItems:   []model.OrderItemRequest{{ItemID: "item_01"}},
	}

	first := registry.CreateOrder(catalog, request)
	second := registry.CreateOrder(catalog, request)

	orders, pagination := registry.ListOrders("", 1, 10)
	require.Len(t, orders, 2)
	assert.Equal(t, second.OrderID, orders[0].OrderID)
	assert.Equal(t, first.OrderID, orders[1].OrderID)
	assert.Equal(t, 2, pagination.Total)
}

func TestListOrdersFilterAndPagination(t *testing.T) {
	registry := NewBusinessRegistry(testSecret)
	catalog := NewDemoRegistry()

	request := model.CreateOrderRequest{
		RestaurantName: "Pako Demo Restaurant",
		OrderedItems:   []model.OrderItemRequest{{ItemID: "item_01"}},
	}

	var last model.OrderResponse
	for i := 0; i < 3; i++ {
		last = registry.CreateOrder(catalog, request)
	}

	_, err := registry.UpdateOrderStatus(last.OrderID, string(entity.StatusPreparing))
	require.NoError(t, err)

	preparing, pagination := registry.ListOrders(string(entity.StatusPreparing), 1, 10)
	require.Len(t, preparing, 1)
	assert.Equal(t, last.OrderID, preparing[0].OrderID)
	assert.Equal(t, 1, pagination.Total)

	page, pagination := registry.ListOrders("", 2, 2)
	require.Len(t, page, 1)
	assert.Equal(t, 3, pagination.Total)
	assert.Equal(t, 2, pagination.Page)

	empty, _ := registry.ListOrders("", 5, 2)
	assert.Empty(t, empty)
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	registry := NewBusinessRegistry(testSecret)
	catalog := NewDemoRegistry()

	order := registry.CreateOrder(catalog, model.CreateOrderRequest{
		RestaurantName: "Pako Demo Restaurant",
		OrderedItems:   []model.OrderItemRequest{{ItemID: "item_01"}},
	})

	_, err := registry.UpdateOrderStatus(order.OrderID, "flying")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := registry.UpdateOrderStatus(order.OrderID, string(entity.StatusReady))
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusReady), updated.Status)

	_, err = registry.UpdateOrderStatus("missing", string(entity.StatusReady))
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateOrderMergesFields(t *testing.T) {
	registry := NewBusinessRegistry(testSecret)
	catalog := NewDemoRegistry()

	order := registry.CreateOrder(catalog, model.CreateOrderRequest{
		RestaurantName:       "Pako Demo Restaurant",
		OrderedItems:         []model.OrderItemRequest{{ItemID: "item_01"}},
		DeliveryInstructions: "Ring the bell",
	})

	updated, err := registry.UpdateOrder(catalog, order.OrderID, model.UpdateOrderRequest{
		CustomerDetails: &model.CustomerDetails{Name: "New Customer"},
		OrderedItems:    []model.OrderItemRequest{{ItemID: "item_02", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Pako Demo Restaurant", updated.RestaurantName)
	assert.Equal(t, "Ring the bell", updated.DeliveryInstructions)
	assert.Equal(t, "New Customer", updated.CustomerDetails.Name)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "item_02", updated.Items[0].ItemID)
	assert.InDelta(t, 2*12.50, updated.TotalAmount, 0.001)
}

func TestCancelOrder(t *testing.T) {
	registry := NewBusinessRegistry(testSecret)
	catalog := NewDemoRegistry()

	order := registry.CreateOrder(catalog, model.CreateOrderRequest{
		RestaurantName: "Pako Demo Restaurant",
		OrderedItems:   []model.OrderItemRequest{{ItemID: "item_01"}},
	})

	cancelled, err := registry.CancelOrder(order.OrderID, "customer request")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusCancelled), cancelled.Status)

	_, err = registry.CancelOrder("missing", "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
