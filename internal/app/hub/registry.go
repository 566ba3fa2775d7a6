package hub

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golang-module/carbon/v2"
	"github.com/pakolabs/business-console/internal/app/model"
)

const firstOrderSequence = 1000

var (
	ErrOrderNotFound   = errors.New("order with given identifier doesn't exist in registry")
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrOrderIncomplete = errors.New("restaurant name and ordered items are required")
)

var demoStatuses = map[string]struct{}{
	"pending":   {},
	"confirmed": {},
	"preparing": {},
	"ready":     {},
	"delivered": {},
	"cancelled": {},
}

type MenuItem struct {
	Identifier   string  `json:"identifier"`
	Title        string  `json:"title"`
	Cost         float64 `json:"cost"`
	Availability bool    `json:"availability"`
}

type DemoOrderItem struct {
	MenuItem
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type DemoOrder struct {
	OrderIdentifier      string                `json:"orderIdentifier"`
	RestaurantName       string                `json:"restaurantName"`
	CustomerDetails      model.CustomerDetails `json:"customerDetails"`
	OrderedItems         []DemoOrderItem       `json:"orderedItems"`
	TotalAmount          float64               `json:"totalAmount"`
	DeliveryInstructions string                `json:"deliveryInstructions"`
	OrderStatus          string                `json:"orderStatus"`
	CreatedAt            string                `json:"createdAt"`
	LastModified         string                `json:"lastModified"`
}

type SubmitOrderRequest struct {
	RestaurantName       string                   `json:"restaurantName"`
	CustomerDetails      model.CustomerDetails    `json:"customerDetails"`
	OrderedItems         []model.OrderItemRequest `json:"orderedItems"`
	DeliveryInstructions string                   `json:"deliveryInstructions"`
}

// DemoRegistry is the in-memory order registry of the demonstration server.
// Order identifiers are sequential and human readable: ORD-1000, ORD-1001, …
type DemoRegistry struct {
	mu       sync.Mutex
	catalog  []MenuItem
	orders   map[string]DemoOrder
	sequence []string
	nextSeq  int
}

func NewDemoRegistry() *DemoRegistry {
	return &DemoRegistry{
		catalog: []MenuItem{
			{Identifier: "item_01", Title: "Grilled Chicken Plate", Cost: 15.99, Availability: true},
			{Identifier: "item_02", Title: "Vegetarian Pasta Bowl", Cost: 12.50, Availability: true},
			{Identifier: "item_03", Title: "Seafood Platter", Cost: 22.00, Availability: true},
			{Identifier: "item_04", Title: "Caesar Salad", Cost: 8.99, Availability: true},
		},
		orders:  make(map[string]DemoOrder),
		nextSeq: firstOrderSequence,
	}
}

func (r *DemoRegistry) Catalog() []MenuItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]MenuItem, len(r.catalog))
	copy(items, r.catalog)

	return items
}

// Submit validates the request and registers a new order. Items referencing
// unknown or unavailable catalog entries are silently dropped from the final
// order rather than rejecting the whole request.
func (r *DemoRegistry) Submit(request SubmitOrderRequest) (DemoOrder, error) {
	if len(request.RestaurantName) == 0 || len(request.OrderedItems) == 0 {
		return DemoOrder{}, ErrOrderIncomplete
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]DemoOrderItem, 0, len(request.OrderedItems))
	var total float64
	for _, requested := range request.OrderedItems {
		menuItem, ok := r.findItem(requested.ItemID)
		if !ok || !menuItem.Availability {
			continue
		}

		quantity := requested.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		subtotal := menuItem.Cost * float64(quantity)
		items = append(items, DemoOrderItem{
			MenuItem: menuItem,
			Quantity: quantity,
			Subtotal: subtotal,
		})
		total += subtotal
	}

	instructions := request.DeliveryInstructions
	if len(instructions) == 0 {
		instructions = "No special instructions"
	}

	timestamp := carbon.Now().ToRfc3339String()
	order := DemoOrder{
		OrderIdentifier:      fmt.Sprintf("ORD-%d", r.nextSeq),
		RestaurantName:       request.RestaurantName,
		CustomerDetails:      request.CustomerDetails,
		OrderedItems:         items,
		TotalAmount:          total,
		DeliveryInstructions: instructions,
		OrderStatus:          "pending",
		CreatedAt:            timestamp,
		LastModified:         timestamp,
	}
	r.nextSeq++

	r.orders[order.OrderIdentifier] = order
	r.sequence = append(r.sequence, order.OrderIdentifier)

	return order, nil
}

func (r *DemoRegistry) Orders() []DemoOrder {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]DemoOrder, 0, len(r.sequence))
	for _, identifier := range r.sequence {
		orders = append(orders, r.orders[identifier])
	}

	return orders
}

func (r *DemoRegistry) Get(orderID string) (DemoOrder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]

	return order, ok
}

func (r *DemoRegistry) UpdateStatus(orderID, newStatus string) (DemoOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return DemoOrder{}, ErrOrderNotFound
	}

	if _, valid := demoStatuses[newStatus]; !valid {
		return DemoOrder{}, ErrInvalidStatus
	}

	order.OrderStatus = newStatus
	order.LastModified = carbon.Now().ToRfc3339String()
	r.orders[orderID] = order

	return order, nil
}

func (r *DemoRegistry) findItem(itemID string) (MenuItem, bool) {
	for _, item := range r.catalog {
		if item.Identifier == itemID {
			return item, true
		}
	}

	return MenuItem{}, false
}
