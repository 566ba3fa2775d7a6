package model

type CustomerDetails struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type OrderItemRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity,omitempty"`
}

type CreateOrderRequest struct {
	RestaurantName       string             `json:"restaurantName"`
	CustomerDetails      CustomerDetails    `json:"customerDetails,omitempty"`
	OrderedItems         []OrderItemRequest `json:"orderedItems"`
	DeliveryInstructions string             `json:"deliveryInstructions,omitempty"`
}

// UpdateOrderRequest is a full order update; zero fields are omitted from
// the payload so the server keeps its current values.
type UpdateOrderRequest struct {
	RestaurantName       string             `json:"restaurantName,omitempty"`
	CustomerDetails      *CustomerDetails   `json:"customerDetails,omitempty"`
	OrderedItems         []OrderItemRequest `json:"orderedItems,omitempty"`
	DeliveryInstructions string             `json:"deliveryInstructions,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderItemResponse struct {
	ItemID   string  `json:"itemId"`
	Title    string  `json:"title"`
	UnitCost float64 `json:"unitCost"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type OrderResponse struct {
	OrderID              string              `json:"orderId"`
	RestaurantName       string              `json:"restaurantName"`
	CustomerDetails      CustomerDetails     `json:"customerDetails"`
	Items                []OrderItemResponse `json:"items"`
	TotalAmount          float64             `json:"totalAmount"`
	DeliveryInstructions string              `json:"deliveryInstructions"`
	Status               string              `json:"status"`
	CreatedAt            string              `json:"createdAt"`
	LastModified         string              `json:"lastModified"`
}

type PaginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type OrderEnvelope struct {
	Success bool           `json:"success"`
	Data    *OrderResponse `json:"data"`
	Message string         `json:"message"`
}

type OrdersEnvelope struct {
	Success    bool                `json:"success"`
	Data       []OrderResponse     `json:"data"`
	Pagination *PaginationResponse `json:"pagination"`
	Message    string              `json:"message"`
}
