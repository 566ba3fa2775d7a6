package entity

type OrderStatus string

const (
	StatusPending         OrderStatus = `PENDING`
	StatusAccepted        OrderStatus = `ACCEPTED`
	StatusPreparing       OrderStatus = `PREPARING`
	StatusReady           OrderStatus = `READY`
	StatusCourierAssigned OrderStatus = `COURIER_ASSIGNED`
	StatusPickedUp        OrderStatus = `PICKED_UP`
	StatusInTransit       OrderStatus = `IN_TRANSIT`
	StatusDelivered       OrderStatus = `DELIVERED`
	StatusCancelled       OrderStatus = `CANCELLED`
)

var orderStatuses = map[OrderStatus]struct{}{
	StatusPending:         {},
	StatusAccepted:        {},
	StatusPreparing:       {},
	StatusReady:           {},
	StatusCourierAssigned: {},
	StatusPickedUp:        {},
	StatusInTransit:       {},
	StatusDelivered:       {},
	StatusCancelled:       {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// Terminal reports whether the status closes the order lifecycle.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type Orders []Order

type Order struct {
	OrderID              string
	RestaurantName       string
	CustomerDetails      CustomerDetails
	Items                []LineItem
	TotalAmount          float64
	DeliveryInstructions string
	Status               OrderStatus
	CreatedAt            string
	LastModified         string
}

type LineItem struct {
	ItemID   string
	Title    string
	UnitCost float64
	Quantity int
	Subtotal float64
}

type CustomerDetails struct {
	Name    string
	Phone   string
	Address string
}

// Pagination mirrors the last server response; it is never computed locally.
type Pagination struct {
	Page  int
	Limit int
	Total int
}
