package validator

import (
	"github.com/pakolabs/business-console/internal/app/entity"
	"github.com/pakolabs/business-console/internal/app/model"
)

// ValidateCreateOrderRequest mirrors the server-side checks so an obviously
// broken request never leaves the client.
func ValidateCreateOrderRequest(request model.CreateOrderRequest) error {
	if len(request.RestaurantName) == 0 {
		return entity.NewValidationError("restaurant name is required")
	}

	if len(request.OrderedItems) == 0 {
		return entity.NewValidationError("order must contain at least one item")
	}

	return nil
}

func ValidateOrderStatus(status string) bool {
	return entity.OrderStatus(status).Valid()
}
