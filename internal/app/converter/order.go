package converter

import (
	"github.com/golang-module/carbon/v2"

	"github.com/pakolabs/business-console/internal/app/entity"
	"github.com/pakolabs/business-console/internal/app/model"
)

func ConvertOrderResponseToOrder(response model.OrderResponse) entity.Order {
	items := make([]entity.LineItem, 0, len(response.Items))
	for _, item := range response.Items {
		items = append(items, entity.LineItem{
			ItemID:   item.ItemID,
			Title:    item.Title,
			UnitCost: item.UnitCost,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal,
		})
	}

	return entity.Order{
		OrderID:        response.OrderID,
		RestaurantName: response.RestaurantName,
		CustomerDetails: entity.CustomerDetails{
			Name:    response.CustomerDetails.Name,
			Phone:   response.CustomerDetails.Phone,
			Address: response.CustomerDetails.Address,
		},
		Items:                items,
		TotalAmount:          response.TotalAmount,
		DeliveryInstructions: response.DeliveryInstructions,
		Status:               entity.OrderStatus(response.Status),
		CreatedAt:            normalizeTimestamp(response.CreatedAt),
		LastModified:         normalizeTimestamp(response.LastModified),
	}
}

func ConvertOrdersResponseToOrders(responses []model.OrderResponse) entity.Orders {
	orders := make(entity.Orders, 0, len(responses))
	for _, response := range responses {
		orders = append(orders, ConvertOrderResponseToOrder(response))
	}

	return orders
}

func ConvertPaginationResponseToPagination(response model.PaginationResponse) entity.Pagination {
	return entity.Pagination{
		Page:  response.Page,
		Limit: response.Limit,
		Total: response.Total,
	}
}

// normalizeTimestamp brings server timestamps to RFC3339. Unparseable values
// are kept verbatim so a display never loses the raw server value.
func normalizeTimestamp(value string) string {
	if len(value) == 0 {
		return value
	}

	parsed := carbon.Parse(value)
	if parsed.Error != nil {
		return value
	}

	return parsed.ToRfc3339String()
}
