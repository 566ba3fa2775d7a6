package hub

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golang-module/carbon/v2"
	"github.com/google/uuid"
	"github.com/pakolabs/business-console/internal/app/entity"
	"github.com/pakolabs/business-console/internal/app/model"
	"github.com/pakolabs/business-console/internal/app/usecase/crypto"
	"go.uber.org/zap"
)

const (
	userStatusActive  = "ACTIVE"
	userStatusPending = "PENDING_APPROVAL"

	roleBusiness = "business"

	defaultPageLimit = 10
)

var (
	ErrEmailExists        = errors.New("given email already exists in registry")
	ErrUserNotFound       = errors.New("user with given email doesn't exist in registry")
	ErrInvalidCredentials = errors.New("credentials are invalid or account is not approved")
)

type businessUser struct {
	user         entity.User
	passwordHash string
}

// BusinessRegistry backs the /api/v1 business surface: accounts with bcrypt
// password hashes and an order book in the production wire shape. Newly
// registered accounts stay pending until approval; only the seeded demo
// account can log in out of the box.
type BusinessRegistry struct {
	secret string

	mu     sync.Mutex
	users  map[string]businessUser
	orders []model.OrderResponse
}

func NewBusinessRegistry(secret string) *BusinessRegistry {
	registry := &BusinessRegistry{
		secret: secret,
		users:  make(map[string]businessUser),
	}

	err := registry.seedDemoUser()
	if err != nil {
		zap.L().Error("error while seeding demo business user", zap.Error(err))
	}

	return registry
}

func (r *BusinessRegistry) seedDemoUser() error {
	hash, err := crypto.HashPassword("demo1234")
	if err != nil {
		return fmt.Errorf("error while hashing demo user password: %w", err)
	}

	r.users["demo@pako.app"] = businessUser{
		user: entity.User{
			ID:     entity.UserID(uuid.New().String()),
			Email:  "demo@pako.app",
			Name:   "Pako Demo Restaurant",
			Role:   roleBusiness,
			Status: userStatusActive,
		},
		passwordHash: hash,
	}

	return nil
}

// Register creates a pending business account and returns the confirmation
// message. It never issues a token.
func (r *BusinessRegistry) Register(request model.RegisterBusinessRequest) (string, error) {
	hash, err := crypto.HashPassword(request.Password)
	if err != nil {
		return "", fmt.Errorf("error while hashing password: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[request.Email]; exists {
		return "", ErrEmailExists
	}

	r.users[request.Email] = businessUser{
		user: entity.User{
			ID:     entity.UserID(uuid.New().String()),
			Email:  request.Email,
			Name:   request.Name,
			Role:   roleBusiness,
			Status: userStatusPending,
		},
		passwordHash: hash,
	}

	return "Registration received. Your business account is pending approval.", nil
}

// Login validates the credentials and issues a signed token. Unknown emails
// are distinguished from bad passwords and unapproved accounts.
func (r *BusinessRegistry) Login(request model.LoginRequest) (string, entity.User, error) {
	r.mu.Lock()
	account, ok := r.users[request.Email]
	r.mu.Unlock()

	if !ok {
		return "", entity.User{}, ErrUserNotFound
	}

	err := crypto.CheckPasswordHash(request.Password, account.passwordHash)
	if err != nil {
		return "", entity.User{}, ErrInvalidCredentials
	}

	if account.user.Status != userStatusActive {
		return "", entity.User{}, ErrInvalidCredentials
	}

	token, err := crypto.BuildJWTString(account.user, r.secret)
	if err != nil {
		return "", entity.User{}, fmt.Errorf("error while building token: %w", err)
	}

	return token, account.user, nil
}

// CreateOrder registers a business order. Items referencing unknown or
// unavailable catalog entries are silently dropped, mirroring the demo
// registry behavior.
func (r *BusinessRegistry) CreateOrder(catalog *DemoRegistry, request model.CreateOrderRequest) model.OrderResponse {
	items := make([]model.OrderItemResponse, 0, len(request.OrderedItems))
	var total float64
	for _, requested := range request.OrderedItems {
		menuItem, ok := catalog.findBusinessItem(requested.ItemID)
		if !ok || !menuItem.Availability {
			continue
		}

		quantity := requested.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		subtotal := menuItem.Cost * float64(quantity)
		items = append(items, model.OrderItemResponse{
			ItemID:   menuItem.Identifier,
			Title:    menuItem.Title,
			UnitCost: menuItem.Cost,
			Quantity: quantity,
			Subtotal: subtotal,
		})
		total += subtotal
	}

	timestamp := carbon.Now().ToRfc3339String()
	order := model.OrderResponse{
		OrderID:              uuid.New().String(),
		RestaurantName:       request.RestaurantName,
		CustomerDetails:      request.CustomerDetails,
		Items:                items,
		TotalAmount:          total,
		DeliveryInstructions: request.DeliveryInstructions,
		Status:               string(entity.StatusPending),
		CreatedAt:            timestamp,
		LastModified:         timestamp,
	}

	r.mu.Lock()
	r.orders = append([]model.OrderResponse{order}, r.orders...)
	r.mu.Unlock()

	return order
}

// ListOrders filters by status and returns one page plus the cursor.
func (r *BusinessRegistry) ListOrders(status string, page, limit int) ([]model.OrderResponse, model.PaginationResponse) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := make([]model.OrderResponse, 0, len(r.orders))
	for _, order := range r.orders {
		if len(status) == 0 || order.Status == status {
			filtered = append(filtered, order)
		}
	}

	pagination := model.PaginationResponse{
		Page:  page,
		Limit: limit,
		Total: len(filtered),
	}

	start := (page - 1) * limit
	if start >= len(filtered) {
		return []model.OrderResponse{}, pagination
	}

	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], pagination
}

func (r *BusinessRegistry) GetOrder(orderID string) (model.OrderResponse, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.OrderID == orderID {
			return order, true
		}
	}

	return model.OrderResponse{}, false
}

func (r *BusinessRegistry) UpdateOrder(catalog *DemoRegistry, orderID string, request model.UpdateOrderRequest) (model.OrderResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].OrderID != orderID {
			continue
		}

		order := r.orders[i]
		if len(request.RestaurantName) > 0 {
			order.RestaurantName = request.RestaurantName
		}
		if request.CustomerDetails != nil {
			order.CustomerDetails = *request.CustomerDetails
		}
		if len(request.DeliveryInstructions) > 0 {
			order.DeliveryInstructions = request.DeliveryInstructions
		}
		if len(request.OrderedItems) > 0 {
			items := make([]model.OrderItemResponse, 0, len(request.OrderedItems))
			var total float64
			for _, requested := range request.OrderedItems {
				menuItem, ok := catalog.findBusinessItem(requested.ItemID)
				if !ok || !menuItem.Availability {
					continue
				}

				quantity := requested.Quantity
				if quantity <= 0 {
					quantity = 1
				}

				subtotal := menuItem.Cost * float64(quantity)
				items = append(items, model.OrderItemResponse{
					ItemID:   menuItem.Identifier,
					Title:    menuItem.Title,
					UnitCost: menuItem.Cost,
					Quantity: quantity,
					Subtotal: subtotal,
				})
				total += subtotal
			}
			order.Items = items
			order.TotalAmount = total
		}
		order.LastModified = carbon.Now().ToRfc3339String()

		r.orders[i] = order

		return order, nil
	}

	return model.OrderResponse{}, ErrOrderNotFound
}

func (r *BusinessRegistry) UpdateOrderStatus(orderID, newStatus string) (model.OrderResponse, error) {
	if !entity.OrderStatus(newStatus).Valid() {
		return model.OrderResponse{}, ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].OrderID == orderID {
			r.orders[i].Status = newStatus
			r.orders[i].LastModified = carbon.Now().ToRfc3339String()
			return r.orders[i], nil
		}
	}

	return model.OrderResponse{}, ErrOrderNotFound
}

func (r *BusinessRegistry) CancelOrder(orderID, reason string) (model.OrderResponse, error) {
	if len(reason) > 0 {
		zap.L().Info("order cancellation requested", zap.String("order_id", orderID), zap.String("reason", reason))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].OrderID == orderID {
			r.orders[i].Status = string(entity.StatusCancelled)
			r.orders[i].LastModified = carbon.Now().ToRfc3339String()
			return r.orders[i], nil
		}
	}

	return model.OrderResponse{}, ErrOrderNotFound
}

func (r *DemoRegistry) findBusinessItem(itemID string) (MenuItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.findItem(itemID)
}
