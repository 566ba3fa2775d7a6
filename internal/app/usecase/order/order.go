package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/pakolabs/business-console/internal/app/converter"
	"github.com/pakolabs/business-console/internal/app/entity"
	"github.com/pakolabs/business-console/internal/app/model"
	"github.com/pakolabs/business-console/internal/app/transport"
	"github.com/pakolabs/business-console/internal/app/validator"
	"go.uber.org/zap"
)

const ordersEndpoint = "/business/orders"

const (
	MsgCreateFailed       = "Sipariş oluşturulamadı"
	MsgUpdateFailed       = "Sipariş güncellenemedi"
	MsgFetchOrdersFailed  = "Failed to fetch orders"
	MsgFetchOrderFailed   = "Failed to fetch order"
	MsgStatusUpdateFailed = "Failed to update order status"
	MsgCancelFailed       = "Failed to cancel order"
)

type Transport interface {
	Do(ctx context.Context, method, path string, body any, query url.Values) (transport.Response, error)
}

type ListParams struct {
	Status string
	Page   int
	Limit  int
}

// OpError is the uniform failure result of a manager operation. Message is
// the user-facing text (server rejection message when one exists); Err keeps
// the underlying transport error.
type OpError struct {
	Message string
	Err     error
}

func (e *OpError) Error() string {
	return e.Message
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Manager owns the authoritative client-side view of orders. Cache entries
// are updated only after a server acknowledgment, never speculatively, except
// for the insertion of a freshly created order at the head of the list.
//
// Mutations against the same order are single-flighted by order id; a second
// concurrent mutation fails fast with entity.ErrMutationInFlight. The shared
// loading and last-error fields are intentionally not serialized across
// concurrent calls: two in-flight operations race on them last-write-wins,
// matching the single-user interaction model this console is built for.
type Manager struct {
	transport Transport

	mu         sync.Mutex
	orders     entity.Orders
	current    *entity.Order
	pagination entity.Pagination
	loading    bool
	lastErr    error
	inflight   map[string]struct{}
}

func New(transport Transport) *Manager {
	return &Manager{
		transport: transport,
		inflight:  make(map[string]struct{}),
	}
}

// Create submits a new order and, on success, inserts the returned order at
// the head of the local list (newest first). Requests without a restaurant
// name or with an empty item list are rejected before any network call.
func (m *Manager) Create(ctx context.Context, request model.CreateOrderRequest) (entity.Order, error) {
	err := validator.ValidateCreateOrderRequest(request)
	if err != nil {
		m.setError(err)
		return entity.Order{}, err
	}

	m.begin()

	res, err := m.transport.Do(ctx, http.MethodPost, ordersEndpoint, request, nil)
	if err != nil {
		return entity.Order{}, m.fail("create order", err, MsgCreateFailed)
	}

	var envelope model.OrderEnvelope
	if err := json.Unmarshal(res.Body, &envelope); err != nil {
		zap.L().Error("error while decoding create order response", zap.Error(err))
	}

	var created entity.Order
	if envelope.Data != nil {
		created = converter.ConvertOrderResponseToOrder(*envelope.Data)

		m.mu.Lock()
		m.orders = append(entity.Orders{created}, m.orders...)
		m.mu.Unlock()
	}

	m.finish(nil)

	return created, nil
}

// List replaces the whole local order list with the server's page. The
// pagination cursor is replaced only when the response carries one; a missing
// cursor leaves the previous value untouched.
func (m *Manager) List(ctx context.Context, params ListParams) (entity.Orders, error) {
	m.begin()

	res, err := m.transport.Do(ctx, http.MethodGet, ordersEndpoint, nil, listQuery(params))
	if err != nil {
		return nil, m.fail("list orders", err, MsgFetchOrdersFailed)
	}

	var envelope model.OrdersEnvelope
	if err := json.Unmarshal(res.Body, &envelope); err != nil || envelope.Data == nil {
		// Some deployments return the bare array without an envelope.
		var bare []model.OrderResponse
		if bareErr := json.Unmarshal(res.Body, &bare); bareErr == nil {
			envelope = model.OrdersEnvelope{Data: bare}
		}
	}

	orders := converter.ConvertOrdersResponseToOrders(envelope.Data)

	m.mu.Lock()
	m.orders = orders
	if envelope.Pagination != nil {
		m.pagination = converter.ConvertPaginationResponseToPagination(*envelope.Pagination)
	}
	m.mu.Unlock()

	m.finish(nil)

	return orders, nil
}

// FetchOne populates the detail-view slot. The fetched order is not merged
// into the list cache.
func (m *Manager) FetchOne(ctx context.Context, orderID string) (entity.Order, error) {
	m.begin()

	res, err := m.transport.Do(ctx, http.MethodGet, orderPath(orderID), nil, nil)
	if err != nil {
		return entity.Order{}, m.fail("fetch order", err, MsgFetchOrderFailed)
	}

	response, ok := decodeOrderBody(res.Body)
	if !ok {
		opErr := &OpError{Message: MsgFetchOrderFailed}
		m.finish(opErr)
		return entity.Order{}, opErr
	}

	order := converter.ConvertOrderResponseToOrder(response)

	m.mu.Lock()
	m.current = &order
	m.mu.Unlock()

	m.finish(nil)

	return order, nil
}

// UpdateStatus requests a server-side transition to newStatus. Statuses
// outside the enumeration are rejected without a network call. A missing
// local cache entry is not an error: the write still succeeded server-side.
func (m *Manager) UpdateStatus(ctx context.Context, orderID, newStatus string) (entity.Order, error) {
	if !validator.ValidateOrderStatus(newStatus) {
		err := entity.NewValidationError("unknown order status: %s", newStatus)
		m.setError(err)
		return entity.Order{}, err
	}

	err := m.acquireOrder(orderID)
	if err != nil {
		m.setError(err)
		return entity.Order{}, err
	}
	defer m.releaseOrder(orderID)

	m.begin()

	res, err := m.transport.Do(ctx, http.MethodPatch, orderPath(orderID)+"/status", model.UpdateStatusRequest{Status: newStatus}, nil)
	if err != nil {
		return entity.Order{}, m.fail("update order status", err, MsgStatusUpdateFailed)
	}

	local := m.patchLocalStatus(orderID, entity.OrderStatus(newStatus))

	m.finish(nil)

	if response, ok := decodeOrderBody(res.Body); ok {
		return converter.ConvertOrderResponseToOrder(response), nil
	}

	return local, nil
}

// Update performs a full order update and merges the server-returned fields
// into the matching local entry; server fields win on conflict.
func (m *Manager) Update(ctx context.Context, orderID string, patch model.UpdateOrderRequest) (entity.Order, error) {
	err := m.acquireOrder(orderID)
	if err != nil {
		m.setError(err)
		return entity.Order{}, err
	}
	defer m.releaseOrder(orderID)

	m.begin()

	res, err := m.transport.Do(ctx, http.MethodPut, orderPath(orderID), patch, nil)
	if err != nil {
		return entity.Order{}, m.fail("update order", err, MsgUpdateFailed)
	}

	var updated entity.Order
	if response, ok := decodeOrderBody(res.Body); ok {
		updated = m.mergeLocal(orderID, converter.ConvertOrderResponseToOrder(response))
	}

	m.finish(nil)

	return updated, nil
}

// Cancel requests cancellation and, on success, force-sets the local entry to
// CANCELLED regardless of the response payload: cancellation is a terminal,
// simple transition.
func (m *Manager) Cancel(ctx context.Context, orderID, reason string) (entity.Order, error) {
	err := m.acquireOrder(orderID)
	if err != nil {
		m.setError(err)
		return entity.Order{}, err
	}
	defer m.releaseOrder(orderID)

	m.begin()

	var query url.Values
	if len(reason) > 0 {
		query = url.Values{"reason": []string{reason}}
	}

	res, err := m.transport.Do(ctx, http.MethodPost, orderPath(orderID)+"/cancel", nil, query)
	if err != nil {
		return entity.Order{}, m.fail("cancel order", err, MsgCancelFailed)
	}

	local := m.patchLocalStatus(orderID, entity.StatusCancelled)

	m.finish(nil)

	if response, ok := decodeOrderBody(res.Body); ok {
		order := converter.ConvertOrderResponseToOrder(response)
		order.Status = entity.StatusCancelled
		return order, nil
	}

	return local, nil
}

// Pending, Active and Completed are recomputed from the live list on every
// call; they are never cached separately.

func (m *Manager) Pending() entity.Orders {
	return m.filter(func(order entity.Order) bool {
		return order.Status == entity.StatusPending
	})
}

func (m *Manager) Active() entity.Orders {
	return m.filter(func(order entity.Order) bool {
		return !order.Status.Terminal()
	})
}

func (m *Manager) Completed() entity.Orders {
	return m.filter(func(order entity.Order) bool {
		return order.Status == entity.StatusDelivered
	})
}

func (m *Manager) Orders() entity.Orders {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders := make(entity.Orders, len(m.orders))
	copy(orders, m.orders)

	return orders
}

func (m *Manager) Current() (entity.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return entity.Order{}, false
	}

	return *m.current, true
}

func (m *Manager) Pagination() entity.Pagination {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.pagination
}

func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.loading
}

func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastErr
}

func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastErr = nil
}

func (m *Manager) filter(keep func(order entity.Order) bool) entity.Orders {
	m.mu.Lock()
	defer m.mu.Unlock()

	filtered := make(entity.Orders, 0, len(m.orders))
	for _, order := range m.orders {
		if keep(order) {
			filtered = append(filtered, order)
		}
	}

	return filtered
}

func (m *Manager) patchLocalStatus(orderID string, status entity.OrderStatus) entity.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.orders {
		if m.orders[i].OrderID == orderID {
			m.orders[i].Status = status
			return m.orders[i]
		}
	}

	return entity.Order{}
}

func (m *Manager) mergeLocal(orderID string, server entity.Order) entity.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.orders {
		if m.orders[i].OrderID == orderID {
			m.orders[i] = mergeOrders(m.orders[i], server)
			return m.orders[i]
		}
	}

	return server
}

// mergeOrders overlays the server-returned fields onto the local entry;
// fields absent from the response keep their local values.
func mergeOrders(local, server entity.Order) entity.Order {
	merged := local

	if len(server.OrderID) > 0 {
		merged.OrderID = server.OrderID
	}
	if len(server.RestaurantName) > 0 {
		merged.RestaurantName = server.RestaurantName
	}
	if server.CustomerDetails != (entity.CustomerDetails{}) {
		merged.CustomerDetails = server.CustomerDetails
	}
	if len(server.Items) > 0 {
		merged.Items = server.Items
		merged.TotalAmount = server.TotalAmount
	}
	if len(server.DeliveryInstructions) > 0 {
		merged.DeliveryInstructions = server.DeliveryInstructions
	}
	if server.Status.Valid() {
		merged.Status = server.Status
	}
	if len(server.CreatedAt) > 0 {
		merged.CreatedAt = server.CreatedAt
	}
	if len(server.LastModified) > 0 {
		merged.LastModified = server.LastModified
	}

	return merged
}

func (m *Manager) acquireOrder(orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.inflight[orderID]; busy {
		return fmt.Errorf("order %s: %w", orderID, entity.ErrMutationInFlight)
	}
	m.inflight[orderID] = struct{}{}

	return nil
}

func (m *Manager) releaseOrder(orderID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.inflight, orderID)
}

func (m *Manager) begin() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loading = true
	m.lastErr = nil
}

func (m *Manager) finish(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loading = false
	m.lastErr = err
}

func (m *Manager) setError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastErr = err
}

func (m *Manager) fail(operation string, err error, fallback string) error {
	opErr := &OpError{
		Message: userMessage(err, fallback),
		Err:     err,
	}

	zap.L().Error("order operation failed", zap.String("operation", operation), zap.Error(err))
	m.finish(opErr)

	return opErr
}

func userMessage(err error, fallback string) string {
	var httpErr *entity.HTTPError
	if errors.As(err, &httpErr) && len(httpErr.ServerMessage) > 0 {
		message := httpErr.ServerMessage
		if len(httpErr.ValidationErrors) > 0 {
			message = fmt.Sprintf("%s (%s)", message, strings.Join(httpErr.ValidationErrors, "; "))
		}
		return message
	}

	return fallback
}

func listQuery(params ListParams) url.Values {
	query := url.Values{}
	if len(params.Status) > 0 {
		query.Set("status", params.Status)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}

	return query
}

func orderPath(orderID string) string {
	return ordersEndpoint + "/" + url.PathEscape(orderID)
}

func decodeOrderBody(body []byte) (model.OrderResponse, bool) {
	var envelope model.OrderEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return *envelope.Data, true
	}

	var bare model.OrderResponse
	if err := json.Unmarshal(body, &bare); err == nil && len(bare.OrderID) > 0 {
		return bare, true
	}

	return model.OrderResponse{}, false
}
