package hub

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pakolabs/business-console/internal/app/model"
	"github.com/pakolabs/business-console/internal/app/validator"
	"go.uber.org/zap"
)

// BusinessHandler serves the production-shaped surface under /api/v1.
type BusinessHandler struct {
	registry *BusinessRegistry
	catalog  *DemoRegistry
}

func NewBusinessHandler(registry *BusinessRegistry, catalog *DemoRegistry) *BusinessHandler {
	return &BusinessHandler{
		registry: registry,
		catalog:  catalog,
	}
}

func (h *BusinessHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request model.LoginRequest
		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil || !validator.ValidateLoginRequest(request) {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}
		defer r.Body.Close()

		token, user, err := h.registry.Login(request)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			if errors.Is(err, ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "Invalid credentials or account pending approval")
				return
			}

			zap.L().Error("error while logging user in", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Login failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"token":   token,
			"user": model.UserResponse{
				ID:     user.ID.String(),
				Email:  user.Email,
				Name:   user.Name,
				Role:   user.Role,
				Status: user.Status,
			},
			"message": "Login successful",
		})
	}
}

func (h *BusinessHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request model.RegisterBusinessRequest
		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil || !validator.ValidateRegisterRequest(request) {
			writeError(w, http.StatusBadRequest, "name, email and password are required")
			return
		}
		defer r.Body.Close()

		message, err := h.registry.Register(request)
		if err != nil {
			if errors.Is(err, ErrEmailExists) {
				writeError(w, http.StatusConflict, "Email is already registered")
				return
			}

			zap.L().Error("error while registering business", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"message": message,
		})
	}
}

func (h *BusinessHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request model.CreateOrderRequest
		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		defer r.Body.Close()

		if validationErr := validator.ValidateCreateOrderRequest(request); validationErr != nil {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
				Message: "Order validation failed",
				ValidationErrors: []model.ValidationErrorItem{
					{Field: "order", Message: validationErr.Error()},
				},
			})
			return
		}

		order := h.registry.CreateOrder(h.catalog, request)

		writeJSON(w, http.StatusCreated, model.OrderEnvelope{
			Success: true,
			Data:    &order,
			Message: "Order created successfully",
		})
	}
}

func (h *BusinessHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		page, _ := strconv.Atoi(query.Get("page"))
		limit, _ := strconv.Atoi(query.Get("limit"))

		orders, pagination := h.registry.ListOrders(query.Get("status"), page, limit)

		writeJSON(w, http.StatusOK, model.OrdersEnvelope{
			Success:    true,
			Data:       orders,
			Pagination: &pagination,
			Message:    "Orders retrieved successfully",
		})
	}
}

func (h *BusinessHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, ok := h.registry.GetOrder(chi.URLParam(r, "orderId"))
		if !ok {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}

		writeJSON(w, http.StatusOK, model.OrderEnvelope{
			Success: true,
			Data:    &order,
			Message: "Order details retrieved",
		})
	}
}

func (h *BusinessHandler) UpdateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request model.UpdateOrderRequest
		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		defer r.Body.Close()

		order, err := h.registry.UpdateOrder(h.catalog, chi.URLParam(r, "orderId"), request)
		if err != nil {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}

		writeJSON(w, http.StatusOK, model.OrderEnvelope{
			Success: true,
			Data:    &order,
			Message: "Order updated successfully",
		})
	}
}

func (h *BusinessHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request model.UpdateStatusRequest
		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		defer r.Body.Close()

		order, err := h.registry.UpdateOrderStatus(chi.URLParam(r, "orderId"), request.Status)
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				writeError(w, http.StatusNotFound, "Order not found")
				return
			}

			writeError(w, http.StatusBadRequest, "Invalid status value")
			return
		}

		writeJSON(w, http.StatusOK, model.OrderEnvelope{
			Success: true,
			Data:    &order,
			Message: "Order status updated successfully",
		})
	}
}

func (h *BusinessHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := h.registry.CancelOrder(chi.URLParam(r, "orderId"), r.URL.Query().Get("reason"))
		if err != nil {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}

		writeJSON(w, http.StatusOK, model.OrderEnvelope{
			Success: true,
			Data:    &order,
			Message: "Order cancelled successfully",
		})
	}
}
