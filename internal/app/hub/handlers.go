package hub

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DemoHandler serves the demonstration catalog/order surface under /api.
type DemoHandler struct {
	registry *DemoRegistry
}

func NewDemoHandler(registry *DemoRegistry) *DemoHandler {
	return &DemoHandler{registry: registry}
}

func (h *DemoHandler) Catalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"items":   h.registry.Catalog(),
			"message": "Menu catalog retrieved successfully",
		})
	}
}

func (h *DemoHandler) SubmitOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request SubmitOrderRequest
		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		defer r.Body.Close()

		order, err := h.registry.Submit(request)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Restaurant name and ordered items are required")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"order":   order,
			"message": "Order submitted successfully",
		})
	}
}

func (h *DemoHandler) Orders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders := h.registry.Orders()

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"orders":  orders,
			"count":   len(orders),
			"message": "Orders retrieved successfully",
		})
	}
}

func (h *DemoHandler) Order() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, ok := h.registry.Get(chi.URLParam(r, "orderId"))
		if !ok {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"order":   order,
			"message": "Order details retrieved",
		})
	}
}

func (h *DemoHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			NewStatus string `json:"newStatus"`
		}
		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		defer r.Body.Close()

		order, err := h.registry.UpdateStatus(chi.URLParam(r, "orderId"), request.NewStatus)
		if err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				writeError(w, http.StatusNotFound, "Order not found")
				return
			}

			writeError(w, http.StatusBadRequest, "Invalid status value")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"order":   order,
			"message": "Order status updated successfully",
		})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		zap.L().Error("error while encoding response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"success": false,
		"message": message,
	})
}
