package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/quickbite/ordering/internal/cart"
	"github.com/quickbite/ordering/internal/order"
)

// Checkout places an order from the session cart. The cart is cleared only
// after placement committed; a failed placement leaves it intact so the
// user can retry.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid userId")
		return
	}

	var body struct {
		DeliveryMode string `json:"deliveryMode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	mode, ok := order.ParseDeliveryMode(body.DeliveryMode)
	if !ok {
		writeError(w, http.StatusBadRequest, "deliveryMode must be counter or table")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	u, err := h.users.GetByID(ctx, userID)
	if err != nil {
		h.logger.Printf("get user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	var lines []cart.Line
	h.sessions.With(userID, func(c *cart.Cart) {
		lines = c.Items()
	})
	if len(lines) == 0 {
		writeError(w, http.StatusBadRequest, "cart is empty")
		return
	}

	orderID, err := h.orders.Place(ctx, userID, mode, lines, h.policy)
	if err != nil {
		if errors.Is(err, order.ErrMissingProduct) {
			writeError(w, http.StatusConflict, "cart references a product that no longer exists")
			return
		}
		h.logger.Printf("place order for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	h.sessions.With(userID, func(c *cart.Cart) {
		c.Clear()
	})

	o, err := h.orders.GetByID(ctx, orderID)
	if err != nil || o == nil {
		h.logger.Printf("load placed order %d: %v", orderID, err)
		writeJSON(w, http.StatusCreated, map[string]int64{"orderId": orderID})
		return
	}

	if h.events != nil {
		if err := h.events.PublishOrderCreated(ctx, o); err != nil {
			// The order is durable; a lost event is log-worthy, not fatal.
			h.logger.Printf("publish OrderCreated %d: %v", orderID, err)
		}
	}

	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "orderId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid orderId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.orders.GetByID(ctx, orderID)
	if err != nil {
		h.logger.Printf("get order %d: %v", orderID, err)
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	if o == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) ListOrdersByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid userId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.orders.ListByUser(ctx, userID)
	if err != nil {
		h.logger.Printf("list orders for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) AdvanceOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "orderId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid orderId")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	to, ok := order.ParseStatus(body.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	err := h.orders.AdvanceStatus(ctx, orderID, to)
	switch {
	case errors.Is(err, order.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, order.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		h.logger.Printf("advance order %d: %v", orderID, err)
		writeError(w, http.StatusInternalServerError, "failed to update status")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
