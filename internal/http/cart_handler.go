package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/quickbite/ordering/internal/cart"
	"github.com/quickbite/ordering/internal/catalog"
)

type cartLineView struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

type cartView struct {
	UserID int64          `json:"userId"`
	Items  []cartLineView `json:"items"`
	Total  float64        `json:"total"`
}

func (h *Handler) cartView(ctx context.Context, userID int64) (*cartView, error) {
	products, err := h.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	snap := catalog.SnapshotOf(products)

	view := &cartView{UserID: userID, Items: []cartLineView{}}
	h.sessions.With(userID, func(c *cart.Cart) {
		for _, line := range c.Items() {
			lv := cartLineView{ProductID: line.ProductID, Quantity: line.Quantity}
			if p, ok := snap[line.ProductID]; ok {
				lv.Name = p.Name
				lv.UnitPrice = p.Price
				lv.Subtotal = p.Price * float64(line.Quantity)
			}
			view.Items = append(view.Items, lv)
		}
		view.Total = c.Total(snap)
	})
	return view, nil
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid userId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	view, err := h.cartView(ctx, userID)
	if err != nil {
		h.logger.Printf("load cart %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// AddCartItem puts qty units of a product into the session cart. Stock is
// checked against the catalog before adding, same as the storefront did;
// placement re-reads stock authoritatively at checkout.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid userId")
		return
	}

	var body struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}
	if body.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.catalog.GetByID(ctx, body.ProductID)
	if err != nil {
		h.logger.Printf("get product %d: %v", body.ProductID, err)
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if p.Stock <= 0 {
		writeError(w, http.StatusConflict, "product out of stock")
		return
	}

	h.sessions.With(userID, func(c *cart.Cart) {
		c.Add(body.ProductID, body.Quantity)
	})

	view, err := h.cartView(ctx, userID)
	if err != nil {
		h.logger.Printf("load cart %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid userId")
		return
	}

	var body struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}
	if body.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	h.sessions.With(userID, func(c *cart.Cart) {
		c.Remove(body.ProductID, body.Quantity)
	})

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	view, err := h.cartView(ctx, userID)
	if err != nil {
		h.logger.Printf("load cart %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid userId")
		return
	}

	h.sessions.Drop(userID)
	w.WriteHeader(http.StatusNoContent)
}
