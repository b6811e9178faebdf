package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Rakhulsr/go-marketplace/app/middlewares"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/unrolled/render"
)

type CartHandler struct {
	cartSvc *services.CartService
	render  *render.Render
}

func NewCartHandler(cartSvc *services.CartService, rnd *render.Render) *CartHandler {
	return &CartHandler{cartSvc: cartSvc, render: rnd}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	view, err := h.cartSvc.GetCart(r.Context(), actor)
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	if len(view.Items) == 0 {
		h.render.JSON(w, http.StatusOK, map[string]string{"message": "Your cart is empty"})
		return
	}

	h.render.JSON(w, http.StatusOK, view)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	var in struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ProductID == "" {
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "product_id is required"})
		return
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	item, err := h.cartSvc.AddItem(r.Context(), actor, in.ProductID, in.Quantity)
	if err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	h.render.JSON(w, http.StatusCreated, item)
}

// RemoveItem decrements one unit, deactivating the line on the last one.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, false, "Item removed")
}

// DeleteItem zeroes the line regardless of quantity.
func (h *CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, true, "Item deleted")
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request, all bool, detail string) {
	actor, ok := middlewares.ActorFromRequest(r)
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate user"})
		return
	}

	productID := r.URL.Query().Get("itm_id")
	if productID == "" {
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "itm_id is required"})
		return
	}

	if err := h.cartSvc.RemoveItem(r.Context(), actor, productID, all); err != nil {
		writeServiceError(h.render, w, err)
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]string{"detail": detail})
}
