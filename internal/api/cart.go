package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fantasy-books/internal/cart"
	"fantasy-books/internal/utils"
)

type cartResponse struct {
	Items   []cart.CartItem `json:"items"`
	Summary cart.Summary    `json:"summary"`
}

type badgeResponse struct {
	Count   int  `json:"count"`
	Visible bool `json:"visible"`
}

type addItemRequest struct {
	BookID int `json:"bookId"`
}

// quantityInput accepts the quantity as typed, either a JSON number or a
// string, and normalizes it with cart.ParseQuantity.
type quantityInput int

func (q *quantityInput) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		raw = s
	}
	*q = quantityInput(cart.ParseQuantity(raw))
	return nil
}

type updateQuantityRequest struct {
	Quantity quantityInput `json:"quantity"`
}

type confirmRemovalResponse struct {
	Error string         `json:"error"`
	Item  *cart.CartItem `json:"item"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, cartResponse{
		Items:   h.cart.GetCart(r.Context()),
		Summary: h.cart.Summary(r.Context()),
	})
}

func (h *Handler) CartSummary(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.cart.Summary(r.Context()))
}

func (h *Handler) CartBadge(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, badgeResponse{
		Count:   h.badge.Count(),
		Visible: h.badge.Visible(),
	})
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.cart.AddToCart(r.Context(), req.BookID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.badge.Refresh(r.Context())
	utils.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	bookID, ok := bookIDParam(r)
	if !ok {
		utils.WriteJSONError(w, "invalid book id", http.StatusBadRequest)
		return
	}

	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.cart.UpdateItemQuantity(r.Context(), bookID, int(req.Quantity))
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.badge.Refresh(r.Context())
	utils.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) IncreaseCartItem(w http.ResponseWriter, r *http.Request) {
	h.stepCartItem(w, r, h.cart.IncreaseQuantity)
}

// DecreaseCartItem answers 409 with the unchanged line when the quantity is
// already at the minimum; the client confirms with DELETE.
func (h *Handler) DecreaseCartItem(w http.ResponseWriter, r *http.Request) {
	h.stepCartItem(w, r, h.cart.DecreaseQuantity)
}

func (h *Handler) stepCartItem(w http.ResponseWriter, r *http.Request, step func(ctx context.Context, bookID int) (*cart.CartItem, error)) {
	bookID, ok := bookIDParam(r)
	if !ok {
		utils.WriteJSONError(w, "invalid book id", http.StatusBadRequest)
		return
	}

	item, err := step(r.Context(), bookID)
	if errors.Is(err, cart.ErrRemovalNeedsConfirmation) {
		utils.WriteJSON(w, http.StatusConflict, confirmRemovalResponse{Error: err.Error(), Item: item})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.badge.Refresh(r.Context())
	utils.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	bookID, ok := bookIDParam(r)
	if !ok {
		utils.WriteJSONError(w, "invalid book id", http.StatusBadRequest)
		return
	}

	h.cart.RemoveFromCart(r.Context(), bookID)
	h.badge.Refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearCart(r.Context())
	h.badge.Refresh(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
