package api

import (
	"fmt"
	"net/http"
	"strings"

	"fantasy-books/internal/cart"
	"fantasy-books/internal/order"
	"fantasy-books/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type trackResponse struct {
	Current []order.Order `json:"current"`
	Past    []order.Order `json:"past"`
}

// orderItemRequest names a book and a quantity; title and price come from
// the catalog.
type orderItemRequest struct {
	BookID   int `json:"bookId"`
	Quantity int `json:"quantity"`
}

type createOrderRequest struct {
	CustomerName  string             `json:"customerName"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email"`
	Address       string             `json:"address"`
	PaymentMethod string             `json:"paymentMethod"`
	Notes         string             `json:"notes"`
	Items         []orderItemRequest `json:"items"`
}

// validate returns the first problem with the request, or "".
func (req createOrderRequest) validate() string {
	switch {
	case !utils.IsRequired(req.CustomerName):
		return "customerName is required"
	case !utils.IsValidPhone(req.Phone):
		return "phone is not a valid Malaysian mobile number"
	case !utils.IsValidEmail(req.Email):
		return "email is not valid"
	case !utils.IsRequired(req.Address):
		return "address is required"
	case !utils.IsRequired(req.PaymentMethod):
		return "paymentMethod is required"
	case len(req.Items) == 0:
		return "items must not be empty"
	}
	for _, it := range req.Items {
		if it.Quantity < cart.MinQuantity || it.Quantity > cart.MaxQuantity {
			return fmt.Sprintf("item quantity must be between %d and %d", cart.MinQuantity, cart.MaxQuantity)
		}
	}
	return ""
}

// TrackOrders looks orders up by id or by phone and splits them into
// current and past.
func (h *Handler) TrackOrders(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	phone := strings.TrimSpace(r.URL.Query().Get("phone"))

	var found []order.Order
	switch {
	case id != "":
		o, err := h.orders.GetByID(r.Context(), strings.ToUpper(id))
		if err != nil {
			writeError(w, r, err)
			return
		}
		found = []order.Order{*o}
	case utils.CleanPhone(phone) != "":
		found = h.orders.GetByPhone(r.Context(), phone)
	default:
		utils.WriteJSONError(w, "id or phone is required", http.StatusBadRequest)
		return
	}

	resp := trackResponse{Current: []order.Order{}, Past: []order.Order{}}
	for _, o := range found {
		if o.Status.IsPast() {
			resp.Past = append(resp.Past, o)
		} else {
			resp.Current = append(resp.Current, o)
		}
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		utils.WriteJSONError(w, msg, http.StatusBadRequest)
		return
	}

	items, err := h.priceItems(req.Items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}

	saved, err := h.orders.Save(r.Context(), order.Order{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		Phone:         req.Phone,
		Email:         strings.TrimSpace(req.Email),
		Address:       strings.TrimSpace(req.Address),
		PaymentMethod: req.PaymentMethod,
		Notes:         strings.TrimSpace(req.Notes),
		Items:         items,
		Subtotal:      subtotal,
		Shipping:      cart.ShippingFor(subtotal),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, saved)
}

// priceItems resolves each requested line against the catalog.
func (h *Handler) priceItems(reqs []orderItemRequest) ([]order.OrderItem, error) {
	items := make([]order.OrderItem, 0, len(reqs))
	for _, it := range reqs {
		book, err := h.books.GetByID(it.BookID)
		if err != nil {
			return nil, fmt.Errorf("book %d: %w", it.BookID, err)
		}
		items = append(items, order.OrderItem{
			BookID:   book.ID,
			Title:    book.Title,
			Quantity: it.Quantity,
			Price:    book.Price,
		})
	}
	return items, nil
}
