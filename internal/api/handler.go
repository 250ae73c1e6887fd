package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fantasy-books/internal/cart"
	"fantasy-books/internal/catalog"
	"fantasy-books/internal/logger"
	"fantasy-books/internal/order"
	"fantasy-books/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminConfig enables the admin endpoints when both fields are set.
type AdminConfig struct {
	JWTSecret    string
	PasswordHash string
	TokenTTL     time.Duration
}

func (c AdminConfig) enabled() bool {
	return c.JWTSecret != "" && c.PasswordHash != ""
}

type Handler struct {
	books  catalog.Repository
	cart   cart.Service
	badge  *cart.Badge
	orders order.Service
	admin  AdminConfig
}

func NewHandler(books catalog.Repository, cartSvc cart.Service, badge *cart.Badge, orders order.Service, admin AdminConfig) *Handler {
	return &Handler{
		books:  books,
		cart:   cartSvc,
		badge:  badge,
		orders: orders,
		admin:  admin,
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func bookIDParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "bookId"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrBookNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, order.ErrInvalidStatus):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, order.ErrOrderExists),
		errors.Is(err, cart.ErrRemovalNeedsConfirmation):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
