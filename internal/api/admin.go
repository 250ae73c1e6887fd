package api

import (
	"net/http"

	"fantasy-books/internal/auth"
	"fantasy-books/internal/logger"
	"fantasy-books/internal/middleware"
	"fantasy-books/internal/order"
	"fantasy-books/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type updateStatusRequest struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber"`
	CancelReason   string `json:"cancelReason"`
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !auth.CheckPassword(req.Password, h.admin.PasswordHash) {
		logger.FromCtx(r.Context()).Warn("admin login failed")
		utils.WriteJSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(h.admin.JWTSecret, "admin", auth.RoleAdmin, h.admin.TokenTTL)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}

// AdminListOrders filters by ?status=; an empty filter lists everything.
func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		utils.WriteJSON(w, http.StatusOK, h.orders.GetAll(r.Context()))
		return
	}

	status, err := order.ParseStatus(raw)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.orders.GetByStatus(r.Context(), status))
}

func (h *Handler) AdminOrderStats(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.orders.GetStats(r.Context()))
}

func (h *Handler) AdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status,
		order.WithTrackingNumber(req.TrackingNumber),
		order.WithCancelReason(req.CancelReason),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if claims, ok := middleware.ClaimsFrom(r.Context()); ok {
		logger.FromCtx(r.Context()).Info("order status changed by admin",
			zap.String("order_id", updated.ID),
			zap.String("status", string(updated.Status)),
			zap.String("admin", claims.Subject),
		)
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}
