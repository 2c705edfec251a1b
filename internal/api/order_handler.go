package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"neoverse-be/internal/middleware"
	"neoverse-be/internal/order"

	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders order.Service
}

type orderItemJSON struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Title     string  `json:"title"`
}

type orderJSON struct {
	ID              int             `json:"id"`
	TotalAmount     float64         `json:"total_amount"`
	Status          string          `json:"status"`
	ShippingAddress string          `json:"shipping_address"`
	CreatedAt       string          `json:"created_at"`
	Items           []orderItemJSON `json:"items"`
}

func toOrderJSON(o order.Order) orderJSON {
	items := make([]orderItemJSON, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemJSON{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Title:     it.Title,
		})
	}
	return orderJSON{
		ID:              o.ID,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
		Items:           items,
	}
}

type createOrderRequest struct {
	TotalAmount     *float64             `json:"total_amount"`
	ShippingAddress string               `json:"shipping_address"`
	Items           []order.ItemSnapshot `json:"items"`
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	missing := missingFields([]fieldCheck{
		{"total_amount", req.TotalAmount == nil},
		{"shipping_address", req.ShippingAddress == ""},
		{"items", len(req.Items) == 0},
	})
	if missing != "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields: "+missing)
		return
	}

	o, err := h.orders.Create(r.Context(), order.CreateOrderParams{
		UserID:          userID,
		TotalAmount:     *req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
		Items:           req.Items,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Order created successfully",
		"order_id": o.ID,
	})
}

func (h *OrderHandler) get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Order not found")
		return
	}

	o, err := h.orders.Get(r.Context(), id, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderJSON(o))
}

func (h *OrderHandler) cancel(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Order not found")
		return
	}

	if err := h.orders.Cancel(r.Context(), id, userID); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Order cancelled successfully")
}

func (h *OrderHandler) listMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	orders, err := h.orders.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderJSON(o))
	}
	writeJSON(w, http.StatusOK, out)
}

// --- admin ---

type adminOrderJSON struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

func toAdminOrderJSON(o order.Order) adminOrderJSON {
	return adminOrderJSON{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
	}
}

func (h *OrderHandler) adminList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]adminOrderJSON, 0, len(orders))
	for _, o := range orders {
		out = append(out, toAdminOrderJSON(o))
	}
	writeJSON(w, http.StatusOK, out)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) adminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Order not found")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Status == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields: status")
		return
	}

	o, err := h.orders.AdminUpdateStatus(r.Context(), id, order.Status(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAdminOrderJSON(o))
}
