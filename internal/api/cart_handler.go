package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"neoverse-be/internal/cart"
	"neoverse-be/internal/middleware"
)

type CartHandler struct {
	carts cart.Service
}

type cartItemJSON struct {
	ProductID   int     `json:"product_id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	view, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items := make([]cartItemJSON, 0, len(view.Items))
	for _, it := range view.Items {
		items = append(items, cartItemJSON{
			ProductID:   it.ProductID,
			Title:       it.Title,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Image:       it.Image,
			Description: it.Description,
			Category:    it.Category,
		})
	}

	if view.ID == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Cart is empty",
			"items":   items,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":         view.ID,
		"user_id":    view.UserID,
		"created_at": view.CreatedAt.Format(time.RFC3339),
		"items":      items,
	})
}

type addToCartRequest struct {
	ProductID int  `json:"product_id"`
	Quantity  *int `json:"quantity"`
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.ProductID == 0 {
		writeMessage(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		writeMessage(w, http.StatusBadRequest, "Quantity must be a positive integer")
		return
	}

	p, err := h.carts.AddItem(r.Context(), userID, req.ProductID, quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    fmt.Sprintf("%s added to cart successfully", p.Title),
		"product_id": req.ProductID,
		"quantity":   quantity,
	})
}

type updateCartRequest struct {
	ProductID int  `json:"product_id"`
	Quantity  *int `json:"quantity"`
}

func (h *CartHandler) update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req updateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.ProductID == 0 || req.Quantity == nil {
		writeMessage(w, http.StatusBadRequest, "Product ID and quantity are required")
		return
	}
	if *req.Quantity < 0 {
		writeMessage(w, http.StatusBadRequest, "Quantity must be a non-negative integer")
		return
	}

	if err := h.carts.UpdateItem(r.Context(), userID, req.ProductID, *req.Quantity); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Cart updated successfully")
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	if err := h.carts.ClearCart(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Cart cleared successfully")
}
