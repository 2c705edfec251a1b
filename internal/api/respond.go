package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"neoverse-be/internal/cart"
	"neoverse-be/internal/logger"
	"neoverse-be/internal/order"
	"neoverse-be/internal/product"
	"neoverse-be/internal/user"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}

// writeError maps domain errors onto the HTTP taxonomy. Anything unmapped is
// an internal error; the detail goes to the log, not the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		writeMessage(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, cart.ErrCartNotFound):
		writeMessage(w, http.StatusNotFound, "Cart not found")
	case errors.Is(err, cart.ErrItemNotFound):
		writeMessage(w, http.StatusNotFound, "Product not found in cart")
	case errors.Is(err, cart.ErrInvalidQuantity):
		writeMessage(w, http.StatusBadRequest, "Quantity must be a positive integer")
	case errors.Is(err, order.ErrOrderNotFound):
		writeMessage(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, order.ErrNotCancellable):
		writeMessage(w, http.StatusBadRequest, "Order cannot be cancelled")
	case errors.Is(err, order.ErrEmptyOrder):
		writeMessage(w, http.StatusBadRequest, "Order must contain at least one item")
	case errors.Is(err, order.ErrMissingShipping):
		writeMessage(w, http.StatusBadRequest, "Shipping address is required")
	case errors.Is(err, user.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, user.ErrUserExists):
		writeMessage(w, http.StatusBadRequest, "Username or email already exists")
	case errors.Is(err, user.ErrEmailTaken):
		writeMessage(w, http.StatusBadRequest, "Email already in use")
	case errors.Is(err, user.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, user.ErrWrongPassword):
		writeMessage(w, http.StatusBadRequest, "Current password is incorrect")
	default:
		logger.FromCtx(r.Context()).Error("unhandled error", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
