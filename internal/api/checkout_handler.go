package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"neoverse-be/internal/payment"
)

type CheckoutHandler struct {
	gateway payment.Gateway
}

type createIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// createPaymentIntent asks the gateway for a payment handle over the given
// amount in minor units. The order itself is created by the client afterwards,
// once payment completes out of band.
func (h *CheckoutHandler) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		return
	}

	if req.Amount <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid amount"})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	intent, err := h.gateway.CreateIntent(r.Context(), req.Amount, currency)
	if err != nil {
		var gwErr *payment.GatewayError
		switch {
		case errors.Is(err, payment.ErrInvalidAmount):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid amount"})
		case errors.As(err, &gwErr):
			// The provider rejected the request; its failures are not ours.
			writeJSON(w, http.StatusForbidden, map[string]string{"error": gwErr.Message})
		default:
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Payment provider unavailable"})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"clientSecret": intent.ClientSecret,
	})
}
