package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway(baseURL string) *stripeGateway {
	return &stripeGateway{
		apiKey:     "sk_test_123",
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestStripeGateway_CreateIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/v1/payment_intents", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "2500", r.PostForm.Get("amount"))
			assert.Equal(t, "usd", r.PostForm.Get("currency"))
			assert.Equal(t, "true", r.PostForm.Get("automatic_payment_methods[enabled]"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "pi_123",
				"client_secret": "pi_123_secret_abc",
				"amount": 2500,
				"currency": "usd",
				"status": "requires_payment_method"
			}`))
		}))
		defer srv.Close()

		intent, err := testGateway(srv.URL).CreateIntent(ctx, 2500, "usd")
		require.NoError(t, err)
		assert.Equal(t, "pi_123", intent.ID)
		assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
		assert.Equal(t, int64(2500), intent.Amount)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		_, err := testGateway("http://unused").CreateIntent(ctx, 0, "usd")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("ProviderRejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error": {"type": "card_error", "message": "Your card was declined."}}`))
		}))
		defer srv.Close()

		_, err := testGateway(srv.URL).CreateIntent(ctx, 2500, "usd")
		require.Error(t, err)

		var gwErr *GatewayError
		require.True(t, errors.As(err, &gwErr))
		assert.Equal(t, http.StatusPaymentRequired, gwErr.StatusCode)
		assert.Equal(t, "Your card was declined.", gwErr.Message)
	})

	t.Run("NonJSONErrorBody", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream unavailable"))
		}))
		defer srv.Close()

		_, err := testGateway(srv.URL).CreateIntent(ctx, 100, "usd")

		var gwErr *GatewayError
		require.True(t, errors.As(err, &gwErr))
		assert.Equal(t, "upstream unavailable", gwErr.Message)
	})

	t.Run("TransportFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse connections

		_, err := testGateway(srv.URL).CreateIntent(ctx, 100, "usd")
		require.Error(t, err)

		var gwErr *GatewayError
		assert.False(t, errors.As(err, &gwErr))
		assert.Contains(t, err.Error(), "stripe request failed")
	})
}
