package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"neoverse-be/internal/logger"

	"go.uber.org/zap"
)

const stripeBaseURL = "https://api.stripe.com"

type stripeGateway struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewStripeGateway(apiKey string) Gateway {
	if apiKey == "" {
		logger.L().Warn("Stripe API key is empty")
	}

	return &stripeGateway{
		apiKey:  apiKey,
		baseURL: stripeBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type stripeIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateIntent asks Stripe for a PaymentIntent over the given amount in minor
// units. Provider rejections come back as *GatewayError; transport failures
// as plain errors.
func (g *stripeGateway) CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (*Intent, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int64("amount", amountMinorUnits),
		zap.String("currency", currency),
	)

	if amountMinorUnits <= 0 {
		return nil, ErrInvalidAmount
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinorUnits, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")

	req, err := http.NewRequestWithContext(ctx, "POST",
		g.baseURL+"/v1/payment_intents",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	log.Info("creating payment intent")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("stripe request failed", zap.Error(err))
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp stripeErrorResponse
		message := string(bodyBytes)
		if json.Unmarshal(bodyBytes, &errResp) == nil && errResp.Error.Message != "" {
			message = errResp.Error.Message
		}
		log.Error("stripe returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: message}
	}

	var res stripeIntentResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding stripe response", zap.Error(err))
		return nil, err
	}

	log.Info("payment intent created",
		zap.String("intent_id", res.ID),
		zap.String("status", res.Status),
	)

	return &Intent{
		ID:           res.ID,
		ClientSecret: res.ClientSecret,
		Amount:       res.Amount,
		Currency:     res.Currency,
		Status:       res.Status,
	}, nil
}
