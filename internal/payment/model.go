package payment

import (
	"context"
	"errors"
	"fmt"
)

// Intent is the opaque payment handle the client uses to complete payment
// out of band.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
}

// Gateway abstracts the payment provider.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (*Intent, error)
}

var ErrInvalidAmount = errors.New("invalid amount")

// GatewayError is a failure reported by the provider itself, as opposed to a
// transport failure reaching it.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment provider error (status %d): %s", e.StatusCode, e.Message)
}
