package domain

import "context"

// Credentials are one restaurant's API keys for the payment gateway.
type Credentials struct {
	KeyID     string
	KeySecret string
}

type CreateOrderRequest struct {
	// AmountMinor is the charge amount in the currency's minor unit.
	AmountMinor int64
	Currency    string
	// Receipt ties the gateway order back to the internal order id.
	Receipt string
}

type GatewayOrder struct {
	ID          string
	AmountMinor int64
	Currency    string
	Status      string
}

// Gateway creates payment orders against the provider's REST API using the
// restaurant's own credentials.
type Gateway interface {
	CreateOrder(ctx context.Context, creds Credentials, req CreateOrderRequest) (GatewayOrder, error)
}
