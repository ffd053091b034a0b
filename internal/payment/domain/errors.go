package domain

import "errors"

var (
	ErrProviderNotFound      = errors.New("provider_not_found")
	ErrInvalidConfig         = errors.New("invalid_config")
	ErrInvalidSignature      = errors.New("invalid_signature")
	ErrInvalidPayload        = errors.New("invalid_payload")
	ErrInvalidEvent          = errors.New("invalid_event")
	ErrEventIgnored          = errors.New("event_ignored")
	ErrEventAlreadyProcessed = errors.New("event_already_processed")
	ErrOrderNotFound         = errors.New("order_not_found")
	ErrAmountMismatch        = errors.New("amount_mismatch")
	ErrGatewayUnavailable    = errors.New("gateway_unavailable")
)
