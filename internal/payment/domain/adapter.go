package domain

import (
	"context"
	"net/http"
)

// AdapterConfig carries provider specific settings such as webhook secrets.
type AdapterConfig struct {
	Config map[string]any
}

// Adapter authenticates and normalizes incoming webhook deliveries for one
// payment provider.
type Adapter interface {
	// Verify checks the delivery's signature against the raw request body.
	// It must run before the body is parsed or otherwise trusted.
	Verify(ctx context.Context, payload []byte, headers http.Header) error

	// Parse extracts a canonical capture event. Deliveries for event types
	// the platform does not act on return ErrEventIgnored.
	Parse(ctx context.Context, payload []byte) (*CaptureEvent, error)
}

type AdapterFactory interface {
	Provider() string
	NewAdapter(cfg AdapterConfig) (Adapter, error)
}
