package domain

import "context"

type Service interface {
	// ProcessCapture applies a verified capture event to its order. It is
	// safe to call more than once for the same event; replays surface
	// ErrEventAlreadyProcessed so the webhook can acknowledge them.
	ProcessCapture(ctx context.Context, event *CaptureEvent) error
}
