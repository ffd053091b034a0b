package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// EventRecord is the durable trace of one received webhook event. The
// unique (provider, provider_event_id) pair is what makes redelivery a
// no-op instead of a double confirmation.
type EventRecord struct {
	ID              snowflake.ID   `json:"id" gorm:"primaryKey"`
	Provider        string         `json:"provider" gorm:"type:text;not null"`
	ProviderEventID string         `json:"provider_event_id" gorm:"type:text;not null"`
	EventType       string         `json:"event_type" gorm:"type:text;not null"`
	Payload         datatypes.JSON `json:"payload" gorm:"type:jsonb;not null"`
	ReceivedAt      time.Time      `json:"received_at" gorm:"not null"`
	ProcessedAt     *time.Time     `json:"processed_at"`
}

func (EventRecord) TableName() string { return "payment_events" }

const EventTypePaymentCaptured = "payment_captured"

// CaptureEvent is the canonical capture notification parsed by adapters.
type CaptureEvent struct {
	Provider          string
	ProviderEventID   string
	ProviderPaymentID string
	GatewayOrderID    string
	Type              string
	Amount            int64
	Currency          string
	OccurredAt        time.Time
	RawPayload        []byte
}
