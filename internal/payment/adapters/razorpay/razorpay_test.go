package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"testing"

	paymentdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/payment/domain"
)

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{}}}}`)

	header := http.Header{}
	header.Set(SignatureHeader, sign(secret, payload))

	adapter := &Adapter{webhookSecret: secret}
	if err := adapter.Verify(context.Background(), payload, header); err != nil {
		t.Fatalf("expected valid signature, got error: %v", err)
	}

	header.Set(SignatureHeader, sign("wrong", payload))
	if err := adapter.Verify(context.Background(), payload, header); !errors.Is(err, paymentdomain.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature error, got %v", err)
	}

	header.Del(SignatureHeader)
	if err := adapter.Verify(context.Background(), payload, header); !errors.Is(err, paymentdomain.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature error for missing header, got %v", err)
	}
}

func TestVerifyRejectsTamperedBody(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"amount":31500}}}}`)

	header := http.Header{}
	header.Set(SignatureHeader, sign(secret, payload))

	tampered := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"amount":1}}}}`)
	adapter := &Adapter{webhookSecret: secret}
	if err := adapter.Verify(context.Background(), tampered, header); !errors.Is(err, paymentdomain.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature error for tampered body, got %v", err)
	}
}

func TestParseCapturedEvent(t *testing.T) {
	payload := []byte(`{
		"entity": "event",
		"event": "payment.captured",
		"created_at": 1756400000,
		"payload": {
			"payment": {
				"entity": {
					"id": "pay_Nx123",
					"amount": 31500,
					"currency": "inr",
					"order_id": "order_Nx456",
					"status": "captured",
					"created_at": 1756400000
				}
			}
		}
	}`)

	adapter := &Adapter{webhookSecret: "whsec_test"}
	event, err := adapter.Parse(context.Background(), payload)
	if err != nil {
		t.Fatalf("parse event: %v", err)
	}

	if event.Type != paymentdomain.EventTypePaymentCaptured {
		t.Fatalf("expected type %s, got %s", paymentdomain.EventTypePaymentCaptured, event.Type)
	}
	if event.ProviderEventID != "pay_Nx123" {
		t.Fatalf("expected provider event id pay_Nx123, got %s", event.ProviderEventID)
	}
	if event.GatewayOrderID != "order_Nx456" {
		t.Fatalf("expected gateway order id order_Nx456, got %s", event.GatewayOrderID)
	}
	if event.Amount != 31500 {
		t.Fatalf("expected amount 31500, got %d", event.Amount)
	}
	if event.Currency != "INR" {
		t.Fatalf("expected currency INR, got %s", event.Currency)
	}
}

func TestParseIgnoresOtherEvents(t *testing.T) {
	payload := []byte(`{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)

	adapter := &Adapter{webhookSecret: "whsec_test"}
	if _, err := adapter.Parse(context.Background(), payload); !errors.Is(err, paymentdomain.ErrEventIgnored) {
		t.Fatalf("expected event ignored, got %v", err)
	}
}

func TestParseRejectsMalformedPayload(t *testing.T) {
	adapter := &Adapter{webhookSecret: "whsec_test"}

	if _, err := adapter.Parse(context.Background(), []byte(`not json`)); !errors.Is(err, paymentdomain.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload, got %v", err)
	}

	missingOrder := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1"}}}}`)
	if _, err := adapter.Parse(context.Background(), missingOrder); !errors.Is(err, paymentdomain.ErrInvalidEvent) {
		t.Fatalf("expected invalid event, got %v", err)
	}
}
