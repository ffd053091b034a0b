package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	paymentdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/payment/domain"
)

const Provider = "razorpay"

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body,
// keyed with the account's webhook secret.
const SignatureHeader = "X-Razorpay-Signature"

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Provider() string {
	return Provider
}

func (f *Factory) NewAdapter(cfg paymentdomain.AdapterConfig) (paymentdomain.Adapter, error) {
	secret, ok := readString(cfg.Config, "webhook_secret")
	if !ok {
		return nil, paymentdomain.ErrInvalidConfig
	}
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, paymentdomain.ErrInvalidConfig
	}

	return &Adapter{webhookSecret: secret}, nil
}

type Adapter struct {
	webhookSecret string
}

func (a *Adapter) Verify(ctx context.Context, payload []byte, headers http.Header) error {
	signature := strings.TrimSpace(headers.Get(SignatureHeader))
	if signature == "" {
		return paymentdomain.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(a.webhookSecret))
	_, _ = mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return paymentdomain.ErrInvalidSignature
	}
	return nil
}

func (a *Adapter) Parse(ctx context.Context, payload []byte) (*paymentdomain.CaptureEvent, error) {
	var event razorpayEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, paymentdomain.ErrInvalidPayload
	}

	if strings.TrimSpace(event.Event) != "payment.captured" {
		return nil, paymentdomain.ErrEventIgnored
	}

	payment := event.Payload.Payment.Entity
	if strings.TrimSpace(payment.ID) == "" || strings.TrimSpace(payment.OrderID) == "" {
		return nil, paymentdomain.ErrInvalidEvent
	}

	occurredAt := timestamp(payment.CreatedAt, event.CreatedAt)
	return &paymentdomain.CaptureEvent{
		Provider:          Provider,
		ProviderEventID:   payment.ID,
		ProviderPaymentID: payment.ID,
		GatewayOrderID:    payment.OrderID,
		Type:              paymentdomain.EventTypePaymentCaptured,
		Amount:            payment.Amount,
		Currency:          strings.ToUpper(strings.TrimSpace(payment.Currency)),
		OccurredAt:        occurredAt,
		RawPayload:        payload,
	}, nil
}

type razorpayEvent struct {
	Entity    string          `json:"entity"`
	Event     string          `json:"event"`
	CreatedAt int64           `json:"created_at"`
	Payload   razorpayPayload `json:"payload"`
}

type razorpayPayload struct {
	Payment razorpayPaymentWrapper `json:"payment"`
}

type razorpayPaymentWrapper struct {
	Entity razorpayPayment `json:"entity"`
}

type razorpayPayment struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

func timestamp(primary int64, fallback int64) time.Time {
	value := primary
	if value == 0 {
		value = fallback
	}
	if value == 0 {
		return time.Now().UTC()
	}
	return time.Unix(value, 0).UTC()
}

func readString(config map[string]any, key string) (string, bool) {
	value, ok := config[key]
	if !ok {
		return "", false
	}
	switch cast := value.(type) {
	case string:
		return cast, true
	default:
		return "", false
	}
}
