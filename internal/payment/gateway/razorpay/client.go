// Package razorpay implements the payment gateway against the Razorpay
// Orders REST API. Every call authenticates with the restaurant's own key
// pair, never a shared platform account.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	paymentdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/payment/domain"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.razorpay.com"

type Client struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, log *zap.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 12 * time.Second},
		log:     log.Named("razorpay.client"),
	}
}

type createOrderBody struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) CreateOrder(ctx context.Context, creds paymentdomain.Credentials, req paymentdomain.CreateOrderRequest) (paymentdomain.GatewayOrder, error) {
	if strings.TrimSpace(creds.KeyID) == "" || strings.TrimSpace(creds.KeySecret) == "" {
		return paymentdomain.GatewayOrder{}, paymentdomain.ErrInvalidConfig
	}

	body, err := json.Marshal(createOrderBody{
		Amount:   req.AmountMinor,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	})
	if err != nil {
		return paymentdomain.GatewayOrder{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return paymentdomain.GatewayOrder{}, err
	}
	httpReq.SetBasicAuth(creds.KeyID, creds.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.log.Warn("create order request failed", zap.Error(err))
		return paymentdomain.GatewayOrder{}, paymentdomain.ErrGatewayUnavailable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return paymentdomain.GatewayOrder{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		_ = json.Unmarshal(raw, &apiErr)
		c.log.Warn("create order rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("code", apiErr.Error.Code),
			zap.String("description", apiErr.Error.Description),
		)
		return paymentdomain.GatewayOrder{}, paymentdomain.ErrGatewayUnavailable
	}

	var order orderResponse
	if err := json.Unmarshal(raw, &order); err != nil {
		return paymentdomain.GatewayOrder{}, err
	}
	if strings.TrimSpace(order.ID) == "" {
		return paymentdomain.GatewayOrder{}, paymentdomain.ErrGatewayUnavailable
	}

	return paymentdomain.GatewayOrder{
		ID:          order.ID,
		AmountMinor: order.Amount,
		Currency:    order.Currency,
		Status:      order.Status,
	}, nil
}
