package domain

import "context"

type CheckoutRequest struct {
	RestaurantID      string
	CustomerID        string
	Cart              Cart
	PackagingRequired bool
	ChefNote          string
}

// CheckoutResponse carries everything the customer page needs to open the
// gateway checkout widget.
type CheckoutResponse struct {
	Order          Order
	GatewayOrderID string
	GatewayKeyID   string
	AmountMinor    int64
	Currency       string
}

type OrderView struct {
	Order
	Items []OrderItem `json:"items"`
}

type Service interface {
	Checkout(context.Context, CheckoutRequest) (CheckoutResponse, error)
	GetByID(ctx context.Context, id string) (OrderView, error)
	ListBoard(ctx context.Context, restaurantID string) ([]Order, error)
	AdvanceStatus(ctx context.Context, restaurantID, orderID string) (Order, error)
}
