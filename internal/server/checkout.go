package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/order/domain"
)

type checkoutRequest struct {
	RestaurantID      string         `json:"restaurant_id"`
	CustomerID        string         `json:"customer_id"`
	Cart              map[string]int `json:"cart"`
	PackagingRequired bool           `json:"packaging_required"`
	ChefNote          string         `json:"chef_note"`
}

type checkoutResponse struct {
	OrderID         string `json:"orderId"`
	TokenNumber     int64  `json:"tokenNumber"`
	Subtotal        string `json:"subtotal"`
	TaxAmount       string `json:"taxAmount"`
	TaxType         string `json:"taxType,omitempty"`
	TaxPercentage   string `json:"taxPercentage"`
	PackagingCharge string `json:"packagingCharge"`
	FinalTotal      string `json:"finalTotal"`
	Currency        string `json:"currency"`
	AmountMinor     int64  `json:"amountMinor"`
	RazorpayOrderID string `json:"razorpayOrderId"`
	RazorpayKeyID   string `json:"razorpayKeyId"`
}

func (s *Server) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.orderSvc.Checkout(c.Request.Context(), orderdomain.CheckoutRequest{
		RestaurantID:      req.RestaurantID,
		CustomerID:        req.CustomerID,
		Cart:              orderdomain.Cart(req.Cart),
		PackagingRequired: req.PackagingRequired,
		ChefNote:          req.ChefNote,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	order := result.Order
	c.JSON(http.StatusCreated, checkoutResponse{
		OrderID:         order.ID.String(),
		TokenNumber:     order.TokenNumber,
		Subtotal:        order.Subtotal.StringFixed(2),
		TaxAmount:       order.TaxAmount.StringFixed(2),
		TaxType:         string(order.TaxType),
		TaxPercentage:   order.TaxPercentage.String(),
		PackagingCharge: order.PackagingCharge.StringFixed(2),
		FinalTotal:      order.TotalAmount.StringFixed(2),
		Currency:        result.Currency,
		AmountMinor:     result.AmountMinor,
		RazorpayOrderID: result.GatewayOrderID,
		RazorpayKeyID:   result.GatewayKeyID,
	})
}
