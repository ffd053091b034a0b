package service

import (
	"context"
	"errors"
	"strings"
	"time"

	menudomain "github.com/abhayvishwakarma1111/bitezyqr/internal/menu/domain"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/order/domain"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/order/events"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/order/pricing"
	paymentdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/payment/domain"
	restaurantdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const currency = "INR"

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	Restaurants restaurantdomain.Service
	Menu        menudomain.Service
	Gateway     paymentdomain.Gateway
	Hub         *events.Hub
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	restaurants restaurantdomain.Service
	menu        menudomain.Service
	gateway     paymentdomain.Gateway
	hub         *events.Hub
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("order.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		restaurants: p.Restaurants,
		menu:        p.Menu,
		gateway:     p.Gateway,
		hub:         p.Hub,
	}
}

func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResponse, error) {
	restaurant, err := s.restaurants.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, restaurantdomain.ErrInvalidID) {
			return domain.CheckoutResponse{}, domain.ErrInvalidRestaurant
		}
		return domain.CheckoutResponse{}, err
	}
	if !restaurant.Active {
		return domain.CheckoutResponse{}, restaurantdomain.ErrNotFound
	}

	ids, err := cartItemIDs(req.Cart)
	if err != nil {
		return domain.CheckoutResponse{}, err
	}

	priced, err := s.menu.PricesFor(ctx, restaurant.ID, ids)
	if err != nil {
		return domain.CheckoutResponse{}, err
	}
	prices := make(map[string]decimal.Decimal, len(priced))
	for id, price := range priced {
		prices[id.String()] = price
	}

	// The item sum alone decides acceptance. A cart of stale ids with a
	// packaging charge on top must not open a payable order.
	breakdown := pricing.Quote(req.Cart, prices, pricing.ConfigFor(restaurant), req.PackagingRequired)
	if !breakdown.Subtotal.IsPositive() {
		return domain.CheckoutResponse{}, domain.ErrInvalidAmount
	}

	token, err := s.repo.NextToken(ctx, s.db, restaurant.ID)
	if err != nil {
		return domain.CheckoutResponse{}, err
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:                s.genID.Generate(),
		RestaurantID:      restaurant.ID,
		CustomerID:        strings.TrimSpace(req.CustomerID),
		TokenNumber:       token,
		Cart:              req.Cart,
		PackagingRequired: req.PackagingRequired,
		ChefNote:          strings.TrimSpace(req.ChefNote),
		Subtotal:          breakdown.Subtotal,
		TaxAmount:         breakdown.TaxAmount,
		TaxPercentage:     breakdown.TaxPercentage,
		TaxType:           breakdown.TaxType,
		PackagingCharge:   breakdown.PackagingCharge,
		TotalAmount:       breakdown.Total,
		PaymentStatus:     domain.PaymentCreated,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Insert(ctx, s.db, &order); err != nil {
		return domain.CheckoutResponse{}, err
	}

	amountMinor := pricing.MinorUnits(breakdown.Total)
	gatewayOrder, err := s.gateway.CreateOrder(ctx, paymentdomain.Credentials{
		KeyID:     restaurant.RazorpayKeyID,
		KeySecret: restaurant.RazorpayKeySecret,
	}, paymentdomain.CreateOrderRequest{
		AmountMinor: amountMinor,
		Currency:    currency,
		Receipt:     order.ID.String(),
	})
	if err != nil {
		s.log.Error("gateway order creation failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
		return domain.CheckoutResponse{}, err
	}

	if err := s.repo.SetGatewayOrderID(ctx, s.db, order.ID, gatewayOrder.ID); err != nil {
		return domain.CheckoutResponse{}, err
	}
	order.RazorpayOrderID = &gatewayOrder.ID

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("restaurant_id", restaurant.ID.String()),
		zap.Int64("token", token),
		zap.String("total", breakdown.Total.String()),
	)

	return domain.CheckoutResponse{
		Order:          order,
		GatewayOrderID: gatewayOrder.ID,
		GatewayKeyID:   restaurant.RazorpayKeyID,
		AmountMinor:    amountMinor,
		Currency:       currency,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.OrderView, error) {
	orderID, err := parseID(id)
	if err != nil {
		return domain.OrderView{}, err
	}

	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return domain.OrderView{}, err
	}
	if order == nil {
		return domain.OrderView{}, domain.ErrNotFound
	}

	view := domain.OrderView{Order: *order}
	if order.PaymentStatus == domain.PaymentPaid {
		items, err := s.repo.ListItems(ctx, s.db, order.ID)
		if err != nil {
			return domain.OrderView{}, err
		}
		view.Items = items
	}

	return view, nil
}

func (s *Service) ListBoard(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	id, err := parseID(restaurantID)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().Truncate(24 * time.Hour)
	items, err := s.repo.ListBoard(ctx, s.db, id, since)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orders = append(orders, *item)
	}

	return orders, nil
}

func (s *Service) AdvanceStatus(ctx context.Context, restaurantID, orderID string) (domain.Order, error) {
	rid, err := parseID(restaurantID)
	if err != nil {
		return domain.Order{}, err
	}

	oid, err := parseID(orderID)
	if err != nil {
		return domain.Order{}, err
	}

	order, err := s.repo.FindByID(ctx, s.db, oid)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil || order.RestaurantID != rid {
		return domain.Order{}, domain.ErrNotFound
	}

	if order.PaymentStatus != domain.PaymentPaid || order.Status == nil {
		return domain.Order{}, domain.ErrNotPaid
	}

	current := *order.Status
	next, ok := current.Next()
	if !ok {
		return domain.Order{}, domain.ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, s.db, order.ID, current, next)
	if err != nil {
		return domain.Order{}, err
	}
	if !updated {
		// Lost the race to another staff member's click.
		return domain.Order{}, domain.ErrInvalidTransition
	}

	order.Status = &next
	order.UpdatedAt = time.Now().UTC()

	s.hub.Publish(order.RestaurantID.String(), events.OrderEvent{
		Type:        events.TypeStatusChanged,
		OrderID:     order.ID.String(),
		TokenNumber: order.TokenNumber,
		Status:      string(next),
		At:          order.UpdatedAt.Format(time.RFC3339),
	})

	return *order, nil
}

// cartItemIDs validates the cart shape and returns the parseable item ids.
// An id the menu no longer knows is tolerated, a negative quantity is not.
func cartItemIDs(cart domain.Cart) ([]snowflake.ID, error) {
	if len(cart) == 0 {
		return nil, domain.ErrEmptyCart
	}

	ids := make([]snowflake.ID, 0, len(cart))
	for raw, qty := range cart {
		if qty <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		id, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
