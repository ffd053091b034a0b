package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	menudomain "github.com/abhayvishwakarma1111/bitezyqr/internal/menu/domain"
	menurepo "github.com/abhayvishwakarma1111/bitezyqr/internal/menu/repository"
	menuservice "github.com/abhayvishwakarma1111/bitezyqr/internal/menu/service"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/order/domain"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/order/events"
	orderrepo "github.com/abhayvishwakarma1111/bitezyqr/internal/order/repository"
	paymentdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/payment/domain"
	restaurantdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant/domain"
	restaurantrepo "github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant/repository"
	restaurantservice "github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant/service"
)

type fakeGateway struct {
	nextID string
	calls  []paymentdomain.CreateOrderRequest
	err    error
}

func (g *fakeGateway) CreateOrder(ctx context.Context, creds paymentdomain.Credentials, req paymentdomain.CreateOrderRequest) (paymentdomain.GatewayOrder, error) {
	g.calls = append(g.calls, req)
	if g.err != nil {
		return paymentdomain.GatewayOrder{}, g.err
	}
	id := g.nextID
	if id == "" {
		id = fmt.Sprintf("order_fake_%d", len(g.calls))
	}
	return paymentdomain.GatewayOrder{
		ID:          id,
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		Status:      "created",
	}, nil
}

type fixture struct {
	db          *gorm.DB
	restaurants restaurantdomain.Service
	menu        menudomain.Service
	orders      domain.Service
	repo        domain.Repository
	gateway     *fakeGateway
	hub         *events.Hub
}

func newFixture(t *testing.T, name string) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := db.AutoMigrate(
		&restaurantdomain.Restaurant{},
		&menudomain.MenuItem{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.OrderToken{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	logger := zap.NewNop()

	restaurants := restaurantservice.New(restaurantservice.Params{
		DB:    db,
		Log:   logger,
		GenID: node,
		Repo:  restaurantrepo.Provide(),
	})
	menu := menuservice.New(menuservice.Params{
		DB:    db,
		Log:   logger,
		GenID: node,
		Repo:  menurepo.Provide(),
	})

	gateway := &fakeGateway{}
	hub := events.NewHub()
	repo := orderrepo.Provide()
	orders := New(Params{
		DB:          db,
		Log:         logger,
		GenID:       node,
		Repo:        repo,
		Restaurants: restaurants,
		Menu:        menu,
		Gateway:     gateway,
		Hub:         hub,
	})

	return &fixture{
		db:          db,
		restaurants: restaurants,
		menu:        menu,
		orders:      orders,
		repo:        repo,
		gateway:     gateway,
		hub:         hub,
	}
}

func (f *fixture) seedRestaurant(t *testing.T, slug string) restaurantdomain.Restaurant {
	t.Helper()
	restaurant, err := f.restaurants.Provision(context.Background(), restaurantdomain.ProvisionRequest{
		Name:              "Chai Point",
		Slug:              slug,
		RazorpayKeyID:     "rzp_test_key",
		RazorpayKeySecret: "secret",
		TaxEnabled:        true,
		TaxType:           restaurantdomain.TaxExclusive,
		TaxPercentage:     decimal.NewFromInt(5),
		PackagingEnabled:  true,
		PackagingCharge:   decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("provision restaurant: %v", err)
	}
	return restaurant
}

func (f *fixture) seedItem(t *testing.T, restaurant restaurantdomain.Restaurant, name, price string) menudomain.MenuItem {
	t.Helper()
	p, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("parse price: %v", err)
	}
	item, err := f.menu.Create(context.Background(), menudomain.CreateItemRequest{
		RestaurantID: restaurant.ID.String(),
		Name:         name,
		Price:        p,
		Available:    true,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

func TestCheckoutPricesOnServer(t *testing.T) {
	f := newFixture(t, "checkout_prices")
	restaurant := f.seedRestaurant(t, "chai-point")
	dosa := f.seedItem(t, restaurant, "Masala Dosa", "120.00")
	chai := f.seedItem(t, restaurant, "Cutting Chai", "60.00")

	resp, err := f.orders.Checkout(context.Background(), domain.CheckoutRequest{
		RestaurantID: restaurant.ID.String(),
		Cart: domain.Cart{
			dosa.ID.String(): 2,
			chai.ID.String(): 1,
		},
		PackagingRequired: true,
		ChefNote:          "less spicy",
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	order := resp.Order
	if !order.Subtotal.Equal(decimal.RequireFromString("300.00")) {
		t.Fatalf("subtotal = %s, want 300.00", order.Subtotal)
	}
	if !order.TaxAmount.Equal(decimal.RequireFromString("15.00")) {
		t.Fatalf("tax = %s, want 15.00", order.TaxAmount)
	}
	if !order.PackagingCharge.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("packaging = %s, want 10.00", order.PackagingCharge)
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("325.00")) {
		t.Fatalf("total = %s, want 325.00", order.TotalAmount)
	}
	if order.PaymentStatus != domain.PaymentCreated {
		t.Fatalf("payment status = %s, want CREATED", order.PaymentStatus)
	}
	if order.Status != nil {
		t.Fatalf("kitchen status should be unset before payment, got %v", *order.Status)
	}
	if order.TokenNumber != 1 {
		t.Fatalf("token = %d, want 1", order.TokenNumber)
	}
	if resp.AmountMinor != 32500 {
		t.Fatalf("amount minor = %d, want 32500", resp.AmountMinor)
	}
	if resp.GatewayKeyID != "rzp_test_key" {
		t.Fatalf("gateway key = %s, want rzp_test_key", resp.GatewayKeyID)
	}

	if len(f.gateway.calls) != 1 {
		t.Fatalf("gateway calls = %d, want 1", len(f.gateway.calls))
	}
	if f.gateway.calls[0].Receipt != order.ID.String() {
		t.Fatalf("receipt = %s, want internal order id", f.gateway.calls[0].Receipt)
	}

	stored, err := f.repo.FindByGatewayOrderID(context.Background(), f.db, resp.GatewayOrderID)
	if err != nil {
		t.Fatalf("find by gateway id: %v", err)
	}
	if stored == nil || stored.ID != order.ID {
		t.Fatalf("order not reachable by gateway order id")
	}
}

func TestCheckoutTokensAreSequential(t *testing.T) {
	f := newFixture(t, "checkout_tokens")
	restaurant := f.seedRestaurant(t, "token-house")
	item := f.seedItem(t, restaurant, "Vada Pav", "40.00")

	seen := map[int64]bool{}
	for i := 1; i <= 5; i++ {
		resp, err := f.orders.Checkout(context.Background(), domain.CheckoutRequest{
			RestaurantID: restaurant.ID.String(),
			Cart:         domain.Cart{item.ID.String(): 1},
		})
		if err != nil {
			t.Fatalf("checkout %d: %v", i, err)
		}
		if resp.Order.TokenNumber != int64(i) {
			t.Fatalf("token = %d, want %d", resp.Order.TokenNumber, i)
		}
		if seen[resp.Order.TokenNumber] {
			t.Fatalf("duplicate token %d", resp.Order.TokenNumber)
		}
		seen[resp.Order.TokenNumber] = true
	}
}

func TestTokenAllocationIsRaceFree(t *testing.T) {
	f := newFixture(t, "token_race")
	restaurant := f.seedRestaurant(t, "token-race")

	// A single pooled connection keeps sqlite happy under parallel writers;
	// uniqueness still rests entirely on the upsert-returning statement.
	sqlDB, err := f.db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	const workers = 20
	tokens := make(chan int64, workers)
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			token, err := f.repo.NextToken(context.Background(), f.db, restaurant.ID)
			if err != nil {
				errs <- err
				return
			}
			tokens <- token
		}()
	}
	wg.Wait()
	close(tokens)
	close(errs)

	for err := range errs {
		t.Fatalf("next token: %v", err)
	}

	seen := map[int64]bool{}
	for token := range tokens {
		if seen[token] {
			t.Fatalf("duplicate token %d", token)
		}
		seen[token] = true
	}
	for i := int64(1); i <= workers; i++ {
		if !seen[i] {
			t.Fatalf("token %d was skipped", i)
		}
	}
}

func TestCheckoutRejectsBadCarts(t *testing.T) {
	f := newFixture(t, "checkout_bad_carts")
	restaurant := f.seedRestaurant(t, "strict-kitchen")
	item := f.seedItem(t, restaurant, "Thali", "150.00")

	_, err := f.orders.Checkout(context.Background(), domain.CheckoutRequest{
		RestaurantID: restaurant.ID.String(),
		Cart:         domain.Cart{},
	})
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}

	_, err = f.orders.Checkout(context.Background(), domain.CheckoutRequest{
		RestaurantID: restaurant.ID.String(),
		Cart:         domain.Cart{item.ID.String(): -1},
	})
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity error, got %v", err)
	}

	_, err = f.orders.Checkout(context.Background(), domain.CheckoutRequest{
		RestaurantID: "no-such-restaurant",
		Cart:         domain.Cart{item.ID.String(): 1},
	})
	if !errors.Is(err, domain.ErrInvalidRestaurant) {
		t.Fatalf("expected invalid restaurant error, got %v", err)
	}

	_, err = f.orders.Checkout(context.Background(), domain.CheckoutRequest{
		RestaurantID: item.ID.String(),
		Cart:         domain.Cart{item.ID.String(): 1},
	})
	if !errors.Is(err, restaurantdomain.ErrNotFound) {
		t.Fatalf("expected not found for unknown restaurant id, got %v", err)
	}
}

func TestCheckoutRejectsCartsWithoutPriceableItems(t *testing.T) {
	f := newFixture(t, "checkout_no_priceable")
	restaurant := f.seedRestaurant(t, "packaging-trap")
	item := f.seedItem(t, restaurant, "Kachori", "30.00")

	// The only cart entry is a valid-looking id the menu does not know, so
	// the item sum is zero even though the packaging charge would make the
	// total positive.
	_, err := f.orders.Checkout(context.Background(), domain.CheckoutRequest{
		RestaurantID:      restaurant.ID.String(),
		Cart:              domain.Cart{restaurant.ID.String(): 1},
		PackagingRequired: true,
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount error, got %v", err)
	}
	if len(f.gateway.calls) != 0 {
		t.Fatalf("gateway calls = %d, want 0", len(f.gateway.calls))
	}

	// The rejected checkout must not have burned a token.
	resp, err := f.orders.Checkout(context.Background(), domain.CheckoutRequest{
		RestaurantID: restaurant.ID.String(),
		Cart:         domain.Cart{item.ID.String(): 1},
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if resp.Order.TokenNumber != 1 {
		t.Fatalf("token = %d, want 1", resp.Order.TokenNumber)
	}
}

func TestCheckoutFailsWhenGatewayDown(t *testing.T) {
	f := newFixture(t, "checkout_gateway_down")
	restaurant := f.seedRestaurant(t, "offline-pay")
	item := f.seedItem(t, restaurant, "Samosa", "25.00")

	f.gateway.err = paymentdomain.ErrGatewayUnavailable
	_, err := f.orders.Checkout(context.Background(), domain.CheckoutRequest{
		RestaurantID: restaurant.ID.String(),
		Cart:         domain.Cart{item.ID.String(): 2},
	})
	if !errors.Is(err, paymentdomain.ErrGatewayUnavailable) {
		t.Fatalf("expected gateway error, got %v", err)
	}
}

func TestAdvanceStatusWalksTheBoard(t *testing.T) {
	f := newFixture(t, "advance_status")
	restaurant := f.seedRestaurant(t, "board-walk")
	item := f.seedItem(t, restaurant, "Pav Bhaji", "90.00")

	resp, err := f.orders.Checkout(context.Background(), domain.CheckoutRequest{
		RestaurantID: restaurant.ID.String(),
		Cart:         domain.Cart{item.ID.String(): 1},
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	_, err = f.orders.AdvanceStatus(context.Background(), restaurant.ID.String(), resp.Order.ID.String())
	if !errors.Is(err, domain.ErrNotPaid) {
		t.Fatalf("expected not paid error before capture, got %v", err)
	}

	if _, err := f.repo.MarkPaid(context.Background(), f.db, resp.Order.ID, "pay_test_1"); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	want := []domain.Status{domain.StatusAccepted, domain.StatusReady, domain.StatusPickedUp}
	for _, expected := range want {
		order, err := f.orders.AdvanceStatus(context.Background(), restaurant.ID.String(), resp.Order.ID.String())
		if err != nil {
			t.Fatalf("advance to %s: %v", expected, err)
		}
		if order.Status == nil || *order.Status != expected {
			t.Fatalf("status = %v, want %s", order.Status, expected)
		}
	}

	_, err = f.orders.AdvanceStatus(context.Background(), restaurant.ID.String(), resp.Order.ID.String())
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition after PICKED_UP, got %v", err)
	}
}

func TestListBoardShowsOnlyPaidOrders(t *testing.T) {
	f := newFixture(t, "list_board")
	restaurant := f.seedRestaurant(t, "paid-only")
	item := f.seedItem(t, restaurant, "Idli", "50.00")

	paid, err := f.orders.Checkout(context.Background(), domain.CheckoutRequest{
		RestaurantID: restaurant.ID.String(),
		Cart:         domain.Cart{item.ID.String(): 1},
	})
	if err != nil {
		t.Fatalf("checkout paid: %v", err)
	}
	if _, err := f.repo.MarkPaid(context.Background(), f.db, paid.Order.ID, "pay_test_2"); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	if _, err := f.orders.Checkout(context.Background(), domain.CheckoutRequest{
		RestaurantID: restaurant.ID.String(),
		Cart:         domain.Cart{item.ID.String(): 2},
	}); err != nil {
		t.Fatalf("checkout unpaid: %v", err)
	}

	board, err := f.orders.ListBoard(context.Background(), restaurant.ID.String())
	if err != nil {
		t.Fatalf("list board: %v", err)
	}
	if len(board) != 1 {
		t.Fatalf("board size = %d, want 1", len(board))
	}
	if board[0].ID != paid.Order.ID {
		t.Fatalf("board shows wrong order")
	}
}
