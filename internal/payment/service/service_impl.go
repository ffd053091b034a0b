package service

import (
	"context"
	"time"

	menudomain "github.com/abhayvishwakarma1111/bitezyqr/internal/menu/domain"
	orderdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/order/domain"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/order/events"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/order/pricing"
	"github.com/abhayvishwakarma1111/bitezyqr/internal/payment/domain"
	"github.com/abhayvishwakarma1111/bitezyqr/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Orders orderdomain.Repository
	Menu   menudomain.Service
	Hub    *events.Hub
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	repo   domain.Repository
	orders orderdomain.Repository
	menu   menudomain.Service
	hub    *events.Hub
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("payment.service"),
		genID:  p.GenID,
		repo:   p.Repo,
		orders: p.Orders,
		menu:   p.Menu,
		hub:    p.Hub,
	}
}

func (s *Service) ProcessCapture(ctx context.Context, event *domain.CaptureEvent) error {
	if event == nil {
		return domain.ErrInvalidEvent
	}
	if event.Type != domain.EventTypePaymentCaptured {
		return domain.ErrEventIgnored
	}

	record, err := s.recordEvent(ctx, event)
	if err != nil {
		return err
	}

	order, err := s.orders.FindByGatewayOrderID(ctx, s.db, event.GatewayOrderID)
	if err != nil {
		return err
	}
	if order == nil {
		// The order row may not be visible yet; leaving the event
		// unprocessed lets the gateway retry the delivery.
		return domain.ErrOrderNotFound
	}

	if order.PaymentStatus == orderdomain.PaymentPaid {
		s.markProcessed(ctx, record)
		return domain.ErrEventAlreadyProcessed
	}

	if pricing.MinorUnits(order.TotalAmount) != event.Amount {
		s.log.Warn("captured amount does not match order total",
			zap.String("order_id", order.ID.String()),
			zap.Int64("captured", event.Amount),
			zap.Int64("expected", pricing.MinorUnits(order.TotalAmount)),
		)
		return domain.ErrAmountMismatch
	}

	confirmed := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updated, err := s.orders.MarkPaid(ctx, tx, order.ID, event.ProviderPaymentID)
		if err != nil {
			return err
		}
		if !updated {
			return nil
		}
		confirmed = true
		return s.materializeItems(ctx, tx, order)
	})
	if err != nil {
		return err
	}

	s.markProcessed(ctx, record)

	if !confirmed {
		return domain.ErrEventAlreadyProcessed
	}

	s.log.Info("payment captured",
		zap.String("order_id", order.ID.String()),
		zap.String("payment_id", event.ProviderPaymentID),
	)

	s.hub.Publish(order.RestaurantID.String(), events.OrderEvent{
		Type:        events.TypeOrderPaid,
		OrderID:     order.ID.String(),
		TokenNumber: order.TokenNumber,
		Status:      string(orderdomain.StatusCreated),
		At:          time.Now().UTC().Format(time.RFC3339),
	})

	return nil
}

// recordEvent persists the delivery exactly once. A second delivery of the
// same event lands on the unique index and is routed to the stored record.
func (s *Service) recordEvent(ctx context.Context, event *domain.CaptureEvent) (*domain.EventRecord, error) {
	record := &domain.EventRecord{
		ID:              s.genID.Generate(),
		Provider:        event.Provider,
		ProviderEventID: event.ProviderEventID,
		EventType:       event.Type,
		Payload:         datatypes.JSON(event.RawPayload),
		ReceivedAt:      time.Now().UTC(),
	}

	err := s.repo.InsertEvent(ctx, s.db, record)
	if err == nil {
		return record, nil
	}
	if !db.IsDuplicateKeyErr(err) {
		return nil, err
	}

	existing, findErr := s.repo.FindEvent(ctx, s.db, event.Provider, event.ProviderEventID)
	if findErr != nil {
		return nil, findErr
	}
	if existing == nil {
		return nil, err
	}
	if existing.ProcessedAt != nil {
		return nil, domain.ErrEventAlreadyProcessed
	}
	return existing, nil
}

// materializeItems snapshots the cart into order_items rows, pricing each
// line at the current menu price. Items removed from the menu since
// checkout are recorded at zero rather than failing the confirmation.
func (s *Service) materializeItems(ctx context.Context, tx *gorm.DB, order *orderdomain.Order) error {
	ids := make([]snowflake.ID, 0, len(order.Cart))
	for raw, qty := range order.Cart {
		if qty <= 0 {
			continue
		}
		id, err := snowflake.ParseString(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	prices, err := s.menu.PricesFor(ctx, order.RestaurantID, ids)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	items := make([]orderdomain.OrderItem, 0, len(ids))
	for _, id := range ids {
		price, ok := prices[id]
		if !ok {
			price = decimal.Zero
		}
		items = append(items, orderdomain.OrderItem{
			ID:         s.genID.Generate(),
			OrderID:    order.ID,
			MenuItemID: id,
			Quantity:   order.Cart[id.String()],
			Price:      price,
			CreatedAt:  now,
		})
	}

	return s.orders.InsertItems(ctx, tx, items)
}

func (s *Service) markProcessed(ctx context.Context, record *domain.EventRecord) {
	if record == nil || record.ProcessedAt != nil {
		return
	}
	if err := s.repo.MarkProcessed(ctx, s.db, record.ID, time.Now().UTC()); err != nil {
		s.log.Warn("mark event processed failed",
			zap.String("event_id", record.ID.String()),
			zap.Error(err),
		)
	}
}
