package repository

import (
	"context"
	"time"

	"github.com/abhayvishwakarma1111/bitezyqr/internal/order/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO orders (
			id, restaurant_id, customer_id, token_number, cart,
			packaging_required, chef_note,
			subtotal, tax_amount, tax_percentage, tax_type, packaging_charge, total_amount,
			payment_status, status, razorpay_order_id, razorpay_payment_id,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.RestaurantID,
		order.CustomerID,
		order.TokenNumber,
		order.Cart,
		order.PackagingRequired,
		order.ChefNote,
		order.Subtotal,
		order.TaxAmount,
		order.TaxPercentage,
		order.TaxType,
		order.PackagingCharge,
		order.TotalAmount,
		order.PaymentStatus,
		order.Status,
		order.RazorpayOrderID,
		order.RazorpayPaymentID,
		order.CreatedAt,
		order.UpdatedAt,
	).Error
}

func (r *repo) SetGatewayOrderID(ctx context.Context, db *gorm.DB, id snowflake.ID, gatewayOrderID string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE orders SET razorpay_order_id = ?, updated_at = ? WHERE id = ?`,
		gatewayOrderID,
		time.Now().UTC(),
		id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM orders WHERE id = ?`,
		id,
	).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}

func (r *repo) FindByGatewayOrderID(ctx context.Context, db *gorm.DB, gatewayOrderID string) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM orders WHERE razorpay_order_id = ?`,
		gatewayOrderID,
	).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}

func (r *repo) NextToken(ctx context.Context, db *gorm.DB, restaurantID snowflake.ID) (int64, error) {
	var token int64
	err := db.WithContext(ctx).Raw(
		`INSERT INTO order_tokens (restaurant_id, last_token)
		 VALUES (?, 1)
		 ON CONFLICT (restaurant_id) DO UPDATE SET last_token = order_tokens.last_token + 1
		 RETURNING last_token`,
		restaurantID,
	).Scan(&token).Error
	if err != nil {
		return 0, err
	}
	return token, nil
}

func (r *repo) MarkPaid(ctx context.Context, db *gorm.DB, id snowflake.ID, paymentID string) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE orders
		 SET payment_status = ?, status = ?, razorpay_payment_id = ?, updated_at = ?
		 WHERE id = ? AND payment_status <> ?`,
		domain.PaymentPaid,
		domain.StatusCreated,
		paymentID,
		time.Now().UTC(),
		id,
		domain.PaymentPaid,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) InsertItems(ctx context.Context, db *gorm.DB, items []domain.OrderItem) error {
	for i := range items {
		err := db.WithContext(ctx).Exec(
			`INSERT INTO order_items (id, order_id, menu_item_id, quantity, price, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			items[i].ID,
			items[i].OrderID,
			items[i].MenuItemID,
			items[i].Quantity,
			items[i].Price,
			items[i].CreatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) ListItems(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM order_items WHERE order_id = ? ORDER BY id ASC`,
		orderID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListBoard(ctx context.Context, db *gorm.DB, restaurantID snowflake.ID, since time.Time) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM orders
		 WHERE restaurant_id = ? AND payment_status = ? AND created_at >= ?
		 ORDER BY created_at ASC, id ASC`,
		restaurantID,
		domain.PaymentPaid,
		since,
	).Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to domain.Status) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		to,
		time.Now().UTC(),
		id,
		from,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
