package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	SetGatewayOrderID(ctx context.Context, db *gorm.DB, id snowflake.ID, gatewayOrderID string) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	FindByGatewayOrderID(ctx context.Context, db *gorm.DB, gatewayOrderID string) (*Order, error)

	// NextToken atomically increments and returns the restaurant's token
	// counter, creating the counter row on first use.
	NextToken(ctx context.Context, db *gorm.DB, restaurantID snowflake.ID) (int64, error)

	// MarkPaid flips an order to PAID and seeds the kitchen status. It
	// reports false when the order was already paid, making confirmation
	// safe to replay.
	MarkPaid(ctx context.Context, db *gorm.DB, id snowflake.ID, paymentID string) (bool, error)

	InsertItems(ctx context.Context, db *gorm.DB, items []OrderItem) error
	ListItems(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]OrderItem, error)

	ListBoard(ctx context.Context, db *gorm.DB, restaurantID snowflake.ID, since time.Time) ([]*Order, error)

	// UpdateStatus applies a kitchen transition guarded by the expected
	// current state and reports whether a row changed.
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to Status) (bool, error)
}
