package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	restaurantdomain "github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PaymentStatus tracks the money side of an order, independent of the
// kitchen workflow.
type PaymentStatus string

const (
	PaymentCreated PaymentStatus = "CREATED"
	PaymentPaid    PaymentStatus = "PAID"
)

// Status is the kitchen workflow state. It stays unset until payment is
// confirmed; only paid orders appear on the kitchen board.
type Status string

const (
	StatusCreated  Status = "CREATED"
	StatusAccepted Status = "ACCEPTED"
	StatusReady    Status = "READY"
	StatusPickedUp Status = "PICKED_UP"
)

var statusNext = map[Status]Status{
	StatusCreated:  StatusAccepted,
	StatusAccepted: StatusReady,
	StatusReady:    StatusPickedUp,
}

// Next returns the only legal successor state, or false for terminal and
// unknown states.
func (s Status) Next() (Status, bool) {
	next, ok := statusNext[s]
	return next, ok
}

// Cart maps a menu item id, kept as its decimal string form, to the ordered
// quantity. It is persisted as a JSON object.
type Cart map[string]int

func (c Cart) Value() (driver.Value, error) {
	if c == nil {
		c = Cart{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (c *Cart) Scan(value interface{}) error {
	if value == nil {
		*c = Cart{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported cart column type %T", value)
	}
	if len(raw) == 0 {
		*c = Cart{}
		return nil
	}
	return json.Unmarshal(raw, c)
}

type Order struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	RestaurantID snowflake.ID `gorm:"not null;index" json:"restaurant_id"`
	CustomerID   string       `json:"customer_id,omitempty"`
	TokenNumber  int64        `json:"token_number"`

	Cart              Cart   `gorm:"type:jsonb" json:"cart"`
	PackagingRequired bool   `json:"packaging_required"`
	ChefNote          string `json:"chef_note,omitempty"`

	Subtotal        decimal.Decimal           `gorm:"type:numeric(12,2)" json:"subtotal"`
	TaxAmount       decimal.Decimal           `gorm:"type:numeric(12,2)" json:"tax_amount"`
	TaxPercentage   decimal.Decimal           `gorm:"type:numeric(5,2)" json:"tax_percentage"`
	TaxType         restaurantdomain.TaxType  `json:"tax_type,omitempty"`
	PackagingCharge decimal.Decimal           `gorm:"type:numeric(12,2)" json:"packaging_charge"`
	TotalAmount     decimal.Decimal           `gorm:"type:numeric(12,2)" json:"total_amount"`

	PaymentStatus PaymentStatus `gorm:"not null;default:CREATED" json:"payment_status"`
	Status        *Status       `json:"status"`

	RazorpayOrderID   *string `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID *string `json:"razorpay_payment_id,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// OrderItem is the materialized line of a paid order. Rows are written once
// payment is confirmed, pricing each line at the menu price in effect then.
type OrderItem struct {
	ID         snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrderID    snowflake.ID    `gorm:"not null;index" json:"order_id"`
	MenuItemID snowflake.ID    `gorm:"not null" json:"menu_item_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	CreatedAt  time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// OrderToken is the per-restaurant daily token counter row.
type OrderToken struct {
	RestaurantID snowflake.ID `gorm:"primaryKey"`
	LastToken    int64        `gorm:"not null;default:0"`
}

var (
	ErrInvalidRestaurant = errors.New("invalid_restaurant")
	ErrEmptyCart         = errors.New("empty_cart")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("not_found")
	ErrNotPaid           = errors.New("order_not_paid")
	ErrInvalidTransition = errors.New("invalid_status_transition")
)
