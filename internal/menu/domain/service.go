package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	RestaurantID string
	Name         string
	Price        decimal.Decimal
	Available    bool
	Addon        bool
	ImageURL     string
}

// PatchItemRequest carries a partial update; nil fields are left untouched.
type PatchItemRequest struct {
	RestaurantID string
	ID           string
	Name         *string
	Price        *decimal.Decimal
	Available    *bool
	Addon        *bool
	ImageURL     *string
}

type ListItemsRequest struct {
	RestaurantID  string
	AvailableOnly bool
}

type Service interface {
	Create(context.Context, CreateItemRequest) (MenuItem, error)
	Patch(context.Context, PatchItemRequest) (MenuItem, error)
	Delete(ctx context.Context, restaurantID, id string) error
	List(context.Context, ListItemsRequest) ([]MenuItem, error)

	// PricesFor resolves the current unit price for each requested item id
	// scoped to one restaurant. Unknown ids are simply absent from the result.
	PricesFor(ctx context.Context, restaurantID snowflake.ID, ids []snowflake.ID) (map[snowflake.ID]decimal.Decimal, error)
}

var (
	ErrInvalidRestaurant = errors.New("invalid_restaurant")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("not_found")
)
