package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *MenuItem) error
	FindByID(ctx context.Context, db *gorm.DB, restaurantID, id snowflake.ID) (*MenuItem, error)
	ListByRestaurant(ctx context.Context, db *gorm.DB, restaurantID snowflake.ID, availableOnly bool) ([]*MenuItem, error)
	FindByIDs(ctx context.Context, db *gorm.DB, restaurantID snowflake.ID, ids []snowflake.ID) ([]*MenuItem, error)
	Update(ctx context.Context, db *gorm.DB, item *MenuItem) error
	Delete(ctx context.Context, db *gorm.DB, restaurantID, id snowflake.ID) error
}
