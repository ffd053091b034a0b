package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	RestaurantID snowflake.ID    `gorm:"not null;index" json:"restaurant_id"`
	Name         string          `gorm:"not null" json:"name"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Available    bool            `json:"available"`
	Addon        bool            `json:"addon"`
	ImageURL     string          `json:"image_url,omitempty"`
	CreatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
