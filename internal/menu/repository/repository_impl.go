package repository

import (
	"context"

	"github.com/abhayvishwakarma1111/bitezyqr/internal/menu/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.MenuItem) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO menu_items (id, restaurant_id, name, price, available, addon, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.RestaurantID,
		item.Name,
		item.Price,
		item.Available,
		item.Addon,
		item.ImageURL,
		item.CreatedAt,
		item.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, restaurantID, id snowflake.ID) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM menu_items WHERE restaurant_id = ? AND id = ?`,
		restaurantID,
		id,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) ListByRestaurant(ctx context.Context, db *gorm.DB, restaurantID snowflake.ID, availableOnly bool) ([]*domain.MenuItem, error) {
	var items []*domain.MenuItem
	stmt := db.WithContext(ctx).
		Model(&domain.MenuItem{}).
		Where("restaurant_id = ?", restaurantID)
	if availableOnly {
		stmt = stmt.Where("available = ?", true)
	}
	err := stmt.
		Order("addon asc, name asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, restaurantID snowflake.ID, ids []snowflake.ID) ([]*domain.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []*domain.MenuItem
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM menu_items WHERE restaurant_id = ? AND id IN ?`,
		restaurantID,
		ids,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, item *domain.MenuItem) error {
	return db.WithContext(ctx).Exec(
		`UPDATE menu_items SET name = ?, price = ?, available = ?, addon = ?, image_url = ?, updated_at = ?
		 WHERE restaurant_id = ? AND id = ?`,
		item.Name,
		item.Price,
		item.Available,
		item.Addon,
		item.ImageURL,
		item.UpdatedAt,
		item.RestaurantID,
		item.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, restaurantID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM menu_items WHERE restaurant_id = ? AND id = ?`,
		restaurantID,
		id,
	).Error
}
