package repository

import (
	"context"

	"github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, restaurant *domain.Restaurant) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO restaurants (
			id, name, slug, address, gstin, razorpay_key_id, razorpay_key_secret,
			tax_enabled, tax_type, tax_percentage,
			packaging_enabled, packaging_charge,
			active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		restaurant.ID,
		restaurant.Name,
		restaurant.Slug,
		restaurant.Address,
		restaurant.GSTIN,
		restaurant.RazorpayKeyID,
		restaurant.RazorpayKeySecret,
		restaurant.TaxEnabled,
		restaurant.TaxType,
		restaurant.TaxPercentage,
		restaurant.PackagingEnabled,
		restaurant.PackagingCharge,
		restaurant.Active,
		restaurant.CreatedAt,
		restaurant.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM restaurants WHERE id = ?`,
		id,
	).Scan(&restaurant).Error
	if err != nil {
		return nil, err
	}
	if restaurant.ID == 0 {
		return nil, nil
	}
	return &restaurant, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM restaurants WHERE slug = ?`,
		slug,
	).Scan(&restaurant).Error
	if err != nil {
		return nil, err
	}
	if restaurant.ID == 0 {
		return nil, nil
	}
	return &restaurant, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Restaurant, error) {
	var restaurants []*domain.Restaurant
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM restaurants ORDER BY created_at DESC, id DESC`,
	).Scan(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, restaurant *domain.Restaurant) error {
	return db.WithContext(ctx).Exec(
		`UPDATE restaurants SET
			name = ?, address = ?, gstin = ?, razorpay_key_id = ?, razorpay_key_secret = ?,
			tax_enabled = ?, tax_type = ?, tax_percentage = ?,
			packaging_enabled = ?, packaging_charge = ?,
			active = ?, updated_at = ?
		 WHERE id = ?`,
		restaurant.Name,
		restaurant.Address,
		restaurant.GSTIN,
		restaurant.RazorpayKeyID,
		restaurant.RazorpayKeySecret,
		restaurant.TaxEnabled,
		restaurant.TaxType,
		restaurant.TaxPercentage,
		restaurant.PackagingEnabled,
		restaurant.PackagingCharge,
		restaurant.Active,
		restaurant.UpdatedAt,
		restaurant.ID,
	).Error
}
