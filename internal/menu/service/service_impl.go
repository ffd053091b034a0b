package service

import (
	"context"
	"strings"
	"time"

	"github.com/abhayvishwakarma1111/bitezyqr/internal/menu/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("menu.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateItemRequest) (domain.MenuItem, error) {
	restaurantID, err := parseID(req.RestaurantID, domain.ErrInvalidRestaurant)
	if err != nil {
		return domain.MenuItem{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.MenuItem{}, domain.ErrInvalidName
	}

	if req.Price.IsNegative() {
		return domain.MenuItem{}, domain.ErrInvalidPrice
	}

	now := time.Now().UTC()
	item := domain.MenuItem{
		ID:           s.genID.Generate(),
		RestaurantID: restaurantID,
		Name:         name,
		Price:        req.Price,
		Available:    req.Available,
		Addon:        req.Addon,
		ImageURL:     strings.TrimSpace(req.ImageURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.MenuItem{}, err
	}

	return item, nil
}

func (s *Service) Patch(ctx context.Context, req domain.PatchItemRequest) (domain.MenuItem, error) {
	restaurantID, err := parseID(req.RestaurantID, domain.ErrInvalidRestaurant)
	if err != nil {
		return domain.MenuItem{}, err
	}

	id, err := parseID(req.ID, domain.ErrInvalidID)
	if err != nil {
		return domain.MenuItem{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, restaurantID, id)
	if err != nil {
		return domain.MenuItem{}, err
	}
	if item == nil {
		return domain.MenuItem{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.MenuItem{}, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return domain.MenuItem{}, domain.ErrInvalidPrice
		}
		item.Price = *req.Price
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if req.Addon != nil {
		item.Addon = *req.Addon
	}
	if req.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.MenuItem{}, err
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, restaurantID, id string) error {
	rid, err := parseID(restaurantID, domain.ErrInvalidRestaurant)
	if err != nil {
		return err
	}

	iid, err := parseID(id, domain.ErrInvalidID)
	if err != nil {
		return err
	}

	item, err := s.repo.FindByID(ctx, s.db, rid, iid)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, rid, iid)
}

func (s *Service) List(ctx context.Context, req domain.ListItemsRequest) ([]domain.MenuItem, error) {
	restaurantID, err := parseID(req.RestaurantID, domain.ErrInvalidRestaurant)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByRestaurant(ctx, s.db, restaurantID, req.AvailableOnly)
	if err != nil {
		return nil, err
	}

	result := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		result = append(result, *item)
	}

	return result, nil
}

func (s *Service) PricesFor(ctx context.Context, restaurantID snowflake.ID, ids []snowflake.ID) (map[snowflake.ID]decimal.Decimal, error) {
	items, err := s.repo.FindByIDs(ctx, s.db, restaurantID, ids)
	if err != nil {
		return nil, err
	}

	prices := make(map[snowflake.ID]decimal.Decimal, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		prices[item.ID] = item.Price
	}

	return prices, nil
}

func parseID(value string, invalid error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, invalid
	}
	return id, nil
}
