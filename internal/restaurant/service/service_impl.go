package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant/domain"
	"github.com/abhayvishwakarma1111/bitezyqr/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

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
		log:   p.Log.Named("restaurant.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Provision(ctx context.Context, req domain.ProvisionRequest) (domain.Restaurant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Restaurant{}, domain.ErrInvalidName
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if slug == "" || !slugPattern.MatchString(slug) {
		return domain.Restaurant{}, domain.ErrInvalidSlug
	}

	taxType, taxPct, err := normalizeTax(req.TaxEnabled, req.TaxType, req.TaxPercentage)
	if err != nil {
		return domain.Restaurant{}, err
	}

	packagingCharge, err := normalizePackaging(req.PackagingEnabled, req.PackagingCharge)
	if err != nil {
		return domain.Restaurant{}, err
	}

	now := time.Now().UTC()
	restaurant := domain.Restaurant{
		ID:                s.genID.Generate(),
		Name:              name,
		Slug:              slug,
		Address:           strings.TrimSpace(req.Address),
		GSTIN:             strings.ToUpper(strings.TrimSpace(req.GSTIN)),
		RazorpayKeyID:     strings.TrimSpace(req.RazorpayKeyID),
		RazorpayKeySecret: strings.TrimSpace(req.RazorpayKeySecret),
		TaxEnabled:        req.TaxEnabled,
		TaxType:           taxType,
		TaxPercentage:     taxPct,
		PackagingEnabled:  req.PackagingEnabled,
		PackagingCharge:   packagingCharge,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Insert(ctx, s.db, &restaurant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Restaurant{}, domain.ErrSlugTaken
		}
		return domain.Restaurant{}, err
	}

	s.log.Info("restaurant provisioned",
		zap.String("restaurant_id", restaurant.ID.String()),
		zap.String("slug", restaurant.Slug),
	)

	return restaurant, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (domain.Restaurant, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return domain.Restaurant{}, domain.ErrInvalidSlug
	}

	item, err := s.repo.FindBySlug(ctx, s.db, slug)
	if err != nil {
		return domain.Restaurant{}, err
	}
	if item == nil || !item.Active {
		return domain.Restaurant{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Restaurant, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Restaurant{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Restaurant{}, err
	}
	if item == nil {
		return domain.Restaurant{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Restaurant, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	restaurants := make([]domain.Restaurant, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		restaurants = append(restaurants, *item)
	}

	return restaurants, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Restaurant, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Restaurant{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Restaurant{}, err
	}
	if item == nil {
		return domain.Restaurant{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Restaurant{}, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Address != nil {
		item.Address = strings.TrimSpace(*req.Address)
	}
	if req.GSTIN != nil {
		item.GSTIN = strings.ToUpper(strings.TrimSpace(*req.GSTIN))
	}
	if req.RazorpayKeyID != nil {
		item.RazorpayKeyID = strings.TrimSpace(*req.RazorpayKeyID)
	}
	if req.RazorpayKeySecret != nil {
		item.RazorpayKeySecret = strings.TrimSpace(*req.RazorpayKeySecret)
	}
	if req.TaxEnabled != nil {
		item.TaxEnabled = *req.TaxEnabled
	}
	if req.TaxType != nil {
		item.TaxType = *req.TaxType
	}
	if req.TaxPercentage != nil {
		item.TaxPercentage = *req.TaxPercentage
	}
	if req.PackagingEnabled != nil {
		item.PackagingEnabled = *req.PackagingEnabled
	}
	if req.PackagingCharge != nil {
		item.PackagingCharge = *req.PackagingCharge
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	item.TaxType, item.TaxPercentage, err = normalizeTax(item.TaxEnabled, item.TaxType, item.TaxPercentage)
	if err != nil {
		return domain.Restaurant{}, err
	}

	item.PackagingCharge, err = normalizePackaging(item.PackagingEnabled, item.PackagingCharge)
	if err != nil {
		return domain.Restaurant{}, err
	}

	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Restaurant{}, err
	}

	return *item, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// normalizeTax clears the tax configuration when collection is disabled so
// pricing never sees a stale type or percentage.
func normalizeTax(enabled bool, taxType domain.TaxType, pct decimal.Decimal) (domain.TaxType, decimal.Decimal, error) {
	if !enabled {
		return "", decimal.Zero, nil
	}
	if !taxType.Valid() {
		return "", decimal.Zero, domain.ErrInvalidTaxType
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return "", decimal.Zero, domain.ErrInvalidTaxPercentage
	}
	return taxType, pct, nil
}

func normalizePackaging(enabled bool, charge decimal.Decimal) (decimal.Decimal, error) {
	if !enabled {
		return decimal.Zero, nil
	}
	if charge.IsNegative() {
		return decimal.Zero, domain.ErrInvalidCharge
	}
	return charge, nil
}
