package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type ProvisionRequest struct {
	Name              string
	Slug              string
	Address           string
	GSTIN             string
	RazorpayKeyID     string
	RazorpayKeySecret string
	TaxEnabled        bool
	TaxType           TaxType
	TaxPercentage     decimal.Decimal
	PackagingEnabled  bool
	PackagingCharge   decimal.Decimal
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	ID                string
	Name              *string
	Address           *string
	GSTIN             *string
	RazorpayKeyID     *string
	RazorpayKeySecret *string
	TaxEnabled        *bool
	TaxType           *TaxType
	TaxPercentage     *decimal.Decimal
	PackagingEnabled  *bool
	PackagingCharge   *decimal.Decimal
	Active            *bool
}

type Service interface {
	Provision(context.Context, ProvisionRequest) (Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (Restaurant, error)
	GetByID(ctx context.Context, id string) (Restaurant, error)
	List(context.Context) ([]Restaurant, error)
	Update(context.Context, UpdateRequest) (Restaurant, error)
}

var (
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidSlug          = errors.New("invalid_slug")
	ErrSlugTaken            = errors.New("slug_taken")
	ErrInvalidTaxType       = errors.New("invalid_tax_type")
	ErrInvalidTaxPercentage = errors.New("invalid_tax_percentage")
	ErrInvalidCharge        = errors.New("invalid_charge")
	ErrInvalidID            = errors.New("invalid_id")
	ErrNotFound             = errors.New("not_found")
)
