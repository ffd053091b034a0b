package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// TaxType selects how the configured percentage applies to an order subtotal.
type TaxType string

const (
	// TaxExclusive adds tax on top of the menu prices.
	TaxExclusive TaxType = "exclusive"
	// TaxInclusive treats menu prices as already containing tax.
	TaxInclusive TaxType = "inclusive"
)

func (t TaxType) Valid() bool {
	return t == TaxExclusive || t == TaxInclusive
}

type Restaurant struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	Name    string       `gorm:"not null" json:"name"`
	Slug    string       `gorm:"not null;uniqueIndex" json:"slug"`
	Address string       `json:"address,omitempty"`
	GSTIN   string       `json:"gstin,omitempty"`

	// Razorpay credentials are tenant-owned; the secret never leaves the server.
	RazorpayKeyID     string `json:"-"`
	RazorpayKeySecret string `json:"-"`

	TaxEnabled    bool            `json:"tax_enabled"`
	TaxType       TaxType         `json:"tax_type,omitempty"`
	TaxPercentage decimal.Decimal `gorm:"type:numeric(5,2)" json:"tax_percentage"`

	PackagingEnabled bool            `json:"packaging_enabled"`
	PackagingCharge  decimal.Decimal `gorm:"type:numeric(12,2)" json:"packaging_charge"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// PublicProfile is the subset of restaurant configuration exposed to the
// customer-facing menu and checkout pages.
type PublicProfile struct {
	ID               snowflake.ID    `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Address          string          `json:"address,omitempty"`
	GSTIN            string          `json:"gstin,omitempty"`
	TaxEnabled       bool            `json:"tax_enabled"`
	TaxType          TaxType         `json:"tax_type,omitempty"`
	TaxPercentage    decimal.Decimal `json:"tax_percentage"`
	PackagingEnabled bool            `json:"packaging_enabled"`
	PackagingCharge  decimal.Decimal `json:"packaging_charge"`
	RazorpayKeyID    string          `json:"razorpay_key_id"`
}

func (r Restaurant) Public() PublicProfile {
	return PublicProfile{
		ID:               r.ID,
		Name:             r.Name,
		Slug:             r.Slug,
		Address:          r.Address,
		GSTIN:            r.GSTIN,
		TaxEnabled:       r.TaxEnabled,
		TaxType:          r.TaxType,
		TaxPercentage:    r.TaxPercentage,
		PackagingEnabled: r.PackagingEnabled,
		PackagingCharge:  r.PackagingCharge,
		RazorpayKeyID:    r.RazorpayKeyID,
	}
}
