// Package pricing computes order totals on the server from the persisted
// menu prices and the restaurant's tax and packaging configuration. Amounts
// sent by clients are never trusted.
package pricing

import (
	"github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Config is the pricing-relevant slice of a restaurant's configuration.
type Config struct {
	TaxEnabled       bool
	TaxType          domain.TaxType
	TaxPercentage    decimal.Decimal
	PackagingEnabled bool
	PackagingCharge  decimal.Decimal
}

func ConfigFor(r domain.Restaurant) Config {
	return Config{
		TaxEnabled:       r.TaxEnabled,
		TaxType:          r.TaxType,
		TaxPercentage:    r.TaxPercentage,
		PackagingEnabled: r.PackagingEnabled,
		PackagingCharge:  r.PackagingCharge,
	}
}

// Breakdown is the fully itemized result of pricing a cart.
type Breakdown struct {
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	TaxPercentage   decimal.Decimal
	TaxType         domain.TaxType
	PackagingCharge decimal.Decimal
	Total           decimal.Decimal
}

// Quote prices a cart of item id to quantity against the current unit
// prices. Ids missing from prices contribute zero to the subtotal, so a
// delisted item cannot block checkout of the rest of the cart.
//
// Exclusive tax is added on top of the subtotal. Inclusive tax leaves the
// charged total unchanged and only carves the tax amount out of the
// subtotal for reporting. The packaging charge applies once per order,
// only when the restaurant enables it and the customer asks for it.
func Quote(cart map[string]int, prices map[string]decimal.Decimal, cfg Config, packagingRequested bool) Breakdown {
	subtotal := decimal.Zero
	for id, qty := range cart {
		if qty <= 0 {
			continue
		}
		price, ok := prices[id]
		if !ok {
			continue
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	subtotal = subtotal.Round(2)

	b := Breakdown{
		Subtotal: subtotal,
		Total:    subtotal,
	}

	if cfg.TaxEnabled && cfg.TaxPercentage.IsPositive() {
		b.TaxPercentage = cfg.TaxPercentage
		b.TaxType = cfg.TaxType
		switch cfg.TaxType {
		case domain.TaxExclusive:
			b.TaxAmount = subtotal.Mul(cfg.TaxPercentage).Div(hundred).Round(2)
			b.Total = subtotal.Add(b.TaxAmount)
		case domain.TaxInclusive:
			base := subtotal.Div(decimal.NewFromInt(1).Add(cfg.TaxPercentage.Div(hundred))).Round(2)
			b.TaxAmount = subtotal.Sub(base)
		}
	}

	if cfg.PackagingEnabled && packagingRequested && cfg.PackagingCharge.IsPositive() {
		b.PackagingCharge = cfg.PackagingCharge.Round(2)
		b.Total = b.Total.Add(b.PackagingCharge)
	}

	b.Total = b.Total.Round(2)
	return b
}

// MinorUnits converts a rupee amount to paise. Payment gateways deal in
// minor units, so the same conversion must be used when creating a gateway
// order and when checking a captured amount against it.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
