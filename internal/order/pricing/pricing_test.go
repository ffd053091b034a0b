package pricing

import (
	"testing"

	"github.com/abhayvishwakarma1111/bitezyqr/internal/restaurant/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestQuoteExclusiveTax(t *testing.T) {
	cart := map[string]int{"1": 2, "2": 1}
	prices := map[string]decimal.Decimal{
		"1": dec("120.00"),
		"2": dec("60.00"),
	}
	cfg := Config{
		TaxEnabled:    true,
		TaxType:       domain.TaxExclusive,
		TaxPercentage: dec("5"),
	}

	b := Quote(cart, prices, cfg, false)

	if !b.Subtotal.Equal(dec("300.00")) {
		t.Fatalf("subtotal = %s, want 300.00", b.Subtotal)
	}
	if !b.TaxAmount.Equal(dec("15.00")) {
		t.Fatalf("tax = %s, want 15.00", b.TaxAmount)
	}
	if !b.Total.Equal(dec("315.00")) {
		t.Fatalf("total = %s, want 315.00", b.Total)
	}
}

func TestQuoteInclusiveTaxKeepsTotal(t *testing.T) {
	cart := map[string]int{"1": 1}
	prices := map[string]decimal.Decimal{"1": dec("105.00")}
	cfg := Config{
		TaxEnabled:    true,
		TaxType:       domain.TaxInclusive,
		TaxPercentage: dec("5"),
	}

	b := Quote(cart, prices, cfg, false)

	if !b.Total.Equal(b.Subtotal) {
		t.Fatalf("inclusive tax changed the total: subtotal=%s total=%s", b.Subtotal, b.Total)
	}
	if !b.TaxAmount.Equal(dec("5.00")) {
		t.Fatalf("tax = %s, want 5.00", b.TaxAmount)
	}
}

func TestQuotePackagingRequiresBothFlags(t *testing.T) {
	cart := map[string]int{"1": 1}
	prices := map[string]decimal.Decimal{"1": dec("100.00")}
	cfg := Config{PackagingEnabled: true, PackagingCharge: dec("10.00")}

	withPackaging := Quote(cart, prices, cfg, true)
	if !withPackaging.Total.Equal(dec("110.00")) {
		t.Fatalf("total = %s, want 110.00", withPackaging.Total)
	}
	if !withPackaging.PackagingCharge.Equal(dec("10.00")) {
		t.Fatalf("packaging = %s, want 10.00", withPackaging.PackagingCharge)
	}

	notRequested := Quote(cart, prices, cfg, false)
	if !notRequested.Total.Equal(dec("100.00")) {
		t.Fatalf("total = %s, want 100.00 when packaging not requested", notRequested.Total)
	}

	cfg.PackagingEnabled = false
	disabled := Quote(cart, prices, cfg, true)
	if !disabled.Total.Equal(dec("100.00")) {
		t.Fatalf("total = %s, want 100.00 when packaging disabled", disabled.Total)
	}
	if !disabled.PackagingCharge.IsZero() {
		t.Fatalf("packaging = %s, want 0 when disabled", disabled.PackagingCharge)
	}
}

func TestQuoteUnknownItemContributesZero(t *testing.T) {
	cart := map[string]int{"1": 1, "999": 3}
	prices := map[string]decimal.Decimal{"1": dec("50.00")}

	b := Quote(cart, prices, Config{}, false)

	if !b.Subtotal.Equal(dec("50.00")) {
		t.Fatalf("subtotal = %s, want 50.00", b.Subtotal)
	}
}

func TestQuoteTaxDisabled(t *testing.T) {
	cart := map[string]int{"1": 2}
	prices := map[string]decimal.Decimal{"1": dec("75.50")}

	b := Quote(cart, prices, Config{TaxPercentage: dec("18")}, false)

	if !b.TaxAmount.IsZero() {
		t.Fatalf("tax = %s, want 0 when tax disabled", b.TaxAmount)
	}
	if !b.Total.Equal(dec("151.00")) {
		t.Fatalf("total = %s, want 151.00", b.Total)
	}
}

func TestQuoteSkipsNonPositiveQuantities(t *testing.T) {
	cart := map[string]int{"1": 0, "2": -2, "3": 1}
	prices := map[string]decimal.Decimal{
		"1": dec("10.00"),
		"2": dec("20.00"),
		"3": dec("30.00"),
	}

	b := Quote(cart, prices, Config{}, false)

	if !b.Subtotal.Equal(dec("30.00")) {
		t.Fatalf("subtotal = %s, want 30.00", b.Subtotal)
	}
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"315.00", 31500},
		{"0.01", 1},
		{"99.99", 9999},
		{"0", 0},
	}
	for _, tc := range cases {
		if got := MinorUnits(dec(tc.amount)); got != tc.want {
			t.Fatalf("MinorUnits(%s) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}
