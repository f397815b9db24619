package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stylemart/storefront/internal/models"
)

func discount(pct float64, startsAt, endsAt time.Time) models.Discount {
	return models.Discount{
		Percentage: pct,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
	}
}

func TestDiscountWindowBoundsAreInclusive(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	d := discount(10, start, end)

	tests := []struct {
		name   string
		now    time.Time
		active bool
	}{
		{"at startsAt", start, true},
		{"at endsAt", end, true},
		{"inside window", start.Add(24 * time.Hour), true},
		{"one second before start", start.Add(-time.Second), false},
		{"one second after end", end.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BestDiscount(tt.now, []models.Discount{d})
			if tt.active {
				assert.Equal(t, 10.0, got)
			} else {
				assert.Equal(t, 0.0, got)
			}
		})
	}
}

func TestBestDiscountTakesMaxNotSum(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	window := func(pct float64) models.Discount {
		return discount(pct, now.Add(-time.Hour), now.Add(time.Hour))
	}

	productDiscounts := []models.Discount{window(20)}
	variantDiscounts := []models.Discount{window(50)}

	assert.Equal(t, 50.0, BestDiscount(now, productDiscounts, variantDiscounts))
}

func TestEffectiveUnitPriceFloorsResult(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	active := []models.Discount{discount(33, now.Add(-time.Hour), now.Add(time.Hour))}

	// 999 * 0.67 = 669.33, truncated not rounded
	assert.Equal(t, 669.0, EffectiveUnitPrice(999, now, active))
}

func TestEffectiveUnitPriceWithoutActiveDiscount(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	expired := []models.Discount{discount(50, now.Add(-48*time.Hour), now.Add(-24*time.Hour))}

	assert.Equal(t, 1000.0, EffectiveUnitPrice(1000, now, expired))
	assert.Equal(t, 1000.0, EffectiveUnitPrice(1000, now))
}

func TestVariantDiscountWinsWhenLarger(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	product := &models.Product{
		Price:     1000,
		Discounts: []models.Discount{discount(20, now.Add(-time.Hour), now.Add(time.Hour))},
	}
	variant := &models.ProductVariant{
		Discounts: []models.Discount{discount(50, now.Add(-time.Hour), now.Add(time.Hour))},
	}

	unit := EffectiveProductPrice(product, variant, now)
	assert.Equal(t, 500.0, unit)
	assert.Equal(t, 1000.0, unit*2)
}

func TestActiveDiscountPrefersProductLevel(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	productLevel := discount(20, now.Add(-time.Hour), now.Add(time.Hour))
	variantLevel := discount(50, now.Add(-time.Hour), now.Add(time.Hour))

	product := &models.Product{
		Discounts: []models.Discount{productLevel},
		Variants: []models.ProductVariant{
			{Discounts: []models.Discount{variantLevel}},
		},
	}

	got := ActiveDiscount(product, now)
	assert.NotNil(t, got)
	assert.Equal(t, 20.0, got.Percentage)

	product.Discounts = nil
	got = ActiveDiscount(product, now)
	assert.NotNil(t, got)
	assert.Equal(t, 50.0, got.Percentage)

	product.Variants = nil
	assert.Nil(t, ActiveDiscount(product, now))
}
