// Package pricing computes the effective unit price of a catalog line from
// the discounts active at a reference timestamp.
package pricing

import (
	"math"
	"time"

	"github.com/stylemart/storefront/internal/models"
)

// BestDiscount returns the highest active percentage among the given
// discount collections. Product- and variant-level discounts compete, they
// are never summed. Returns 0 when nothing is active at now.
func BestDiscount(now time.Time, discountSets ...[]models.Discount) float64 {
	var best float64
	for _, set := range discountSets {
		for i := range set {
			if set[i].ActiveAt(now) && set[i].Percentage > best {
				best = set[i].Percentage
			}
		}
	}
	return best
}

// EffectiveUnitPrice applies the best active discount to the base price.
// The result is floor-truncated, matching what price-consistency checks on
// stored order lines expect. Without an active discount it equals basePrice.
func EffectiveUnitPrice(basePrice float64, now time.Time, discountSets ...[]models.Discount) float64 {
	best := BestDiscount(now, discountSets...)
	if best <= 0 {
		return basePrice
	}
	return math.Floor(basePrice * (1 - best/100))
}

// EffectiveProductPrice resolves the price for a product/variant pair,
// considering both discount levels.
func EffectiveProductPrice(product *models.Product, variant *models.ProductVariant, now time.Time) float64 {
	return EffectiveUnitPrice(product.Price, now, product.Discounts, variant.Discounts)
}

// ActiveDiscount returns the first active product-level discount, falling
// back to the first active variant-level one, for display purposes.
func ActiveDiscount(product *models.Product, now time.Time) *models.Discount {
	for i := range product.Discounts {
		if product.Discounts[i].ActiveAt(now) {
			return &product.Discounts[i]
		}
	}
	for v := range product.Variants {
		for i := range product.Variants[v].Discounts {
			if product.Variants[v].Discounts[i].ActiveAt(now) {
				return &product.Variants[v].Discounts[i]
			}
		}
	}
	return nil
}
