package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylemart/storefront/internal/apperrors"
	"github.com/stylemart/storefront/internal/models"
)

func seasonPtr(s models.Season) *models.Season { return &s }

func TestCreateDiscountSeasonFansOut(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDiscountService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 1}})
	createTestProduct(t, db, admin, 2000, models.SizeList{{Size: "L", Quantity: 1}})

	summer := &models.Product{
		UserID: admin.ID, Title: "Linen Shirt", Price: 500,
		Season: models.SeasonSummer, Visible: true,
	}
	require.NoError(t, db.Create(summer).Error)

	now := time.Now()
	from, to := now.Add(-time.Hour), now.Add(time.Hour)
	discounts, err := svc.CreateDiscount(admin.ID, &CreateDiscountRequest{
		Season:     seasonPtr(models.SeasonWinter),
		Percentage: 30,
		StartsAt:   &from,
		EndsAt:     &to,
	})
	require.NoError(t, err)

	// One row per winter product; the summer product is untouched.
	require.Len(t, discounts, 2)
	for _, d := range discounts {
		require.NotNil(t, d.ProductID)
		require.NotNil(t, d.Season)
		assert.Equal(t, models.SeasonWinter, *d.Season)
		assert.NotEqual(t, summer.ID, *d.ProductID)
	}
}

func TestCreateDiscountRejectsBadPercentage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDiscountService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	product, _ := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 1}})
	productID := product.ID

	now := time.Now()
	from, to := now.Add(-time.Hour), now.Add(time.Hour)

	for _, pct := range []float64{0, -5, 101} {
		_, err := svc.CreateDiscount(admin.ID, &CreateDiscountRequest{
			ProductID:  &productID,
			Percentage: pct,
			StartsAt:   &from,
			EndsAt:     &to,
		})
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "percentage %v must be rejected", pct)
	}

	// 100 is the upper bound and is allowed.
	discounts, err := svc.CreateDiscount(admin.ID, &CreateDiscountRequest{
		ProductID:  &productID,
		Percentage: 100,
		StartsAt:   &from,
		EndsAt:     &to,
	})
	require.NoError(t, err)
	require.Len(t, discounts, 1)
}

func TestCreateDiscountTargetPriority(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDiscountService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	product, variant := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 1}})
	productID, variantID := product.ID, variant.ID

	now := time.Now()
	from, to := now.Add(-time.Hour), now.Add(time.Hour)

	// No target at all is rejected.
	_, err := svc.CreateDiscount(admin.ID, &CreateDiscountRequest{
		Percentage: 10, StartsAt: &from, EndsAt: &to,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	// Product beats variant when both are given.
	discounts, err := svc.CreateDiscount(admin.ID, &CreateDiscountRequest{
		ProductID: &productID, VariantID: &variantID,
		Percentage: 10, StartsAt: &from, EndsAt: &to,
	})
	require.NoError(t, err)
	require.Len(t, discounts, 1)
	require.NotNil(t, discounts[0].ProductID)
	assert.Equal(t, productID, *discounts[0].ProductID)
	assert.Nil(t, discounts[0].VariantID)
}

func TestCreateDiscountRejectsInvertedWindow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDiscountService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	product, _ := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 1}})
	productID := product.ID

	now := time.Now()
	from, to := now.Add(time.Hour), now.Add(-time.Hour)
	_, err := svc.CreateDiscount(admin.ID, &CreateDiscountRequest{
		ProductID:  &productID,
		Percentage: 10,
		StartsAt:   &from,
		EndsAt:     &to,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestGetActiveDiscountsWindowing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDiscountService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	product, _ := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 1}})
	productID := product.ID

	now := time.Now()
	createTestDiscount(t, db, admin, &productID, nil, 10, now.Add(-time.Hour), now.Add(time.Hour))
	createTestDiscount(t, db, admin, &productID, nil, 20, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	createTestDiscount(t, db, admin, &productID, nil, 30, now.Add(24*time.Hour), now.Add(48*time.Hour))

	active, err := svc.GetActiveDiscounts()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, float64(10), active[0].Percentage)
}

func TestDeleteDiscount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDiscountService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	product, _ := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 1}})
	productID := product.ID

	now := time.Now()
	discount := createTestDiscount(t, db, admin, &productID, nil, 10, now.Add(-time.Hour), now.Add(time.Hour))

	require.NoError(t, svc.DeleteDiscount(discount.ID))
	err := svc.DeleteDiscount(discount.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
