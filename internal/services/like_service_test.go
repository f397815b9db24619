package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylemart/storefront/internal/apperrors"
	"github.com/stylemart/storefront/internal/models"
)

func TestRateProductRequiresPurchase(t *testing.T) {
	db := setupTestDB(t)
	likes := NewLikeService(db)
	orders := NewOrderService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	buyer := createTestUser(t, db, models.RoleUser)
	browser := createTestUser(t, db, models.RoleUser)
	product, variant := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 5}})

	_, err := likes.RateProduct(browser.ID, product.ID, &RateProductRequest{Rating: 5})
	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden),
		"rating without a purchase must be refused")

	_, err = orders.CreateOrder(buyer.ID, &CreateOrderRequest{
		Items: []OrderItemRequest{
			{ProductID: product.ID, VariantID: variant.ID, Size: "M", Quantity: 1},
		},
		DeliveryMethod: models.DeliveryPickup,
	})
	require.NoError(t, err)

	like, err := likes.RateProduct(buyer.ID, product.ID, &RateProductRequest{Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, like.Rating)
}

func TestRateProductUpsertsSingleRow(t *testing.T) {
	db := setupTestDB(t)
	likes := NewLikeService(db)
	orders := NewOrderService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	buyer := createTestUser(t, db, models.RoleUser)
	product, variant := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 5}})

	_, err := orders.CreateOrder(buyer.ID, &CreateOrderRequest{
		Items: []OrderItemRequest{
			{ProductID: product.ID, VariantID: variant.ID, Size: "M", Quantity: 1},
		},
		DeliveryMethod: models.DeliveryPickup,
	})
	require.NoError(t, err)

	_, err = likes.RateProduct(buyer.ID, product.ID, &RateProductRequest{Rating: 2})
	require.NoError(t, err)
	_, err = likes.RateProduct(buyer.ID, product.ID, &RateProductRequest{Rating: 5})
	require.NoError(t, err)

	var all []models.Like
	require.NoError(t, db.Find(&all).Error)
	require.Len(t, all, 1)
	assert.Equal(t, 5, all[0].Rating)
}

func TestRateProductValidatesRange(t *testing.T) {
	db := setupTestDB(t)
	likes := NewLikeService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	user := createTestUser(t, db, models.RoleUser)
	product, _ := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 5}})

	for _, rating := range []int{0, 6, -1} {
		_, err := likes.RateProduct(user.ID, product.ID, &RateProductRequest{Rating: rating})
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "rating %d must be rejected", rating)
	}
}

func TestDeleteRating(t *testing.T) {
	db := setupTestDB(t)
	likes := NewLikeService(db)
	orders := NewOrderService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	buyer := createTestUser(t, db, models.RoleUser)
	product, variant := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 5}})

	_, err := orders.CreateOrder(buyer.ID, &CreateOrderRequest{
		Items: []OrderItemRequest{
			{ProductID: product.ID, VariantID: variant.ID, Size: "M", Quantity: 1},
		},
		DeliveryMethod: models.DeliveryPickup,
	})
	require.NoError(t, err)

	_, err = likes.RateProduct(buyer.ID, product.ID, &RateProductRequest{Rating: 3})
	require.NoError(t, err)

	require.NoError(t, likes.DeleteRating(buyer.ID, product.ID))
	err = likes.DeleteRating(buyer.ID, product.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
