package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylemart/storefront/internal/apperrors"
	"github.com/stylemart/storefront/internal/models"
)

func TestAddToCartClampsToStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	user := createTestUser(t, db, models.RoleUser)
	product, variant := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 3}})

	cart, err := svc.AddToCart(user.ID, &AddToCartRequest{
		ProductID: product.ID,
		VariantID: variant.ID,
		Size:      "M",
		Quantity:  10,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity, "quantity should be capped at stock, not rejected")
}

func TestAddToCartMergesSameLine(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	user := createTestUser(t, db, models.RoleUser)
	product, variant := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 5}})

	req := &AddToCartRequest{ProductID: product.ID, VariantID: variant.ID, Size: "M", Quantity: 2}

	_, err := svc.AddToCart(user.ID, req)
	require.NoError(t, err)
	cart, err := svc.AddToCart(user.ID, req)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	// Merging past the stock cap clamps instead of failing.
	cart, err = svc.AddToCart(user.ID, req)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddToCartUnknownSize(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	user := createTestUser(t, db, models.RoleUser)
	product, variant := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 5}})

	_, err := svc.AddToCart(user.ID, &AddToCartRequest{
		ProductID: product.ID,
		VariantID: variant.ID,
		Size:      "XXL",
		Quantity:  1,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpdateQuantityIncrementStopsAtStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	user := createTestUser(t, db, models.RoleUser)
	product, variant := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 2}})

	cart, err := svc.AddToCart(user.ID, &AddToCartRequest{
		ProductID: product.ID, VariantID: variant.ID, Size: "M", Quantity: 1,
	})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateQuantity(user.ID, itemID, models.CartActionIncrement)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	_, err = svc.UpdateQuantity(user.ID, itemID, models.CartActionIncrement)
	assert.True(t, apperrors.IsKind(err, apperrors.KindStock))
}

func TestUpdateQuantityDecrementBelowOneRemovesLine(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	user := createTestUser(t, db, models.RoleUser)
	product, variant := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 5}})

	cart, err := svc.AddToCart(user.ID, &AddToCartRequest{
		ProductID: product.ID, VariantID: variant.ID, Size: "M", Quantity: 1,
	})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateQuantity(user.ID, itemID, models.CartActionDecrement)
	require.NoError(t, err)
	assert.Empty(t, cart.Items, "decrementing a single-unit line removes it")
}

func TestCartItemOwnershipHiddenAsNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)

	admin := createTestUser(t, db, models.RoleAdmin)
	owner := createTestUser(t, db, models.RoleUser)
	other := createTestUser(t, db, models.RoleUser)
	product, variant := createTestProduct(t, db, admin, 1000, models.SizeList{{Size: "M", Quantity: 5}})

	cart, err := svc.AddToCart(owner.ID, &AddToCartRequest{
		ProductID: product.ID, VariantID: variant.ID, Size: "M", Quantity: 1,
	})
	require.NoError(t, err)

	err = svc.RemoveFromCart(other.ID, cart.Items[0].ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound),
		"foreign cart lines must look like they do not exist")

	_, err = svc.UpdateQuantity(other.ID, cart.Items[0].ID, models.CartActionIncrement)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
