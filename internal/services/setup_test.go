package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stylemart/storefront/internal/models"
)

// setupTestDB opens a fresh in-memory database per test and migrates the
// full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.Discount{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Comment{},
		&models.Like{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Name:  "Test User",
		Email: uuid.NewString() + "@example.com",
		Role:  role,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestProduct inserts a product with a single variant carrying the
// given per-size stock, and returns both.
func createTestProduct(t *testing.T, db *gorm.DB, owner *models.User, price float64, sizes models.SizeList) (*models.Product, *models.ProductVariant) {
	t.Helper()

	product := &models.Product{
		UserID:  owner.ID,
		Title:   "Wool Coat",
		Price:   price,
		Model:   "WC-100",
		Season:  models.SeasonWinter,
		Visible: true,
	}
	require.NoError(t, db.Create(product).Error)

	variant := &models.ProductVariant{
		ProductID: product.ID,
		Color:     "black",
		Sizes:     sizes,
		Version:   1,
	}
	require.NoError(t, db.Create(variant).Error)

	return product, variant
}

func createTestDiscount(t *testing.T, db *gorm.DB, creator *models.User, productID, variantID *uuid.UUID, pct float64, from, to time.Time) *models.Discount {
	t.Helper()

	discount := &models.Discount{
		ProductID:   productID,
		VariantID:   variantID,
		Percentage:  pct,
		StartsAt:    from,
		EndsAt:      to,
		CreatedByID: creator.ID,
	}
	require.NoError(t, db.Create(discount).Error)
	return discount
}

func stockFor(t *testing.T, db *gorm.DB, variantID uuid.UUID, size string) int {
	t.Helper()

	var variant models.ProductVariant
	require.NoError(t, db.First(&variant, "id = ?", variantID).Error)
	entry := variant.Sizes.Find(size)
	require.NotNil(t, entry)
	return entry.Quantity
}
