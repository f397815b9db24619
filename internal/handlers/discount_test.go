package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stylemart/storefront/internal/middleware"
	"github.com/stylemart/storefront/internal/models"
	"github.com/stylemart/storefront/internal/utils"
)

func setupDiscountRouter(t *testing.T) (*gin.Engine, *gorm.DB, string, *models.Product) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.ProductVariant{}, &models.Discount{},
	))

	admin := &models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin}
	require.NoError(t, admin.SetPassword("secret123"))
	require.NoError(t, db.Create(admin).Error)

	token, err := utils.GenerateJWT(admin.ID, admin.Name, 1)
	require.NoError(t, err)

	product := &models.Product{
		UserID: admin.ID, Title: "Wool Coat", Price: 1000,
		Season: models.SeasonWinter, Visible: true,
	}
	require.NoError(t, db.Create(product).Error)

	h := NewDiscountHandler(db)
	r := gin.New()
	r.Use(middleware.I18nMiddleware())
	staff := r.Group("/api", middleware.AuthRequired(), middleware.RequireRoles(db, models.RoleAdmin, models.RoleManager))
	staff.POST("/discount", h.Create)

	return r, db, token, product
}

// The client sends startsAt/endsAt; the binding must pick them up from a
// raw JSON body, not just from structs built in-process.
func TestCreateDiscountBindsWireFieldNames(t *testing.T) {
	r, db, token, product := setupDiscountRouter(t)

	body := fmt.Sprintf(`{
		"productId": %q,
		"percentage": 20,
		"startsAt": "2026-06-01T00:00:00Z",
		"endsAt": "2026-06-30T00:00:00Z"
	}`, product.ID)

	req := httptest.NewRequest(http.MethodPost, "/api/discount", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created []models.Discount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created, 1)
	assert.Equal(t, float64(20), created[0].Percentage)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), created[0].StartsAt.UTC())
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), created[0].EndsAt.UTC())

	var stored int64
	require.NoError(t, db.Model(&models.Discount{}).Count(&stored).Error)
	assert.Equal(t, int64(1), stored)
}

func TestCreateDiscountMissingDatesRejected(t *testing.T) {
	r, _, token, product := setupDiscountRouter(t)

	body := fmt.Sprintf(`{"productId": %q, "percentage": 20}`, product.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/discount", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "error")
}
