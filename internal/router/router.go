package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stylemart/storefront/internal/config"
	"github.com/stylemart/storefront/internal/handlers"
	"github.com/stylemart/storefront/internal/middleware"
	"github.com/stylemart/storefront/internal/models"
)

// Setup wires every route. Public catalog reads take OptionalAuth so the
// response can carry the viewer's like state; everything that mutates
// requires a token, and staff surfaces sit behind role checks.
func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	cartHandler := handlers.NewCartHandler(db)
	orderHandler := handlers.NewOrderHandler(db)
	discountHandler := handlers.NewDiscountHandler(db)
	productHandler := handlers.NewProductHandler(db)
	commentHandler := handlers.NewCommentHandler(db)
	likeHandler := handlers.NewLikeHandler(db)

	api := r.Group("/api")

	// Public catalog
	public := api.Group("")
	public.Use(middleware.OptionalAuth())
	{
		public.GET("/products", productHandler.List)
		public.GET("/products/:id", productHandler.Get)
		public.GET("/products/:id/comments", commentHandler.ListByProduct)
		public.GET("/discounts/active", discountHandler.Active)
		public.POST("/orders/check", orderHandler.Check)
	}

	// Authenticated shoppers
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/cart", cartHandler.GetCart)
		auth.PUT("/cart", cartHandler.AddToCart)
		auth.PUT("/cart/update-quantity", cartHandler.UpdateQuantity)
		auth.DELETE("/cart", cartHandler.RemoveItem)

		auth.POST("/orders", middleware.CheckoutRateLimit(), orderHandler.Create)
		auth.GET("/orders", orderHandler.ListMine)
		auth.GET("/orders/:id", orderHandler.Get)
		auth.DELETE("/orders/:id", orderHandler.Delete)

		auth.POST("/comments", commentHandler.Create)
		auth.PUT("/comments/:id", commentHandler.Update)
		auth.DELETE("/comments/:id", commentHandler.Delete)

		auth.POST("/products/:id/rating", likeHandler.Rate)
		auth.DELETE("/products/:id/rating", likeHandler.Delete)
	}

	// Staff: admins and managers run the catalog, discounts, fulfillment
	// and moderation.
	staff := api.Group("")
	staff.Use(middleware.AuthRequired(), middleware.RequireRoles(db, models.RoleAdmin, models.RoleManager))
	{
		staff.POST("/product", productHandler.Create)
		staff.PUT("/product/:id", productHandler.Update)
		staff.DELETE("/product/:id", productHandler.Delete)
		staff.GET("/admin/products", productHandler.AdminList)

		staff.POST("/discount", discountHandler.Create)
		staff.GET("/discounts/all", discountHandler.List)
		staff.DELETE("/discount/:id", discountHandler.Delete)

		staff.PATCH("/orders/:id/ready", orderHandler.MarkReady)
		staff.PATCH("/orders/:id/given", orderHandler.MarkGiven)

		staff.GET("/admin/comments/pending", commentHandler.Pending)
		staff.PATCH("/admin/comments/:id/moderate", commentHandler.Moderate)
		staff.PATCH("/admin/comments/:id/visibility", commentHandler.SetVisibility)
		staff.DELETE("/admin/comments/:id", commentHandler.AdminDelete)
	}

	// Order oversight stays admin only.
	admin := api.Group("")
	admin.Use(middleware.AuthRequired(), middleware.RequireRoles(db, models.RoleAdmin))
	{
		admin.GET("/admin/orders", orderHandler.AdminList)
		admin.GET("/admin/orders/user/:userId", orderHandler.AdminListByUser)
	}

	return r
}
