package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stylemart/storefront/internal/i18n"
	"github.com/stylemart/storefront/internal/services"
	"github.com/stylemart/storefront/internal/utils"
)

type ProductHandler struct {
	service *services.CatalogService
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{service: services.NewCatalogService(db)}
}

// Create handles POST /api/product
func (h *ProductHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, i18n.KeyValidationInvalid, "body")
		return
	}

	product, err := h.service.CreateProduct(userID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, product)
}

// Update handles PUT /api/product/:id
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, i18n.KeyValidationInvalid, "body")
		return
	}

	product, err := h.service.UpdateProduct(productID, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, product)
}

// Delete handles DELETE /api/product/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(productID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Message(c, i18n.KeyProductDeleted)
}

// List handles GET /api/products, the public catalog.
func (h *ProductHandler) List(c *gin.Context) {
	filters := services.ProductFilters{
		Season: c.Query("season"),
		Sex:    c.Query("sex"),
		Search: c.Query("search"),
	}
	params := utils.GetPaginationParams(c)

	products, total, err := h.service.GetProducts(filters, params, optionalUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// AdminList handles GET /api/admin/products, including hidden products.
func (h *ProductHandler) AdminList(c *gin.Context) {
	filters := services.ProductFilters{
		Season: c.Query("season"),
		Sex:    c.Query("sex"),
		Search: c.Query("search"),
	}
	params := utils.GetPaginationParams(c)

	products, total, err := h.service.GetAllProductsAdmin(filters, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// Get handles GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	product, err := h.service.GetProduct(productID, optionalUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.OK(c, product)
}
