package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/stylemart/storefront/internal/apperrors"
	"github.com/stylemart/storefront/internal/i18n"
	"github.com/stylemart/storefront/internal/models"
	"github.com/stylemart/storefront/internal/pricing"
	"github.com/stylemart/storefront/internal/utils"
)

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type VariantRequest struct {
	// ID references an existing variant on update; absent means create.
	ID     *uuid.UUID         `json:"id"`
	Color  string             `json:"color" validate:"required"`
	Sizes  []models.SizeEntry `json:"sizes" validate:"required,min=1"`
	Images []string           `json:"images"`
}

type CreateProductRequest struct {
	Title       string           `json:"title" validate:"required,min=2,max=255"`
	Description string           `json:"description"`
	Price       float64          `json:"price" validate:"required,gt=0"`
	Sex         string           `json:"sex"`
	Model       string           `json:"model"`
	Age         string           `json:"age"`
	Season      models.Season    `json:"season" validate:"required"`
	Visible     *bool            `json:"visible"`
	Tags        []string         `json:"tags"`
	Variants    []VariantRequest `json:"variants" validate:"required,min=1,dive"`
}

type UpdateProductRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *float64         `json:"price"`
	Sex         *string          `json:"sex"`
	Model       *string          `json:"model"`
	Age         *string          `json:"age"`
	Season      *models.Season   `json:"season"`
	Visible     *bool            `json:"visible"`
	Tags        []string         `json:"tags"`
	Variants    []VariantRequest `json:"variants"`
}

type ProductFilters struct {
	Season string
	Sex    string
	Search string
}

// CreateProduct persists a product together with its variant tree: colors,
// per-size stock and image URLs, all in one transaction.
func (s *CatalogService) CreateProduct(userID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(i18n.KeyValidationInvalid, "title, price, season, variants")
	}
	if !req.Season.Valid() {
		return nil, apperrors.Validation(i18n.KeyValidationInvalid, "season")
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	product := models.Product{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Sex:         req.Sex,
		Model:       req.Model,
		Age:         req.Age,
		Season:      req.Season,
		Visible:     visible,
		Tags:        pq.StringArray(req.Tags),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return apperrors.Internal("failed to create product", err)
		}
		return s.createVariants(tx, product.ID, req.Variants)
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(product.ID, nil)
}

func (s *CatalogService) createVariants(tx *gorm.DB, productID uuid.UUID, variants []VariantRequest) error {
	for _, v := range variants {
		variant := models.ProductVariant{
			ProductID: productID,
			Color:     v.Color,
			Sizes:     models.SizeList(v.Sizes),
			Version:   1,
		}
		if err := tx.Create(&variant).Error; err != nil {
			return apperrors.Internal("failed to create variant", err)
		}
		for _, url := range v.Images {
			image := models.ProductImage{VariantID: variant.ID, URL: url}
			if err := tx.Create(&image).Error; err != nil {
				return apperrors.Internal("failed to create image", err)
			}
		}
	}
	return nil
}

// UpdateProduct patches the provided scalar fields. When Variants is
// present the whole variant tree is replaced: lines in carts pointing at
// the old variants are dropped with them.
func (s *CatalogService) UpdateProduct(productID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyProductNotFound)
		}
		return nil, apperrors.Internal("failed to load product", err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, apperrors.Validation(i18n.KeyValidationInvalid, "price")
		}
		updates["price"] = *req.Price
	}
	if req.Sex != nil {
		updates["sex"] = *req.Sex
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Season != nil {
		if !req.Season.Valid() {
			return nil, apperrors.Validation(i18n.KeyValidationInvalid, "season")
		}
		updates["season"] = *req.Season
	}
	if req.Visible != nil {
		updates["visible"] = *req.Visible
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return apperrors.Internal("failed to update product", err)
			}
		}

		if req.Variants != nil {
			if len(req.Variants) == 0 {
				return apperrors.Validation(i18n.KeyValidationInvalid, "variants")
			}
			if err := s.upsertVariants(tx, productID, req.Variants); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(productID, nil)
}

// upsertVariants reconciles the stored variant set against the request:
// entries carrying an id update that variant in place, entries without one
// are created, and stored variants the request no longer mentions are
// removed with their subtree.
func (s *CatalogService) upsertVariants(tx *gorm.DB, productID uuid.UUID, variants []VariantRequest) error {
	var existing []models.ProductVariant
	if err := tx.Where("product_id = ?", productID).Find(&existing).Error; err != nil {
		return apperrors.Internal("failed to list variants", err)
	}
	byID := make(map[uuid.UUID]*models.ProductVariant, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	kept := make(map[uuid.UUID]bool)
	for _, v := range variants {
		if v.ID != nil {
			current, ok := byID[*v.ID]
			if !ok {
				return apperrors.NotFound(i18n.KeyVariantNotFound)
			}
			res := tx.Model(&models.ProductVariant{}).
				Where("id = ? AND version = ?", current.ID, current.Version).
				Updates(map[string]interface{}{
					"color":   v.Color,
					"sizes":   models.SizeList(v.Sizes),
					"version": current.Version + 1,
				})
			if res.Error != nil {
				return apperrors.Internal("failed to update variant", res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.Internal("variant changed concurrently, update aborted", nil)
			}
			if err := tx.Where("variant_id = ?", current.ID).Delete(&models.ProductImage{}).Error; err != nil {
				return apperrors.Internal("failed to replace images", err)
			}
			for _, url := range v.Images {
				image := models.ProductImage{VariantID: current.ID, URL: url}
				if err := tx.Create(&image).Error; err != nil {
					return apperrors.Internal("failed to create image", err)
				}
			}
			kept[current.ID] = true
			continue
		}

		if err := s.createVariants(tx, productID, []VariantRequest{v}); err != nil {
			return err
		}
	}

	var removed []uuid.UUID
	for id := range byID {
		if !kept[id] {
			removed = append(removed, id)
		}
	}
	return s.deleteVariants(tx, removed)
}

// deleteVariantTree removes a product's variants along with everything
// hanging off them: images, variant discounts and cart lines.
func (s *CatalogService) deleteVariantTree(tx *gorm.DB, productID uuid.UUID) error {
	var variantIDs []uuid.UUID
	if err := tx.Model(&models.ProductVariant{}).Where("product_id = ?", productID).
		Pluck("id", &variantIDs).Error; err != nil {
		return apperrors.Internal("failed to list variants", err)
	}
	return s.deleteVariants(tx, variantIDs)
}

func (s *CatalogService) deleteVariants(tx *gorm.DB, variantIDs []uuid.UUID) error {
	if len(variantIDs) == 0 {
		return nil
	}

	if err := tx.Where("variant_id IN ?", variantIDs).Delete(&models.CartItem{}).Error; err != nil {
		return apperrors.Internal("failed to delete cart lines", err)
	}
	if err := tx.Where("variant_id IN ?", variantIDs).Delete(&models.Discount{}).Error; err != nil {
		return apperrors.Internal("failed to delete variant discounts", err)
	}
	if err := tx.Where("variant_id IN ?", variantIDs).Delete(&models.ProductImage{}).Error; err != nil {
		return apperrors.Internal("failed to delete images", err)
	}
	if err := tx.Where("id IN ?", variantIDs).Delete(&models.ProductVariant{}).Error; err != nil {
		return apperrors.Internal("failed to delete variants", err)
	}
	return nil
}

// GetProducts is the public listing: visible products only, with variant,
// image and discount data. When viewerID is set, each product carries the
// viewer's like state.
func (s *CatalogService) GetProducts(filters ProductFilters, params utils.PaginationParams, viewerID *uuid.UUID) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("visible = ?", true)
	query = s.applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count products", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "price", "title"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	err := query.
		Preload("Variants").
		Preload("Variants.Images").
		Preload("Variants.Discounts").
		Preload("Discounts").
		Preload("Likes").
		Find(&products).Error
	if err != nil {
		return nil, 0, apperrors.Internal("failed to fetch products", err)
	}

	s.decorate(products, viewerID)
	return products, total, nil
}

// GetAllProductsAdmin lists every product regardless of visibility.
func (s *CatalogService) GetAllProductsAdmin(filters ProductFilters, params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})
	query = s.applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count products", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "price", "title", "visible"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	err := query.
		Preload("Variants").
		Preload("Variants.Images").
		Preload("Discounts").
		Find(&products).Error
	if err != nil {
		return nil, 0, apperrors.Internal("failed to fetch products", err)
	}

	s.decorate(products, nil)
	return products, total, nil
}

func (s *CatalogService) applyFilters(query *gorm.DB, filters ProductFilters) *gorm.DB {
	if filters.Season != "" {
		query = query.Where("season = ?", filters.Season)
	}
	if filters.Sex != "" {
		query = query.Where("sex = ?", filters.Sex)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	return query
}

// GetProduct returns the detail view: the full variant tree, discounts and
// the comments the viewer may see, which means approved ones plus the
// viewer's own regardless of moderation state.
func (s *CatalogService) GetProduct(productID uuid.UUID, viewerID *uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.
		Preload("User").
		Preload("Variants").
		Preload("Variants.Images").
		Preload("Variants.Discounts").
		Preload("Discounts").
		Preload("Likes").
		First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(i18n.KeyProductNotFound)
		}
		return nil, apperrors.Internal("failed to load product", err)
	}

	commentQuery := s.db.Where("product_id = ?", productID).Preload("User")
	if viewerID != nil {
		commentQuery = commentQuery.Where("visible = ? OR user_id = ?", true, *viewerID)
	} else {
		commentQuery = commentQuery.Where("visible = ?", true)
	}
	if err := commentQuery.Order("created_at DESC").Find(&product.Comments).Error; err != nil {
		return nil, apperrors.Internal("failed to load comments", err)
	}

	list := []models.Product{product}
	s.decorate(list, viewerID)
	return &list[0], nil
}

// DeleteProduct removes a product and everything that depends on it, in
// dependency order. Order lines keep their snapshot but lose the product
// reference, so purchase history survives the deletion.
func (s *CatalogService) DeleteProduct(productID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound(i18n.KeyProductNotFound)
			}
			return apperrors.Internal("failed to load product", err)
		}

		if err := tx.Where("product_id = ?", productID).Delete(&models.Comment{}).Error; err != nil {
			return apperrors.Internal("failed to delete comments", err)
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.Like{}).Error; err != nil {
			return apperrors.Internal("failed to delete likes", err)
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.CartItem{}).Error; err != nil {
			return apperrors.Internal("failed to delete cart lines", err)
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.Discount{}).Error; err != nil {
			return apperrors.Internal("failed to delete discounts", err)
		}
		if err := s.deleteVariantTree(tx, productID); err != nil {
			return err
		}

		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", productID).
			Update("product_id", nil).Error; err != nil {
			return apperrors.Internal("failed to detach order items", err)
		}

		if err := tx.Delete(&product).Error; err != nil {
			return apperrors.Internal("failed to delete product", err)
		}
		return nil
	})
}

// decorate fills the per-request computed fields: effective price from the
// currently active discounts, and the viewer's like state.
func (s *CatalogService) decorate(products []models.Product, viewerID *uuid.UUID) {
	now := time.Now()
	for i := range products {
		p := &products[i]

		sets := make([][]models.Discount, 0, len(p.Variants)+1)
		sets = append(sets, p.Discounts)
		for _, v := range p.Variants {
			sets = append(sets, v.Discounts)
		}
		p.EffectivePrice = pricing.EffectiveUnitPrice(p.Price, now, sets...)

		if viewerID != nil {
			for _, like := range p.Likes {
				if like.UserID == *viewerID {
					p.LikedByUser = true
					break
				}
			}
		}
	}
}
