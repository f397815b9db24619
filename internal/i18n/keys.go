package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAuthTokenExpired = "auth.token_expired"
	KeyAuthAccessDenied = "auth.access_denied"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Products
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Variants and stock
	KeyVariantNotFound = "variant.not_found"
	KeySizeNotFound    = "variant.size_not_found"
	KeyStockExceeded   = "variant.stock_exceeded"

	// Cart
	KeyCartNotFound     = "cart.not_found"
	KeyCartItemNotFound = "cart.item_not_found"
	KeyCartItemRemoved  = "cart.item_removed"

	// Orders
	KeyOrderNotFound          = "order.not_found"
	KeyOrderInvalid           = "order.invalid"
	KeyOrderAddressRequired   = "order.address_required"
	KeyOrderInsufficientStock = "order.insufficient_stock"
	KeyOrderDeleted           = "order.deleted"
	KeyOrderForbidden         = "order.forbidden"

	// Discounts
	KeyDiscountDeleted       = "discount.deleted"
	KeyDiscountNotFound      = "discount.not_found"
	KeyDiscountInvalidTarget = "discount.invalid_target"
	KeyDiscountInvalidPct    = "discount.invalid_percentage"
	KeyDiscountDatesRequired = "discount.dates_required"

	// Comments
	KeyCommentDeleted  = "comment.deleted"
	KeyCommentNotFound = "comment.not_found"

	// Ratings
	KeyRatingInvalid      = "rating.invalid"
	KeyRatingNotFound     = "rating.not_found"
	KeyRatingNotPurchased = "rating.not_purchased"
	KeyRatingDeleted      = "rating.deleted"
)
