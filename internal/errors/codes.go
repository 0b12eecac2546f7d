package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// Callers map these to user-facing handling; messages here are advisory.

const (
	// Validation
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// Generic resources
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceInUse         = "RESOURCE_IN_USE"

	// Customers
	CustomerNotFound    = "CUSTOMER_NOT_FOUND"
	CustomerEmailExists = "CUSTOMER_EMAIL_EXISTS"
	CustomerHasOrders   = "CUSTOMER_HAS_ORDERS"

	// Catalog
	CategoryNotFound  = "CATEGORY_NOT_FOUND"
	CategoryNameTaken = "CATEGORY_NAME_TAKEN"
	CategoryInUse     = "CATEGORY_IN_USE"
	ProductNotFound   = "PRODUCT_NOT_FOUND"
	ProductSKUExists  = "PRODUCT_SKU_EXISTS"
	ProductInUse      = "PRODUCT_IN_USE"
	InventoryNegative = "INVENTORY_NEGATIVE_QUANTITY"

	// Orders and payments
	OrderNotFound          = "ORDER_NOT_FOUND"
	OrderDuplicateItem     = "ORDER_DUPLICATE_ITEM"
	OrderInvalidAmount     = "ORDER_INVALID_AMOUNT"
	PaymentAlreadyRecorded = "PAYMENT_ALREADY_RECORDED"
	PaymentDuplicateTxn    = "PAYMENT_DUPLICATE_TRANSACTION"

	// Reviews and wishlist
	ReviewAlreadyExists = "REVIEW_ALREADY_EXISTS"
	ReviewInvalidRating = "REVIEW_INVALID_RATING"
	WishlistDuplicate   = "WISHLIST_DUPLICATE_ITEM"

	// Coupons
	CouponNotFound       = "COUPON_NOT_FOUND"
	CouponCodeExists     = "COUPON_CODE_EXISTS"
	CouponAlreadyApplied = "COUPON_ALREADY_APPLIED"
	CouponInUse          = "COUPON_IN_USE"

	// Internal
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
