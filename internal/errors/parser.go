package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is the parsed form of a storage-layer error.
type ErrorInfo struct {
	Code    string // error code (see codes.go)
	Message string // human readable description naming the violated constraint
}

// ParseError translates a database error into an ErrorInfo identifying the
// violated constraint. It matches on server message text so that both the
// postgres wire errors and the sqlite errors seen in tests resolve to the
// same codes.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "unknown error"}
	}

	errStr := err.Error()
	errLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: notFoundCode(context), Message: "requested record not found"}
	}

	// Unique violation: postgres 23505 / sqlite "UNIQUE constraint failed"
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return parseUniqueViolation(errLower)
	}

	// Foreign key violation: postgres 23503 / sqlite "FOREIGN KEY constraint failed"
	if strings.Contains(errLower, "foreign key constraint") {
		return parseForeignKeyViolation(errLower, context)
	}

	// Not-null violation: postgres 23502
	if strings.Contains(errLower, "not-null constraint") || strings.Contains(errLower, "not null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "a required column is missing: " + errStr}
	}

	// Check violation: postgres 23514 / sqlite "CHECK constraint failed"
	if strings.Contains(errLower, "check constraint") {
		return parseCheckViolation(errLower)
	}

	return ErrorInfo{Code: InternalDatabaseError, Message: "database error: " + errStr}
}

func parseUniqueViolation(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "email"):
		return ErrorInfo{Code: CustomerEmailExists, Message: "email address is already registered"}
	case strings.Contains(errLower, "sku"):
		return ErrorInfo{Code: ProductSKUExists, Message: "product SKU is already in use"}
	case strings.Contains(errLower, "categories") && strings.Contains(errLower, "name"):
		return ErrorInfo{Code: CategoryNameTaken, Message: "category name is already in use"}
	case strings.Contains(errLower, "idx_reviews_customer_product") ||
		(strings.Contains(errLower, "reviews") && strings.Contains(errLower, "customer_id")):
		return ErrorInfo{Code: ReviewAlreadyExists, Message: "customer has already reviewed this product"}
	case strings.Contains(errLower, "idx_wishlist_customer_product") ||
		(strings.Contains(errLower, "wishlist_items") && strings.Contains(errLower, "customer_id")):
		return ErrorInfo{Code: WishlistDuplicate, Message: "product is already on the wishlist"}
	case strings.Contains(errLower, "idx_order_items_order_product") ||
		(strings.Contains(errLower, "order_items") && strings.Contains(errLower, "order_id")):
		return ErrorInfo{Code: OrderDuplicateItem, Message: "order already contains this product"}
	case strings.Contains(errLower, "idx_order_coupons_order_coupon") ||
		(strings.Contains(errLower, "order_coupons") && strings.Contains(errLower, "order_id")):
		return ErrorInfo{Code: CouponAlreadyApplied, Message: "coupon is already applied to this order"}
	case strings.Contains(errLower, "coupons") && strings.Contains(errLower, "code"):
		return ErrorInfo{Code: CouponCodeExists, Message: "coupon code is already in use"}
	case strings.Contains(errLower, "transaction_id"):
		return ErrorInfo{Code: PaymentDuplicateTxn, Message: "payment transaction id is already recorded"}
	case strings.Contains(errLower, "payments") && strings.Contains(errLower, "order_id"):
		return ErrorInfo{Code: PaymentAlreadyRecorded, Message: "order already has a payment"}
	case strings.Contains(errLower, "inventory") && strings.Contains(errLower, "product_id"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "product already has an inventory row"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "record already exists"}
}

func parseForeignKeyViolation(errLower, context string) ErrorInfo {
	// Delete rejected because dependents still reference the row.
	if strings.Contains(errLower, "still referenced") {
		switch {
		case strings.Contains(errLower, "customers") || strings.Contains(context, "customer"):
			return ErrorInfo{Code: CustomerHasOrders, Message: "customer has orders and cannot be deleted"}
		case strings.Contains(errLower, "categories") || strings.Contains(context, "category"):
			return ErrorInfo{Code: CategoryInUse, Message: "category is referenced by products and cannot be deleted"}
		case strings.Contains(errLower, "products") || strings.Contains(context, "product"):
			return ErrorInfo{Code: ProductInUse, Message: "product is referenced by orders and cannot be deleted"}
		case strings.Contains(errLower, "coupons") || strings.Contains(context, "coupon"):
			return ErrorInfo{Code: CouponInUse, Message: "coupon has redemptions and cannot be deleted"}
		}
		return ErrorInfo{Code: ResourceInUse, Message: "record is referenced by other data and cannot be deleted"}
	}

	// sqlite reports a bare "FOREIGN KEY constraint failed" for both delete
	// and insert violations; fall back to the caller's context.
	if strings.Contains(context, "delete") {
		return ErrorInfo{Code: ResourceInUse, Message: "record is referenced by other data and cannot be deleted"}
	}
	return ErrorInfo{Code: ResourceNotFound, Message: "referenced record does not exist"}
}

func parseCheckViolation(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "rating"):
		return ErrorInfo{Code: ReviewInvalidRating, Message: "rating must be between 1 and 5"}
	case strings.Contains(errLower, "price"):
		return ErrorInfo{Code: ValidationInvalidRange, Message: "price must not be negative"}
	case strings.Contains(errLower, "quantity"):
		return ErrorInfo{Code: ValidationInvalidRange, Message: "quantity is out of range"}
	case strings.Contains(errLower, "amount") || strings.Contains(errLower, "fee"):
		return ErrorInfo{Code: ValidationInvalidRange, Message: "amount must not be negative"}
	case strings.Contains(errLower, "discount"):
		return ErrorInfo{Code: ValidationInvalidRange, Message: "discount must not be negative"}
	case strings.Contains(errLower, "status") || strings.Contains(errLower, "type") || strings.Contains(errLower, "method"):
		return ErrorInfo{Code: ValidationInvalidInput, Message: "value is not a member of the allowed set"}
	}
	return ErrorInfo{Code: ValidationInvalidInput, Message: "value violates a check constraint"}
}

func notFoundCode(context string) string {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "customer"):
		return CustomerNotFound
	case strings.Contains(contextLower, "category"):
		return CategoryNotFound
	case strings.Contains(contextLower, "product"):
		return ProductNotFound
	case strings.Contains(contextLower, "order"):
		return OrderNotFound
	case strings.Contains(contextLower, "coupon"):
		return CouponNotFound
	}
	return ResourceNotFound
}
