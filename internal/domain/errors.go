package domain

import (
	"errors"
	"fmt"
)

// Error is a typed domain failure carrying a machine-readable code, a human
// title, a detail string and structured context. It propagates unmodified from
// the services to the boundary layer, which owns the transport-status mapping.
type Error struct {
	Code    string
	Title   string
	Detail  string
	Context map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// WithDetail returns a copy of the error with the detail replaced.
func (e *Error) WithDetail(detail string) *Error {
	clone := *e
	clone.Detail = detail
	return &clone
}

// CodeOf extracts the domain error code from err, or "" if err is not a
// domain error.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func newError(code, title, detail string, context map[string]any) *Error {
	return &Error{Code: code, Title: title, Detail: detail, Context: context}
}

// Error codes, one per failure condition.
const (
	CodeProductNotFound            = "PRODUCT_NOT_FOUND"
	CodeProductDeleted             = "PRODUCT_DELETED"
	CodeProductAlreadyExists       = "PRODUCT_ALREADY_EXISTS"
	CodeInsufficientQuantity       = "INSUFFICIENT_QUANTITY"
	CodeInvalidRentalUnit          = "INVALID_RENTAL_UNIT"
	CodeInvalidPriceConfiguration  = "INVALID_PRICE_CONFIGURATION"
	CodeOrderNotFound              = "ORDER_NOT_FOUND"
	CodeOrderAlreadyExists         = "ORDER_ALREADY_EXISTS"
	CodeInsufficientStock          = "INSUFFICIENT_STOCK"
	CodeInvalidOrderStatus         = "INVALID_ORDER_STATUS"
	CodeInvalidPaymentStatus       = "INVALID_PAYMENT_STATUS"
	CodeInvalidRentDates           = "INVALID_RENT_DATES"
	CodeInvalidDeliveryDates       = "INVALID_DELIVERY_DATES"
	CodeInsufficientPayment        = "INSUFFICIENT_PAYMENT"
	CodeOrderNotCancellable        = "ORDER_NOT_CANCELLABLE"
	CodeDeliveryServiceUnavailable = "DELIVERY_SERVICE_NOT_AVAILABLE"
	CodeDeliveryNotFound           = "DELIVERY_NOT_FOUND"
	CodeInvalidRating              = "INVALID_RATING"
	CodePartnerNotFound            = "DELIVERY_PARTNER_NOT_FOUND"
	CodeInvalidQuantity            = "INVALID_QUANTITY"
	CodeInvalidPagination          = "INVALID_PAGINATION"
)

func ErrProductNotFound(context map[string]any) *Error {
	return newError(CodeProductNotFound, "Product Not Found",
		"The requested product was not found", context)
}

func ErrProductDeleted(context map[string]any) *Error {
	return newError(CodeProductDeleted, "Product Deleted",
		"The requested product has been deleted", context)
}

func ErrProductAlreadyExists(context map[string]any) *Error {
	return newError(CodeProductAlreadyExists, "Product Already Exists",
		"A product with this identity already exists", context)
}

func ErrInsufficientQuantity(detail string, context map[string]any) *Error {
	if detail == "" {
		detail = "Not enough available quantity for the requested operation"
	}
	return newError(CodeInsufficientQuantity, "Insufficient Quantity", detail, context)
}

func ErrInvalidRentalUnit(detail string, context map[string]any) *Error {
	if detail == "" {
		detail = "The specified rental unit is not available for this product"
	}
	return newError(CodeInvalidRentalUnit, "Invalid Rental Unit", detail, context)
}

func ErrInvalidPriceConfiguration(detail string, context map[string]any) *Error {
	if detail == "" {
		detail = "Price configuration does not match available rental units"
	}
	return newError(CodeInvalidPriceConfiguration, "Invalid Price Configuration", detail, context)
}

func ErrOrderNotFound(context map[string]any) *Error {
	return newError(CodeOrderNotFound, "Order Not Found",
		"The requested order was not found", context)
}

func ErrOrderAlreadyExists(context map[string]any) *Error {
	return newError(CodeOrderAlreadyExists, "Order Already Exists",
		"An order with this identity already exists", context)
}

func ErrInsufficientStock(context map[string]any) *Error {
	return newError(CodeInsufficientStock, "Insufficient Stock",
		"Insufficient stock available for the requested rental window", context)
}

func ErrInvalidOrderStatus(detail string, context map[string]any) *Error {
	if detail == "" {
		detail = "The order status transition is not allowed"
	}
	return newError(CodeInvalidOrderStatus, "Invalid Order Status", detail, context)
}

func ErrInvalidPaymentStatus(detail string, context map[string]any) *Error {
	if detail == "" {
		detail = "The payment status transition is not allowed"
	}
	return newError(CodeInvalidPaymentStatus, "Invalid Payment Status", detail, context)
}

func ErrInvalidRentDates(context map[string]any) *Error {
	return newError(CodeInvalidRentDates, "Invalid Rent Dates",
		"Rent start date must be before rent end date", context)
}

func ErrInvalidDeliveryDates(context map[string]any) *Error {
	return newError(CodeInvalidDeliveryDates, "Invalid Delivery Dates",
		"Delivery and pickup dates must cover the rental period", context)
}

func ErrInsufficientPayment(detail string, context map[string]any) *Error {
	if detail == "" {
		detail = "Payment amount is insufficient for the order total"
	}
	return newError(CodeInsufficientPayment, "Insufficient Payment", detail, context)
}

func ErrOrderNotCancellable(detail string, context map[string]any) *Error {
	if detail == "" {
		detail = "Order cannot be cancelled in its current status"
	}
	return newError(CodeOrderNotCancellable, "Order Not Cancellable", detail, context)
}

func ErrDeliveryServiceNotAvailable(context map[string]any) *Error {
	return newError(CodeDeliveryServiceUnavailable, "Delivery Service Not Available",
		"No delivery partner serves the requested locations", context)
}

func ErrDeliveryNotFound(context map[string]any) *Error {
	return newError(CodeDeliveryNotFound, "Delivery Not Found",
		"The requested delivery was not found", context)
}

func ErrInvalidRating(context map[string]any) *Error {
	return newError(CodeInvalidRating, "Invalid Rating",
		"Rating must be between 1 and 5", context)
}

func ErrPartnerNotFound(context map[string]any) *Error {
	return newError(CodePartnerNotFound, "Delivery Partner Not Found",
		"The requested delivery partner was not found", context)
}

func ErrInvalidQuantity(detail string, context map[string]any) *Error {
	if detail == "" {
		detail = "Quantity must be greater than zero"
	}
	return newError(CodeInvalidQuantity, "Invalid Quantity", detail, context)
}

func ErrInvalidPagination(detail string, context map[string]any) *Error {
	if detail == "" {
		detail = "Pagination parameters are out of range"
	}
	return newError(CodeInvalidPagination, "Invalid Pagination", detail, context)
}
