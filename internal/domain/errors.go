package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrTradeNotFound       = errors.New("trade_not_found")
	ErrPositionNotFound    = errors.New("position_not_found")
	ErrRiskNotFound        = errors.New("risk_not_found")
	ErrOrderBookNotFound   = errors.New("order_book_not_found")
	ErrPriceNotFound       = errors.New("price_not_found")
	ErrPriceStreamNotFound = errors.New("price_stream_not_found")
	ErrExecutionNotFound   = errors.New("execution_not_found")
	ErrInquiryNotFound     = errors.New("inquiry_not_found")
	ErrHistoricalNotFound  = errors.New("historical_not_found")
	ErrEmptyBidStack       = errors.New("empty_bid_stack")
	ErrEmptyOfferStack     = errors.New("empty_offer_stack")
	ErrZeroBucketQuantity  = errors.New("zero_bucket_quantity")
	ErrProductNotFound     = errors.New("product_not_found")
	ErrSectorNotFound      = errors.New("sector_not_found")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
