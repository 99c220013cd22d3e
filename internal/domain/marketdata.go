package domain

// PricingSide indicates the side of a market data or stream order.
type PricingSide string

const (
	PricingSideBid   PricingSide = "bid"
	PricingSideOffer PricingSide = "offer"
)

// Order is a single market data order with price, quantity, and side.
type Order struct {
	Price    float64
	Quantity int64
	Side     PricingSide
}

// BidOffer pairs the best bid and best offer orders for a product.
type BidOffer struct {
	Bid   Order
	Offer Order
}

// OrderBook holds the bid and offer stacks for a product. Stacks are
// stored exactly as supplied and must already be ordered best-first;
// the head of each stack is the best bid/offer.
type OrderBook struct {
	Product    Product
	BidStack   []Order
	OfferStack []Order
}
