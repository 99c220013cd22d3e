package domain

// Side indicates whether a trade buys or sells.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Trade is a booked trade with a price, side, and quantity on a
// particular book.
type Trade struct {
	Product  Product
	TradeID  string
	Price    float64
	Book     string
	Quantity int64
	Side     Side
}

// SignedQuantity returns the quantity signed by side: buys positive,
// sells negative.
func (t *Trade) SignedQuantity() int64 {
	if t.Side == SideSell {
		return -t.Quantity
	}
	return t.Quantity
}
