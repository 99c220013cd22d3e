// Package engine provides pre-publish order book construction. The
// market data service stores stacks exactly as supplied, so publishers
// consolidate raw orders into best-first price levels here before
// calling OnMessage.
package engine

import (
	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/google/btree"
)

// level is an aggregated price level on one side of the book.
type level struct {
	price    float64
	quantity int64
}

// bidLevelLess orders bid levels price descending, so Min() is the best
// bid.
func bidLevelLess(a, b level) bool {
	return a.price > b.price
}

// offerLevelLess orders offer levels price ascending, so Min() is the
// best offer.
func offerLevelLess(a, b level) bool {
	return a.price < b.price
}

// Consolidator aggregates raw orders into per-price levels on B-trees
// and emits best-first stacks. It is not safe for concurrent use; build
// one per order book publication.
type Consolidator struct {
	product domain.Product
	bids    *btree.BTreeG[level]
	offers  *btree.BTreeG[level]
}

// NewConsolidator creates an empty consolidator for a product.
func NewConsolidator(product domain.Product) *Consolidator {
	const degree = 16
	return &Consolidator{
		product: product,
		bids:    btree.NewG(degree, bidLevelLess),
		offers:  btree.NewG(degree, offerLevelLess),
	}
}

// Add folds one raw order into its side's price level. Orders with
// non-positive quantity are ignored.
func (c *Consolidator) Add(o domain.Order) {
	if o.Quantity <= 0 {
		return
	}

	tree := c.bids
	if o.Side == domain.PricingSideOffer {
		tree = c.offers
	}

	lv := level{price: o.Price, quantity: o.Quantity}
	if existing, ok := tree.Get(lv); ok {
		lv.quantity += existing.quantity
	}
	tree.ReplaceOrInsert(lv)
}

// Book emits the consolidated order book with both stacks in best-first
// order: bids price descending, offers price ascending.
func (c *Consolidator) Book() *domain.OrderBook {
	ob := &domain.OrderBook{
		Product:    c.product,
		BidStack:   make([]domain.Order, 0, c.bids.Len()),
		OfferStack: make([]domain.Order, 0, c.offers.Len()),
	}

	c.bids.Ascend(func(lv level) bool {
		ob.BidStack = append(ob.BidStack, domain.Order{
			Price:    lv.price,
			Quantity: lv.quantity,
			Side:     domain.PricingSideBid,
		})
		return true
	})
	c.offers.Ascend(func(lv level) bool {
		ob.OfferStack = append(ob.OfferStack, domain.Order{
			Price:    lv.price,
			Quantity: lv.quantity,
			Side:     domain.PricingSideOffer,
		})
		return true
	})

	return ob
}
