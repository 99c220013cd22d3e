package domain

import "sync"

// Position tracks signed net quantities per book for a single product.
// It is mutated in place by the position service and handed to listeners;
// the internal lock keeps reads consistent with concurrent updates.
type Position struct {
	mu       sync.RWMutex
	product  Product
	books    map[string]int64
}

// NewPosition creates an empty position for the product.
func NewPosition(product Product) *Position {
	return &Position{
		product: product,
		books:   make(map[string]int64),
	}
}

// Product returns the product this position is for.
func (p *Position) Product() Product {
	return p.product
}

// Quantity returns the signed net quantity for a book. A book that has
// never traded reads as zero.
func (p *Position) Quantity(book string) int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.books[book]
}

// AggregatePosition sums the signed quantities across all books. It is
// computed on demand, never cached.
func (p *Position) AggregatePosition() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var aggregate int64
	for _, qty := range p.books {
		aggregate += qty
	}
	return aggregate
}

// UpdateBook accumulates a signed quantity into a book entry, creating
// the entry at zero first if the book is new.
func (p *Position) UpdateBook(book string, quantity int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.books[book] += quantity
}

// Books returns a copy of the per-book quantities.
func (p *Position) Books() map[string]int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	books := make(map[string]int64, len(p.books))
	for book, qty := range p.books {
		books[book] = qty
	}
	return books
}
