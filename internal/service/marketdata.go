package service

import (
	"log/slog"

	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/pubsub"
)

// MarketDataService distributes order book market data. Keyed on
// product ID.
type MarketDataService struct {
	*pubsub.Service[string, *domain.OrderBook]
}

// NewMarketDataService creates an empty market data service.
func NewMarketDataService(logger *slog.Logger) *MarketDataService {
	return &MarketDataService{
		Service: pubsub.NewService("market_data", func(ob *domain.OrderBook) string {
			return ob.Product.ProductID()
		}, domain.ErrOrderBookNotFound, logger),
	}
}

// GetBestBidOffer returns the head of each stack for the product. It
// trusts the stored best-first ordering rather than scanning for the
// best price, and fails if the book is unknown or either stack is
// empty. The returned value is freshly constructed per call.
func (s *MarketDataService) GetBestBidOffer(productID string) (domain.BidOffer, error) {
	ob, err := s.GetData(productID)
	if err != nil {
		return domain.BidOffer{}, err
	}
	if len(ob.BidStack) == 0 {
		return domain.BidOffer{}, domain.ErrEmptyBidStack
	}
	if len(ob.OfferStack) == 0 {
		return domain.BidOffer{}, domain.ErrEmptyOfferStack
	}
	return domain.BidOffer{
		Bid:   ob.BidStack[0],
		Offer: ob.OfferStack[0],
	}, nil
}

// AggregateDepth returns the full stored order book for the product.
// The service stores stacks as supplied and does not consolidate price
// levels; publishers wanting consolidated depth must pre-aggregate
// (see the engine package) before publishing.
func (s *MarketDataService) AggregateDepth(productID string) (*domain.OrderBook, error) {
	return s.GetData(productID)
}
