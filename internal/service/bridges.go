package service

import (
	"fmt"

	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/pubsub"
	"github.com/google/uuid"
)

// The bridges below are the listener adapters forming the pipeline:
// trade bookings drive positions, positions drive risk, and order books
// drive pricing, streaming, and execution. Each is registered on the
// upstream service and calls one public operation on the downstream
// service.

// NewTradeToPosition bridges trade booking adds into the position
// service.
func NewTradeToPosition(positions *PositionService) pubsub.Listener[*domain.Trade] {
	return pubsub.ListenerFuncs[*domain.Trade]{
		OnAdd: func(t *domain.Trade) {
			positions.AddTrade(t)
		},
	}
}

// NewPositionToRisk bridges position updates into the risk service.
func NewPositionToRisk(risk *RiskService) pubsub.Listener[*domain.Position] {
	return pubsub.ListenerFuncs[*domain.Position]{
		OnUpdate: func(p *domain.Position) {
			risk.AddPosition(p)
		},
	}
}

// NewBookToPricing derives a mid/spread price from each incoming order
// book and publishes it. Books with an empty side are skipped: no price
// can be formed.
func NewBookToPricing(pricing *PricingService) pubsub.Listener[*domain.OrderBook] {
	return pubsub.ListenerFuncs[*domain.OrderBook]{
		OnAdd: func(ob *domain.OrderBook) {
			if len(ob.BidStack) == 0 || len(ob.OfferStack) == 0 {
				return
			}
			bid := ob.BidStack[0].Price
			offer := ob.OfferStack[0].Price
			pricing.PublishPrice(&domain.Price{
				Product:        ob.Product,
				Mid:            (bid + offer) / 2,
				BidOfferSpread: offer - bid,
			})
		},
	}
}

// Stream quantities for the price-to-streaming bridge. The hidden
// quantity is twice the visible quantity.
const (
	streamVisibleQty = 1_000_000
	streamHiddenQty  = 2 * streamVisibleQty
)

// NewPriceToStreaming turns each published price into a two-way price
// stream around the mid.
func NewPriceToStreaming(streaming *StreamingService) pubsub.Listener[*domain.Price] {
	return pubsub.ListenerFuncs[*domain.Price]{
		OnAdd: func(p *domain.Price) {
			half := p.BidOfferSpread / 2
			streaming.PublishPrice(&domain.PriceStream{
				Product: p.Product,
				BidOrder: domain.PriceStreamOrder{
					Price:           p.Mid - half,
					VisibleQuantity: streamVisibleQty,
					HiddenQuantity:  streamHiddenQty,
					Side:            domain.PricingSideBid,
				},
				OfferOrder: domain.PriceStreamOrder{
					Price:           p.Mid + half,
					VisibleQuantity: streamVisibleQty,
					HiddenQuantity:  streamHiddenQty,
					Side:            domain.PricingSideOffer,
				},
			})
		},
	}
}

// NewBookToExecution lifts the best offer with an IOC order whenever the
// top-of-book spread is at or inside maxSpread. Books with an empty
// side never trigger.
func NewBookToExecution(execution *ExecutionService, maxSpread float64) pubsub.Listener[*domain.OrderBook] {
	return pubsub.ListenerFuncs[*domain.OrderBook]{
		OnAdd: func(ob *domain.OrderBook) {
			if len(ob.BidStack) == 0 || len(ob.OfferStack) == 0 {
				return
			}
			bestBid := ob.BidStack[0]
			bestOffer := ob.OfferStack[0]
			if bestOffer.Price-bestBid.Price > maxSpread {
				return
			}
			execution.ExecuteOrder(&domain.ExecutionOrder{
				Product:         ob.Product,
				Side:            domain.PricingSideBid,
				OrderID:         uuid.New().String(),
				OrderType:       domain.OrderTypeIOC,
				Price:           bestOffer.Price,
				VisibleQuantity: bestOffer.Quantity,
				HiddenQuantity:  0,
				IsChildOrder:    false,
			}, domain.MarketBrokerTec)
		},
	}
}

// NewInquiryQuoter auto-quotes incoming inquiries in state RECEIVED
// using the current mid from the pricing service. Inquiries for
// products with no published price are left for a human.
func NewInquiryQuoter(inquiries *InquiryService, pricing *PricingService) pubsub.Listener[*domain.Inquiry] {
	return pubsub.ListenerFuncs[*domain.Inquiry]{
		OnAdd: func(i *domain.Inquiry) {
			if i.State != domain.InquiryReceived {
				return
			}
			price, err := pricing.GetData(i.Product.ProductID())
			if err != nil {
				return
			}
			inquiries.SendQuote(i.InquiryID, price.Mid)
		},
	}
}

// NewPersistenceListener forwards every add and update on a service into
// a historical data service, persisting under the given key function.
func NewPersistenceListener[V any](hist *HistoricalDataService[V], keyOf func(V) string) pubsub.Listener[V] {
	persist := func(v V) {
		hist.PersistData(keyOf(v), v)
	}
	return pubsub.ListenerFuncs[V]{
		OnAdd:    persist,
		OnUpdate: persist,
	}
}

// SequencedKey builds persist keys of the form "<id>/<n>" so successive
// snapshots of the same entity remain distinct in the historical store.
func SequencedKey(id string, n uint64) string {
	return fmt.Sprintf("%s/%d", id, n)
}
