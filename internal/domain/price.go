package domain

// Price is an internal price for a product: a mid and the bid/offer
// spread around it.
type Price struct {
	Product        Product
	Mid            float64
	BidOfferSpread float64
}

// PriceStreamOrder is one side of a streamed two-way market, with a
// visible and a hidden quantity.
type PriceStreamOrder struct {
	Price           float64
	VisibleQuantity int64
	HiddenQuantity  int64
	Side            PricingSide
}

// PriceStream is a two-way market streamed out for a product.
type PriceStream struct {
	Product    Product
	BidOrder   PriceStreamOrder
	OfferOrder PriceStreamOrder
}
