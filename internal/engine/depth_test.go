package engine

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/efreitasn/bonddesk/internal/domain"
)

func testBond() *domain.Bond {
	return &domain.Bond{
		CUSIP:    "91282CAV3",
		Ticker:   "T",
		Coupon:   4.25,
		Maturity: time.Date(2030, time.November, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestConsolidator_BestFirstStacks(t *testing.T) {
	c := NewConsolidator(testBond())
	c.Add(domain.Order{Price: 99.5, Quantity: 100, Side: domain.PricingSideBid})
	c.Add(domain.Order{Price: 99.75, Quantity: 200, Side: domain.PricingSideBid})
	c.Add(domain.Order{Price: 99.25, Quantity: 50, Side: domain.PricingSideBid})
	c.Add(domain.Order{Price: 100.25, Quantity: 75, Side: domain.PricingSideOffer})
	c.Add(domain.Order{Price: 100.0, Quantity: 150, Side: domain.PricingSideOffer})

	ob := c.Book()

	wantBids := []float64{99.75, 99.5, 99.25}
	if len(ob.BidStack) != len(wantBids) {
		t.Fatalf("expected %d bid levels, got %d", len(wantBids), len(ob.BidStack))
	}
	for i, want := range wantBids {
		if ob.BidStack[i].Price != want {
			t.Fatalf("bid level %d: expected price %v, got %v", i, want, ob.BidStack[i].Price)
		}
	}

	wantOffers := []float64{100.0, 100.25}
	if len(ob.OfferStack) != len(wantOffers) {
		t.Fatalf("expected %d offer levels, got %d", len(wantOffers), len(ob.OfferStack))
	}
	for i, want := range wantOffers {
		if ob.OfferStack[i].Price != want {
			t.Fatalf("offer level %d: expected price %v, got %v", i, want, ob.OfferStack[i].Price)
		}
	}
}

func TestConsolidator_AggregatesSamePrice(t *testing.T) {
	c := NewConsolidator(testBond())
	c.Add(domain.Order{Price: 99.5, Quantity: 100, Side: domain.PricingSideBid})
	c.Add(domain.Order{Price: 99.5, Quantity: 250, Side: domain.PricingSideBid})
	c.Add(domain.Order{Price: 100.0, Quantity: 40, Side: domain.PricingSideOffer})
	c.Add(domain.Order{Price: 100.0, Quantity: 60, Side: domain.PricingSideOffer})

	ob := c.Book()
	if len(ob.BidStack) != 1 || ob.BidStack[0].Quantity != 350 {
		t.Fatalf("expected one bid level with quantity 350, got %v", ob.BidStack)
	}
	if len(ob.OfferStack) != 1 || ob.OfferStack[0].Quantity != 100 {
		t.Fatalf("expected one offer level with quantity 100, got %v", ob.OfferStack)
	}
}

func TestConsolidator_IgnoresNonPositiveQuantity(t *testing.T) {
	c := NewConsolidator(testBond())
	c.Add(domain.Order{Price: 99.5, Quantity: 0, Side: domain.PricingSideBid})
	c.Add(domain.Order{Price: 99.5, Quantity: -10, Side: domain.PricingSideOffer})

	ob := c.Book()
	if len(ob.BidStack) != 0 || len(ob.OfferStack) != 0 {
		t.Fatalf("expected empty book, got %v / %v", ob.BidStack, ob.OfferStack)
	}
}

func TestConsolidator_EmptyBook(t *testing.T) {
	ob := NewConsolidator(testBond()).Book()
	if len(ob.BidStack) != 0 || len(ob.OfferStack) != 0 {
		t.Fatalf("expected empty stacks, got %v / %v", ob.BidStack, ob.OfferStack)
	}
	if ob.Product.ProductID() != "91282CAV3" {
		t.Fatalf("expected product carried through, got %q", ob.Product.ProductID())
	}
}

// Whatever raw orders go in, the stacks come out best-first and the total
// quantity per side is conserved.
func TestProperty_ConsolidatorOrderingAndConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewConsolidator(testBond())

		var totalBid, totalOffer int64
		n := rapid.IntRange(0, 50).Draw(t, "n")
		for i := 0; i < n; i++ {
			o := domain.Order{
				// A coarse price grid so same-price aggregation is exercised.
				Price:    float64(rapid.IntRange(990, 1010).Draw(t, "price")) / 10,
				Quantity: int64(rapid.IntRange(1, 1_000_000).Draw(t, "qty")),
				Side:     domain.PricingSideBid,
			}
			if rapid.Bool().Draw(t, "offer") {
				o.Side = domain.PricingSideOffer
				totalOffer += o.Quantity
			} else {
				totalBid += o.Quantity
			}
			c.Add(o)
		}

		ob := c.Book()

		var gotBid, gotOffer int64
		for i, lv := range ob.BidStack {
			gotBid += lv.Quantity
			if i > 0 && ob.BidStack[i-1].Price <= lv.Price {
				t.Fatalf("bid stack not descending at level %d: %v then %v", i, ob.BidStack[i-1].Price, lv.Price)
			}
		}
		for i, lv := range ob.OfferStack {
			gotOffer += lv.Quantity
			if i > 0 && ob.OfferStack[i-1].Price >= lv.Price {
				t.Fatalf("offer stack not ascending at level %d: %v then %v", i, ob.OfferStack[i-1].Price, lv.Price)
			}
		}
		if gotBid != totalBid || gotOffer != totalOffer {
			t.Fatalf("quantity not conserved: bids %d/%d, offers %d/%d", gotBid, totalBid, gotOffer, totalOffer)
		}
	})
}
