// Package sim drives the pipeline with a synthetic feed: random-walk
// order books, trade bookings, and customer inquiries. It stands in for
// the real market-data and blotter connectors.
package sim

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/engine"
	"github.com/efreitasn/bonddesk/internal/refdata"
	"github.com/efreitasn/bonddesk/internal/service"
	"github.com/google/uuid"
)

// Books trades rotate through, mirroring a desk with three sub-ledgers.
var books = []string{"TRSY1", "TRSY2", "TRSY3"}

// Feed publishes synthetic market data into the pipeline on a fixed
// interval.
type Feed struct {
	universe   *refdata.Universe
	trades     *service.TradeBookingService
	marketData *service.MarketDataService
	inquiries  *service.InquiryService
	interval   time.Duration
	logger     *slog.Logger

	rng  *rand.Rand
	mids map[string]float64
	tick uint64
}

// New creates a feed. seed fixes the random walk for reproducible runs.
func New(
	universe *refdata.Universe,
	trades *service.TradeBookingService,
	marketData *service.MarketDataService,
	inquiries *service.InquiryService,
	interval time.Duration,
	seed int64,
	logger *slog.Logger,
) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	mids := make(map[string]float64)
	for _, bond := range universe.Bonds() {
		mids[bond.CUSIP] = 100.0 // start at par
	}
	return &Feed{
		universe:   universe,
		trades:     trades,
		marketData: marketData,
		inquiries:  inquiries,
		interval:   interval,
		logger:     logger,
		rng:        rand.New(rand.NewSource(seed)),
		mids:       mids,
	}
}

// Start runs the feed until the context is cancelled.
func (f *Feed) Start(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.logger.Info("sim feed started", slog.Duration("interval", f.interval))
	for {
		select {
		case <-ctx.Done():
			f.logger.Info("sim feed stopped")
			return
		case <-ticker.C:
			f.step()
		}
	}
}

// step publishes one round: an order book per bond, plus occasional
// trades and inquiries.
func (f *Feed) step() {
	f.tick++
	for _, bond := range f.universe.Bonds() {
		f.publishBook(bond)
	}

	bonds := f.universe.Bonds()
	bond := bonds[f.rng.Intn(len(bonds))]
	f.bookTrade(bond)

	// Inquiries are rarer than trades.
	if f.tick%5 == 0 {
		f.sendInquiry(bonds[f.rng.Intn(len(bonds))])
	}
}

// publishBook random-walks the mid and publishes a five-level
// consolidated book around it. Treasury prices move in 256ths.
func (f *Feed) publishBook(bond *domain.Bond) {
	const tick = 1.0 / 256.0

	mid := f.mids[bond.CUSIP] + float64(f.rng.Intn(3)-1)*tick
	if mid < 90 {
		mid = 90
	}
	if mid > 110 {
		mid = 110
	}
	f.mids[bond.CUSIP] = mid

	spread := tick * float64(1+f.rng.Intn(3))
	c := engine.NewConsolidator(bond)
	for lvl := 0; lvl < 5; lvl++ {
		qty := int64(1_000_000 * (lvl + 1))
		c.Add(domain.Order{
			Price:    mid - spread/2 - float64(lvl)*tick,
			Quantity: qty,
			Side:     domain.PricingSideBid,
		})
		c.Add(domain.Order{
			Price:    mid + spread/2 + float64(lvl)*tick,
			Quantity: qty,
			Side:     domain.PricingSideOffer,
		})
	}
	f.marketData.OnMessage(c.Book())
}

func (f *Feed) bookTrade(bond *domain.Bond) {
	side := domain.SideBuy
	if f.rng.Intn(2) == 1 {
		side = domain.SideSell
	}
	f.trades.BookTrade(&domain.Trade{
		Product:  bond,
		TradeID:  uuid.New().String(),
		Price:    f.mids[bond.CUSIP],
		Book:     books[f.rng.Intn(len(books))],
		Quantity: int64(1_000_000 * (1 + f.rng.Intn(5))),
		Side:     side,
	})
}

func (f *Feed) sendInquiry(bond *domain.Bond) {
	side := domain.SideBuy
	if f.rng.Intn(2) == 1 {
		side = domain.SideSell
	}
	f.inquiries.OnMessage(&domain.Inquiry{
		InquiryID: uuid.New().String(),
		Product:   bond,
		Side:      side,
		Quantity:  int64(1_000_000 * (1 + f.rng.Intn(3))),
		State:     domain.InquiryReceived,
	})
}
