package handler

import (
	"net/http"

	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/engine"
	"github.com/efreitasn/bonddesk/internal/refdata"
	"github.com/efreitasn/bonddesk/internal/service"
	"github.com/google/uuid"
)

// IngestHandler accepts externally-sourced trades, order books, and
// prices and injects them into the pipeline. It is an inbound
// connector: products are resolved against the universe before any
// service sees the message.
type IngestHandler struct {
	universe   *refdata.Universe
	trades     *service.TradeBookingService
	marketData *service.MarketDataService
	pricing    *service.PricingService
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(
	universe *refdata.Universe,
	trades *service.TradeBookingService,
	marketData *service.MarketDataService,
	pricing *service.PricingService,
) *IngestHandler {
	return &IngestHandler{
		universe:   universe,
		trades:     trades,
		marketData: marketData,
		pricing:    pricing,
	}
}

// bookTradeRequest is the JSON request body for POST /trades.
type bookTradeRequest struct {
	TradeID  string  `json:"trade_id"`
	CUSIP    string  `json:"cusip"`
	Price    float64 `json:"price"`
	Book     string  `json:"book"`
	Quantity int64   `json:"quantity"`
	Side     string  `json:"side"`
}

// tradeResponse is the JSON shape of a booked trade.
type tradeResponse struct {
	TradeID  string  `json:"trade_id"`
	CUSIP    string  `json:"cusip"`
	Price    float64 `json:"price"`
	Book     string  `json:"book"`
	Quantity int64   `json:"quantity"`
	Side     string  `json:"side"`
}

// BookTrade handles POST /trades.
func (h *IngestHandler) BookTrade(w http.ResponseWriter, r *http.Request) {
	var req bookTradeRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	side := domain.Side(req.Side)
	if side != domain.SideBuy && side != domain.SideSell {
		WriteError(w, http.StatusBadRequest, "validation_error", "side must be buy or sell")
		return
	}
	if req.Quantity <= 0 {
		WriteError(w, http.StatusBadRequest, "validation_error", "quantity must be positive")
		return
	}
	if req.Book == "" {
		WriteError(w, http.StatusBadRequest, "validation_error", "book is required")
		return
	}

	bond, err := h.universe.Bond(req.CUSIP)
	if err != nil {
		WriteError(w, http.StatusNotFound, "product_not_found", "unknown cusip: "+req.CUSIP)
		return
	}

	tradeID := req.TradeID
	if tradeID == "" {
		tradeID = uuid.New().String()
	}

	trade := &domain.Trade{
		Product:  bond,
		TradeID:  tradeID,
		Price:    req.Price,
		Book:     req.Book,
		Quantity: req.Quantity,
		Side:     side,
	}
	h.trades.BookTrade(trade)

	WriteJSON(w, http.StatusCreated, tradeResponse{
		TradeID:  trade.TradeID,
		CUSIP:    req.CUSIP,
		Price:    trade.Price,
		Book:     trade.Book,
		Quantity: trade.Quantity,
		Side:     string(trade.Side),
	})
}

// orderLevel is one price/quantity entry in an order book request.
type orderLevel struct {
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// publishBookRequest is the JSON request body for POST /marketdata.
// When consolidate is true, the supplied orders are aggregated into
// best-first price levels before publishing; otherwise the stacks are
// trusted to already be best-first.
type publishBookRequest struct {
	CUSIP       string       `json:"cusip"`
	Bids        []orderLevel `json:"bids"`
	Offers      []orderLevel `json:"offers"`
	Consolidate bool         `json:"consolidate"`
}

// PublishBook handles POST /marketdata.
func (h *IngestHandler) PublishBook(w http.ResponseWriter, r *http.Request) {
	var req publishBookRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	bond, err := h.universe.Bond(req.CUSIP)
	if err != nil {
		WriteError(w, http.StatusNotFound, "product_not_found", "unknown cusip: "+req.CUSIP)
		return
	}

	var book *domain.OrderBook
	if req.Consolidate {
		c := engine.NewConsolidator(bond)
		for _, lv := range req.Bids {
			c.Add(domain.Order{Price: lv.Price, Quantity: lv.Quantity, Side: domain.PricingSideBid})
		}
		for _, lv := range req.Offers {
			c.Add(domain.Order{Price: lv.Price, Quantity: lv.Quantity, Side: domain.PricingSideOffer})
		}
		book = c.Book()
	} else {
		book = &domain.OrderBook{Product: bond}
		for _, lv := range req.Bids {
			book.BidStack = append(book.BidStack, domain.Order{Price: lv.Price, Quantity: lv.Quantity, Side: domain.PricingSideBid})
		}
		for _, lv := range req.Offers {
			book.OfferStack = append(book.OfferStack, domain.Order{Price: lv.Price, Quantity: lv.Quantity, Side: domain.PricingSideOffer})
		}
	}

	h.marketData.OnMessage(book)
	WriteJSON(w, http.StatusAccepted, map[string]string{"status": "published"})
}

// publishPriceRequest is the JSON request body for POST /prices.
type publishPriceRequest struct {
	CUSIP  string  `json:"cusip"`
	Mid    float64 `json:"mid"`
	Spread float64 `json:"spread"`
}

// PublishPrice handles POST /prices.
func (h *IngestHandler) PublishPrice(w http.ResponseWriter, r *http.Request) {
	var req publishPriceRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	bond, err := h.universe.Bond(req.CUSIP)
	if err != nil {
		WriteError(w, http.StatusNotFound, "product_not_found", "unknown cusip: "+req.CUSIP)
		return
	}

	h.pricing.PublishPrice(&domain.Price{
		Product:        bond,
		Mid:            req.Mid,
		BidOfferSpread: req.Spread,
	})
	WriteJSON(w, http.StatusAccepted, map[string]string{"status": "published"})
}
