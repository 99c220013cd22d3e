package handler

import (
	"errors"
	"net/http"

	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/refdata"
	"github.com/efreitasn/bonddesk/internal/service"
	"github.com/go-chi/chi/v5"
)

// QueryHandler serves synchronous read queries against the pipeline
// services.
type QueryHandler struct {
	universe   *refdata.Universe
	trades     *service.TradeBookingService
	positions  *service.PositionService
	risk       *service.RiskService
	marketData *service.MarketDataService
	pricing    *service.PricingService
	streaming  *service.StreamingService
	execution  *service.ExecutionService
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(
	universe *refdata.Universe,
	trades *service.TradeBookingService,
	positions *service.PositionService,
	risk *service.RiskService,
	marketData *service.MarketDataService,
	pricing *service.PricingService,
	streaming *service.StreamingService,
	execution *service.ExecutionService,
) *QueryHandler {
	return &QueryHandler{
		universe:   universe,
		trades:     trades,
		positions:  positions,
		risk:       risk,
		marketData: marketData,
		pricing:    pricing,
		streaming:  streaming,
		execution:  execution,
	}
}

// writeDomainError maps domain sentinels to HTTP statuses: NotFound
// sentinels and empty-stack errors become 404 and 422 respectively;
// anything else is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrTradeNotFound),
		errors.Is(err, domain.ErrPositionNotFound),
		errors.Is(err, domain.ErrRiskNotFound),
		errors.Is(err, domain.ErrOrderBookNotFound),
		errors.Is(err, domain.ErrPriceNotFound),
		errors.Is(err, domain.ErrPriceStreamNotFound),
		errors.Is(err, domain.ErrExecutionNotFound),
		errors.Is(err, domain.ErrInquiryNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrSectorNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), "not found")
	case errors.Is(err, domain.ErrEmptyBidStack),
		errors.Is(err, domain.ErrEmptyOfferStack),
		errors.Is(err, domain.ErrZeroBucketQuantity):
		WriteError(w, http.StatusUnprocessableEntity, err.Error(), "cannot be computed")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// positionResponse is the JSON shape of a position.
type positionResponse struct {
	ProductID string           `json:"product_id"`
	Books     map[string]int64 `json:"books"`
	Aggregate int64            `json:"aggregate"`
}

// GetPosition handles GET /positions/{product_id}.
func (h *QueryHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	p, err := h.positions.GetData(chi.URLParam(r, "product_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, positionResponse{
		ProductID: p.Product().ProductID(),
		Books:     p.Books(),
		Aggregate: p.AggregatePosition(),
	})
}

// riskResponse is the JSON shape of a PV01 record.
type riskResponse struct {
	ProductID string  `json:"product_id"`
	PV01      float64 `json:"pv01"`
	Quantity  int64   `json:"quantity"`
}

// GetRisk handles GET /risk/{product_id}.
func (h *QueryHandler) GetRisk(w http.ResponseWriter, r *http.Request) {
	pv, err := h.risk.GetData(chi.URLParam(r, "product_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, riskResponse{
		ProductID: pv.Product.ProductID(),
		PV01:      pv.Value,
		Quantity:  pv.Quantity,
	})
}

// bucketedRiskResponse is the JSON shape of a sector risk.
type bucketedRiskResponse struct {
	Bucket   string  `json:"bucket"`
	PV01     float64 `json:"pv01"`
	Quantity int64   `json:"quantity"`
}

// GetBucketedRisk handles GET /risk/buckets/{bucket}.
func (h *QueryHandler) GetBucketedRisk(w http.ResponseWriter, r *http.Request) {
	sector, err := h.universe.Sector(chi.URLParam(r, "bucket"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	sr, err := h.risk.GetBucketedRisk(sector)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, bucketedRiskResponse{
		Bucket:   sr.Sector.Name,
		PV01:     sr.Value,
		Quantity: sr.Quantity,
	})
}

// orderJSON is one order in a BBO or depth response.
type orderJSON struct {
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
	Side     string  `json:"side"`
}

func toOrderJSON(o domain.Order) orderJSON {
	return orderJSON{Price: o.Price, Quantity: o.Quantity, Side: string(o.Side)}
}

// GetBestBidOffer handles GET /marketdata/{product_id}/bbo.
func (h *QueryHandler) GetBestBidOffer(w http.ResponseWriter, r *http.Request) {
	bbo, err := h.marketData.GetBestBidOffer(chi.URLParam(r, "product_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]orderJSON{
		"bid":   toOrderJSON(bbo.Bid),
		"offer": toOrderJSON(bbo.Offer),
	})
}

// depthResponse is the JSON shape of a full order book.
type depthResponse struct {
	ProductID string      `json:"product_id"`
	Bids      []orderJSON `json:"bids"`
	Offers    []orderJSON `json:"offers"`
}

// GetDepth handles GET /marketdata/{product_id}/depth.
func (h *QueryHandler) GetDepth(w http.ResponseWriter, r *http.Request) {
	ob, err := h.marketData.AggregateDepth(chi.URLParam(r, "product_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := depthResponse{ProductID: ob.Product.ProductID(), Bids: []orderJSON{}, Offers: []orderJSON{}}
	for _, o := range ob.BidStack {
		resp.Bids = append(resp.Bids, toOrderJSON(o))
	}
	for _, o := range ob.OfferStack {
		resp.Offers = append(resp.Offers, toOrderJSON(o))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// GetTrade handles GET /trades/{trade_id}.
func (h *QueryHandler) GetTrade(w http.ResponseWriter, r *http.Request) {
	t, err := h.trades.GetData(chi.URLParam(r, "trade_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tradeResponse{
		TradeID:  t.TradeID,
		CUSIP:    t.Product.ProductID(),
		Price:    t.Price,
		Book:     t.Book,
		Quantity: t.Quantity,
		Side:     string(t.Side),
	})
}

// GetPrice handles GET /prices/{product_id}.
func (h *QueryHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	p, err := h.pricing.GetData(chi.URLParam(r, "product_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"product_id": p.Product.ProductID(),
		"mid":        p.Mid,
		"spread":     p.BidOfferSpread,
	})
}

// streamOrderJSON is one side of a price stream response.
type streamOrderJSON struct {
	Price           float64 `json:"price"`
	VisibleQuantity int64   `json:"visible_quantity"`
	HiddenQuantity  int64   `json:"hidden_quantity"`
	Side            string  `json:"side"`
}

// GetStream handles GET /streams/{product_id}.
func (h *QueryHandler) GetStream(w http.ResponseWriter, r *http.Request) {
	ps, err := h.streaming.GetData(chi.URLParam(r, "product_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"product_id": ps.Product.ProductID(),
		"bid": streamOrderJSON{
			Price:           ps.BidOrder.Price,
			VisibleQuantity: ps.BidOrder.VisibleQuantity,
			HiddenQuantity:  ps.BidOrder.HiddenQuantity,
			Side:            string(ps.BidOrder.Side),
		},
		"offer": streamOrderJSON{
			Price:           ps.OfferOrder.Price,
			VisibleQuantity: ps.OfferOrder.VisibleQuantity,
			HiddenQuantity:  ps.OfferOrder.HiddenQuantity,
			Side:            string(ps.OfferOrder.Side),
		},
	})
}

// GetExecution handles GET /executions/{order_id}.
func (h *QueryHandler) GetExecution(w http.ResponseWriter, r *http.Request) {
	o, err := h.execution.GetData(chi.URLParam(r, "order_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"order_id":         o.OrderID,
		"product_id":       o.Product.ProductID(),
		"side":             string(o.Side),
		"order_type":       string(o.OrderType),
		"price":            o.Price,
		"visible_quantity": o.VisibleQuantity,
		"hidden_quantity":  o.HiddenQuantity,
		"parent_order_id":  o.ParentOrderID,
		"is_child_order":   o.IsChildOrder,
	})
}
