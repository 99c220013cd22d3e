package handler

import (
	"net/http"

	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/refdata"
	"github.com/efreitasn/bonddesk/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// InquiryHandler handles HTTP requests for inquiry endpoints.
type InquiryHandler struct {
	universe  *refdata.Universe
	inquiries *service.InquiryService
}

// NewInquiryHandler creates a new InquiryHandler.
func NewInquiryHandler(universe *refdata.Universe, inquiries *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{universe: universe, inquiries: inquiries}
}

// createInquiryRequest is the JSON request body for POST /inquiries.
// State is optional and defaults to received; customer_rejected can
// only enter the system through this field.
type createInquiryRequest struct {
	InquiryID string  `json:"inquiry_id"`
	CUSIP     string  `json:"cusip"`
	Side      string  `json:"side"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	State     string  `json:"state"`
}

// inquiryResponse is the JSON shape of an inquiry.
type inquiryResponse struct {
	InquiryID string  `json:"inquiry_id"`
	CUSIP     string  `json:"cusip"`
	Side      string  `json:"side"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	State     string  `json:"state"`
}

func buildInquiryResponse(i *domain.Inquiry) inquiryResponse {
	return inquiryResponse{
		InquiryID: i.InquiryID,
		CUSIP:     i.Product.ProductID(),
		Side:      string(i.Side),
		Quantity:  i.Quantity,
		Price:     i.Price,
		State:     string(i.State),
	}
}

var validInquiryStates = map[domain.InquiryState]bool{
	domain.InquiryReceived:         true,
	domain.InquiryQuoted:           true,
	domain.InquiryDone:             true,
	domain.InquiryRejected:         true,
	domain.InquiryCustomerRejected: true,
}

// Create handles POST /inquiries.
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInquiryRequest
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

	state := domain.InquiryState(req.State)
	if req.State == "" {
		state = domain.InquiryReceived
	} else if !validInquiryStates[state] {
		WriteError(w, http.StatusBadRequest, "validation_error", "unknown inquiry state: "+req.State)
		return
	}

	bond, err := h.universe.Bond(req.CUSIP)
	if err != nil {
		WriteError(w, http.StatusNotFound, "product_not_found", "unknown cusip: "+req.CUSIP)
		return
	}

	inquiryID := req.InquiryID
	if inquiryID == "" {
		inquiryID = uuid.New().String()
	}

	inquiry := &domain.Inquiry{
		InquiryID: inquiryID,
		Product:   bond,
		Side:      side,
		Quantity:  req.Quantity,
		Price:     req.Price,
		State:     state,
	}
	h.inquiries.OnMessage(inquiry)

	// The auto-quoter may already have moved the inquiry on; return the
	// current state rather than the ingested one.
	current, err := h.inquiries.GetData(inquiryID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, buildInquiryResponse(current))
}

// quoteRequest is the JSON request body for POST /inquiries/{inquiry_id}/quote.
type quoteRequest struct {
	Price float64 `json:"price"`
}

// SendQuote handles POST /inquiries/{inquiry_id}/quote.
func (h *InquiryHandler) SendQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	inquiry, err := h.inquiries.SendQuote(chi.URLParam(r, "inquiry_id"), req.Price)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildInquiryResponse(inquiry))
}

// Reject handles POST /inquiries/{inquiry_id}/reject.
func (h *InquiryHandler) Reject(w http.ResponseWriter, r *http.Request) {
	inquiry, err := h.inquiries.RejectInquiry(chi.URLParam(r, "inquiry_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildInquiryResponse(inquiry))
}

// Get handles GET /inquiries/{inquiry_id}.
func (h *InquiryHandler) Get(w http.ResponseWriter, r *http.Request) {
	inquiry, err := h.inquiries.GetData(chi.URLParam(r, "inquiry_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildInquiryResponse(inquiry))
}
